package colorspace

import (
	"image"
	"image/color"
	"testing"
)

func solidImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestRGBToHSVKnownColors(t *testing.T) {
	tests := []struct {
		name string
		in   RGB
		want HSV
	}{
		{"red", RGB{255, 0, 0}, HSV{0, 255, 255}},
		{"green", RGB{0, 255, 0}, HSV{120, 255, 255}},
		{"blue", RGB{0, 0, 255}, HSV{240, 255, 255}},
		{"cyan", RGB{0, 255, 255}, HSV{180, 255, 255}},
		{"yellow", RGB{255, 255, 0}, HSV{60, 255, 255}},
		{"white", RGB{255, 255, 255}, HSV{0, 0, 255}},
		{"black", RGB{0, 0, 0}, HSV{0, 0, 0}},
		{"gray", RGB{128, 128, 128}, HSV{0, 0, 128}},
		{"dark gray", RGB{25, 25, 25}, HSV{0, 0, 25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.HSV()
			if got != tt.want {
				t.Errorf("RGB%v.HSV() = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHSVToRGBKnownColors(t *testing.T) {
	tests := []struct {
		name string
		in   HSV
		want RGB
	}{
		{"red", HSV{0, 255, 255}, RGB{255, 0, 0}},
		{"green", HSV{120, 255, 255}, RGB{0, 255, 0}},
		{"blue", HSV{240, 255, 255}, RGB{0, 0, 255}},
		{"white", HSV{0, 0, 255}, RGB{255, 255, 255}},
		{"black", HSV{0, 0, 0}, RGB{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.RGB()
			if got != tt.want {
				t.Errorf("HSV%v.RGB() = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRGBHSVRoundTrip(t *testing.T) {
	colors := []RGB{
		{200, 100, 150},
		{17, 230, 42},
		{90, 90, 200},
		{255, 128, 0},
		{1, 2, 3},
	}

	for _, in := range colors {
		got := in.HSV().RGB()
		if absInt(got.R-in.R) > 1 || absInt(got.G-in.G) > 1 || absInt(got.B-in.B) > 1 {
			t.Errorf("round trip RGB%v -> HSV -> RGB%v drifted more than 1 per channel", in, got)
		}
	}
}

func TestNormalizeHSV(t *testing.T) {
	tests := []struct {
		name    string
		h, s, v int
		want    HSV
	}{
		{"identity", 200, 100, 150, HSV{200, 100, 150}},
		{"hue wraps at 360", 360, 10, 10, HSV{0, 10, 10}},
		{"hue wraps above 360", 725, 0, 0, HSV{5, 0, 0}},
		{"negative hue wraps up", -90, 50, 50, HSV{270, 50, 50}},
		{"saturation clamps low", 10, -3, 40, HSV{10, 0, 40}},
		{"value clamps high", 10, 40, 300, HSV{10, 40, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeHSV(tt.h, tt.s, tt.v)
			if got != tt.want {
				t.Errorf("NormalizeHSV(%d, %d, %d) = %v, want %v", tt.h, tt.s, tt.v, got, tt.want)
			}
		})
	}
}

func TestNewRGBBuffer(t *testing.T) {
	img := solidImage(4, 3, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	buf := NewRGBBuffer(img)

	if buf.W != 4 || buf.H != 3 {
		t.Fatalf("buffer dimensions = %dx%d, want 4x3", buf.W, buf.H)
	}
	if buf.Len() != 12 {
		t.Fatalf("buffer length = %d, want 12", buf.Len())
	}
	if buf.Space != SpaceRGB {
		t.Fatalf("buffer space = %v, want %v", buf.Space, SpaceRGB)
	}
	want := Triple{10, 20, 30}
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if got := buf.At(x, y); got != want {
				t.Fatalf("At(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestBufferConvert(t *testing.T) {
	img := solidImage(2, 2, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	buf := NewRGBBuffer(img)

	hsv := buf.Convert(SpaceHSV)
	if hsv.Space != SpaceHSV {
		t.Fatalf("converted space = %v, want %v", hsv.Space, SpaceHSV)
	}
	if got, want := hsv.At(0, 0), (Triple{120, 255, 255}); got != want {
		t.Errorf("green pixel in HSV = %v, want %v", got, want)
	}

	// Converting to the current space is a no-op and shares storage.
	if same := hsv.Convert(SpaceHSV); same != hsv {
		t.Error("Convert to own space allocated a new buffer")
	}

	back := hsv.Convert(SpaceRGB)
	if got, want := back.At(1, 1), (Triple{0, 255, 0}); got != want {
		t.Errorf("pixel after HSV -> RGB conversion = %v, want %v", got, want)
	}
}

func TestSpaceString(t *testing.T) {
	if SpaceRGB.String() != "rgb" || SpaceHSV.String() != "hsv" {
		t.Errorf("Space strings = %q, %q; want %q, %q", SpaceRGB, SpaceHSV, "rgb", "hsv")
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
