package analysis

import (
	"errors"
	"testing"

	"github.com/nbeckerphoto/colorsort/internal/colorspace"
)

// bufferOf builds a single-row buffer from explicit pixels.
func bufferOf(space colorspace.Space, pixels ...colorspace.Triple) *colorspace.Buffer {
	return &colorspace.Buffer{W: len(pixels), H: 1, Space: space, Pix: pixels}
}

// appendPixels appends count copies of one pixel to dst and returns it.
func appendPixels(dst []colorspace.Triple, p colorspace.Triple, count int) []colorspace.Triple {
	for i := 0; i < count; i++ {
		dst = append(dst, p)
	}
	return dst
}

func hasDiagnostic(diags []Diagnostic, code string) bool {
	for _, d := range diags {
		if d.Code == code {
			return true
		}
	}
	return false
}

func countDiagnostics(diags []Diagnostic, code string) int {
	n := 0
	for _, d := range diags {
		if d.Code == code {
			n++
		}
	}
	return n
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		tag     string
		want    Algorithm
		wantErr bool
	}{
		{"hue_dist", HueDist, false},
		{"kmeans", KMeans, false},
		{"KMEANS", KMeans, false},
		{" hue_dist ", HueDist, false},
		{"histogram", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, err := ParseAlgorithm(tt.tag)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownAlgorithm) {
					t.Fatalf("ParseAlgorithm(%q) error = %v, want ErrUnknownAlgorithm", tt.tag, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAlgorithm(%q) unexpected error: %v", tt.tag, err)
			}
			if got != tt.want {
				t.Errorf("ParseAlgorithm(%q) = %v, want %v", tt.tag, got, tt.want)
			}
		})
	}
}

func TestParseHeuristic(t *testing.T) {
	tests := []struct {
		tag     string
		want    Heuristic
		wantErr bool
	}{
		{"auto_n_hue", AutoNHue, false},
		{"auto_n_binned_hue", AutoNBinnedHue, false},
		{"auto_n_hue_deviation", AutoNHueDeviation, false},
		{"Auto_N_Hue", AutoNHue, false},
		{"auto", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, err := ParseHeuristic(tt.tag)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownHeuristic) {
					t.Fatalf("ParseHeuristic(%q) error = %v, want ErrUnknownHeuristic", tt.tag, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHeuristic(%q) unexpected error: %v", tt.tag, err)
			}
			if got != tt.want {
				t.Errorf("ParseHeuristic(%q) = %v, want %v", tt.tag, got, tt.want)
			}
		})
	}
}

func TestTagRoundTrips(t *testing.T) {
	for _, a := range []Algorithm{HueDist, KMeans} {
		got, err := ParseAlgorithm(a.String())
		if err != nil || got != a {
			t.Errorf("ParseAlgorithm(%q) = %v, %v; want %v", a.String(), got, err, a)
		}
	}
	for _, h := range []Heuristic{AutoNHue, AutoNBinnedHue, AutoNHueDeviation} {
		got, err := ParseHeuristic(h.String())
		if err != nil || got != h {
			t.Errorf("ParseHeuristic(%q) = %v, %v; want %v", h.String(), got, err, h)
		}
	}
}

func TestResultAccessors(t *testing.T) {
	res := &Result{
		Algorithm: HueDist,
		N:         2,
		Colors: []Color{
			{RGB: colorspace.RGB{R: 255, G: 0, B: 0}, HSV: colorspace.HSV{H: 0, S: 255, V: 255}, Population: 9},
			{RGB: colorspace.RGB{R: 0, G: 0, B: 255}, HSV: colorspace.HSV{H: 240, S: 255, V: 255}, Population: 3},
		},
	}

	if got := res.Dominant(); got.RGB != (colorspace.RGB{R: 255, G: 0, B: 0}) || got.Population != 9 {
		t.Errorf("Dominant() = %+v, want the red entry", got)
	}
	rgbs := res.RGBs()
	hsvs := res.HSVs()
	if len(rgbs) != len(hsvs) || len(rgbs) != 2 {
		t.Fatalf("parallel sequences have lengths %d and %d, want 2 and 2", len(rgbs), len(hsvs))
	}
	if rgbs[1] != (colorspace.RGB{R: 0, G: 0, B: 255}) || hsvs[1] != (colorspace.HSV{H: 240, S: 255, V: 255}) {
		t.Errorf("second entry = %v / %v, want blue in both spaces", rgbs[1], hsvs[1])
	}
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{Code: DiagEmptyHueBucket, Message: "hue 17 has no pixels"}
	if got, want := d.String(), "empty-hue-bucket: hue 17 has no pixels"; got != want {
		t.Errorf("Diagnostic.String() = %q, want %q", got, want)
	}
}
