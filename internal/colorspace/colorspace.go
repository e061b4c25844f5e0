package colorspace

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Space identifies the color space a Triple or Buffer is expressed in.
type Space int

const (
	// SpaceRGB is 8-bit red/green/blue, each channel 0-255.
	SpaceRGB Space = iota

	// SpaceHSV is hue in degrees (0-359) with 8-bit saturation and value
	// channels (0-255).
	SpaceHSV
)

func (s Space) String() string {
	switch s {
	case SpaceRGB:
		return "rgb"
	case SpaceHSV:
		return "hsv"
	default:
		return "unknown"
	}
}

// RGB is a color with 8-bit components.
//
// Each component ranges from 0 to 255. Channels are stored as int rather
// than uint8 because analysis results pass through float arithmetic
// (cluster centers, medians) before rounding.
type RGB struct {
	R int `json:"r"` // Red component (0-255)
	G int `json:"g"` // Green component (0-255)
	B int `json:"b"` // Blue component (0-255)
}

// HSV is a color in HSV (Hue, Saturation, Value) space.
//
// Hue is kept in degrees so that hue arithmetic (bucketing by exact hue,
// rotating the hue circle for sort order) stays on the 0-360 circle.
// Saturation and value use the 8-bit range.
type HSV struct {
	H int `json:"h"` // Hue: 0-359 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-255 (0=gray/monochrome)
	V int `json:"v"` // Value: 0-255 (0=black)
}

func (c RGB) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.R, c.G, c.B)
}

func (c HSV) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.H, c.S, c.V)
}

// Color returns the triple as a stdlib color value, fully opaque.
func (c RGB) Color() color.RGBA {
	return color.RGBA{R: uint8(clamp8(c.R)), G: uint8(clamp8(c.G)), B: uint8(clamp8(c.B)), A: 255}
}

// HSV converts the triple to HSV space.
func (c RGB) HSV() HSV {
	return HSVOf(float64(c.R), float64(c.G), float64(c.B))
}

// HSVOf converts RGB components on the 8-bit scale to a normalized HSV
// triple. It accepts floats so that float-valued colors (cluster centers)
// convert without losing precision to channel rounding first.
//
// The conversion itself is delegated to go-colorful; this function only
// handles the scaling between the 8-bit channels used here and colorful's
// unit-interval representation. Results are normalized (see NormalizeHSV).
func HSVOf(r, g, b float64) HSV {
	col := colorful.Color{
		R: r / 255.0,
		G: g / 255.0,
		B: b / 255.0,
	}
	h, s, v := col.Hsv()
	return NormalizeHSV(roundInt(h), roundInt(s*255.0), roundInt(v*255.0))
}

// RGB converts the triple to RGB space via go-colorful.
func (c HSV) RGB() RGB {
	col := colorful.Hsv(float64(c.H), float64(c.S)/255.0, float64(c.V)/255.0)
	r, g, b := col.RGB255()
	return RGB{R: int(r), G: int(g), B: int(b)}
}

// NormalizeHSV brings an HSV triple into canonical form: hue wraps modulo
// 360 (negative hues wrap upward), saturation and value clamp to [0, 255].
// Hue wrapping happens before anything else so that rotated hues such as
// 360 or -90 land back on the circle.
func NormalizeHSV(h, s, v int) HSV {
	h %= 360
	if h < 0 {
		h += 360
	}
	return HSV{H: h, S: clamp8(s), V: clamp8(v)}
}

func clamp8(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

func roundInt(f float64) int {
	return int(math.Round(f))
}

// Triple is one pixel of a Buffer. Channel meaning depends on the buffer's
// space: [r, g, b] for SpaceRGB, [h, s, v] for SpaceHSV.
type Triple [3]int

// Buffer is a width x height grid of pixels in a single color space,
// stored row-major (index y*W + x). A buffer is read-only once built:
// analysis passes over it but never mutates it.
type Buffer struct {
	W, H  int
	Space Space
	Pix   []Triple
}

// NewRGBBuffer captures an image's pixels as an 8-bit RGB buffer.
//
// Pixels are read through the image's native color model and scaled from
// 16-bit to 8-bit components. The alpha channel is discarded; analysis
// operates on opaque color values only.
func NewRGBBuffer(img image.Image) *Buffer {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	buf := &Buffer{W: w, H: h, Space: SpaceRGB, Pix: make([]Triple, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			buf.Pix[y*w+x] = Triple{int(r >> 8), int(g >> 8), int(b >> 8)}
		}
	}
	return buf
}

// At returns the pixel at (x, y). Coordinates are 0-based from the top-left
// corner; callers are expected to stay within bounds.
func (b *Buffer) At(x, y int) Triple {
	return b.Pix[y*b.W+x]
}

// Len returns the number of pixels in the buffer.
func (b *Buffer) Len() int {
	return len(b.Pix)
}

// Convert returns a buffer with the same pixels expressed in the requested
// space. Converting to the buffer's own space returns the buffer itself
// (buffers are read-only, so sharing is safe).
func (b *Buffer) Convert(space Space) *Buffer {
	if space == b.Space {
		return b
	}
	out := &Buffer{W: b.W, H: b.H, Space: space, Pix: make([]Triple, len(b.Pix))}
	switch {
	case b.Space == SpaceRGB && space == SpaceHSV:
		for i, p := range b.Pix {
			hsv := RGB{R: p[0], G: p[1], B: p[2]}.HSV()
			out.Pix[i] = Triple{hsv.H, hsv.S, hsv.V}
		}
	case b.Space == SpaceHSV && space == SpaceRGB:
		for i, p := range b.Pix {
			rgb := HSV{H: p[0], S: p[1], V: p[2]}.RGB()
			out.Pix[i] = Triple{rgb.R, rgb.G, rgb.B}
		}
	}
	return out
}
