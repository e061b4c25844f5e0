package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/nbeckerphoto/colorsort/internal/analysis"
	"github.com/nbeckerphoto/colorsort/internal/colorspace"
)

// ErrNoClusterModel reports a remap request against an image that carries
// no fitted cluster model. Only the KMeans strategy retains one.
var ErrNoClusterModel = errors.New("no fitted cluster model")

// Orientation tags an image's aspect, computed from its original
// (pre-resize) dimensions.
type Orientation int

const (
	// Horizontal: width >= height. Square images count as horizontal.
	Horizontal Orientation = iota

	// Vertical: height > width.
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Options configure the analysis performed when an AnalyzedImage is
// constructed. The zero value analyzes at native size with the
// hue-distance strategy and the default auto-N heuristic.
type Options struct {
	// Algorithm selects the extraction strategy.
	Algorithm analysis.Algorithm

	// NColors is the number of dominant colors to extract. Zero (or any
	// non-positive count) defers to the heuristic.
	NColors int

	// Heuristic names the auto-N variant consulted when NColors is not
	// positive.
	Heuristic analysis.Heuristic

	// ResizeLongAxis scales the image before analysis so its long axis has
	// this length in pixels. Zero keeps the native size.
	ResizeLongAxis int

	// Engine overrides the clustering engine used by the KMeans strategy.
	// Nil selects the k-means default.
	Engine analysis.Clusterer
}

// AnalyzedImage binds one source image to its dominant-color result.
// Instances are built once per source image and immutable afterwards;
// every query is a pure read. Fields hold the resized pixel buffer, not
// the original decode, since analysis and outputs operate on the resized
// image.
type AnalyzedImage struct {
	name         string
	origW, origH int
	orientation  Orientation
	buffer       *colorspace.Buffer
	result       *analysis.Result
	engine       analysis.Clusterer
}

// New decodes, resizes, and analyzes the image file at path. The file's
// base name becomes the image's name, which sorting and output naming use.
func New(path string, opts Options) (*AnalyzedImage, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	return NewFromImage(img, filepath.Base(path), opts)
}

// NewFromImage analyzes an already-decoded image under the given name.
func NewFromImage(img image.Image, name string, opts Options) (*AnalyzedImage, error) {
	bounds := img.Bounds()
	origW, origH := bounds.Dx(), bounds.Dy()
	orientation := Horizontal
	if origH > origW {
		orientation = Vertical
	}

	buf := colorspace.NewRGBBuffer(resizeLongAxis(img, opts.ResizeLongAxis))

	engine := opts.Engine
	if engine == nil {
		engine = analysis.KMeansClusterer{}
	}

	n := opts.NColors
	if n <= 0 {
		var err error
		n, err = analysis.SelectN(buf, opts.Heuristic)
		if err != nil {
			return nil, fmt.Errorf("analyze %s: %w", name, err)
		}
	}

	var result *analysis.Result
	var err error
	switch opts.Algorithm {
	case analysis.HueDist:
		result, err = analysis.ExtractHueDist(buf, n)
	case analysis.KMeans:
		result, err = analysis.ExtractKMeans(buf, n, engine)
	default:
		return nil, fmt.Errorf("%w: tag %d", analysis.ErrUnknownAlgorithm, int(opts.Algorithm))
	}
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", name, err)
	}

	return &AnalyzedImage{
		name:        name,
		origW:       origW,
		origH:       origH,
		orientation: orientation,
		buffer:      buf,
		result:      result,
		engine:      engine,
	}, nil
}

// resizeLongAxis scales img so its long axis equals target, preserving
// aspect ratio. The short axis truncates rather than rounds, matching the
// downstream expectation that both axes stay within the target box.
// A non-positive target keeps the image as is.
func resizeLongAxis(img image.Image, target int) image.Image {
	if target <= 0 {
		return img
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w >= h {
		short := int(float64(h) / float64(w) * float64(target))
		if short < 1 {
			short = 1
		}
		return imaging.Resize(img, target, short, imaging.Lanczos)
	}
	short := int(float64(w) / float64(h) * float64(target))
	if short < 1 {
		short = 1
	}
	return imaging.Resize(img, short, target, imaging.Lanczos)
}

// Name returns the image's name (the source file's base name).
func (a *AnalyzedImage) Name() string {
	return a.name
}

// Stem returns the image's name without its file extension.
func (a *AnalyzedImage) Stem() string {
	return strings.TrimSuffix(a.name, filepath.Ext(a.name))
}

// Orientation reports Horizontal or Vertical from the original dimensions.
func (a *AnalyzedImage) Orientation() Orientation {
	return a.orientation
}

// OriginalSize returns the pre-resize dimensions of the source image.
func (a *AnalyzedImage) OriginalSize() (w, h int) {
	return a.origW, a.origH
}

// Algorithm returns the strategy that produced the result.
func (a *AnalyzedImage) Algorithm() analysis.Algorithm {
	return a.result.Algorithm
}

// N returns the number of dominant colors extracted.
func (a *AnalyzedImage) N() int {
	return a.result.N
}

// Diagnostics returns the recoverable observations collected during
// analysis, in the order they occurred.
func (a *AnalyzedImage) Diagnostics() []analysis.Diagnostic {
	return a.result.Diagnostics
}

// DominantColorRGB returns the most dominant color in RGB form.
func (a *AnalyzedImage) DominantColorRGB() colorspace.RGB {
	return a.result.Dominant().RGB
}

// DominantColorHSV returns the most dominant color in HSV form.
func (a *AnalyzedImage) DominantColorHSV() colorspace.HSV {
	return a.result.Dominant().HSV
}

// DominantColorsRGB returns all extracted colors in rank order, RGB form.
func (a *AnalyzedImage) DominantColorsRGB() []colorspace.RGB {
	return a.result.RGBs()
}

// DominantColorsHSV returns all extracted colors in rank order, HSV form.
func (a *AnalyzedImage) DominantColorsHSV() []colorspace.HSV {
	return a.result.HSVs()
}

// IsMonochrome reports whether the most dominant color has saturation
// exactly 0, classifying the image as black-and-white for sorting.
func (a *AnalyzedImage) IsMonochrome() bool {
	return a.DominantColorHSV().S == 0
}

// SortMetric returns the dominant hue rotated by 90 degrees on the hue
// circle. The rotation moves the circle's wrap point into the middle of
// the red region, so near-red hues on either side of 0 sort together
// instead of landing at opposite ends of the sequence. Always in [0, 360).
func (a *AnalyzedImage) SortMetric() int {
	return (a.DominantColorHSV().H + 90) % 360
}

// Image reconstructs the analyzed (resized) pixels as a standard image.
func (a *AnalyzedImage) Image() image.Image {
	out := image.NewRGBA(image.Rect(0, 0, a.buffer.W, a.buffer.H))
	for i, p := range a.buffer.Pix {
		out.SetRGBA(i%a.buffer.W, i/a.buffer.W, color.RGBA{
			R: uint8(p[0]), G: uint8(p[1]), B: uint8(p[2]), A: 255,
		})
	}
	return out
}

// Remap rebuilds an image with every pixel replaced by the center color of
// its assigned cluster.
//
// With a nil other, the receiver's own pixels are rebuilt from the fitted
// assignment. With a non-nil other, other's pixels are first assigned to
// the receiver's fitted centers (nearest center) and the output takes
// other's dimensions. Either way the colors come from the receiver's
// model: remapping another image through this image's palette is the
// point of the operation.
//
// Only the KMeans strategy retains a cluster model; remapping an image
// analyzed any other way fails with ErrNoClusterModel.
func (a *AnalyzedImage) Remap(other *AnalyzedImage) (image.Image, error) {
	model := a.result.Model
	if model == nil {
		return nil, fmt.Errorf("%w: %s was analyzed with %s", ErrNoClusterModel, a.name, a.result.Algorithm)
	}

	buf, assignment := a.buffer, model.Assignment
	if other != nil {
		buf = other.buffer
		assignment = a.engine.Predict(analysis.Points(buf), model.Centers)
	}

	out := image.NewRGBA(image.Rect(0, 0, buf.W, buf.H))
	for i, ci := range assignment {
		c := model.Centers[ci]
		out.SetRGBA(i%buf.W, i/buf.W, color.RGBA{
			R: uint8(math.Round(c[0])),
			G: uint8(math.Round(c[1])),
			B: uint8(math.Round(c[2])),
			A: 255,
		})
	}
	return out, nil
}

// Filename generates the output file name encoding the dominant color:
//
//	{index}_{base}_hue={h}_sat={s}_val={v}_n={n}.jpg
//
// A negative index omits the leading {index}_ prefix. The index is the
// image's position in the presentation sequence, assigned by the writer.
func (a *AnalyzedImage) Filename(index int, base string) string {
	hsv := a.DominantColorHSV()
	name := fmt.Sprintf("%s_hue=%d_sat=%d_val=%d_n=%d.jpg", base, hsv.H, hsv.S, hsv.V, a.N())
	if index >= 0 {
		name = fmt.Sprintf("%d_%s", index, name)
	}
	return name
}

// Summary returns a human-readable multi-line description of the result:
// the image name, color count, algorithm, and both color sequences.
func (a *AnalyzedImage) Summary() string {
	return fmt.Sprintf("%s: n=%d, algorithm=%s\n    rgb=%v\n    hsv=%v",
		a.name, a.N(), a.result.Algorithm, a.result.RGBs(), a.result.HSVs())
}
