package analysis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nbeckerphoto/colorsort/internal/colorspace"
)

// Sentinel errors returned by extractors and heuristics. Callers match
// with errors.Is; wrapped messages carry the offending value.
var (
	// ErrUnknownAlgorithm reports an algorithm tag that matches no strategy.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")

	// ErrUnknownHeuristic reports an auto-N heuristic tag that matches no variant.
	ErrUnknownHeuristic = errors.New("unknown heuristic")

	// ErrEmptyBuffer reports a pixel buffer with no pixels.
	ErrEmptyBuffer = errors.New("pixel buffer is empty")

	// ErrBadColorCount reports a requested color count below 1.
	ErrBadColorCount = errors.New("color count must be at least 1")
)

// Algorithm selects the dominant-color extraction strategy.
type Algorithm int

const (
	// HueDist ranks exact-hue buckets by pixel population.
	HueDist Algorithm = iota

	// KMeans ranks centroid clusters of RGB pixels by population.
	KMeans
)

func (a Algorithm) String() string {
	switch a {
	case HueDist:
		return "hue_dist"
	case KMeans:
		return "kmeans"
	default:
		return "unknown"
	}
}

// ParseAlgorithm maps a selector tag ("hue_dist" or "kmeans", case
// insensitive) to its Algorithm. An unrecognized tag is a configuration
// error: it wraps ErrUnknownAlgorithm.
func ParseAlgorithm(tag string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "hue_dist":
		return HueDist, nil
	case "kmeans":
		return KMeans, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, tag)
	}
}

// Diagnostic codes emitted by the extractors.
const (
	// DiagSimilarHues: more than one color requested from the hue-distance
	// strategy, whose ranking favors population over diversity.
	DiagSimilarHues = "similar-hues"

	// DiagInsufficientHues: more colors requested than distinct hues exist
	// in the image; the count was clamped to the hue domain.
	DiagInsufficientHues = "insufficient-hues"

	// DiagEmptyHueBucket: a reported hue holds no pixels, so its saturation
	// and value defaulted to 0.
	DiagEmptyHueBucket = "empty-hue-bucket"
)

// Diagnostic is a recoverable observation made while extracting colors.
// Extractors collect diagnostics on the Result instead of logging so the
// caller decides what surfaces where.
type Diagnostic struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (d Diagnostic) String() string {
	return d.Code + ": " + d.Message
}

// Color is one dominant color expressed in both result spaces. The two
// triples describe the same color; Population is the number of pixels
// backing it (bucket or cluster size).
type Color struct {
	RGB        colorspace.RGB `json:"rgb"`
	HSV        colorspace.HSV `json:"hsv"`
	Population int            `json:"population"`
}

// ClusterModel is the side artifact retained by the clustering strategy:
// the fitted centers, unrounded and in the engine's cluster order, plus
// the per-pixel cluster index for the analyzed buffer. Assignment values
// index into Centers, not into the ranked color sequence.
type ClusterModel struct {
	Centers    [][3]float64
	Assignment []int
}

// Result is a ranked dominant-color extraction. Colors is ordered most
// dominant first and always parallel in both spaces. Model is non-nil
// only when the KMeans strategy produced the result; it is what makes
// remapping possible.
type Result struct {
	Algorithm   Algorithm     `json:"algorithm"`
	N           int           `json:"n"`
	Colors      []Color       `json:"colors"`
	Diagnostics []Diagnostic  `json:"diagnostics,omitempty"`
	Model       *ClusterModel `json:"-"`
}

// Dominant returns the most dominant color.
func (r *Result) Dominant() Color {
	return r.Colors[0]
}

// RGBs returns the ranked RGB sequence.
func (r *Result) RGBs() []colorspace.RGB {
	out := make([]colorspace.RGB, len(r.Colors))
	for i, c := range r.Colors {
		out[i] = c.RGB
	}
	return out
}

// HSVs returns the ranked HSV sequence.
func (r *Result) HSVs() []colorspace.HSV {
	out := make([]colorspace.HSV, len(r.Colors))
	for i, c := range r.Colors {
		out[i] = c.HSV
	}
	return out
}

func (r *Result) warn(code, message string) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Code: code, Message: message})
}
