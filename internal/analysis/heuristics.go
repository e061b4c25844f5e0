package analysis

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/nbeckerphoto/colorsort/internal/colorspace"
)

// Heuristic selects the auto-N variant used when the caller does not
// supply a color count.
type Heuristic int

const (
	// AutoNHue counts exact hues holding a significant share of all pixels.
	AutoNHue Heuristic = iota

	// AutoNBinnedHue applies the same share rule over 30-degree hue bins,
	// which tolerates hue noise in photographic input.
	AutoNBinnedHue

	// AutoNHueDeviation counts hues whose population exceeds the mean by
	// more than one standard deviation.
	AutoNHueDeviation
)

func (h Heuristic) String() string {
	switch h {
	case AutoNHue:
		return "auto_n_hue"
	case AutoNBinnedHue:
		return "auto_n_binned_hue"
	case AutoNHueDeviation:
		return "auto_n_hue_deviation"
	default:
		return "unknown"
	}
}

// ParseHeuristic maps a heuristic tag to its variant. An unrecognized tag
// wraps ErrUnknownHeuristic.
func ParseHeuristic(tag string) (Heuristic, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "auto_n_hue":
		return AutoNHue, nil
	case "auto_n_binned_hue":
		return AutoNBinnedHue, nil
	case "auto_n_hue_deviation":
		return AutoNHueDeviation, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownHeuristic, tag)
	}
}

const (
	minAutoN = 1
	maxAutoN = 8

	// significantShare is the fraction of all pixels a hue (or hue bin)
	// must hold to count as a distinct dominant color candidate.
	significantShare = 0.05

	// hueBinWidth is the bin size in degrees for the binned variant.
	hueBinWidth = 30
)

// SelectN recommends how many dominant colors to extract from the buffer,
// using the named heuristic over its hue distribution. The result is
// always in [1, 8]: every variant's raw count is clamped, so even an image
// with no standout hue yields 1. Deterministic for identical pixel data.
func SelectN(buf *colorspace.Buffer, h Heuristic) (int, error) {
	if buf.Len() == 0 {
		return 0, ErrEmptyBuffer
	}
	dist := NewHueDistribution(buf)
	switch h {
	case AutoNHue:
		return clampN(countSignificant(dist, 1)), nil
	case AutoNBinnedHue:
		return clampN(countSignificant(dist, hueBinWidth)), nil
	case AutoNHueDeviation:
		return clampN(countDeviant(dist)), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownHeuristic, int(h))
	}
}

// countSignificant counts hue groups holding at least significantShare of
// all pixels. binWidth is the group size in degrees; width 1 inspects
// exact hues.
func countSignificant(dist *HueDistribution, binWidth int) int {
	bins := make([]int, (hueDomain+binWidth-1)/binWidth)
	for hue := 0; hue < hueDomain; hue++ {
		bins[hue/binWidth] += dist.Population(hue)
	}
	threshold := float64(dist.Total()) * significantShare
	n := 0
	for _, pop := range bins {
		if float64(pop) >= threshold {
			n++
		}
	}
	return n
}

// countDeviant counts populated hues whose population exceeds the mean
// population by more than one standard deviation. A distribution with
// fewer than two populated hues has no spread to measure; the populated
// count itself is the answer.
func countDeviant(dist *HueDistribution) int {
	pops := make([]float64, 0, dist.Populated())
	for hue := 0; hue < hueDomain; hue++ {
		if p := dist.Population(hue); p > 0 {
			pops = append(pops, float64(p))
		}
	}
	if len(pops) < 2 {
		return len(pops)
	}
	threshold := stat.Mean(pops, nil) + stat.StdDev(pops, nil)
	n := 0
	for _, p := range pops {
		if p > threshold {
			n++
		}
	}
	return n
}

func clampN(n int) int {
	if n < minAutoN {
		return minAutoN
	}
	if n > maxAutoN {
		return maxAutoN
	}
	return n
}
