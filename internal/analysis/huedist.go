package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/nbeckerphoto/colorsort/internal/colorspace"
)

// hueDomain is the number of distinct hue keys. Buckets exist for every
// degree whether or not any pixel lands there, which keeps ranking and
// tie-breaking defined over the full circle.
const hueDomain = 360

// HueDistribution buckets the pixels of an image by exact hue degree.
// It is the transient intermediate of the hue-distance strategy and the
// hue-based auto-N heuristics; discard it once colors are derived.
type HueDistribution struct {
	buckets [hueDomain][]colorspace.Triple
	total   int
}

// NewHueDistribution buckets every pixel of the buffer by its hue,
// converting to HSV space first when needed.
func NewHueDistribution(buf *colorspace.Buffer) *HueDistribution {
	hsv := buf.Convert(colorspace.SpaceHSV)
	dist := &HueDistribution{total: hsv.Len()}
	for _, p := range hsv.Pix {
		dist.buckets[p[0]%hueDomain] = append(dist.buckets[p[0]%hueDomain], p)
	}
	return dist
}

// Population returns the number of pixels observed at the given hue.
func (d *HueDistribution) Population(hue int) int {
	return len(d.buckets[hue])
}

// Total returns the number of pixels in the distribution.
func (d *HueDistribution) Total() int {
	return d.total
}

// Populated returns how many hues hold at least one pixel.
func (d *HueDistribution) Populated() int {
	n := 0
	for _, b := range d.buckets {
		if len(b) > 0 {
			n++
		}
	}
	return n
}

// Rank returns all hue keys ordered by bucket population descending.
// Equal populations keep ascending-hue order (the buckets' natural order,
// preserved by the stable sort).
func (d *HueDistribution) Rank() []int {
	hues := make([]int, hueDomain)
	for i := range hues {
		hues[i] = i
	}
	sort.SliceStable(hues, func(a, b int) bool {
		return len(d.buckets[hues[a]]) > len(d.buckets[hues[b]])
	})
	return hues
}

// MedianSatVal returns the median saturation and value of the pixels at
// the given hue. An unpopulated hue yields (0, 0).
func (d *HueDistribution) MedianSatVal(hue int) (sat, val int) {
	px := d.buckets[hue]
	if len(px) == 0 {
		return 0, 0
	}
	sats := make([]int, len(px))
	vals := make([]int, len(px))
	for i, p := range px {
		sats[i] = p[1]
		vals[i] = p[2]
	}
	return median(sats), median(vals)
}

// median returns the median of vs rounded to the nearest integer. Even
// lengths take the mean of the two middle elements.
func median(vs []int) int {
	sorted := make([]int, len(vs))
	copy(sorted, vs)
	sort.Ints(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return int(math.Round(float64(sorted[mid-1]+sorted[mid]) / 2.0))
}

// ExtractHueDist derives dominant colors by hue-population ranking.
//
// Every pixel lands in the bucket for its exact hue degree. Buckets are
// ranked by population descending and the top n supply the result: the
// bucket's hue plus the median saturation and value of its pixels, robust
// to outliers in a way a mean would not be. Each triple is normalized and
// converted to RGB, so the two result sequences stay parallel.
//
// Requesting more colors than the hue domain clamps n to 360; requesting
// more than the populated hues reports DiagInsufficientHues and fills the
// tail from unpopulated buckets, each of which reports DiagEmptyHueBucket
// with saturation and value 0. Any n above 1 reports DiagSimilarHues,
// since ranking by population tends to return adjacent hues rather than
// diverse ones.
func ExtractHueDist(buf *colorspace.Buffer, n int) (*Result, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrBadColorCount, n)
	}
	if buf.Len() == 0 {
		return nil, ErrEmptyBuffer
	}

	dist := NewHueDistribution(buf)
	res := &Result{Algorithm: HueDist}

	if n > 1 {
		res.warn(DiagSimilarHues, fmt.Sprintf(
			"%d colors requested by hue population; high-rank hues are often adjacent rather than diverse", n))
	}
	requested := n
	if n > hueDomain {
		n = hueDomain
	}
	if populated := dist.Populated(); requested > populated {
		res.warn(DiagInsufficientHues, fmt.Sprintf(
			"%d colors requested but only %d hues are populated", requested, populated))
	}

	res.N = n
	res.Colors = make([]Color, 0, n)
	for _, hue := range dist.Rank()[:n] {
		pop := dist.Population(hue)
		if pop == 0 {
			res.warn(DiagEmptyHueBucket, fmt.Sprintf(
				"hue %d has no pixels; saturation and value default to 0", hue))
		}
		sat, val := dist.MedianSatVal(hue)
		hsv := colorspace.NormalizeHSV(hue, sat, val)
		res.Colors = append(res.Colors, Color{RGB: hsv.RGB(), HSV: hsv, Population: pop})
	}
	return res, nil
}
