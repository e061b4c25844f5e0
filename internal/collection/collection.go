// Package collection orders analyzed images into presentation sequences.
//
// Sorting is a pure function over already-computed results: it partitions
// a set of analyzed images into color and monochrome groups, orders each
// group, and optionally rotates the color sequence so a chosen anchor
// image leads. Nothing here touches pixels or performs I/O.
package collection

import (
	"fmt"
	"sort"

	"github.com/nbeckerphoto/colorsort/internal/analysis"
	"github.com/nbeckerphoto/colorsort/internal/imaging"
)

// DiagAnchorNotFound reports an anchor name that matched no color image;
// the sequence was left unrotated.
const DiagAnchorNotFound = "anchor-not-found"

// Result holds the presentation sequences produced by Sort. All is the
// rotated color sequence followed by the monochrome sequence; Color and
// Monochrome are the two partitions on their own. The slices share their
// entries, never copies of the underlying images.
type Result struct {
	All         []*imaging.AnalyzedImage
	Color       []*imaging.AnalyzedImage
	Monochrome  []*imaging.AnalyzedImage
	Diagnostics []analysis.Diagnostic
}

// Sort partitions images into color and monochrome groups and orders each
// for presentation.
//
// Color images sort ascending by (SortMetric, dominant value) so hues run
// around the rotated circle with darker images before brighter ones at
// the same hue. Monochrome images sort ascending by dominant value alone,
// black towards white. Both sorts are stable: images with identical keys
// keep their input order.
//
// A non-empty anchor names the image that should lead the color sequence.
// The first match in the sorted sequence, at index k, rotates the
// sequence left by k; an anchor that matches nothing reports
// anchor-not-found and leaves the sequence unrotated. Rotation is a pure
// cyclic permutation, so the sequence keeps exactly its elements.
//
// The input slice is not modified.
func Sort(images []*imaging.AnalyzedImage, anchor string) Result {
	var res Result
	for _, img := range images {
		if img.IsMonochrome() {
			res.Monochrome = append(res.Monochrome, img)
		} else {
			res.Color = append(res.Color, img)
		}
	}

	sort.SliceStable(res.Color, func(i, j int) bool {
		a, b := res.Color[i], res.Color[j]
		if a.SortMetric() != b.SortMetric() {
			return a.SortMetric() < b.SortMetric()
		}
		return a.DominantColorHSV().V < b.DominantColorHSV().V
	})
	sort.SliceStable(res.Monochrome, func(i, j int) bool {
		return res.Monochrome[i].DominantColorHSV().V < res.Monochrome[j].DominantColorHSV().V
	})

	if anchor != "" {
		if k := indexByName(res.Color, anchor); k >= 0 {
			res.Color = rotate(res.Color, k)
		} else {
			res.Diagnostics = append(res.Diagnostics, analysis.Diagnostic{
				Code:    DiagAnchorNotFound,
				Message: fmt.Sprintf("anchor %q matches no color image; sequence left unrotated", anchor),
			})
		}
	}

	res.All = make([]*imaging.AnalyzedImage, 0, len(res.Color)+len(res.Monochrome))
	res.All = append(res.All, res.Color...)
	res.All = append(res.All, res.Monochrome...)
	return res
}

// rotate returns s cyclically rotated left by k: s[k:] followed by s[:k].
func rotate(s []*imaging.AnalyzedImage, k int) []*imaging.AnalyzedImage {
	if len(s) == 0 {
		return s
	}
	k %= len(s)
	if k == 0 {
		return s
	}
	out := make([]*imaging.AnalyzedImage, 0, len(s))
	out = append(out, s[k:]...)
	out = append(out, s[:k]...)
	return out
}

func indexByName(s []*imaging.AnalyzedImage, name string) int {
	for i, img := range s {
		if img.Name() == name {
			return i
		}
	}
	return -1
}
