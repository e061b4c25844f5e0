package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/nbeckerphoto/colorsort/internal/colorspace"
)

// Clusterer is the capability surface of the external centroid-clustering
// engine. Fit partitions points into k groups and returns the k centers
// together with each point's cluster index; Predict assigns arbitrary
// points to their nearest center from a previous fit. Implementations
// must return assignment indices that index into the returned centers.
type Clusterer interface {
	Fit(points [][3]float64, k int) (centers [][3]float64, assignment []int, err error)
	Predict(points, centers [][3]float64) []int
}

// KMeansClusterer implements Clusterer with k-means clustering. Fit
// delegates the partitioning to muesli/kmeans and derives the assignment
// with a nearest-center pass over the input, preserving input order.
// The zero value is ready to use.
type KMeansClusterer struct{}

// Fit partitions points into k clusters.
func (KMeansClusterer) Fit(points [][3]float64, k int) ([][3]float64, []int, error) {
	obs := make(clusters.Observations, len(points))
	for i, p := range points {
		obs[i] = clusters.Coordinates{p[0], p[1], p[2]}
	}
	km := kmeans.New()
	cc, err := km.Partition(obs, k)
	if err != nil {
		return nil, nil, fmt.Errorf("k-means partition: %w", err)
	}
	centers := make([][3]float64, len(cc))
	for i, c := range cc {
		centers[i] = [3]float64{c.Center[0], c.Center[1], c.Center[2]}
	}
	return centers, nearestCenters(points, centers), nil
}

// Predict assigns each point to its nearest center.
func (KMeansClusterer) Predict(points, centers [][3]float64) []int {
	return nearestCenters(points, centers)
}

func nearestCenters(points, centers [][3]float64) []int {
	out := make([]int, len(points))
	for i, p := range points {
		best, bestDist := 0, math.MaxFloat64
		for j, c := range centers {
			if d := sqDist(p, c); d < bestDist {
				best, bestDist = j, d
			}
		}
		out[i] = best
	}
	return out
}

func sqDist(a, b [3]float64) float64 {
	dr := a[0] - b[0]
	dg := a[1] - b[1]
	db := a[2] - b[2]
	return dr*dr + dg*dg + db*db
}

// Points flattens a buffer to one [r, g, b] point per pixel in row-major
// order, the shape the clustering engine consumes. The buffer is converted
// to RGB space first when needed.
func Points(buf *colorspace.Buffer) [][3]float64 {
	rgb := buf.Convert(colorspace.SpaceRGB)
	pts := make([][3]float64, rgb.Len())
	for i, p := range rgb.Pix {
		pts[i] = [3]float64{float64(p[0]), float64(p[1]), float64(p[2])}
	}
	return pts
}

// ExtractKMeans derives dominant colors by centroid clustering over RGB
// pixels.
//
// All pixels are flattened to RGB points and partitioned into n clusters
// by the engine (a nil engine defaults to KMeansClusterer). Clusters are
// ranked by population descending, ties keeping the engine's cluster
// order, and the centers are emitted as the dominant colors: the HSV
// triple is derived from the unrounded center, then the RGB presentation
// value is rounded. Exactly n colors come back; degenerate or duplicate
// centers are possible and are not deduplicated.
//
// The fitted centers and per-pixel assignment are retained on the result
// as the ClusterModel, which later remapping operations require.
func ExtractKMeans(buf *colorspace.Buffer, n int, engine Clusterer) (*Result, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrBadColorCount, n)
	}
	if buf.Len() == 0 {
		return nil, ErrEmptyBuffer
	}
	if engine == nil {
		engine = KMeansClusterer{}
	}

	points := Points(buf)
	centers, assignment, err := engine.Fit(points, n)
	if err != nil {
		return nil, fmt.Errorf("fit %d clusters over %d points: %w", n, len(points), err)
	}

	pops := make([]int, len(centers))
	for _, ci := range assignment {
		pops[ci]++
	}
	order := make([]int, len(centers))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return pops[order[a]] > pops[order[b]]
	})

	res := &Result{
		Algorithm: KMeans,
		N:         n,
		Colors:    make([]Color, 0, len(centers)),
		Model:     &ClusterModel{Centers: centers, Assignment: assignment},
	}
	for _, ci := range order {
		c := centers[ci]
		res.Colors = append(res.Colors, Color{
			RGB:        colorspace.RGB{R: roundChannel(c[0]), G: roundChannel(c[1]), B: roundChannel(c[2])},
			HSV:        colorspace.HSVOf(c[0], c[1], c[2]),
			Population: pops[ci],
		})
	}
	return res, nil
}

func roundChannel(f float64) int {
	return int(math.Round(f))
}
