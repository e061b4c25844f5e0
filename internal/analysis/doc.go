// Package analysis computes dominant colors from pixel data.
//
// This package implements the two interchangeable extraction strategies and
// the heuristics that pick how many colors to extract when the caller does
// not say. All functions are pure transforms over a colorspace.Buffer: they
// take pixels in, return a ranked Result, and never touch a logger or the
// filesystem.
//
// # Strategies
//
// Two algorithms reduce an image to its N most representative colors:
//   - HueDist: bucket every pixel by its exact hue degree, rank the 360
//     buckets by population, and report the top hues with the median
//     saturation and value of each bucket. Cheap and exact, but high-rank
//     hues are often adjacent rather than diverse.
//   - KMeans: partition all RGB pixels into N centroid clusters through an
//     external engine and report the cluster centers, most populous first.
//     The fitted centers and per-pixel assignment are retained on the
//     result so images can later be remapped through the model.
//
// # Ranking and Ties
//
// Both strategies order colors by population descending. Ordering is
// stable: hue buckets with equal populations keep ascending-hue order, and
// clusters with equal populations keep the engine's cluster order. Index 0
// of Result.Colors is always the single most dominant color.
//
// # Diagnostics
//
// Recoverable observations (similar hues, unpopulated buckets, fewer
// distinct hues than requested colors) are collected on the Result as
// Diagnostic values rather than logged, so callers decide what surfaces
// and tests can assert on them. Fatal conditions (unknown algorithm tag,
// empty buffer, bad color count) are returned as errors.
//
// # Clustering Engine
//
// The centroid-clustering engine sits behind the Clusterer interface so
// the strategy orchestration stays independent of the backend.
// KMeansClusterer is the production implementation; tests substitute a
// deterministic fake.
package analysis
