// Package imaging binds source images to their dominant-color analysis.
//
// The central type is AnalyzedImage: it decodes a source image, resizes it
// for analysis, runs the selected extraction strategy, and exposes the
// derived queries the collection sorter and the output writers consume.
// Construction does all the work; an AnalyzedImage is immutable afterwards.
//
// # Analysis Pipeline
//
// Construction proceeds in fixed order:
//   - Decode the source (PNG, JPEG, or GIF through the standard decoders).
//   - Record orientation from the original dimensions: Horizontal when
//     width >= height, Vertical otherwise.
//   - Resize so the long axis matches the requested length, preserving
//     aspect ratio (no resize when no length is given).
//   - Resolve the color count: an explicit positive count wins, otherwise
//     the configured auto-N heuristic inspects the resized pixels.
//   - Run the selected strategy and store the ranked result.
//
// # Derived Queries
//
// All queries are pure reads of the stored result: dominant colors in both
// spaces, monochrome classification (dominant saturation exactly 0), and
// the sort metric, a 90-degree hue rotation that keeps the red region
// contiguous when collections are ordered by hue.
//
// # Output Artifacts
//
// Writers turn analyzed images into files: sequenced copies named after
// their dominant color, cluster-remapped reconstructions, and a spectrum
// strip of dominant-color tiles. Encoding goes through bild/imgio with the
// encoder chosen by file extension.
//
// # Error Handling
//
// Construction fails on unreadable or undecodable files, unknown algorithm
// or heuristic tags, and empty pixel data. Remap is only valid for images
// analyzed with the clustering strategy; anything else reports
// ErrNoClusterModel. Recoverable analysis observations are carried as
// diagnostics on the image, not logged.
package imaging
