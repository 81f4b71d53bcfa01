// Package goaverage combines K synchronized video clips into a single
// output clip by computing, independently for every pixel position, either
// the weighted arithmetic mean or the statistical median of the K
// corresponding sample values.
//
// The intended use is suppressing independent lossy-compression noise
// across multiple re-encodes of the same source. Feeding time-shifted
// views of one source instead produces a temporal blur.
//
// Inputs are host-provided Clips that must already agree on pixel format,
// dimensions, frame rate, and frame count; this package performs no
// resampling or format conversion. The Mean and Median combiners are
// themselves Clips: each output frame is produced on demand by GetFrame,
// and distinct frame indices may be requested concurrently.
package goaverage
