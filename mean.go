package goaverage

import (
	"context"
	"fmt"
)

// weightScale is the fixed-point scale applied to normalized weights on
// the integer path. A uint64 accumulator then holds
// K * maxSample * weightScale for every supported width at any realistic
// K (2^32 * 2^16 * K fits until K approaches 2^16).
const weightScale = 1 << 16

// MeanOptions configures a Mean combiner.
//
// Preset selects picture-type weighting; Discard selects a trimmed mean
// that drops the Discard largest and Discard smallest of the K samples at
// every pixel before averaging. The two are mutually exclusive: a
// differential-weighting preset cannot be combined with a nonzero
// Discard.
type MeanOptions struct {
	Preset  Preset
	Discard int
}

// Mean combines K clips by per-pixel weighted averaging. It implements
// Clip: each output frame is computed on demand, and distinct frame
// indices may be requested concurrently.
//
// A Mean is configured for a specific clip set at construction and is
// immutable afterwards. It does not accumulate history and does not
// retain information between calls to GetFrame.
type Mean struct {
	combiner
	mult     [3]float64
	weighted bool
	discard  int
}

// NewMean validates the input clips and builds a Mean combiner.
//
// All integer widths plus binary16 and binary32 floats are accepted.
// Construction fails with FormatMismatchError, UnsupportedFormatError, or
// InvalidArgumentError; once it succeeds, no per-frame validation cost
// remains.
func NewMean(clips []Clip, opts MeanOptions) (*Mean, error) {
	c, err := newCombiner("Mean", clips, true)
	if err != nil {
		return nil, err
	}

	weighted := !opts.Preset.uniform()
	if opts.Discard != 0 {
		if weighted {
			return nil, &InvalidArgumentError{
				Reason: "a weighting preset and discard cannot be used " +
					"simultaneously"}
		}
		if opts.Discard < 0 || 2*opts.Discard >= len(clips) {
			return nil, &InvalidArgumentError{
				Reason: fmt.Sprintf("discard %d must leave at least one of "+
					"the %d samples", opts.Discard, len(clips))}
		}
	}

	return &Mean{
		combiner: c,
		mult:     opts.Preset.Multipliers(),
		weighted: weighted,
		discard:  opts.Discard,
	}, nil
}

// GetFrame computes output frame n. It fetches frame n from every input
// clip, averages the K samples at each pixel position, and returns a
// fully populated frame of the validated format. The frame is freshly
// allocated and exclusively owned by the caller; a cancelled context
// abandons the computation without publishing a partial frame.
func (m *Mean) GetFrame(ctx context.Context, n int) (*Frame, error) {
	srcs, err := m.sourceFrames(ctx, n)
	if err != nil {
		return nil, err
	}

	out := NewFrame(m.format)
	out.PictureType = srcs[0].PictureType

	switch {
	case m.format.SamplingFormat.IsFloat():
		err = m.meanFloat(ctx, out, srcs)
	case m.weighted:
		err = m.weightedMeanUint(ctx, out, srcs)
	default:
		err = m.meanUint(ctx, out, srcs)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// meanUint averages integer samples with uniform weights: plain sums in a
// uint64 accumulator, then round-to-nearest division. When discard is
// set, the trimmed variant sorts each pixel's K samples and averages the
// middle K-2*discard of them.
func (m *Mean) meanUint(ctx context.Context, out *Frame,
	srcs []*Frame) error {

	sf := m.format.SamplingFormat
	k := uint64(len(srcs))
	src, dst := rowScratchUint(len(srcs), m.format.Width)

	if m.discard == 0 {
		return m.forEachRow(ctx, out, srcs,
			func(width int, dstRow []byte, rows [][]byte) {
				for i, row := range rows {
					loadRowUint(sf, row, src[i][:width])
				}
				for x := 0; x < width; x++ {
					var acc uint64
					for i := range src {
						acc += src[i][x]
					}
					dst[x] = (acc + k/2) / k
				}
				storeRowUint(sf, dst[:width], dstRow)
			})
	}

	vals := make([]uint64, len(srcs))
	kept := uint64(len(srcs) - 2*m.discard)
	return m.forEachRow(ctx, out, srcs,
		func(width int, dstRow []byte, rows [][]byte) {
			for i, row := range rows {
				loadRowUint(sf, row, src[i][:width])
			}
			for x := 0; x < width; x++ {
				for i := range src {
					vals[i] = src[i][x]
				}
				insertionSortUint64(vals)
				var acc uint64
				for _, v := range vals[m.discard : len(vals)-m.discard] {
					acc += v
				}
				dst[x] = (acc + kept/2) / kept
			}
			storeRowUint(sf, dst[:width], dstRow)
		})
}

// weightedMeanUint averages integer samples under picture-type weighting.
// The normalized per-clip weights are scaled to 16-bit fixed point so the
// inner loop stays in integer arithmetic; dividing the accumulator by the
// scaled weight sum with round-to-nearest makes a single clip (or K
// identical constant clips) reproduce the input exactly.
func (m *Mean) weightedMeanUint(ctx context.Context, out *Frame,
	srcs []*Frame) error {

	weights := frameWeights(srcs, m.mult)
	normalizeWeights(weights)

	scaled := make([]uint64, len(weights))
	var wsum uint64
	for i, w := range weights {
		scaled[i] = uint64(w*weightScale + 0.5)
		wsum += scaled[i]
	}

	sf := m.format.SamplingFormat
	src, dst := rowScratchUint(len(srcs), m.format.Width)
	return m.forEachRow(ctx, out, srcs,
		func(width int, dstRow []byte, rows [][]byte) {
			for i, row := range rows {
				loadRowUint(sf, row, src[i][:width])
			}
			for x := 0; x < width; x++ {
				var acc uint64
				for i := range src {
					acc += src[i][x] * scaled[i]
				}
				dst[x] = (acc + wsum/2) / wsum
			}
			storeRowUint(sf, dst[:width], dstRow)
		})
}

// meanFloat averages float samples in float64, promoting binary16 inputs
// for the accumulation and demoting on store. Weights are already
// normalized, so the weighted sum needs no further scaling. The traversal
// order over clips is fixed, keeping results deterministic across calls.
func (m *Mean) meanFloat(ctx context.Context, out *Frame,
	srcs []*Frame) error {

	sf := m.format.SamplingFormat
	src, dst := rowScratchFloat(len(srcs), m.format.Width)

	if m.discard > 0 {
		vals := make([]float64, len(srcs))
		recip := 1.0 / float64(len(srcs)-2*m.discard)
		return m.forEachRow(ctx, out, srcs,
			func(width int, dstRow []byte, rows [][]byte) {
				for i, row := range rows {
					loadRowFloat(sf, row, src[i][:width])
				}
				for x := 0; x < width; x++ {
					for i := range src {
						vals[i] = src[i][x]
					}
					insertionSortFloat64(vals)
					var acc float64
					for _, v := range vals[m.discard : len(vals)-m.discard] {
						acc += v
					}
					dst[x] = acc * recip
				}
				storeRowFloat(sf, dst[:width], dstRow)
			})
	}

	weights := frameWeights(srcs, m.mult)
	normalizeWeights(weights)
	return m.forEachRow(ctx, out, srcs,
		func(width int, dstRow []byte, rows [][]byte) {
			for i, row := range rows {
				loadRowFloat(sf, row, src[i][:width])
			}
			for x := 0; x < width; x++ {
				var acc float64
				for i := range src {
					acc += src[i][x] * weights[i]
				}
				dst[x] = acc
			}
			storeRowFloat(sf, dst[:width], dstRow)
		})
}
