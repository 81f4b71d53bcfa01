package goaverage

import "context"

// Median combines K clips by per-pixel rank selection: the middle sample
// when K is odd, the rounded average of the two middle samples when K is
// even. Unlike Mean it ignores picture types entirely, which makes it
// robust to any weighting of the inputs.
//
// A Median is configured for a specific clip set at construction and is
// immutable afterwards; distinct frame indices may be requested
// concurrently.
type Median struct {
	combiner
}

// NewMedian validates the input clips and builds a Median combiner.
//
// All integer widths plus binary32 floats are accepted; binary16 input is
// rejected with UnsupportedFormatError. Construction fails with
// FormatMismatchError or InvalidArgumentError on mismatched or empty clip
// sets.
func NewMedian(clips []Clip) (*Median, error) {
	c, err := newCombiner("Median", clips, false)
	if err != nil {
		return nil, err
	}
	return &Median{combiner: c}, nil
}

// GetFrame computes output frame n. It fetches frame n from every input
// clip, selects the median of the K samples at each pixel position, and
// returns a fully populated frame of the validated format. A cancelled
// context abandons the computation without publishing a partial frame.
func (m *Median) GetFrame(ctx context.Context, n int) (*Frame, error) {
	srcs, err := m.sourceFrames(ctx, n)
	if err != nil {
		return nil, err
	}

	out := NewFrame(m.format)
	out.PictureType = srcs[0].PictureType

	if m.format.SamplingFormat.IsFloat() {
		err = m.medianFloat(ctx, out, srcs)
	} else {
		err = m.medianUint(ctx, out, srcs)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// medianUint selects per-pixel integer medians. Sorting K values per
// pixel dominates the cost relative to Mean; see the note on the
// insertion sorts in helpers.go. For even K the middle pair is averaged
// with round-to-nearest, matching the Mean rounding policy, so the result
// carries no systematic downward bias.
func (m *Median) medianUint(ctx context.Context, out *Frame,
	srcs []*Frame) error {

	sf := m.format.SamplingFormat
	src, dst := rowScratchUint(len(srcs), m.format.Width)
	vals := make([]uint64, len(srcs))
	mid := len(srcs) / 2

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
				if len(vals)%2 == 1 {
					dst[x] = vals[mid]
				} else {
					dst[x] = (vals[mid-1] + vals[mid] + 1) / 2
				}
			}
			storeRowUint(sf, dst[:width], dstRow)
		})
}

func (m *Median) medianFloat(ctx context.Context, out *Frame,
	srcs []*Frame) error {

	sf := m.format.SamplingFormat
	src, dst := rowScratchFloat(len(srcs), m.format.Width)
	vals := make([]float64, len(srcs))
	mid := len(srcs) / 2

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
				if len(vals)%2 == 1 {
					dst[x] = vals[mid]
				} else {
					dst[x] = (vals[mid-1] + vals[mid]) / 2
				}
			}
			storeRowFloat(sf, dst[:width], dstRow)
		})
}
