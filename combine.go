package goaverage

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/x448/float16"
)

// combiner holds the state shared by the Mean and Median combiners: the
// borrowed input clips and the validated output geometry. It is built once
// at construction and immutable afterwards, so concurrent GetFrame calls
// share it without locking. Everything mutable lives on the stack of a
// single invocation.
type combiner struct {
	clips     []Clip
	format    Format
	rate      FrameRate
	numFrames int
}

func newCombiner(mode string, clips []Clip, halfOK bool) (combiner, error) {
	format, rate, numFrames, err := validateClips(clips)
	if err != nil {
		return combiner{}, err
	}
	if err := checkSampleSupport(mode, format.SamplingFormat, halfOK); err != nil {
		return combiner{}, err
	}
	borrowed := make([]Clip, len(clips))
	copy(borrowed, clips)
	return combiner{
		clips:     borrowed,
		format:    format,
		rate:      rate,
		numFrames: numFrames,
	}, nil
}

// Format returns the output format, identical to every input clip's.
func (c *combiner) Format() Format { return c.format }

// NumFrames returns the output frame count, identical to every input
// clip's.
func (c *combiner) NumFrames() int { return c.numFrames }

// FrameRate returns the output frame rate, identical to every input
// clip's.
func (c *combiner) FrameRate() FrameRate { return c.rate }

// sourceFrames fetches frame n from every input clip, in clip order. A
// fetch failure is wrapped in a SourceFrameError naming the clip and
// frame; it affects only this output index.
func (c *combiner) sourceFrames(ctx context.Context, n int) ([]*Frame,
	error) {

	if n < 0 || n >= c.numFrames {
		return nil, &InvalidArgumentError{
			Reason: fmt.Sprintf("frame index %d out of range [0,%d)",
				n, c.numFrames)}
	}
	srcs := make([]*Frame, len(c.clips))
	for i, clip := range c.clips {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, err := clip.GetFrame(ctx, n)
		if err != nil {
			return nil, &SourceFrameError{
				ClipIndex: i, FrameIndex: n, Err: err}
		}
		if f == nil {
			return nil, &SourceFrameError{
				ClipIndex: i, FrameIndex: n,
				Err: fmt.Errorf("clip returned no frame")}
		}
		srcs[i] = f
	}
	return srcs, nil
}

// forEachRow walks every plane row of the output frame and hands the
// kernel the destination row along with the matching source rows. The
// context is checked between planes so a cancelled invocation stops
// without publishing the partially written frame.
func (c *combiner) forEachRow(ctx context.Context, out *Frame,
	srcs []*Frame, kernel func(width int, dst []byte, rows [][]byte)) error {

	rows := make([][]byte, len(srcs))
	for plane := 0; plane < c.format.PlaneCount(); plane++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		width := c.format.PlaneWidth(plane)
		for y := 0; y < c.format.PlaneHeight(plane); y++ {
			for i, s := range srcs {
				rows[i] = s.Row(plane, y)
			}
			kernel(width, out.Row(plane, y), rows)
		}
	}
	return nil
}

// Row codecs. Integer rows widen into uint64 so the accumulation kernels
// are written once regardless of the input bit width; float rows widen
// into float64, promoting binary16 through the float16 package.

func loadRowUint(sf SamplingFormat, row []byte, dst []uint64) {
	switch sf.BytesPerSample() {
	case 1:
		for i := range dst {
			dst[i] = uint64(row[i])
		}
	case 2:
		for i := range dst {
			dst[i] = uint64(binary.LittleEndian.Uint16(row[i*2:]))
		}
	default:
		for i := range dst {
			dst[i] = uint64(binary.LittleEndian.Uint32(row[i*4:]))
		}
	}
}

func storeRowUint(sf SamplingFormat, vals []uint64, row []byte) {
	switch sf.BytesPerSample() {
	case 1:
		for i, v := range vals {
			row[i] = byte(v)
		}
	case 2:
		for i, v := range vals {
			binary.LittleEndian.PutUint16(row[i*2:], uint16(v))
		}
	default:
		for i, v := range vals {
			binary.LittleEndian.PutUint32(row[i*4:], uint32(v))
		}
	}
}

func loadRowFloat(sf SamplingFormat, row []byte, dst []float64) {
	if sf == SamplingFormatHalf {
		for i := range dst {
			dst[i] = float64(float16.Frombits(
				binary.LittleEndian.Uint16(row[i*2:])).Float32())
		}
		return
	}
	for i := range dst {
		dst[i] = float64(math.Float32frombits(
			binary.LittleEndian.Uint32(row[i*4:])))
	}
}

func storeRowFloat(sf SamplingFormat, vals []float64, row []byte) {
	if sf == SamplingFormatHalf {
		for i, v := range vals {
			binary.LittleEndian.PutUint16(row[i*2:],
				float16.Fromfloat32(float32(v)).Bits())
		}
		return
	}
	for i, v := range vals {
		binary.LittleEndian.PutUint32(row[i*4:],
			math.Float32bits(float32(v)))
	}
}

// rowScratchUint allocates one widened row per source plus one output
// row. Scratch is per invocation, never shared between concurrent frame
// requests.
func rowScratchUint(k, width int) (src [][]uint64, dst []uint64) {
	src = make([][]uint64, k)
	for i := range src {
		src[i] = make([]uint64, width)
	}
	return src, make([]uint64, width)
}

func rowScratchFloat(k, width int) (src [][]float64, dst []float64) {
	src = make([][]float64, k)
	for i := range src {
		src[i] = make([]float64, width)
	}
	return src, make([]float64, width)
}
