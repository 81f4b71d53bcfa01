package goaverage

import (
	"encoding/binary"
	"math"

	"github.com/x448/float16"
)

// PictureType is an encoding-derived classification of a frame, used only
// as a weighting signal by the Mean combiner. Frames whose origin does not
// record a picture type carry PictureTypeUnknown and weight as intra
// frames.
type PictureType int

const (
	PictureTypeUnknown PictureType = iota
	PictureTypeIntra
	PictureTypePredicted
	PictureTypeBidirectional
)

// ParsePictureType maps an encoder's picture type byte ('I', 'P', 'B',
// case tolerated) to a PictureType. Any other byte maps to
// PictureTypeUnknown.
func ParsePictureType(b byte) PictureType {
	switch b {
	case 'I', 'i':
		return PictureTypeIntra
	case 'P', 'p':
		return PictureTypePredicted
	case 'B', 'b':
		return PictureTypeBidirectional
	default:
		return PictureTypeUnknown
	}
}

func (p PictureType) String() string {
	switch p {
	case PictureTypeIntra:
		return "I"
	case PictureTypePredicted:
		return "P"
	case PictureTypeBidirectional:
		return "B"
	default:
		return "U"
	}
}

// Frame holds one sample grid: one plane for Gray clips, three planes
// otherwise. Each plane is a contiguous byte slice addressed row by row
// through its stride. Samples wider than one byte are little endian.
type Frame struct {
	Format      Format
	Data        [][]byte
	Stride      []int
	PictureType PictureType
}

// NewFrame allocates a zeroed frame of the given format with tightly
// packed planes (stride equals the plane's row width in bytes).
func NewFrame(format Format) *Frame {
	planes := format.PlaneCount()
	f := &Frame{
		Format: format,
		Data:   make([][]byte, planes),
		Stride: make([]int, planes),
	}
	bps := format.SamplingFormat.BytesPerSample()
	for p := 0; p < planes; p++ {
		f.Stride[p] = format.PlaneWidth(p) * bps
		f.Data[p] = make([]byte, f.Stride[p]*format.PlaneHeight(p))
	}
	return f
}

// Row returns the byte slice holding row y of the given plane, trimmed to
// the plane's sample width.
func (f *Frame) Row(plane, y int) []byte {
	rowBytes := f.Format.PlaneWidth(plane) *
		f.Format.SamplingFormat.BytesPerSample()
	off := y * f.Stride[plane]
	return f.Data[plane][off : off+rowBytes]
}

// Sample returns the integer sample at (x, y) of the given plane. It must
// only be called on integer sampling formats.
func (f *Frame) Sample(plane, x, y int) uint64 {
	row := f.Row(plane, y)
	switch f.Format.SamplingFormat.BytesPerSample() {
	case 1:
		return uint64(row[x])
	case 2:
		return uint64(binary.LittleEndian.Uint16(row[x*2:]))
	default:
		return uint64(binary.LittleEndian.Uint32(row[x*4:]))
	}
}

// SetSample stores the integer sample at (x, y) of the given plane. It
// must only be called on integer sampling formats.
func (f *Frame) SetSample(plane, x, y int, v uint64) {
	row := f.Row(plane, y)
	switch f.Format.SamplingFormat.BytesPerSample() {
	case 1:
		row[x] = byte(v)
	case 2:
		binary.LittleEndian.PutUint16(row[x*2:], uint16(v))
	default:
		binary.LittleEndian.PutUint32(row[x*4:], uint32(v))
	}
}

// SampleFloat returns the floating point sample at (x, y) of the given
// plane. It must only be called on Half or Float sampling formats.
func (f *Frame) SampleFloat(plane, x, y int) float64 {
	row := f.Row(plane, y)
	if f.Format.SamplingFormat == SamplingFormatHalf {
		return float64(
			float16.Frombits(binary.LittleEndian.Uint16(row[x*2:])).Float32())
	}
	return float64(
		math.Float32frombits(binary.LittleEndian.Uint32(row[x*4:])))
}

// SetSampleFloat stores the floating point sample at (x, y) of the given
// plane. It must only be called on Half or Float sampling formats.
func (f *Frame) SetSampleFloat(plane, x, y int, v float64) {
	row := f.Row(plane, y)
	if f.Format.SamplingFormat == SamplingFormatHalf {
		binary.LittleEndian.PutUint16(row[x*2:],
			float16.Fromfloat32(float32(v)).Bits())
		return
	}
	binary.LittleEndian.PutUint32(row[x*4:],
		math.Float32bits(float32(v)))
}
