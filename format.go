package goaverage

import "fmt"

// SamplingFormat describes how pixel values are stored in memory. Any non
// whole byte value is rounded up to a whole byte. EX: UInt10 is represented
// as a uint16 in memory, with the two high bits unused.
type SamplingFormat int

const (
	SamplingFormatUInt8 SamplingFormat = iota
	SamplingFormatUInt10
	SamplingFormatUInt12
	SamplingFormatUInt16
	SamplingFormatUInt32
	SamplingFormatHalf  // IEEE 754 binary16
	SamplingFormatFloat // IEEE 754 binary32
)

// BitsPerSample returns the number of significant bits in one sample.
func (s SamplingFormat) BitsPerSample() int {
	switch s {
	case SamplingFormatUInt8:
		return 8
	case SamplingFormatUInt10:
		return 10
	case SamplingFormatUInt12:
		return 12
	case SamplingFormatUInt16, SamplingFormatHalf:
		return 16
	case SamplingFormatUInt32, SamplingFormatFloat:
		return 32
	default:
		return 0
	}
}

// BytesPerSample returns the number of bytes one sample occupies in a
// plane's row. Samples wider than one byte are stored little endian.
func (s SamplingFormat) BytesPerSample() int {
	switch s {
	case SamplingFormatUInt8:
		return 1
	case SamplingFormatUInt10, SamplingFormatUInt12, SamplingFormatUInt16,
		SamplingFormatHalf:
		return 2
	case SamplingFormatUInt32, SamplingFormatFloat:
		return 4
	default:
		return 0
	}
}

// IsFloat reports whether samples are floating point rather than unsigned
// integers.
func (s SamplingFormat) IsFloat() bool {
	return s == SamplingFormatHalf || s == SamplingFormatFloat
}

// MaxValue returns the largest representable sample value for integer
// formats. It returns 0 for floating point formats, which have no
// meaningful integer maximum.
func (s SamplingFormat) MaxValue() uint64 {
	if s.IsFloat() {
		return 0
	}
	return 1<<uint(s.BitsPerSample()) - 1
}

func (s SamplingFormat) String() string {
	switch s {
	case SamplingFormatUInt8:
		return "uint8"
	case SamplingFormatUInt10:
		return "uint10"
	case SamplingFormatUInt12:
		return "uint12"
	case SamplingFormatUInt16:
		return "uint16"
	case SamplingFormatUInt32:
		return "uint32"
	case SamplingFormatHalf:
		return "half"
	case SamplingFormatFloat:
		return "float"
	default:
		return "unknown"
	}
}

// ColorFamily identifies the channel layout of a clip.
//
// Gray clips carry a single plane. RGB, YUV, and YCoCg clips carry three
// planes; only YUV and YCoCg may subsample their second and third planes.
type ColorFamily int

const (
	ColorFamilyGray ColorFamily = iota
	ColorFamilyRGB
	ColorFamilyYUV
	ColorFamilyYCoCg
)

func (c ColorFamily) String() string {
	switch c {
	case ColorFamilyGray:
		return "Gray"
	case ColorFamilyRGB:
		return "RGB"
	case ColorFamilyYUV:
		return "YUV"
	case ColorFamilyYCoCg:
		return "YCoCg"
	default:
		return "unknown"
	}
}

// PlaneCount returns the number of planes a frame of this family carries.
func (c ColorFamily) PlaneCount() int {
	switch c {
	case ColorFamilyGray:
		return 1
	case ColorFamilyRGB, ColorFamilyYUV, ColorFamilyYCoCg:
		return 3
	default:
		return 0
	}
}

// Format describes the geometry and sample layout shared by every frame of
// a clip.
//
// SubSamplingW and SubSamplingH are log2 chroma subsampling factors
// applied to the second and third planes: 4:2:0 video has SubSamplingW and
// SubSamplingH of 1, 4:4:4 has both at 0. The frame dimensions must be
// divisible by the subsampling factors so every plane has whole-sample
// geometry.
type Format struct {
	Width, Height  int
	SamplingFormat SamplingFormat
	ColorFamily    ColorFamily
	SubSamplingW   int
	SubSamplingH   int
}

// PlaneCount returns the number of planes per frame.
func (f Format) PlaneCount() int { return f.ColorFamily.PlaneCount() }

// PlaneWidth returns the width in samples of the given plane.
func (f Format) PlaneWidth(plane int) int {
	if plane > 0 {
		return f.Width >> uint(f.SubSamplingW)
	}
	return f.Width
}

// PlaneHeight returns the height in rows of the given plane.
func (f Format) PlaneHeight(plane int) int {
	if plane > 0 {
		return f.Height >> uint(f.SubSamplingH)
	}
	return f.Height
}

// Validate checks that the format is internally consistent: known sampling
// format and color family, positive dimensions, subsampling only on
// families that allow it, and dimensions divisible by the subsampling
// factors.
func (f Format) Validate() error {
	if f.SamplingFormat.BytesPerSample() == 0 {
		return &InvalidArgumentError{Reason: fmt.Sprintf(
			"unknown sampling format %d", int(f.SamplingFormat))}
	}
	if f.ColorFamily.PlaneCount() == 0 {
		return &InvalidArgumentError{Reason: fmt.Sprintf(
			"unknown color family %d", int(f.ColorFamily))}
	}
	if f.Width <= 0 || f.Height <= 0 {
		return &InvalidArgumentError{Reason: fmt.Sprintf(
			"invalid dimensions %dx%d", f.Width, f.Height)}
	}
	if f.SubSamplingW < 0 || f.SubSamplingH < 0 {
		return &InvalidArgumentError{Reason: "negative chroma subsampling"}
	}
	if f.SubSamplingW != 0 || f.SubSamplingH != 0 {
		if f.ColorFamily != ColorFamilyYUV &&
			f.ColorFamily != ColorFamilyYCoCg {
			return &InvalidArgumentError{Reason: fmt.Sprintf(
				"%s does not support chroma subsampling", f.ColorFamily)}
		}
		if f.Width%(1<<uint(f.SubSamplingW)) != 0 ||
			f.Height%(1<<uint(f.SubSamplingH)) != 0 {
			return &InvalidArgumentError{Reason: fmt.Sprintf(
				"dimensions %dx%d not divisible by chroma subsampling %d:%d",
				f.Width, f.Height,
				1<<uint(f.SubSamplingW), 1<<uint(f.SubSamplingH))}
		}
	}
	return nil
}

func (f Format) String() string {
	return fmt.Sprintf("%s %s %dx%d (subsampling %d:%d)", f.ColorFamily,
		f.SamplingFormat, f.Width, f.Height,
		1<<uint(f.SubSamplingW), 1<<uint(f.SubSamplingH))
}
