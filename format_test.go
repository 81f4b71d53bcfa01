package goaverage_test

import (
	"testing"

	avg "github.com/GreatValueCreamSoda/goaverage"
)

func Test_SamplingFormat_Properties(t *testing.T) {
	cases := []struct {
		format  avg.SamplingFormat
		bits    int
		bytes   int
		isFloat bool
		max     uint64
	}{
		{avg.SamplingFormatUInt8, 8, 1, false, 255},
		{avg.SamplingFormatUInt10, 10, 2, false, 1023},
		{avg.SamplingFormatUInt12, 12, 2, false, 4095},
		{avg.SamplingFormatUInt16, 16, 2, false, 65535},
		{avg.SamplingFormatUInt32, 32, 4, false, 4294967295},
		{avg.SamplingFormatHalf, 16, 2, true, 0},
		{avg.SamplingFormatFloat, 32, 4, true, 0},
	}

	for _, c := range cases {
		if got := c.format.BitsPerSample(); got != c.bits {
			t.Errorf("%s: BitsPerSample = %d, want %d", c.format, got, c.bits)
		}
		if got := c.format.BytesPerSample(); got != c.bytes {
			t.Errorf("%s: BytesPerSample = %d, want %d", c.format, got,
				c.bytes)
		}
		if got := c.format.IsFloat(); got != c.isFloat {
			t.Errorf("%s: IsFloat = %t, want %t", c.format, got, c.isFloat)
		}
		if got := c.format.MaxValue(); got != c.max {
			t.Errorf("%s: MaxValue = %d, want %d", c.format, got, c.max)
		}
	}
}

func Test_Format_PlaneGeometry(t *testing.T) {
	yuv420 := avg.Format{
		Width: 16, Height: 8,
		SamplingFormat: avg.SamplingFormatUInt8,
		ColorFamily:    avg.ColorFamilyYUV,
		SubSamplingW:   1, SubSamplingH: 1,
	}
	if err := yuv420.Validate(); err != nil {
		t.Fatalf("valid format rejected: %v", err)
	}
	if got := yuv420.PlaneCount(); got != 3 {
		t.Errorf("PlaneCount = %d, want 3", got)
	}
	if w, h := yuv420.PlaneWidth(0), yuv420.PlaneHeight(0); w != 16 || h != 8 {
		t.Errorf("luma plane = %dx%d, want 16x8", w, h)
	}
	if w, h := yuv420.PlaneWidth(1), yuv420.PlaneHeight(1); w != 8 || h != 4 {
		t.Errorf("chroma plane = %dx%d, want 8x4", w, h)
	}

	gray := avg.Format{
		Width: 7, Height: 5,
		SamplingFormat: avg.SamplingFormatUInt16,
		ColorFamily:    avg.ColorFamilyGray,
	}
	if err := gray.Validate(); err != nil {
		t.Fatalf("valid format rejected: %v", err)
	}
	if got := gray.PlaneCount(); got != 1 {
		t.Errorf("PlaneCount = %d, want 1", got)
	}
}

func Test_Format_Validate_Rejections(t *testing.T) {
	base := avg.Format{
		Width: 16, Height: 8,
		SamplingFormat: avg.SamplingFormatUInt8,
		ColorFamily:    avg.ColorFamilyYUV,
	}

	cases := []struct {
		name   string
		mutate func(*avg.Format)
	}{
		{"unknown sampling format", func(f *avg.Format) {
			f.SamplingFormat = avg.SamplingFormat(99)
		}},
		{"unknown color family", func(f *avg.Format) {
			f.ColorFamily = avg.ColorFamily(99)
		}},
		{"zero width", func(f *avg.Format) { f.Width = 0 }},
		{"negative height", func(f *avg.Format) { f.Height = -8 }},
		{"rgb with subsampling", func(f *avg.Format) {
			f.ColorFamily = avg.ColorFamilyRGB
			f.SubSamplingW = 1
		}},
		{"gray with subsampling", func(f *avg.Format) {
			f.ColorFamily = avg.ColorFamilyGray
			f.SubSamplingH = 1
		}},
		{"odd width under 4:2:0", func(f *avg.Format) {
			f.Width = 15
			f.SubSamplingW = 1
			f.SubSamplingH = 1
		}},
		{"negative subsampling", func(f *avg.Format) { f.SubSamplingW = -1 }},
	}

	for _, c := range cases {
		f := base
		c.mutate(&f)
		if err := f.Validate(); err == nil {
			t.Errorf("%s: Validate accepted %+v", c.name, f)
		}
	}
}

func Test_Frame_SampleRoundTrip(t *testing.T) {
	formats := []avg.SamplingFormat{
		avg.SamplingFormatUInt8,
		avg.SamplingFormatUInt10,
		avg.SamplingFormatUInt12,
		avg.SamplingFormatUInt16,
		avg.SamplingFormatUInt32,
	}

	for _, sf := range formats {
		frame := avg.NewFrame(avg.Format{
			Width: 4, Height: 3,
			SamplingFormat: sf,
			ColorFamily:    avg.ColorFamilyGray,
		})
		want := sf.MaxValue()
		frame.SetSample(0, 2, 1, want)
		if got := frame.Sample(0, 2, 1); got != want {
			t.Errorf("%s: sample round trip = %d, want %d", sf, got, want)
		}
		if got := frame.Sample(0, 3, 1); got != 0 {
			t.Errorf("%s: neighbor sample = %d, want 0", sf, got)
		}
	}
}

func Test_Frame_SampleFloatRoundTrip(t *testing.T) {
	for _, sf := range []avg.SamplingFormat{
		avg.SamplingFormatHalf, avg.SamplingFormatFloat} {

		frame := avg.NewFrame(avg.Format{
			Width: 2, Height: 2,
			SamplingFormat: sf,
			ColorFamily:    avg.ColorFamilyGray,
		})
		frame.SetSampleFloat(0, 1, 0, 0.5)
		if got := frame.SampleFloat(0, 1, 0); got != 0.5 {
			t.Errorf("%s: float sample round trip = %g, want 0.5", sf, got)
		}
	}
}

func Test_ParsePictureType(t *testing.T) {
	cases := map[byte]avg.PictureType{
		'I': avg.PictureTypeIntra,
		'i': avg.PictureTypeIntra,
		'P': avg.PictureTypePredicted,
		'p': avg.PictureTypePredicted,
		'B': avg.PictureTypeBidirectional,
		'b': avg.PictureTypeBidirectional,
		'U': avg.PictureTypeUnknown,
		0:   avg.PictureTypeUnknown,
	}
	for b, want := range cases {
		if got := avg.ParsePictureType(b); got != want {
			t.Errorf("ParsePictureType(%q) = %v, want %v", b, got, want)
		}
	}
}
