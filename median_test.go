package goaverage_test

import (
	"context"
	"errors"
	"testing"

	avg "github.com/GreatValueCreamSoda/goaverage"
)

func medianOf(t *testing.T, clips []avg.Clip, n int) *avg.Frame {
	t.Helper()
	median, err := avg.NewMedian(clips)
	if err != nil {
		t.Fatalf("NewMedian: %v", err)
	}
	out, err := median.GetFrame(context.Background(), n)
	if err != nil {
		t.Fatalf("GetFrame(%d): %v", n, err)
	}
	return out
}

func Test_Median_SingleClipIdentity(t *testing.T) {
	for _, sf := range integerFormats {
		format := grayFormat(sf)
		frame := constantFrame(format, sf.MaxValue(), avg.PictureTypeIntra)
		frame.SetSample(0, 1, 1, 7)

		out := medianOf(t, []avg.Clip{singleFrameClip(t, frame)}, 0)
		if !sameFrameData(out, frame) {
			t.Errorf("%s: single clip output differs from input", sf)
		}
	}

	format := grayFormat(avg.SamplingFormatFloat)
	frame := constantFloatFrame(format, -1.5, avg.PictureTypeBidirectional)
	out := medianOf(t, []avg.Clip{singleFrameClip(t, frame)}, 0)
	if !sameFrameData(out, frame) {
		t.Error("float: single clip output differs from input")
	}
	if out.PictureType != frame.PictureType {
		t.Errorf("picture type = %v, want %v",
			out.PictureType, frame.PictureType)
	}
}

func Test_Median_OddK(t *testing.T) {
	format := grayFormat(avg.SamplingFormatUInt16)
	// Picture types do not influence rank selection.
	clips := []avg.Clip{
		constantClip(t, format, 30, avg.PictureTypeBidirectional),
		constantClip(t, format, 10, avg.PictureTypeIntra),
		constantClip(t, format, 20, avg.PictureTypePredicted),
	}
	out := medianOf(t, clips, 0)
	if got := out.Sample(0, 0, 0); got != 20 {
		t.Errorf("median of 30,10,20 = %d, want 20", got)
	}
}

func Test_Median_EvenK_Rounding(t *testing.T) {
	format := grayFormat(avg.SamplingFormatUInt8)
	clips := []avg.Clip{
		constantClip(t, format, 10, avg.PictureTypeIntra),
		constantClip(t, format, 21, avg.PictureTypeIntra),
	}
	out := medianOf(t, clips, 0)
	if got := out.Sample(0, 0, 0); got != 16 {
		t.Errorf("median of 10,21 = %d, want 16", got)
	}

	floatFormat := grayFormat(avg.SamplingFormatFloat)
	fclips := []avg.Clip{
		singleFrameClip(t, constantFloatFrame(floatFormat, 0.25,
			avg.PictureTypeIntra)),
		singleFrameClip(t, constantFloatFrame(floatFormat, 0.75,
			avg.PictureTypeIntra)),
	}
	fout := medianOf(t, fclips, 0)
	if got := fout.SampleFloat(0, 0, 0); got != 0.5 {
		t.Errorf("float median of 0.25,0.75 = %g, want 0.5", got)
	}
}

func Test_Median_TwoClipsMatchesMean(t *testing.T) {
	format := grayFormat(avg.SamplingFormatUInt12)
	build := func() []avg.Clip {
		return []avg.Clip{
			constantClip(t, format, 1001, avg.PictureTypeIntra),
			constantClip(t, format, 3000, avg.PictureTypeIntra),
		}
	}

	median := medianOf(t, build(), 0)
	mean := meanOf(t, build(), avg.MeanOptions{}, 0)
	if !sameFrameData(median, mean) {
		t.Error("two-clip median differs from two-clip mean")
	}
}

func Test_Median_SuppressesOutliers(t *testing.T) {
	format := grayFormat(avg.SamplingFormatUInt8)
	clips := []avg.Clip{
		constantClip(t, format, 50, avg.PictureTypeIntra),
		constantClip(t, format, 50, avg.PictureTypeIntra),
		constantClip(t, format, 50, avg.PictureTypeIntra),
		constantClip(t, format, 0, avg.PictureTypeIntra),
		constantClip(t, format, 255, avg.PictureTypeIntra),
	}
	out := medianOf(t, clips, 0)
	if got := out.Sample(0, 0, 0); got != 50 {
		t.Errorf("median with outliers = %d, want 50", got)
	}
}

func Test_Median_RejectsHalf(t *testing.T) {
	format := grayFormat(avg.SamplingFormatHalf)
	clips := []avg.Clip{
		singleFrameClip(t, constantFloatFrame(format, 0.5,
			avg.PictureTypeIntra)),
	}
	_, err := avg.NewMedian(clips)
	var fmtErr *avg.UnsupportedFormatError
	if !errors.As(err, &fmtErr) {
		t.Fatalf("err = %v, want UnsupportedFormatError", err)
	}
	if fmtErr.SamplingFormat != avg.SamplingFormatHalf {
		t.Errorf("error names %s, want %s",
			fmtErr.SamplingFormat, avg.SamplingFormatHalf)
	}
}
