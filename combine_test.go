package goaverage_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	avg "github.com/GreatValueCreamSoda/goaverage"
)

// faultyClip wraps a MemoryClip and fails frame requests for one index.
type faultyClip struct {
	*avg.MemoryClip
	failIndex int
	failErr   error
}

func (c *faultyClip) GetFrame(ctx context.Context, n int) (*avg.Frame,
	error) {

	if n == c.failIndex {
		return nil, c.failErr
	}
	return c.MemoryClip.GetFrame(ctx, n)
}

func multiFrameClip(t *testing.T, format avg.Format,
	values []uint64) *avg.MemoryClip {

	t.Helper()
	frames := make([]*avg.Frame, len(values))
	for i, v := range values {
		frames[i] = constantFrame(format, v, avg.PictureTypeIntra)
	}
	clip, err := avg.NewMemoryClip(frames, testRate)
	if err != nil {
		t.Fatalf("NewMemoryClip: %v", err)
	}
	return clip
}

func Test_Mean_Accessors(t *testing.T) {
	format := grayFormat(avg.SamplingFormatUInt8)
	clips := []avg.Clip{
		multiFrameClip(t, format, []uint64{1, 2, 3}),
		multiFrameClip(t, format, []uint64{4, 5, 6}),
	}
	mean, err := avg.NewMean(clips, avg.MeanOptions{})
	if err != nil {
		t.Fatalf("NewMean: %v", err)
	}

	if got := mean.Format(); got != format {
		t.Errorf("Format = %v, want %v", got, format)
	}
	if got := mean.NumFrames(); got != 3 {
		t.Errorf("NumFrames = %d, want 3", got)
	}
	if got := mean.FrameRate(); got != testRate {
		t.Errorf("FrameRate = %v, want %v", got, testRate)
	}
}

func Test_Mean_OutOfRangeIndex(t *testing.T) {
	format := grayFormat(avg.SamplingFormatUInt8)
	mean, err := avg.NewMean([]avg.Clip{
		multiFrameClip(t, format, []uint64{1, 2})}, avg.MeanOptions{})
	if err != nil {
		t.Fatalf("NewMean: %v", err)
	}

	for _, n := range []int{-1, 2} {
		_, err := mean.GetFrame(context.Background(), n)
		var argErr *avg.InvalidArgumentError
		if !errors.As(err, &argErr) {
			t.Errorf("GetFrame(%d) err = %v, want InvalidArgumentError",
				n, err)
		}
	}
}

func Test_Mean_SourceFailureIsLocal(t *testing.T) {
	format := grayFormat(avg.SamplingFormatUInt8)
	decodeErr := errors.New("decode failed")
	clips := []avg.Clip{
		multiFrameClip(t, format, []uint64{10, 10, 10}),
		&faultyClip{
			MemoryClip: multiFrameClip(t, format, []uint64{20, 20, 20}),
			failIndex:  2,
			failErr:    decodeErr,
		},
	}
	mean, err := avg.NewMean(clips, avg.MeanOptions{})
	if err != nil {
		t.Fatalf("NewMean: %v", err)
	}

	_, err = mean.GetFrame(context.Background(), 2)
	var srcErr *avg.SourceFrameError
	if !errors.As(err, &srcErr) {
		t.Fatalf("GetFrame(2) err = %v, want SourceFrameError", err)
	}
	if srcErr.ClipIndex != 1 || srcErr.FrameIndex != 2 {
		t.Errorf("error locates clip %d frame %d, want clip 1 frame 2",
			srcErr.ClipIndex, srcErr.FrameIndex)
	}
	if !errors.Is(err, decodeErr) {
		t.Error("underlying clip error not wrapped")
	}

	// Other indices stay requestable after a failure.
	out, err := mean.GetFrame(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetFrame(1) after failure: %v", err)
	}
	if got := out.Sample(0, 0, 0); got != 15 {
		t.Errorf("frame 1 mean = %d, want 15", got)
	}
}

func Test_Mean_CancelledContext(t *testing.T) {
	format := grayFormat(avg.SamplingFormatUInt8)
	mean, err := avg.NewMean([]avg.Clip{
		multiFrameClip(t, format, []uint64{1})}, avg.MeanOptions{})
	if err != nil {
		t.Fatalf("NewMean: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := mean.GetFrame(ctx, 0); !errors.Is(err,
		context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func Test_Mean_ConcurrentGetFrame(t *testing.T) {
	const numFrames = 16
	format := grayFormat(avg.SamplingFormatUInt16)

	a := make([]uint64, numFrames)
	b := make([]uint64, numFrames)
	for i := range a {
		a[i] = uint64(i * 10)
		b[i] = uint64(i*10 + 10)
	}
	mean, err := avg.NewMean([]avg.Clip{
		multiFrameClip(t, format, a),
		multiFrameClip(t, format, b),
	}, avg.MeanOptions{})
	if err != nil {
		t.Fatalf("NewMean: %v", err)
	}

	var wg sync.WaitGroup
	for n := 0; n < numFrames; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			out, err := mean.GetFrame(context.Background(), n)
			if err != nil {
				t.Errorf("GetFrame(%d): %v", n, err)
				return
			}
			want := uint64(n*10 + 5)
			if got := out.Sample(0, 3, 1); got != want {
				t.Errorf("frame %d = %d, want %d", n, got, want)
			}
		}(n)
	}
	wg.Wait()
}
