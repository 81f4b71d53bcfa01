package main

import (
	"context"
	"sync"

	avg "github.com/GreatValueCreamSoda/goaverage"
	ffms "github.com/GreatValueCreamSoda/goffms2"
)

// ffmsClip adapts an ffms2 video source to the avg.Clip interface. The
// underlying source is not safe for concurrent frame requests, so a mutex
// serializes decoding; the combiner's workers still overlap across clips
// and across the combination work itself.
type ffmsClip struct {
	mu     sync.Mutex
	video  *ffms.VideoSource
	props  *ffms.VideoProperties
	format avg.Format
}

func newFFMSClip(ov *openedVideo) (*ffmsClip, error) {
	format, err := videoFormat(ov)
	if err != nil {
		return nil, err
	}

	return &ffmsClip{
		video:  ov.video,
		props:  ov.props,
		format: format,
	}, nil
}

func (c *ffmsClip) Format() avg.Format { return c.format }

func (c *ffmsClip) NumFrames() int { return c.props.NumFrames }

func (c *ffmsClip) FrameRate() avg.FrameRate {
	return avg.FrameRate{
		Num: int(c.props.FPSNumerator),
		Den: int(c.props.FPSDenominator),
	}
}

// GetFrame decodes frame n and copies it into a tightly packed avg.Frame,
// dropping any decoder row padding.
func (c *ffmsClip) GetFrame(ctx context.Context, n int) (*avg.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	src, _, err := c.video.GetFrame(n)
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}

	frame := avg.NewFrame(c.format)
	frame.PictureType = avg.ParsePictureType(byte(src.PictType))

	bps := c.format.SamplingFormat.BytesPerSample()
	for p := 0; p < c.format.PlaneCount(); p++ {
		rowBytes := c.format.PlaneWidth(p) * bps
		stride := int(src.Linesize[p])
		for y := 0; y < c.format.PlaneHeight(p); y++ {
			copy(frame.Row(p, y), src.Data[p][y*stride:y*stride+rowBytes])
		}
	}

	return frame, nil
}
