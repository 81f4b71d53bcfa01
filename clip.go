package goaverage

import (
	"context"
	"fmt"
)

// FrameRate is a rational frames-per-second value.
type FrameRate struct {
	Num, Den int
}

// Clip is a fixed-length, fixed-format ordered sequence of frames,
// produced on demand.
//
// GetFrame must be safe to call concurrently for distinct indices. The
// returned frame is owned by the caller; implementations must not retain
// or mutate it after returning.
type Clip interface {
	Format() Format
	NumFrames() int
	FrameRate() FrameRate
	GetFrame(ctx context.Context, n int) (*Frame, error)
}

// MemoryClip is a Clip backed by a slice of frames held in memory. It is
// the simplest way to feed the combiners from buffers the host already
// owns, and the building block the package tests are written against.
type MemoryClip struct {
	format Format
	rate   FrameRate
	frames []*Frame
}

// NewMemoryClip wraps the given frames as a Clip. At least one frame is
// required and every frame must share the format of the first.
func NewMemoryClip(frames []*Frame, rate FrameRate) (*MemoryClip, error) {
	if len(frames) == 0 {
		return nil, &InvalidArgumentError{
			Reason: "a memory clip needs at least one frame"}
	}
	format := frames[0].Format
	if err := format.Validate(); err != nil {
		return nil, err
	}
	for i, f := range frames[1:] {
		if f.Format != format {
			return nil, &InvalidArgumentError{
				Reason: fmt.Sprintf(
					"frame %d does not match the format of frame 0", i+1)}
		}
	}
	return &MemoryClip{format: format, rate: rate, frames: frames}, nil
}

// Format returns the format shared by every frame of the clip.
func (c *MemoryClip) Format() Format { return c.format }

// NumFrames returns the number of frames in the clip.
func (c *MemoryClip) NumFrames() int { return len(c.frames) }

// FrameRate returns the clip's frame rate.
func (c *MemoryClip) FrameRate() FrameRate { return c.rate }

// GetFrame returns frame n.
func (c *MemoryClip) GetFrame(ctx context.Context, n int) (*Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if n < 0 || n >= len(c.frames) {
		return nil, &InvalidArgumentError{
			Reason: fmt.Sprintf("frame index %d out of range", n)}
	}
	return c.frames[n], nil
}
