package goaverage

import "fmt"

// InvalidArgumentError reports a construction argument that can never be
// valid, such as an empty clip list or conflicting Mean options.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return "goaverage: " + e.Reason
}

// FormatMismatchError reports two input clips that disagree on an
// attribute that must be identical across every input. It names the first
// conflicting pair of clip indices and the attribute they disagree on.
//
// It is returned at construction time; no frame is ever produced from a
// mismatched clip set.
type FormatMismatchError struct {
	IndexA, IndexB int
	Attribute      string
}

func (e *FormatMismatchError) Error() string {
	return fmt.Sprintf("goaverage: clips %d and %d differ in %s",
		e.IndexA, e.IndexB, e.Attribute)
}

// UnsupportedFormatError reports a sampling format the requested
// combination mode cannot process. It is returned at construction time.
type UnsupportedFormatError struct {
	Mode           string
	SamplingFormat SamplingFormat
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("goaverage: %s does not support %s input",
		e.Mode, e.SamplingFormat)
}

// SourceFrameError reports that an input frame could not be fetched while
// producing one output frame. It is local to that output index: other
// indices remain requestable.
type SourceFrameError struct {
	ClipIndex  int
	FrameIndex int
	Err        error
}

func (e *SourceFrameError) Error() string {
	return fmt.Sprintf("goaverage: clip %d frame %d: %v",
		e.ClipIndex, e.FrameIndex, e.Err)
}

func (e *SourceFrameError) Unwrap() error { return e.Err }
