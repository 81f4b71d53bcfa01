package goaverage

// validateClips confirms that every input clip shares the format,
// dimensions, frame rate, and frame count of the first, and that the
// shared format is internally consistent. It runs once at combiner
// construction; per-frame requests pay no validation cost.
func validateClips(clips []Clip) (Format, FrameRate, int, error) {
	if len(clips) == 0 {
		return Format{}, FrameRate{}, 0, &InvalidArgumentError{
			Reason: "at least one input clip is required"}
	}

	format := clips[0].Format()
	if err := format.Validate(); err != nil {
		return Format{}, FrameRate{}, 0, err
	}
	rate := clips[0].FrameRate()
	numFrames := clips[0].NumFrames()

	for i, clip := range clips[1:] {
		attr := mismatchAttribute(format, rate, numFrames, clip)
		if attr != "" {
			return Format{}, FrameRate{}, 0, &FormatMismatchError{
				IndexA: 0, IndexB: i + 1, Attribute: attr}
		}
	}

	return format, rate, numFrames, nil
}

// mismatchAttribute returns the name of the first attribute on which clip
// disagrees with the reference, or "" if they match.
func mismatchAttribute(format Format, rate FrameRate, numFrames int,
	clip Clip) string {

	f := clip.Format()
	switch {
	case f.SamplingFormat != format.SamplingFormat:
		return "sampling format"
	case f.ColorFamily != format.ColorFamily:
		return "color family"
	case f.Width != format.Width || f.Height != format.Height:
		return "dimensions"
	case f.SubSamplingW != format.SubSamplingW ||
		f.SubSamplingH != format.SubSamplingH:
		return "chroma subsampling"
	case clip.FrameRate() != rate:
		return "frame rate"
	case clip.NumFrames() != numFrames:
		return "frame count"
	}
	return ""
}

// checkSampleSupport rejects sampling formats a mode cannot process.
// Both modes handle every integer width and binary32 floats; only the
// Mean combiner additionally handles binary16.
func checkSampleSupport(mode string, sf SamplingFormat, halfOK bool) error {
	switch sf {
	case SamplingFormatUInt8, SamplingFormatUInt10, SamplingFormatUInt12,
		SamplingFormatUInt16, SamplingFormatUInt32, SamplingFormatFloat:
		return nil
	case SamplingFormatHalf:
		if halfOK {
			return nil
		}
	}
	return &UnsupportedFormatError{Mode: mode, SamplingFormat: sf}
}
