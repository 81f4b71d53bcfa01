package main

import (
	"fmt"

	avg "github.com/GreatValueCreamSoda/goaverage"
	"github.com/GreatValueCreamSoda/gopixfmts"
)

// Does nothing but convert ffms2 frame data into an avg.Format

func videoFormat(ov *openedVideo) (avg.Format, error) {
	logf(LogInfo, "Determining format from video properties")

	var format avg.Format

	format.Width = ov.firstFrame.ScaledWidth
	format.Height = ov.firstFrame.ScaledHeight

	logf(LogDebug, "Video dimensions: %dx%d (scaled)", format.Width,
		format.Height)

	videoPixelFormat, err := gopixfmts.PixFmtDescGet(gopixfmts.PixelFormat(
		ov.firstFrame.ConvertedPixelFormat))
	if err != nil {
		logf(LogError, "Failed to get pixel format descriptor for Converted"+
			"PixelFormat=%d: %v", ov.firstFrame.ConvertedPixelFormat, err)
		return format, err
	}

	logf(LogDebug, "Pixel format: %s", videoPixelFormat.Name())

	comp, err := videoPixelFormat.Component(0)
	if err != nil {
		logf(LogError, "Failed to get component 0 from pixel format: %v", err)
		return format, err
	}

	switch comp.Depth {
	case 8:
		format.SamplingFormat = avg.SamplingFormatUInt8
	case 10:
		format.SamplingFormat = avg.SamplingFormatUInt10
	case 12:
		format.SamplingFormat = avg.SamplingFormatUInt12
	case 16:
		format.SamplingFormat = avg.SamplingFormatUInt16
	default:
		err := fmt.Errorf("unsupported bit depth %d in pixel format %s",
			comp.Depth, videoPixelFormat.Name())
		logf(LogError, "%v", err)
		return format, err
	}

	logf(LogDebug, "Bit depth determined: %d-bit", comp.Depth)

	if videoPixelFormat.Flags()&uint64(gopixfmts.PixFmtFlagRGB) == 0 {
		format.ColorFamily = avg.ColorFamilyYUV
		format.SubSamplingW = videoPixelFormat.Log2ChromaW()
		format.SubSamplingH = videoPixelFormat.Log2ChromaH()
		logf(LogDebug, "Color family: YUV, chroma subsampling %d:%d "+
			"(log2 W/H = %d/%d)", 1<<format.SubSamplingW,
			1<<format.SubSamplingH, format.SubSamplingW, format.SubSamplingH)
	} else {
		format.ColorFamily = avg.ColorFamilyRGB
		logf(LogDebug, "Color family: RGB")
	}

	if err := format.Validate(); err != nil {
		logf(LogError, "Decoded format unusable: %v", err)
		return format, err
	}

	logf(LogInfo, "Format determined successfully: %s", format)

	return format, nil
}
