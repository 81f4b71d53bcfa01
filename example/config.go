package main

import (
	"fmt"

	avg "github.com/GreatValueCreamSoda/goaverage"
)

type combineConfig struct {
	Inputs        []string
	Mode          string
	Preset        int
	Discard       int
	MaxFrames     int
	WorkerCount   int
	OutputPath    string
	UseFFmpeg     bool
	Width, Height int
}

func (c *combineConfig) Validate() error {
	logf(LogInfo, "Validating combiner configuration")

	if c.WorkerCount <= 0 {
		logf(LogInfo, "WorkerCount <= 0, defaulting to 1")
		c.WorkerCount = 1
	}
	if len(c.Inputs) == 0 {
		err := fmt.Errorf("at least one input must be specified")
		logf(LogError, "Validation failed: %v", err)
		return err
	}
	if c.Mode != "mean" && c.Mode != "median" {
		err := fmt.Errorf("unknown mode %q (want mean or median)", c.Mode)
		logf(LogError, "Validation failed: %v", err)
		return err
	}
	if c.UseFFmpeg && (c.Width <= 0 || c.Height <= 0) {
		err := fmt.Errorf("--ffmpeg needs --width and --height")
		logf(LogError, "Validation failed: %v", err)
		return err
	}

	logf(LogInfo, "Configuration validated successfully: Mode=%s, "+
		"WorkerCount=%d, Inputs=%d", c.Mode, c.WorkerCount, len(c.Inputs))
	return nil
}

// OpenClips opens every input as a goaverage.Clip, either through ffms2
// indexed sources or through ffmpeg yuv420p pipes buffered in memory.
func (c *combineConfig) OpenClips() ([]avg.Clip, error) {
	logf(LogInfo, "Opening %d inputs", len(c.Inputs))

	if c.UseFFmpeg {
		clips := make([]avg.Clip, len(c.Inputs))
		for i, path := range c.Inputs {
			clip, err := loadFFmpegClip(path, c.Width, c.Height, c.MaxFrames)
			if err != nil {
				return nil, fmt.Errorf("open %s: %w", path, err)
			}
			clips[i] = clip
		}
		return clips, nil
	}

	opened, err := openVideos(c.Inputs)
	if err != nil {
		return nil, err
	}

	clips := make([]avg.Clip, len(opened))
	for i := range opened {
		clip, err := newFFMSClip(&opened[i])
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", c.Inputs[i], err)
		}
		clips[i] = clip
	}
	return clips, nil
}

// BuildCombiner constructs the configured combination filter over the
// opened clips. The returned value is itself a Clip producing the
// combined frames.
func (c *combineConfig) BuildCombiner(clips []avg.Clip) (avg.Clip, error) {
	switch c.Mode {
	case "median":
		return avg.NewMedian(clips)
	default:
		return avg.NewMean(clips, avg.MeanOptions{
			Preset:  avg.Preset(c.Preset),
			Discard: c.Discard,
		})
	}
}
