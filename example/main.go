package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

type LoggingLevel int

const (
	LogError LoggingLevel = iota
	LogInfo
	LogDebug
)

var currentLogLevel = LogInfo

const logPrefixWidth = 9 // Fits "[DEBUG] "

func logf(level LoggingLevel, format string, args ...any) {
	if level > currentLogLevel {
		return
	}

	prefix := "[INFO] "
	switch level {
	case LogDebug:
		prefix = "[DEBUG]"
	case LogError:
		prefix = "[ERROR]"
	}

	padded := fmt.Sprintf("%-*s", logPrefixWidth, prefix)

	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	log.Printf("%s%s", padded, msg)
}

func parseLogLevel(s string) (LoggingLevel, error) {
	switch strings.ToLower(s) {
	case "error":
		return LogError, nil
	case "info":
		return LogInfo, nil
	case "debug":
		return LogDebug, nil
	default:
		return 0, fmt.Errorf("invalid log level: %q", s)
	}
}

// initCLI parses all flags and returns the config + stats output path
func initCLI() (combineConfig, string) {
	var cfg combineConfig
	var logLevelStr string
	var statsPath string

	pflag.StringArrayVarP(
		&cfg.Inputs, "input", "i", nil,
		"input video path (repeat for each clip, at least one required)")

	pflag.StringVarP(
		&cfg.Mode, "mode", "m", "mean", "combination mode: mean or median")

	pflag.IntVarP(
		&cfg.Preset, "preset", "p", 0,
		"picture-type weighting preset for mean (0 = balanced, "+
			"1 = x264/x265 defaults, 2 = x264 grain, 3 = x265 grain)")

	pflag.IntVarP(
		&cfg.Discard, "discard", "d", 0,
		"trimmed mean: drop the d highest and d lowest samples per pixel")

	pflag.IntVar(
		&cfg.MaxFrames, "frames", 0,
		"maximum number of output frames to produce (0 = all)")

	pflag.IntVarP(
		&cfg.WorkerCount, "workers", "w", 3,
		"number of frames computed concurrently")

	pflag.StringVarP(
		&cfg.OutputPath, "output", "o", "",
		"path for raw planar output (\"-\" for stdout, empty to discard)")

	pflag.BoolVar(
		&cfg.UseFFmpeg, "ffmpeg", false,
		"decode inputs through an ffmpeg yuv420p pipe instead of ffms2 "+
			"(requires --width and --height)")

	pflag.IntVar(
		&cfg.Width, "width", 0, "frame width for --ffmpeg inputs")

	pflag.IntVar(
		&cfg.Height, "height", 0, "frame height for --ffmpeg inputs")

	pflag.StringVar(
		&statsPath, "stats-json", "",
		"path to save per-frame compute times as JSON")

	pflag.StringVar(
		&logLevelStr, "loglevel", "info", "log level: error, info, debug")

	pflag.Parse()

	if len(cfg.Inputs) == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one -i input is required")
		pflag.Usage()
		os.Exit(1)
	}

	level, err := parseLogLevel(logLevelStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	currentLogLevel = level

	if statsPath != "" &&
		strings.HasSuffix(statsPath, string(os.PathSeparator)) {
		fmt.Fprintln(os.Stderr, "Error: --stats-json cannot be a directory")
		os.Exit(1)
	}

	return cfg, statsPath
}

func main() {
	log.SetFlags(log.LstdFlags)

	cfg, statsPath := initCLI()

	runner, err := NewCombineRunner(cfg)
	if err != nil {
		logf(LogError, "Failed to create combiner: %v", err)
		os.Exit(1)
	}

	logf(LogInfo, "Combining %d clips (%s, %d frames) with %d workers",
		len(cfg.Inputs), cfg.Mode, runner.numFrames, cfg.WorkerCount)

	if err := runner.Run(context.Background()); err != nil {
		logf(LogError, "Combination failed: %v", err)
		os.Exit(1)
	}

	printTimingSummary(runner.Timings())

	if statsPath != "" {
		if err := saveTimingsToJSON(runner.Timings(), statsPath); err != nil {
			logf(LogError, "Failed to save timings to %s: %v", statsPath, err)
			os.Exit(1)
		}
		logf(LogInfo, "Per-frame compute times saved to %s", statsPath)
	}
}
