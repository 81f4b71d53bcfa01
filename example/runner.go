package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	avg "github.com/GreatValueCreamSoda/goaverage"
)

// frameResult holds one computed output frame on its way to the in-order
// writer.
type frameResult struct {
	index   int
	frame   *avg.Frame
	elapsed float64 // compute time in milliseconds
}

// CombineRunner drives the combination filter over every output frame
// index. It uses concurrency for throughput: a dispatcher feeds frame
// indices to a pool of workers that each call GetFrame independently
// (output frames are independent, so any number may be in flight), and a
// single writer goroutine reorders results and emits raw planar video.
type CombineRunner struct {
	// Configuration for the runner, including inputs, mode, workers.
	cfg combineConfig

	// The combination filter; itself a Clip producing combined frames.
	combined avg.Clip

	// Total number of output frames to produce.
	numFrames int

	// Destination for raw planar frames; nil discards the output.
	out io.Writer

	// outFile is closed after the run when the destination is a file.
	outFile *os.File

	// Channel feeding frame indices to the workers.
	indices chan int

	// Channel carrying computed frames to the writer.
	results chan frameResult

	// Channel for propagating errors from any goroutine.
	errs chan error

	// tokens bounds the number of computed-but-unwritten frames so a slow
	// write (or an out-of-order burst) cannot pile frames up in memory.
	tokens BlockingPool[struct{}]

	// Per-frame compute time in milliseconds, indexed by frame.
	timings []float64
}

// NewCombineRunner validates the config, opens all inputs, and builds the
// combination filter. Returns an error if any step fails.
func NewCombineRunner(cfg combineConfig) (*CombineRunner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	clips, err := cfg.OpenClips()
	if err != nil {
		return nil, err
	}

	combined, err := cfg.BuildCombiner(clips)
	if err != nil {
		return nil, err
	}

	numFrames := combined.NumFrames()
	if cfg.MaxFrames > 0 && cfg.MaxFrames < numFrames {
		numFrames = cfg.MaxFrames
	}

	r := &CombineRunner{
		cfg:       cfg,
		combined:  combined,
		numFrames: numFrames,
		timings:   make([]float64, numFrames),
	}

	if err := r.initOutput(); err != nil {
		return nil, err
	}
	r.initChannels()

	return r, nil
}

// Timings returns per-frame compute times in milliseconds. Valid after
// Run returns nil.
func (r *CombineRunner) Timings() []float64 { return r.timings }

func (r *CombineRunner) initOutput() error {
	switch r.cfg.OutputPath {
	case "":
		r.out = nil
	case "-":
		r.out = os.Stdout
	default:
		f, err := os.Create(r.cfg.OutputPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		r.out = f
		r.outFile = f
	}
	return nil
}

func (r *CombineRunner) initChannels() {
	r.indices = make(chan int, 1)
	r.results = make(chan frameResult, r.cfg.WorkerCount*3/2)
	r.errs = make(chan error, r.cfg.WorkerCount+4)

	capacity := r.cfg.WorkerCount * 2
	r.tokens = NewBlockingPool[struct{}](capacity)
	for range capacity {
		r.tokens.Put(struct{}{})
	}
}

// Run produces every output frame. It blocks until all frames are
// written, the context is cancelled, or a goroutine reports an error.
func (r *CombineRunner) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(r.cfg.WorkerCount)

	go r.dispatchIndices(ctx)

	for i := 0; i < r.cfg.WorkerCount; i++ {
		go r.frameWorker(ctx, i, &wg)
	}

	var writeWg sync.WaitGroup
	writeWg.Add(1)
	go func() {
		defer writeWg.Done()
		r.writeResults(ctx)
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(r.results)
		close(done)
	}()

	var err error
	select {
	case err = <-r.errs:
	case <-ctx.Done():
		err = ctx.Err()
	case <-done:
		writeWg.Wait()
		select {
		case err = <-r.errs:
		default:
		}
	}

	if r.outFile != nil {
		if cerr := r.outFile.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

func (r *CombineRunner) dispatchIndices(ctx context.Context) {
	defer close(r.indices)
	logf(LogInfo, "Dispatching %d frame indices", r.numFrames)

	for i := 0; i < r.numFrames; i++ {
		select {
		case r.indices <- i:
		case <-ctx.Done():
			logf(LogError, "Dispatch canceled at index %d", i)
			return
		}
	}
}

func (r *CombineRunner) frameWorker(ctx context.Context, workerID int,
	wg *sync.WaitGroup) {
	defer wg.Done()
	logf(LogInfo, "Frame worker %d starting", workerID)

	for i := range withContext(ctx, r.indices) {
		r.tokens.Get()

		start := time.Now()
		frame, err := r.combined.GetFrame(ctx, i)
		if err != nil {
			r.errs <- fmt.Errorf("frame %d worker %d: %w", i, workerID, err)
			logf(LogError, "Worker %d failed on frame %d: %v", workerID, i,
				err)
			return
		}
		elapsed := float64(time.Since(start).Microseconds()) / 1000.0

		r.results <- frameResult{index: i, frame: frame, elapsed: elapsed}
		logf(LogDebug, "Worker %d computed frame %d in %.2fms", workerID, i,
			elapsed)
	}

	if ctx.Err() != nil {
		r.errs <- ctx.Err()
		logf(LogError, "Worker %d exiting due to context cancellation: %v",
			workerID, ctx.Err())
	} else {
		logf(LogInfo, "Worker %d finished", workerID)
	}
}

// writeResults reorders computed frames and emits them sequentially.
// Frames may arrive in any order; pending holds the out-of-order ones
// until their turn comes (bounded by the token pool).
func (r *CombineRunner) writeResults(ctx context.Context) {
	pending := make(map[int]frameResult)
	next := 0
	logf(LogInfo, "Starting frame writer")

	for res := range withContext(ctx, r.results) {
		pending[res.index] = res
		for {
			res, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)

			if r.out != nil {
				if err := writeFrame(r.out, res.frame); err != nil {
					r.errs <- fmt.Errorf("write frame %d: %w", next, err)
					logf(LogError, "Failed writing frame %d: %v", next, err)
					return
				}
			}
			r.timings[next] = res.elapsed
			r.tokens.Put(struct{}{})
			logf(LogDebug, "Wrote frame %d", next)
			next++
		}
	}

	logf(LogInfo, "Finished writing %d frames", next)
}

// writeFrame emits one frame as raw planar video, plane by plane, row by
// row, without any padding.
func writeFrame(w io.Writer, frame *avg.Frame) error {
	for p := 0; p < frame.Format.PlaneCount(); p++ {
		for y := 0; y < frame.Format.PlaneHeight(p); y++ {
			if _, err := w.Write(frame.Row(p, y)); err != nil {
				return err
			}
		}
	}
	return nil
}
