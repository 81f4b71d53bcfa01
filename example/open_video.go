package main

import (
	"runtime"
	"sync"

	ffms "github.com/GreatValueCreamSoda/goffms2"
)

type openedVideo struct {
	video      *ffms.VideoSource
	props      *ffms.VideoProperties
	firstFrame *ffms.Frame
	err        error
}

// openVideos indexes and opens every input concurrently; indexing is the
// slow part, so opening K inputs serially would multiply startup time by K.
func openVideos(paths []string) ([]openedVideo, error) {
	var wg sync.WaitGroup
	wg.Add(len(paths))

	opened := make([]openedVideo, len(paths))

	for i, path := range paths {
		go func(i int, path string) {
			defer wg.Done()
			opened[i] = openVideo(path)
		}(i, path)
	}

	wg.Wait()

	for _, ov := range opened {
		if ov.err != nil {
			return nil, ov.err
		}
	}

	return opened, nil
}

func openVideo(path string) openedVideo {
	indexer, _, err := ffms.CreateIndexer(path)
	if err != nil {
		return openedVideo{err: err}
	}

	index, _, err := indexer.DoIndexing(ffms.IEHAbort)
	if err != nil {
		return openedVideo{err: err}
	}

	track, _, err := index.GetFirstTrackOfType(ffms.TypeVideo)
	if err != nil {
		return openedVideo{err: err}
	}

	video, _, err := ffms.CreateVideoSource(path, index, track,
		runtime.NumCPU()/2, ffms.SeekNormal)
	if err != nil {
		return openedVideo{err: err}
	}

	props, err := video.GetVideoProperties()
	if err != nil {
		return openedVideo{err: err}
	}

	firstFrame, _, err := video.GetFrame(0)
	if err != nil {
		return openedVideo{err: err}
	}

	video.SetOutputFormatV2([]int{firstFrame.EncodedPixelFormat},
		firstFrame.EncodedWidth, firstFrame.EncodedHeight,
		ffms.ResizerBicubic)

	firstFrame, _, err = video.GetFrame(0)
	if err != nil {
		return openedVideo{err: err}
	}

	return openedVideo{
		video: video, props: &props, firstFrame: &firstFrame}
}
