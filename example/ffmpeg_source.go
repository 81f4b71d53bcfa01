package main

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"

	avg "github.com/GreatValueCreamSoda/goaverage"
)

// ffmpegRate is assumed for piped inputs; rawvideo carries no timing, and
// every pipe gets the same value so the clips still validate as equal.
var ffmpegRate = avg.FrameRate{Num: 25, Den: 1}

type VideoSource struct {
	cmd       *exec.Cmd
	reader    *bufio.Reader
	frameSize int
}

func NewVideoSource(path string, width, height int) (*VideoSource, error) {
	frameSize := width*height + 2*(width*height/4) // YUV420p
	args := []string{"-loglevel", "panic", "-i", path, "-f", "rawvideo", "-pix_fmt", "yuv420p", "-"}
	cmd := exec.Command("ffmpeg", args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	return &VideoSource{
		cmd:       cmd,
		reader:    bufio.NewReader(stdout),
		frameSize: frameSize,
	}, nil
}

// ReadFrame fills the provided buffer with one frame.
// Returns number of bytes read and error, handles EOF.
func (v *VideoSource) ReadFrame(buf []byte) (int, error) {
	if len(buf) != v.frameSize {
		return 0, fmt.Errorf("buffer size %d does not match frame size %d", len(buf), v.frameSize)
	}

	n, err := io.ReadFull(v.reader, buf)
	if err == io.ErrUnexpectedEOF {
		return n, io.EOF // treat incomplete frame as EOF
	}
	return n, err
}

func (v *VideoSource) Close() error {
	if err := v.cmd.Wait(); err != nil {
		return err
	}
	return nil
}

// loadFFmpegClip decodes a video through an ffmpeg yuv420p pipe and
// buffers it as an in-memory clip. Pipes only stream forward, so the
// whole clip is read up front to give the combiner random frame access;
// maxFrames caps memory use (0 = all).
func loadFFmpegClip(path string, width, height, maxFrames int) (
	*avg.MemoryClip, error) {

	vs, err := NewVideoSource(path, width, height)
	if err != nil {
		return nil, err
	}

	format := avg.Format{
		Width:          width,
		Height:         height,
		SamplingFormat: avg.SamplingFormatUInt8,
		ColorFamily:    avg.ColorFamilyYUV,
		SubSamplingW:   1,
		SubSamplingH:   1,
	}

	ySize := width * height
	uvSize := (width / 2) * (height / 2)
	buf := make([]byte, vs.frameSize)

	var frames []*avg.Frame
	for maxFrames == 0 || len(frames) < maxFrames {
		_, err := vs.ReadFrame(buf)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		frame := avg.NewFrame(format)
		copy(frame.Data[0], buf[:ySize])
		copy(frame.Data[1], buf[ySize:ySize+uvSize])
		copy(frame.Data[2], buf[ySize+uvSize:])
		frames = append(frames, frame)
	}

	if maxFrames != 0 && len(frames) == maxFrames {
		// ffmpeg is still writing; waiting on it would deadlock.
		_ = vs.cmd.Process.Kill()
		_ = vs.cmd.Wait()
	} else if err := vs.Close(); err != nil && len(frames) == 0 {
		return nil, err
	}

	logf(LogInfo, "Buffered %d frames of %dx%d yuv420p from %s",
		len(frames), width, height, path)

	return avg.NewMemoryClip(frames, ffmpegRate)
}
