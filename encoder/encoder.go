// Package encoder records rendered frames to a video file with ffmpeg.
package encoder

import (
	"fmt"
	"io"
	"log"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Options describe the encoded output.
type Options struct {
	Width      int
	Height     int
	FPS        int
	Codec      string // "h264" or "hevc"
	Bitrate    string
	FFMPEGPath string
}

// Recorder pipes tightly packed RGBA frames, as read back from GL, into an
// ffmpeg process.
type Recorder struct {
	width  int
	height int
	out    io.WriteCloser
	errc   chan error
	frames int64
}

// getArgs returns the ffmpeg input and output arguments. GL reads rows bottom
// up, so the output is flipped vertically.
func getArgs(opts Options, outputFile string) (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"format":    "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"framerate": opts.FPS,
	}

	outputArgs = ffmpeg.KwArgs{
		"vf":      "vflip",
		"pix_fmt": "yuv420p",
	}
	if opts.Codec == "hevc" {
		outputArgs["c:v"] = "libx265"
		if strings.HasSuffix(outputFile, ".mp4") {
			outputArgs["tag:v"] = "hvc1"
		}
	} else {
		outputArgs["c:v"] = "libx264"
	}
	if opts.Bitrate != "" {
		outputArgs["b:v"] = opts.Bitrate
	}
	return
}

// NewRecorder starts ffmpeg writing to outputFile.
func NewRecorder(outputFile string, opts Options) (*Recorder, error) {
	if opts.Width <= 0 || opts.Height <= 0 || opts.FPS <= 0 {
		return nil, fmt.Errorf("invalid recording size %dx%d at %d fps", opts.Width, opts.Height, opts.FPS)
	}
	inputArgs, outputArgs := getArgs(opts, outputFile)
	pipeReader, pipeWriter := io.Pipe()

	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(outputFile, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()
	if opts.FFMPEGPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(opts.FFMPEGPath)
	}

	r := newRecorder(pipeWriter, opts.Width, opts.Height)
	go func() {
		err := ffmpegCmd.Run()
		pipeReader.CloseWithError(err)
		r.errc <- err
	}()
	log.Printf("Recording %dx%d@%d to %s (%s)", opts.Width, opts.Height, opts.FPS, outputFile, outputArgs["c:v"])
	return r, nil
}

func newRecorder(out io.WriteCloser, width, height int) *Recorder {
	return &Recorder{
		width:  width,
		height: height,
		out:    out,
		errc:   make(chan error, 1),
	}
}

// WriteFrame blocks until ffmpeg has consumed the frame.
func (r *Recorder) WriteFrame(pixels []byte) error {
	if want := r.width * r.height * 4; len(pixels) != want {
		return fmt.Errorf("frame is %d bytes, want %d", len(pixels), want)
	}
	if _, err := r.out.Write(pixels); err != nil {
		return fmt.Errorf("failed to write frame %d: %w", r.frames, err)
	}
	r.frames++
	return nil
}

// Frames is the number of frames written so far.
func (r *Recorder) Frames() int64 { return r.frames }

// Close ends the input stream and waits for ffmpeg to finish.
func (r *Recorder) Close() error {
	if err := r.out.Close(); err != nil {
		return err
	}
	if err := <-r.errc; err != nil {
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	log.Printf("Recorded %d frames", r.frames)
	return nil
}
