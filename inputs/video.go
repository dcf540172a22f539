package inputs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/richinsley/gofiltergroup/graphics"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// VideoSource decodes a video file with ffmpeg in the background and uploads
// the most recent frame on Update.
type VideoSource struct {
	gl        graphics.GL
	textureID uint32
	width     int
	height    int

	frames chan []byte
	done   chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
	closer io.Closer

	mu  sync.Mutex
	err error
}

type probeResult struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	} `json:"streams"`
}

// ProbeSize returns the dimensions of the first video stream in path.
func ProbeSize(path string) (int, int, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to probe %s: %w", path, err)
	}
	return parseProbe(out)
}

func parseProbe(out string) (int, int, error) {
	var res probeResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		return 0, 0, fmt.Errorf("failed to parse probe output: %w", err)
	}
	for _, s := range res.Streams {
		if s.CodecType == "video" && s.Width > 0 && s.Height > 0 {
			return s.Width, s.Height, nil
		}
	}
	return 0, 0, errors.New("no video stream found")
}

// NewVideoSource starts decoding path to RGBA frames. When loop is set the
// input is replayed indefinitely.
func NewVideoSource(gl graphics.GL, path, ffmpegPath string, loop bool) (*VideoSource, error) {
	width, height, err := ProbeSize(path)
	if err != nil {
		return nil, err
	}

	inputArgs := ffmpeg.KwArgs{}
	if loop {
		inputArgs["stream_loop"] = -1
	}
	pipeReader, pipeWriter := io.Pipe()
	cmd := ffmpeg.Input(path, inputArgs).
		Output("pipe:", ffmpeg.KwArgs{"format": "rawvideo", "pix_fmt": "rgba"}).
		WithOutput(pipeWriter)
	if ffmpegPath != "" {
		cmd = cmd.SetFfmpegPath(ffmpegPath)
	}

	v := newVideoSource(gl, pipeReader, width, height)
	v.closer = pipeReader
	go func() {
		err := cmd.Run()
		pipeWriter.CloseWithError(err)
	}()
	log.Printf("Decoding %s at %dx%d", path, width, height)
	return v, nil
}

// newVideoSource reads tightly packed RGBA frames of width x height from r.
func newVideoSource(gl graphics.GL, r io.Reader, width, height int) *VideoSource {
	v := &VideoSource{
		gl:        gl,
		textureID: newTexture(gl, width, height, nil),
		width:     width,
		height:    height,
		frames:    make(chan []byte, 1),
		done:      make(chan struct{}),
	}
	v.wg.Add(1)
	go v.readFrames(r)
	return v
}

func (v *VideoSource) readFrames(r io.Reader) {
	defer v.wg.Done()
	defer close(v.frames)
	frameSize := v.width * v.height * 4
	for {
		frame := make([]byte, frameSize)
		if _, err := io.ReadFull(r, frame); err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrClosedPipe) {
				v.setErr(fmt.Errorf("video decode stopped: %w", err))
			}
			return
		}
		select {
		case v.frames <- frame:
		case <-v.done:
			return
		}
	}
}

func (v *VideoSource) setErr(err error) {
	v.mu.Lock()
	v.err = err
	v.mu.Unlock()
}

// Err reports why decoding stopped early, if it did.
func (v *VideoSource) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

func (v *VideoSource) TextureID() uint32 { return v.textureID }
func (v *VideoSource) Size() (int, int)  { return v.width, v.height }

// Update uploads the next decoded frame if one is waiting. It never blocks.
func (v *VideoSource) Update() {
	select {
	case frame, ok := <-v.frames:
		if !ok {
			return
		}
		v.gl.BindTexture(graphics.Texture2D, v.textureID)
		v.gl.TexImage2D(graphics.Texture2D, 0, graphics.RGBA8, int32(v.width), int32(v.height), 0, graphics.RGBA, graphics.UnsignedByte, frame)
		v.gl.BindTexture(graphics.Texture2D, 0)
	default:
	}
}

// Destroy stops the decoder and deletes the texture.
func (v *VideoSource) Destroy() {
	v.once.Do(func() {
		close(v.done)
		if v.closer != nil {
			v.closer.Close()
		}
		v.wg.Wait()
		v.gl.DeleteTextures(1, &v.textureID)
		v.textureID = 0
	})
}
