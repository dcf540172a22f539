package encoder

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetArgs(t *testing.T) {
	in, out := getArgs(Options{Width: 320, Height: 240, FPS: 30}, "out.mp4")
	assert.Equal(t, "rawvideo", in["format"])
	assert.Equal(t, "rgba", in["pix_fmt"])
	assert.Equal(t, "320x240", in["s"])
	assert.Equal(t, 30, in["framerate"])
	assert.Equal(t, "vflip", out["vf"])
	assert.Equal(t, "libx264", out["c:v"])
	assert.NotContains(t, out, "b:v")

	_, out = getArgs(Options{Width: 8, Height: 8, FPS: 1, Codec: "hevc", Bitrate: "25M"}, "out.mp4")
	assert.Equal(t, "libx265", out["c:v"])
	assert.Equal(t, "hvc1", out["tag:v"])
	assert.Equal(t, "25M", out["b:v"])

	_, out = getArgs(Options{Width: 8, Height: 8, FPS: 1, Codec: "hevc"}, "out.mkv")
	assert.NotContains(t, out, "tag:v")
}

func TestNewRecorderRejectsBadOptions(t *testing.T) {
	_, err := NewRecorder("out.mp4", Options{Width: 0, Height: 10, FPS: 30})
	assert.Error(t, err)
	_, err = NewRecorder("out.mp4", Options{Width: 10, Height: 10})
	assert.Error(t, err)
}

func TestRecorderWritesWholeFrames(t *testing.T) {
	pr, pw := io.Pipe()
	r := newRecorder(pw, 2, 1)
	var got bytes.Buffer
	go func() {
		_, err := io.Copy(&got, pr)
		r.errc <- err
	}()

	assert.Error(t, r.WriteFrame(make([]byte, 7)))
	require.NoError(t, r.WriteFrame([]byte{1, 2, 3, 4, 5, 6, 7, 8}))
	require.NoError(t, r.WriteFrame(make([]byte, 8)))
	require.NoError(t, r.Close())

	assert.Equal(t, int64(2), r.Frames())
	assert.Equal(t, 16, got.Len())
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, got.Bytes()[:8])
}
