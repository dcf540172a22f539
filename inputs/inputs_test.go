package inputs

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/richinsley/gofiltergroup/graphics"
	"github.com/richinsley/gofiltergroup/graphics/fakegl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stripes(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(y), G: uint8(x), A: 255})
		}
	}
	return img
}

func TestVflipReversesRows(t *testing.T) {
	src := stripes(3, 4)
	flipped := vflip(src)
	for y := 0; y < 4; y++ {
		assert.Equal(t, uint8(3-y), flipped.RGBAAt(0, y).R)
	}
}

func TestToRGBANormalisesOrigin(t *testing.T) {
	src := stripes(8, 8).SubImage(image.Rect(2, 2, 6, 5))
	rgba := toRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 4, 3), rgba.Bounds())
	assert.Equal(t, uint8(2), rgba.RGBAAt(0, 0).R)
}

func TestNewImageSourceUploadsTexture(t *testing.T) {
	rec := fakegl.New()
	src, err := NewImageSource(rec, stripes(5, 3), false)
	require.NoError(t, err)

	w, h := src.Size()
	assert.Equal(t, 5, w)
	assert.Equal(t, 3, h)
	assert.True(t, rec.IsTexture(src.TextureID()))

	uploads := rec.Named("TexImage2D")
	require.Len(t, uploads, 1)
	assert.Equal(t, []any{graphics.RGBA8, int32(5), int32(3), 5 * 3 * 4}, uploads[0].Args)

	src.Destroy()
	assert.Zero(t, rec.LiveTextures())
	src.Destroy()
}

func TestNewImageSourceRejectsNilAndEmpty(t *testing.T) {
	rec := fakegl.New()
	_, err := NewImageSource(rec, nil, false)
	assert.Error(t, err)
	_, err = NewImageSource(rec, image.NewRGBA(image.Rect(0, 0, 0, 4)), false)
	assert.Error(t, err)
	assert.Zero(t, rec.LiveTextures())
}

func TestFitSize(t *testing.T) {
	cases := []struct {
		w, h, maxW, maxH int
		wantW, wantH     int
	}{
		{640, 480, 0, 0, 640, 480},
		{640, 480, 1280, 720, 640, 480},
		{1920, 1080, 1280, 0, 1280, 720},
		{1000, 2000, 800, 600, 300, 600},
		{4000, 1, 100, 100, 100, 1},
	}
	for _, c := range cases {
		w, h := FitSize(c.w, c.h, c.maxW, c.maxH)
		assert.Equal(t, c.wantW, w, "%v", c)
		assert.Equal(t, c.wantH, h, "%v", c)
	}
}

func TestLoadImageResizesToFit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, stripes(40, 20)))
	require.NoError(t, f.Close())

	img, err := LoadImage(path, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, img.Bounds().Dx())
	assert.Equal(t, 5, img.Bounds().Dy())

	_, err = LoadImage(filepath.Join(t.TempDir(), "missing.png"), 0, 0)
	assert.Error(t, err)
}

func TestParseProbe(t *testing.T) {
	out := `{"streams":[{"codec_type":"audio"},{"codec_type":"video","width":320,"height":240}]}`
	w, h, err := parseProbe(out)
	require.NoError(t, err)
	assert.Equal(t, 320, w)
	assert.Equal(t, 240, h)

	_, _, err = parseProbe(`{"streams":[{"codec_type":"audio"}]}`)
	assert.Error(t, err)
	_, _, err = parseProbe(`not json`)
	assert.Error(t, err)
}

func TestVideoSourceUploadsFrames(t *testing.T) {
	rec := fakegl.New()
	frame := bytes.Repeat([]byte{1, 2, 3, 4}, 2*2)
	data := append(append([]byte(nil), frame...), frame...)
	v := newVideoSource(rec, bytes.NewReader(data), 2, 2)

	require.Eventually(t, func() bool { return len(v.frames) == 1 }, time.Second, time.Millisecond)
	rec.Reset()
	v.Update()
	uploads := rec.Named("TexImage2D")
	require.Len(t, uploads, 1)
	assert.Equal(t, 16, uploads[0].Args[3])

	v.Destroy()
	assert.Zero(t, rec.LiveTextures())
	assert.NoError(t, v.Err())
}

func TestVideoSourceReportsShortFrame(t *testing.T) {
	rec := fakegl.New()
	v := newVideoSource(rec, bytes.NewReader([]byte{1, 2, 3}), 2, 2)
	v.wg.Wait()
	assert.Error(t, v.Err())

	rec.Reset()
	v.Update()
	assert.Zero(t, rec.Count("TexImage2D"))
	v.Destroy()
}
