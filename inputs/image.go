package inputs

import (
	"fmt"
	"image"
	"image/draw"
	"log"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"github.com/richinsley/gofiltergroup/graphics"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageSource is a static image uploaded once.
type ImageSource struct {
	gl        graphics.GL
	textureID uint32
	width     int
	height    int
}

// vflip returns a copy of src with its rows in reverse order.
func vflip(src *image.RGBA) *image.RGBA {
	bounds := src.Bounds()
	flipped := image.NewRGBA(bounds)
	height := bounds.Dy()
	rowSize := bounds.Dx() * 4
	for y := 0; y < height; y++ {
		srcRow := src.Pix[((height-1)-y)*src.Stride:]
		copy(flipped.Pix[y*flipped.Stride:], srcRow[:rowSize])
	}
	return flipped
}

// toRGBA converts img to a tightly packed RGBA image anchored at the origin.
func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// NewImageSource uploads img as an RGBA8 texture. Row zero of the image lands
// at texture coordinate t=0, which the root group's upright coordinates
// display at the top; set flip for bottom-up images.
func NewImageSource(gl graphics.GL, img image.Image, flip bool) (*ImageSource, error) {
	if img == nil {
		return nil, fmt.Errorf("input image is nil")
	}
	rgba := toRGBA(img)
	if flip {
		rgba = vflip(rgba)
	}
	w, h := rgba.Rect.Dx(), rgba.Rect.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("input image is empty (%dx%d)", w, h)
	}
	return &ImageSource{
		gl:        gl,
		textureID: newTexture(gl, w, h, rgba.Pix),
		width:     w,
		height:    h,
	}, nil
}

// LoadImage decodes the image at path and, when it exceeds maxWidth or
// maxHeight, scales it down to fit while keeping its aspect ratio. A zero
// bound leaves that axis unconstrained.
func LoadImage(path string, maxWidth, maxHeight int) (image.Image, error) {
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	fw, fh := FitSize(w, h, maxWidth, maxHeight)
	if fw != w || fh != h {
		log.Printf("Resizing %s from %dx%d to %dx%d", path, w, h, fw, fh)
		img = transform.Resize(img, fw, fh, transform.Linear)
	}
	return img, nil
}

// FitSize scales w x h down uniformly until it fits maxWidth x maxHeight.
func FitSize(w, h, maxWidth, maxHeight int) (int, int) {
	scale := 1.0
	if maxWidth > 0 && w > maxWidth {
		scale = float64(maxWidth) / float64(w)
	}
	if maxHeight > 0 && h > maxHeight {
		if s := float64(maxHeight) / float64(h); s < scale {
			scale = s
		}
	}
	if scale == 1.0 {
		return w, h
	}
	return max(1, int(float64(w)*scale+0.5)), max(1, int(float64(h)*scale+0.5))
}

func (s *ImageSource) TextureID() uint32 { return s.textureID }
func (s *ImageSource) Size() (int, int)  { return s.width, s.height }

// Update is a no-op for static images.
func (s *ImageSource) Update() {}

func (s *ImageSource) Destroy() {
	if s.textureID == 0 {
		return
	}
	s.gl.DeleteTextures(1, &s.textureID)
	s.textureID = 0
}
