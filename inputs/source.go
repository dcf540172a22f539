package inputs

import (
	"github.com/richinsley/gofiltergroup/graphics"
)

// Source is a texture fed into the root filter group every frame.
type Source interface {
	// TextureID returns the texture to draw from.
	TextureID() uint32

	// Size returns the texture dimensions in pixels.
	Size() (int, int)

	// Update is called once per frame on the GL thread before drawing.
	Update()

	// Destroy releases the texture and any background work.
	Destroy()
}

// newTexture allocates an RGBA8 texture with linear filtering and edge
// clamping, uploading pixels when given.
func newTexture(gl graphics.GL, width, height int, pixels []byte) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(graphics.Texture2D, id)
	gl.TexParameteri(graphics.Texture2D, graphics.TextureWrapS, graphics.ClampToEdge)
	gl.TexParameteri(graphics.Texture2D, graphics.TextureWrapT, graphics.ClampToEdge)
	gl.TexParameteri(graphics.Texture2D, graphics.TextureMinFilter, graphics.Linear)
	gl.TexParameteri(graphics.Texture2D, graphics.TextureMagFilter, graphics.Linear)
	gl.TexImage2D(graphics.Texture2D, 0, graphics.RGBA8, int32(width), int32(height), 0, graphics.RGBA, graphics.UnsignedByte, pixels)
	gl.BindTexture(graphics.Texture2D, 0)
	return id
}
