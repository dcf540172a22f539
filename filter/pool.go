package filter

import (
	"fmt"

	"github.com/richinsley/gofiltergroup/graphics"
)

// RenderTarget is an offscreen framebuffer with its color texture attached.
type RenderTarget struct {
	Framebuffer uint32
	Texture     uint32
}

// Pool is the flat array of render targets shared by every pass of a tree.
// Slot i receives the output of the leaf whose Index is i.
type Pool struct {
	gl      graphics.GL
	targets []RenderTarget
	width   int
	height  int
}

// NewPool allocates n RGBA8 render targets of the given size with linear
// filtering and edge clamping. On failure every handle created so far is
// released.
func NewPool(gl graphics.GL, n, width, height int) (*Pool, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid render target count: %d", n)
	}
	if n > 0 && (width <= 0 || height <= 0) {
		return nil, fmt.Errorf("invalid render target size: %dx%d", width, height)
	}

	p := &Pool{
		gl:      gl,
		targets: make([]RenderTarget, 0, n),
		width:   width,
		height:  height,
	}

	for i := 0; i < n; i++ {
		var rt RenderTarget
		gl.GenFramebuffers(1, &rt.Framebuffer)
		gl.GenTextures(1, &rt.Texture)
		p.targets = append(p.targets, rt)

		gl.BindTexture(graphics.Texture2D, rt.Texture)
		gl.TexImage2D(graphics.Texture2D, 0, graphics.RGBA8, int32(width), int32(height), 0, graphics.RGBA, graphics.UnsignedByte, nil)
		gl.TexParameteri(graphics.Texture2D, graphics.TextureMagFilter, graphics.Linear)
		gl.TexParameteri(graphics.Texture2D, graphics.TextureMinFilter, graphics.Linear)
		gl.TexParameteri(graphics.Texture2D, graphics.TextureWrapS, graphics.ClampToEdge)
		gl.TexParameteri(graphics.Texture2D, graphics.TextureWrapT, graphics.ClampToEdge)

		gl.BindFramebuffer(graphics.Framebuffer, rt.Framebuffer)
		gl.FramebufferTexture2D(graphics.Framebuffer, graphics.ColorAttachment0, graphics.Texture2D, rt.Texture, 0)
		status := gl.CheckFramebufferStatus(graphics.Framebuffer)

		gl.BindTexture(graphics.Texture2D, 0)
		gl.BindFramebuffer(graphics.Framebuffer, 0)

		if status != graphics.FramebufferComplete {
			p.Release()
			return nil, fmt.Errorf("render target %d is not complete: status 0x%X", i, status)
		}
	}

	return p, nil
}

// Len is the number of render targets.
func (p *Pool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.targets)
}

// Size is the dimensions every target was allocated with.
func (p *Pool) Size() (int, int) { return p.width, p.height }

// Target returns slot i.
func (p *Pool) Target(i int) RenderTarget { return p.targets[i] }

// Framebuffer returns the framebuffer of slot i.
func (p *Pool) Framebuffer(i int) uint32 { return p.targets[i].Framebuffer }

// Texture returns the color texture of slot i.
func (p *Pool) Texture(i int) uint32 { return p.targets[i].Texture }

// Release deletes the textures, then the framebuffers they are attached to.
// It is safe to call more than once.
func (p *Pool) Release() {
	if p == nil || len(p.targets) == 0 {
		return
	}
	textures := make([]uint32, len(p.targets))
	framebuffers := make([]uint32, len(p.targets))
	for i, rt := range p.targets {
		textures[i] = rt.Texture
		framebuffers[i] = rt.Framebuffer
	}
	p.gl.DeleteTextures(int32(len(textures)), &textures[0])
	p.gl.DeleteFramebuffers(int32(len(framebuffers)), &framebuffers[0])
	p.targets = nil
}
