package renderer

import (
	"fmt"
	"log"
	"sync"

	"github.com/richinsley/gofiltergroup/filter"
	"github.com/richinsley/gofiltergroup/graphics"
	"github.com/richinsley/gofiltergroup/inputs"
)

// FrameWriter consumes read-back frames, such as an encoder.Recorder.
type FrameWriter interface {
	WriteFrame(pixels []byte) error
}

// Renderer draws a source through a root filter group onto a context. All
// methods except SetFilter and ToggleBypass must be called on the GL thread.
type Renderer struct {
	gl      graphics.GL
	context graphics.Context
	source  inputs.Source

	root        *filter.Group
	passthrough *filter.Group
	bypass      bool

	width  int
	height int

	// the last group whose render targets could not be allocated, and the
	// size it failed at; it is not retried until the size changes
	failed       *filter.Group
	failedWidth  int
	failedHeight int

	mu    sync.Mutex
	tasks []func()
}

// New returns a renderer drawing source with a passthrough filter until
// SetFilter is called.
func New(gl graphics.GL, ctx graphics.Context, source inputs.Source) *Renderer {
	r := &Renderer{
		gl:          gl,
		context:     ctx,
		source:      source,
		passthrough: filter.NewGroup(filter.NewFilter()),
	}
	r.SetFilter(r.passthrough)
	return r
}

// AsRoot returns the group a filter is drawn through: composites are drawn
// directly and leaves are wrapped in a group of their own.
func AsRoot(f filter.Filter) *filter.Group {
	if c, ok := f.(filter.Composite); ok {
		return c.AsGroup()
	}
	return filter.NewGroup(f)
}

func (r *Renderer) runOnDraw(task func()) {
	r.mu.Lock()
	r.tasks = append(r.tasks, task)
	r.mu.Unlock()
}

func (r *Renderer) runPending() {
	r.mu.Lock()
	tasks := r.tasks
	r.tasks = nil
	r.mu.Unlock()
	for _, task := range tasks {
		task()
	}
}

// SetFilter replaces the filter tree at the start of the next frame. The new
// tree is initialized and sized on the GL thread before the old one is
// destroyed; if it fails to initialize the old tree stays in place. It is
// safe to call from any goroutine.
func (r *Renderer) SetFilter(f filter.Filter) {
	if f == nil {
		return
	}
	g := AsRoot(f)
	r.runOnDraw(func() {
		old := r.root
		if old == g {
			return
		}
		if r.failed == g {
			r.failed = nil
		}
		if err := r.prepare(g); err != nil {
			log.Printf("Filter swap failed: %v", err)
			g.Destroy()
			return
		}
		if old != nil && old != r.passthrough {
			old.Destroy()
		}
		r.root = g
		log.Printf("Filter swapped: %d passes", g.Size())
	})
}

// ToggleBypass switches between the filter tree and a single passthrough
// pass at the start of the next frame.
func (r *Renderer) ToggleBypass() {
	r.runOnDraw(func() {
		r.bypass = !r.bypass
		log.Printf("Bypass: %v", r.bypass)
	})
}

// prepare initializes g and sizes it to the current output. A group is only
// resized when its size differs from the output or its pool no longer fits
// the tree, and a failed allocation is not repeated at the same size.
func (r *Renderer) prepare(g *filter.Group) error {
	if !g.IsInitialized() {
		if err := g.Init(r.gl); err != nil {
			return fmt.Errorf("failed to initialize filter: %w", err)
		}
	}
	if r.width <= 0 || r.height <= 0 {
		return nil
	}
	if r.failed == g && r.failedWidth == r.width && r.failedHeight == r.height {
		return nil
	}
	w, h := g.OutputSize()
	if w == r.width && h == r.height && g.State() == filter.Ready && g.Pool().Len() == max(g.Size()-1, 0) {
		return nil
	}
	g.OnOutputSizeChanged(r.width, r.height)
	if g.State() != filter.Ready {
		r.failed, r.failedWidth, r.failedHeight = g, r.width, r.height
		log.Printf("Filter has no render targets at %dx%d; waiting for a resize", r.width, r.height)
		return nil
	}
	if r.failed == g {
		r.failed = nil
	}
	return nil
}

// Active is the group drawn by the next frame.
func (r *Renderer) Active() *filter.Group {
	if r.bypass {
		return r.passthrough
	}
	return r.root
}

// Size is the current output size.
func (r *Renderer) Size() (int, int) { return r.width, r.height }

// OnOutputSizeChanged resizes the active tree, rebuilding its render targets
// when the size actually changed.
func (r *Renderer) OnOutputSizeChanged(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.width, r.height = width, height
	if g := r.Active(); g != nil {
		if err := r.prepare(g); err != nil {
			log.Printf("Filter not ready: %v", err)
		}
	}
}

// RenderFrame applies pending swaps, tracks the framebuffer size, updates the
// source and draws the active tree to the default framebuffer.
func (r *Renderer) RenderFrame() {
	r.runPending()

	fbWidth, fbHeight := r.context.GetFramebufferSize()
	if fbWidth != r.width || fbHeight != r.height {
		r.OnOutputSizeChanged(fbWidth, fbHeight)
	}
	// a tree that was inactive during a resize catches up here
	g := r.Active()
	if g != nil {
		if err := r.prepare(g); err != nil {
			log.Printf("Filter not ready: %v", err)
		}
	}

	r.gl.BindFramebuffer(graphics.Framebuffer, 0)
	r.gl.Viewport(0, 0, int32(r.width), int32(r.height))
	r.gl.ClearColor(0, 0, 0, 1)
	r.gl.Clear(graphics.ColorBufferBit)

	if r.source == nil || g == nil || g.State() != filter.Ready {
		return
	}
	r.source.Update()
	g.DrawSource(r.source.TextureID())
}

// ReadPixels returns the default framebuffer as RGBA rows, bottom row first.
func (r *Renderer) ReadPixels() []byte {
	pixels := make([]byte, r.width*r.height*4)
	r.gl.ReadPixels(0, 0, int32(r.width), int32(r.height), graphics.RGBA, graphics.UnsignedByte, pixels)
	return pixels
}

// Run draws until the context asks to close.
func (r *Renderer) Run() {
	for !r.context.ShouldClose() {
		r.RenderFrame()
		r.context.EndFrame()
	}
}

// Record renders frames and hands each to w. It stops early if the context
// closes.
func (r *Renderer) Record(w FrameWriter, frames int) error {
	for i := 0; i < frames && !r.context.ShouldClose(); i++ {
		r.RenderFrame()
		if err := w.WriteFrame(r.ReadPixels()); err != nil {
			return fmt.Errorf("recording stopped at frame %d: %w", i, err)
		}
		r.context.EndFrame()
		if (i+1)%100 == 0 {
			log.Printf("Recorded %d/%d frames", i+1, frames)
		}
	}
	return nil
}

// Shutdown destroys the filter trees and the source, then the context.
func (r *Renderer) Shutdown() {
	r.runPending()
	if r.root != nil && r.root != r.passthrough {
		r.root.Destroy()
	}
	r.passthrough.Destroy()
	if r.source != nil {
		r.source.Destroy()
	}
	r.context.Shutdown()
}
