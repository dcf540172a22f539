// Package filter composes fragment-shader passes into trees and schedules them
// over a shared pool of offscreen render targets.
//
// A tree is driven from its root Group: the root owns one framebuffer/texture
// pair per leaf pass except the last, which renders to whatever target the
// caller has bound (normally the window). Every offscreen pass stores its
// result vertically inverted; the scheduler compensates by handing every pass
// after the first the flipped texture coordinates, so the final pass presents
// an upright image.
package filter

import (
	"sync"

	"github.com/richinsley/gofiltergroup/graphics"
)

// Cube is the full-screen quad as a triangle strip.
var Cube = []float32{
	-1.0, -1.0,
	1.0, -1.0,
	-1.0, 1.0,
	1.0, 1.0,
}

// TextureNoRotation maps Cube onto an upright source texture.
var TextureNoRotation = []float32{
	0.0, 1.0,
	1.0, 1.0,
	0.0, 0.0,
	1.0, 0.0,
}

// TextureFlipVertical is TextureNoRotation mirrored on the vertical axis.
var TextureFlipVertical = []float32{
	0.0, 0.0,
	1.0, 0.0,
	0.0, 1.0,
	1.0, 1.0,
}

// Filter is a node of a filter tree. Leaves run one shader pass; groups
// (see Composite) contain further filters.
type Filter interface {
	// Init acquires the GPU-side resources of the filter.
	Init(gl graphics.GL) error
	// Destroy releases everything Init acquired.
	Destroy()
	IsInitialized() bool

	OnOutputSizeChanged(width, height int)

	// Draw renders one pass reading texture into the currently bound target.
	Draw(texture uint32, cube, texCoords []float32)

	// Size is the number of leaf passes in the subtree: 1 for a leaf.
	Size() int
	// Index is the pool slot of the filter, or of the first leaf for a group.
	Index() int
	SetIndex(index int)
	Parent() *Group
	SetParent(parent *Group)

	// RunOnDraw queues task to run on the GL thread before the next draw.
	RunOnDraw(task func())
	RunPendingOnDrawTasks()
}

// Composite is implemented by Group and by any type embedding *Group.
type Composite interface {
	Filter
	AsGroup() *Group
}

// Base holds the tree bookkeeping shared by all filters. Leaf filters embed it
// and supply Init, Destroy and Draw.
type Base struct {
	index        int
	parent       *Group
	initialized  bool
	outputWidth  int
	outputHeight int

	mu      sync.Mutex
	pending []func()
}

func (b *Base) Size() int                { return 1 }
func (b *Base) Index() int               { return b.index }
func (b *Base) SetIndex(index int)       { b.index = index }
func (b *Base) Parent() *Group           { return b.parent }
func (b *Base) SetParent(parent *Group)  { b.parent = parent }
func (b *Base) IsInitialized() bool      { return b.initialized }
func (b *Base) SetInitialized(done bool) { b.initialized = done }

// OutputSize is the size last passed to OnOutputSizeChanged.
func (b *Base) OutputSize() (int, int) { return b.outputWidth, b.outputHeight }

func (b *Base) OnOutputSizeChanged(width, height int) {
	b.outputWidth = width
	b.outputHeight = height
}

// RunOnDraw may be called from any goroutine.
func (b *Base) RunOnDraw(task func()) {
	if task == nil {
		return
	}
	b.mu.Lock()
	b.pending = append(b.pending, task)
	b.mu.Unlock()
}

// RunPendingOnDrawTasks runs queued tasks in the order they were posted.
func (b *Base) RunPendingOnDrawTasks() {
	b.mu.Lock()
	tasks := b.pending
	b.pending = nil
	b.mu.Unlock()

	for _, task := range tasks {
		task()
	}
}
