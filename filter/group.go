package filter

import (
	"fmt"
	"log"

	"github.com/richinsley/gofiltergroup/graphics"
)

// Group is a filter made of other filters applied one after another. The
// outermost group of a tree is its root: it allocates the render-target pool
// and is the only group that may be drawn.
//
// Non-empty groups are bracketed by two passthrough passes. The leading one
// performs the first orientation inversion so every later pass sees the same
// stored orientation; the closing one guarantees the last child is never a
// group, which makes the root's final pass a leaf.
type Group struct {
	Base

	filters []Filter
	gl      graphics.GL
	pool    *Pool
	state   State
	sized   bool

	cube          []float32
	texCoords     []float32
	flipTexCoords []float32
}

// NewGroup returns a bracketed, indexed group of filters. Nil filters are
// skipped.
func NewGroup(filters ...Filter) *Group {
	return NewBuilder().Add(filters...).Build()
}

func newGroup() *Group {
	return &Group{
		cube:          append([]float32(nil), Cube...),
		texCoords:     append([]float32(nil), TextureNoRotation...),
		flipTexCoords: append([]float32(nil), TextureFlipVertical...),
	}
}

// AsGroup implements Composite.
func (g *Group) AsGroup() *Group { return g }

// Filters returns the children, including the bracketing passes.
func (g *Group) Filters() []Filter { return g.filters }

// State reports the readiness of the group.
func (g *Group) State() State { return g.state }

// Pool is the render-target pool, nil unless g is a sized root.
func (g *Group) Pool() *Pool { return g.pool }

// AddFilter appends f while keeping the group bracketed: on an empty group it
// inserts [fix, f, fix]; otherwise f replaces the closing fix and a new one is
// appended. Indices are not recomputed; call Reindex on the root afterwards.
func (g *Group) AddFilter(f Filter) {
	if f == nil {
		return
	}
	if len(g.filters) == 0 {
		g.filters = append(g.filters, NewFilter(), f, NewFilter())
		return
	}
	g.filters[len(g.filters)-1] = f
	g.filters = append(g.filters, NewFilter())
}

// Size is the number of leaf passes below g.
func (g *Group) Size() int {
	size := 0
	for _, f := range g.filters {
		size += f.Size()
	}
	return size
}

// SetIndex assigns contiguous slots to the leaves below g starting at index.
// The group itself consumes no slot.
func (g *Group) SetIndex(index int) {
	g.Base.SetIndex(index)
	for _, f := range g.filters {
		f.SetIndex(index)
		index += f.Size()
	}
}

// SetParent attaches g under parent and re-parents the children to g. A group
// that stops being a root gives up its pool.
func (g *Group) SetParent(parent *Group) {
	g.Base.SetParent(parent)
	if parent != nil && g.pool != nil {
		g.pool.Release()
		g.pool = nil
		g.updateState()
	}
	for _, f := range g.filters {
		f.SetParent(g)
	}
}

// Root walks the parent links up to the outermost group.
func (g *Group) Root() *Group {
	root := g
	for root.Parent() != nil {
		root = root.Parent()
	}
	return root
}

// IsRoot reports whether g has no parent.
func (g *Group) IsRoot() bool { return g.Parent() == nil }

// Init initializes every child. A sized root allocates its pool here. If a
// child fails, the children initialized before it are destroyed again.
func (g *Group) Init(gl graphics.GL) error {
	g.gl = gl
	for i, f := range g.filters {
		if err := f.Init(gl); err != nil {
			for _, done := range g.filters[:i] {
				done.Destroy()
			}
			return fmt.Errorf("failed to initialize filter %d: %w", i, err)
		}
	}
	g.SetInitialized(true)
	if g.IsRoot() && g.sized && g.pool == nil {
		w, h := g.OutputSize()
		if err := g.rebuildPool(w, h); err != nil {
			log.Printf("filter group: %v", err)
		}
	}
	g.updateState()
	return nil
}

// Destroy releases the pool before the children and returns the group to
// Uninitialized; it must be sized again before it can draw.
func (g *Group) Destroy() {
	g.pool.Release()
	g.pool = nil
	for _, f := range g.filters {
		f.Destroy()
	}
	g.SetInitialized(false)
	g.sized = false
	g.updateState()
}

// OnOutputSizeChanged forwards the size to every child. The root then
// re-indexes the tree and rebuilds the pool from scratch.
func (g *Group) OnOutputSizeChanged(width, height int) {
	g.Base.OnOutputSizeChanged(width, height)
	g.sized = true

	g.pool.Release()
	g.pool = nil

	for _, f := range g.filters {
		f.OnOutputSizeChanged(width, height)
	}

	if g.IsRoot() && g.gl != nil {
		if err := g.rebuildPool(width, height); err != nil {
			log.Printf("filter group: %v", err)
		}
	}
	g.updateState()
}

func (g *Group) rebuildPool(width, height int) error {
	g.Base.SetIndex(0)
	Reindex(g)
	n := g.Size() - 1
	if n < 0 {
		n = 0
	}
	pool, err := NewPool(g.gl, n, width, height)
	if err != nil {
		return fmt.Errorf("failed to allocate %d render targets: %w", n, err)
	}
	g.pool = pool
	log.Printf("filter group: allocated %d render targets at %dx%d", n, width, height)
	return nil
}

func (g *Group) updateState() {
	switch {
	case g.IsInitialized() && g.pool != nil:
		g.state = Ready
	case g.IsInitialized():
		g.state = Initialized
	case g.sized:
		g.state = Sized
	default:
		g.state = Uninitialized
	}
}

// runPendingTree drains the queued tasks of g and of every nested group.
// Leaves drain their own queues when they draw.
func (g *Group) runPendingTree() {
	g.RunPendingOnDrawTasks()
	for _, f := range g.filters {
		if c, ok := f.(Composite); ok {
			c.AsGroup().runPendingTree()
		}
	}
}

// DrawSource draws the tree from an upright source texture using the quad
// and texture coordinates owned by the group.
func (g *Group) DrawSource(texture uint32) {
	g.Draw(texture, g.cube, g.texCoords)
}

// Draw runs every pass of the tree. It must be called on the root: pool slots
// mean nothing without the root's allocation. Drawing a group that is not
// ready, or whose pool no longer matches its size, does nothing.
func (g *Group) Draw(texture uint32, cube, texCoords []float32) {
	g.runPendingTree()

	switch {
	case !g.IsRoot():
		notReady("draw must start at the root group")
		return
	case g.state != Ready:
		notReady("group is " + g.state.String())
		return
	case g.pool.Len() != max(g.Size()-1, 0):
		notReady("render-target pool is stale; resize after changing the tree")
		return
	}

	gl := g.gl
	for _, step := range g.Plan() {
		input := texture
		if step.Input != SourceTexture {
			input = g.pool.Texture(step.Input)
		}
		coords := texCoords
		if step.Flip {
			coords = g.flipTexCoords
		}

		if step.IsFinal() {
			step.Filter.Draw(input, cube, coords)
			continue
		}

		gl.BindFramebuffer(graphics.Framebuffer, g.pool.Framebuffer(step.Slot))
		gl.ClearColor(0, 0, 0, 0)
		gl.Clear(graphics.ColorBufferBit)
		step.Filter.Draw(input, cube, coords)
		gl.BindFramebuffer(graphics.Framebuffer, 0)
	}
}
