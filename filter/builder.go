package filter

// Builder accumulates the children of a group. Build brackets them and
// indexes the result once.
type Builder struct {
	filters []Filter
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends filters, skipping nils.
func (b *Builder) Add(filters ...Filter) *Builder {
	for _, f := range filters {
		if f != nil {
			b.filters = append(b.filters, f)
		}
	}
	return b
}

// Len is the number of filters added so far.
func (b *Builder) Len() int { return len(b.filters) }

// Build returns the group [fix, filters..., fix], or an empty group when
// nothing was added.
func (b *Builder) Build() *Group {
	g := newGroup()
	if len(b.filters) > 0 {
		g.filters = make([]Filter, 0, len(b.filters)+2)
		g.filters = append(g.filters, NewFilter())
		g.filters = append(g.filters, b.filters...)
		g.filters = append(g.filters, NewFilter())
	}
	Reindex(g)
	return g
}

// Reindex re-walks the children of g, pointing their parent at g and giving
// them contiguous indices from g.Index(). Nested groups propagate both
// assignments to their own subtrees. It must run after AddFilter or any other
// membership change before the tree is drawn.
func Reindex(g *Group) {
	if g == nil {
		return
	}
	index := g.Index()
	for _, f := range g.filters {
		f.SetParent(g)
		f.SetIndex(index)
		index += f.Size()
	}
}
