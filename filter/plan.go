package filter

const (
	// SourceTexture as Step.Input means the texture passed to Draw.
	SourceTexture = -1
	// DefaultTarget as Step.Slot means the pass renders to the bound target.
	DefaultTarget = -1
)

// Step is one leaf pass in execution order.
type Step struct {
	Filter Filter
	// Input is the pool slot read by the pass, or SourceTexture.
	Input int
	// Slot is the pool slot written by the pass, or DefaultTarget.
	Slot int
	// Flip selects the vertically flipped texture coordinates.
	Flip bool
}

// IsFinal reports whether the step renders to the default target.
func (s Step) IsFinal() bool { return s.Slot == DefaultTarget }

// Plan flattens the tree below g into the order Draw runs its leaves.
// Indices must be current (see Reindex).
func (g *Group) Plan() []Step {
	steps := make([]Step, 0, g.Size())
	last := g.Root().Size() - 1
	return g.appendSteps(steps, SourceTexture, false, last)
}

// appendSteps schedules the children of g reading input. flip is the
// orientation the group was invoked with and applies to its first leaf only;
// nested groups are always invoked flipped because their input has already
// been through an offscreen pass.
func (g *Group) appendSteps(steps []Step, input int, flip bool, last int) []Step {
	previous := input
	for i, f := range g.filters {
		if c, ok := f.(Composite); ok {
			child := c.AsGroup()
			steps = child.appendSteps(steps, previous, true, last)
			if child.Size() > 0 {
				previous = child.Index() + child.Size() - 1
			}
			continue
		}

		slot := f.Index()
		if slot == last {
			slot = DefaultTarget
		}
		steps = append(steps, Step{
			Filter: f,
			Input:  previous,
			Slot:   slot,
			Flip:   flip || i != 0,
		})
		previous = f.Index()
	}
	return steps
}
