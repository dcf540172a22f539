package filter

import (
	"errors"
	"fmt"
)

// ErrNotReady is raised by Draw in filterdebug builds when a group is drawn
// before it is initialized and sized, or when it is not the root of its tree.
var ErrNotReady = errors.New("filter group is not ready to draw")

// State is the readiness of a Group.
type State int

const (
	// Uninitialized groups have neither GPU resources nor an output size.
	Uninitialized State = iota
	// Initialized groups have compiled their passes but own no pool.
	Initialized
	// Sized groups know their output size but have not been initialized.
	Sized
	// Ready groups may draw.
	Ready
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	case Sized:
		return "sized"
	case Ready:
		return "ready"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// notReady reports a skipped draw. Release builds skip silently.
func notReady(reason string) {
	if debugReadiness {
		panic(fmt.Errorf("%w: %s", ErrNotReady, reason))
	}
}
