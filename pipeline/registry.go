package pipeline

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/richinsley/gofiltergroup/filter"
	"github.com/richinsley/gofiltergroup/filters"
)

var ErrUnknownFilter = errors.New("unknown filter type")

// GroupType nests the node's own Filters in a group.
const GroupType = "group"

// Factory creates a leaf filter or a prebuilt group from a node.
type Factory func(n Node) (filter.Filter, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register makes a filter type available to Build, replacing any factory
// already registered under the name.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = f
}

// Types lists the registered filter types, plus GroupType.
func Types() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := []string{GroupType}
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookup(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[name]
	return f, ok
}

func init() {
	Register("passthrough", func(Node) (filter.Filter, error) {
		return filter.NewFilter(), nil
	})
	Register("grayscale", func(Node) (filter.Filter, error) {
		return filters.NewGrayscale(), nil
	})
	Register("sobel", func(n Node) (filter.Filter, error) {
		s := filters.NewSobelThreshold(orDefault(n.Threshold, filters.DefaultThreshold))
		s.SetLineSize(orDefault(n.LineSize, filters.DefaultLineSize))
		return s, nil
	})
	Register("edge", func(n Node) (filter.Filter, error) {
		e := filters.NewThresholdEdgeDetection()
		e.SetThreshold(orDefault(n.Threshold, filters.DefaultThreshold))
		e.SetLineSize(orDefault(n.LineSize, filters.DefaultLineSize))
		return e, nil
	})
	Register("blur", func(n Node) (filter.Filter, error) {
		radius := n.Radius
		if radius == 0 {
			radius = 4
		}
		return filters.NewWindowBlur(radius, n.Window)
	})
}

func orDefault(v, def float32) float32 {
	if v == 0 {
		return def
	}
	return v
}

// Build creates the root group described by c, indexed and ready for Init.
func (c *Config) Build() (*filter.Group, error) {
	children, err := buildNodes(c.Filters, "filters")
	if err != nil {
		return nil, err
	}
	return filter.NewGroup(children...), nil
}

func buildNodes(nodes []Node, path string) ([]filter.Filter, error) {
	out := make([]filter.Filter, 0, len(nodes))
	for i, n := range nodes {
		f, err := buildNode(n, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func buildNode(n Node, path string) (filter.Filter, error) {
	if n.Type == GroupType {
		children, err := buildNodes(n.Filters, path+".filters")
		if err != nil {
			return nil, err
		}
		return filter.NewGroup(children...), nil
	}
	factory, ok := lookup(n.Type)
	if !ok {
		return nil, fmt.Errorf("%s: %w %q", path, ErrUnknownFilter, n.Type)
	}
	f, err := factory(n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}
