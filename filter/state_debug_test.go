//go:build filterdebug

package filter

import (
	"errors"
	"testing"

	"github.com/richinsley/gofiltergroup/graphics/fakegl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebugDrawBeforeReadyPanics(t *testing.T) {
	root := NewGroup(NewFilter())

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, ErrNotReady))
	}()
	root.DrawSource(1)
}

func TestDebugDrawOnNestedGroupPanics(t *testing.T) {
	rec := fakegl.New()
	inner := NewGroup(NewFilter())
	root := NewGroup(inner)
	require.NoError(t, root.Init(rec))
	root.OnOutputSizeChanged(8, 8)

	assert.Panics(t, func() { inner.DrawSource(1) })
	assert.NotPanics(t, func() { root.DrawSource(1) })
}
