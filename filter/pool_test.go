package filter

import (
	"testing"

	"github.com/richinsley/gofiltergroup/graphics"
	"github.com/richinsley/gofiltergroup/graphics/fakegl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPoolTextureParameters(t *testing.T) {
	rec := fakegl.New()
	pool, err := NewPool(rec, 2, 320, 240)
	require.NoError(t, err)
	assert.Equal(t, 2, pool.Len())

	images := rec.Named("TexImage2D")
	require.Len(t, images, 2)
	for _, c := range images {
		assert.Equal(t, []any{graphics.RGBA8, int32(320), int32(240), 0}, c.Args)
	}

	params := map[uint32]int32{}
	for _, c := range rec.Named("TexParameteri") {
		params[c.Args[0].(uint32)] = c.Args[1].(int32)
	}
	assert.Equal(t, graphics.Linear, params[graphics.TextureMinFilter])
	assert.Equal(t, graphics.Linear, params[graphics.TextureMagFilter])
	assert.Equal(t, graphics.ClampToEdge, params[graphics.TextureWrapS])
	assert.Equal(t, graphics.ClampToEdge, params[graphics.TextureWrapT])

	for _, c := range rec.Named("FramebufferTexture2D") {
		assert.NotZero(t, c.Args[0], "texture attached with no framebuffer bound")
	}
	for i := 0; i < pool.Len(); i++ {
		rt := pool.Target(i)
		assert.True(t, rec.IsFramebuffer(rt.Framebuffer))
		assert.True(t, rec.IsTexture(rt.Texture))
	}
	assert.Zero(t, rec.BoundFramebuffer())
}

func TestPoolReleaseDeletesTexturesFirst(t *testing.T) {
	rec := fakegl.New()
	pool, err := NewPool(rec, 3, 8, 8)
	require.NoError(t, err)
	rec.Reset()

	pool.Release()
	require.Len(t, rec.Calls, 2)
	assert.Equal(t, "DeleteTextures", rec.Calls[0].Name)
	assert.Equal(t, "DeleteFramebuffers", rec.Calls[1].Name)
	assert.Zero(t, rec.LiveTextures())
	assert.Zero(t, rec.LiveFramebuffers())

	pool.Release()
	assert.Len(t, rec.Calls, 2)
}

func TestNewPoolIncompleteReleasesPartialAllocation(t *testing.T) {
	rec := fakegl.New()
	rec.IncompleteAfter = 2

	pool, err := NewPool(rec, 4, 8, 8)
	assert.Error(t, err)
	assert.Nil(t, pool)
	assert.Zero(t, rec.LiveTextures())
	assert.Zero(t, rec.LiveFramebuffers())
}

func TestNewPoolRejectsBadSize(t *testing.T) {
	rec := fakegl.New()
	_, err := NewPool(rec, 1, 0, 8)
	assert.Error(t, err)
	_, err = NewPool(rec, -1, 8, 8)
	assert.Error(t, err)

	empty, err := NewPool(rec, 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())

	var nilPool *Pool
	assert.Equal(t, 0, nilPool.Len())
	nilPool.Release()
}

func TestGroupLogsAndStaysUnreadyOnPoolFailure(t *testing.T) {
	rec := fakegl.New()
	rec.IncompleteAfter = 1
	root := NewGroup(NewFilter())
	require.NoError(t, root.Init(rec))
	root.OnOutputSizeChanged(8, 8)

	assert.Equal(t, Initialized, root.State())
	assert.Nil(t, root.Pool())
	assert.Zero(t, rec.LiveTextures())
}
