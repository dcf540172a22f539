package filter

import (
	"testing"

	"github.com/richinsley/gofiltergroup/graphics"
	"github.com/richinsley/gofiltergroup/graphics/fakegl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassthroughFilterLifecycle(t *testing.T) {
	rec := fakegl.New()
	f := NewFilter()
	assert.Equal(t, 1, f.Size())
	assert.False(t, f.IsInitialized())

	require.NoError(t, f.Init(rec))
	assert.True(t, f.IsInitialized())
	assert.NotZero(t, f.Program())
	assert.Equal(t, 2, rec.Count("CompileShader"))
	assert.Equal(t, 1, rec.Count("LinkProgram"))

	program := f.Program()
	f.Destroy()
	assert.False(t, f.IsInitialized())
	deleted := rec.Named("DeleteProgram")
	require.Len(t, deleted, 1)
	assert.Equal(t, program, deleted[0].Args[0])
}

func TestShaderFilterDrawBindsInputAndDrawsQuad(t *testing.T) {
	rec := fakegl.New()
	f := NewFilter()
	require.NoError(t, f.Init(rec))
	rec.Reset()

	f.Draw(42, Cube, TextureNoRotation)
	assert.Equal(t, f.Program(), rec.CurrentProgram())

	binds := rec.Named("BindTexture")
	require.NotEmpty(t, binds)
	assert.Equal(t, []any{graphics.Texture2D, uint32(42)}, binds[0].Args)

	draws := rec.Named("DrawArrays")
	require.Len(t, draws, 1)
	assert.Equal(t, []any{uint32(0), graphics.TriangleStrip, int32(4)}, draws[0].Args)
}

func TestShaderFilterSkipsDrawBeforeInit(t *testing.T) {
	rec := fakegl.New()
	f := NewFilter()
	f.Draw(1, Cube, TextureNoRotation)
	assert.Empty(t, rec.Calls)
}

func TestUniformWritesWaitForProgram(t *testing.T) {
	rec := fakegl.New()
	f := NewFilter()
	f.SetFloat("threshold", 0.5)
	f.SetFloat2("texelStep", 1, 0)
	f.SetFloatArray("weights", []float32{0.25, 0.5, 0.25})
	f.SetInteger("radius", 1)

	require.NoError(t, f.Init(rec))
	assert.Zero(t, rec.Count("Uniform1f"))
	rec.Reset()

	f.Draw(1, Cube, TextureNoRotation)
	require.Equal(t, "UseProgram", rec.Calls[0].Name)
	assert.Equal(t, 1, rec.Count("Uniform1f"))
	assert.Equal(t, 1, rec.Count("Uniform2f"))
	require.Equal(t, 1, rec.Count("Uniform1fv"))
	assert.Equal(t, []float32{0.25, 0.5, 0.25}, rec.Named("Uniform1fv")[0].Args[1])

	f.Draw(1, Cube, TextureNoRotation)
	assert.Equal(t, 1, rec.Count("Uniform1f"))
}

func TestGroupInitReportsShaderFailure(t *testing.T) {
	rec := fakegl.New()
	rec.FailCompile = true
	g := NewGroup(NewFilter())

	err := g.Init(rec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "filter 0")
	assert.NotEqual(t, Ready, g.State())
}
