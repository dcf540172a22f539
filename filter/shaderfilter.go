package filter

import (
	"fmt"

	"github.com/richinsley/gofiltergroup/graphics"
	"github.com/richinsley/gofiltergroup/shader"
	"github.com/richinsley/gofiltergroup/translator"
)

// ShaderFilter is a leaf that runs one fragment shader over its input
// texture. Uniform setters queue their writes with RunOnDraw so they can be
// called before Init and from any goroutine.
type ShaderFilter struct {
	Base

	// fragmentSource is WebGL2 source, or empty for the passthrough pass.
	fragmentSource string
	fragment       *translator.Fragment

	gl              graphics.GL
	program         uint32
	vao             uint32
	vbo             [2]uint32
	inputTextureLoc int32
}

// NewFilter returns the passthrough pass. Groups use it to bracket their
// children.
func NewFilter() *ShaderFilter {
	return &ShaderFilter{}
}

// NewShaderFilter returns a pass running a WebGL2 (GLSL ES 3.00) fragment
// shader. The shader reads textureCoordinate and samples inputImageTexture.
func NewShaderFilter(fragmentSource string) *ShaderFilter {
	return &ShaderFilter{fragmentSource: fragmentSource}
}

// GL is the context the filter was initialized with.
func (f *ShaderFilter) GL() graphics.GL { return f.gl }

// Program is the linked shader program, 0 before Init.
func (f *ShaderFilter) Program() uint32 { return f.program }

func (f *ShaderFilter) mappedName(name string) string {
	if f.fragment == nil {
		return name
	}
	return f.fragment.MappedName(name)
}

// UniformLocation looks up a uniform by its source name.
func (f *ShaderFilter) UniformLocation(name string) int32 {
	return f.gl.GetUniformLocation(f.program, f.mappedName(name))
}

func (f *ShaderFilter) Init(gl graphics.GL) error {
	if f.IsInitialized() {
		return nil
	}
	f.gl = gl

	varying := shader.TextureCoordinateVarying
	fragmentCode := shader.GetPassthroughFragmentShader(gl.IsGLES())
	f.fragment = nil
	if f.fragmentSource != "" {
		fs, err := translator.TranslateFragment(f.fragmentSource, gl.IsGLES())
		if err != nil {
			return err
		}
		f.fragment = fs
		fragmentCode = fs.Code
		varying = fs.MappedName(shader.TextureCoordinateVarying)
	}

	program, err := shader.NewProgram(gl, shader.GenerateVertexShader(gl.IsGLES(), varying), fragmentCode)
	if err != nil {
		return fmt.Errorf("failed to create shader program: %w", err)
	}
	f.program = program
	f.inputTextureLoc = f.UniformLocation(shader.InputTextureUniform)

	gl.GenVertexArrays(1, &f.vao)
	gl.GenBuffers(2, &f.vbo[0])
	gl.BindVertexArray(f.vao)
	for i, vbo := range f.vbo {
		gl.BindBuffer(graphics.ArrayBuffer, vbo)
		gl.EnableVertexAttribArray(uint32(i))
		gl.VertexAttribPointer(uint32(i), 2, graphics.Float, false, 2*4, 0)
	}
	gl.BindBuffer(graphics.ArrayBuffer, 0)
	gl.BindVertexArray(0)

	f.SetInitialized(true)
	return nil
}

func (f *ShaderFilter) Destroy() {
	if !f.IsInitialized() {
		return
	}
	f.gl.DeleteProgram(f.program)
	f.gl.DeleteBuffers(2, &f.vbo[0])
	f.gl.DeleteVertexArrays(1, &f.vao)
	f.program = 0
	f.SetInitialized(false)
}

// Draw renders the quad with the program bound; pending uniform writes run
// after the program is made current.
func (f *ShaderFilter) Draw(texture uint32, cube, texCoords []float32) {
	if !f.IsInitialized() {
		return
	}
	gl := f.gl
	gl.UseProgram(f.program)
	f.RunPendingOnDrawTasks()

	gl.BindVertexArray(f.vao)
	gl.BindBuffer(graphics.ArrayBuffer, f.vbo[0])
	gl.BufferData(graphics.ArrayBuffer, cube, graphics.StreamDraw)
	gl.BindBuffer(graphics.ArrayBuffer, f.vbo[1])
	gl.BufferData(graphics.ArrayBuffer, texCoords, graphics.StreamDraw)

	if texture != 0 {
		gl.ActiveTexture(graphics.Texture0)
		gl.BindTexture(graphics.Texture2D, texture)
		gl.Uniform1i(f.inputTextureLoc, 0)
	}
	gl.DrawArrays(graphics.TriangleStrip, 0, 4)

	gl.BindTexture(graphics.Texture2D, 0)
	gl.BindBuffer(graphics.ArrayBuffer, 0)
	gl.BindVertexArray(0)
}

func (f *ShaderFilter) SetInteger(name string, v int32) {
	f.RunOnDraw(func() { f.gl.Uniform1i(f.UniformLocation(name), v) })
}

func (f *ShaderFilter) SetFloat(name string, v float32) {
	f.RunOnDraw(func() { f.gl.Uniform1f(f.UniformLocation(name), v) })
}

func (f *ShaderFilter) SetFloat2(name string, v0, v1 float32) {
	f.RunOnDraw(func() { f.gl.Uniform2f(f.UniformLocation(name), v0, v1) })
}

func (f *ShaderFilter) SetFloatArray(name string, values []float32) {
	values = append([]float32(nil), values...)
	f.RunOnDraw(func() { f.gl.Uniform1fv(f.UniformLocation(name), values) })
}
