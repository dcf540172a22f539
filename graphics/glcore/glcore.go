// Package glcore implements graphics.GL on top of the desktop OpenGL 4.1 core
// profile bindings.
package glcore

import (
	"fmt"
	"strings"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/gofiltergroup/graphics"
)

// Ensure gl.Init() is called only once per process.
var glInitOnce sync.Once

// GL forwards every call to the current OpenGL context.
type GL struct {
	gles bool
}

var _ graphics.GL = (*GL)(nil)

// New initializes the OpenGL function pointers. The context must already be
// current on the calling thread.
func New(ctx graphics.Context) (*GL, error) {
	ctx.MakeCurrent()

	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	version := gl.GoStr(gl.GetString(gl.VERSION))
	return &GL{gles: strings.Contains(version, "OpenGL ES")}, nil
}

func (g *GL) IsGLES() bool { return g.gles }

func (g *GL) GenTextures(n int32, textures *uint32)    { gl.GenTextures(n, textures) }
func (g *GL) DeleteTextures(n int32, textures *uint32) { gl.DeleteTextures(n, textures) }
func (g *GL) BindTexture(target, texture uint32)       { gl.BindTexture(target, texture) }
func (g *GL) ActiveTexture(texture uint32)             { gl.ActiveTexture(texture) }

func (g *GL) TexImage2D(target uint32, level, internalFormat, width, height, border int32, format, xtype uint32, pixels []byte) {
	if len(pixels) == 0 {
		gl.TexImage2D(target, level, internalFormat, width, height, border, format, xtype, nil)
		return
	}
	gl.TexImage2D(target, level, internalFormat, width, height, border, format, xtype, gl.Ptr(pixels))
}

func (g *GL) TexParameteri(target, pname uint32, param int32) { gl.TexParameteri(target, pname, param) }

func (g *GL) GenFramebuffers(n int32, framebuffers *uint32)    { gl.GenFramebuffers(n, framebuffers) }
func (g *GL) DeleteFramebuffers(n int32, framebuffers *uint32) { gl.DeleteFramebuffers(n, framebuffers) }
func (g *GL) BindFramebuffer(target, framebuffer uint32)       { gl.BindFramebuffer(target, framebuffer) }

func (g *GL) FramebufferTexture2D(target, attachment, textarget, texture uint32, level int32) {
	gl.FramebufferTexture2D(target, attachment, textarget, texture, level)
}

func (g *GL) CheckFramebufferStatus(target uint32) uint32 { return gl.CheckFramebufferStatus(target) }
func (g *GL) ClearColor(r, gr, b, a float32)              { gl.ClearColor(r, gr, b, a) }
func (g *GL) Clear(mask uint32)                           { gl.Clear(mask) }
func (g *GL) Viewport(x, y, width, height int32)          { gl.Viewport(x, y, width, height) }

func (g *GL) ReadPixels(x, y, width, height int32, format, xtype uint32, pixels []byte) {
	gl.ReadPixels(x, y, width, height, format, xtype, gl.Ptr(pixels))
}

func (g *GL) CreateShader(xtype uint32) uint32 { return gl.CreateShader(xtype) }

func (g *GL) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (g *GL) CompileShader(shader uint32)                     { gl.CompileShader(shader) }
func (g *GL) GetShaderiv(shader, pname uint32, params *int32) { gl.GetShaderiv(shader, pname, params) }

func (g *GL) GetShaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
	return strings.TrimRight(logText, "\x00")
}

func (g *GL) DeleteShader(shader uint32)                         { gl.DeleteShader(shader) }
func (g *GL) CreateProgram() uint32                              { return gl.CreateProgram() }
func (g *GL) AttachShader(program, shader uint32)                { gl.AttachShader(program, shader) }
func (g *GL) LinkProgram(program uint32)                         { gl.LinkProgram(program) }
func (g *GL) GetProgramiv(program, pname uint32, params *int32) { gl.GetProgramiv(program, pname, params) }

func (g *GL) GetProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
	return strings.TrimRight(logText, "\x00")
}

func (g *GL) DeleteProgram(program uint32) { gl.DeleteProgram(program) }
func (g *GL) UseProgram(program uint32)    { gl.UseProgram(program) }

func (g *GL) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (g *GL) GetAttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (g *GL) Uniform1i(location, v0 int32)              { gl.Uniform1i(location, v0) }
func (g *GL) Uniform1f(location int32, v0 float32)      { gl.Uniform1f(location, v0) }
func (g *GL) Uniform2f(location int32, v0, v1 float32)  { gl.Uniform2f(location, v0, v1) }

func (g *GL) Uniform1fv(location int32, values []float32) {
	if len(values) == 0 {
		return
	}
	gl.Uniform1fv(location, int32(len(values)), &values[0])
}

func (g *GL) GenVertexArrays(n int32, arrays *uint32)    { gl.GenVertexArrays(n, arrays) }
func (g *GL) DeleteVertexArrays(n int32, arrays *uint32) { gl.DeleteVertexArrays(n, arrays) }
func (g *GL) BindVertexArray(array uint32)               { gl.BindVertexArray(array) }
func (g *GL) GenBuffers(n int32, buffers *uint32)        { gl.GenBuffers(n, buffers) }
func (g *GL) DeleteBuffers(n int32, buffers *uint32)     { gl.DeleteBuffers(n, buffers) }
func (g *GL) BindBuffer(target, buffer uint32)           { gl.BindBuffer(target, buffer) }

func (g *GL) BufferData(target uint32, data []float32, usage uint32) {
	if len(data) == 0 {
		gl.BufferData(target, 0, nil, usage)
		return
	}
	gl.BufferData(target, len(data)*4, gl.Ptr(data), usage)
}

func (g *GL) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (g *GL) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointer(index, size, xtype, normalized, stride, gl.PtrOffset(offset))
}

func (g *GL) DrawArrays(mode uint32, first, count int32) { gl.DrawArrays(mode, first, count) }
