// Package fakegl provides an in-memory graphics.GL that records every call.
// It allocates handles, tracks which textures and framebuffers are alive and
// which framebuffer is bound, so pipeline code can be tested without a GPU.
package fakegl

import (
	"fmt"
	"unsafe"

	"github.com/richinsley/gofiltergroup/graphics"
)

// Call is one recorded GL invocation.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// Recorder is a fake graphics.GL.
type Recorder struct {
	GLES bool

	// IncompleteAfter makes CheckFramebufferStatus fail once this many
	// framebuffers have been created. Zero disables the failure.
	IncompleteAfter int

	// FailCompile and FailLink make shader status queries report failure.
	FailCompile bool
	FailLink    bool

	Calls []Call

	nextID       uint32
	textures     map[uint32]bool
	framebuffers map[uint32]bool
	generatedFBO int
	bound        uint32
	program      uint32
	locations    map[string]int32
}

var _ graphics.GL = (*Recorder)(nil)

// New returns an empty recorder.
func New() *Recorder {
	return &Recorder{
		textures:     make(map[uint32]bool),
		framebuffers: make(map[uint32]bool),
		locations:    make(map[string]int32),
	}
}

func (r *Recorder) record(name string, args ...any) {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})
}

func (r *Recorder) gen(n int32, out *uint32, live map[uint32]bool) []uint32 {
	dst := unsafe.Slice(out, n)
	ids := make([]uint32, n)
	for i := range ids {
		r.nextID++
		ids[i] = r.nextID
		dst[i] = r.nextID
		if live != nil {
			live[r.nextID] = true
		}
	}
	return ids
}

// LiveTextures is the number of textures created and not yet deleted.
func (r *Recorder) LiveTextures() int { return len(r.textures) }

// LiveFramebuffers is the number of framebuffers created and not yet deleted.
func (r *Recorder) LiveFramebuffers() int { return len(r.framebuffers) }

// IsTexture reports whether id is a live texture.
func (r *Recorder) IsTexture(id uint32) bool { return r.textures[id] }

// IsFramebuffer reports whether id is a live framebuffer.
func (r *Recorder) IsFramebuffer(id uint32) bool { return r.framebuffers[id] }

// BoundFramebuffer is the framebuffer currently bound, 0 for the default target.
func (r *Recorder) BoundFramebuffer() uint32 { return r.bound }

// CurrentProgram is the program last passed to UseProgram.
func (r *Recorder) CurrentProgram() uint32 { return r.program }

// Count returns how many times the named call was recorded.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Named returns the recorded calls with the given name, in order.
func (r *Recorder) Named(name string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Reset drops the call log but keeps handle state.
func (r *Recorder) Reset() { r.Calls = nil }

func (r *Recorder) IsGLES() bool { return r.GLES }

func (r *Recorder) GenTextures(n int32, textures *uint32) {
	ids := r.gen(n, textures, r.textures)
	r.record("GenTextures", ids)
}

func (r *Recorder) DeleteTextures(n int32, textures *uint32) {
	ids := append([]uint32(nil), unsafe.Slice(textures, n)...)
	for _, id := range ids {
		delete(r.textures, id)
	}
	r.record("DeleteTextures", ids)
}

func (r *Recorder) BindTexture(target, texture uint32) { r.record("BindTexture", target, texture) }
func (r *Recorder) ActiveTexture(texture uint32)       { r.record("ActiveTexture", texture) }

func (r *Recorder) TexImage2D(target uint32, level, internalFormat, width, height, border int32, format, xtype uint32, pixels []byte) {
	r.record("TexImage2D", internalFormat, width, height, len(pixels))
}

func (r *Recorder) TexParameteri(target, pname uint32, param int32) {
	r.record("TexParameteri", pname, param)
}

func (r *Recorder) GenFramebuffers(n int32, framebuffers *uint32) {
	ids := r.gen(n, framebuffers, r.framebuffers)
	r.generatedFBO += int(n)
	r.record("GenFramebuffers", ids)
}

func (r *Recorder) DeleteFramebuffers(n int32, framebuffers *uint32) {
	ids := append([]uint32(nil), unsafe.Slice(framebuffers, n)...)
	for _, id := range ids {
		delete(r.framebuffers, id)
		if r.bound == id {
			r.bound = 0
		}
	}
	r.record("DeleteFramebuffers", ids)
}

func (r *Recorder) BindFramebuffer(target, framebuffer uint32) {
	r.bound = framebuffer
	r.record("BindFramebuffer", framebuffer)
}

func (r *Recorder) FramebufferTexture2D(target, attachment, textarget, texture uint32, level int32) {
	r.record("FramebufferTexture2D", r.bound, texture)
}

func (r *Recorder) CheckFramebufferStatus(target uint32) uint32 {
	if r.IncompleteAfter > 0 && r.generatedFBO >= r.IncompleteAfter {
		return 0
	}
	return graphics.FramebufferComplete
}

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.record("ClearColor", red, green, blue, alpha)
}

func (r *Recorder) Clear(mask uint32) { r.record("Clear", r.bound, mask) }

func (r *Recorder) Viewport(x, y, width, height int32) { r.record("Viewport", width, height) }

func (r *Recorder) ReadPixels(x, y, width, height int32, format, xtype uint32, pixels []byte) {
	for i := range pixels {
		pixels[i] = byte(i)
	}
	r.record("ReadPixels", width, height)
}

func (r *Recorder) CreateShader(xtype uint32) uint32 {
	r.nextID++
	r.record("CreateShader", xtype)
	return r.nextID
}

func (r *Recorder) ShaderSource(shader uint32, source string) { r.record("ShaderSource", shader) }
func (r *Recorder) CompileShader(shader uint32)               { r.record("CompileShader", shader) }

func (r *Recorder) GetShaderiv(shader, pname uint32, params *int32) {
	*params = status(!r.FailCompile)
}

func (r *Recorder) GetShaderInfoLog(shader uint32) string { return "compile error" }
func (r *Recorder) DeleteShader(shader uint32)                     { r.record("DeleteShader", shader) }

func (r *Recorder) CreateProgram() uint32 {
	r.nextID++
	r.record("CreateProgram", r.nextID)
	return r.nextID
}

func (r *Recorder) AttachShader(program, shader uint32) { r.record("AttachShader", program, shader) }
func (r *Recorder) LinkProgram(program uint32)          { r.record("LinkProgram", program) }

func (r *Recorder) GetProgramiv(program, pname uint32, params *int32) {
	*params = status(!r.FailLink)
}

func status(ok bool) int32 {
	if ok {
		return int32(graphics.True)
	}
	return int32(graphics.False)
}

func (r *Recorder) GetProgramInfoLog(program uint32) string { return "link error" }
func (r *Recorder) DeleteProgram(program uint32)            { r.record("DeleteProgram", program) }

func (r *Recorder) UseProgram(program uint32) {
	r.program = program
	r.record("UseProgram", program)
}

func (r *Recorder) location(program uint32, name string) int32 {
	key := fmt.Sprintf("%d/%s", program, name)
	if loc, ok := r.locations[key]; ok {
		return loc
	}
	loc := int32(len(r.locations))
	r.locations[key] = loc
	return loc
}

func (r *Recorder) GetUniformLocation(program uint32, name string) int32 {
	return r.location(program, name)
}

func (r *Recorder) GetAttribLocation(program uint32, name string) int32 {
	return r.location(program, name)
}

func (r *Recorder) Uniform1i(location, v0 int32)             { r.record("Uniform1i", location, v0) }
func (r *Recorder) Uniform1f(location int32, v0 float32)     { r.record("Uniform1f", location, v0) }
func (r *Recorder) Uniform2f(location int32, v0, v1 float32) { r.record("Uniform2f", location, v0, v1) }

func (r *Recorder) Uniform1fv(location int32, values []float32) {
	r.record("Uniform1fv", location, append([]float32(nil), values...))
}

func (r *Recorder) GenVertexArrays(n int32, arrays *uint32) {
	r.record("GenVertexArrays", r.gen(n, arrays, nil))
}

func (r *Recorder) DeleteVertexArrays(n int32, arrays *uint32) {
	r.record("DeleteVertexArrays", *arrays)
}

func (r *Recorder) BindVertexArray(array uint32) { r.record("BindVertexArray", array) }

func (r *Recorder) GenBuffers(n int32, buffers *uint32) {
	r.record("GenBuffers", r.gen(n, buffers, nil))
}

func (r *Recorder) DeleteBuffers(n int32, buffers *uint32) { r.record("DeleteBuffers", *buffers) }
func (r *Recorder) BindBuffer(target, buffer uint32)       { r.record("BindBuffer", target, buffer) }

func (r *Recorder) BufferData(target uint32, data []float32, usage uint32) {
	r.record("BufferData", append([]float32(nil), data...))
}

func (r *Recorder) EnableVertexAttribArray(index uint32) {
	r.record("EnableVertexAttribArray", index)
}

func (r *Recorder) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	r.record("VertexAttribPointer", index, size)
}

func (r *Recorder) DrawArrays(mode uint32, first, count int32) {
	r.record("DrawArrays", r.bound, mode, count)
}
