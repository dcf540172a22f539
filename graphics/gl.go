package graphics

// GL constants used by the pipeline. Values match the OpenGL headers so any
// binding can be driven with them unchanged.
const (
	False uint32 = 0
	True  uint32 = 1

	Texture2D        uint32 = 0x0DE1
	Texture0         uint32 = 0x84C0
	TextureMinFilter uint32 = 0x2801
	TextureMagFilter uint32 = 0x2800
	TextureWrapS     uint32 = 0x2802
	TextureWrapT     uint32 = 0x2803
	Linear           int32  = 0x2601
	Nearest          int32  = 0x2600
	ClampToEdge      int32  = 0x812F

	RGBA         uint32 = 0x1908
	RGBA8        int32  = 0x8058
	UnsignedByte uint32 = 0x1401
	Float        uint32 = 0x1406

	Framebuffer         uint32 = 0x8D40
	ColorAttachment0    uint32 = 0x8CE0
	FramebufferComplete uint32 = 0x8CD5
	ColorBufferBit      uint32 = 0x00004000

	VertexShader   uint32 = 0x8B31
	FragmentShader uint32 = 0x8B30
	CompileStatus  uint32 = 0x8B81
	LinkStatus     uint32 = 0x8B82

	ArrayBuffer   uint32 = 0x8892
	StreamDraw    uint32 = 0x88E0
	TriangleStrip uint32 = 0x0005
)

// GL is the set of graphics primitives the filter pipeline consumes. It mirrors
// the shape of the go-gl bindings, with slices in place of raw pointers.
type GL interface {
	IsGLES() bool

	// textures
	GenTextures(n int32, textures *uint32)
	DeleteTextures(n int32, textures *uint32)
	BindTexture(target, texture uint32)
	ActiveTexture(texture uint32)
	TexImage2D(target uint32, level, internalFormat, width, height, border int32, format, xtype uint32, pixels []byte)
	TexParameteri(target, pname uint32, param int32)

	// framebuffers
	GenFramebuffers(n int32, framebuffers *uint32)
	DeleteFramebuffers(n int32, framebuffers *uint32)
	BindFramebuffer(target, framebuffer uint32)
	FramebufferTexture2D(target, attachment, textarget, texture uint32, level int32)
	CheckFramebufferStatus(target uint32) uint32
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	Viewport(x, y, width, height int32)
	ReadPixels(x, y, width, height int32, format, xtype uint32, pixels []byte)

	// programs
	CreateShader(xtype uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderiv(shader, pname uint32, params *int32)
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgramiv(program, pname uint32, params *int32)
	GetProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)
	UseProgram(program uint32)
	GetUniformLocation(program uint32, name string) int32
	GetAttribLocation(program uint32, name string) int32
	Uniform1i(location, v0 int32)
	Uniform1f(location int32, v0 float32)
	Uniform2f(location int32, v0, v1 float32)
	Uniform1fv(location int32, values []float32)

	// geometry
	GenVertexArrays(n int32, arrays *uint32)
	DeleteVertexArrays(n int32, arrays *uint32)
	BindVertexArray(array uint32)
	GenBuffers(n int32, buffers *uint32)
	DeleteBuffers(n int32, buffers *uint32)
	BindBuffer(target, buffer uint32)
	BufferData(target uint32, data []float32, usage uint32)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int)
	DrawArrays(mode uint32, first, count int32)
}
