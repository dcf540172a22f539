package shader

import (
	"fmt"

	"github.com/richinsley/gofiltergroup/graphics"
)

// Attribute, uniform and varying names shared by every filter pass.
const (
	PositionAttribute        = "position"
	TextureCoordAttribute    = "inputTextureCoordinate"
	InputTextureUniform      = "inputImageTexture"
	TextureCoordinateVarying = "textureCoordinate"
)

// ────────────────────────────────── Desktop GL ──────────────────────────────────

const vertexShaderTemplateGL = `#version 410 core
layout (location = 0) in vec4 position;
layout (location = 1) in vec4 inputTextureCoordinate;
out vec2 %s;
void main() {
    gl_Position = position;
    %s = inputTextureCoordinate.xy;
}
`

const passthroughFragmentShaderSourceGL = `#version 410 core
in vec2 textureCoordinate;
out vec4 fragColor;
uniform sampler2D inputImageTexture;
void main() { fragColor = texture(inputImageTexture, textureCoordinate); }
`

// ──────────────────────────────────── GLES ──────────────────────────────────────

const vertexShaderTemplateGLES = `#version 300 es
layout (location = 0) in vec4 position;
layout (location = 1) in vec4 inputTextureCoordinate;
out vec2 %s;
void main() {
    gl_Position = position;
    %s = inputTextureCoordinate.xy;
}
`

const passthroughFragmentShaderSourceGLES = `#version 300 es
precision mediump float;
in vec2 textureCoordinate;
out vec4 fragColor;
uniform sampler2D inputImageTexture;
void main() { fragColor = texture(inputImageTexture, textureCoordinate); }
`

// ────────────────────────────────── Public API ─────────────────────────────────

// GenerateVertexShader returns the full-screen quad vertex shader. varying is
// the name the fragment stage reads texture coordinates from; translated
// fragment shaders may have it renamed.
func GenerateVertexShader(isGLES bool, varying string) string {
	if varying == "" {
		varying = TextureCoordinateVarying
	}
	if isGLES {
		return fmt.Sprintf(vertexShaderTemplateGLES, varying, varying)
	}
	return fmt.Sprintf(vertexShaderTemplateGL, varying, varying)
}

// GetPassthroughFragmentShader copies the input texture unchanged.
func GetPassthroughFragmentShader(isGLES bool) string {
	if isGLES {
		return passthroughFragmentShaderSourceGLES
	}
	return passthroughFragmentShaderSourceGL
}

// NewProgram compiles and links a vertex/fragment pair.
func NewProgram(gl graphics.GL, vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := CompileShader(gl, vertexShaderSource, graphics.VertexShader)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := CompileShader(gl, fragmentShaderSource, graphics.FragmentShader)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, graphics.LinkStatus, &status)
	if uint32(status) == graphics.False {
		log := gl.GetProgramInfoLog(program)
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", log)
	}

	return program, nil
}

// CompileShader compiles a single shader stage.
func CompileShader(gl graphics.GL, source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	gl.ShaderSource(shader, source)
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, graphics.CompileStatus, &status)
	if uint32(status) == graphics.False {
		logText := gl.GetShaderInfoLog(shader)
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile shader: %v", logText)
	}
	return shader, nil
}
