package shader

import "fmt"

// Fragment sources below are written as WebGL2 (GLSL ES 3.00) and
// are run through the translator before compilation.

// GrayscaleFragmentShader converts to luminance.
const GrayscaleFragmentShader = `#version 300 es
precision highp float;
in vec2 textureCoordinate;
out vec4 fragColor;
uniform sampler2D inputImageTexture;
const vec3 W = vec3(0.2125, 0.7154, 0.0721);
void main() {
    vec4 textureColor = texture(inputImageTexture, textureCoordinate);
    float luminance = dot(textureColor.rgb, W);
    fragColor = vec4(vec3(luminance), textureColor.a);
}
`

// SobelThresholdFragmentShader samples a 3x3 neighbourhood of the red channel
// and outputs black where the edge magnitude crosses threshold.
const SobelThresholdFragmentShader = `#version 300 es
precision highp float;
in vec2 textureCoordinate;
out vec4 fragColor;
uniform sampler2D inputImageTexture;
uniform float texelWidth;
uniform float texelHeight;
uniform float threshold;

float intensity(vec2 offset) {
    return texture(inputImageTexture, textureCoordinate + offset).r;
}

void main() {
    vec2 w = vec2(texelWidth, 0.0);
    vec2 h = vec2(0.0, texelHeight);
    float bottomLeft  = intensity(-w + h);
    float topRight    = intensity(w - h);
    float topLeft     = intensity(-w - h);
    float bottomRight = intensity(w + h);
    float left        = intensity(-w);
    float right       = intensity(w);
    float bottom      = intensity(h);
    float top         = intensity(-h);
    float hx = -topLeft - 2.0 * top - topRight + bottomLeft + 2.0 * bottom + bottomRight;
    float vy = -bottomLeft - 2.0 * left - topLeft + bottomRight + 2.0 * right + topRight;
    float mag = 1.0 - length(vec2(hx, vy));
    mag = step(threshold, mag);
    fragColor = vec4(vec3(mag), 1.0);
}
`

// MaxBlurTaps bounds the kernel length of BlurFragmentShader.
const MaxBlurTaps = 33

// BlurFragmentShader is one direction of a separable convolution. texelStep
// selects the axis, weights holds 2*radius+1 normalised taps.
var BlurFragmentShader = fmt.Sprintf(`#version 300 es
precision highp float;
in vec2 textureCoordinate;
out vec4 fragColor;
uniform sampler2D inputImageTexture;
uniform vec2 texelStep;
uniform int radius;
uniform float weights[%d];
void main() {
    vec4 sum = vec4(0.0);
    for (int i = 0; i < %d; i++) {
        if (i > 2 * radius) {
            break;
        }
        vec2 offset = float(i - radius) * texelStep;
        sum += texture(inputImageTexture, textureCoordinate + offset) * weights[i];
    }
    fragColor = sum;
}
`, MaxBlurTaps, MaxBlurTaps)
