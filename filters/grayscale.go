package filters

import (
	"github.com/richinsley/gofiltergroup/filter"
	"github.com/richinsley/gofiltergroup/shader"
)

// NewGrayscale returns a pass that converts its input to luminance.
func NewGrayscale() *filter.ShaderFilter {
	return filter.NewShaderFilter(shader.GrayscaleFragmentShader)
}
