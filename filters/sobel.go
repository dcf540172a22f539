package filters

import (
	"github.com/richinsley/gofiltergroup/filter"
	"github.com/richinsley/gofiltergroup/graphics"
	"github.com/richinsley/gofiltergroup/shader"
)

const (
	DefaultThreshold = 0.9
	DefaultLineSize  = 1.0
)

// SobelThreshold marks pixels whose 3x3 Sobel magnitude exceeds threshold as
// black and everything else as white. It expects a grayscale input.
type SobelThreshold struct {
	*filter.ShaderFilter
	threshold float32
	lineSize  float32
}

func NewSobelThreshold(threshold float32) *SobelThreshold {
	return &SobelThreshold{
		ShaderFilter: filter.NewShaderFilter(shader.SobelThresholdFragmentShader),
		threshold:    threshold,
		lineSize:     DefaultLineSize,
	}
}

func (f *SobelThreshold) Init(gl graphics.GL) error {
	if err := f.ShaderFilter.Init(gl); err != nil {
		return err
	}
	f.SetThreshold(f.threshold)
	f.updateTexelSize()
	return nil
}

func (f *SobelThreshold) OnOutputSizeChanged(width, height int) {
	f.ShaderFilter.OnOutputSizeChanged(width, height)
	f.updateTexelSize()
}

func (f *SobelThreshold) Threshold() float32 { return f.threshold }
func (f *SobelThreshold) LineSize() float32  { return f.lineSize }

func (f *SobelThreshold) SetThreshold(threshold float32) {
	f.threshold = threshold
	f.SetFloat("threshold", threshold)
}

// SetLineSize scales the sampling distance, in pixels, of the 3x3 kernel.
func (f *SobelThreshold) SetLineSize(size float32) {
	f.lineSize = size
	f.updateTexelSize()
}

// TexelSize is the sampling step in texture coordinates, zero before the
// output size is known.
func (f *SobelThreshold) TexelSize() (float32, float32) {
	w, h := f.OutputSize()
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	return f.lineSize / float32(w), f.lineSize / float32(h)
}

func (f *SobelThreshold) updateTexelSize() {
	tw, th := f.TexelSize()
	if tw == 0 {
		return
	}
	f.SetFloat("texelWidth", tw)
	f.SetFloat("texelHeight", th)
}
