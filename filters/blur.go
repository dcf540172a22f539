package filters

import (
	"fmt"
	"sort"

	"github.com/mjibson/go-dsp/window"
	"github.com/richinsley/gofiltergroup/filter"
	"github.com/richinsley/gofiltergroup/graphics"
	"github.com/richinsley/gofiltergroup/shader"
)

// DefaultWindow is the kernel shape used when none is given.
const DefaultWindow = "hann"

var windows = map[string]func(int) []float64{
	"hann":        window.Hann,
	"hamming":     window.Hamming,
	"blackman":    window.Blackman,
	"bartlett":    window.Bartlett,
	"flattop":     window.FlatTop,
	"rectangular": window.Rectangular,
}

// Windows lists the supported kernel shapes.
func Windows() []string {
	names := make([]string, 0, len(windows))
	for name := range windows {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Weights returns 2*radius+1 kernel taps shaped by the named window and
// normalised to sum to one. The window is evaluated two samples wider and its
// end points dropped, since most windows are zero there.
func Weights(radius int, name string) ([]float32, error) {
	if name == "" {
		name = DefaultWindow
	}
	fn, ok := windows[name]
	if !ok {
		return nil, fmt.Errorf("unknown blur window %q", name)
	}
	taps := 2*radius + 1
	if radius < 1 || taps > shader.MaxBlurTaps {
		return nil, fmt.Errorf("blur radius %d out of range [1, %d]", radius, (shader.MaxBlurTaps-1)/2)
	}

	w := fn(taps + 2)[1 : taps+1]
	var sum float64
	for _, v := range w {
		sum += v
	}
	if sum == 0 {
		return nil, fmt.Errorf("blur window %q has no weight at radius %d", name, radius)
	}
	weights := make([]float32, taps)
	for i, v := range w {
		weights[i] = float32(v / sum)
	}
	return weights, nil
}

// blurPass convolves along one axis.
type blurPass struct {
	*filter.ShaderFilter
	horizontal bool
	radius     int
	weights    []float32
}

func (p *blurPass) Init(gl graphics.GL) error {
	if err := p.ShaderFilter.Init(gl); err != nil {
		return err
	}
	p.SetInteger("radius", int32(p.radius))
	p.SetFloatArray("weights", p.weights)
	p.updateStep()
	return nil
}

func (p *blurPass) OnOutputSizeChanged(width, height int) {
	p.ShaderFilter.OnOutputSizeChanged(width, height)
	p.updateStep()
}

func (p *blurPass) step() (float32, float32) {
	w, h := p.OutputSize()
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	if p.horizontal {
		return 1 / float32(w), 0
	}
	return 0, 1 / float32(h)
}

func (p *blurPass) updateStep() {
	x, y := p.step()
	if x == 0 && y == 0 {
		return
	}
	p.SetFloat2("texelStep", x, y)
}

// WindowBlur is a separable blur: a horizontal then a vertical pass sharing
// one window-shaped kernel.
type WindowBlur struct {
	*filter.Group
	horizontal *blurPass
	vertical   *blurPass
	window     string
}

func NewWindowBlur(radius int, windowName string) (*WindowBlur, error) {
	weights, err := Weights(radius, windowName)
	if err != nil {
		return nil, err
	}
	if windowName == "" {
		windowName = DefaultWindow
	}
	h := &blurPass{ShaderFilter: filter.NewShaderFilter(shader.BlurFragmentShader), horizontal: true, radius: radius, weights: weights}
	v := &blurPass{ShaderFilter: filter.NewShaderFilter(shader.BlurFragmentShader), radius: radius, weights: weights}
	return &WindowBlur{
		Group:      filter.NewBuilder().Add(h, v).Build(),
		horizontal: h,
		vertical:   v,
		window:     windowName,
	}, nil
}

func (b *WindowBlur) Radius() int       { return b.horizontal.radius }
func (b *WindowBlur) Window() string    { return b.window }
func (b *WindowBlur) Kernel() []float32 { return append([]float32(nil), b.horizontal.weights...) }
