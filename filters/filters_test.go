package filters

import (
	"testing"

	"github.com/richinsley/gofiltergroup/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThresholdEdgeDetectionLayout(t *testing.T) {
	e := NewThresholdEdgeDetection()

	require.Len(t, e.Filters(), 4)
	assert.Equal(t, 4, e.Size())
	assert.Same(t, e.sobel, e.Filters()[2])
	for i, f := range e.Filters() {
		assert.Equal(t, i, f.Index())
		assert.Same(t, e.Group, f.Parent())
	}
}

func TestThresholdEdgeDetectionRoutesToSobel(t *testing.T) {
	e := NewThresholdEdgeDetection()
	e.SetThreshold(0.25)
	e.SetLineSize(2)

	assert.Equal(t, float32(0.25), e.Sobel().Threshold())
	assert.Equal(t, float32(2), e.Sobel().LineSize())
}

func TestSobelTexelSizeFollowsOutput(t *testing.T) {
	s := NewSobelThreshold(DefaultThreshold)
	tw, th := s.TexelSize()
	assert.Zero(t, tw)
	assert.Zero(t, th)

	s.OnOutputSizeChanged(200, 100)
	tw, th = s.TexelSize()
	assert.InDelta(t, 1.0/200, tw, 1e-9)
	assert.InDelta(t, 1.0/100, th, 1e-9)

	s.SetLineSize(3)
	tw, th = s.TexelSize()
	assert.InDelta(t, 3.0/200, tw, 1e-9)
	assert.InDelta(t, 3.0/100, th, 1e-9)
}

func TestWeightsNormalisedAndSymmetric(t *testing.T) {
	for _, name := range Windows() {
		t.Run(name, func(t *testing.T) {
			w, err := Weights(4, name)
			require.NoError(t, err)
			require.Len(t, w, 9)

			var sum float32
			for i, v := range w {
				sum += v
				assert.InDelta(t, v, w[len(w)-1-i], 1e-6)
			}
			assert.InDelta(t, 1, sum, 1e-5)
		})
	}
}

func TestHannWeightsPeakInCentre(t *testing.T) {
	w, err := Weights(3, "hann")
	require.NoError(t, err)
	for i := range w {
		assert.LessOrEqual(t, w[i], w[3])
		assert.Greater(t, w[i], float32(0))
	}
}

func TestWeightsRejectsBadInput(t *testing.T) {
	_, err := Weights(0, "hann")
	assert.Error(t, err)
	_, err = Weights(17, "hann")
	assert.Error(t, err)
	_, err = Weights(2, "kaiser")
	assert.Error(t, err)

	w, err := Weights(16, "")
	require.NoError(t, err)
	assert.Len(t, w, 33)
}

func TestWindowBlurIsTwoPassGroup(t *testing.T) {
	b, err := NewWindowBlur(5, "")
	require.NoError(t, err)

	assert.Equal(t, 4, b.Size())
	assert.Equal(t, 5, b.Radius())
	assert.Equal(t, DefaultWindow, b.Window())
	assert.Len(t, b.Kernel(), 11)
	assert.Same(t, b.horizontal, b.Filters()[1])
	assert.Same(t, b.vertical, b.Filters()[2])

	b.OnOutputSizeChanged(64, 32)
	x, y := b.horizontal.step()
	assert.InDelta(t, 1.0/64, x, 1e-9)
	assert.Zero(t, y)
	x, y = b.vertical.step()
	assert.Zero(t, x)
	assert.InDelta(t, 1.0/32, y, 1e-9)
}

func TestWindowBlurNestsInEdgeGroup(t *testing.T) {
	b, err := NewWindowBlur(2, "bartlett")
	require.NoError(t, err)
	e := NewThresholdEdgeDetection()
	root := filter.NewGroup(b, e)

	assert.Equal(t, 10, root.Size())
	assert.Equal(t, 1, b.Index())
	assert.Equal(t, 5, e.Index())
	assert.Equal(t, 7, e.Sobel().Index())
}
