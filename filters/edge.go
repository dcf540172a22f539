package filters

import (
	"github.com/richinsley/gofiltergroup/filter"
)

// ThresholdEdgeDetection draws edges as black lines on white: a grayscale
// pass followed by a Sobel threshold pass.
type ThresholdEdgeDetection struct {
	*filter.Group
	sobel *SobelThreshold
}

func NewThresholdEdgeDetection() *ThresholdEdgeDetection {
	sobel := NewSobelThreshold(DefaultThreshold)
	g := filter.NewGroup()
	g.AddFilter(NewGrayscale())
	g.AddFilter(sobel)
	filter.Reindex(g)
	return &ThresholdEdgeDetection{Group: g, sobel: sobel}
}

func (e *ThresholdEdgeDetection) SetLineSize(size float32)       { e.sobel.SetLineSize(size) }
func (e *ThresholdEdgeDetection) SetThreshold(threshold float32) { e.sobel.SetThreshold(threshold) }

// Sobel returns the edge pass.
func (e *ThresholdEdgeDetection) Sobel() *SobelThreshold { return e.sobel }
