package graphics

// Context defines the interface for an OpenGL surface the pipeline presents to.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	EndFrame()
	GetFramebufferSize() (int, int)
	Time() float64
}
