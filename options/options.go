package options

import "flag"

type FilterOptions struct {
	Input      *string
	Config     *string
	Watch      *bool
	Loop       *bool
	Help       *bool
	Width      *int
	Height     *int
	Threshold  *float64
	LineSize   *float64
	Record     *bool
	Headless   *bool
	Duration   *float64
	FPS        *int
	OutputFile *string
	Codec      *string
	FFMPEGPath *string
}

// Register binds the options to flags on fs.
func Register(fs *flag.FlagSet) *FilterOptions {
	return &FilterOptions{
		Input:      fs.String("input", "", "Image or video file to filter"),
		Config:     fs.String("config", "", "Pipeline file (.yaml, .yml or .toml); defaults to threshold edge detection"),
		Watch:      fs.Bool("watch", false, "Reload the pipeline file when it changes"),
		Loop:       fs.Bool("loop", true, "Loop video input"),
		Help:       fs.Bool("help", false, "Show help message"),
		Width:      fs.Int("width", 1280, "Width of the output"),
		Height:     fs.Int("height", 720, "Height of the output"),
		Threshold:  fs.Float64("threshold", 0.9, "Edge threshold for the default pipeline"),
		LineSize:   fs.Float64("linesize", 1.0, "Edge line size for the default pipeline"),
		Record:     fs.Bool("record", false, "Render offscreen and record to -output"),
		Headless:   fs.Bool("headless", false, "Record through an EGL pbuffer instead of a hidden window (Linux)"),
		Duration:   fs.Float64("duration", 10.0, "Duration to record in seconds"),
		FPS:        fs.Int("fps", 60, "Frames per second for recording"),
		OutputFile: fs.String("output", "output.mp4", "Output file name for recording"),
		Codec:      fs.String("codec", "h264", "Video codec for recording (h264 or hevc)"),
		FFMPEGPath: fs.String("ffmpeg", "", "Path to ffmpeg executable"),
	}
}

// Frames is the number of frames a recording of Duration at FPS holds.
func (o *FilterOptions) Frames() int {
	return int(*o.Duration * float64(*o.FPS))
}
