package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"runtime"
	"strings"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/gofiltergroup/encoder"
	"github.com/richinsley/gofiltergroup/filter"
	"github.com/richinsley/gofiltergroup/filters"
	"github.com/richinsley/gofiltergroup/glfwcontext"
	"github.com/richinsley/gofiltergroup/graphics"
	"github.com/richinsley/gofiltergroup/graphics/glcore"
	"github.com/richinsley/gofiltergroup/headless"
	"github.com/richinsley/gofiltergroup/inputs"
	"github.com/richinsley/gofiltergroup/options"
	"github.com/richinsley/gofiltergroup/pipeline"
	"github.com/richinsley/gofiltergroup/renderer"
)

var videoExts = map[string]bool{".mp4": true, ".mov": true, ".mkv": true, ".webm": true, ".avi": true}

func init() {
	runtime.LockOSThread()
}

// buildFilter loads the pipeline file, or returns threshold edge detection
// when none is configured.
func buildFilter(opts *options.FilterOptions) (filter.Filter, error) {
	if *opts.Config == "" {
		e := filters.NewThresholdEdgeDetection()
		e.SetThreshold(float32(*opts.Threshold))
		e.SetLineSize(float32(*opts.LineSize))
		return e, nil
	}
	cfg, err := pipeline.Load(*opts.Config)
	if err != nil {
		return nil, err
	}
	return cfg.Build()
}

func openSource(gl graphics.GL, opts *options.FilterOptions) (inputs.Source, error) {
	path := *opts.Input
	if videoExts[strings.ToLower(filepath.Ext(path))] {
		return inputs.NewVideoSource(gl, path, *opts.FFMPEGPath, *opts.Loop)
	}
	img, err := inputs.LoadImage(path, *opts.Width, *opts.Height)
	if err != nil {
		return nil, err
	}
	return inputs.NewImageSource(gl, img, false)
}

func run(opts *options.FilterOptions) error {
	var ctx graphics.Context
	var window *glfwcontext.Context
	if *opts.Record && *opts.Headless {
		c, err := headless.New(*opts.Width, *opts.Height)
		if err != nil {
			return fmt.Errorf("failed to create headless context: %w", err)
		}
		ctx = c
	} else {
		if err := glfwcontext.InitGraphics(); err != nil {
			return fmt.Errorf("failed to initialize glfw: %w", err)
		}
		defer glfwcontext.TerminateGraphics()

		// If recording, the window is hidden.
		c, err := glfwcontext.New(opts, !*opts.Record)
		if err != nil {
			return fmt.Errorf("failed to create window: %w", err)
		}
		ctx, window = c, c
	}

	gl, err := glcore.New(ctx)
	if err != nil {
		ctx.Shutdown()
		return err
	}

	source, err := openSource(gl, opts)
	if err != nil {
		ctx.Shutdown()
		return fmt.Errorf("failed to open input: %w", err)
	}
	f, err := buildFilter(opts)
	if err != nil {
		ctx.Shutdown()
		source.Destroy()
		return fmt.Errorf("failed to build filter: %w", err)
	}

	r := renderer.New(gl, ctx, source)
	defer r.Shutdown()
	r.SetFilter(f)

	reload := func() {
		f, err := buildFilter(opts)
		if err != nil {
			log.Printf("Reload failed: %v", err)
			return
		}
		r.SetFilter(f)
	}
	if window != nil {
		window.RegisterKeyCallback(glfw.KeyR, reload)
		window.RegisterKeyCallback(glfw.KeyB, r.ToggleBypass)
	}

	if *opts.Watch && *opts.Config != "" {
		w, err := pipeline.Watch(*opts.Config, func(cfg *pipeline.Config) {
			g, err := cfg.Build()
			if err != nil {
				log.Printf("Reload failed: %v", err)
				return
			}
			r.SetFilter(g)
		})
		if err != nil {
			return err
		}
		defer w.Close()
	}

	if !*opts.Record {
		log.Println("Starting interactive render loop...")
		r.Run()
		return nil
	}

	width, height := ctx.GetFramebufferSize()
	rec, err := encoder.NewRecorder(*opts.OutputFile, encoder.Options{
		Width:      width,
		Height:     height,
		FPS:        *opts.FPS,
		Codec:      *opts.Codec,
		Bitrate:    "25M",
		FFMPEGPath: *opts.FFMPEGPath,
	})
	if err != nil {
		return err
	}
	log.Println("Starting offscreen render loop...")
	if err := r.Record(rec, opts.Frames()); err != nil {
		rec.Close()
		return err
	}
	if err := rec.Close(); err != nil {
		return err
	}
	log.Printf("Successfully rendered to %s", *opts.OutputFile)
	return nil
}

func main() {
	opts := options.Register(flag.CommandLine)
	flag.Parse()

	if *opts.Help {
		fmt.Println("GPU filter group viewer/recorder")
		fmt.Println("Keys: Esc quits, R reloads the pipeline, B toggles bypass")
		flag.PrintDefaults()
		return
	}
	if *opts.Input == "" {
		log.Fatal("-input is required")
	}

	if err := run(opts); err != nil {
		log.Fatalf("%v", err)
	}
}
