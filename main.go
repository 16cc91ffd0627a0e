package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/display"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Config holds the command line options
type Config struct {
	Scene     string
	Camera    string
	Width     int
	Height    int
	MaxDepth  int
	Reflect   float64
	Shadows   bool
	Workers   int
	Window    bool
	OutputDir string
	Annotate  bool
	Help      bool
}

func parseFlags(args []string, output io.Writer) (Config, *flag.FlagSet, error) {
	defaults := core.DefaultRenderConfig()
	var cfg Config

	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.Scene, "scene", "default", "Scene: 'default', 'sphere', 'mirror' or 'empty'")
	fs.StringVar(&cfg.Camera, "camera", "orthographic", "Camera: 'orthographic' (0) or 'perspective' (1)")
	fs.IntVar(&cfg.Width, "width", defaults.Width, "Image width in pixels")
	fs.IntVar(&cfg.Height, "height", defaults.Height, "Image height in pixels")
	fs.IntVar(&cfg.MaxDepth, "depth", defaults.MaxDepth, "Maximum reflection depth")
	fs.Float64Var(&cfg.Reflect, "reflect", defaults.ReflectionWeight, "Weight of reflected color")
	fs.BoolVar(&cfg.Shadows, "shadows", defaults.Shadows, "Cast hard shadows")
	fs.IntVar(&cfg.Workers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	fs.BoolVar(&cfg.Window, "window", false, "Show the render in a window (Escape quits, E or C swaps camera)")
	fs.StringVar(&cfg.OutputDir, "output", "output", "Directory for rendered PNGs")
	fs.BoolVar(&cfg.Annotate, "annotate", false, "Label the saved PNG with the scene and camera")
	fs.BoolVar(&cfg.Help, "help", false, "Show help information")

	err := fs.Parse(args)
	return cfg, fs, err
}

func main() {
	cfg, fs, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil && !errors.Is(err, flag.ErrHelp) {
		os.Exit(2)
	}

	if cfg.Help || err != nil {
		showHelp(fs)
		return
	}

	if err := run(cfg); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func showHelp(fs *flag.FlagSet) {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	fs.SetOutput(os.Stdout)
	fs.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Printf("  %-8s - %s\n", info.ID, info.Description)
	}
	fmt.Println()
	fmt.Println("Output will be saved to <output>/<scene>/render_<timestamp>.png")
}

func run(cfg Config) error {
	fmt.Println("Starting Whitted Raytracer...")

	sceneObj, err := createScene(cfg)
	if err != nil {
		return err
	}
	fmt.Printf("Using %s scene with %s camera (%d shapes)\n",
		sceneObj.Name, sceneObj.CameraKind(), sceneObj.GetPrimitiveCount())

	startTime := time.Now()
	buf, stats, err := renderScene(sceneObj, cfg.Workers)
	if err != nil {
		return err
	}
	fmt.Printf("Render completed in %v\n", time.Since(startTime))
	fmt.Printf("Coverage: %.1f%% of %d pixels, %d reflection rays, max depth %d\n",
		100*stats.Coverage(), stats.TotalPixels, stats.ReflectionRays, stats.MaxDepthReached)

	filename, err := saveRender(cfg, sceneObj, buf)
	if err != nil {
		return err
	}
	fmt.Printf("Render saved as %s\n", filename)

	if !cfg.Window {
		return nil
	}

	viewer, err := display.NewViewer(sceneObj.Config.Width, sceneObj.Config.Height, sceneObj.CameraKind(),
		func(kind geometry.CameraKind) ([]byte, error) {
			if kind == sceneObj.CameraKind() {
				return buf, nil
			}
			sceneObj.UseCamera(kind)
			next, _, err := renderScene(sceneObj, cfg.Workers)
			if err != nil {
				return nil, err
			}
			buf = next
			return buf, nil
		})
	if err != nil {
		return err
	}
	viewer.SetLogger(log.Default())
	fmt.Println("Press E or C to swap cameras, Escape to quit")
	return viewer.Run("Whitted Raytracer - " + sceneObj.Name)
}

// createScene builds the named scene and applies the render options
func createScene(cfg Config) (*scene.Scene, error) {
	kind, err := scene.ParseCamera(cfg.Camera)
	if err != nil {
		return nil, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", renderer.ErrInvalidDimensions, cfg.Width, cfg.Height)
	}

	s, err := scene.NewScene(cfg.Scene, kind)
	if err != nil {
		return nil, err
	}

	s.Config.MaxDepth = max(0, cfg.MaxDepth)
	s.Config.ReflectionWeight = cfg.Reflect
	s.Config.Shadows = cfg.Shadows
	s.SetSize(cfg.Width, cfg.Height)
	return s, nil
}

// renderScene renders the scene's active camera in parallel
func renderScene(s *scene.Scene, workers int) ([]byte, renderer.RenderStats, error) {
	rt := renderer.NewRaytracer(s)
	rt.SetLogger(log.Default())

	buf := make([]byte, rt.BufferSize())
	pool := renderer.NewWorkerPool(rt, renderer.DefaultTileSize, workers)
	fmt.Printf("Rendering %s view with %d workers\n", s.CameraKind(), pool.GetNumWorkers())
	stats, err := pool.Render(context.Background(), buf)
	if err != nil {
		return nil, renderer.RenderStats{}, err
	}
	return buf, stats, nil
}

// createOutputDir returns the output directory for a scene
func createOutputDir(base, sceneName string) string {
	return filepath.Join(base, sceneName)
}

func saveRender(cfg Config, s *scene.Scene, buf []byte) (string, error) {
	img := renderer.BufferToImage(buf, s.Config.Width, s.Config.Height)
	outputDir := createOutputDir(cfg.OutputDir, s.Name)
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))

	var out image.Image = img
	if cfg.Annotate {
		out = display.Annotate(img, fmt.Sprintf("%s / %s", s.Name, s.CameraKind()))
	}

	if err := display.SavePNG(filename, out); err != nil {
		return "", err
	}
	return filename, nil
}
