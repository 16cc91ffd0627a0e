package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

var (
	// ErrInvalidDimensions is returned when the image width or height is not positive
	ErrInvalidDimensions = errors.New("image dimensions must be positive")
	// ErrBufferSize is returned when the output buffer is not width*height*3 bytes
	ErrBufferSize = errors.New("output buffer has the wrong size")
)

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() geometry.Camera
	GetShapes() []geometry.Shape
	GetLight() lights.Light
	GetRenderConfig() core.RenderConfig
}

// Raytracer handles the rendering process
type Raytracer struct {
	scene  Scene
	width  int
	height int
	tracer *Tracer
	tiles  *TileRenderer
	logger core.Logger
}

// NewRaytracer creates a new raytracer sized from the scene's render config
func NewRaytracer(scene Scene) *Raytracer {
	config := scene.GetRenderConfig()
	tracer := NewTracer(scene.GetShapes(), scene.GetLight(), config)
	return &Raytracer{
		scene:  scene,
		width:  config.Width,
		height: config.Height,
		tracer: tracer,
		tiles:  NewTileRenderer(tracer, scene.GetCamera(), config.Width),
		logger: core.NopLogger{},
	}
}

// SetLogger sets the logger used for render progress messages
func (rt *Raytracer) SetLogger(logger core.Logger) {
	if logger == nil {
		logger = core.NopLogger{}
	}
	rt.logger = logger
}

// Width returns the image width in pixels
func (rt *Raytracer) Width() int { return rt.width }

// Height returns the image height in pixels
func (rt *Raytracer) Height() int { return rt.height }

// Tracer returns the tracer used for every pixel
func (rt *Raytracer) Tracer() *Tracer { return rt.tracer }

// BufferSize returns the number of bytes Render expects: width*height*3
func (rt *Raytracer) BufferSize() int {
	return rt.width * rt.height * 3
}

// TracePixel shades the primary ray of pixel (row, col)
func (rt *Raytracer) TracePixel(row, col int) ShadeResult {
	return rt.tiles.TracePixel(row, col)
}

// PixelColor returns the RGB bytes of pixel (row, col). It only reads the
// scene, so any number of pixels may be computed concurrently.
func (rt *Raytracer) PixelColor(row, col int) [3]uint8 {
	return ColorToRGB(rt.TracePixel(row, col).Color)
}

// validate checks dimensions and the output buffer size
func (rt *Raytracer) validate(buf []byte) error {
	if rt.width <= 0 || rt.height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rt.width, rt.height)
	}
	if len(buf) != rt.BufferSize() {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrBufferSize, len(buf), rt.BufferSize())
	}
	return nil
}

// Render writes every pixel into buf, row-major with 3 bytes (RGB) per pixel
func (rt *Raytracer) Render(buf []byte) (RenderStats, error) {
	if err := rt.validate(buf); err != nil {
		return RenderStats{}, err
	}

	rt.logger.Printf("Rendering %dx%d, %d shapes, max depth %d\n",
		rt.width, rt.height, len(rt.scene.GetShapes()), rt.scene.GetRenderConfig().MaxDepth)

	stats := rt.tiles.RenderTileBounds(image.Rect(0, 0, rt.width, rt.height), buf)

	rt.logger.Printf("Rendered %d pixels, %d hit, %d reflection rays\n",
		stats.TotalPixels, stats.HitPixels, stats.ReflectionRays)
	return stats, nil
}

// RenderImage renders into a fresh buffer and returns it as an RGBA image
func (rt *Raytracer) RenderImage() (*image.RGBA, RenderStats, error) {
	buf := make([]byte, max(0, rt.BufferSize()))
	stats, err := rt.Render(buf)
	if err != nil {
		return nil, RenderStats{}, err
	}
	return BufferToImage(buf, rt.width, rt.height), stats, nil
}

// BufferToImage converts a row-major RGB8 buffer into an opaque RGBA image
func BufferToImage(buf []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			idx := (row*width + col) * 3
			img.SetRGBA(col, row, color.RGBA{
				R: buf[idx],
				G: buf[idx+1],
				B: buf[idx+2],
				A: 255,
			})
		}
	}
	return img
}
