package display

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// swapKeys swap between the orthographic and perspective cameras
var swapKeys = []ebiten.Key{ebiten.KeyE, ebiten.KeyC}

// RenderFunc renders the scene through the camera of the given kind and
// returns a row-major RGB8 buffer of the viewer's size
type RenderFunc func(kind geometry.CameraKind) ([]byte, error)

// Viewer shows a rendered image in a window. Escape closes it and E (or C) swaps
// between the orthographic and perspective cameras, re-rendering the scene.
type Viewer struct {
	width  int
	height int
	kind   geometry.CameraKind
	render RenderFunc
	logger core.Logger

	pixels []byte // RGBA8, uploaded on the next Draw when dirty
	dirty  bool
	frame  *ebiten.Image
}

// NewViewer renders the first frame with the given camera and returns a viewer for it
func NewViewer(width, height int, kind geometry.CameraKind, render RenderFunc) (*Viewer, error) {
	v := &Viewer{
		width:  width,
		height: height,
		render: render,
		logger: core.NopLogger{},
	}
	if err := v.show(kind); err != nil {
		return nil, err
	}
	return v, nil
}

// SetLogger sets the logger used for camera swap messages
func (v *Viewer) SetLogger(logger core.Logger) {
	if logger == nil {
		logger = core.NopLogger{}
	}
	v.logger = logger
}

// CameraKind returns the camera of the frame on screen
func (v *Viewer) CameraKind() geometry.CameraKind {
	return v.kind
}

// Pixels returns the RGBA8 pixels of the frame on screen
func (v *Viewer) Pixels() []byte {
	return v.pixels
}

// SwapCamera re-renders with the other camera. On error the current frame stays.
func (v *Viewer) SwapCamera() error {
	next := v.kind.Toggle()
	v.logger.Printf("Switching to %s camera\n", next)
	return v.show(next)
}

func (v *Viewer) show(kind geometry.CameraKind) error {
	buf, err := v.render(kind)
	if err != nil {
		return fmt.Errorf("render %s view: %w", kind, err)
	}
	pixels, err := RGBToRGBA(buf, v.width, v.height)
	if err != nil {
		return err
	}
	v.kind = kind
	v.pixels = pixels
	v.dirty = true
	return nil
}

// Update handles keyboard input once per tick
func (v *Viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for _, key := range swapKeys {
		if inpututil.IsKeyJustPressed(key) {
			if err := v.SwapCamera(); err != nil {
				v.logger.Printf("Camera swap failed: %v\n", err)
			}
			break
		}
	}
	return nil
}

// isSwapKey reports whether key swaps the camera
func isSwapKey(key ebiten.Key) bool {
	for _, k := range swapKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Draw copies the current frame to the screen
func (v *Viewer) Draw(screen *ebiten.Image) {
	if v.frame == nil {
		v.frame = ebiten.NewImage(v.width, v.height)
	}
	if v.dirty {
		v.frame.WritePixels(v.pixels)
		v.dirty = false
	}
	screen.DrawImage(v.frame, nil)
}

// Layout keeps the logical screen at the image size; the window scales it
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.width, v.height
}

// Run opens the window and blocks until it is closed
func (v *Viewer) Run(title string) error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(v.width, v.height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(30)
	return ebiten.RunGame(v)
}
