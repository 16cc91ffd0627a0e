package display

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
)

// RGBToRGBA expands a row-major RGB8 buffer to opaque RGBA8
func RGBToRGBA(rgb []byte, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 || len(rgb) != width*height*3 {
		return nil, fmt.Errorf("rgb buffer of %d bytes does not match %dx%d", len(rgb), width, height)
	}

	rgba := make([]byte, width*height*4)
	for i, j := 0, 0; i < len(rgb); i, j = i+3, j+4 {
		rgba[j] = rgb[i]
		rgba[j+1] = rgb[i+1]
		rgba[j+2] = rgb[i+2]
		rgba[j+3] = 0xFF
	}
	return rgba, nil
}

// SavePNG writes img to path, creating the parent directory if needed
func SavePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Annotate returns a copy of img with label drawn in the top-left corner
func Annotate(img image.Image, label string) image.Image {
	dc := gg.NewContextForImage(img)
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(label, 4, 4, 0, 1)
	return dc.Image()
}
