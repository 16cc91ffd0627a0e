package renderer

import (
	"image"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x = column, y = row)
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	if tileSize <= 0 {
		tileSize = max(width, height)
	}
	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{ID: tileID, Bounds: image.Rect(x0, y0, x1, y1)})
			tileID++
		}
	}

	return tiles
}

// TileRenderer writes the pixels of a tile into a shared RGB8 buffer
type TileRenderer struct {
	tracer *Tracer
	camera geometry.Camera
	width  int
}

// NewTileRenderer creates a new tile renderer for an image of the given width
func NewTileRenderer(tracer *Tracer, camera geometry.Camera, width int) *TileRenderer {
	return &TileRenderer{
		tracer: tracer,
		camera: camera,
		width:  width,
	}
}

// TracePixel shades the primary ray of pixel (row, col)
func (tr *TileRenderer) TracePixel(row, col int) ShadeResult {
	ray := tr.camera.GetRay(row, col)
	return tr.tracer.Shade(ray, 0)
}

// RenderTileBounds renders pixels within bounds into buf. Only the bytes of
// those pixels are written, so tiles with disjoint bounds may render concurrently.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, buf []byte) RenderStats {
	var stats RenderStats

	for row := bounds.Min.Y; row < bounds.Max.Y; row++ {
		for col := bounds.Min.X; col < bounds.Max.X; col++ {
			result := tr.TracePixel(row, col)
			rgb := ColorToRGB(result.Color)

			idx := (row*tr.width + col) * 3
			buf[idx] = rgb[0]
			buf[idx+1] = rgb[1]
			buf[idx+2] = rgb[2]

			stats.AddPixel(result)
		}
	}

	return stats
}
