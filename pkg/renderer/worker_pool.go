package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultTileSize is the edge length of the square tiles handed to workers
const DefaultTileSize = 32

// WorkerPool manages parallel tile rendering
type WorkerPool struct {
	raytracer  *Raytracer
	tileSize   int
	numWorkers int
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// numWorkers <= 0 uses one worker per CPU.
func NewWorkerPool(raytracer *Raytracer, tileSize, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	return &WorkerPool{
		raytracer:  raytracer,
		tileSize:   tileSize,
		numWorkers: numWorkers,
	}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Render renders the whole image into buf using up to numWorkers goroutines.
// Tiles cover disjoint pixels, so workers share buf without locking. The
// output is byte-identical to Raytracer.Render.
func (wp *WorkerPool) Render(ctx context.Context, buf []byte) (RenderStats, error) {
	rt := wp.raytracer
	if err := rt.validate(buf); err != nil {
		return RenderStats{}, err
	}

	tiles := NewTileGrid(rt.width, rt.height, wp.tileSize)
	rt.logger.Printf("Rendering %dx%d in %d tiles with %d workers\n",
		rt.width, rt.height, len(tiles), wp.numWorkers)

	results := make([]RenderStats, len(tiles))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(wp.numWorkers)

	for i, tile := range tiles {
		i, tile := i, tile
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = rt.tiles.RenderTileBounds(tile.Bounds, buf)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return RenderStats{}, err
	}

	var stats RenderStats
	for _, s := range results {
		stats.Merge(s)
	}

	rt.logger.Printf("Rendered %d pixels, %d hit, %d reflection rays\n",
		stats.TotalPixels, stats.HitPixels, stats.ReflectionRays)
	return stats, nil
}
