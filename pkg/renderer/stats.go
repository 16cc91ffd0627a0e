package renderer

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int // Total number of pixels rendered
	HitPixels       int // Pixels whose primary ray hit a shape
	ReflectionRays  int // Recursive reflection rays traced
	MaxDepthReached int // Deepest reflection level reached by any pixel
}

// AddPixel records the shading result of one pixel
func (s *RenderStats) AddPixel(result ShadeResult) {
	s.TotalPixels++
	if result.Hit {
		s.HitPixels++
	}
	s.ReflectionRays += result.Reflections
	s.MaxDepthReached = max(s.MaxDepthReached, result.Depth)
}

// Merge folds another set of statistics into this one
func (s *RenderStats) Merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.HitPixels += other.HitPixels
	s.ReflectionRays += other.ReflectionRays
	s.MaxDepthReached = max(s.MaxDepthReached, other.MaxDepthReached)
}

// Coverage returns the fraction of pixels that hit something
func (s RenderStats) Coverage() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.HitPixels) / float64(s.TotalPixels)
}
