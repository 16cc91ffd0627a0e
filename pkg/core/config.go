package core

// RenderConfig contains rendering configuration
type RenderConfig struct {
	Width             int     // Image width in pixels
	Height            int     // Image height in pixels
	MaxDepth          int     // Maximum number of mirror reflections per primary ray
	ReflectionWeight  float64 // k_s applied to the color returned by a reflection ray
	ReflectionEpsilon float64 // Offset of reflection ray origins along the reflected direction
	Shadows           bool    // Cast shadow rays toward the light
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Width:             512,
		Height:            512,
		MaxDepth:          3,
		ReflectionWeight:  0.2,
		ReflectionEpsilon: 1e-3,
		Shadows:           false,
	}
}
