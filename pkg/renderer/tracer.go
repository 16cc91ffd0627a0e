package renderer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// ShadeResult is the outcome of shading one ray
type ShadeResult struct {
	Color       core.Vec3 // Accumulated, unclamped color
	T           float64   // Nearest hit parameter, +Inf on a miss
	Hit         bool      // Whether the ray hit anything
	Reflections int       // Recursive reflection rays traced below this call
	Depth       int       // Deepest recursion level reached
}

// Tracer shades rays against a fixed list of shapes and a single light.
// It holds no mutable state and is safe for concurrent use.
type Tracer struct {
	shapes []geometry.Shape
	light  lights.Light
	config core.RenderConfig
}

// NewTracer creates a new tracer
func NewTracer(shapes []geometry.Shape, light lights.Light, config core.RenderConfig) *Tracer {
	return &Tracer{
		shapes: shapes,
		light:  light,
		config: config,
	}
}

// ClosestHit tests the ray against every shape and returns the nearest hit.
// Ties keep the shape that comes first.
func (tr *Tracer) ClosestHit(ray core.Ray, tMin, tMax float64) (geometry.HitRecord, bool) {
	closest := geometry.NoHit()
	closestSoFar := tMax
	hitAnything := false

	for _, shape := range tr.shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit && hit.T < closestSoFar {
			hitAnything = true
			closestSoFar = hit.T
			closest = hit
		}
	}

	return closest, hitAnything
}

// Shade returns the color seen along ray. depth is the number of reflections
// already taken; recursion stops once it reaches MaxDepth.
func (tr *Tracer) Shade(ray core.Ray, depth int) ShadeResult {
	hit, isHit := tr.ClosestHit(ray, 0, math.Inf(1))
	if !isHit {
		return ShadeResult{T: math.Inf(1), Depth: depth}
	}

	result := ShadeResult{
		Color: tr.localColor(ray, hit),
		T:     hit.T,
		Hit:   true,
		Depth: depth,
	}

	if !hit.Material().Mirror || depth >= tr.config.MaxDepth {
		return result
	}

	reflected := core.Reflect(ray.Direction.Normalize(), hit.Normal)
	origin := hit.Point.Add(reflected.Multiply(tr.config.ReflectionEpsilon))
	child := tr.Shade(core.NewRay(origin, reflected), depth+1)

	result.Color = result.Color.Add(child.Color.Multiply(tr.config.ReflectionWeight))
	result.Reflections = 1 + child.Reflections
	result.Depth = child.Depth

	return result
}

// localColor shades the hit with the scene light, honoring shadows when enabled
func (tr *Tracer) localColor(ray core.Ray, hit geometry.HitRecord) core.Vec3 {
	if tr.light == nil {
		return core.Vec3{}
	}
	if tr.config.Shadows && tr.inShadow(hit) {
		return tr.light.Ambient(hit)
	}
	return tr.light.Illuminate(ray, hit)
}

// inShadow reports whether anything blocks the path from the hit to the light
func (tr *Tracer) inShadow(hit geometry.HitRecord) bool {
	_, distance := tr.light.DirectionTo(hit.Point)
	_, blocked := tr.ClosestHit(tr.light.ShadowRay(hit, tr.config.ReflectionEpsilon), 0, distance)
	return blocked
}

// ColorToRGB clamps each channel to [0, 255] and truncates it to a byte.
// NaN channels become 0.
func ColorToRGB(c core.Vec3) [3]uint8 {
	return [3]uint8{channelToByte(c.X), channelToByte(c.Y), channelToByte(c.Z)}
}

func channelToByte(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
