package lights

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// DirectionalLight is a light at infinite distance; every light ray is parallel
type DirectionalLight struct {
	Intensity float64   // 0-1
	Direction core.Vec3 // Unit vector pointing from the scene toward the light
}

// NewDirectionalLight creates a directional light. direction points toward the
// light and need not be normalized; intensity is clamped to [0, 1].
func NewDirectionalLight(intensity float64, direction core.Vec3) *DirectionalLight {
	return &DirectionalLight{
		Intensity: max(0, min(1, intensity)),
		Direction: direction.Normalize(),
	}
}

// Type returns LightTypeDirectional
func (l *DirectionalLight) Type() LightType {
	return LightTypeDirectional
}

// DirectionTo returns the light direction, which is the same everywhere
func (l *DirectionalLight) DirectionTo(point core.Vec3) (core.Vec3, float64) {
	return l.Direction, math.Inf(1)
}

// Illuminate computes Phong shading at the hit:
//
//	color * intensity * (ka + kd*max(0, n·l) + ks*max(0, r·(-d))^shininess)
//
// where r = 2(n·l)n - l is the light direction mirrored about the normal.
// The specular term is zero when the light is behind the surface (n·l <= 0).
// A record without a hit yields black.
func (l *DirectionalLight) Illuminate(ray core.Ray, hit geometry.HitRecord) core.Vec3 {
	if !hit.IsHit() {
		return core.Vec3{}
	}
	mat := hit.Material()

	n := hit.Normal
	lightDir := l.Direction
	nDotL := n.Dot(lightDir)

	diffuse := max(0, nDotL)

	reflected := n.Multiply(2 * nDotL).Subtract(lightDir)
	view := ray.Direction.Normalize().Negate()
	specular := 0.0
	if nDotL > 0 {
		specular = math.Pow(max(0, reflected.Dot(view)), mat.Shininess)
	}

	weight := mat.Ambient + mat.Diffuse*diffuse + mat.Specular*specular
	return mat.Color.Multiply(weight * l.Intensity)
}

// Ambient returns color * intensity * ka
func (l *DirectionalLight) Ambient(hit geometry.HitRecord) core.Vec3 {
	if !hit.IsHit() {
		return core.Vec3{}
	}
	mat := hit.Material()
	return mat.Color.Multiply(mat.Ambient * l.Intensity)
}

// ShadowRay returns the ray from the hit toward the light, nudged off the surface
func (l *DirectionalLight) ShadowRay(hit geometry.HitRecord, epsilon float64) core.Ray {
	dir, _ := l.DirectionTo(hit.Point)
	return core.NewRay(hit.Point.Add(hit.Normal.Multiply(epsilon)), dir)
}
