package lights

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

type LightType string

const (
	LightTypeDirectional LightType = "directional"
)

// Light interface for sources that shade a hit point
type Light interface {
	Type() LightType

	// Illuminate returns the unclamped local color at the hit, 0-255 scale
	Illuminate(ray core.Ray, hit geometry.HitRecord) core.Vec3

	// Ambient returns only the ambient term, used for points in shadow
	Ambient(hit geometry.HitRecord) core.Vec3

	// DirectionTo returns the unit direction FROM point TO the light and the
	// distance to it (+Inf for lights at infinity)
	DirectionTo(point core.Vec3) (core.Vec3, float64)

	// ShadowRay returns the ray from the hit toward the light, offset off the surface
	ShadowRay(hit geometry.HitRecord, epsilon float64) core.Ray
}
