package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Shape interface for objects that can be hit by rays.
// The set of implementations is closed: *Sphere, *Triangle and *Plane.
type Shape interface {
	// Hit returns the nearest intersection with t strictly inside (tMin, tMax).
	// On a miss it returns NoHit() and false.
	Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool)
	GetMaterial() material.Material
	Kind() string
}
