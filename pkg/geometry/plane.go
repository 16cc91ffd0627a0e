package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// parallelEpsilon is the |dot(d, n)| below which a ray counts as parallel
const parallelEpsilon = 1e-8

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point    core.Vec3         // A point on the plane
	Normal   core.Vec3         // Unit normal
	Material material.Material // Material of the plane
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3, mat material.Material) *Plane {
	return &Plane{
		Point:    point,
		Normal:   normal.Normalize(),
		Material: mat,
	}
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	// Parallel rays (and degenerate normals) never hit
	if math.Abs(denominator) < parallelEpsilon {
		return NoHit(), false
	}

	// t = (point_on_plane - ray_origin) · normal / (ray_direction · normal)
	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if !inOpenInterval(t, tMin, tMax) {
		return NoHit(), false
	}

	hit := HitRecord{
		T:     t,
		Point: ray.At(t),
		Shape: p,
	}
	hit.SetFaceNormal(ray, p.Normal)

	return hit, true
}

// GetMaterial returns the plane's material
func (p *Plane) GetMaterial() material.Material {
	return p.Material
}

// Kind names the shape variant
func (p *Plane) Kind() string {
	return "plane"
}
