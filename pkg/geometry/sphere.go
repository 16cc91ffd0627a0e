package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	if a == 0 || s.Radius == 0 {
		return NoHit(), false
	}
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 || math.IsNaN(discriminant) {
		return NoHit(), false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if !inOpenInterval(root, tMin, tMax) {
		// Try the farther intersection point
		root = (-halfB + sqrtD) / a
		if !inOpenInterval(root, tMin, tMax) {
			return NoHit(), false
		}
	}

	hit := HitRecord{
		T:     root,
		Point: ray.At(root),
		Shape: s,
	}

	// Outward normal (from center to hit point)
	outwardNormal := hit.Point.Subtract(s.Center).Multiply(1.0 / s.Radius)
	hit.SetFaceNormal(ray, outwardNormal)

	return hit, true
}

// GetMaterial returns the sphere's material
func (s *Sphere) GetMaterial() material.Material {
	return s.Material
}

// Kind names the shape variant
func (s *Sphere) Kind() string {
	return "sphere"
}
