package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3         // The three vertices
	Material   material.Material // Material of the triangle
	normal     core.Vec3         // Cached normal vector
}

// NewTriangle creates a new triangle from three vertices.
// The normal follows the winding v0 -> v1 -> v2.
func NewTriangle(v0, v1, v2 core.Vec3, mat material.Material) *Triangle {
	t := &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: mat,
	}
	t.computeNormal()
	return t
}

// computeNormal calculates and caches the triangle's normal vector
func (t *Triangle) computeNormal() {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)
	t.normal = edge1.Cross(edge2).Normalize()
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	const epsilon = 1e-8

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Ray lies in the triangle's plane, or the triangle is degenerate
	if a > -epsilon && a < epsilon {
		return NoHit(), false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return NoHit(), false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return NoHit(), false
	}

	tParam := f * edge2.Dot(q)
	if !inOpenInterval(tParam, tMin, tMax) {
		return NoHit(), false
	}

	hit := HitRecord{
		T:     tParam,
		Point: ray.At(tParam),
		Shape: t,
	}
	hit.SetFaceNormal(ray, t.normal)

	return hit, true
}

// GetNormal returns the triangle's winding normal
func (t *Triangle) GetNormal() core.Vec3 {
	return t.normal
}

// GetMaterial returns the triangle's material
func (t *Triangle) GetMaterial() material.Material {
	return t.Material
}

// Kind names the shape variant
func (t *Triangle) Kind() string {
	return "triangle"
}
