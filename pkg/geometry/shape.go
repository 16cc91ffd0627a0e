package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	T         float64   // Parameter t along the ray, +Inf when nothing was hit
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal at intersection, facing the incoming ray
	FrontFace bool      // Whether ray hit the front face
	Shape     Shape     // Shape that was hit; not owned
}

// NoHit returns the sentinel record for a ray that hit nothing
func NoHit() HitRecord {
	return HitRecord{T: math.Inf(1)}
}

// IsHit reports whether the record describes an actual intersection
func (h HitRecord) IsHit() bool {
	return !math.IsInf(h.T, 1) && h.Shape != nil
}

// Material returns the material of the hit shape
func (h HitRecord) Material() material.Material {
	if h.Shape == nil {
		return material.Material{}
	}
	return h.Shape.GetMaterial()
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Multiply(-1)
	}
}

// inOpenInterval reports whether t is a usable hit parameter in (tMin, tMax)
func inOpenInterval(t, tMin, tMax float64) bool {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return false
	}
	return t > tMin && t < tMax
}
