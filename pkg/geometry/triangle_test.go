package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestTriangle_Hit(t *testing.T) {
	// Triangle in the XY plane
	v0 := core.NewVec3(0, 0, 0)
	v1 := core.NewVec3(1, 0, 0)
	v2 := core.NewVec3(0, 1, 0)
	triangle := NewTriangle(v0, v1, v2, testMaterial)

	tests := []struct {
		name      string
		ray       core.Ray
		tMin      float64
		tMax      float64
		shouldHit bool
		expectedT float64
	}{
		{
			name:      "Ray hits triangle center",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, -1), core.NewVec3(0, 0, 1)),
			tMin:      0,
			tMax:      10.0,
			shouldHit: true,
			expectedT: 1.0,
		},
		{
			name:      "Ray hits triangle edge",
			ray:       core.NewRay(core.NewVec3(0.5, 0, -1), core.NewVec3(0, 0, 1)),
			tMin:      0,
			tMax:      10.0,
			shouldHit: true,
			expectedT: 1.0,
		},
		{
			name:      "Ray hits from the other side",
			ray:       core.NewRay(core.NewVec3(0.2, 0.2, 3), core.NewVec3(0, 0, -1)),
			tMin:      0,
			tMax:      10.0,
			shouldHit: true,
			expectedT: 3.0,
		},
		{
			name:      "Ray misses triangle (u+v > 1)",
			ray:       core.NewRay(core.NewVec3(0.8, 0.8, -1), core.NewVec3(0, 0, 1)),
			tMin:      0,
			tMax:      10.0,
			shouldHit: false,
		},
		{
			name:      "Ray misses triangle (u < 0)",
			ray:       core.NewRay(core.NewVec3(-0.1, 0.5, -1), core.NewVec3(0, 0, 1)),
			tMin:      0,
			tMax:      10.0,
			shouldHit: false,
		},
		{
			name:      "Ray parallel to triangle",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, -1), core.NewVec3(1, 0, 0)),
			tMin:      0,
			tMax:      10.0,
			shouldHit: false,
		},
		{
			name:      "Hit beyond tMax",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, -5), core.NewVec3(0, 0, 1)),
			tMin:      0,
			tMax:      5.0,
			shouldHit: false,
		},
		{
			name:      "Triangle behind ray",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, 1)),
			tMin:      0,
			tMax:      10.0,
			shouldHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := triangle.Hit(tt.ray, tt.tMin, tt.tMax)

			if isHit != tt.shouldHit {
				t.Fatalf("Expected hit=%v, got hit=%v", tt.shouldHit, isHit)
			}
			if !tt.shouldHit {
				if !math.IsInf(hit.T, 1) {
					t.Errorf("Expected +Inf sentinel on miss, got %f", hit.T)
				}
				return
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			// Normal always faces the incoming ray
			if hit.Normal.Dot(tt.ray.Direction) >= 0 {
				t.Errorf("Expected normal %v to face ray direction %v", hit.Normal, tt.ray.Direction)
			}
		})
	}
}

func TestTriangle_Normal(t *testing.T) {
	// Counter-clockwise winding seen from +z gives +z normal
	triangle := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(2, 0, 0),
		core.NewVec3(0, 2, 0),
		testMaterial,
	)
	if !triangle.GetNormal().Equals(core.NewVec3(0, 0, 1), 1e-12) {
		t.Errorf("Expected normal (0,0,1), got %v", triangle.GetNormal())
	}

	reversed := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 2, 0),
		core.NewVec3(2, 0, 0),
		testMaterial,
	)
	if !reversed.GetNormal().Equals(core.NewVec3(0, 0, -1), 1e-12) {
		t.Errorf("Expected normal (0,0,-1), got %v", reversed.GetNormal())
	}
}

func TestTriangle_Degenerate(t *testing.T) {
	// Collinear vertices
	triangle := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 1, 0),
		core.NewVec3(2, 2, 0),
		testMaterial,
	)
	ray := core.NewRay(core.NewVec3(1, 1, -1), core.NewVec3(0, 0, 1))
	if hit, isHit := triangle.Hit(ray, 0, math.Inf(1)); isHit {
		t.Errorf("Expected degenerate triangle to miss, got t=%f", hit.T)
	}
}

func TestShapes_TComparable(t *testing.T) {
	// All three variants report world distance for a unit-length direction
	ray := core.NewRay(core.NewVec3(0.2, 0.2, -4), core.NewVec3(0, 0, 1))
	shapes := []Shape{
		NewSphere(core.NewVec3(0.2, 0.2, 2), 1, testMaterial),
		NewPlane(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1), testMaterial),
		NewTriangle(core.NewVec3(0, 0, 1), core.NewVec3(1, 0, 1), core.NewVec3(0, 1, 1), testMaterial),
	}
	expected := []float64{5, 5, 5}

	for i, shape := range shapes {
		hit, isHit := shape.Hit(ray, 0, math.Inf(1))
		if !isHit {
			t.Fatalf("%s: expected hit", shape.Kind())
		}
		if math.Abs(hit.T-expected[i]) > 1e-9 {
			t.Errorf("%s: expected t=%f, got %f", shape.Kind(), expected[i], hit.T)
		}
		if math.Abs(hit.Point.Z-1) > 1e-9 {
			t.Errorf("%s: expected hit at z=1, got %v", shape.Kind(), hit.Point)
		}
	}
}
