package geometry

import (
	"fmt"
	"math"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// CameraKind selects the projection used to generate primary rays
type CameraKind int

const (
	Orthographic CameraKind = iota
	Perspective
)

// String returns the flag spelling of the kind
func (k CameraKind) String() string {
	switch k {
	case Orthographic:
		return "orthographic"
	case Perspective:
		return "perspective"
	default:
		return fmt.Sprintf("CameraKind(%d)", int(k))
	}
}

// Toggle returns the other camera kind
func (k CameraKind) Toggle() CameraKind {
	if k == Perspective {
		return Orthographic
	}
	return Perspective
}

// ParseCameraKind accepts "orthographic"/"ortho"/"0" and "perspective"/"persp"/"1"
func ParseCameraKind(s string) (CameraKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "orthographic", "ortho", "0":
		return Orthographic, nil
	case "perspective", "persp", "1":
		return Perspective, nil
	default:
		return Orthographic, fmt.Errorf("unknown camera kind %q", s)
	}
}

// Camera maps pixels to world-space primary rays
type Camera interface {
	// PixelU maps a column index to the horizontal image-plane coordinate
	PixelU(col int) float64
	// PixelV maps a row index to the vertical image-plane coordinate
	PixelV(row int) float64
	RayOrigin(u, v float64) core.Vec3
	RayDirection(u, v float64) core.Vec3
	// GetRay returns the primary ray through the center of pixel (row, col)
	GetRay(row, col int) core.Ray
	Kind() CameraKind
	Basis() (u, v, w core.Vec3)
}

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	ViewPoint   core.Vec3 // Eye position
	LookAt      core.Vec3 // Point the camera looks at
	Up          core.Vec3 // Approximate up direction
	Width       int       // Image width in pixels
	Height      int       // Image height in pixels
	PlaneWidth  float64   // Image plane extent along u, world units
	PlaneHeight float64   // Image plane extent along v, world units
	FocalLength float64   // Eye to image plane distance (perspective only)
	VFov        float64   // Vertical field of view in degrees, used when FocalLength is 0
}

// DefaultCameraConfig returns a camera at the origin looking down +z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		ViewPoint:   core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, 1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       512,
		Height:      512,
		PlaneWidth:  2,
		PlaneHeight: 2,
		FocalLength: 1,
	}
}

// MergeCameraConfig returns base with every non-zero field of override applied.
// A VFov override without a FocalLength clears the base focal length so the
// field of view takes effect.
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	zero := core.Vec3{}
	if override.ViewPoint != zero {
		result.ViewPoint = override.ViewPoint
	}
	if override.LookAt != zero {
		result.LookAt = override.LookAt
	}
	if override.Up != zero {
		result.Up = override.Up
	}
	if override.Width > 0 {
		result.Width = override.Width
	}
	if override.Height > 0 {
		result.Height = override.Height
	}
	if override.PlaneWidth > 0 {
		result.PlaneWidth = override.PlaneWidth
	}
	if override.PlaneHeight > 0 {
		result.PlaneHeight = override.PlaneHeight
	}
	if override.FocalLength > 0 {
		result.FocalLength = override.FocalLength
	}
	if override.VFov > 0 {
		result.VFov = override.VFov
		if override.FocalLength <= 0 {
			result.FocalLength = 0
		}
	}
	return result
}

// camera holds the state shared by both projections
type camera struct {
	viewPoint   core.Vec3
	u, v, w     core.Vec3 // Orthonormal basis: right, up, backwards
	width       int
	height      int
	planeWidth  float64
	planeHeight float64
}

func newCamera(config CameraConfig) camera {
	config = MergeCameraConfig(DefaultCameraConfig(), config)

	viewDir := config.LookAt.Subtract(config.ViewPoint).Normalize()
	if viewDir.LengthSquared() == 0 {
		viewDir = core.NewVec3(0, 0, 1)
	}
	w := viewDir.Negate()
	u := config.Up.Cross(w).Normalize()
	if u.LengthSquared() == 0 {
		// Up is parallel to the view direction, pick any other axis
		fallback := core.NewVec3(0, 1, 0)
		if math.Abs(w.Y) > 0.9 {
			fallback = core.NewVec3(0, 0, 1)
		}
		u = fallback.Cross(w).Normalize()
	}
	v := w.Cross(u)

	return camera{
		viewPoint:   config.ViewPoint,
		u:           u,
		v:           v,
		w:           w,
		width:       config.Width,
		height:      config.Height,
		planeWidth:  config.PlaneWidth,
		planeHeight: config.PlaneHeight,
	}
}

// PixelU maps column 0 to the left edge and width-1 to the right edge (pixel centers)
func (c *camera) PixelU(col int) float64 {
	return -c.planeWidth/2 + c.planeWidth*(float64(col)+0.5)/float64(c.width)
}

// PixelV maps row 0 to the top edge and height-1 to the bottom edge (pixel centers)
func (c *camera) PixelV(row int) float64 {
	return c.planeHeight/2 - c.planeHeight*(float64(row)+0.5)/float64(c.height)
}

// Basis returns the camera's right, up and backwards axes
func (c *camera) Basis() (u, v, w core.Vec3) {
	return c.u, c.v, c.w
}

// OrthographicCamera shoots parallel rays from every point of the image plane
type OrthographicCamera struct {
	camera
}

// NewOrthographicCamera creates an orthographic camera
func NewOrthographicCamera(config CameraConfig) *OrthographicCamera {
	return &OrthographicCamera{camera: newCamera(config)}
}

// RayOrigin returns the image plane point for (u, v)
func (c *OrthographicCamera) RayOrigin(u, v float64) core.Vec3 {
	return c.viewPoint.Add(c.u.Multiply(u)).Add(c.v.Multiply(v))
}

// RayDirection is the view direction for every pixel
func (c *OrthographicCamera) RayDirection(u, v float64) core.Vec3 {
	return c.w.Negate()
}

// GetRay returns the primary ray for pixel (row, col)
func (c *OrthographicCamera) GetRay(row, col int) core.Ray {
	u, v := c.PixelU(col), c.PixelV(row)
	return core.NewRay(c.RayOrigin(u, v), c.RayDirection(u, v))
}

// Kind returns Orthographic
func (c *OrthographicCamera) Kind() CameraKind {
	return Orthographic
}

// PerspectiveCamera shoots every ray from the eye through the image plane
type PerspectiveCamera struct {
	camera
	focalLength float64
}

// NewPerspectiveCamera creates a perspective camera. When FocalLength is zero
// and VFov is set, the focal length is derived from the field of view.
func NewPerspectiveCamera(config CameraConfig) *PerspectiveCamera {
	focalLength := config.FocalLength
	base := newCamera(config)
	if focalLength <= 0 {
		focalLength = DefaultCameraConfig().FocalLength
		if config.VFov > 0 && config.VFov < 180 {
			theta := config.VFov * math.Pi / 180
			focalLength = (base.planeHeight / 2) / math.Tan(theta/2)
		}
	}
	return &PerspectiveCamera{camera: base, focalLength: focalLength}
}

// FocalLength returns the eye to image plane distance
func (c *PerspectiveCamera) FocalLength() float64 {
	return c.focalLength
}

// RayOrigin is the eye for every pixel
func (c *PerspectiveCamera) RayOrigin(u, v float64) core.Vec3 {
	return c.viewPoint
}

// RayDirection returns normalize(-d*w + u*U + v*V)
func (c *PerspectiveCamera) RayDirection(u, v float64) core.Vec3 {
	return c.w.Multiply(-c.focalLength).
		Add(c.u.Multiply(u)).
		Add(c.v.Multiply(v)).
		Normalize()
}

// GetRay returns the primary ray for pixel (row, col)
func (c *PerspectiveCamera) GetRay(row, col int) core.Ray {
	u, v := c.PixelU(col), c.PixelV(row)
	return core.NewRay(c.RayOrigin(u, v), c.RayDirection(u, v))
}

// Kind returns Perspective
func (c *PerspectiveCamera) Kind() CameraKind {
	return Perspective
}

// NewCamera builds the camera variant for kind
func NewCamera(kind CameraKind, config CameraConfig) Camera {
	if kind == Perspective {
		return NewPerspectiveCamera(config)
	}
	return NewOrthographicCamera(config)
}
