package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Camera setups shared by the built-in scenes
var (
	// Looking down +z from the origin
	frontOrthoCamera = geometry.CameraConfig{
		ViewPoint:   core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, 1),
		Up:          core.NewVec3(0, 1, 0),
		PlaneHeight: 12,
	}
	// Raised slightly and looking down at the tetrahedron
	raisedPerspCamera = geometry.CameraConfig{
		ViewPoint:   core.NewVec3(0, 2, 0),
		LookAt:      core.NewVec3(0.7, 0.7, 3),
		Up:          core.NewVec3(0, 1, 0),
		PlaneHeight: 10,
		FocalLength: 10,
	}
)

// NewDefaultScene creates a mirror floor with a red sphere and a teal tetrahedron,
// lit from straight above
func NewDefaultScene(kind geometry.CameraKind, cameraOverrides ...geometry.CameraConfig) *Scene {
	ortho, persp := frontOrthoCamera, raisedPerspCamera
	if len(cameraOverrides) > 0 {
		ortho = geometry.MergeCameraConfig(ortho, cameraOverrides[0])
		persp = geometry.MergeCameraConfig(persp, cameraOverrides[0])
	}

	s := newScene("default", kind, ortho, persp)
	s.Light = lights.NewDirectionalLight(1, core.NewVec3(0, 10, 0))

	// Create materials
	mirrorFloor := material.NewMaterial(core.NewVec3(128, 128, 128), 0.3, 0.3, 0.4, true)
	red := material.NewMaterial(core.NewVec3(255, 0, 0), 0.2, 0.4, 0.4, false)
	tealGloss := material.NewMaterial(core.NewVec3(0, 128, 128), 0.4, 0.0, 0.6, false)
	tealMatte := material.NewMaterial(core.NewVec3(0, 128, 128), 0.4, 0.3, 0.3, false)

	s.AddShapes(geometry.NewSphere(core.NewVec3(2, 2, 10), 2, red))
	s.AddTetrahedron(
		core.NewVec3(4, 0, 3),
		core.NewVec3(2, 0, 5),
		core.NewVec3(2, 0, 3),
		core.NewVec3(3, 1, 4),
		tealGloss, tealMatte,
	)
	s.AddShapes(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), mirrorFloor))

	return s
}

// NewSphereScene creates a single red sphere in front of the camera, lit from above
func NewSphereScene(kind geometry.CameraKind, cameraOverrides ...geometry.CameraConfig) *Scene {
	ortho, persp := closeUpCameras(cameraOverrides...)

	s := newScene("sphere", kind, ortho, persp)
	s.Light = lights.NewDirectionalLight(1, core.NewVec3(0, 1, 0))

	red := material.NewMaterial(core.NewVec3(255, 0, 0), 0.2, 0.4, 0.4, false)
	s.AddShapes(geometry.NewSphere(core.NewVec3(0, 0, 5), 1, red))

	return s
}

// NewMirrorScene creates a mirror sphere with a mirror wall behind the camera,
// so reflections bounce between the two until the depth limit
func NewMirrorScene(kind geometry.CameraKind, cameraOverrides ...geometry.CameraConfig) *Scene {
	ortho, persp := closeUpCameras(cameraOverrides...)

	s := newScene("mirror", kind, ortho, persp)
	s.Light = lights.NewDirectionalLight(1, core.NewVec3(0, 1, 0))

	redMirror := material.NewMaterial(core.NewVec3(255, 0, 0), 0.2, 0.4, 0.4, true)
	grayMirror := material.NewMaterial(core.NewVec3(128, 128, 128), 0.3, 0.3, 0.4, true)
	s.AddShapes(
		geometry.NewSphere(core.NewVec3(0, 0, 5), 1, redMirror),
		geometry.NewPlane(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1), grayMirror),
	)

	return s
}

// NewEmptyScene creates a scene with a light and no shapes; it renders black
func NewEmptyScene(kind geometry.CameraKind, cameraOverrides ...geometry.CameraConfig) *Scene {
	ortho, persp := closeUpCameras(cameraOverrides...)

	s := newScene("empty", kind, ortho, persp)
	s.Light = lights.NewDirectionalLight(1, core.NewVec3(0, 1, 0))
	return s
}

// closeUpCameras frames the unit sphere at (0,0,5) from the origin
func closeUpCameras(cameraOverrides ...geometry.CameraConfig) (ortho, persp geometry.CameraConfig) {
	ortho = geometry.CameraConfig{
		ViewPoint:   core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, 1),
		Up:          core.NewVec3(0, 1, 0),
		PlaneHeight: 4,
	}
	persp = ortho
	persp.PlaneHeight = 2
	persp.FocalLength = 2

	if len(cameraOverrides) > 0 {
		ortho = geometry.MergeCameraConfig(ortho, cameraOverrides[0])
		persp = geometry.MergeCameraConfig(persp, cameraOverrides[0])
	}
	return ortho, persp
}
