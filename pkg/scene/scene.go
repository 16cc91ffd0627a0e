package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name    string
	Camera  geometry.Camera
	Shapes  []geometry.Shape // Objects in the scene, in intersection order
	Light   lights.Light     // The single directional light
	Config  core.RenderConfig
	Cameras map[geometry.CameraKind]geometry.CameraConfig // Camera per projection
	kind    geometry.CameraKind
	size    [2]int // Image size the active camera was built for
}

// newScene creates an empty scene with both camera configs and the given camera active
func newScene(name string, kind geometry.CameraKind, ortho, persp geometry.CameraConfig) *Scene {
	s := &Scene{
		Name:   name,
		Shapes: make([]geometry.Shape, 0),
		Config: core.DefaultRenderConfig(),
		Cameras: map[geometry.CameraKind]geometry.CameraConfig{
			geometry.Orthographic: ortho,
			geometry.Perspective:  persp,
		},
	}
	s.UseCamera(kind)
	return s
}

// GetCamera returns the active camera. If Config.Width or Config.Height changed
// since the camera was built, it is rebuilt so pixels map onto the new size.
func (s *Scene) GetCamera() geometry.Camera {
	if s.Cameras != nil && s.size != [2]int{s.Config.Width, s.Config.Height} {
		s.UseCamera(s.kind)
	}
	return s.Camera
}

// GetShapes returns the scene's shapes
func (s *Scene) GetShapes() []geometry.Shape { return s.Shapes }

// GetLight returns the scene's light
func (s *Scene) GetLight() lights.Light { return s.Light }

// GetRenderConfig returns the render settings
func (s *Scene) GetRenderConfig() core.RenderConfig { return s.Config }

// CameraKind returns the projection of the active camera
func (s *Scene) CameraKind() geometry.CameraKind { return s.kind }

// UseCamera makes the camera of the given kind active. The image plane keeps
// its configured height and its width follows the image aspect ratio.
func (s *Scene) UseCamera(kind geometry.CameraKind) {
	s.kind = kind
	s.Camera = geometry.NewCamera(kind, s.cameraConfig(kind))
	s.size = [2]int{s.Config.Width, s.Config.Height}
}

// ToggleCamera swaps between the orthographic and perspective cameras
func (s *Scene) ToggleCamera() geometry.CameraKind {
	s.UseCamera(s.kind.Toggle())
	return s.kind
}

// SetSize changes the image dimensions and rebuilds the active camera.
// Assigning Config.Width and Config.Height directly has the same effect on the next GetCamera.
func (s *Scene) SetSize(width, height int) {
	s.Config.Width = width
	s.Config.Height = height
	s.UseCamera(s.kind)
}

func (s *Scene) cameraConfig(kind geometry.CameraKind) geometry.CameraConfig {
	config, ok := s.Cameras[kind]
	if !ok {
		config = geometry.DefaultCameraConfig()
	}
	config.Width = s.Config.Width
	config.Height = s.Config.Height
	if config.PlaneHeight > 0 && s.Config.Width > 0 && s.Config.Height > 0 {
		config.PlaneWidth = config.PlaneHeight * float64(s.Config.Width) / float64(s.Config.Height)
	}
	return config
}

// AddShapes appends shapes in intersection order
func (s *Scene) AddShapes(shapes ...geometry.Shape) {
	s.Shapes = append(s.Shapes, shapes...)
}

// AddTetrahedron adds the four faces of the tetrahedron with base a, b, c and apex d.
// Face a, c, d uses sideMat and the other three use mat.
func (s *Scene) AddTetrahedron(a, b, c, d core.Vec3, mat, sideMat material.Material) {
	s.AddShapes(
		geometry.NewTriangle(d, a, b, mat),
		geometry.NewTriangle(a, b, c, mat),
		geometry.NewTriangle(a, c, d, sideMat),
		geometry.NewTriangle(b, c, d, mat),
	)
}

// GetPrimitiveCount returns the number of shapes tested per ray
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}
