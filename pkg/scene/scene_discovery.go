package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

var (
	// ErrUnknownScene is returned when a scene name has no built-in constructor
	ErrUnknownScene = errors.New("unknown scene")
	// ErrUnknownCamera is returned when a camera name is neither orthographic nor perspective
	ErrUnknownCamera = errors.New("unknown camera")
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Name passed to NewScene
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"`
	Shapes      int    `json:"shapes"` // Number of shapes in the scene
}

type builtinScene struct {
	description string
	create      func(kind geometry.CameraKind, cameraOverrides ...geometry.CameraConfig) *Scene
}

var builtinScenes = map[string]builtinScene{
	"default": {"Mirror floor with a red sphere and a tetrahedron", NewDefaultScene},
	"sphere":  {"Single red sphere lit from above", NewSphereScene},
	"mirror":  {"Mirror sphere facing a mirror wall", NewMirrorScene},
	"empty":   {"No shapes, renders black", NewEmptyScene},
}

// NewScene creates the built-in scene with the given name and active camera
func NewScene(name string, kind geometry.CameraKind, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	builtin, ok := builtinScenes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return builtin.create(kind, cameraOverrides...), nil
}

// ParseCamera parses a camera name, wrapping failures in ErrUnknownCamera
func ParseCamera(name string) (geometry.CameraKind, error) {
	kind, err := geometry.ParseCameraKind(name)
	if err != nil {
		return kind, fmt.Errorf("%w: %v", ErrUnknownCamera, err)
	}
	return kind, nil
}

// ListScenes returns the built-in scenes sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for id, builtin := range builtinScenes {
		s := builtin.create(geometry.Orthographic)
		scenes = append(scenes, SceneInfo{
			ID:          id,
			DisplayName: titleCase(id),
			Description: builtin.description,
			Shapes:      s.GetPrimitiveCount(),
		})
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// titleCase converts a filename-style string to title case
// e.g., "mirror-hall" -> "Mirror Hall"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
