package scene

import (
	"errors"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"default", "Default"},
		{"mirror-hall", "Mirror Hall"},
		{"single_sphere", "Single Sphere"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestNewScene(t *testing.T) {
	testCases := []struct {
		name   string
		shapes int
	}{
		{"default", 6},
		{"sphere", 1},
		{"mirror", 2},
		{"empty", 0},
		{" Mirror ", 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for _, kind := range []geometry.CameraKind{geometry.Orthographic, geometry.Perspective} {
				s, err := NewScene(tc.name, kind)
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
				if len(s.Shapes) != tc.shapes {
					t.Errorf("Expected %d shapes, got %d", tc.shapes, len(s.Shapes))
				}
				if s.Camera.Kind() != kind {
					t.Errorf("Expected %v camera, got %v", kind, s.Camera.Kind())
				}
				if s.Light == nil {
					t.Error("Expected a light")
				}
			}
		})
	}
}

func TestNewScene_Unknown(t *testing.T) {
	_, err := NewScene("cornell", geometry.Orthographic)
	if !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestParseCamera(t *testing.T) {
	testCases := []struct {
		input    string
		expected geometry.CameraKind
		wantErr  bool
	}{
		{"orthographic", geometry.Orthographic, false},
		{"0", geometry.Orthographic, false},
		{"perspective", geometry.Perspective, false},
		{"1", geometry.Perspective, false},
		{"fisheye", geometry.Orthographic, true},
		{"2", geometry.Orthographic, true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			kind, err := ParseCamera(tc.input)
			if tc.wantErr {
				if !errors.Is(err, ErrUnknownCamera) {
					t.Errorf("Expected ErrUnknownCamera, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if kind != tc.expected {
				t.Errorf("Expected %v, got %v", tc.expected, kind)
			}
		})
	}
}

func TestListScenes(t *testing.T) {
	scenes := ListScenes()
	if len(scenes) != len(builtinScenes) {
		t.Fatalf("Expected %d scenes, got %d", len(builtinScenes), len(scenes))
	}

	for i := 1; i < len(scenes); i++ {
		if scenes[i-1].ID >= scenes[i].ID {
			t.Errorf("Scenes not sorted: %q before %q", scenes[i-1].ID, scenes[i].ID)
		}
	}

	for _, info := range scenes {
		if info.DisplayName == "" || info.Description == "" {
			t.Errorf("Scene %q is missing metadata: %+v", info.ID, info)
		}
		if _, err := NewScene(info.ID, geometry.Orthographic); err != nil {
			t.Errorf("Listed scene %q cannot be created: %v", info.ID, err)
		}
	}
}
