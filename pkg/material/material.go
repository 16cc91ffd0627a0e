package material

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DefaultShininess is the Phong exponent used when none is given
const DefaultShininess = 32.0

// Material describes how a surface responds to light
type Material struct {
	Color     core.Vec3 // Base color, 0-255 per channel
	Ambient   float64   // k_a
	Diffuse   float64   // k_d
	Specular  float64   // k_s
	Shininess float64   // Phong exponent for the specular lobe
	Mirror    bool      // Trace reflection rays off this surface
}

// NewMaterial creates a material with the default shininess.
// The coefficients are weights and are not required to sum to 1.
func NewMaterial(color core.Vec3, ambient, diffuse, specular float64, mirror bool) Material {
	return Material{
		Color:     color,
		Ambient:   ambient,
		Diffuse:   diffuse,
		Specular:  specular,
		Shininess: DefaultShininess,
		Mirror:    mirror,
	}
}

// WithShininess returns a copy of the material using the given Phong exponent
func (m Material) WithShininess(shininess float64) Material {
	if shininess < 0 {
		shininess = 0
	}
	m.Shininess = shininess
	return m
}

// WithMirror returns a copy of the material with the mirror flag set
func (m Material) WithMirror(mirror bool) Material {
	m.Mirror = mirror
	return m
}

// Hex returns the base color as a #rrggbb string
func (m Material) Hex() string {
	c := m.Color.Clamp(0, 255)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X), int(c.Y), int(c.Z))
}
