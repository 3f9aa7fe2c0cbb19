// Package lighting holds the fixed point light the viewer shades with.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/hangar/pkg/math"
)

// PointLight is a white point light with Phong material terms.
type PointLight struct {
	Position  math.Vec3
	Ambient   float32
	Diffuse   float32
	Specular  float32
	Shininess float32
}

// Default returns the light used when no config overrides it.
func Default() PointLight {
	return PointLight{
		Position:  math.Vec3{X: 50, Y: 75, Z: 80},
		Ambient:   0.4,
		Diffuse:   0.6,
		Specular:  0.6,
		Shininess: 32,
	}
}

// Shade evaluates the Phong model at one surface point. It is the CPU
// reference for the fragment shader and produces the same values.
func (l PointLight) Shade(pos, normal, eye math.Vec3, albedo [3]float32) [3]float32 {
	n := normal.Normalize()
	toLight := l.Position.Sub(pos).Normalize()
	toEye := eye.Sub(pos).Normalize()

	diff := max(n.Dot(toLight), 0)

	var spec float32
	if diff > 0 {
		// reflect(-L, N) = -L + 2(N·L)N
		r := toLight.Negate().Add(n.Scale(2 * n.Dot(toLight)))
		spec = math32.Pow(max(r.Dot(toEye), 0), l.Shininess)
	}

	var out [3]float32
	for i, c := range albedo {
		v := (l.Ambient+l.Diffuse*diff)*c + l.Specular*spec
		out[i] = min(v, 1)
	}
	return out
}

// Uniforms returns the light as shader-ready values.
func (l PointLight) Uniforms() (position [3]float32, terms [4]float32) {
	return l.Position.Array(), [4]float32{l.Ambient, l.Diffuse, l.Specular, l.Shininess}
}
