// Package lighting describes the scene light rig: one ambient term and
// one directional sun.
package lighting

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// Light is a coloured light with an intensity multiplier.
type Light struct {
	Color     mgl32.Vec3 // RGB, 0-1
	Intensity float32
}

// Radiance returns the colour scaled by intensity.
func (l Light) Radiance() mgl32.Vec3 {
	return l.Color.Mul(l.Intensity)
}

// Directional is a light at infinity shining from Position toward Target.
type Directional struct {
	Light
	Position mgl32.Vec3
	Target   mgl32.Vec3
}

// Direction returns the normalised direction the light travels in.
// A degenerate placement shines straight down.
func (d Directional) Direction() mgl32.Vec3 {
	dir := d.Target.Sub(d.Position)
	if dir.Len() < 1e-6 {
		return mgl32.Vec3{0, -1, 0}
	}
	return dir.Normalize()
}

// Rig is the complete lighting setup for a frame.
type Rig struct {
	Ambient Light
	Sun     Directional
}

// Default returns white ambient light at 1.5 and a white sun at 3.6
// shining from (-8, 7, 1.4) toward the origin.
func Default() Rig {
	white := mgl32.Vec3{1, 1, 1}
	return Rig{
		Ambient: Light{Color: white, Intensity: 1.5},
		Sun: Directional{
			Light:    Light{Color: white, Intensity: 3.6},
			Position: mgl32.Vec3{-8, 7, 1.4},
		},
	}
}

// Normalized returns the ambient and sun radiance scaled so a surface
// facing the sun receives exactly full brightness.
func (r Rig) Normalized() (ambient, sun mgl32.Vec3) {
	total := r.Ambient.Intensity + r.Sun.Intensity
	if total <= 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	return r.Ambient.Radiance().Mul(1 / total), r.Sun.Radiance().Mul(1 / total)
}

// SunDirection converts a longitude around Y and a latitude above the
// horizon, both in degrees, to a unit vector pointing toward the sun.
func SunDirection(longitude, latitude float32) mgl32.Vec3 {
	lon := float64(mgl32.DegToRad(longitude))
	lat := float64(mgl32.DegToRad(latitude))
	return mgl32.Vec3{
		float32(math.Cos(lat) * math.Sin(lon)),
		float32(math.Sin(lat)),
		float32(math.Cos(lat) * math.Cos(lon)),
	}
}

// ParseColor parses a #rrggbb string into linear 0-1 RGB components.
func ParseColor(hex string) (mgl32.Vec3, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return mgl32.Vec3{}, fmt.Errorf("light color %q: %w", hex, err)
	}
	return mgl32.Vec3{float32(c.R), float32(c.G), float32(c.B)}, nil
}
