// Package lighting provides the directional sun used to hill-shade the map.
package lighting

import "math"

// Sun is a directional light with an ambient floor.
type Sun struct {
	Direction [3]float32 // towards the sun, z up, y north
	Ambient   float32
}

// DefaultSun lights the map from the north-west at 45 degrees, the usual
// cartographic hill-shading direction.
func DefaultSun() Sun {
	return Sun{Direction: SunDirection(315, 45), Ambient: 0.45}
}

// SunDirection converts an azimuth (degrees clockwise from north) and an
// elevation above the horizon into a unit vector pointing towards the sun.
func SunDirection(azimuth, elevation float64) [3]float32 {
	az := azimuth * math.Pi / 180.0
	el := elevation * math.Pi / 180.0

	x := float32(math.Cos(el) * math.Sin(az))
	y := float32(math.Cos(el) * math.Cos(az))
	z := float32(math.Sin(el))

	return [3]float32{x, y, z}
}

// Shade returns the light factor for a unit surface normal, in
// [Ambient, 1].
func (s Sun) Shade(normal [3]float32) float32 {
	d := normal[0]*s.Direction[0] + normal[1]*s.Direction[1] + normal[2]*s.Direction[2]
	if d < 0 {
		d = 0
	}
	return s.Ambient + (1-s.Ambient)*d
}
