package lighting

import (
	"math"
	"testing"
)

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name    string
		az, el  float64
		x, y, z float32
	}{
		{"north horizon", 0, 0, 0, 1, 0},
		{"east horizon", 90, 0, 1, 0, 0},
		{"zenith", 0, 90, 0, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := SunDirection(tt.az, tt.el)
			if math.Abs(float64(d[0]-tt.x)) > 1e-5 || math.Abs(float64(d[1]-tt.y)) > 1e-5 || math.Abs(float64(d[2]-tt.z)) > 1e-5 {
				t.Errorf("expected (%v, %v, %v), got %v", tt.x, tt.y, tt.z, d)
			}
		})
	}
}

func TestShade(t *testing.T) {
	sun := Sun{Direction: [3]float32{0, 0, 1}, Ambient: 0.25}

	if got := sun.Shade([3]float32{0, 0, 1}); got != 1 {
		t.Errorf("expected full light facing the sun, got %v", got)
	}
	if got := sun.Shade([3]float32{0, 0, -1}); got != 0.25 {
		t.Errorf("expected ambient facing away, got %v", got)
	}
}

func TestDefaultSunFavoursNorthWestSlopes(t *testing.T) {
	sun := DefaultSun()
	nw := sun.Shade([3]float32{-0.5, 0.5, 0.7071})
	se := sun.Shade([3]float32{0.5, -0.5, 0.7071})
	if nw <= se {
		t.Errorf("expected north-west slope (%v) brighter than south-east (%v)", nw, se)
	}
}
