package texture

import (
	"math"

	"github.com/Faultbox/derethmap/pkg/splat"
)

// Procedural draws the alpha masks analytically in their canonical
// orientation: corner masks cover the NW corner (code 8), the side mask the
// west edge (code 9), and the road masks a west strip (9), a NW corner patch
// (8) and the SW to NE diagonal (5). It needs no art assets.
type Procedural struct {
	// Softness is the width of the blend ramp in cell units.
	Softness float32
}

// NewProcedural returns masks with the default edge softness.
func NewProcedural() *Procedural {
	return &Procedural{Softness: 0.12}
}

// corner mask radius per variant
var cornerRadius = [splat.CornerAlphaVariants]float32{0.50, 0.54, 0.46, 0.58}

const (
	sideEdge      = 0.5
	roadHalfWidth = 0.22
)

// Coverage implements splat.AlphaSource.
func (p *Procedural) Coverage(slot int, u, v float32) (float32, bool) {
	u, v = clamp01(u), clamp01(v)
	switch {
	case slot >= splat.CornerAlphaSlot && slot < splat.CornerAlphaSlot+splat.CornerAlphaVariants:
		d := hypot(u, 1-v)
		return p.ramp(cornerRadius[slot-splat.CornerAlphaSlot] - d), true
	case slot == splat.SideAlphaSlot:
		return p.ramp(sideEdge - u), true
	case slot == splat.RoadAlphaSlot:
		return p.ramp(roadHalfWidth*2 - u), true
	case slot == splat.RoadAlphaSlot+1:
		return p.ramp(roadHalfWidth*2 - hypot(u, 1-v)), true
	case slot == splat.RoadAlphaSlot+2:
		d := float32(math.Abs(float64(u-v))) / math.Sqrt2
		return p.ramp(roadHalfWidth - d), true
	}
	return 0, false
}

// ramp maps a signed distance inside the shape (positive) to coverage.
func (p *Procedural) ramp(inside float32) float32 {
	if p.Softness <= 0 {
		if inside >= 0 {
			return 1
		}
		return 0
	}
	return smoothstep(-p.Softness/2, p.Softness/2, inside)
}

func smoothstep(e0, e1, x float32) float32 {
	t := clamp01((x - e0) / (e1 - e0))
	return t * t * (3 - 2*t)
}

func hypot(a, b float32) float32 {
	return float32(math.Hypot(float64(a), float64(b)))
}
