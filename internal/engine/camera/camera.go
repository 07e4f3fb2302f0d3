// Package camera implements the two map cameras: a planar pan/zoom camera and
// a free flying perspective camera. Both consume Events and produce a
// combined view-projection Transform.
package camera

import (
	"github.com/Faultbox/derethmap/pkg/landblock"
	"github.com/Faultbox/derethmap/pkg/math"
)

// Mode selects the camera and the vertex layout the renderer uses.
type Mode int

const (
	// ModePlanar lays vertices out as (x, y, height).
	ModePlanar Mode = 0
	// ModeFlying lays vertices out as (x, height, y).
	ModeFlying Mode = 1
)

func (m Mode) String() string {
	if m == ModeFlying {
		return "flying"
	}
	return "planar"
}

// MapSize is the side length of the map in world units.
const MapSize = float32(landblock.MapSize)

// Camera is the behaviour shared by both cameras.
type Camera interface {
	Mode() Mode
	// Transform is Projection × View.
	Transform() math.Mat4
	SetViewport(width, height float32)
	HandleEvent(e Event)
	Update(dt float32)
}

// pointer tracks the primary button and drag state. A drag begins on the
// second move sample after the button goes down; the first only records the
// anchor.
type pointer struct {
	down      bool
	dragging  bool
	last      math.Vec2
	dragStart math.Vec2
	pos       math.Vec2
}

func (p *pointer) press() {
	p.down = true
	p.dragging = false
}

func (p *pointer) release() {
	p.down = false
}

// move records a pointer sample and returns the drag delta (last − new) when
// a drag is in progress.
func (p *pointer) move(x, y float32) (math.Vec2, bool) {
	cur := math.Vec2{X: x, Y: y}
	p.pos = cur

	if !p.down {
		return math.Vec2{}, false
	}

	var delta math.Vec2
	dragged := false
	if !p.dragging {
		p.dragStart = cur
	} else {
		delta = p.last.Sub(cur)
		dragged = true
	}
	p.dragging = true
	p.last = cur
	return delta, dragged
}

// settle ends a drag once the button is up.
func (p *pointer) settle() {
	if !p.down && p.dragging {
		p.dragging = false
	}
}

// Dragging reports whether a drag is in progress.
func (p *pointer) Dragging() bool { return p.dragging }

// Pointer returns the last pointer position in window pixels.
func (p *pointer) Pointer() math.Vec2 { return p.pos }
