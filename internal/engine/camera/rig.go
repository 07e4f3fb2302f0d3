package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/derethmap/pkg/math"
)

// Rig owns both cameras and decides which one is active. Only the active
// camera receives input and updates; switching carries an approximate view
// across.
type Rig struct {
	Planar *Planar
	Flying *Flying

	mode Mode
}

// NewRig creates both cameras for a viewport, with the planar camera fitted
// to the map and active.
func NewRig(width, height float32) *Rig {
	r := &Rig{
		Planar: NewPlanar(),
		Flying: NewFlying(),
		mode:   ModePlanar,
	}
	r.Planar.SetViewport(width, height)
	r.Flying.SetViewport(width, height)
	r.Planar.FitMap()
	r.ResetFlying()
	return r
}

// Mode returns the active camera mode.
func (r *Rig) Mode() Mode { return r.mode }

// Active returns the active camera.
func (r *Rig) Active() Camera {
	if r.mode == ModeFlying {
		return r.Flying
	}
	return r.Planar
}

// IsActive reports whether cam is the active camera.
func (r *Rig) IsActive(cam Camera) bool {
	return cam == r.Active()
}

// Transform returns the active camera's transform.
func (r *Rig) Transform() math.Mat4 { return r.Active().Transform() }

// HandleEvent routes an event to the active camera. Resizes reach both.
func (r *Rig) HandleEvent(e Event) {
	if e.Kind == EventResize {
		r.Planar.HandleEvent(e)
		r.Flying.HandleEvent(e)
		return
	}
	r.Active().HandleEvent(e)
}

// Update advances the active camera.
func (r *Rig) Update(dt float32) {
	r.Active().Update(dt)
}

// Toggle switches to the other camera.
func (r *Rig) Toggle() {
	if r.mode == ModePlanar {
		r.Switch(ModeFlying)
	} else {
		r.Switch(ModePlanar)
	}
}

// Switch activates a camera. It reports false when mode is already active.
func (r *Rig) Switch(mode Mode) bool {
	if mode == r.mode {
		return false
	}

	switch mode {
	case ModeFlying:
		p := r.Planar.Position
		height := max(100, 1000/r.Planar.Zoom())
		r.Flying.Position = math.Vec3{X: p.X, Y: height, Z: p.Y}
		r.Flying.SetRotation(0, -math32.Pi/6, 0)
		r.Flying.ReleaseKeys()
	case ModePlanar:
		f := r.Flying.Position
		r.Planar.CenterOn(math.Vec2{X: f.X, Y: f.Z})
		factor := math.Clamp(f.Y/1000, 0.01, 2)
		r.Planar.SetZoom(r.Planar.Zoom() / factor)
	}

	// input state of the camera being left must not leak into the next
	// activation
	r.Planar.release()
	r.Flying.release()

	r.mode = mode
	return true
}

// ResetFlying places the flying camera high above the map centre looking
// down at 45 degrees.
func (r *Rig) ResetFlying() {
	mid := r.Planar.MapSize / 2
	r.Flying.Position = math.Vec3{X: mid, Y: mid, Z: 500}
	r.Flying.SetRotation(0, -math32.Pi/4, 0)
	r.Flying.MoveSpeed = r.Planar.MapSize * 0.01
}
