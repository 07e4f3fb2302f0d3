package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/derethmap/pkg/math"
)

// Flying camera defaults.
const (
	DefaultFOV              = 45
	DefaultNear             = 0.1
	DefaultFar              = 1e8
	DefaultMoveSpeed        = 100
	DefaultRotateSpeed      = 0.00001
	DefaultMouseSensitivity = 0.005

	minMoveSpeed = 1
	maxMoveSpeed = 1000
	// per event cap on relative mouse motion
	maxLookDelta = 100
	pitchLimit   = math32.Pi/2 - 0.01
)

// canonical axes before rotation
var (
	axisForward = math.Vec3{X: 0, Y: -1, Z: 0}
	axisRight   = math.Vec3{X: 1, Y: 0, Z: 0}
	axisUp      = math.Vec3{X: 0, Y: 0, Z: 1}
)

// Flying is a free perspective camera driven by mouse look and movement
// keys. Orientation is Rz(yaw)·Rx(pitch)·Ry(roll) applied to the canonical
// axes.
type Flying struct {
	Position math.Vec3
	Viewport math.Vec2

	Near, Far        float32
	MoveSpeed        float32
	RotateSpeed      float32
	MouseSensitivity float32

	yaw, pitch, roll float32
	fov              float32

	forward, right, up math.Vec3

	keys [KeyRollRight + 1]bool

	pointer
}

// NewFlying returns a flying camera with default settings.
func NewFlying() *Flying {
	c := &Flying{
		Viewport:         math.Vec2{X: 1, Y: 1},
		Near:             DefaultNear,
		Far:              DefaultFar,
		MoveSpeed:        DefaultMoveSpeed,
		RotateSpeed:      DefaultRotateSpeed,
		MouseSensitivity: DefaultMouseSensitivity,
		fov:              DefaultFOV,
	}
	c.updateVectors()
	return c
}

func (c *Flying) Mode() Mode { return ModeFlying }

func (c *Flying) SetViewport(width, height float32) {
	c.Viewport = math.Vec2{X: width, Y: height}
}

func (c *Flying) Yaw() float32 { return c.yaw }
func (c *Flying) Pitch() float32 { return c.pitch }
func (c *Flying) Roll() float32 { return c.roll }

// FOV returns the vertical field of view in degrees.
func (c *Flying) FOV() float32 { return c.fov }

// SetFOV sets the vertical field of view in degrees, clamped to [1, 179].
func (c *Flying) SetFOV(deg float32) { c.fov = math.Clamp(deg, 1, 179) }

func (c *Flying) SetYaw(v float32) {
	c.yaw = v
	c.updateVectors()
}

// SetPitch sets the pitch, clamped just short of straight up or down.
func (c *Flying) SetPitch(v float32) {
	c.pitch = math.Clamp(v, -pitchLimit, pitchLimit)
	c.updateVectors()
}

func (c *Flying) SetRoll(v float32) {
	c.roll = v
	c.updateVectors()
}

// SetRotation sets yaw, pitch and roll together.
func (c *Flying) SetRotation(yaw, pitch, roll float32) {
	c.yaw = yaw
	c.pitch = math.Clamp(pitch, -pitchLimit, pitchLimit)
	c.roll = roll
	c.updateVectors()
}

func (c *Flying) Forward() math.Vec3 { return c.forward }
func (c *Flying) Right() math.Vec3 { return c.right }
func (c *Flying) Up() math.Vec3 { return c.up }

func (c *Flying) updateVectors() {
	rot := math.RotateZ(c.yaw).Mul(math.RotateX(c.pitch)).Mul(math.RotateY(c.roll))
	c.forward = rot.TransformDirection(axisForward).Normalize()
	c.right = rot.TransformDirection(axisRight).Normalize()
	c.up = rot.TransformDirection(axisUp).Normalize()
}

func (c *Flying) aspect() float32 {
	if c.Viewport.Y == 0 {
		return 1
	}
	return c.Viewport.X / c.Viewport.Y
}

// Projection is the perspective projection.
func (c *Flying) Projection() math.Mat4 {
	return math.Perspective(c.fov*math32.Pi/180, c.aspect(), c.Near, c.Far)
}

// View looks from Position along the forward vector.
func (c *Flying) View() math.Mat4 {
	return math.LookAt(c.Position, c.Position.Add(c.forward), c.up)
}

func (c *Flying) Transform() math.Mat4 {
	return c.Projection().Mul(c.View())
}

// Look applies relative pointer motion, each axis capped at 100 pixels.
func (c *Flying) Look(dx, dy float32) {
	dx = math.Clamp(dx, -maxLookDelta, maxLookDelta)
	dy = math.Clamp(dy, -maxLookDelta, maxLookDelta)
	c.yaw -= dx * c.MouseSensitivity
	c.SetPitch(c.pitch + dy*c.MouseSensitivity)
}

// LookAt aims the forward vector at target.
func (c *Flying) LookAt(target math.Vec3) {
	dir := target.Sub(c.Position).Normalize()
	c.yaw = math32.Atan2(dir.X, -dir.Y)
	c.pitch = math.Clamp(math32.Asin(math.Clamp(-dir.Z, -1, 1)), -pitchLimit, pitchLimit)
	c.updateVectors()
}

// LooksRelative reports whether the camera wants relative pointer motion
// (the primary button is held).
func (c *Flying) LooksRelative() bool { return c.down }

// ScreenToWorldRay returns the ray through a window pixel. The near plane
// point and a mid-depth point are unprojected through the inverse
// projection and the direction between them is rotated into world space;
// the origin is the camera position.
func (c *Flying) ScreenToWorldRay(x, y float32) (origin, dir math.Vec3) {
	ndcX := 2*x/c.Viewport.X - 1
	ndcY := 1 - 2*y/c.Viewport.Y

	invProj := c.Projection().Inverse()
	near := invProj.TransformPoint(math.Vec3{X: ndcX, Y: ndcY, Z: -1})
	mid := invProj.TransformPoint(math.Vec3{X: ndcX, Y: ndcY, Z: 0})

	dir = c.View().Inverse().TransformDirection(mid.Sub(near)).Normalize()
	return c.Position, dir
}

// WorldToScreen projects a world point to window pixels. ok is false when
// the point is behind the camera.
func (c *Flying) WorldToScreen(p math.Vec3) (math.Vec2, bool) {
	clip := c.Transform().MulVec4(math.Vec4{p.X, p.Y, p.Z, 1})
	if clip[3] <= 0 {
		return math.Vec2{}, false
	}
	ndcX, ndcY := clip[0]/clip[3], clip[1]/clip[3]
	return math.Vec2{
		X: (ndcX + 1) * 0.5 * c.Viewport.X,
		Y: (1 - ndcY) * 0.5 * c.Viewport.Y,
	}, true
}

// AdjustSpeed scales MoveSpeed by 0.9 when scrolling down and 1.1 when
// scrolling up, clamped to [1, 1000].
func (c *Flying) AdjustSpeed(wheelDelta float32) {
	switch {
	case wheelDelta > 0:
		c.MoveSpeed *= 0.9
	case wheelDelta < 0:
		c.MoveSpeed *= 1.1
	default:
		return
	}
	c.MoveSpeed = math.Clamp(c.MoveSpeed, minMoveSpeed, maxMoveSpeed)
}

// Held reports whether a movement key is down.
func (c *Flying) Held(k Key) bool {
	if k <= KeyNone || int(k) >= len(c.keys) {
		return false
	}
	return c.keys[k]
}

func (c *Flying) setKey(k Key, down bool) {
	if k > KeyNone && int(k) < len(c.keys) {
		c.keys[k] = down
	}
}

// ReleaseKeys clears all held movement keys.
func (c *Flying) ReleaseKeys() {
	c.keys = [len(c.keys)]bool{}
}

func (c *Flying) HandleEvent(e Event) {
	switch e.Kind {
	case EventPointerDown:
		if e.Button == PrimaryButton {
			c.press()
		}
	case EventPointerUp:
		if e.Button == PrimaryButton {
			c.release()
		}
	case EventPointerMove:
		if c.down {
			c.Look(e.DX, e.DY)
		}
		c.move(e.X, e.Y)
	case EventWheel:
		c.AdjustSpeed(e.DY)
	case EventKeyDown:
		c.setKey(e.Key, true)
	case EventKeyUp:
		c.setKey(e.Key, false)
	case EventResize:
		c.SetViewport(float32(e.Width), float32(e.Height))
	}
}

// Update moves the camera for held keys. dt is in seconds.
func (c *Flying) Update(dt float32) {
	c.settle()

	ms := dt * 1000
	step := c.MoveSpeed / 50000 * ms

	if c.keys[KeyForward] {
		c.Position = c.Position.Add(c.forward.Scale(step))
	}
	if c.keys[KeyBack] {
		c.Position = c.Position.Sub(c.forward.Scale(step))
	}
	if c.keys[KeyLeft] {
		c.Position = c.Position.Sub(c.right.Scale(step))
	}
	if c.keys[KeyRight] {
		c.Position = c.Position.Add(c.right.Scale(step))
	}
	if c.keys[KeyUp] {
		c.Position = c.Position.Add(c.up.Scale(step))
	}
	if c.keys[KeyDown] {
		c.Position = c.Position.Sub(c.up.Scale(step))
	}

	if c.keys[KeyRollLeft] {
		c.SetRoll(c.roll + c.RotateSpeed*ms)
	}
	if c.keys[KeyRollRight] {
		c.SetRoll(c.roll - c.RotateSpeed*ms)
	}
}
