package camera

import (
	gomath "math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/Faultbox/derethmap/pkg/landblock"
	"github.com/Faultbox/derethmap/pkg/math"
)

// Planar camera defaults.
const (
	DefaultZoom             = 0.08
	DefaultMinZoom          = 0.002
	DefaultMaxZoom          = 1000
	DefaultWheelSensitivity = 0.005
	DefaultPinchSensitivity = 0.0075

	orthoNear = 0.000901
	orthoFar  = 1e11
)

// scrollAnim animates the camera towards a target position and zoom.
type scrollAnim struct {
	x, y, zoom *gween.Tween
	done       [3]bool
}

// Planar is a top-down orthographic camera. Position is the world point at
// the centre of the viewport and Zoom is screen pixels per world unit. World
// Y grows southwards (landblock Y flipped).
type Planar struct {
	Position math.Vec2
	Viewport math.Vec2
	MapSize  float32

	MinZoom, MaxZoom float32
	WheelSensitivity float32
	PinchSensitivity float32

	zoom         float32
	lastDistance float32
	scroll       *scrollAnim

	pointer
}

// NewPlanar returns a planar camera with default settings.
func NewPlanar() *Planar {
	return &Planar{
		Viewport:         math.Vec2{X: 1, Y: 1},
		MapSize:          MapSize,
		MinZoom:          DefaultMinZoom,
		MaxZoom:          DefaultMaxZoom,
		WheelSensitivity: DefaultWheelSensitivity,
		PinchSensitivity: DefaultPinchSensitivity,
		zoom:             DefaultZoom,
	}
}

func (c *Planar) Mode() Mode { return ModePlanar }

// Zoom returns screen pixels per world unit.
func (c *Planar) Zoom() float32 { return c.zoom }

// SetZoom sets the zoom, clamped to [MinZoom, MaxZoom].
func (c *Planar) SetZoom(z float32) {
	c.zoom = math.Clamp(z, c.MinZoom, c.MaxZoom)
}

func (c *Planar) SetViewport(width, height float32) {
	c.Viewport = math.Vec2{X: width, Y: height}
}

// FitMap zooms so the whole map spans the larger viewport side and centres
// it.
func (c *Planar) FitMap() {
	side := c.Viewport.X
	if c.Viewport.Y > c.Viewport.X {
		side = c.Viewport.Y
	}
	c.SetZoom(side / c.MapSize)
	c.CenterOn(math.Vec2{X: c.MapSize / 2, Y: c.MapSize / 2})
}

// TranslationMatrix scales by zoom and then translates so Position lands at
// the viewport centre.
func (c *Planar) TranslationMatrix() math.Mat4 {
	offset := c.Viewport.Scale(1 / (2 * c.zoom))
	return math.Scale(c.zoom, c.zoom, 1).Mul(
		math.Translate(-c.Position.X+offset.X, -c.Position.Y+offset.Y, 1))
}

// Projection maps window pixels to clip space with y down.
func (c *Planar) Projection() math.Mat4 {
	return math.Ortho(0, c.Viewport.X, c.Viewport.Y, 0, orthoNear, orthoFar)
}

func (c *Planar) Transform() math.Mat4 {
	return c.Projection().Mul(c.TranslationMatrix())
}

// WorldToScreen maps a world point to window pixels.
func (c *Planar) WorldToScreen(w math.Vec2) math.Vec2 {
	return c.TranslationMatrix().TransformPoint(math.Vec3{X: w.X, Y: w.Y, Z: 1}).XY()
}

// ScreenToWorld maps window pixels to a world point. It is the inverse of
// TranslationMatrix, written out to keep float32 precision at large world
// coordinates.
func (c *Planar) ScreenToWorld(s math.Vec2) math.Vec2 {
	return s.Sub(c.Viewport.Scale(0.5)).Scale(1 / c.zoom).Add(c.Position)
}

// WorldOf returns the world point of a landblock position.
func (c *Planar) WorldOf(p landblock.Position) math.Vec2 {
	x := float64(p.Cell.LBX())*landblock.BlockSize + p.Offset.X
	y := float64(p.Cell.LBY())*landblock.BlockSize + p.Offset.Y
	return math.Vec2{X: float32(x), Y: c.MapSize - float32(y)}
}

// CoordsToScreen maps a landblock position to window pixels.
func (c *Planar) CoordsToScreen(p landblock.Position) math.Vec2 {
	return c.WorldToScreen(c.WorldOf(p))
}

// ScreenToCoords returns the outdoor landblock position under a window
// pixel. Points west or north of the map clamp to offset 0 and landblock
// indices are capped at the edge index.
func (c *Planar) ScreenToCoords(s math.Vec2) landblock.Position {
	w := c.ScreenToWorld(s)
	x := gomath.Max(float64(w.X), 0)
	y := gomath.Max(float64(c.MapSize-w.Y), 0)

	lbx := gomath.Min(gomath.Floor(x/landblock.BlockSize), landblock.EdgeIndex)
	lby := gomath.Min(gomath.Floor(y/landblock.BlockSize), landblock.EdgeIndex)

	addr := landblock.NewAddress(uint8(lbx), uint8(lby), 0)
	off := landblock.Offset{
		X: gomath.Mod(x, landblock.BlockSize),
		Y: gomath.Mod(y, landblock.BlockSize),
	}
	return landblock.NewPosition(addr, off)
}

// Pan moves the camera by a screen-space delta.
func (c *Planar) Pan(delta math.Vec2) {
	c.Position = c.Position.Add(delta.Scale(1 / c.zoom))
}

// ZoomAtCursor zooms by 2^(−wheelDelta·WheelSensitivity) keeping the world
// point under cursor fixed on screen.
func (c *Planar) ZoomAtCursor(wheelDelta float32, cursor math.Vec2) {
	pre := c.ScreenToWorld(cursor)
	c.SetZoom(c.zoom * pow2(-wheelDelta*c.WheelSensitivity))
	post := c.ScreenToWorld(cursor)
	c.Position = c.Position.Add(pre.Sub(post))
}

// PinchZoom zooms by the change in spread between two touch points. The
// first sample of a pinch only records the spread.
func (c *Planar) PinchZoom(distance float32) {
	if c.lastDistance != 0 && distance != c.lastDistance {
		c.SetZoom(c.zoom * pow2((distance-c.lastDistance)*c.PinchSensitivity))
	}
	c.lastDistance = distance
}

// Bounds returns the range of positions that keep the view inside the map.
func (c *Planar) Bounds() (lo, hi math.Vec2) {
	half := c.Viewport.Scale(1 / c.zoom / 2)
	return half, math.Vec2{X: c.MapSize - half.X, Y: c.MapSize - half.Y}
}

// ClampToMap clamps a position to Bounds. An axis on which the whole map
// fits in view is centred.
func (c *Planar) ClampToMap(p math.Vec2) math.Vec2 {
	lo, hi := c.Bounds()
	return math.Vec2{
		X: clampAxis(p.X, lo.X, hi.X, c.MapSize/2),
		Y: clampAxis(p.Y, lo.Y, hi.Y, c.MapSize/2),
	}
}

func clampAxis(v, lo, hi, mid float32) float32 {
	if lo > hi {
		return mid
	}
	return math.Clamp(v, lo, hi)
}

// MoveBy offsets the position by a world-space delta.
func (c *Planar) MoveBy(delta math.Vec2, clampToMap bool) {
	p := c.Position.Add(delta)
	if clampToMap {
		p = c.ClampToMap(p)
	}
	c.Position = p
}

// CenterOn places a world point at the viewport centre.
func (c *Planar) CenterOn(w math.Vec2) {
	c.Position = w
}

// CenterOnPosition centres the view on a landblock position.
func (c *Planar) CenterOnPosition(p landblock.Position) {
	c.CenterOn(c.WorldOf(p))
}

// ScrollTo animates position and zoom over duration seconds.
func (c *Planar) ScrollTo(w math.Vec2, zoom, duration float32) {
	zoom = math.Clamp(zoom, c.MinZoom, c.MaxZoom)
	if duration <= 0 {
		c.scroll = nil
		c.CenterOn(w)
		c.zoom = zoom
		return
	}
	c.scroll = &scrollAnim{
		x:    gween.New(c.Position.X, w.X, duration, ease.OutCubic),
		y:    gween.New(c.Position.Y, w.Y, duration, ease.OutCubic),
		zoom: gween.New(c.zoom, zoom, duration, ease.OutCubic),
	}
}

// Scrolling reports whether a ScrollTo animation is running.
func (c *Planar) Scrolling() bool { return c.scroll != nil }

func (c *Planar) HandleEvent(e Event) {
	switch e.Kind {
	case EventPointerDown:
		if e.Button == PrimaryButton {
			c.scroll = nil
			c.press()
		}
	case EventPointerUp:
		if e.Button == PrimaryButton {
			c.release()
		}
	case EventPointerMove:
		if delta, ok := c.move(e.X, e.Y); ok {
			c.Pan(delta)
		}
	case EventWheel:
		c.scroll = nil
		c.ZoomAtCursor(e.DY, math.Vec2{X: e.X, Y: e.Y})
	case EventPinchStart:
		c.lastDistance = 0
	case EventPinch:
		c.PinchZoom(e.Distance)
	case EventResize:
		c.SetViewport(float32(e.Width), float32(e.Height))
	}
}

func (c *Planar) Update(dt float32) {
	c.settle()

	s := c.scroll
	if s == nil {
		return
	}
	if !s.done[0] {
		c.Position.X, s.done[0] = s.x.Update(dt)
	}
	if !s.done[1] {
		c.Position.Y, s.done[1] = s.y.Update(dt)
	}
	if !s.done[2] {
		c.zoom, s.done[2] = s.zoom.Update(dt)
	}
	if s.done[0] && s.done[1] && s.done[2] {
		c.scroll = nil
	}
}

func pow2(x float32) float32 {
	return float32(gomath.Exp2(float64(x)))
}
