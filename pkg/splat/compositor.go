package splat

import (
	"image/color"
	"math"
)

// Color is a linear RGB colour with components in [0, 1].
type Color struct {
	R, G, B float32
}

// RGB builds a Color from 8-bit components.
func RGB(r, g, b uint8) Color {
	return Color{float32(r) / 255, float32(g) / 255, float32(b) / 255}
}

func (c Color) Add(o Color) Color { return Color{c.R + o.R, c.G + o.G, c.B + o.B} }
func (c Color) Scale(f float32) Color { return Color{c.R * f, c.G * f, c.B * f} }

func (c Color) Lerp(o Color, t float32) Color {
	return c.Scale(1 - t).Add(o.Scale(t))
}

// RGBA converts to an opaque 8-bit colour.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: 0xFF}
}

func to8(v float32) uint8 {
	if v <= 0 || v != v {
		return 0
	}
	if v >= 1 {
		return 0xFF
	}
	return uint8(v*255 + 0.5)
}

// TextureSource samples terrain atlas slots. Coordinates wrap; v grows north.
// ok is false when the slot has no image loaded.
type TextureSource interface {
	Texel(slot int, u, v float32) (c Color, ok bool)
}

// AlphaSource samples the coverage of alpha mask slots: 1 where the overlay
// is drawn, 0 where it is absent. Coordinates are in [0, 1] with v north.
type AlphaSource interface {
	Coverage(slot int, u, v float32) (a float32, ok bool)
}

// Grid line highlight colours.
var (
	LandblockLineColor = Color{1, 0, 0}
	LandcellLineColor  = Color{1, 0, 1}
)

const (
	blendEpsilon = 1e-6

	landblockUnits = 192.0
	landcellUnits  = 24.0

	// line widths in screen pixels
	landblockLinePixels = 1.5
	landcellLinePixels  = 1.0

	// DefaultTextureRepeat is how many times a terrain texture tiles across
	// one cell.
	DefaultTextureRepeat = 2
)

// Compositor turns blend plans into colours. Textures and Alphas may be nil,
// in which case palette colours are used.
type Compositor struct {
	Textures TextureSource
	Alphas   AlphaSource
	Palette  *Palette

	TextureRepeat      float32
	MinZoomForTextures float64
	ShowLandblockLines bool
	ShowLandcellLines  bool
}

// NewCompositor returns a compositor with the default palette and settings.
func NewCompositor(textures TextureSource, alphas AlphaSource) *Compositor {
	return &Compositor{
		Textures:           textures,
		Alphas:             alphas,
		Palette:            DefaultPalette(),
		TextureRepeat:      DefaultTextureRepeat,
		MinZoomForTextures: 0.02,
	}
}

// Fragment is one shaded point of the map.
type Fragment struct {
	Plan BlendPlan
	// U and V locate the point inside its cell, in [0, 1) with v north.
	U, V float32
	// X and Y are the landblock-space world position, Y north.
	X, Y float64
	// Zoom is the screen pixels per world unit at this point.
	Zoom float64
}

// Pixel shades a fragment: textured blend when zoomed in far enough, palette
// colour otherwise, with grid lines drawn on top.
func (c *Compositor) Pixel(f *Fragment) Color {
	if line, ok := c.GridLine(f.X, f.Y, f.Zoom); ok {
		return line
	}
	if f.Zoom < c.MinZoomForTextures {
		return c.paletteColor(f.Plan.Base)
	}
	return c.Shade(&f.Plan, f.U, f.V)
}

// Shade composites a blend plan at a cell-local position:
//
//	base·(1−tA)·(1−rA) + terrain·tA·(1−rA) + road·rA
//
// Terrain and road overlays are each combined with the mask blend first.
func (c *Compositor) Shade(plan *BlendPlan, u, v float32) Color {
	base := c.texel(plan.Base, u, v)
	if plan.SolidRoad || !plan.HasOverlays() {
		return base
	}

	tC, tA := c.maskBlend(plan.TerrainLayers(), u, v)
	rC, rA := c.maskBlend(plan.RoadLayers(), u, v)

	return base.Scale((1 - tA) * (1 - rA)).
		Add(tC.Scale(tA * (1 - rA))).
		Add(rC.Scale(rA))
}

// maskBlend combines overlays front to back. With a_i the transparency of
// layer i, layer i is weighted by Π_{j<i} a_j · (1 − a_i) and the combined
// alpha is 1 − Π a_i.
func (c *Compositor) maskBlend(layers []Layer, u, v float32) (Color, float32) {
	if len(layers) == 0 {
		return Color{}, 0
	}
	var sum Color
	through := float32(1)
	for _, l := range layers {
		a := 1 - c.coverage(l, u, v)
		sum = sum.Add(c.texel(l.Texture, u, v).Scale(through * (1 - a)))
		through *= a
	}
	alpha := 1 - through
	if alpha <= 0 {
		return Color{}, 0
	}
	return sum.Scale(1 / max(alpha, blendEpsilon)), alpha
}

func (c *Compositor) coverage(l Layer, u, v float32) float32 {
	if c.Alphas == nil {
		return 0
	}
	mu, mv := RotateUV(float64(u), float64(v), l.Rotation)
	a, ok := c.Alphas.Coverage(l.Alpha, float32(mu), float32(mv))
	if !ok {
		return 0
	}
	return clamp01(a)
}

func (c *Compositor) texel(slot int, u, v float32) Color {
	if c.Textures != nil {
		repeat := c.TextureRepeat
		if repeat <= 0 {
			repeat = DefaultTextureRepeat
		}
		if col, ok := c.Textures.Texel(slot, u*repeat, v*repeat); ok {
			return col
		}
	}
	return c.paletteColor(slot)
}

func (c *Compositor) paletteColor(slot int) Color {
	if slot == RoadTexture {
		return RoadColor
	}
	if c.Palette == nil {
		return defaultPalette.Color(slot)
	}
	return c.Palette.Color(slot)
}

// GridLine reports the highlight colour when the landblock-space point (x, y)
// lies on an enabled landblock or landcell boundary at the given zoom.
func (c *Compositor) GridLine(x, y, zoom float64) (Color, bool) {
	if zoom <= 0 {
		return Color{}, false
	}
	px := 1 / zoom
	if c.ShowLandblockLines && (nearLine(x, landblockUnits, px*landblockLinePixels) || nearLine(y, landblockUnits, px*landblockLinePixels)) {
		return LandblockLineColor, true
	}
	if c.ShowLandcellLines && (nearLine(x, landcellUnits, px*landcellLinePixels) || nearLine(y, landcellUnits, px*landcellLinePixels)) {
		return LandcellLineColor, true
	}
	return Color{}, false
}

func nearLine(v, spacing, band float64) bool {
	return v-math.Floor(v/spacing)*spacing < band
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
