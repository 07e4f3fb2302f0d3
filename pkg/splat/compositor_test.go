package splat

import (
	"math"
	"testing"
)

type solidTextures map[int]Color

func (s solidTextures) Texel(slot int, u, v float32) (Color, bool) {
	c, ok := s[slot]
	return c, ok
}

type solidAlphas map[int]float32

func (s solidAlphas) Coverage(slot int, u, v float32) (float32, bool) {
	a, ok := s[slot]
	return a, ok
}

func near(a, b Color) bool {
	const eps = 1e-5
	return math.Abs(float64(a.R-b.R)) < eps &&
		math.Abs(float64(a.G-b.G)) < eps &&
		math.Abs(float64(a.B-b.B)) < eps
}

var (
	red   = Color{1, 0, 0}
	green = Color{0, 1, 0}
	blue  = Color{0, 0, 1}
	grey  = Color{0.5, 0.5, 0.5}
)

func allAlphas(a float32) solidAlphas {
	m := solidAlphas{}
	for i := 0; i < NumAlphaSlots; i++ {
		m[i] = a
	}
	return m
}

func TestShadeNoOverlaysEqualsBase(t *testing.T) {
	c := NewCompositor(solidTextures{5: Color{0.3, 0.6, 0.9}}, allAlphas(1))
	plan := Plan(terrainCode(5, 5, 5, 5))
	for _, uv := range [][2]float32{{0, 0}, {0.5, 0.5}, {0.99, 0.1}} {
		got := c.Shade(&plan, uv[0], uv[1])
		if got != (Color{0.3, 0.6, 0.9}) {
			t.Errorf("uv %v: expected base colour exactly, got %+v", uv, got)
		}
	}
}

func TestShadeTerrainOverlay(t *testing.T) {
	tex := solidTextures{1: red, 2: green}
	plan := Plan(terrainCode(1, 1, 1, 2))

	full := NewCompositor(tex, allAlphas(1))
	if got := full.Shade(&plan, 0.5, 0.5); !near(got, green) {
		t.Errorf("expected full coverage to show overlay, got %+v", got)
	}

	half := NewCompositor(tex, allAlphas(0.5))
	if got := half.Shade(&plan, 0.5, 0.5); !near(got, Color{0.5, 0.5, 0}) {
		t.Errorf("expected half blend, got %+v", got)
	}

	none := NewCompositor(tex, allAlphas(0))
	if got := none.Shade(&plan, 0.5, 0.5); !near(got, red) {
		t.Errorf("expected zero coverage to show base, got %+v", got)
	}
}

func TestShadeMaskBlendWeights(t *testing.T) {
	// two overlays at half coverage: first weighted 0.5, second 0.25
	tex := solidTextures{1: grey, 2: red, 3: blue}
	c := NewCompositor(tex, allAlphas(0.5))
	plan := Plan(terrainCode(1, 1, 2, 3))
	if plan.NumTerrain != 2 {
		t.Fatalf("expected two overlays, got %d", plan.NumTerrain)
	}

	tC, tA := c.maskBlend(plan.TerrainLayers(), 0.5, 0.5)
	if math.Abs(float64(tA-0.75)) > 1e-6 {
		t.Errorf("expected combined alpha 0.75, got %v", tA)
	}
	want := Color{0.5 / 0.75, 0, 0.25 / 0.75}
	if !near(tC, want) {
		t.Errorf("expected %+v, got %+v", want, tC)
	}
}

func TestShadeRoadOnTop(t *testing.T) {
	tex := solidTextures{1: red, RoadTexture: blue}
	c := NewCompositor(tex, allAlphas(1))
	plan := Plan(roadCode(NW, NE))
	if got := c.Shade(&plan, 0.5, 0.9); !near(got, blue) {
		t.Errorf("expected road colour, got %+v", got)
	}

	solid := Plan(roadCode(NW, NE, SE, SW))
	if got := c.Shade(&solid, 0.1, 0.1); got != blue {
		t.Errorf("expected solid road texture, got %+v", got)
	}
}

func TestShadeFallsBackToPalette(t *testing.T) {
	c := NewCompositor(nil, nil)
	plan := Plan(terrainCode(10, 10, 10, 10))
	if got := c.Shade(&plan, 0.5, 0.5); got != c.Palette.Color(10) {
		t.Errorf("expected palette colour, got %+v", got)
	}

	solid := Plan(roadCode(NW, NE, SE, SW))
	if got := c.Shade(&solid, 0.5, 0.5); got != RoadColor {
		t.Errorf("expected road colour, got %+v", got)
	}
}

func TestPixelBelowTextureZoom(t *testing.T) {
	c := NewCompositor(solidTextures{3: red}, nil)
	f := Fragment{Plan: Plan(terrainCode(3, 3, 3, 3)), U: 0.5, V: 0.5, X: 100, Y: 100, Zoom: 0.01}
	if got := c.Pixel(&f); got != c.Palette.Color(3) {
		t.Errorf("expected palette colour below texture zoom, got %+v", got)
	}
	f.Zoom = 1
	if got := c.Pixel(&f); got != red {
		t.Errorf("expected texture colour, got %+v", got)
	}
}

func TestGridLines(t *testing.T) {
	c := NewCompositor(nil, nil)
	if _, ok := c.GridLine(192.2, 50, 1); ok {
		t.Error("expected no lines when disabled")
	}

	c.ShowLandblockLines = true
	c.ShowLandcellLines = true
	tests := []struct {
		x, y float64
		want Color
		ok   bool
	}{
		{192.2, 50, LandblockLineColor, true},
		{50, 384.5, LandblockLineColor, true},
		{24.5, 50, LandcellLineColor, true},
		{50, 72.3, LandcellLineColor, true},
		{50, 50, Color{}, false},
	}
	for _, tt := range tests {
		got, ok := c.GridLine(tt.x, tt.y, 1)
		if ok != tt.ok || got != tt.want {
			t.Errorf("(%v, %v): expected %+v %v, got %+v %v", tt.x, tt.y, tt.want, tt.ok, got, ok)
		}
	}

	f := Fragment{Plan: Plan(0), X: 192.5, Y: 10, Zoom: 1}
	if got := c.Pixel(&f); got != LandblockLineColor {
		t.Errorf("expected grid line to override shading, got %+v", got)
	}
}

func TestPaletteClamps(t *testing.T) {
	p := DefaultPalette()
	if p.Color(-4) != p.Color(0) || p.Color(99) != p.Color(MaxTerrain) {
		t.Error("expected out of range terrain to clamp")
	}
	if TerrainName(16) != "WaterRunning" {
		t.Errorf("expected WaterRunning, got %s", TerrainName(16))
	}
}

func TestColorRGBA(t *testing.T) {
	c := Color{1.5, 0.5, -1}.RGBA()
	if c.R != 255 || c.G != 128 || c.B != 0 || c.A != 255 {
		t.Errorf("expected {255 128 0 255}, got %+v", c)
	}
}
