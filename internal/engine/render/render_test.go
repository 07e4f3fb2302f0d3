package render

import (
	"context"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/Faultbox/derethmap/internal/engine/camera"
	"github.com/Faultbox/derethmap/internal/engine/terrain"
	"github.com/Faultbox/derethmap/pkg/landblock"
	"github.com/Faultbox/derethmap/pkg/math"
	"github.com/Faultbox/derethmap/pkg/splat"
)

func flatGrid(height, terrainType uint8) *terrain.Grid {
	g := terrain.NewGrid()
	s := splat.VertexSample{Height: height, Terrain: terrainType}
	for vy := range terrain.VerticesPerSide {
		for vx := range terrain.VerticesPerSide {
			g.Set(vx, vy, s)
		}
	}
	return g
}

func newTestRenderer(g *terrain.Grid) *Renderer {
	return New(g, terrain.DefaultHeightTable(), splat.NewCompositor(nil, nil))
}

func planarAt(w, h float32, center math.Vec2, zoom float32) *camera.Planar {
	c := camera.NewPlanar()
	c.SetViewport(w, h)
	c.SetZoom(zoom)
	c.CenterOn(center)
	return c
}

func paletteRGBA(terrainType int) color.RGBA {
	return splat.DefaultPalette().Color(terrainType).RGBA()
}

func TestRenderPlanarPalette(t *testing.T) {
	r := newTestRenderer(flatGrid(0, 3))
	cam := planarAt(64, 48, math.Vec2{X: 24480, Y: 24480}, 0.01)

	img, err := r.RenderPlanar(context.Background(), cam, 64, 48)
	if err != nil {
		t.Fatalf("RenderPlanar failed: %v", err)
	}
	if got := img.RGBAAt(32, 24); got != paletteRGBA(3) {
		t.Errorf("expected palette colour %v, got %v", paletteRGBA(3), got)
	}
}

func TestRenderPlanarOffMap(t *testing.T) {
	r := newTestRenderer(terrain.NewGrid())
	cam := planarAt(32, 32, math.Vec2{X: -5000, Y: -5000}, 1)

	img, err := r.RenderPlanar(context.Background(), cam, 32, 32)
	if err != nil {
		t.Fatalf("RenderPlanar failed: %v", err)
	}
	for _, p := range []image.Point{{0, 0}, {16, 16}, {31, 31}} {
		if got := img.RGBAAt(p.X, p.Y); got != ClearColor {
			t.Errorf("pixel %v: expected clear colour, got %v", p, got)
		}
	}
}

func TestRenderPlanarGridLines(t *testing.T) {
	r := newTestRenderer(terrain.NewGrid())
	r.Compositor.ShowLandblockLines = true
	// landblock boundary at x=192 sits on the centre column
	cam := planarAt(40, 40, math.Vec2{X: 192, Y: 24480}, 1)

	img, err := r.RenderPlanar(context.Background(), cam, 40, 40)
	if err != nil {
		t.Fatalf("RenderPlanar failed: %v", err)
	}
	if got, want := img.RGBAAt(20, 5), splat.LandblockLineColor.RGBA(); got != want {
		t.Errorf("expected landblock line colour %v, got %v", want, got)
	}
	if got := img.RGBAAt(30, 5); got == splat.LandblockLineColor.RGBA() {
		t.Error("expected no line away from the boundary")
	}
}

func TestRenderQualityScalesToFrame(t *testing.T) {
	r := newTestRenderer(flatGrid(0, 1))
	r.Options.Quality = 3
	cam := planarAt(50, 30, math.Vec2{X: 24480, Y: 24480}, 0.01)

	img, err := r.RenderPlanar(context.Background(), cam, 50, 30)
	if err != nil {
		t.Fatalf("RenderPlanar failed: %v", err)
	}
	if img.Bounds().Dx() != 50 || img.Bounds().Dy() != 30 {
		t.Errorf("expected 50x30 frame, got %v", img.Bounds())
	}
	if got := img.RGBAAt(49, 29); got != paletteRGBA(1) {
		t.Errorf("expected scaled palette colour, got %v", got)
	}
}

func TestRenderInvalidSize(t *testing.T) {
	r := newTestRenderer(terrain.NewGrid())
	if _, err := r.RenderPlanar(context.Background(), camera.NewPlanar(), 0, 10); err == nil {
		t.Error("expected error for empty frame")
	}
}

func TestRenderCancelled(t *testing.T) {
	r := newTestRenderer(terrain.NewGrid())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.RenderPlanar(ctx, planarAt(16, 16, math.Vec2{}, 1), 16, 16)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func flyingAt(pos math.Vec3) *camera.Flying {
	c := camera.NewFlying()
	c.SetViewport(32, 32)
	c.Position = pos
	c.SetRotation(0, 0, 0) // looking straight down
	return c
}

func TestRenderFlyingLooksDown(t *testing.T) {
	r := newTestRenderer(flatGrid(10, 5))
	cam := flyingAt(math.Vec3{X: 24480, Y: 1000, Z: 24480})

	img, err := r.RenderFlying(context.Background(), cam, 32, 32)
	if err != nil {
		t.Fatalf("RenderFlying failed: %v", err)
	}
	if got := img.RGBAAt(16, 16); got != paletteRGBA(5) {
		t.Errorf("expected terrain colour %v, got %v", paletteRGBA(5), got)
	}
}

func TestRenderFlyingBelowGround(t *testing.T) {
	r := newTestRenderer(terrain.NewGrid())
	cam := flyingAt(math.Vec3{X: 24480, Y: -10, Z: 24480})

	img, err := r.RenderFlying(context.Background(), cam, 32, 32)
	if err != nil {
		t.Fatalf("RenderFlying failed: %v", err)
	}
	if got := img.RGBAAt(16, 16); got != ClearColor {
		t.Errorf("expected clear colour, got %v", got)
	}
}

func TestIntersectHeight(t *testing.T) {
	r := newTestRenderer(flatGrid(10, 0))

	hit, dist, ok := r.intersect(math.Vec3{X: 100, Y: 1000, Z: 100}, math.Vec3{Y: -1})
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Y < 19 || hit.Y > 21 {
		t.Errorf("expected hit at height 20, got %v", hit.Y)
	}
	if dist < 979 || dist > 981 {
		t.Errorf("expected distance 980, got %v", dist)
	}

	r.Heights = nil
	hit, _, ok = r.intersect(math.Vec3{X: 100, Y: 1000, Z: 100}, math.Vec3{Y: -1})
	if !ok || hit.Y != 0 {
		t.Errorf("expected flat hit at 0, got %v %v", hit, ok)
	}

	if _, _, ok := r.intersect(math.Vec3{Y: 10}, math.Vec3{Y: 1}); ok {
		t.Error("expected upward ray to miss")
	}
}

func TestPositionAt(t *testing.T) {
	p := PositionAt(192*3+10, 192*5+20, 7)
	if p.Cell.LBX() != 3 || p.Cell.LBY() != 5 {
		t.Errorf("expected landblock (3, 5), got (%d, %d)", p.Cell.LBX(), p.Cell.LBY())
	}
	if p.Offset != (landblock.Offset{X: 10, Y: 20, Z: 7}) {
		t.Errorf("expected offset (10, 20, 7), got %+v", p.Offset)
	}
	if !p.IsOutdoor() {
		t.Error("expected outdoor position")
	}
}

func TestScreenToCoords(t *testing.T) {
	r := newTestRenderer(terrain.NewGrid())
	rig := camera.NewRig(100, 100)
	rig.Planar.SetZoom(1)
	rig.Planar.CenterOn(math.Vec2{X: 500, Y: landblock.MapSize - 300})

	p, ok := r.ScreenToCoords(rig, 50, 50)
	if !ok {
		t.Fatal("expected the centre pixel on the map")
	}
	if p.Cell.LBX() != 2 || p.Cell.LBY() != 1 {
		t.Errorf("expected landblock (2, 1), got (%d, %d)", p.Cell.LBX(), p.Cell.LBY())
	}

	rig.Planar.CenterOn(math.Vec2{X: -1000, Y: -1000})
	if _, ok := r.ScreenToCoords(rig, 50, 50); ok {
		t.Error("expected off-map pixel to report false")
	}
}

func TestHUDLinesPlanar(t *testing.T) {
	rig := camera.NewRig(100, 100)
	rig.Planar.SetZoom(0.08)
	rig.Planar.CenterOn(math.Vec2{X: 100, Y: 200})
	pos := PositionAt(100, 100, 0)
	h := HUD{Rig: rig, Cursor: &pos, Route: "1.000N,2.000E,0.080", FPS: 60}

	lines := h.Lines()
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d: %v", len(lines), lines)
	}
	if lines[0] != "Coords: "+pos.String() {
		t.Errorf("expected coords line, got %q", lines[0])
	}
	if lines[1] != "Camera: 2D | Zoom: 0.0800 | Pos: (100.0, 200.0)" {
		t.Errorf("expected camera line, got %q", lines[1])
	}
	if lines[3] != "FPS: 60" || lines[4] != SwitchHint {
		t.Errorf("expected fps and hint lines, got %q %q", lines[3], lines[4])
	}
}

func TestHUDLinesFlying(t *testing.T) {
	rig := camera.NewRig(100, 100)
	rig.Switch(camera.ModeFlying)
	h := HUD{Rig: rig}

	lines := h.Lines()
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %v", len(lines), lines)
	}
	if !strings.HasPrefix(lines[0], "3D Position: (") {
		t.Errorf("expected position line, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Camera: Flying | Yaw: 0.0° | Pitch: -30.0°") {
		t.Errorf("expected flying camera line, got %q", lines[1])
	}
}

func TestHUDDraw(t *testing.T) {
	h := HUD{Rig: camera.NewRig(100, 100)}
	img := image.NewRGBA(image.Rect(0, 0, 400, 120))
	h.Draw(img)
	if img.RGBAAt(2, 2) != (color.RGBA{}) {
		t.Error("expected margin outside the panel untouched")
	}
	if img.RGBAAt(6, 6).A == 0 {
		t.Error("expected panel drawn")
	}
}
