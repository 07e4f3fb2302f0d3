package app

import (
	"context"
	"errors"
	gomath "math"
	"testing"
	"time"

	"github.com/Faultbox/derethmap/internal/config"
	"github.com/Faultbox/derethmap/internal/engine/camera"
	"github.com/Faultbox/derethmap/internal/engine/terrain"
	"github.com/Faultbox/derethmap/pkg/landblock"
)

// testApp builds a small app over a blank grid with a controllable clock.
func testApp(t *testing.T, mutate func(*config.Config)) (*App, *time.Time) {
	t.Helper()
	cfg := config.Default()
	cfg.Graphics.Width = 64
	cfg.Graphics.Height = 48
	cfg.Graphics.RenderQuality = 1
	if mutate != nil {
		mutate(cfg)
	}
	a := NewWithGrid(cfg, terrain.NewGrid(), nil, nil)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a.Now = func() time.Time { return now }
	return a, &now
}

func TestTickRendersFrame(t *testing.T) {
	a, _ := testApp(t, nil)

	frame, err := a.Tick(context.Background(), 1.0/60)
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if frame.Mode != camera.ModePlanar {
		t.Errorf("expected planar mode, got %v", frame.Mode)
	}
	b := frame.Image.Bounds()
	if b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("expected 64x48 frame, got %dx%d", b.Dx(), b.Dy())
	}
	if frame.Transform != a.Rig.Planar.Transform() {
		t.Error("expected frame transform to be the planar camera's")
	}
}

func TestKeyCTogglesCamera(t *testing.T) {
	a, _ := testApp(t, nil)
	ctx := context.Background()

	a.Push(camera.Event{Kind: camera.EventKeyDown, Rune: 'c'})
	frame, err := a.Tick(ctx, 0)
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if frame.Mode != camera.ModeFlying {
		t.Errorf("expected flying after C, got %v", frame.Mode)
	}

	a.Push(camera.Event{Kind: camera.EventKeyDown, Rune: 'c'})
	if frame, _ = a.Tick(ctx, 0); frame.Mode != camera.ModePlanar {
		t.Errorf("expected planar after second C, got %v", frame.Mode)
	}
}

func TestCheatCodeSwitchesCamera(t *testing.T) {
	a, now := testApp(t, nil)
	ctx := context.Background()

	for _, r := range "fly" {
		a.Push(camera.Event{Kind: camera.EventKeyUp, Rune: r})
	}
	if _, err := a.Tick(ctx, 0); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if a.Rig.Mode() != camera.ModeFlying {
		t.Fatalf("expected flying after 'fly', got %v", a.Rig.Mode())
	}

	*now = now.Add(2 * time.Second)
	for _, r := range "cam2d" {
		a.Push(camera.Event{Kind: camera.EventKeyUp, Rune: r})
	}
	a.Tick(ctx, 0)
	if a.Rig.Mode() != camera.ModePlanar {
		t.Errorf("expected planar after 'cam2d', got %v", a.Rig.Mode())
	}
}

func TestEventsReachOnlyActiveCamera(t *testing.T) {
	a, _ := testApp(t, nil)
	before := a.Rig.Flying.MoveSpeed

	a.Push(camera.Event{Kind: camera.EventWheel, X: 32, Y: 24, DY: 100})
	a.Tick(context.Background(), 0)

	if a.Rig.Flying.MoveSpeed != before {
		t.Errorf("expected flying speed unchanged, got %v", a.Rig.Flying.MoveSpeed)
	}
}

func TestRoutePublishedAfterDebounce(t *testing.T) {
	a, now := testApp(t, nil)
	ctx := context.Background()

	frame, _ := a.Tick(ctx, 0)
	if frame.Route != "" {
		t.Errorf("expected no route before the delay, got %q", frame.Route)
	}

	*now = now.Add(400 * time.Millisecond)
	frame, _ = a.Tick(ctx, 0)
	want := a.CenterRoute()
	if frame.Route != want {
		t.Errorf("expected route %q, got %q", want, frame.Route)
	}

	*now = now.Add(400 * time.Millisecond)
	if frame, _ = a.Tick(ctx, 0); frame.Route != "" {
		t.Errorf("expected unchanged route not to be republished, got %q", frame.Route)
	}
}

func TestGoTo(t *testing.T) {
	a, _ := testApp(t, nil)

	if err := a.GoTo("10.0N,20.0E,0.5", false); err != nil {
		t.Fatalf("GoTo failed: %v", err)
	}
	pos, zoom := a.Center()
	g := pos.Geo()
	if gomath.Abs(g.NS-10) > 0.01 || gomath.Abs(g.EW-20) > 0.01 {
		t.Errorf("expected centre near 10N 20E, got %v", g)
	}
	if gomath.Abs(zoom-0.5) > 1e-6 {
		t.Errorf("expected zoom 0.5, got %v", zoom)
	}

	err := a.GoTo("nowhere", false)
	if !errors.Is(err, landblock.ErrRoute) {
		t.Errorf("expected ErrRoute, got %v", err)
	}
}

func TestStartRouteAndInitialMode(t *testing.T) {
	a, _ := testApp(t, func(c *config.Config) {
		c.Route.Start = "5.0S,5.0W,0.25"
		c.Camera.InitialMode = config.ModeFlying
		c.Camera.FlyMoveSpeed = 42
	})

	if a.Rig.Mode() != camera.ModeFlying {
		t.Fatalf("expected flying start, got %v", a.Rig.Mode())
	}
	if a.Rig.Flying.MoveSpeed != 42 {
		t.Errorf("expected speed 42, got %v", a.Rig.Flying.MoveSpeed)
	}
	if h := a.Rig.Flying.Position.Y; h != 4000 {
		t.Errorf("expected height 4000 for zoom 0.25, got %v", h)
	}
	g, zoom := a.Center()
	if gomath.Abs(g.Geo().NS+5) > 0.01 || gomath.Abs(g.Geo().EW+5) > 0.01 {
		t.Errorf("expected centre near 5S 5W, got %v", g.Geo())
	}
	if gomath.Abs(zoom-0.25) > 1e-6 {
		t.Errorf("expected zoom 0.25, got %v", zoom)
	}
}

func TestResizeChangesFrameSize(t *testing.T) {
	a, _ := testApp(t, nil)

	a.Push(camera.Event{Kind: camera.EventResize, Width: 40, Height: 30})
	frame, err := a.Tick(context.Background(), 0)
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if b := frame.Image.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Errorf("expected 40x30 frame, got %dx%d", b.Dx(), b.Dy())
	}
	if a.Rig.Flying.Viewport.X != 40 {
		t.Errorf("expected flying viewport resized too, got %v", a.Rig.Flying.Viewport)
	}
}

func TestCursorCoords(t *testing.T) {
	a, _ := testApp(t, nil)
	if _, ok := a.CursorCoords(); ok {
		t.Error("expected no coords before the pointer moves")
	}

	a.Push(camera.Event{Kind: camera.EventPointerMove, X: 32, Y: 24})
	a.Tick(context.Background(), 0)
	pos, ok := a.CursorCoords()
	if !ok {
		t.Fatal("expected coords under the centre of a fitted map")
	}
	if pos.Cell.LBX() != 127 || pos.Cell.LBY() != 127 {
		t.Errorf("expected landblock 0x7F7F, got %v", pos.Cell)
	}
}

func TestCheatsBuffer(t *testing.T) {
	c := NewCheats()
	fired := 0
	c.Add("IDKFA", func() { fired++ })

	t0 := time.Unix(100, 0)
	for i, r := range "idkfa" {
		c.Key(r, t0.Add(time.Duration(i)*500*time.Millisecond))
	}
	if fired != 1 {
		t.Errorf("expected code to fire once, fired %d times", fired)
	}

	c.Key('x', t0.Add(10*time.Second))
	if got := c.Buffer(); got != "x" {
		t.Errorf("expected buffer reset after pause, got %q", got)
	}

	if c.Key('d', t0.Add(10*time.Second+200*time.Millisecond)) {
		t.Error("expected no code for 'xd'")
	}
}

func TestFPSCounter(t *testing.T) {
	var c fpsCounter
	t0 := time.Unix(0, 0)
	for i := range 32 {
		c.tick(t0.Add(time.Duration(i) * time.Second / 30))
	}
	if gomath.Abs(c.value-31) > 0.5 {
		t.Errorf("expected about 31 fps, got %v", c.value)
	}
}
