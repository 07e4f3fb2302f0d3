// Package app is the viewer's render loop state: cameras, input queue,
// terrain, renderer and route publishing, independent of any window system.
package app

import (
	"context"
	"fmt"
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/derethmap/internal/config"
	"github.com/Faultbox/derethmap/internal/engine/camera"
	"github.com/Faultbox/derethmap/internal/engine/render"
	"github.com/Faultbox/derethmap/internal/engine/terrain"
	"github.com/Faultbox/derethmap/internal/engine/texture"
	"github.com/Faultbox/derethmap/internal/logger"
	"github.com/Faultbox/derethmap/internal/route"
	"github.com/Faultbox/derethmap/pkg/landblock"
	"github.com/Faultbox/derethmap/pkg/math"
	"github.com/Faultbox/derethmap/pkg/splat"
)

// ScrollDuration is how long GoTo animates the planar camera, in seconds.
const ScrollDuration = 0.6

// referenceHeight converts between flying height and planar zoom.
const referenceHeight = 1000

// Frame is the result of one tick.
type Frame struct {
	Transform math.Mat4
	Mode      camera.Mode
	Image     *image.RGBA
	// Route is the route published during this tick, if any.
	Route string
}

// App holds everything the render loop touches.
type App struct {
	Rig        *camera.Rig
	Queue      *camera.Queue
	Grid       *terrain.Grid
	Heights    *terrain.HeightTable
	Compositor *splat.Compositor
	Renderer   *render.Renderer
	Routes     *route.Publisher

	ShowHUD bool
	// Now is the clock used for cheat codes, route debouncing and FPS.
	Now func() time.Time

	width, height int
	cursor        math.Vec2
	hasCursor     bool

	cheats *Cheats
	fps    fpsCounter
}

// New loads terrain and textures as configured and builds an App.
func New(cfg *config.Config) (*App, error) {
	grid, err := loadGrid(cfg.Map)
	if err != nil {
		return nil, err
	}

	var textures splat.TextureSource
	if cfg.Map.TexturesDir != "" {
		atlas, err := texture.LoadDir(cfg.Map.TexturesDir, splat.RoadTexture+1)
		if err != nil {
			return nil, fmt.Errorf("failed to load textures: %w", err)
		}
		textures = atlas
	}

	var alphas splat.AlphaSource = texture.NewProcedural()
	if cfg.Map.AlphaDir != "" {
		atlas, err := texture.LoadDir(cfg.Map.AlphaDir, splat.NumAlphaSlots)
		if err != nil {
			return nil, fmt.Errorf("failed to load alpha masks: %w", err)
		}
		alphas = atlas
	}

	return NewWithGrid(cfg, grid, textures, alphas), nil
}

func loadGrid(m config.MapConfig) (*terrain.Grid, error) {
	if m.GridPath != "" {
		grid, err := terrain.LoadFile(m.GridPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load grid: %w", err)
		}
		logger.Info("grid loaded", zap.String("path", m.GridPath))
		return grid, nil
	}

	start := time.Now()
	grid := terrain.Generate(m.GenerateSeed)
	logger.Info("grid generated",
		zap.Int64("seed", m.GenerateSeed),
		zap.Duration("took", time.Since(start)))
	return grid, nil
}

// NewWithGrid builds an App around an existing grid. textures and alphas may
// be nil.
func NewWithGrid(cfg *config.Config, grid *terrain.Grid, textures splat.TextureSource, alphas splat.AlphaSource) *App {
	w, h := cfg.Graphics.Width, cfg.Graphics.Height
	a := &App{
		Rig:        camera.NewRig(float32(w), float32(h)),
		Queue:      camera.NewQueue(),
		Grid:       grid,
		Heights:    terrain.DefaultHeightTable(),
		Compositor: splat.NewCompositor(textures, alphas),
		ShowHUD:    cfg.Graphics.ShowHUD,
		Now:        time.Now,
		width:      w,
		height:     h,
	}
	a.Renderer = render.New(grid, a.Heights, a.Compositor)
	a.Routes = route.NewPublisher(cfg.Route.Debounce, nil)
	a.cheats = NewCheats()
	a.registerCheats()
	a.applyConfig(cfg)

	if cfg.Route.Start != "" {
		if err := a.GoTo(cfg.Route.Start, false); err != nil {
			logger.Warn("ignoring start route", zap.Error(err))
		}
	}
	return a
}

func (a *App) applyConfig(cfg *config.Config) {
	c := a.Compositor
	c.TextureRepeat = cfg.Map.TextureRepeat
	c.MinZoomForTextures = cfg.Map.MinZoomForTextures
	c.ShowLandblockLines = cfg.Map.ShowLandblockLines
	c.ShowLandcellLines = cfg.Map.ShowLandcellLines

	a.Renderer.Options.Quality = cfg.Graphics.RenderQuality
	a.Renderer.Options.Hillshade = cfg.Map.Hillshade

	p := a.Rig.Planar
	p.MinZoom = cfg.Camera.MinZoom
	p.MaxZoom = cfg.Camera.MaxZoom
	p.WheelSensitivity = cfg.Camera.WheelSensitivity
	p.PinchSensitivity = cfg.Camera.PinchSensitivity
	p.FitMap()

	f := a.Rig.Flying
	f.MouseSensitivity = cfg.Camera.FlyMouseSensitivity
	f.SetFOV(cfg.Camera.FlyFOV)

	if cfg.Camera.InitialMode == config.ModeFlying {
		a.Rig.Switch(camera.ModeFlying)
		a.Rig.ResetFlying()
	}
	if cfg.Camera.FlyMoveSpeed > 0 {
		f.MoveSpeed = cfg.Camera.FlyMoveSpeed
	}
}

// Size returns the frame size in pixels.
func (a *App) Size() (int, int) { return a.width, a.height }

// Push queues an input event for the next tick.
func (a *App) Push(e camera.Event) { a.Queue.Push(e) }

// Tick applies queued input, advances the active camera by dt seconds,
// publishes the route once it settles and renders a frame.
func (a *App) Tick(ctx context.Context, dt float32) (*Frame, error) {
	now := a.Now()
	a.Queue.Drain(func(e camera.Event) { a.handle(e, now) })
	a.Rig.Update(dt)

	a.Routes.Update(a.CenterRoute(), now)
	published, _ := a.Routes.Poll(now)

	img, err := a.Renderer.Render(ctx, a.Rig, a.width, a.height)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	a.fps.tick(now)

	if a.ShowHUD {
		hud := render.HUD{
			Rig:   a.Rig,
			Route: a.Routes.Last(),
			FPS:   a.fps.value,
		}
		if pos, ok := a.CursorCoords(); ok {
			hud.Cursor = &pos
		}
		hud.Draw(img)
	}

	return &Frame{
		Transform: a.Rig.Transform(),
		Mode:      a.Rig.Mode(),
		Image:     img,
		Route:     published,
	}, nil
}

func (a *App) handle(e camera.Event, now time.Time) {
	switch e.Kind {
	case camera.EventKeyDown:
		if e.Rune == 'c' {
			a.Rig.Toggle()
			logger.Info("camera switched", zap.Stringer("mode", a.Rig.Mode()))
		}
	case camera.EventKeyUp:
		if e.Rune != 0 {
			a.cheats.Key(e.Rune, now)
		}
	case camera.EventPointerMove:
		a.cursor = math.Vec2{X: e.X, Y: e.Y}
		a.hasCursor = true
	case camera.EventResize:
		if e.Width > 0 && e.Height > 0 {
			a.width, a.height = e.Width, e.Height
		}
	}
	a.Rig.HandleEvent(e)
}

func (a *App) registerCheats() {
	a.cheats.Add("idkfa", func() { logger.Info("cheater!") })
	a.cheats.Add("cam2d", func() { a.switchTo(camera.ModePlanar) })
	a.cheats.Add("cam3d", func() { a.switchTo(camera.ModeFlying) })
	a.cheats.Add("fly", func() { a.switchTo(camera.ModeFlying) })
}

func (a *App) switchTo(mode camera.Mode) {
	if a.Rig.Switch(mode) {
		logger.Info("camera switched", zap.Stringer("mode", mode))
	}
}

// Center returns the landblock position at the middle of the view and the
// equivalent planar zoom.
func (a *App) Center() (landblock.Position, float64) {
	if a.Rig.Mode() == camera.ModeFlying {
		f := a.Rig.Flying.Position
		x := float64(math.Clamp(f.X, 0, camera.MapSize))
		y := float64(math.Clamp(camera.MapSize-f.Z, 0, camera.MapSize))
		zoom := referenceHeight / float64(max(f.Y, 1))
		return render.PositionAt(x, y, 0), zoom
	}
	p := a.Rig.Planar
	return p.ScreenToCoords(p.Viewport.Scale(0.5)), float64(p.Zoom())
}

// CenterRoute formats the centre of the view as a route string.
func (a *App) CenterRoute() string {
	pos, zoom := a.Center()
	return landblock.FormatRoute(pos, zoom)
}

// CursorCoords returns the position under the last pointer location.
func (a *App) CursorCoords() (landblock.Position, bool) {
	if !a.hasCursor {
		return landblock.Position{}, false
	}
	return a.Renderer.ScreenToCoords(a.Rig, a.cursor.X, a.cursor.Y)
}

// GoTo moves the view to a route string. The planar camera scrolls there
// when animate is set; the flying camera jumps to a height matching the
// route's zoom.
func (a *App) GoTo(s string, animate bool) error {
	r, err := landblock.ParseRouteErr(s)
	if err != nil {
		return err
	}
	p := a.Rig.Planar
	w := p.WorldOf(r.Position())
	zoom := float32(r.Zoom)

	if a.Rig.Mode() == camera.ModeFlying {
		height := float32(referenceHeight / max(r.Zoom, 1e-3))
		a.Rig.Flying.Position = math.Vec3{X: w.X, Y: max(height, 100), Z: w.Y}
		return nil
	}

	duration := float32(0)
	if animate {
		duration = ScrollDuration
	}
	p.ScrollTo(w, zoom, duration)
	logger.Debug("going to route", zap.String("route", s), zap.Bool("animate", animate))
	return nil
}

// FPS returns the frame rate measured over the last second.
func (a *App) FPS() float64 { return a.fps.value }

type fpsCounter struct {
	frames int
	since  time.Time
	value  float64
}

func (c *fpsCounter) tick(now time.Time) {
	if c.since.IsZero() {
		c.since = now
	}
	c.frames++
	elapsed := now.Sub(c.since)
	if elapsed < time.Second {
		return
	}
	c.value = float64(c.frames) / elapsed.Seconds()
	logger.Debug("fps", zap.Float64("fps", c.value), zap.Int("frames", c.frames))
	c.frames = 0
	c.since = now
}
