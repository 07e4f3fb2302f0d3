// Package viewer runs the interactive map window: SDL input feeds the app,
// and each rendered frame is presented through OpenGL.
package viewer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/derethmap/internal/app"
	"github.com/Faultbox/derethmap/internal/config"
	"github.com/Faultbox/derethmap/internal/engine/camera"
	"github.com/Faultbox/derethmap/internal/engine/debug"
	"github.com/Faultbox/derethmap/internal/engine/input"
	"github.com/Faultbox/derethmap/internal/engine/present"
	"github.com/Faultbox/derethmap/internal/engine/window"
	"github.com/Faultbox/derethmap/internal/logger"
)

// Title is the window title; the current route is appended to it.
const Title = "Dereth Map"

// Viewer is the interactive map window.
type Viewer struct {
	config      *config.Config
	app         *app.App
	window      *window.Window
	presenter   *present.Presenter
	input       *input.Input
	screenshots *debug.Screenshots
}

// New loads the map and opens the window.
func New(cfg *config.Config) (*Viewer, error) {
	logger.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Int("quality", cfg.Graphics.RenderQuality),
	)

	a, err := app.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load map: %w", err)
	}

	v := &Viewer{
		config:      cfg,
		app:         a,
		input:       input.New(),
		screenshots: debug.NewScreenshots("screenshots", "derethmap"),
	}

	v.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// the GL context must exist before the presenter
	w, h := v.window.GetSize()
	v.presenter, err = present.New(w, h)
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create presenter: %w", err)
	}
	v.input.SetSize(w, h)

	// fullscreen windows may not match the configured size
	if aw, ah := a.Size(); aw != w || ah != h {
		a.Push(camera.Event{Kind: camera.EventResize, Width: w, Height: h})
	}

	logger.Info("viewer initialized")
	return v, nil
}

// Run drives the render loop until the window closes or ctx is cancelled.
func (v *Viewer) Run(ctx context.Context) error {
	var frameBudget time.Duration
	if v.config.Graphics.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(v.config.Graphics.FPSLimit)
	}

	lastTime := time.Now()
	logger.Info("starting render loop")

	for ctx.Err() == nil {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if v.input.Update() {
			break
		}
		for _, e := range v.input.Events() {
			if e.Kind == camera.EventResize {
				v.presenter.Resize(e.Width, e.Height)
			}
			v.app.Push(e)
		}

		frame, err := v.app.Tick(ctx, dt)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			return fmt.Errorf("frame error: %w", err)
		}

		rig := v.app.Rig
		v.input.SetRelativeMouse(rig.Mode() == camera.ModeFlying && rig.Flying.LooksRelative())

		v.presenter.Draw(frame.Image)
		v.window.SwapBuffers()

		if frame.Route != "" {
			v.window.SetRoute(frame.Route)
		}
		if v.input.TakeFullscreenToggle() {
			if err := v.window.SetFullscreen(!v.window.Fullscreen()); err != nil {
				logger.Warn("fullscreen toggle failed", zap.Error(err))
			}
		}
		if v.input.TakeScreenshot() {
			if _, err := v.screenshots.Save(frame.Image); err != nil {
				logger.Warn("screenshot failed", zap.Error(err))
			}
		}

		if frameBudget > 0 {
			if spent := time.Since(now); spent < frameBudget {
				time.Sleep(frameBudget - spent)
			}
		}
	}

	if r := v.app.Routes.Last(); r != "" {
		logger.Info("last location", zap.String("route", r))
	}
	return nil
}

// Close releases the window and GL resources.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.presenter != nil {
		v.presenter.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
