package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	gomath "math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"

	"github.com/Faultbox/derethmap/internal/engine/camera"
	"github.com/Faultbox/derethmap/pkg/landblock"
)

const (
	hudMargin     = 8
	hudLineHeight = 16
	hudPadding    = 4
)

var (
	hudText   = image.NewUniform(color.RGBA{R: 0xF0, G: 0xF0, B: 0xF0, A: 0xFF})
	hudShadow = image.NewUniform(color.RGBA{A: 0xFF})
	hudPanel  = image.NewUniform(color.RGBA{A: 0x90})
)

// SwitchHint is shown at the bottom of the overlay.
const SwitchHint = "Press 'C' to switch cameras"

// HUD is the text overlay drawn over a frame.
type HUD struct {
	Rig    *camera.Rig
	Cursor *landblock.Position // nil when the pointer is off the map
	Route  string
	FPS    float64
}

// Lines returns the overlay text, one entry per line.
func (h *HUD) Lines() []string {
	var lines []string
	if h.Rig.Mode() == camera.ModeFlying {
		f := h.Rig.Flying
		lines = append(lines,
			fmt.Sprintf("3D Position: (%.1f, %.1f, %.1f)", f.Position.X, f.Position.Y, f.Position.Z),
			fmt.Sprintf("Camera: Flying | Yaw: %.1f° | Pitch: %.1f° | Speed: %.1f",
				degrees(f.Yaw()), degrees(f.Pitch()), f.MoveSpeed))
	} else {
		p := h.Rig.Planar
		coords := "-"
		if h.Cursor != nil {
			coords = h.Cursor.String()
		}
		lines = append(lines,
			"Coords: "+coords,
			fmt.Sprintf("Camera: 2D | Zoom: %.4f | Pos: (%.1f, %.1f)", p.Zoom(), p.Position.X, p.Position.Y))
	}
	if h.Route != "" {
		lines = append(lines, "Route: "+h.Route)
	}
	lines = append(lines, fmt.Sprintf("FPS: %.0f", h.FPS), SwitchHint)
	return lines
}

func degrees(rad float32) float64 {
	return float64(rad) * 180 / gomath.Pi
}

// Draw renders the overlay into the top-left corner of dst.
func (h *HUD) Draw(dst draw.Image) {
	lines := h.Lines()
	face := inconsolata.Regular8x16

	width := 0
	for _, l := range lines {
		width = max(width, font.MeasureString(face, l).Ceil())
	}
	panel := image.Rect(hudMargin-hudPadding, hudMargin-hudPadding,
		hudMargin+width+hudPadding, hudMargin+len(lines)*hudLineHeight+hudPadding)
	draw.Draw(dst, panel, hudPanel, image.Point{}, draw.Over)

	for i, l := range lines {
		baseline := hudMargin + i*hudLineHeight + 12
		(&font.Drawer{
			Dst:  dst,
			Src:  hudShadow,
			Face: face,
			Dot:  fixed.P(hudMargin+1, baseline+1),
		}).DrawString(l)
		(&font.Drawer{
			Dst:  dst,
			Src:  hudText,
			Face: face,
			Dot:  fixed.P(hudMargin, baseline),
		}).DrawString(l)
	}
}
