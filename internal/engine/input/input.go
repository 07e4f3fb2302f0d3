// Package input translates SDL2 events into camera events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/derethmap/internal/engine/camera"
)

// wheelNotch is the scroll amount of one wheel click, in the units the
// cameras expect (browser style deltaY).
const wheelNotch = 100

// Bindings maps physical keys to camera controls.
var Bindings = map[sdl.Scancode]camera.Key{
	sdl.SCANCODE_W:      camera.KeyForward,
	sdl.SCANCODE_UP:     camera.KeyForward,
	sdl.SCANCODE_S:      camera.KeyBack,
	sdl.SCANCODE_DOWN:   camera.KeyBack,
	sdl.SCANCODE_A:      camera.KeyLeft,
	sdl.SCANCODE_LEFT:   camera.KeyLeft,
	sdl.SCANCODE_D:      camera.KeyRight,
	sdl.SCANCODE_RIGHT:  camera.KeyRight,
	sdl.SCANCODE_SPACE:  camera.KeyUp,
	sdl.SCANCODE_LSHIFT: camera.KeyDown,
	sdl.SCANCODE_RSHIFT: camera.KeyDown,
	sdl.SCANCODE_Q:      camera.KeyRollLeft,
	sdl.SCANCODE_E:      camera.KeyRollRight,
}

// Input handles all input processing.
type Input struct {
	events []camera.Event

	mouseX, mouseY float32
	// accumulated two finger spread, in pixels
	pinch    float32
	diagonal float32
	relative bool

	screenshot bool
	fullscreen bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events:   make([]camera.Event, 0, 16),
		diagonal: 1,
	}
}

// SetSize records the window size used to scale touch gestures.
func (i *Input) SetSize(width, height int) {
	i.diagonal = float32(width + height)
}

// Update polls SDL events and converts them to camera events.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if i.Translate(event) {
			return true
		}
	}
	return false
}

// Translate converts one SDL event, appending the result to Events. It
// reports whether the event asks to quit.
func (i *Input) Translate(event sdl.Event) bool {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			i.SetSize(int(e.Data1), int(e.Data2))
			i.push(camera.Event{
				Kind:   camera.EventResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			})
		}

	case *sdl.KeyboardEvent:
		switch e.Keysym.Scancode {
		case sdl.SCANCODE_ESCAPE:
			return e.Type == sdl.KEYDOWN
		case sdl.SCANCODE_F12:
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				i.screenshot = true
			}
			return false
		case sdl.SCANCODE_F11:
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				i.fullscreen = true
			}
			return false
		}
		ev := camera.Event{
			Key:  Bindings[e.Keysym.Scancode],
			Rune: keyRune(e.Keysym.Sym),
		}
		if e.Type == sdl.KEYDOWN {
			// auto repeat would toggle cameras while C is held
			if e.Repeat != 0 {
				return false
			}
			ev.Kind = camera.EventKeyDown
		} else {
			ev.Kind = camera.EventKeyUp
		}
		i.push(ev)

	case *sdl.MouseMotionEvent:
		i.mouseX, i.mouseY = float32(e.X), float32(e.Y)
		i.push(camera.Event{
			Kind: camera.EventPointerMove,
			X:    i.mouseX,
			Y:    i.mouseY,
			DX:   float32(e.XRel),
			DY:   float32(e.YRel),
		})

	case *sdl.MouseButtonEvent:
		ev := camera.Event{
			Kind:   camera.EventPointerDown,
			X:      float32(e.X),
			Y:      float32(e.Y),
			Button: int(e.Button),
		}
		if e.Type == sdl.MOUSEBUTTONUP {
			ev.Kind = camera.EventPointerUp
		}
		i.push(ev)

	case *sdl.MouseWheelEvent:
		dy := -float32(e.Y) * wheelNotch
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			dy = -dy
		}
		i.push(camera.Event{
			Kind: camera.EventWheel,
			X:    i.mouseX,
			Y:    i.mouseY,
			DY:   dy,
		})

	case *sdl.TouchFingerEvent:
		if e.Type == sdl.FINGERDOWN {
			i.pinch = i.diagonal
			i.push(camera.Event{Kind: camera.EventPinchStart})
		}

	case *sdl.MultiGestureEvent:
		if e.NumFingers == 2 {
			i.pinch += e.DDist * i.diagonal
			i.push(camera.Event{Kind: camera.EventPinch, Distance: i.pinch})
		}
	}
	return false
}

func (i *Input) push(e camera.Event) {
	i.events = append(i.events, e)
}

// TakeScreenshot reports whether F12 was pressed since the last call.
func (i *Input) TakeScreenshot() bool {
	s := i.screenshot
	i.screenshot = false
	return s
}

// TakeFullscreenToggle reports whether F11 was pressed since the last call.
func (i *Input) TakeFullscreenToggle() bool {
	f := i.fullscreen
	i.fullscreen = false
	return f
}

// Events returns the events from the last Update.
func (i *Input) Events() []camera.Event {
	return i.events
}

// SetRelativeMouse captures the pointer while the flying camera looks
// around and releases it otherwise.
func (i *Input) SetRelativeMouse(on bool) {
	if on == i.relative {
		return
	}
	i.relative = on
	sdl.SetRelativeMouseMode(on)
}

// keyRune returns the lower-case character of letter and digit keys.
func keyRune(sym sdl.Keycode) rune {
	switch {
	case sym >= 'a' && sym <= 'z', sym >= '0' && sym <= '9':
		return rune(sym)
	}
	return 0
}
