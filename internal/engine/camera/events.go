package camera

import "sync"

// EventKind identifies an input event.
type EventKind int

const (
	EventPointerDown EventKind = iota
	EventPointerUp
	EventPointerMove
	EventWheel
	EventPinchStart
	EventPinch
	EventKeyDown
	EventKeyUp
	EventResize
)

func (k EventKind) String() string {
	switch k {
	case EventPointerDown:
		return "pointer-down"
	case EventPointerUp:
		return "pointer-up"
	case EventPointerMove:
		return "pointer-move"
	case EventWheel:
		return "wheel"
	case EventPinchStart:
		return "pinch-start"
	case EventPinch:
		return "pinch"
	case EventKeyDown:
		return "key-down"
	case EventKeyUp:
		return "key-up"
	case EventResize:
		return "resize"
	}
	return "unknown"
}

// Key is a camera control key, independent of the windowing backend.
type Key int

const (
	KeyNone Key = iota
	KeyForward
	KeyBack
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyRollLeft
	KeyRollRight
)

// PrimaryButton is the button that pans and looks.
const PrimaryButton = 1

// Event is one raw input sample.
type Event struct {
	Kind EventKind

	// X and Y are the pointer position in window pixels.
	X, Y float32
	// DX and DY are relative pointer motion for move events and the scroll
	// amount for wheel events (DY > 0 scrolls down).
	DX, DY float32
	// Distance is the spread between two touch points for pinch events.
	Distance float32

	Button int
	Key    Key
	// Rune is the lower-case character typed, if any.
	Rune rune

	Width, Height int
}

// Queue collects events from input callbacks so the render loop can apply
// them in arrival order once per tick. Push is safe from any goroutine.
type Queue struct {
	mu     sync.Mutex
	events []Event
	spare  []Event
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{events: make([]Event, 0, 64), spare: make([]Event, 0, 64)}
}

// Push appends an event.
func (q *Queue) Push(e Event) {
	q.mu.Lock()
	q.events = append(q.events, e)
	q.mu.Unlock()
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Drain calls fn for every pending event in order and empties the queue.
// Events pushed while draining are kept for the next call.
func (q *Queue) Drain(fn func(Event)) int {
	q.mu.Lock()
	batch := q.events
	q.events = q.spare[:0]
	q.mu.Unlock()

	for _, e := range batch {
		fn(e)
	}

	q.mu.Lock()
	q.spare = batch[:0]
	q.mu.Unlock()
	return len(batch)
}
