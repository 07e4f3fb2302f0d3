// Package route publishes the location the viewer is looking at as a
// shareable route string, debounced so a moving camera does not flood the
// listener.
package route

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/derethmap/internal/logger"
	"github.com/Faultbox/derethmap/pkg/landblock"
)

// DefaultDelay is how long a route must stay unchanged before it is
// published.
const DefaultDelay = 300 * time.Millisecond

// Publisher is a trailing debouncer for route strings. It is driven by the
// render loop: Update records the current route each frame and Poll emits it
// once it has been stable for Delay. A route equal to the last published one
// is never emitted again.
type Publisher struct {
	Delay     time.Duration
	OnPublish func(route string)

	pending   string
	changedAt time.Time
	dirty     bool
	last      string
}

// NewPublisher creates a publisher. fn may be nil.
func NewPublisher(delay time.Duration, fn func(string)) *Publisher {
	return &Publisher{Delay: delay, OnPublish: fn}
}

// Update records the route at time now. Repeating the pending route does not
// restart the delay.
func (p *Publisher) Update(route string, now time.Time) {
	if p.dirty && route == p.pending {
		return
	}
	if !p.dirty && route == p.last {
		return
	}
	p.pending = route
	p.changedAt = now
	p.dirty = true
}

// UpdatePosition formats and records a position.
func (p *Publisher) UpdatePosition(pos landblock.Position, zoom float64, now time.Time) {
	p.Update(landblock.FormatRoute(pos, zoom), now)
}

// Poll publishes the pending route if it has been stable for Delay.
func (p *Publisher) Poll(now time.Time) (string, bool) {
	if !p.dirty || now.Sub(p.changedAt) < p.Delay {
		return "", false
	}
	return p.Flush()
}

// Flush publishes the pending route immediately.
func (p *Publisher) Flush() (string, bool) {
	if !p.dirty {
		return "", false
	}
	p.dirty = false
	if p.pending == p.last {
		return "", false
	}
	p.last = p.pending

	logger.Debug("route changed", zap.String("route", p.last))
	if p.OnPublish != nil {
		p.OnPublish(p.last)
	}
	return p.last, true
}

// Last returns the most recently published route.
func (p *Publisher) Last() string { return p.last }

// Pending reports whether a route is waiting for its delay to pass.
func (p *Publisher) Pending() bool { return p.dirty }
