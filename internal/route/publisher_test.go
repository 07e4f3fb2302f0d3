package route

import (
	"testing"
	"time"

	"github.com/Faultbox/derethmap/pkg/landblock"
)

func TestPublisherTrailing(t *testing.T) {
	var got []string
	p := NewPublisher(300*time.Millisecond, func(r string) { got = append(got, r) })
	t0 := time.Unix(0, 0)

	p.Update("a", t0)
	p.Update("b", t0.Add(100*time.Millisecond))
	if _, ok := p.Poll(t0.Add(350 * time.Millisecond)); ok {
		t.Error("expected no publish before the delay since the last change")
	}
	// repeating the pending route keeps the original timestamp
	p.Update("b", t0.Add(390*time.Millisecond))
	r, ok := p.Poll(t0.Add(400 * time.Millisecond))
	if !ok || r != "b" {
		t.Errorf("expected b published, got %q %v", r, ok)
	}
	if len(got) != 1 || got[0] != "b" {
		t.Errorf("expected callback with [b], got %v", got)
	}
}

func TestPublisherDistinctOnly(t *testing.T) {
	calls := 0
	p := NewPublisher(10*time.Millisecond, func(string) { calls++ })
	t0 := time.Unix(100, 0)

	p.Update("x", t0)
	p.Poll(t0.Add(time.Second))

	p.Update("x", t0.Add(2*time.Second))
	if p.Pending() {
		t.Error("expected the published route not to become pending again")
	}

	// change and change back before the delay
	p.Update("y", t0.Add(3*time.Second))
	p.Update("x", t0.Add(3*time.Second+time.Millisecond))
	if _, ok := p.Poll(t0.Add(4 * time.Second)); ok {
		t.Error("expected no publish when the route returns to the last one")
	}
	if calls != 1 {
		t.Errorf("expected 1 publish, got %d", calls)
	}
	if p.Last() != "x" {
		t.Errorf("expected last x, got %q", p.Last())
	}
}

func TestPublisherFlush(t *testing.T) {
	p := NewPublisher(time.Hour, nil)
	if _, ok := p.Flush(); ok {
		t.Error("expected nothing to flush")
	}
	p.Update("z", time.Now())
	if r, ok := p.Flush(); !ok || r != "z" {
		t.Errorf("expected z flushed, got %q %v", r, ok)
	}
}

func TestUpdatePosition(t *testing.T) {
	p := NewPublisher(0, nil)
	pos := landblock.PositionFromGeo(landblock.Geo{NS: 12.5, EW: -40.25}, 0)
	now := time.Unix(0, 0)

	p.UpdatePosition(pos, 0.08, now)
	r, ok := p.Poll(now)
	if !ok {
		t.Fatal("expected publish with zero delay")
	}
	want := landblock.FormatRoute(pos, 0.08)
	if r != want {
		t.Errorf("expected %q, got %q", want, r)
	}
}
