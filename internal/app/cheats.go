package app

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/derethmap/internal/logger"
)

// CheatTimeout is the longest pause between keys of one code.
const CheatTimeout = time.Second

// Cheats matches typed key sequences against registered codes. The typed
// buffer starts over when keys are more than Timeout apart, and a code fires
// when the whole buffer equals it.
type Cheats struct {
	Timeout time.Duration

	codes map[string][]func()
	buf   []rune
	last  time.Time
}

// NewCheats returns an empty code table.
func NewCheats() *Cheats {
	return &Cheats{Timeout: CheatTimeout, codes: make(map[string][]func())}
}

// Add registers a handler for a code. Codes are case insensitive and may
// have several handlers.
func (c *Cheats) Add(code string, fn func()) {
	code = strings.ToLower(code)
	c.codes[code] = append(c.codes[code], fn)
}

// Key records a typed key at time now and runs the handlers of a code the
// buffer now spells. It reports whether a code fired.
func (c *Cheats) Key(r rune, now time.Time) bool {
	if now.Sub(c.last) > c.Timeout {
		c.buf = c.buf[:0]
	}
	c.last = now
	c.buf = append(c.buf, []rune(strings.ToLower(string(r)))...)

	word := string(c.buf)
	handlers, ok := c.codes[word]
	if !ok {
		return false
	}
	logger.Debug("code entered", zap.String("code", word))
	for _, fn := range handlers {
		fn()
	}
	return true
}

// Buffer returns the keys typed so far.
func (c *Cheats) Buffer() string { return string(c.buf) }
