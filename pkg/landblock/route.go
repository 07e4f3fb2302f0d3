package landblock

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrRoute is returned by ParseRouteErr for malformed route strings.
var ErrRoute = errors.New("landblock: malformed route")

// Route is a shareable camera location: a coordinate and a planar zoom.
type Route struct {
	Geo  Geo
	Zoom float64
}

// FormatRoute serializes the camera centre. Outdoor positions produce
// "12.345N,67.890E,0.080"; indoor positions produce "#<position>@<zoom>".
func FormatRoute(p Position, zoom float64) string {
	if p.IsOutdoor() {
		return fmt.Sprintf("%s,%.3f", formatGeo(p.Geo(), ","), zoom)
	}
	return "#" + p.String() + "@" + strconv.FormatFloat(zoom, 'f', -1, 64)
}

// ParseRoute parses an outdoor route string. A leading '#' is ignored. The
// string must have exactly three comma separated fields.
func ParseRoute(s string) (Route, bool) {
	r, err := ParseRouteErr(s)
	return r, err == nil
}

// ParseRouteErr is ParseRoute with a descriptive error.
func ParseRouteErr(s string) (Route, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Route{}, fmt.Errorf("%w: expected 3 fields, got %d", ErrRoute, len(parts))
	}

	ns, err := parseAxis(parts[0], 'n', 's')
	if err != nil {
		return Route{}, err
	}
	ew, err := parseAxis(parts[1], 'e', 'w')
	if err != nil {
		return Route{}, err
	}
	zoom, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil {
		return Route{}, fmt.Errorf("%w: zoom %q", ErrRoute, parts[2])
	}
	return Route{Geo: Geo{NS: ns, EW: ew}, Zoom: zoom}, nil
}

// parseAxis reads "<value>[pos|neg]"; the hemisphere letter is optional and
// a negative letter flips the sign.
func parseAxis(field string, pos, neg byte) (float64, error) {
	f := strings.ToLower(strings.TrimSpace(field))
	sign := 1.0
	if n := len(f); n > 0 {
		switch f[n-1] {
		case pos:
			f = f[:n-1]
		case neg:
			f = f[:n-1]
			sign = -1
		}
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: coordinate %q", ErrRoute, field)
	}
	return sign * v, nil
}

// Position returns the outdoor position the route points at.
func (r Route) Position() Position {
	return PositionFromGeo(r.Geo, 0)
}
