package landblock

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ZScale converts raw heights to the Z shown in coordinates.
const ZScale = 240.0

// Position is a landcell address plus the local offset inside its landblock.
type Position struct {
	Cell   Address
	Offset Offset
}

// NewPosition builds a Position. When the address carries no cell index the
// outdoor cell is derived from the offset.
func NewPosition(addr Address, off Offset) Position {
	if addr.Cell() == 0 {
		addr |= Address(OutdoorCell(off))
	}
	return Position{Cell: addr, Offset: off}
}

// PositionFromGeo returns the outdoor position at the given coordinate with
// raw height z.
func PositionFromGeo(g Geo, z float64) Position {
	addr, off := FromGeo(g)
	off.Z = z
	return Position{Cell: addr, Offset: off}
}

// Geo returns the position's north/south, east/west coordinate.
func (p Position) Geo() Geo { return ToGeo(p.Cell, p.Offset) }

// NS returns the north/south coordinate.
func (p Position) NS() float64 { return toNS(p.Cell, p.Offset.Y) }

// EW returns the east/west coordinate.
func (p Position) EW() float64 { return toEW(p.Cell, p.Offset.X) }

// IsOutdoor reports whether the position lies in an outdoor cell.
func (p Position) IsOutdoor() bool { return p.Cell.IsOutdoor() }

// String formats the position the way players paste it, for example
// "12.345N, 67.890E, 0.100Z [0x7F7F0001 12.000, 34.000, 24.000]".
func (p Position) String() string {
	return fmt.Sprintf("%s, %.3fZ [0x%08X %.3f, %.3f, %.3f]",
		formatGeo(p.Geo(), ", "), p.Offset.Z/ZScale,
		uint32(p.Cell), p.Offset.X, p.Offset.Y, p.Offset.Z)
}

func formatGeo(g Geo, sep string) string {
	ns, ew := "N", "E"
	if g.NS < 0 {
		ns = "S"
	}
	if g.EW < 0 {
		ew = "W"
	}
	return fmt.Sprintf("%.3f%s%s%.3f%s", math.Abs(g.NS), ns, sep, math.Abs(g.EW), ew)
}

var coordsPattern = regexp.MustCompile(`(?i)^\s*([0-9]{1,3}(?:\.[0-9]+)?)\s*([ns])[,\s]*([0-9]{1,3}(?:\.[0-9]+)?)\s*([ew])\s*(?:,?\s*(-?[0-9]+(?:\.[0-9]+)?)z)?\s*$`)

// ParseCoordinates parses text such as "42.1N, 33.6E" or "12.0S 5.5W, 0.5Z".
// The optional Z value is returned in display units (raw height / ZScale).
func ParseCoordinates(s string) (Geo, float64, bool) {
	m := coordsPattern.FindStringSubmatch(s)
	if m == nil {
		return Geo{}, 0, false
	}
	ns, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Geo{}, 0, false
	}
	ew, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return Geo{}, 0, false
	}
	if strings.EqualFold(m[2], "s") {
		ns = -ns
	}
	if strings.EqualFold(m[4], "w") {
		ew = -ew
	}
	var z float64
	if m[5] != "" {
		if z, err = strconv.ParseFloat(m[5], 64); err != nil {
			return Geo{}, 0, false
		}
	}
	return Geo{NS: ns, EW: ew}, z, true
}
