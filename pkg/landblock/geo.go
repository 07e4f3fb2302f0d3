package landblock

import "math"

// Fixed constants of the coordinate system. Landblock bits are read in place,
// so dividing LBY<<16 by 8192 (or LBX<<24 by 2097152) yields the index in cell
// units (index*8).
const (
	lbyDivisor = 8192.0
	lbxDivisor = 2097152.0
	geoBias    = 1019.5
	geoScale   = 10.0

	// cells along one map side
	mapCells = BlocksPerSide * CellsPerBlock
)

// Geo is a north/south, east/west coordinate in degrees. Positive NS is north
// and positive EW is east.
type Geo struct {
	NS, EW float64
}

// ToGeo converts a landblock address and local offset to a Geo coordinate.
func ToGeo(addr Address, off Offset) Geo {
	return Geo{
		NS: toNS(addr, off.Y),
		EW: toEW(addr, off.X),
	}
}

func toNS(addr Address, y float64) float64 {
	base := float64(uint32(addr)&0x00FF0000) / lbyDivisor
	return ((y/CellSize + base) - geoBias) / geoScale
}

func toEW(addr Address, x float64) float64 {
	base := float64(uint32(addr)&0xFF000000) / lbxDivisor
	return ((x/CellSize + base) - geoBias) / geoScale
}

// FromGeo converts a Geo coordinate to the outdoor address containing it and
// the local X/Y offset inside that landblock. Coordinates off the map clamp to
// the nearest landblock on the map.
func FromGeo(g Geo) (Address, Offset) {
	vx := clampCells(g.EW*geoScale + geoBias)
	vy := clampCells(g.NS*geoScale + geoBias)

	cx := uint32(vx)
	cy := uint32(vy)
	lbx := cx >> 3
	lby := cy >> 3
	cell := (cx&7)<<3 | (cy & 7)

	addr := Address(lbx<<24 | lby<<16 | (cell + 1))
	off := Offset{
		X: fromEW(addr, g.EW),
		Y: fromNS(addr, g.NS),
	}
	return addr, off
}

func fromNS(addr Address, ns float64) float64 {
	base := float64(uint32(addr)&0x00FF0000) / lbyDivisor
	return ((ns*geoScale - base) + geoBias) * CellSize
}

func fromEW(addr Address, ew float64) float64 {
	base := float64(uint32(addr)&0xFF000000) / lbxDivisor
	return ((ew*geoScale - base) + geoBias) * CellSize
}

// clampCells keeps a cell-unit coordinate inside landblocks [0, 0xFE].
func clampCells(v float64) float64 {
	const hi = (EdgeIndex+1)*CellsPerBlock - 1e-9
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}

func floor(v float64) float64 { return math.Floor(v) }
