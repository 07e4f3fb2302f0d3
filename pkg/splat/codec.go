// Package splat computes the per-cell terrain blend of the landscape: which
// base texture, terrain overlays and road overlays a cell draws, with their
// alpha masks and rotations, and how those layers composite into a colour.
//
// Every function here is pure. Plans may be computed for many cells in
// parallel with no shared mutable state.
package splat

// Corner identifies one corner of a cell. Scan order is NW, NE, SE, SW.
type Corner int

const (
	NW Corner = iota
	NE
	SE
	SW
)

// Bit returns the corner's bit in a 4-bit corner mask (NW=8, NE=4, SE=2, SW=1).
func (c Corner) Bit() uint8 { return 8 >> uint(c) }

func (c Corner) String() string {
	switch c {
	case NW:
		return "NW"
	case NE:
		return "NE"
	case SE:
		return "SE"
	case SW:
		return "SW"
	}
	return "?"
}

// Value ranges of a vertex sample.
const (
	MaxHeightIndex = 254
	MaxTerrain     = 31
	MaxRoad        = 3
)

// VertexSample is one entry of the terrain grid.
type VertexSample struct {
	Height  uint8 // height table index
	Terrain uint8
	Road    uint8
	Scenery uint8
}

// Clamp returns the sample with every field forced into its valid range.
func (s VertexSample) Clamp() VertexSample {
	if s.Height > MaxHeightIndex {
		s.Height = MaxHeightIndex
	}
	if s.Terrain > MaxTerrain {
		s.Terrain = MaxTerrain
	}
	if s.Road > MaxRoad {
		s.Road = MaxRoad
	}
	return s
}

// CornerCode is the part of a corner that goes into a pcode.
type CornerCode struct {
	Terrain uint8
	Road    uint8
}

// Corners holds the four corners of a cell indexed by Corner.
type Corners [4]CornerCode

// bit positions inside a pcode
const (
	terrainShiftNW = 15
	terrainShiftNE = 10
	terrainShiftSE = 5
	terrainShiftSW = 0

	roadShiftNW = 20
	roadShiftNE = 22
	roadShiftSE = 24
	roadShiftSW = 26

	terrainMask = 0x1F
	roadMask    = 0x3
)

var (
	terrainShift = [4]uint32{terrainShiftNW, terrainShiftNE, terrainShiftSE, terrainShiftSW}
	roadShift    = [4]uint32{roadShiftNW, roadShiftNE, roadShiftSE, roadShiftSW}
)

// PackCode combines four corners into a pcode. Out of range values are
// clamped.
func PackCode(c Corners) uint32 {
	var pcode uint32
	for i, cc := range c {
		t := uint32(cc.Terrain)
		if t > MaxTerrain {
			t = MaxTerrain
		}
		r := uint32(cc.Road)
		if r > MaxRoad {
			r = MaxRoad
		}
		pcode |= t<<terrainShift[i] | r<<roadShift[i]
	}
	return pcode
}

// PackSamples packs four vertex samples given in NW, NE, SE, SW order.
func PackSamples(nw, ne, se, sw VertexSample) uint32 {
	return PackCode(Corners{
		NW: {Terrain: nw.Terrain, Road: nw.Road},
		NE: {Terrain: ne.Terrain, Road: ne.Road},
		SE: {Terrain: se.Terrain, Road: se.Road},
		SW: {Terrain: sw.Terrain, Road: sw.Road},
	})
}

// UnpackCode decodes a pcode back into its four corners.
func UnpackCode(pcode uint32) Corners {
	var c Corners
	for i := range c {
		c[i] = CornerCode{
			Terrain: uint8(pcode >> terrainShift[i] & terrainMask),
			Road:    uint8(pcode >> roadShift[i] & roadMask),
		}
	}
	return c
}

// TerrainCodes returns the four terrain types of a pcode in scan order.
func TerrainCodes(pcode uint32) [4]uint8 {
	var t [4]uint8
	for i := range t {
		t[i] = uint8(pcode >> terrainShift[i] & terrainMask)
	}
	return t
}
