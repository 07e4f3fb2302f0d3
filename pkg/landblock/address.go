// Package landblock converts between landblock addressing, local offsets and
// the north/south, east/west coordinates shown to players.
//
// The world is a 255x255 grid of landblocks, each 192x192 units and split into
// 8x8 outdoor cells of 24 units.
package landblock

import "fmt"

const (
	// BlockSize is the side length of a landblock in world units.
	BlockSize = 192.0
	// CellSize is the side length of an outdoor cell in world units.
	CellSize = 24.0
	// CellsPerBlock is the number of outdoor cells along one landblock side.
	CellsPerBlock = 8
	// BlocksPerSide is the number of landblocks along one side of the map.
	BlocksPerSide = 255
	// MapSize is the side length of the whole map in world units.
	MapSize = BlocksPerSide * BlockSize

	// EdgeIndex is the first landblock index that marks the map edge.
	EdgeIndex = 0xFE
)

// Address is a packed landcell id: LBX in bits 24-31, LBY in bits 16-23 and
// a 16-bit cell index. Outdoor cells use indices below 0x100.
type Address uint32

// NewAddress packs a landblock pair and cell index.
func NewAddress(lbx, lby uint8, cell uint16) Address {
	return Address(uint32(lbx)<<24 | uint32(lby)<<16 | uint32(cell))
}

// LBX returns the east/west landblock index.
func (a Address) LBX() uint8 { return uint8(a >> 24) }

// LBY returns the north/south landblock index.
func (a Address) LBY() uint8 { return uint8(a >> 16) }

// Cell returns the low 16 bits (cell or indoor id).
func (a Address) Cell() uint16 { return uint16(a) }

// Block returns the address with the cell bits cleared.
func (a Address) Block() Address { return a &^ 0xFFFF }

// IsOutdoor reports whether the address refers to an outdoor cell.
func (a Address) IsOutdoor() bool { return a.Cell() < 0x100 }

// IsEdge reports whether either landblock index lies on the map edge.
func (a Address) IsEdge() bool { return a.LBX() >= EdgeIndex || a.LBY() >= EdgeIndex }

func (a Address) String() string {
	return fmt.Sprintf("0x%08X", uint32(a))
}

// Offset is a position inside a landblock. X and Y are in [0, 192); Z is the
// raw height.
type Offset struct {
	X, Y, Z float64
}

// OutdoorCell returns the 1-based outdoor cell index containing the offset.
func OutdoorCell(off Offset) uint16 {
	cx := clampInt(int(floor(off.X/CellSize)), 0, CellsPerBlock-1)
	cy := clampInt(int(floor(off.Y/CellSize)), 0, CellsPerBlock-1)
	return uint16(cx*CellsPerBlock + cy + 1)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
