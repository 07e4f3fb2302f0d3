package splat

// RoadKind classifies the road content of a cell.
type RoadKind int

const (
	// RoadNone means no corner carries road.
	RoadNone RoadKind = iota
	// RoadOverlay means one or two road overlay codes are drawn over terrain.
	RoadOverlay
	// RoadSolid means every corner carries road and the cell is drawn with
	// the road texture alone.
	RoadSolid
)

func (k RoadKind) String() string {
	switch k {
	case RoadNone:
		return "none"
	case RoadOverlay:
		return "overlay"
	case RoadSolid:
		return "solid"
	}
	return "unknown"
}

// per corner road lanes inside a pcode
const (
	roadLaneNW uint32 = 0x3 << roadShiftNW // 0x00300000
	roadLaneNE uint32 = 0x3 << roadShiftNE // 0x00C00000
	roadLaneSE uint32 = 0x3 << roadShiftSE // 0x03000000
	roadLaneSW uint32 = 0x3 << roadShiftSW // 0x0C000000
)

// RoadShape is the road classification of one cell.
type RoadShape struct {
	Kind  RoadKind
	Mask  uint8
	Codes [2]uint8
	N     int // number of valid entries in Codes
}

// RoadMask returns the 4-bit mask of corners whose road lane is non-zero.
func RoadMask(pcode uint32) uint8 {
	var mask uint8
	if pcode&roadLaneNW != 0 {
		mask |= NW.Bit()
	}
	if pcode&roadLaneNE != 0 {
		mask |= NE.Bit()
	}
	if pcode&roadLaneSE != 0 {
		mask |= SE.Bit()
	}
	if pcode&roadLaneSW != 0 {
		mask |= SW.Bit()
	}
	return mask
}

// ClassifyRoad decides how the road corners of a cell are drawn.
//
// A cell with three road corners draws two overlays whose union is the
// three corners: an L of two sides.
func ClassifyRoad(pcode uint32) RoadShape {
	mask := RoadMask(pcode)
	s := RoadShape{Mask: mask}

	switch mask {
	case 0x0:
		s.Kind = RoadNone
	case 0xF:
		s.Kind = RoadSolid
	case 0xE: // SW missing
		s.Kind, s.Codes, s.N = RoadOverlay, [2]uint8{6, 12}, 2
	case 0xD: // SE missing
		s.Kind, s.Codes, s.N = RoadOverlay, [2]uint8{9, 12}, 2
	case 0xB: // NE missing
		s.Kind, s.Codes, s.N = RoadOverlay, [2]uint8{9, 3}, 2
	case 0x7: // NW missing
		s.Kind, s.Codes, s.N = RoadOverlay, [2]uint8{3, 6}, 2
	default:
		s.Kind, s.Codes[0], s.N = RoadOverlay, mask, 1
	}
	return s
}
