package splat

// Alpha mask atlas layout.
const (
	// corner shape variants occupy slots 0-3
	CornerAlphaSlot     = 0
	CornerAlphaVariants = 4
	// single side/edge shape
	SideAlphaSlot = 4
	// three road families, slots 5-7
	RoadAlphaSlot = 5
	NumRoadMaps   = 3

	NumAlphaSlots = RoadAlphaSlot + NumRoadMaps
)

// Canonical codes drawn by the unrotated alpha masks.
const (
	cornerCanonical = 0x8 // NW
	sideCanonical   = 0x9 // NW|SW, the west side
)

var roadCanonical = [NumRoadMaps]uint8{0x9, 0x8, 0x5}

// maxRotations bounds the rotation search.
const maxRotations = 4

// AlphaPick selects an alpha mask slot and the number of quarter turns it is
// rotated by.
type AlphaPick struct {
	Slot     int
	Rotation int
}

// variantIndex is the deterministic per-cell pseudo-random pick in [0, n).
func variantIndex(pcode uint32, n int) int {
	h := uint32(1379576222)*pcode - uint32(1372186442)
	idx := int(float64(h) * (1.0 / 4294967296.0) * float64(n))
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// rotate turns a 4-bit corner code one quarter: NW -> SW -> SE -> NE -> NW.
func rotate(code uint8) uint8 {
	code *= 2
	if code >= 16 {
		code -= 15
	}
	return code
}

// rotationTo returns how many quarter turns take canonical to code.
func rotationTo(canonical, code uint8) (int, bool) {
	c := canonical
	for r := 0; r < maxRotations; r++ {
		if c == code {
			return r, true
		}
		c = rotate(c)
	}
	return 0, false
}

// IsCorner reports whether code names a single corner.
func IsCorner(code uint8) bool {
	return code == 1 || code == 2 || code == 4 || code == 8
}

// FindTerrainAlpha selects the alpha mask for a terrain overlay covering the
// corners in code. It returns false when no rotation of the mask family
// reaches code; the overlay is then left out.
func FindTerrainAlpha(pcode uint32, code uint8) (AlphaPick, bool) {
	slot, variants, canonical := SideAlphaSlot, 1, uint8(sideCanonical)
	if IsCorner(code) {
		slot, variants, canonical = CornerAlphaSlot, CornerAlphaVariants, cornerCanonical
	}

	r, ok := rotationTo(canonical, code)
	if !ok {
		return AlphaPick{}, false
	}
	return AlphaPick{Slot: slot + variantIndex(pcode, variants), Rotation: r}, true
}

// FindRoadAlpha selects the road alpha mask for code, trying the three road
// families in turn starting from a per-cell pseudo-random family.
func FindRoadAlpha(pcode uint32, code uint8) (AlphaPick, bool) {
	start := variantIndex(pcode, NumRoadMaps)
	for i := 0; i < NumRoadMaps; i++ {
		family := (start + i) % NumRoadMaps
		if r, ok := rotationTo(roadCanonical[family], code); ok {
			return AlphaPick{Slot: RoadAlphaSlot + family, Rotation: r}, true
		}
	}
	return AlphaPick{}, false
}

// RotateUV maps a cell-local coordinate into the unrotated mask's space.
// u grows east and v grows north. Each quarter turn maps (u, v) to (v, 1-u).
func RotateUV(u, v float64, rotation int) (float64, float64) {
	for i := 0; i < rotation&3; i++ {
		u, v = v, 1-u
	}
	return u, v
}
