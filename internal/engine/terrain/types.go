// Package terrain holds the landscape vertex grid: height index, terrain type,
// road code and scenery for every vertex of the 255x255 landblock map, and the
// per-landblock meshes built from it.
package terrain

// Vertex is one corner of a landblock mesh triangle.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32 // cell-local, (0,0) at the south-west corner
	Code     uint32     // pcode of the owning cell
}

// Mesh holds the triangles of one landblock ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Layout selects how mesh positions are arranged.
type Layout int

const (
	// LayoutPlanar places vertices at (x, y, height) for the top-down camera.
	LayoutPlanar Layout = iota
	// LayoutFlying places vertices at (x, height, y) for the flying camera.
	LayoutFlying
)

func (l Layout) String() string {
	if l == LayoutFlying {
		return "flying"
	}
	return "planar"
}
