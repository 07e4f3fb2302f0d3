package terrain

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/derethmap/pkg/landblock"
)

// split hash constants of the landscape triangulation
const (
	splitSeedA  uint32 = 214614067
	splitMagicA uint32 = 1813693831
	splitSeedB  uint32 = 1109124029
	splitBias   uint32 = 1369149221
	splitScale         = 2.3283064e-10
)

// SplitDirection reports which diagonal cell (cellX, cellY) is cut along,
// given global cell indices (lbx*8+cx, lby*8+cy). True cuts NE to SW, false
// cuts NW to SE. The result is deterministic per cell.
func SplitDirection(cellX, cellY int) bool {
	magicA := uint32(cellX)*splitSeedA + splitMagicA
	magicB := uint32(cellX) * splitSeedB
	dir := uint32(cellY)*magicA - magicB - splitBias
	return float32(dir)*splitScale >= 0.5
}

// corner order of a cell quad in the mesh
const (
	quadNW = iota
	quadNE
	quadSW
	quadSE
)

var (
	// triangles cut NE to SW
	splitIndices = [6]uint32{quadNW, quadNE, quadSW, quadSE, quadSW, quadNE}
	// triangles cut NW to SE
	straightIndices = [6]uint32{quadNW, quadNE, quadSE, quadNW, quadSE, quadSW}
)

// BuildLandblockMesh creates the 8x8 cell mesh of landblock (lbx, lby).
// Positions use the flipped map y (north at 0) so the planar camera shows
// north up, with heights from the table.
func (g *Grid) BuildLandblockMesh(t *HeightTable, lbx, lby int, layout Layout) *Mesh {
	const cells = landblock.CellsPerBlock
	lbx = clampIndex(lbx, landblock.BlocksPerSide-1)
	lby = clampIndex(lby, landblock.BlocksPerSide-1)

	mesh := &Mesh{
		Vertices: make([]Vertex, 0, cells*cells*4),
		Indices:  make([]uint32, 0, cells*cells*6),
		Bounds: Bounds{
			Min: [3]float32{1e10, 1e10, 1e10},
			Max: [3]float32{-1e10, -1e10, -1e10},
		},
	}

	for cx := range cells {
		for cy := range cells {
			gx := lbx*cells + cx
			gy := lby*cells + cy
			code := g.CellCode(gx, gy)

			x0 := float32(gx) * landblock.CellSize
			x1 := x0 + landblock.CellSize
			north := float32(landblock.MapSize) - float32(gy+1)*landblock.CellSize
			south := north + landblock.CellSize

			quad := [4]Vertex{
				quadNW: {TexCoord: [2]float32{0, 1}},
				quadNE: {TexCoord: [2]float32{1, 1}},
				quadSW: {TexCoord: [2]float32{0, 0}},
				quadSE: {TexCoord: [2]float32{1, 0}},
			}
			quad[quadNW].Position = place(layout, x0, north, g.VertexHeight(t, gx, gy+1))
			quad[quadNE].Position = place(layout, x1, north, g.VertexHeight(t, gx+1, gy+1))
			quad[quadSW].Position = place(layout, x0, south, g.VertexHeight(t, gx, gy))
			quad[quadSE].Position = place(layout, x1, south, g.VertexHeight(t, gx+1, gy))

			order := straightIndices
			if SplitDirection(gx, gy) {
				order = splitIndices
			}

			base := uint32(len(mesh.Vertices))
			for i := range quad {
				quad[i].Code = code
				quad[i].Normal = g.vertexNormal(t, gx+i%2, gy+1-i/2, layout)
				updateBounds(&mesh.Bounds, quad[i].Position)
			}
			mesh.Vertices = append(mesh.Vertices, quad[:]...)
			for _, idx := range order {
				mesh.Indices = append(mesh.Indices, base+idx)
			}
		}
	}
	return mesh
}

// place arranges a flipped-y map position and height per layout.
func place(layout Layout, x, y, h float32) [3]float32 {
	if layout == LayoutFlying {
		return [3]float32{x, h, y}
	}
	return [3]float32{x, y, h}
}

// vertexNormal estimates the surface normal at a grid vertex from central
// differences of its neighbours.
func (g *Grid) vertexNormal(t *HeightTable, vx, vy int, layout Layout) [3]float32 {
	dx := g.VertexHeight(t, vx+1, vy) - g.VertexHeight(t, vx-1, vy)
	dy := g.VertexHeight(t, vx, vy+1) - g.VertexHeight(t, vx, vy-1)
	span := float32(2 * landblock.CellSize)

	// flipped y: north is -y in mesh space
	n := normalize([3]float32{-dx / span, dy / span, 1})
	if layout == LayoutFlying {
		return [3]float32{n[0], n[2], n[1]}
	}
	return n
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := range p {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
}

func normalize(v [3]float32) [3]float32 {
	l := math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if l < 0.0001 {
		return [3]float32{0, 0, 1}
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}
