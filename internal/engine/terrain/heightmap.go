package terrain

import (
	"math"

	"github.com/Faultbox/derethmap/pkg/landblock"
	"github.com/Faultbox/derethmap/pkg/splat"
)

// HeightTable maps a vertex height index to a world height.
type HeightTable [splat.MaxHeightIndex + 1]float32

// DefaultHeightTable returns the linear table used when the map ships none:
// index i maps to height i*2.
func DefaultHeightTable() *HeightTable {
	var t HeightTable
	for i := range t {
		t[i] = float32(i) * 2
	}
	return &t
}

// Height returns the world height of an index, clamping it to the table.
func (t *HeightTable) Height(idx uint8) float32 {
	if int(idx) >= len(t) {
		idx = uint8(len(t) - 1)
	}
	return t[idx]
}

// VertexHeight returns the world height at grid vertex (vx, vy).
func (g *Grid) VertexHeight(t *HeightTable, vx, vy int) float32 {
	return t.Height(g.At(vx, vy).Height)
}

// HeightAt returns the terrain height at a landblock-space position (y grows
// north) by bilinear interpolation of the surrounding cell corners.
func (g *Grid) HeightAt(t *HeightTable, x, y float64) float32 {
	cx, cy, fracX, fracY := CellAt(x, y)

	sw := g.VertexHeight(t, cx, cy)
	se := g.VertexHeight(t, cx+1, cy)
	nw := g.VertexHeight(t, cx, cy+1)
	ne := g.VertexHeight(t, cx+1, cy+1)

	south := sw*(1-fracX) + se*fracX
	north := nw*(1-fracX) + ne*fracX
	return south*(1-fracY) + north*fracY
}

// NormalAt returns the surface normal at a landblock-space position with z
// pointing up and y pointing north.
func (g *Grid) NormalAt(t *HeightTable, x, y float64) [3]float32 {
	const d = landblock.CellSize / 2
	dx := g.HeightAt(t, x+d, y) - g.HeightAt(t, x-d, y)
	dy := g.HeightAt(t, x, y+d) - g.HeightAt(t, x, y-d)
	return normalize([3]float32{-dx / (2 * d), -dy / (2 * d), 1})
}

// MaxHeight returns the highest value in the table.
func (t *HeightTable) MaxHeight() float32 {
	var hi float32
	for _, h := range t {
		hi = max(hi, h)
	}
	return hi
}

// InMap reports whether a landblock-space point lies on the map.
func InMap(x, y float64) bool {
	return x >= 0 && y >= 0 && x < landblock.MapSize && y < landblock.MapSize
}

func floor(x float64) float64 { return math.Floor(x) }

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
