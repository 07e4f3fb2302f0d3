package terrain

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/Faultbox/derethmap/pkg/landblock"
	"github.com/Faultbox/derethmap/pkg/splat"
)

const (
	// CellsPerSide is the number of outdoor cells along one side of the map.
	CellsPerSide = landblock.BlocksPerSide * landblock.CellsPerBlock
	// VerticesPerSide is the number of grid vertices along one side.
	VerticesPerSide = CellsPerSide + 1
)

// ErrGridSize is returned when a grid image is not VerticesPerSide square.
var ErrGridSize = errors.New("terrain: grid image has wrong size")

// Grid is the dense vertex grid of the map. Vertex (0, 0) is the south-west
// corner; vx grows east and vy grows north.
type Grid struct {
	samples []splat.VertexSample
}

// NewGrid returns an all-zero grid.
func NewGrid() *Grid {
	return &Grid{samples: make([]splat.VertexSample, VerticesPerSide*VerticesPerSide)}
}

func (g *Grid) index(vx, vy int) int {
	return clampIndex(vy, VerticesPerSide-1)*VerticesPerSide + clampIndex(vx, VerticesPerSide-1)
}

// At returns the sample at vertex (vx, vy). Indices outside the grid are
// clamped to the nearest edge.
func (g *Grid) At(vx, vy int) splat.VertexSample {
	return g.samples[g.index(vx, vy)]
}

// Set stores a sample, clamping both the indices and the sample fields.
func (g *Grid) Set(vx, vy int, s splat.VertexSample) {
	g.samples[g.index(vx, vy)] = s.Clamp()
}

// CellSamples returns the four corner samples of cell (cx, cy).
func (g *Grid) CellSamples(cx, cy int) (nw, ne, se, sw splat.VertexSample) {
	cx = clampIndex(cx, CellsPerSide-1)
	cy = clampIndex(cy, CellsPerSide-1)
	return g.At(cx, cy+1), g.At(cx+1, cy+1), g.At(cx+1, cy), g.At(cx, cy)
}

// CellCode packs the corners of cell (cx, cy) into a pcode.
func (g *Grid) CellCode(cx, cy int) uint32 {
	return splat.PackSamples(g.CellSamples(cx, cy))
}

// CellAt locates a landblock-space point (y grows north) and returns the
// cell holding it plus the cell-local coordinates in [0, 1].
func CellAt(x, y float64) (cx, cy int, u, v float32) {
	fx := x / landblock.CellSize
	fy := y / landblock.CellSize
	cx = clampIndex(int(floor(fx)), CellsPerSide-1)
	cy = clampIndex(int(floor(fy)), CellsPerSide-1)
	u = clampf(float32(fx-float64(cx)), 0, 1)
	v = clampf(float32(fy-float64(cy)), 0, 1)
	return cx, cy, u, v
}

// LoadImage decodes a grid from a PNG, BMP or TIFF image. Channels are
// R=height index, G=terrain type, B=road code, A=scenery. Image row 0 is the
// northern edge of the map.
func LoadImage(r io.Reader) (*Grid, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding grid image: %w", err)
	}

	b := img.Bounds()
	if b.Dx() != VerticesPerSide || b.Dy() != VerticesPerSide {
		return nil, fmt.Errorf("%w: %s image is %dx%d, want %dx%d",
			ErrGridSize, format, b.Dx(), b.Dy(), VerticesPerSide, VerticesPerSide)
	}

	g := NewGrid()
	nrgba, fast := img.(*image.NRGBA)
	for row := range VerticesPerSide {
		vy := VerticesPerSide - 1 - row
		for col := range VerticesPerSide {
			var c color.NRGBA
			if fast {
				c = nrgba.NRGBAAt(b.Min.X+col, b.Min.Y+row)
			} else {
				c = color.NRGBAModel.Convert(img.At(b.Min.X+col, b.Min.Y+row)).(color.NRGBA)
			}
			g.Set(col, vy, splat.VertexSample{Height: c.R, Terrain: c.G, Road: c.B, Scenery: c.A})
		}
	}
	return g, nil
}

// LoadFile reads a grid image from disk.
func LoadFile(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening grid: %w", err)
	}
	defer f.Close()

	g, err := LoadImage(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return g, nil
}

// Image returns the grid in the same channel layout LoadImage reads.
func (g *Grid) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, VerticesPerSide, VerticesPerSide))
	for row := range VerticesPerSide {
		vy := VerticesPerSide - 1 - row
		for col := range VerticesPerSide {
			s := g.At(col, vy)
			img.SetNRGBA(col, row, color.NRGBA{R: s.Height, G: s.Terrain, B: s.Road, A: s.Scenery})
		}
	}
	return img
}

// Encode writes the grid as a PNG.
func (g *Grid) Encode(w io.Writer) error {
	return png.Encode(w, g.Image())
}

// SaveFile writes the grid as a PNG file.
func (g *Grid) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating grid file: %w", err)
	}
	if err := g.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("encoding grid: %w", err)
	}
	return f.Close()
}

func clampIndex(i, hi int) int {
	if i < 0 {
		return 0
	}
	if i > hi {
		return hi
	}
	return i
}
