package terrain

import (
	"github.com/aquilax/go-perlin"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/derethmap/pkg/splat"
)

const (
	genFrequency      = 0.004
	genZoneFrequency  = 0.0011
	genMoistFrequency = 0.006

	seaLevel  = 48 // height index
	beachBand = 6
	snowLine  = 210
	rockLine  = 170

	// roads run along every 16th landblock line
	roadSpacing = 16 * 8
)

// terrain types used by the generator
const (
	genBarrenRock   = 0
	genGrassland    = 1
	genLushGrass    = 3
	genPackedDirt   = 7
	genSandYellow   = 10
	genSnow         = 15
	genShallowSea   = 18
	genDeepSea      = 20
	genForestFloor  = 21
	genSemiBarren   = 14
	deepSeaLevel    = seaLevel / 2
	roadLane        = 1
	genRowsPerGroup = 64
)

// Generator builds deterministic landscapes from perlin noise. It is used when
// no grid image is configured.
type Generator struct {
	land  *perlin.Perlin // medium frequency relief
	zone  *perlin.Perlin // continent scale land and sea
	moist *perlin.Perlin // vegetation
}

// NewGenerator creates a generator for a seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		land:  perlin.NewPerlin(1.5, 2.0, 4, seed),
		zone:  perlin.NewPerlin(2.5, 3.0, 4, seed+1),
		moist: perlin.NewPerlin(2, 3.0, 3, seed+2),
	}
}

// Generate builds a complete grid from a seed.
func Generate(seed int64) *Grid {
	return NewGenerator(seed).Grid()
}

// Grid fills a new grid. Rows are generated in parallel.
func (gen *Generator) Grid() *Grid {
	g := NewGrid()

	var eg errgroup.Group
	for start := 0; start < VerticesPerSide; start += genRowsPerGroup {
		end := min(start+genRowsPerGroup, VerticesPerSide)
		eg.Go(func() error {
			for vy := start; vy < end; vy++ {
				for vx := range VerticesPerSide {
					g.Set(vx, vy, gen.Sample(vx, vy))
				}
			}
			return nil
		})
	}
	_ = eg.Wait()
	return g
}

// Sample returns the generated sample of one vertex.
func (gen *Generator) Sample(vx, vy int) splat.VertexSample {
	x, y := float64(vx), float64(vy)

	h := gen.land.Noise2D(x*genFrequency, y*genFrequency)
	zone := gen.zone.Noise2D(x*genZoneFrequency, y*genZoneFrequency)*2 + 0.35
	h = (h+0.5)*0.6 + zone*0.4

	height := int(h * 200)
	height = clampIndex(height, splat.MaxHeightIndex)

	s := splat.VertexSample{Height: uint8(height)}
	moist := gen.moist.Noise2D(x*genMoistFrequency, y*genMoistFrequency)

	switch {
	case height < deepSeaLevel:
		s.Terrain = genDeepSea
	case height < seaLevel:
		s.Terrain = genShallowSea
	case height < seaLevel+beachBand:
		s.Terrain = genSandYellow
	case height >= snowLine:
		s.Terrain = genSnow
	case height >= rockLine:
		s.Terrain = genBarrenRock
		if moist > 0.1 {
			s.Terrain = genSemiBarren
		}
	case moist > 0.25:
		s.Terrain = genForestFloor
	case moist > 0:
		s.Terrain = genLushGrass
	default:
		s.Terrain = genGrassland
	}

	if height >= seaLevel+beachBand && height < rockLine && (vx%roadSpacing == 0 || vy%roadSpacing == 0) {
		s.Road = roadLane
		if s.Terrain == genForestFloor {
			s.Terrain = genPackedDirt
		}
	}
	return s
}
