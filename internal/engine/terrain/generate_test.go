package terrain

import "testing"

func TestGeneratorDeterministic(t *testing.T) {
	a := NewGenerator(7)
	b := NewGenerator(7)
	for _, p := range [][2]int{{0, 0}, {100, 900}, {2040, 2040}, {777, 1234}} {
		if a.Sample(p[0], p[1]) != b.Sample(p[0], p[1]) {
			t.Errorf("vertex %v: expected equal samples for equal seeds", p)
		}
	}
}

func TestGeneratorTerrainFollowsHeight(t *testing.T) {
	gen := NewGenerator(42)
	for vy := 0; vy < VerticesPerSide; vy += 37 {
		for vx := 0; vx < VerticesPerSide; vx += 37 {
			s := gen.Sample(vx, vy)
			if s.Height < seaLevel && s.Terrain != genShallowSea && s.Terrain != genDeepSea {
				t.Fatalf("vertex (%d, %d): expected water below sea level, got terrain %d", vx, vy, s.Terrain)
			}
			if s.Road != 0 && s.Height < seaLevel {
				t.Fatalf("vertex (%d, %d): expected no road under water", vx, vy)
			}
		}
	}
}

func TestGenerate(t *testing.T) {
	if testing.Short() {
		t.Skip("full grid generation")
	}
	g := Generate(1)
	gen := NewGenerator(1)
	if g.At(500, 600) != gen.Sample(500, 600) {
		t.Error("expected grid to match generator samples")
	}
}
