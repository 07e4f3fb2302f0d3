package splat

import "testing"

func TestPackCodeLayout(t *testing.T) {
	tests := []struct {
		name string
		c    Corners
		want uint32
	}{
		{"NW terrain", Corners{NW: {Terrain: 1}}, 1 << 15},
		{"NE terrain", Corners{NE: {Terrain: 1}}, 1 << 10},
		{"SE terrain", Corners{SE: {Terrain: 1}}, 1 << 5},
		{"SW terrain", Corners{SW: {Terrain: 1}}, 1},
		{"NW road", Corners{NW: {Road: 1}}, 1 << 20},
		{"NE road", Corners{NE: {Road: 1}}, 1 << 22},
		{"SE road", Corners{SE: {Road: 1}}, 1 << 24},
		{"SW road", Corners{SW: {Road: 3}}, 3 << 26},
		{"all max", Corners{{31, 3}, {31, 3}, {31, 3}, {31, 3}}, 0x0FFFFFFF},
	}
	for _, tt := range tests {
		if got := PackCode(tt.c); got != tt.want {
			t.Errorf("%s: expected 0x%08X, got 0x%08X", tt.name, tt.want, got)
		}
	}
}

func TestPackCodeClamps(t *testing.T) {
	got := UnpackCode(PackCode(Corners{NW: {Terrain: 200, Road: 9}}))
	if got[NW].Terrain != MaxTerrain || got[NW].Road != MaxRoad {
		t.Errorf("expected clamped corner {31 3}, got %+v", got[NW])
	}
	if got[NE] != (CornerCode{}) {
		t.Errorf("expected neighbouring corner untouched, got %+v", got[NE])
	}
}

func TestPackUnpackRoundTrip(t *testing.T) {
	for a := 0; a <= MaxTerrain; a += 3 {
		for b := 0; b <= MaxTerrain; b += 5 {
			for r := 0; r <= MaxRoad; r++ {
				c := Corners{
					NW: {Terrain: uint8(a), Road: uint8(r)},
					NE: {Terrain: uint8(b), Road: uint8(3 - r)},
					SE: {Terrain: uint8(MaxTerrain - a), Road: uint8(r)},
					SW: {Terrain: uint8(MaxTerrain - b), Road: uint8((r + 1) & 3)},
				}
				if got := UnpackCode(PackCode(c)); got != c {
					t.Fatalf("expected %+v, got %+v", c, got)
				}
			}
		}
	}
}

func TestPackSamples(t *testing.T) {
	nw := VertexSample{Terrain: 4, Road: 1, Height: 10}
	ne := VertexSample{Terrain: 5}
	se := VertexSample{Terrain: 6, Road: 2}
	sw := VertexSample{Terrain: 7}
	want := PackCode(Corners{NW: {4, 1}, NE: {5, 0}, SE: {6, 2}, SW: {7, 0}})
	if got := PackSamples(nw, ne, se, sw); got != want {
		t.Errorf("expected 0x%08X, got 0x%08X", want, got)
	}
	if tc := TerrainCodes(want); tc != [4]uint8{4, 5, 6, 7} {
		t.Errorf("expected terrain codes [4 5 6 7], got %v", tc)
	}
}

func TestVertexSampleClamp(t *testing.T) {
	s := VertexSample{Height: 255, Terrain: 64, Road: 7, Scenery: 9}.Clamp()
	if s.Height != MaxHeightIndex || s.Terrain != MaxTerrain || s.Road != MaxRoad || s.Scenery != 9 {
		t.Errorf("expected clamped sample, got %+v", s)
	}
}
