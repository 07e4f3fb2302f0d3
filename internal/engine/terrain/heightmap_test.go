package terrain

import (
	"testing"

	"github.com/Faultbox/derethmap/pkg/splat"
)

func TestDefaultHeightTable(t *testing.T) {
	tbl := DefaultHeightTable()
	if got := tbl.Height(0); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
	if got := tbl.Height(100); got != 200 {
		t.Errorf("expected 200, got %v", got)
	}
	if got := tbl.Height(255); got != 508 {
		t.Errorf("expected clamped 508, got %v", got)
	}
	if got := tbl.MaxHeight(); got != 508 {
		t.Errorf("expected max 508, got %v", got)
	}
}

func TestHeightAtBilinear(t *testing.T) {
	g := NewGrid()
	g.Set(0, 0, splat.VertexSample{Height: 0})
	g.Set(1, 0, splat.VertexSample{Height: 10})
	g.Set(0, 1, splat.VertexSample{Height: 20})
	g.Set(1, 1, splat.VertexSample{Height: 30})
	tbl := DefaultHeightTable()

	tests := []struct {
		x, y float64
		want float32
	}{
		{0, 0, 0},
		{24, 0, 20},
		{0, 24 - 1e-9, 40},
		{12, 12, 30},
		{6, 0, 5},
	}
	for _, tt := range tests {
		got := g.HeightAt(tbl, tt.x, tt.y)
		if d := got - tt.want; d > 1e-3 || d < -1e-3 {
			t.Errorf("HeightAt(%v, %v): expected %v, got %v", tt.x, tt.y, tt.want, got)
		}
	}
}

func TestNormalAtFlat(t *testing.T) {
	g := NewGrid()
	n := g.NormalAt(DefaultHeightTable(), 500, 500)
	if n != [3]float32{0, 0, 1} {
		t.Errorf("expected flat normal, got %v", n)
	}
}

func TestInMap(t *testing.T) {
	if !InMap(0, 0) {
		t.Error("expected origin on the map")
	}
	if InMap(-1, 5) || InMap(5, 48960) {
		t.Error("expected points past the edges off the map")
	}
}
