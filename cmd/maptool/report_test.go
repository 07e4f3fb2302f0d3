package main

import (
	"math"
	"testing"

	"github.com/Faultbox/derethmap/pkg/landblock"
	"github.com/Faultbox/derethmap/pkg/splat"
)

func TestParsePlanArgs(t *testing.T) {
	corners := splat.PackCode(splat.Corners{
		splat.NW: {Terrain: 1},
		splat.NE: {Terrain: 2, Road: 1},
		splat.SE: {Terrain: 2},
		splat.SW: {Terrain: 1},
	})

	tests := []struct {
		name    string
		args    []string
		want    uint32
		wantErr bool
	}{
		{"decimal", []string{"16"}, 16, false},
		{"hex", []string{"0x10"}, 16, false},
		{"corners", []string{"1", "2/1", "2", "1"}, corners, false},
		{"bad pcode", []string{"zz"}, 0, true},
		{"bad road", []string{"1", "2/x", "2", "1"}, 0, true},
		{"wrong count", []string{"1", "2", "3"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePlanArgs(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got 0x%08X", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected 0x%08X, got 0x%08X", tt.want, got)
			}
		})
	}
}

func TestDescribePlanUniform(t *testing.T) {
	pcode := splat.PackCode(splat.Corners{
		splat.NW: {Terrain: 10},
		splat.NE: {Terrain: 10},
		splat.SE: {Terrain: 10},
		splat.SW: {Terrain: 10},
	})
	r := describePlan(pcode)

	if r.Base != 10 || r.BaseName != "SandYellow" {
		t.Errorf("expected base 10 SandYellow, got %d %s", r.Base, r.BaseName)
	}
	if len(r.Terrain) != 0 || len(r.Road) != 0 {
		t.Errorf("expected no overlays, got %d terrain %d road", len(r.Terrain), len(r.Road))
	}
	if r.RoadShape.Kind != "none" || r.RoadShape.Mask != "0000" {
		t.Errorf("expected no road, got %+v", r.RoadShape)
	}
	if len(r.Corners) != 4 || r.Corners[0].Corner != "NW" || r.Corners[3].Corner != "SW" {
		t.Errorf("expected corners in NW..SW order, got %+v", r.Corners)
	}
}

func TestDescribePlanSolidRoad(t *testing.T) {
	var c splat.Corners
	for i := range c {
		c[i] = splat.CornerCode{Terrain: 1, Road: 1}
	}
	r := describePlan(splat.PackCode(c))

	if !r.SolidRoad || r.BaseName != "road" {
		t.Errorf("expected solid road base, got %+v", r)
	}
	if r.RoadShape.Mask != "1111" {
		t.Errorf("expected mask 1111, got %s", r.RoadShape.Mask)
	}
}

func TestDescribePosition(t *testing.T) {
	p := landblock.NewPosition(landblock.NewAddress(0x7F, 0x7F, 0), landblock.Offset{X: 84, Y: 84, Z: 240})
	r := describePosition(p, 0)

	if r.Landblock != "0x7F7F" {
		t.Errorf("expected landblock 0x7F7F, got %s", r.Landblock)
	}
	if r.Cell != "0x7F7F001C" {
		t.Errorf("expected cell 0x7F7F001C, got %s", r.Cell)
	}
	if !r.Outdoor || r.Edge {
		t.Errorf("expected outdoor non-edge position, got outdoor=%v edge=%v", r.Outdoor, r.Edge)
	}
	if r.Route != "" {
		t.Errorf("expected no route without zoom, got %q", r.Route)
	}

	if r = describePosition(p, 0.08); r.Route == "" {
		t.Error("expected a route with zoom")
	}
}

func TestParseCoordsArgs(t *testing.T) {
	p, err := parseCoordsArgs([]string{"1.0N", "2.0E,", "0.5Z"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g := p.Geo()
	if math.Abs(g.NS-1) > 1e-6 || math.Abs(g.EW-2) > 1e-6 {
		t.Errorf("expected 1N 2E, got %v", g)
	}
	if p.Offset.Z != 120 {
		t.Errorf("expected raw height 120, got %v", p.Offset.Z)
	}

	if _, err := parseCoordsArgs([]string{"north"}); err == nil {
		t.Error("expected error for bad coordinates")
	}
}
