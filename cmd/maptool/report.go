package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/derethmap/pkg/landblock"
	"github.com/Faultbox/derethmap/pkg/splat"
)

type offsetReport struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type positionReport struct {
	NS        float64      `json:"ns"`
	EW        float64      `json:"ew"`
	Landblock string       `json:"landblock"`
	Cell      string       `json:"cell"`
	Outdoor   bool         `json:"outdoor"`
	Edge      bool         `json:"edge"`
	Offset    offsetReport `json:"offset"`
	Position  string       `json:"position"`
	Route     string       `json:"route,omitempty"`
}

func describePosition(p landblock.Position, zoom float64) positionReport {
	g := p.Geo()
	r := positionReport{
		NS:        g.NS,
		EW:        g.EW,
		Landblock: fmt.Sprintf("0x%04X", uint32(p.Cell.Block())>>16),
		Cell:      p.Cell.String(),
		Outdoor:   p.IsOutdoor(),
		Edge:      p.Cell.IsEdge(),
		Offset:    offsetReport{X: p.Offset.X, Y: p.Offset.Y, Z: p.Offset.Z},
		Position:  p.String(),
	}
	if zoom > 0 {
		r.Route = landblock.FormatRoute(p, zoom)
	}
	return r
}

type cornerReport struct {
	Corner  string `json:"corner"`
	Terrain int    `json:"terrain"`
	Name    string `json:"name"`
	Road    int    `json:"road"`
}

type layerReport struct {
	Texture  int    `json:"texture"`
	Name     string `json:"name"`
	Alpha    int    `json:"alpha"`
	Rotation int    `json:"rotation"`
}

type roadReport struct {
	Kind  string  `json:"kind"`
	Mask  string  `json:"mask"`
	Codes []uint8 `json:"codes"`
}

type planReport struct {
	PCode     string         `json:"pcode"`
	Corners   []cornerReport `json:"corners"`
	Base      int            `json:"base"`
	BaseName  string         `json:"base_name"`
	SolidRoad bool           `json:"solid_road"`
	Terrain   []layerReport  `json:"terrain"`
	Road      []layerReport  `json:"road"`
	RoadShape roadReport     `json:"road_shape"`
}

func describePlan(pcode uint32) planReport {
	plan := splat.Plan(pcode)
	shape := splat.ClassifyRoad(pcode)

	r := planReport{
		PCode:     fmt.Sprintf("0x%08X", pcode),
		Base:      plan.Base,
		BaseName:  textureName(plan.Base),
		SolidRoad: plan.SolidRoad,
		Terrain:   []layerReport{},
		Road:      []layerReport{},
		RoadShape: roadReport{
			Kind:  shape.Kind.String(),
			Mask:  fmt.Sprintf("%04b", shape.Mask),
			Codes: append([]uint8{}, shape.Codes[:shape.N]...),
		},
	}
	for i, c := range splat.UnpackCode(pcode) {
		r.Corners = append(r.Corners, cornerReport{
			Corner:  splat.Corner(i).String(),
			Terrain: int(c.Terrain),
			Name:    splat.TerrainName(int(c.Terrain)),
			Road:    int(c.Road),
		})
	}
	for _, l := range plan.TerrainLayers() {
		r.Terrain = append(r.Terrain, layer(l))
	}
	for _, l := range plan.RoadLayers() {
		r.Road = append(r.Road, layer(l))
	}
	return r
}

func layer(l splat.Layer) layerReport {
	return layerReport{Texture: l.Texture, Name: textureName(l.Texture), Alpha: l.Alpha, Rotation: l.Rotation}
}

func textureName(slot int) string {
	if slot == splat.RoadTexture {
		return "road"
	}
	return splat.TerrainName(slot)
}

// parsePlanArgs reads either one pcode (decimal or 0x hex) or four corners
// in NW NE SE SW order, each "terrain" or "terrain/road".
func parsePlanArgs(args []string) (uint32, error) {
	switch len(args) {
	case 1:
		v, err := strconv.ParseUint(args[0], 0, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid pcode %q", args[0])
		}
		return uint32(v), nil
	case 4:
		var c splat.Corners
		for i, a := range args {
			cc, err := parseCorner(a)
			if err != nil {
				return 0, err
			}
			c[i] = cc
		}
		return splat.PackCode(c), nil
	}
	return 0, fmt.Errorf("expected a pcode or four corners, got %d arguments", len(args))
}

func parseCorner(s string) (splat.CornerCode, error) {
	terrain, road, _ := strings.Cut(s, "/")
	t, err := strconv.ParseUint(terrain, 10, 8)
	if err != nil {
		return splat.CornerCode{}, fmt.Errorf("invalid terrain %q", terrain)
	}
	var r uint64
	if road != "" {
		if r, err = strconv.ParseUint(road, 10, 8); err != nil {
			return splat.CornerCode{}, fmt.Errorf("invalid road %q", road)
		}
	}
	return splat.CornerCode{Terrain: uint8(t), Road: uint8(r)}, nil
}

// parseCoordsArgs joins the arguments so both "12.3N 45.6E" and
// "12.3N, 45.6E, 0.5Z" parse.
func parseCoordsArgs(args []string) (landblock.Position, error) {
	text := strings.Join(args, " ")
	g, z, ok := landblock.ParseCoordinates(text)
	if !ok {
		return landblock.Position{}, fmt.Errorf("invalid coordinates %q", text)
	}
	return landblock.PositionFromGeo(g, z*landblock.ZScale), nil
}
