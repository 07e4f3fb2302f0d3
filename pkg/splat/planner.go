package splat

// RoadTexture is the terrain atlas slot reserved for roads.
const RoadTexture = 31

// Layer is one overlay: a texture drawn through a rotated alpha mask.
type Layer struct {
	Texture  int
	Alpha    int
	Rotation int
}

// BlendPlan describes every layer a cell draws. It is a value type: two
// plans for the same pcode compare equal.
type BlendPlan struct {
	Base      int
	SolidRoad bool

	Terrain    [3]Layer
	NumTerrain int

	Road    [2]Layer
	NumRoad int
}

// TerrainLayers returns the terrain overlays in draw order.
func (p *BlendPlan) TerrainLayers() []Layer { return p.Terrain[:p.NumTerrain] }

// RoadLayers returns the road overlays in draw order.
func (p *BlendPlan) RoadLayers() []Layer { return p.Road[:p.NumRoad] }

// HasOverlays reports whether anything is drawn over the base texture.
func (p *BlendPlan) HasOverlays() bool { return p.NumTerrain > 0 || p.NumRoad > 0 }

func (p *BlendPlan) addTerrain(l Layer) {
	if p.NumTerrain < len(p.Terrain) {
		p.Terrain[p.NumTerrain] = l
		p.NumTerrain++
	}
}

func (p *BlendPlan) addRoad(l Layer) {
	if p.NumRoad < len(p.Road) {
		p.Road[p.NumRoad] = l
		p.NumRoad++
	}
}

// Plan computes the blend plan of a cell from its pcode.
func Plan(pcode uint32) BlendPlan {
	road := ClassifyRoad(pcode)
	if road.Kind == RoadSolid {
		return BlendPlan{Base: RoadTexture, SolidRoad: true}
	}

	var plan BlendPlan
	planTerrain(&plan, pcode)

	for _, code := range road.Codes[:road.N] {
		pick, ok := FindRoadAlpha(pcode, code)
		if !ok {
			continue
		}
		plan.addRoad(Layer{Texture: RoadTexture, Alpha: pick.Slot, Rotation: pick.Rotation})
	}
	return plan
}

// defaultOverlays are drawn over a SW base when all four corners differ.
var defaultOverlays = [3]Corner{SE, NE, NW}

func planTerrain(plan *BlendPlan, pcode uint32) {
	t := TerrainCodes(pcode)

	base, grouped := sharedTerrain(t)
	if !grouped {
		plan.Base = int(t[SW])
		for _, c := range defaultOverlays {
			addTerrainOverlay(plan, pcode, t[c], c.Bit())
		}
		return
	}

	plan.Base = int(base)

	// remaining types in scan order, each with the mask of corners it covers
	var seen [MaxTerrain + 1]bool
	seen[base] = true
	for i, ti := range t {
		if seen[ti] {
			continue
		}
		seen[ti] = true
		var mask uint8
		for j := i; j < len(t); j++ {
			if t[j] == ti {
				mask |= Corner(j).Bit()
			}
		}
		addTerrainOverlay(plan, pcode, ti, mask)
	}
}

// sharedTerrain returns the first terrain type found on two corners, scanning
// pairs in NW, NE, SE, SW order.
func sharedTerrain(t [4]uint8) (uint8, bool) {
	for i := 0; i < len(t); i++ {
		for j := i + 1; j < len(t); j++ {
			if t[i] == t[j] {
				return t[i], true
			}
		}
	}
	return 0, false
}

func addTerrainOverlay(plan *BlendPlan, pcode uint32, terrain, code uint8) {
	pick, ok := FindTerrainAlpha(pcode, code)
	if !ok {
		return
	}
	plan.addTerrain(Layer{Texture: int(terrain), Alpha: pick.Slot, Rotation: pick.Rotation})
}
