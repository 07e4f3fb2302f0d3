package splat

// NumTerrainTypes is the number of terrain types a corner can carry.
const NumTerrainTypes = MaxTerrain + 1

// Palette holds one fallback colour per terrain type.
type Palette [NumTerrainTypes]Color

// RoadColor is drawn for road layers with no road texture loaded.
var RoadColor = RGB(120, 104, 82)

var terrainNames = [NumTerrainTypes]string{
	"BarrenRock", "Grassland", "Ice", "LushGrass",
	"MarshSparseSwamp", "MudRichDirt", "ObsidianPlain", "PackedDirt",
	"PatchyDirt", "PatchyGrassland", "SandYellow", "SandGrey",
	"SandRockStrewn", "SedimentaryRock", "SemiBarrenRock", "Snow",
	"WaterRunning", "WaterStandingFresh", "WaterShallowSea", "WaterShallowStillSea",
	"WaterDeepSea", "ForestFloor", "FauxWaterRunning", "SeaSlime",
	"Argila", "Volcano1", "Volcano2", "BlueIce",
	"Moss", "DarkMoss", "Olthoi", "DesolateLands",
}

var defaultPalette = Palette{
	RGB(110, 104, 96), // BarrenRock
	RGB(90, 130, 58),
	RGB(200, 222, 236),
	RGB(70, 128, 44),
	RGB(92, 104, 62),
	RGB(104, 82, 56),
	RGB(44, 40, 48),
	RGB(132, 108, 76),
	RGB(140, 118, 82),
	RGB(112, 132, 70),
	RGB(214, 194, 128), // SandYellow
	RGB(168, 164, 150),
	RGB(176, 160, 124),
	RGB(122, 110, 96),
	RGB(134, 124, 104),
	RGB(238, 240, 244), // Snow
	RGB(56, 96, 150),
	RGB(60, 98, 128),
	RGB(48, 92, 140),
	RGB(44, 86, 132),
	RGB(26, 52, 104), // WaterDeepSea
	RGB(62, 84, 42),
	RGB(64, 104, 150),
	RGB(70, 96, 80),
	RGB(150, 96, 70),
	RGB(64, 48, 44),
	RGB(96, 52, 40),
	RGB(150, 194, 226),
	RGB(84, 118, 62),
	RGB(50, 74, 44),
	RGB(120, 112, 60),
	RGB(96, 88, 80), // DesolateLands
}

// DefaultPalette returns a copy of the built-in terrain palette.
func DefaultPalette() *Palette {
	p := defaultPalette
	return &p
}

// Color returns the colour of a terrain type, clamping out of range types.
func (p *Palette) Color(terrain int) Color {
	return p[clampTerrain(terrain)]
}

// TerrainName returns the name of a terrain type, clamping out of range
// types.
func TerrainName(terrain int) string {
	return terrainNames[clampTerrain(terrain)]
}

func clampTerrain(t int) int {
	if t < 0 {
		return 0
	}
	if t > MaxTerrain {
		return MaxTerrain
	}
	return t
}
