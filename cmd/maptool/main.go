// maptool is a CLI utility for landscape coordinates, blend plans and
// offline map rendering.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/Faultbox/derethmap/internal/app"
	"github.com/Faultbox/derethmap/internal/config"
	"github.com/Faultbox/derethmap/internal/engine/debug"
	"github.com/Faultbox/derethmap/internal/engine/terrain"
	"github.com/Faultbox/derethmap/internal/logger"
	"github.com/Faultbox/derethmap/pkg/landblock"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "coords":
		cmdCoords(args)
	case "route":
		cmdRoute(args)
	case "plan":
		cmdPlan(args)
	case "render":
		cmdRender(args)
	case "gen":
		cmdGen(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`maptool - landscape map utility

Usage:
  maptool <command> [options]

Commands:
  coords <NS> <EW> [Z]               Resolve a coordinate to a landblock position
  route <route>                      Parse a route string
  plan <pcode | NW NE SE SW>         Show the blend plan of a cell code
  render -o out.png [options]        Render the map offline
  gen -o grid.png [-seed n]          Generate a terrain grid image

Examples:
  maptool coords 42.1N 33.6E
  maptool route 12.300N,45.600E,0.080
  maptool plan 0x00108421
  maptool plan 1 2/1 2 1
  maptool render -o dereth.png -w 2048 -h 2048
  maptool render -o flight.png -mode flying -route 30.0N,20.0E,0.5`)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fail("Error encoding output: %v", err)
	}
	os.Stdout.Write(append(data, '\n'))
}

func cmdCoords(args []string) {
	fs := flag.NewFlagSet("coords", flag.ExitOnError)
	zoom := fs.Float64("zoom", 0, "Planar zoom to include a route in the output")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fail("Usage: maptool coords <NS> <EW> [Z]")
	}
	pos, err := parseCoordsArgs(fs.Args())
	if err != nil {
		fail("Error: %v", err)
	}
	printJSON(describePosition(pos, *zoom))
}

func cmdRoute(args []string) {
	if len(args) != 1 {
		fail("Usage: maptool route <route>")
	}
	r, err := landblock.ParseRouteErr(args[0])
	if err != nil {
		fail("Error: %v", err)
	}
	printJSON(describePosition(r.Position(), r.Zoom))
}

func cmdPlan(args []string) {
	pcode, err := parsePlanArgs(args)
	if err != nil {
		fail("Usage: maptool plan <pcode | NW NE SE SW>\nError: %v", err)
	}
	printJSON(describePlan(pcode))
}

// initLog keeps stdout for JSON: warnings go to stderr, and everything down
// to debug goes to path when it is set.
func initLog(path string) {
	opts := logger.Options{Level: "warn", Console: os.Stderr}
	if path != "" {
		opts.Level = "debug"
		opts.File = logger.DefaultFileConfig(path)
	}
	if err := logger.InitWithOptions(opts); err != nil {
		fail("Logger error: %v", err)
	}
}

func cmdRender(args []string) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	out := fs.String("o", "map.png", "Output PNG")
	configPath := fs.String("config", "", "Base config file; flags below override it")
	route := fs.String("route", "", "View location, e.g. 12.3N,45.6E,0.08")
	width := fs.Int("w", 1024, "Image width")
	height := fs.Int("h", 1024, "Image height")
	mode := fs.String("mode", config.ModePlanar, "Camera mode: planar or flying")
	grid := fs.String("grid", "", "Terrain grid image (generated when empty)")
	seed := fs.Int64("seed", 1, "Seed for a generated grid")
	textures := fs.String("textures", "", "Terrain texture directory")
	alphas := fs.String("alphas", "", "Alpha mask directory")
	quality := fs.Int("quality", 1, "Render quality divisor (1-4)")
	lines := fs.Bool("lines", false, "Draw landblock and landcell lines")
	hillshade := fs.Bool("hillshade", false, "Shade slopes")
	hud := fs.Bool("hud", false, "Draw the text overlay")
	logFile := fs.String("log", "", "Write debug logs to this file")
	fs.Parse(args)

	initLog(*logFile)
	defer logger.Sync()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			fail("Error: %v", err)
		}
		cfg = loaded
	}
	// flags only override what was given on the command line
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if *configPath == "" || set["w"] {
		cfg.Graphics.Width = *width
	}
	if *configPath == "" || set["h"] {
		cfg.Graphics.Height = *height
	}
	if *configPath == "" || set["quality"] {
		cfg.Graphics.RenderQuality = *quality
	}
	if *configPath == "" || set["hud"] {
		cfg.Graphics.ShowHUD = *hud
	}
	if set["mode"] {
		cfg.Camera.InitialMode = *mode
	}
	if set["grid"] {
		cfg.Map.GridPath = *grid
	}
	if set["seed"] {
		cfg.Map.GenerateSeed = *seed
	}
	if set["textures"] {
		cfg.Map.TexturesDir = *textures
	}
	if set["alphas"] {
		cfg.Map.AlphaDir = *alphas
	}
	if set["lines"] {
		cfg.Map.ShowLandblockLines = *lines
		cfg.Map.ShowLandcellLines = *lines
	}
	if set["hillshade"] {
		cfg.Map.Hillshade = *hillshade
	}
	if set["route"] {
		cfg.Route.Start = *route
	}
	if err := cfg.Validate(); err != nil {
		fail("Error: %v", err)
	}

	a, err := app.New(cfg)
	if err != nil {
		fail("Error: %v", err)
	}

	start := time.Now()
	frame, err := a.Tick(context.Background(), 0)
	if err != nil {
		fail("Error rendering: %v", err)
	}
	if err := debug.SavePNG(*out, frame.Image); err != nil {
		fail("Error writing %s: %v", *out, err)
	}

	printJSON(map[string]any{
		"output":  *out,
		"mode":    frame.Mode.String(),
		"route":   a.CenterRoute(),
		"render":  time.Since(start).String(),
		"width":   cfg.Graphics.Width,
		"height":  cfg.Graphics.Height,
		"quality": cfg.Graphics.RenderQuality,
	})
}

func cmdGen(args []string) {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	out := fs.String("o", "grid.png", "Output grid image")
	seed := fs.Int64("seed", 1, "Noise seed")
	logFile := fs.String("log", "", "Write debug logs to this file")
	fs.Parse(args)

	initLog(*logFile)
	defer logger.Sync()

	start := time.Now()
	grid := terrain.Generate(*seed)
	if err := grid.SaveFile(*out); err != nil {
		fail("Error: %v", err)
	}

	printJSON(map[string]any{
		"output":   *out,
		"seed":     *seed,
		"vertices": terrain.VerticesPerSide,
		"took":     time.Since(start).String(),
	})
}
