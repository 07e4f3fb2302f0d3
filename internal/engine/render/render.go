// Package render rasterizes the landscape on the CPU for either camera. Each
// output pixel is traced back to a landblock-space point, its cell's blend
// plan is computed and the compositor shades it.
package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	gomath "math"
	"runtime"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/derethmap/internal/engine/camera"
	"github.com/Faultbox/derethmap/internal/engine/lighting"
	"github.com/Faultbox/derethmap/internal/engine/picking"
	"github.com/Faultbox/derethmap/internal/engine/terrain"
	"github.com/Faultbox/derethmap/pkg/landblock"
	"github.com/Faultbox/derethmap/pkg/math"
	"github.com/Faultbox/derethmap/pkg/splat"
)

// ClearColor fills pixels that miss the map.
var ClearColor = color.RGBA{R: 29, G: 34, B: 60, A: 0xFF}

const (
	// MaxQuality is the largest pixel divisor.
	MaxQuality = 4

	defaultMarchSteps = 16
	refineSteps       = 6
	rowsPerBand       = 8
)

// Options tune the renderer.
type Options struct {
	// Quality divides the rendered resolution; the frame is scaled back up.
	Quality int
	// Hillshade darkens slopes facing away from Sun.
	Hillshade bool
	Sun       lighting.Sun
	// MarchSteps is the number of height samples along a flying camera ray.
	MarchSteps int
}

// DefaultOptions renders at full resolution without shading.
func DefaultOptions() Options {
	return Options{
		Quality:    1,
		Sun:        lighting.DefaultSun(),
		MarchSteps: defaultMarchSteps,
	}
}

// Renderer draws frames of a terrain grid.
type Renderer struct {
	Grid       *terrain.Grid
	Heights    *terrain.HeightTable
	Compositor *splat.Compositor
	Options    Options

	low *image.RGBA // reduced resolution buffer
	out *image.RGBA
}

// New creates a renderer. heights may be nil for a flat map.
func New(grid *terrain.Grid, heights *terrain.HeightTable, comp *splat.Compositor) *Renderer {
	return &Renderer{
		Grid:       grid,
		Heights:    heights,
		Compositor: comp,
		Options:    DefaultOptions(),
	}
}

// Render draws the active camera of the rig into a width x height frame. The
// returned image is reused by the next call.
func (r *Renderer) Render(ctx context.Context, rig *camera.Rig, width, height int) (*image.RGBA, error) {
	if rig.Mode() == camera.ModeFlying {
		return r.RenderFlying(ctx, rig.Flying, width, height)
	}
	return r.RenderPlanar(ctx, rig.Planar, width, height)
}

// RenderPlanar draws the top-down camera.
func (r *Renderer) RenderPlanar(ctx context.Context, cam *camera.Planar, width, height int) (*image.RGBA, error) {
	zoom := float64(cam.Zoom())
	return r.render(ctx, width, height, func(plans planCache, sx, sy float32) color.RGBA {
		w := cam.ScreenToWorld(math.Vec2{X: sx, Y: sy})
		return r.shadePoint(plans, float64(w.X), landblock.MapSize-float64(w.Y), zoom)
	})
}

// RenderFlying draws the perspective camera by marching each pixel's ray
// down to the terrain surface.
func (r *Renderer) RenderFlying(ctx context.Context, cam *camera.Flying, width, height int) (*image.RGBA, error) {
	// pixels per world unit at distance 1
	focal := float64(cam.Viewport.Y) / (2 * gomath.Tan(float64(cam.FOV())*gomath.Pi/360))
	return r.render(ctx, width, height, func(plans planCache, sx, sy float32) color.RGBA {
		origin, dir := cam.ScreenToWorldRay(sx, sy)
		hit, dist, ok := r.intersect(origin, dir)
		if !ok {
			return ClearColor
		}
		return r.shadePoint(plans, float64(hit.X), landblock.MapSize-float64(hit.Z), focal/max(dist, 1e-3))
	})
}

type pixelFunc func(plans planCache, sx, sy float32) color.RGBA

// planCache memoizes blend plans by pcode within one row band.
type planCache map[uint32]splat.BlendPlan

func (c planCache) plan(code uint32) splat.BlendPlan {
	p, ok := c[code]
	if !ok {
		p = splat.Plan(code)
		c[code] = p
	}
	return p
}

func (r *Renderer) render(ctx context.Context, width, height int, shade pixelFunc) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render: invalid frame size %dx%d", width, height)
	}
	q := clampQuality(r.Options.Quality)
	lw, lh := (width+q-1)/q, (height+q-1)/q
	r.low = ensure(r.low, lw, lh)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for start := 0; start < lh; start += rowsPerBand {
		end := min(start+rowsPerBand, lh)
		g.Go(func() error {
			plans := make(planCache)
			for y := start; y < end; y++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				sy := (float32(y) + 0.5) * float32(q)
				for x := range lw {
					sx := (float32(x) + 0.5) * float32(q)
					r.low.SetRGBA(x, y, shade(plans, sx, sy))
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if q == 1 {
		return r.low, nil
	}
	r.out = ensure(r.out, width, height)
	draw.NearestNeighbor.Scale(r.out, r.out.Bounds(), r.low, image.Rect(0, 0, lw, lh), draw.Src, nil)
	return r.out, nil
}

// shadePoint colours a landblock-space point (y north) seen at zoom pixels
// per world unit.
func (r *Renderer) shadePoint(plans planCache, x, y, zoom float64) color.RGBA {
	if !terrain.InMap(x, y) {
		return ClearColor
	}
	cx, cy, u, v := terrain.CellAt(x, y)
	frag := splat.Fragment{
		Plan: plans.plan(r.Grid.CellCode(cx, cy)),
		U:    u,
		V:    v,
		X:    x,
		Y:    y,
		Zoom: zoom,
	}
	c := r.Compositor.Pixel(&frag)
	if r.Options.Hillshade && r.Heights != nil {
		if _, line := r.Compositor.GridLine(x, y, zoom); !line {
			c = c.Scale(r.Options.Sun.Shade(r.Grid.NormalAt(r.Heights, x, y)))
		}
	}
	return c.RGBA()
}

// intersect finds where a flying camera ray meets the terrain. Positions use
// the flying layout (x, height, flipped y). The ray is clipped to the map's
// height range, marched downwards and the crossing refined by bisection.
func (r *Renderer) intersect(origin, dir math.Vec3) (math.Vec3, float64, bool) {
	if dir.Y >= 0 {
		return math.Vec3{}, 0, false
	}
	ray := picking.Ray{Origin: origin, Direction: dir}
	if r.Heights == nil {
		t, ok := ray.IntersectPlaneY(0)
		if !ok || t <= 0 {
			return math.Vec3{}, 0, false
		}
		return ray.At(t), float64(t), true
	}

	box := picking.AABB{
		Max: math.Vec3{X: camera.MapSize, Y: r.Heights.MaxHeight(), Z: camera.MapSize},
	}
	tTop, tBottom, ok := ray.IntersectAABB(box)
	if !ok || tBottom <= 0 {
		return math.Vec3{}, 0, false
	}
	steps := max(r.Options.MarchSteps, 1)

	above := func(t float32) bool {
		p := ray.At(t)
		return p.Y > r.Grid.HeightAt(r.Heights, float64(p.X), landblock.MapSize-float64(p.Z))
	}
	if above(tBottom) {
		// leaves the map through a side before reaching the ground
		return math.Vec3{}, 0, false
	}

	lo, hi := tTop, tBottom
	prev := tTop
	for i := 1; i <= steps; i++ {
		t := tTop + (tBottom-tTop)*float32(i)/float32(steps)
		if !above(t) {
			lo, hi = prev, t
			break
		}
		prev = t
	}
	for range refineSteps {
		mid := (lo + hi) / 2
		if above(mid) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return ray.At(hi), float64(hi), true
}

// pickMesh snaps an approximate flying hit onto the triangulated surface of
// its landblock.
func (r *Renderer) pickMesh(origin, dir, hit math.Vec3) math.Vec3 {
	lbx := int(hit.X / landblock.BlockSize)
	lby := int((camera.MapSize - hit.Z) / landblock.BlockSize)
	mesh := r.Grid.BuildLandblockMesh(r.Heights, lbx, lby, terrain.LayoutFlying)

	ray := picking.Ray{Origin: origin, Direction: dir}
	if t, ok := ray.IntersectMesh(mesh); ok {
		return ray.At(t)
	}
	return hit
}

func ensure(img *image.RGBA, w, h int) *image.RGBA {
	if img != nil && img.Rect.Dx() == w && img.Rect.Dy() == h {
		return img
	}
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func clampQuality(q int) int {
	return min(max(q, 1), MaxQuality)
}

// ScreenToCoords returns the landblock position under a window pixel for the
// active camera. ok is false when the pixel misses the map.
func (r *Renderer) ScreenToCoords(rig *camera.Rig, sx, sy float32) (landblock.Position, bool) {
	var x, y float64
	if rig.Mode() == camera.ModeFlying {
		origin, dir := rig.Flying.ScreenToWorldRay(sx, sy)
		hit, _, ok := r.intersect(origin, dir)
		if !ok {
			return landblock.Position{}, false
		}
		if r.Heights != nil {
			hit = r.pickMesh(origin, dir, hit)
		}
		x, y = float64(hit.X), landblock.MapSize-float64(hit.Z)
	} else {
		w := rig.Planar.ScreenToWorld(math.Vec2{X: sx, Y: sy})
		x, y = float64(w.X), landblock.MapSize-float64(w.Y)
	}
	if !terrain.InMap(x, y) {
		return landblock.Position{}, false
	}
	return PositionAt(x, y, r.groundHeight(x, y)), true
}

func (r *Renderer) groundHeight(x, y float64) float64 {
	if r.Heights == nil {
		return 0
	}
	return float64(r.Grid.HeightAt(r.Heights, x, y))
}

// PositionAt converts a landblock-space point to a landblock position.
func PositionAt(x, y, z float64) landblock.Position {
	lbx := min(gomath.Floor(x/landblock.BlockSize), landblock.EdgeIndex)
	lby := min(gomath.Floor(y/landblock.BlockSize), landblock.EdgeIndex)
	addr := landblock.NewAddress(uint8(max(lbx, 0)), uint8(max(lby, 0)), 0)
	return landblock.NewPosition(addr, landblock.Offset{
		X: x - max(lbx, 0)*landblock.BlockSize,
		Y: y - max(lby, 0)*landblock.BlockSize,
		Z: z,
	})
}
