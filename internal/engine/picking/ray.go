// Package picking intersects rays with planes, boxes and terrain meshes.
package picking

import (
	gomath "math"

	"github.com/Faultbox/derethmap/internal/engine/terrain"
	"github.com/Faultbox/derethmap/pkg/math"
)

// parallelEpsilon is the smallest direction component treated as non-zero.
const parallelEpsilon = 1e-6

// Ray is a half line. Direction need not be normalized; distances returned
// by the intersections are in multiples of Direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// At returns the point at parameter t.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectPlaneY intersects the ray with the horizontal plane y = planeY.
func (r Ray) IntersectPlaneY(planeY float32) (float32, bool) {
	if gomath.Abs(float64(r.Direction.Y)) < parallelEpsilon {
		return 0, false
	}
	t := (planeY - r.Origin.Y) / r.Direction.Y
	if t < 0 {
		return 0, false
	}
	return t, true
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max math.Vec3
}

// NewAABB builds a box from two opposite corners in any order.
func NewAABB(a, b math.Vec3) AABB {
	return AABB{
		Min: math.Vec3{X: min(a.X, b.X), Y: min(a.Y, b.Y), Z: min(a.Z, b.Z)},
		Max: math.Vec3{X: max(a.X, b.X), Y: max(a.Y, b.Y), Z: max(a.Z, b.Z)},
	}
}

// BoundsAABB converts mesh bounds.
func BoundsAABB(b terrain.Bounds) AABB {
	return AABB{
		Min: math.Vec3{X: b.Min[0], Y: b.Min[1], Z: b.Min[2]},
		Max: math.Vec3{X: b.Max[0], Y: b.Max[1], Z: b.Max[2]},
	}
}

// IntersectAABB returns the parameters where the ray enters and leaves box.
// A ray starting inside the box enters at 0.
func (r Ray) IntersectAABB(box AABB) (enter, exit float32, ok bool) {
	enter, exit = 0, float32(gomath.MaxFloat32)

	o := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}
	d := [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float32{box.Min.X, box.Min.Y, box.Min.Z}
	hi := [3]float32{box.Max.X, box.Max.Y, box.Max.Z}

	for i := range 3 {
		if gomath.Abs(float64(d[i])) < parallelEpsilon {
			if o[i] < lo[i] || o[i] > hi[i] {
				return 0, 0, false
			}
			continue
		}
		t1 := (lo[i] - o[i]) / d[i]
		t2 := (hi[i] - o[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		enter = max(enter, t1)
		exit = min(exit, t2)
		if exit < enter {
			return 0, 0, false
		}
	}
	return enter, exit, true
}

// IntersectTriangle intersects the ray with triangle abc from either side
// (Möller-Trumbore).
func (r Ray) IntersectTriangle(a, b, c math.Vec3) (float32, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if gomath.Abs(float64(det)) < parallelEpsilon {
		return 0, false
	}
	inv := 1 / det

	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}

// IntersectMesh returns the nearest triangle hit of a landblock mesh.
func (r Ray) IntersectMesh(m *terrain.Mesh) (float32, bool) {
	if _, _, ok := r.IntersectAABB(BoundsAABB(m.Bounds)); !ok {
		return 0, false
	}

	best, hit := float32(gomath.MaxFloat32), false
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a := vec(m.Vertices[m.Indices[i]].Position)
		b := vec(m.Vertices[m.Indices[i+1]].Position)
		c := vec(m.Vertices[m.Indices[i+2]].Position)
		if t, ok := r.IntersectTriangle(a, b, c); ok && t < best {
			best, hit = t, true
		}
	}
	return best, hit
}

func vec(p [3]float32) math.Vec3 {
	return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
}
