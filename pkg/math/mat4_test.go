package math

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.TransformPoint(Vec3{1, 2, 3})
	want := Vec3{11, 22, 33}
	if got != want {
		t.Errorf("TransformPoint: got %v, want %v", got, want)
	}
}

func TestScaleThenTranslateOrder(t *testing.T) {
	// Scale(2) * Translate(10): the translation is applied first, in unscaled units.
	m := Scale(2, 2, 1).Mul(Translate(10, 0, 0))
	got := m.TransformPoint(Vec3{1, 0, 0})
	if got.X != 22 {
		t.Errorf("expected x=22, got %v", got.X)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(math32.Pi / 2)
	got := m.TransformPoint(Vec3{1, 0, 0})
	if abs(got.X) > 0.001 || abs(got.Y) > 0.001 || abs(got.Z+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", got)
	}
}

func TestRotateZ90(t *testing.T) {
	got := RotateZ(math32.Pi / 2).TransformDirection(Vec3{1, 0, 0})
	if abs(got.X) > 0.001 || abs(got.Y-1) > 0.001 {
		t.Errorf("RotateZ 90: got %v, want (0, 1, 0)", got)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(math32.Pi/4, 1, 0.1, 100)
	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestOrthoScreen(t *testing.T) {
	// Pixel space with y pointing down, as used by the planar camera.
	m := Ortho(0, 800, 600, 0, 0.1, 1000)

	tests := []struct {
		in   Vec3
		want Vec3
	}{
		{Vec3{0, 0, 0}, Vec3{-1, 1, 0}},
		{Vec3{800, 600, 0}, Vec3{1, -1, 0}},
		{Vec3{400, 300, 0}, Vec3{0, 0, 0}},
	}
	for _, tt := range tests {
		got := m.TransformPoint(tt.in)
		if abs(got.X-tt.want.X) > 1e-5 || abs(got.Y-tt.want.Y) > 1e-5 {
			t.Errorf("Ortho(%v): got (%v, %v), want (%v, %v)", tt.in, got.X, got.Y, tt.want.X, tt.want.Y)
		}
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := Vec3{3, 4, 5}
	m := LookAt(eye, Vec3{0, 0, 0}, Vec3{0, 1, 0})
	got := m.TransformPoint(eye)
	if got.Length() > 1e-4 {
		t.Errorf("LookAt should map eye to origin, got %v", got)
	}
	if m[15] != 1 {
		t.Errorf("LookAt [15] should be 1, got %f", m[15])
	}
}

func TestInverse(t *testing.T) {
	m := Scale(2, 4, 1).Mul(Translate(-10, 5, 0))
	round := m.Mul(m.Inverse())
	id := Identity()
	for i := range round {
		if abs(round[i]-id[i]) > 1e-5 {
			t.Errorf("M * M^-1 element %d: got %v, want %v", i, round[i], id[i])
		}
	}
}

func TestInverseSingular(t *testing.T) {
	if got := (Mat4{}).Inverse(); got != Identity() {
		t.Errorf("singular inverse should be identity, got %v", got)
	}
}

func TestUnproject(t *testing.T) {
	proj := Perspective(math32.Pi/3, 1.5, 1, 100)
	view := LookAt(Vec3{0, 0, 10}, Vec3{0, 0, 0}, Vec3{0, 1, 0})
	vp := proj.Mul(view)

	p := Vec3{1, 2, -3}
	ndc := vp.TransformPoint(p)
	got := vp.Unproject(ndc)
	if got.Distance(p) > 1e-2 {
		t.Errorf("Unproject round trip: got %v, want %v", got, p)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
