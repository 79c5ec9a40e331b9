package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
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

func TestAtSet(t *testing.T) {
	m := Translate(5, 10, 15)
	if m.At(0, 3) != 5 || m.At(1, 3) != 10 || m.At(2, 3) != 15 {
		t.Errorf("translation column: got (%f, %f, %f)", m.At(0, 3), m.At(1, 3), m.At(2, 3))
	}
	m.Set(3, 0, 7)
	if m[3] != 7 {
		t.Errorf("Set(3, 0) wrote m[3] = %f", m[3])
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.TransformPoint(Vec3{1, 2, 3})
	want := Vec3{11, 22, 33}
	if got != want {
		t.Errorf("TransformPoint: got %v, want %v", got, want)
	}

	got = Scale(2, 2, 2).TransformPoint(Vec3{1, 2, 3})
	want = Vec3{2, 4, 6}
	if got != want {
		t.Errorf("TransformPoint with scale: got %v, want %v", got, want)
	}
}

func TestRotateMatchesGLRotate(t *testing.T) {
	cases := []struct {
		angle   float32
		x, y, z float32
	}{
		{90, 0, 1, 0},
		{-45, 0, 0, 1},
		{180, 1, 0, 0},
		{30, 1, 1, 0},
	}

	for _, tc := range cases {
		got := Rotate(tc.angle, tc.x, tc.y, tc.z)
		want := mgl32.HomogRotate3D(mgl32.DegToRad(tc.angle), mgl32.Vec3{tc.x, tc.y, tc.z}.Normalize())
		for i := range got {
			if abs(got[i]-want[i]) > 1e-5 {
				t.Errorf("Rotate(%v, %v, %v, %v)[%d] = %f, want %f", tc.angle, tc.x, tc.y, tc.z, i, got[i], want[i])
			}
		}
	}
}

func TestRotateY90(t *testing.T) {
	got := Rotate(90, 0, 1, 0).TransformPoint(Vec3{1, 0, 0})
	if abs(got.X) > 0.001 || abs(got.Y) > 0.001 || abs(got.Z+1) > 0.001 {
		t.Errorf("Rotate 90 about Y: got %v, want (0, 0, -1)", got)
	}
}

func TestRotateZeroAxis(t *testing.T) {
	if m := Rotate(45, 0, 0, 0); m != Identity() {
		t.Errorf("zero axis should give identity, got %v", m)
	}
}

func TestPerspective(t *testing.T) {
	got := Perspective(45, 16.0/9.0, 0.1, 1000)
	want := mgl32.Perspective(mgl32.DegToRad(45), 16.0/9.0, 0.1, 1000)

	for i := range got {
		if abs(got[i]-want[i]) > 1e-4 {
			t.Errorf("Perspective[%d] = %f, want %f", i, got[i], want[i])
		}
	}
	if got[11] != -1 || got[15] != 0 {
		t.Errorf("Perspective w row: [11]=%f [15]=%f", got[11], got[15])
	}
}

func TestLookAt(t *testing.T) {
	eye := Vec3{0, 0, 6}
	center := Vec3{0, 0, 5}
	up := Vec3{0, 1, 0}

	got := LookAt(eye, center, up)
	want := mgl32.LookAtV(mgl32.Vec3{0, 0, 6}, mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 1, 0})
	for i := range got {
		if abs(got[i]-want[i]) > 1e-5 {
			t.Errorf("LookAt[%d] = %f, want %f", i, got[i], want[i])
		}
	}

	// The eye lands on the origin in view space.
	if p := got.TransformPoint(eye); p.Length() > 1e-5 {
		t.Errorf("eye in view space = %v, want origin", p)
	}
}

func TestMulOrder(t *testing.T) {
	// Translate then scale: T * S applied to a point scales first.
	m := Translate(1, 0, 0).Mul(Scale(2, 2, 2))
	got := m.TransformPoint(Vec3{1, 1, 1})
	want := Vec3{3, 2, 2}
	if got != want {
		t.Errorf("(T*S)p = %v, want %v", got, want)
	}
}

func TestIsFinite(t *testing.T) {
	m := Identity()
	if !m.IsFinite() {
		t.Error("identity should be finite")
	}
	m[5] = float32(math.Inf(1))
	if m.IsFinite() {
		t.Error("matrix with +Inf should not be finite")
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func TestTransformDirection(t *testing.T) {
	m := Translate(5, 6, 7).Mul(Rotate(90, 0, 0, 1))
	got := m.TransformDirection(Vec3{1, 0, 0})

	ref := mgl32.Translate3D(5, 6, 7).Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(90)))
	want := ref.Mul4x1(mgl32.Vec4{1, 0, 0, 0})
	if abs(got.X-want[0]) > 1e-5 || abs(got.Y-want[1]) > 1e-5 || abs(got.Z-want[2]) > 1e-5 {
		t.Errorf("direction = %v, want %v", got, want.Vec3())
	}
}
