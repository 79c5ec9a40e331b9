package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/tramdock/pkg/math"
)

const epsilon = 1e-5

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < epsilon
}

func nearVec(a, b math.Vec3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func TestNew(t *testing.T) {
	c := New()
	if c.Position() != (math.Vec3{X: 0, Y: 0, Z: 6}) {
		t.Errorf("position = %v", c.Position())
	}
	if !nearVec(c.Forward(), math.Vec3{X: 0, Y: 0, Z: -1}) {
		t.Errorf("forward = %v, want (0,0,-1)", c.Forward())
	}
	if !nearVec(c.Up(), math.Vec3{X: 0, Y: 1, Z: 0}) {
		t.Errorf("up = %v, want (0,1,0)", c.Up())
	}
	if !nearVec(c.Right(), math.Vec3{X: 1, Y: 0, Z: 0}) {
		t.Errorf("right = %v, want (1,0,0)", c.Right())
	}
	if !nearVec(c.LookAt(), math.Vec3{X: 0, Y: 0, Z: 5}) {
		t.Errorf("lookAt = %v, want (0,0,5)", c.LookAt())
	}
}

func TestBasisOrthogonality(t *testing.T) {
	for _, yaw := range []float32{0, 90, 180, 270} {
		c := New()
		c.AddYaw(yaw)
		c.Update()

		f, u, r := c.Forward(), c.Up(), c.Right()
		if d := f.Dot(u); !near(d, 0) {
			t.Errorf("yaw=%v: forward.up = %f", yaw, d)
		}
		if l := r.Length(); !near(l, 1) {
			t.Errorf("yaw=%v: |right| = %f", yaw, l)
		}
		if !nearVec(r, f.Cross(u)) {
			t.Errorf("yaw=%v: right %v != forward x up %v", yaw, r, f.Cross(u))
		}
	}
}

func TestYawDirections(t *testing.T) {
	tests := []struct {
		yaw  float32
		want math.Vec3
	}{
		{0, math.Vec3{X: 0, Y: 0, Z: -1}},
		{90, math.Vec3{X: 1, Y: 0, Z: 0}},
		{180, math.Vec3{X: 0, Y: 0, Z: 1}},
		{270, math.Vec3{X: -1, Y: 0, Z: 0}},
	}
	for _, tt := range tests {
		c := New()
		c.AddYaw(tt.yaw)
		if got := c.Forward(); !nearVec(got, tt.want) {
			t.Errorf("yaw=%v: forward = %v, want %v", tt.yaw, got, tt.want)
		}
	}
}

func TestAnglesAdditiveAndAbsolute(t *testing.T) {
	c := New()
	c.AddYaw(10)
	c.AddYaw(15)
	c.AddPitch(-5)
	c.AddPitch(-5)
	c.SetRoll(30)
	c.SetRoll(12)

	if c.Yaw() != 25 || c.Pitch() != -10 || c.Roll() != 12 {
		t.Errorf("angles = (%v, %v, %v), want (25, -10, 12)", c.Yaw(), c.Pitch(), c.Roll())
	}
}

func TestLookAtNeverStale(t *testing.T) {
	c := New()
	before := c.LookAt()
	c.AddYaw(90)
	// No explicit Update: the accessor must refresh.
	after := c.LookAt()
	if nearVec(before, after) {
		t.Fatal("lookAt did not follow the yaw change")
	}
	if !nearVec(after, math.Vec3{X: 1, Y: 0, Z: 6}) {
		t.Errorf("lookAt = %v, want (1,0,6)", after)
	}
}

func TestRollTiltsUp(t *testing.T) {
	c := New()
	c.SetRoll(90)
	if !nearVec(c.Up(), math.Vec3{X: -1, Y: 0, Z: 0}) {
		t.Errorf("up = %v, want (-1,0,0)", c.Up())
	}
}

func TestPitchLooksUp(t *testing.T) {
	c := New()
	c.AddPitch(90)
	if !nearVec(c.Forward(), math.Vec3{X: 0, Y: 1, Z: 0}) {
		t.Errorf("forward = %v, want (0,1,0)", c.Forward())
	}
}

func TestMovement(t *testing.T) {
	c := New()
	c.MoveForward(2)
	if !nearVec(c.Position(), math.Vec3{X: 0, Y: 0, Z: 4}) {
		t.Errorf("after forward: %v", c.Position())
	}
	c.MoveBackward(1)
	if !nearVec(c.Position(), math.Vec3{X: 0, Y: 0, Z: 5}) {
		t.Errorf("after backward: %v", c.Position())
	}
	c.MoveRight(3)
	if !nearVec(c.Position(), math.Vec3{X: 3, Y: 0, Z: 5}) {
		t.Errorf("after right: %v", c.Position())
	}
	c.MoveLeft(1)
	if !nearVec(c.Position(), math.Vec3{X: 2, Y: 0, Z: 5}) {
		t.Errorf("after left: %v", c.Position())
	}
}

func TestVerticalMovementIgnoresOrientation(t *testing.T) {
	c := New()
	c.AddPitch(45)
	c.AddYaw(30)
	c.SetRoll(20)

	c.MoveUp(2)
	if !nearVec(c.Position(), math.Vec3{X: 0, Y: 2, Z: 6}) {
		t.Errorf("after up: %v", c.Position())
	}
	c.MoveDown(0.5)
	if !nearVec(c.Position(), math.Vec3{X: 0, Y: 1.5, Z: 6}) {
		t.Errorf("after down: %v", c.Position())
	}
}

func TestReset(t *testing.T) {
	c := New()
	c.SetPosition(math.Vec3{X: 10, Y: 20, Z: 30})
	c.AddYaw(45)
	c.AddPitch(10)
	c.SetRoll(5)

	c.Reset()

	if c.Position() != (math.Vec3{X: 0, Y: 0, Z: 6}) {
		t.Errorf("position = %v", c.Position())
	}
	if c.Yaw() != 0 || c.Pitch() != 0 || c.Roll() != 0 {
		t.Errorf("angles not reset")
	}
	if !nearVec(c.LookAt(), math.Vec3{X: 0, Y: 0, Z: 5}) {
		t.Errorf("lookAt = %v, want (0,0,5)", c.LookAt())
	}
}

func TestViewMatrixMapsEyeToOrigin(t *testing.T) {
	c := New()
	c.SetPosition(math.Vec3{X: 1, Y: 2, Z: 3})
	c.AddYaw(33)
	c.AddPitch(-12)

	view := c.ViewMatrix()
	if p := view.TransformPoint(c.Position()); !nearVec(p, math.Vec3{}) {
		t.Errorf("eye maps to %v, want origin", p)
	}
	// The look-at point lies one unit down -z in view space.
	if p := view.TransformPoint(c.LookAt()); !nearVec(p, math.Vec3{X: 0, Y: 0, Z: -1}) {
		t.Errorf("lookAt maps to %v, want (0,0,-1)", p)
	}
}
