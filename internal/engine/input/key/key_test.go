package key

import "testing"

func TestState_Keys(t *testing.T) {
	var s State
	if s.KeyDown(W) {
		t.Fatal("zero state has W held")
	}

	s.Press(W)
	s.Press(Q)
	if !s.KeyDown(W) || !s.KeyDown(Q) || s.KeyDown(E) {
		t.Errorf("held: w=%v q=%v e=%v", s.KeyDown(W), s.KeyDown(Q), s.KeyDown(E))
	}

	s.Release(W)
	if s.KeyDown(W) {
		t.Error("W still held after Release")
	}

	s.ReleaseAll()
	if s.KeyDown(Q) {
		t.Error("Q still held after ReleaseAll")
	}

	s.Press(Unknown)
	if s.KeyDown(Unknown) {
		t.Error("Unknown can be held")
	}
	if s.KeyDown(Key(250)) {
		t.Error("out of range key reported held")
	}
}

func TestState_Mouse(t *testing.T) {
	var s State
	s.MoveMouse(10, 20, 3, -2)
	s.MoveMouse(12, 18, 2, -2)

	if x, y := s.Mouse(); x != 12 || y != 18 {
		t.Errorf("mouse = %d,%d", x, y)
	}
	if dx, dy := s.MouseDelta(); dx != 5 || dy != -4 {
		t.Errorf("delta = %d,%d, want 5,-4", dx, dy)
	}

	s.ResetDelta()
	if dx, dy := s.MouseDelta(); dx != 0 || dy != 0 {
		t.Errorf("delta after reset = %d,%d", dx, dy)
	}
	if x, _ := s.Mouse(); x != 12 {
		t.Error("reset cleared the absolute position")
	}
}

func TestNames(t *testing.T) {
	for k := Key(1); k < count; k++ {
		if Parse(k.String()) != k {
			t.Errorf("Parse(%q) = %v", k.String(), Parse(k.String()))
		}
	}
	if Parse("nope") != Unknown {
		t.Error("unknown name parsed")
	}
	if Key(99).String() != "unknown" {
		t.Error("out of range key has a name")
	}
}
