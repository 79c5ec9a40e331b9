package render

import (
	"errors"
	"testing"

	"github.com/Faultbox/tramdock/internal/engine/geometry"
	"github.com/Faultbox/tramdock/pkg/math"
)

func TestList_Balanced(t *testing.T) {
	var l List
	l.Push()
	l.Translate(1, 2, 3)
	l.Push()
	l.Pop()
	l.Pop()
	if err := l.Err(); err != nil {
		t.Fatalf("balanced list reported %v", err)
	}
	if l.Count(OpPush) != 2 || l.Count(OpPop) != 2 {
		t.Errorf("push/pop = %d/%d", l.Count(OpPush), l.Count(OpPop))
	}
}

func TestList_Unbalanced(t *testing.T) {
	var l List
	l.Push()
	if err := l.Err(); !errors.Is(err, ErrUnbalanced) {
		t.Errorf("expected ErrUnbalanced, got %v", err)
	}

	l.Reset()
	l.Pop()
	if err := l.Err(); !errors.Is(err, ErrStackUnderflow) {
		t.Errorf("expected ErrStackUnderflow, got %v", err)
	}
	if l.Len() != 0 {
		t.Errorf("underflowing pop was recorded")
	}

	l.Reset()
	for range MaxStackDepth + 1 {
		l.Push()
	}
	if err := l.Err(); !errors.Is(err, ErrStackOverflow) {
		t.Errorf("expected ErrStackOverflow, got %v", err)
	}
}

func TestList_DrawSkipsEmpty(t *testing.T) {
	var l List
	l.Draw(nil)
	l.Draw(&geometry.Mesh{})
	if l.Len() != 0 {
		t.Errorf("empty meshes recorded %d commands", l.Len())
	}
	l.Draw(geometry.Disc(1, 4))
	if l.Count(OpDraw) != 1 {
		t.Errorf("disc not recorded")
	}
}

func TestList_Walk(t *testing.T) {
	disc := geometry.Disc(1, 4)

	var l List
	l.LoadMatrix(math.Translate(0, 0, -10))
	l.Push()
	l.Translate(5, 0, 0)
	l.Draw(disc)
	l.Pop()
	l.Draw(disc)

	var origins []math.Vec3
	l.Walk(func(c Command, mv math.Mat4) {
		if c.Op == OpDraw {
			origins = append(origins, mv.TransformPoint(math.Vec3{}))
		}
	})

	want := []math.Vec3{{X: 5, Y: 0, Z: -10}, {X: 0, Y: 0, Z: -10}}
	if len(origins) != len(want) {
		t.Fatalf("got %d draws", len(origins))
	}
	for i := range want {
		if origins[i] != want[i] {
			t.Errorf("draw %d at %v, want %v", i, origins[i], want[i])
		}
	}
}

func TestList_Reset(t *testing.T) {
	var l List
	l.Clear(math.Vec4{0, 0, 0, 1})
	l.Push()
	l.Reset()
	if l.Len() != 0 || l.Err() != nil {
		t.Errorf("reset left len=%d err=%v", l.Len(), l.Err())
	}
}

func TestStrings(t *testing.T) {
	if OpDraw.String() != "draw" || Op(200).String() != "op(200)" {
		t.Errorf("op names: %s %s", OpDraw, Op(200))
	}
	names := map[Filter]string{
		FilterNone:           "None",
		FilterPoint:          "Point Sampling",
		FilterBilinear:       "Bilinear",
		FilterTrilinear:      "Trilinear",
		FilterPointTrilinear: "Point/Trilinear",
	}
	for f, want := range names {
		if f.String() != want {
			t.Errorf("%d.String() = %q, want %q", f, f.String(), want)
		}
	}
}
