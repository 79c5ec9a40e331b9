// Package key names the keys the scene reacts to and tracks which are held.
// It has no windowing dependency so scene logic can be driven from tests.
package key

// Key is a logical key.
type Key uint8

const (
	Unknown Key = iota
	W
	A
	S
	D
	Space
	C
	I
	K
	Q
	E
	R
	F
	One
	Two
	Three
	Four
	Seven
	Eight
	Nine
	F12
	Escape
	count
)

var names = [count]string{
	Unknown: "unknown",
	W:       "w", A: "a", S: "s", D: "d",
	Space: "space", C: "c",
	I: "i", K: "k", Q: "q", E: "e", R: "r", F: "f",
	One: "1", Two: "2", Three: "3", Four: "4",
	Seven: "7", Eight: "8", Nine: "9",
	F12: "f12", Escape: "escape",
}

func (k Key) String() string {
	if k < count {
		return names[k]
	}
	return names[Unknown]
}

// Parse returns the key named s, or Unknown.
func Parse(s string) Key {
	for k := Key(1); k < count; k++ {
		if names[k] == s {
			return k
		}
	}
	return Unknown
}

// State holds held keys and the mouse. The zero value has nothing held.
type State struct {
	down   [count]bool
	x, y   int
	dx, dy int
}

// Press marks k held.
func (s *State) Press(k Key) {
	if k < count && k != Unknown {
		s.down[k] = true
	}
}

// Release marks k up. Toggle-style controls call it to consume a press.
func (s *State) Release(k Key) {
	if k < count {
		s.down[k] = false
	}
}

// KeyDown reports whether k is held.
func (s *State) KeyDown(k Key) bool {
	return k < count && k != Unknown && s.down[k]
}

// MoveMouse records an absolute position and adds a relative motion.
func (s *State) MoveMouse(x, y, dx, dy int) {
	s.x, s.y = x, y
	s.dx += dx
	s.dy += dy
}

// Mouse returns the last absolute mouse position.
func (s *State) Mouse() (x, y int) { return s.x, s.y }

// MouseDelta returns the motion accumulated since the last ResetDelta.
func (s *State) MouseDelta() (dx, dy int) { return s.dx, s.dy }

// ResetDelta clears accumulated motion, typically once per frame.
func (s *State) ResetDelta() { s.dx, s.dy = 0, 0 }

// ReleaseAll lifts every key, for example when the window loses focus.
func (s *State) ReleaseAll() { s.down = [count]bool{} }
