// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/tramdock/internal/engine/input/key"
)

// Event types for game use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    key.Key
	Width  int
	Height int
	MouseX int
	MouseY int
}

var scancodes = map[sdl.Scancode]key.Key{
	sdl.SCANCODE_W:      key.W,
	sdl.SCANCODE_A:      key.A,
	sdl.SCANCODE_S:      key.S,
	sdl.SCANCODE_D:      key.D,
	sdl.SCANCODE_SPACE:  key.Space,
	sdl.SCANCODE_C:      key.C,
	sdl.SCANCODE_I:      key.I,
	sdl.SCANCODE_K:      key.K,
	sdl.SCANCODE_Q:      key.Q,
	sdl.SCANCODE_E:      key.E,
	sdl.SCANCODE_R:      key.R,
	sdl.SCANCODE_F:      key.F,
	sdl.SCANCODE_1:      key.One,
	sdl.SCANCODE_2:      key.Two,
	sdl.SCANCODE_3:      key.Three,
	sdl.SCANCODE_4:      key.Four,
	sdl.SCANCODE_7:      key.Seven,
	sdl.SCANCODE_8:      key.Eight,
	sdl.SCANCODE_9:      key.Nine,
	sdl.SCANCODE_F12:    key.F12,
	sdl.SCANCODE_ESCAPE: key.Escape,
}

// Input pumps SDL events into held-key and mouse state.
type Input struct {
	key.State
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// CaptureMouse hides the cursor and reports relative motion, so the mouse
// can turn the camera without hitting the window edge.
func (i *Input) CaptureMouse(on bool) {
	sdl.SetRelativeMouseMode(on)
}

// Update polls SDL events and converts them to game events.
// Returns true if the game should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	i.ResetDelta()

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_RESIZED:
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			case sdl.WINDOWEVENT_FOCUS_LOST:
				i.ReleaseAll()
			}

		case *sdl.KeyboardEvent:
			k, ok := scancodes[e.Keysym.Scancode]
			if !ok || e.Repeat != 0 {
				continue
			}
			if e.Type == sdl.KEYDOWN {
				i.Press(k)
				i.events = append(i.events, Event{Type: EventKeyDown, Key: k})
			} else if e.Type == sdl.KEYUP {
				i.State.Release(k)
				i.events = append(i.events, Event{Type: EventKeyUp, Key: k})
			}

		case *sdl.MouseMotionEvent:
			i.MoveMouse(int(e.X), int(e.Y), int(e.XRel), int(e.YRel))
			i.events = append(i.events, Event{
				Type:   EventMouseMove,
				MouseX: int(e.X),
				MouseY: int(e.Y),
			})
		}
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key went down this frame.
func (i *Input) IsKeyPressed(k key.Key) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == k {
			return true
		}
	}
	return false
}
