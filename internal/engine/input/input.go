// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/hangar/internal/engine/camera"
)

// EventType classifies a processed event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Repeat bool
	Width  int
	Height int
}

// Bindings maps physical keys to camera controls.
type Bindings map[sdl.Scancode]camera.Key

// DefaultBindings returns arrows to turn and space to fly.
func DefaultBindings() Bindings {
	return Bindings{
		sdl.SCANCODE_LEFT:  camera.KeyTurnLeft,
		sdl.SCANCODE_RIGHT: camera.KeyTurnRight,
		sdl.SCANCODE_SPACE: camera.KeyFly,
	}
}

// Camera converts a key event to a camera key event. Repeats, unbound keys
// and non-key events report false.
func (b Bindings) Camera(e Event) (camera.Key, camera.Action, bool) {
	if e.Repeat {
		return 0, 0, false
	}
	var action camera.Action
	switch e.Type {
	case EventKeyDown:
		action = camera.Press
	case EventKeyUp:
		action = camera.Release
	default:
		return 0, 0, false
	}
	key, ok := b[e.Key]
	return key, action, ok
}

// Input handles all input processing.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if i.handle(event) {
			quit = true
		}
	}
	return quit
}

// handle records one SDL event and reports whether it asks to quit.
func (i *Input) handle(event sdl.Event) bool {
	e, ok := translate(event)
	if !ok {
		return false
	}
	i.events = append(i.events, e)
	return e.Type == EventQuit || (e.Type == EventKeyDown && e.Key == sdl.SCANCODE_ESCAPE)
}

// translate converts the SDL events the viewer cares about.
func translate(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return Event{
				Type:   EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			}, true
		}

	case *sdl.KeyboardEvent:
		ev := Event{
			Key:    e.Keysym.Scancode,
			Repeat: e.Repeat != 0,
		}
		switch e.Type {
		case sdl.KEYDOWN:
			ev.Type = EventKeyDown
		case sdl.KEYUP:
			ev.Type = EventKeyUp
		default:
			return Event{}, false
		}
		return ev, true
	}
	return Event{}, false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}
