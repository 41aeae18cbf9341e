// Package input turns window callbacks into typed events that are queued and dispatched
// synchronously on the event loop goroutine.
package input

import (
	"fmt"
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/common"
)

// EventKind identifies the concrete type of an Event.
type EventKind int

const (
	KindButton EventKind = iota
	KindMotion
	KindKey
	KindResize
	KindFrameTick
)

func (k EventKind) String() string {
	switch k {
	case KindButton:
		return "button"
	case KindMotion:
		return "motion"
	case KindKey:
		return "key"
	case KindResize:
		return "resize"
	case KindFrameTick:
		return "frame-tick"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Event is anything that can travel through a Queue.
type Event interface {
	Kind() EventKind
}

// ButtonEvent is a mouse button transition at a screen position (origin top-left, +y down).
type ButtonEvent struct {
	Button common.MouseButton
	Action common.Action
	X, Y   int
}

// MotionEvent is a cursor move, delivered whether or not a button is held.
type MotionEvent struct {
	X, Y int
}

// KeyEvent is a keyboard transition.
type KeyEvent struct {
	Key    common.Key
	Action common.Action
}

// ResizeEvent reports a new framebuffer size in pixels.
type ResizeEvent struct {
	Width, Height int
}

// FrameTick is emitted once per loop iteration before the frame is drawn.
type FrameTick struct {
	DeltaTime time.Duration
}

func (ButtonEvent) Kind() EventKind { return KindButton }
func (MotionEvent) Kind() EventKind { return KindMotion }
func (KeyEvent) Kind() EventKind    { return KindKey }
func (ResizeEvent) Kind() EventKind { return KindResize }
func (FrameTick) Kind() EventKind   { return KindFrameTick }
