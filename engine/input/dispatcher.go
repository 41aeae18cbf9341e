package input

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-orbit/common"
)

// ErrReentrantDispatch is returned when Dispatch is called from inside a handler.
var ErrReentrantDispatch = errors.New("input: re-entrant dispatch")

// Dispatcher routes events to the handlers registered for their type. Handlers run
// synchronously, in registration order, on the caller's goroutine. A handler that needs to
// emit a follow-up event should push it to the Queue instead of dispatching it directly.
type Dispatcher interface {
	// OnButton registers a handler for ButtonEvent.
	OnButton(handler func(ButtonEvent) error)

	// OnMotion registers a handler for MotionEvent.
	OnMotion(handler func(MotionEvent) error)

	// OnKey registers a handler for KeyEvent.
	OnKey(handler func(KeyEvent) error)

	// OnResize registers a handler for ResizeEvent.
	OnResize(handler func(ResizeEvent) error)

	// OnFrameTick registers a handler for FrameTick.
	OnFrameTick(handler func(FrameTick) error)

	// Dispatch delivers an event to every handler registered for its type. All handlers run
	// even if one fails.
	//
	// Parameters:
	//   - e: the event to deliver
	//
	// Returns:
	//   - error: the joined handler errors, ErrReentrantDispatch when called from a handler,
	//     or common.ErrInvalidArgument for an unsupported event
	Dispatch(e Event) error
}

type dispatcherImpl struct {
	button []func(ButtonEvent) error
	motion []func(MotionEvent) error
	key    []func(KeyEvent) error
	resize []func(ResizeEvent) error
	tick   []func(FrameTick) error

	dispatching bool
}

var _ Dispatcher = &dispatcherImpl{}

// NewDispatcher creates a Dispatcher with no handlers.
func NewDispatcher() Dispatcher {
	return &dispatcherImpl{}
}

func (d *dispatcherImpl) OnButton(handler func(ButtonEvent) error) {
	d.button = append(d.button, handler)
}

func (d *dispatcherImpl) OnMotion(handler func(MotionEvent) error) {
	d.motion = append(d.motion, handler)
}

func (d *dispatcherImpl) OnKey(handler func(KeyEvent) error) {
	d.key = append(d.key, handler)
}

func (d *dispatcherImpl) OnResize(handler func(ResizeEvent) error) {
	d.resize = append(d.resize, handler)
}

func (d *dispatcherImpl) OnFrameTick(handler func(FrameTick) error) {
	d.tick = append(d.tick, handler)
}

func (d *dispatcherImpl) Dispatch(e Event) error {
	if d.dispatching {
		return fmt.Errorf("dispatch %v event: %w", kindOf(e), ErrReentrantDispatch)
	}
	d.dispatching = true
	defer func() { d.dispatching = false }()

	switch ev := e.(type) {
	case ButtonEvent:
		return run(d.button, ev)
	case MotionEvent:
		return run(d.motion, ev)
	case KeyEvent:
		return run(d.key, ev)
	case ResizeEvent:
		return run(d.resize, ev)
	case FrameTick:
		return run(d.tick, ev)
	}
	return fmt.Errorf("dispatch %T: %w", e, common.ErrInvalidArgument)
}

func run[E Event](handlers []func(E) error, e E) error {
	var errs []error
	for _, h := range handlers {
		if err := h(e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func kindOf(e Event) string {
	if e == nil {
		return "nil"
	}
	return e.Kind().String()
}
