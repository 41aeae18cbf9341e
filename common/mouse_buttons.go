package common

// MouseButton identifies a mouse button. Values match GLFW mouse button codes.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#MouseButton
type MouseButton int

const (
	MouseButtonNone   MouseButton = -1
	MouseButtonLeft   MouseButton = 0
	MouseButtonRight  MouseButton = 1
	MouseButtonMiddle MouseButton = 2
)

func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "left"
	case MouseButtonRight:
		return "right"
	case MouseButtonMiddle:
		return "middle"
	case MouseButtonNone:
		return "none"
	}
	return "unknown"
}

// Action is the transition reported for a button or key.
type Action int

const (
	ActionRelease Action = iota
	ActionPress
)

func (a Action) String() string {
	if a == ActionPress {
		return "press"
	}
	return "release"
}
