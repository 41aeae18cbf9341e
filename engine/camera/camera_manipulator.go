package camera

import "github.com/Carmen-Shannon/oxy-orbit/common"

// Interaction is the input state of a SphericalCameraManipulator.
type Interaction int

const (
	// InteractionIdle means no drag is in progress; motion only updates the cursor cache.
	InteractionIdle Interaction = iota
	// InteractionOrbiting means the orbit button is held; motion changes pan and tilt.
	InteractionOrbiting
	// InteractionZooming means the zoom button is held; motion changes the radius.
	InteractionZooming
)

func (i Interaction) String() string {
	switch i {
	case InteractionIdle:
		return "idle"
	case InteractionOrbiting:
		return "orbiting"
	case InteractionZooming:
		return "zooming"
	}
	return "unknown"
}

// SphericalCameraManipulator converts mouse drags into an orbit transform around a focus point.
// State is kept in spherical coordinates: pan (degrees about +Y), tilt (degrees about +X,
// clamped), radius (distance from the focus, clamped above zero) and the focus itself.
//
// The manipulator is owned by a single goroutine (the event loop) and performs no locking.
type SphericalCameraManipulator interface {
	// SetPanTiltRadius sets the orbit state. Tilt and radius are clamped to their bounds.
	//
	// Parameters:
	//   - pan: horizontal angle in degrees
	//   - tilt: vertical angle in degrees
	//   - radius: distance from the focus point, must be > 0
	//
	// Returns:
	//   - error: common.ErrInvalidArgument if radius <= 0 or any value is not finite; state is unchanged
	SetPanTiltRadius(pan, tilt, radius float32) error

	// SetFocus sets the world-space point the camera orbits around.
	//
	// Parameters:
	//   - point: the look-at target
	SetFocus(point common.Vector3)

	// HandleMouse processes a button transition. Pressing the orbit button while idle starts
	// orbiting, pressing the zoom button while idle starts zooming, and releasing the button
	// that started the interaction returns to idle. (x, y) becomes the drag anchor.
	//
	// Parameters:
	//   - button: the mouse button that changed
	//   - action: press or release
	//   - x, y: cursor position in screen coordinates (origin top-left, +y down)
	HandleMouse(button common.MouseButton, action common.Action, x, y int)

	// HandleMouseMotion processes cursor movement. While orbiting, the delta from the anchor
	// changes pan and tilt; while zooming, the vertical delta changes the radius. The anchor
	// always moves to (x, y), so deltas accumulate incrementally.
	//
	// Parameters:
	//   - x, y: cursor position in screen coordinates
	//
	// Returns:
	//   - error: common.ErrInvalidState if the manipulator is in an unknown interaction; it is reset to idle
	HandleMouseMotion(x, y int) error

	// Apply composes the orbit transform onto a model-view matrix:
	// modelView * Translate(0, 0, -radius) * RotateX(tilt) * RotateY(pan) * Translate(-focus).
	// The focus ends up at (0, 0, -radius) in view space. Does not modify the manipulator.
	//
	// Parameters:
	//   - modelView: the incoming model-view matrix
	//
	// Returns:
	//   - common.Matrix4x4: the composed matrix
	Apply(modelView common.Matrix4x4) common.Matrix4x4

	// View returns Apply(identity).
	View() common.Matrix4x4

	// EyePosition returns the world-space position of the camera.
	EyePosition() common.Vector3

	// Pan returns the horizontal angle in degrees.
	Pan() float32

	// Tilt returns the vertical angle in degrees.
	Tilt() float32

	// Radius returns the distance from the focus point.
	Radius() float32

	// Focus returns the orbit center.
	Focus() common.Vector3

	// Interaction returns the current input state.
	Interaction() Interaction

	// LastPosition returns the cached cursor position.
	LastPosition() (x, y int)

	// Sensitivity returns the orbit sensitivity in degrees per pixel.
	Sensitivity() float32

	// ZoomSensitivity returns the zoom sensitivity in world units per pixel.
	ZoomSensitivity() float32

	// TiltBounds returns the allowed tilt range in degrees.
	TiltBounds() (min, max float32)

	// RadiusBounds returns the allowed radius range. A max of 0 means unbounded.
	RadiusBounds() (min, max float32)
}
