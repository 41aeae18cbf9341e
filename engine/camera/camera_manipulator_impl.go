package camera

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/chewxy/math32"
)

const (
	defaultRadius          = 2.0
	defaultMinTilt         = -89.0
	defaultMaxTilt         = 89.0
	defaultMinRadius       = 0.01
	defaultSensitivity     = 0.5
	defaultZoomSensitivity = 0.01
)

// sphericalCameraManipulatorImpl is the single implementation of SphericalCameraManipulator.
type sphericalCameraManipulatorImpl struct {
	// Spherical coordinates (offset from focus)
	pan    float32 // degrees about +Y
	tilt   float32 // degrees about +X
	radius float32
	focus  common.Vector3

	// Orbit constraints
	minTilt   float32
	maxTilt   float32
	minRadius float32
	maxRadius float32 // 0 = unbounded

	sensitivity     float32 // degrees per pixel
	zoomSensitivity float32 // world units per pixel

	orbitButton common.MouseButton
	zoomButton  common.MouseButton

	// Drag state
	interaction  Interaction
	activeButton common.MouseButton
	lastX, lastY int
}

// Compile-time interface compliance check
var _ SphericalCameraManipulator = &sphericalCameraManipulatorImpl{}

// NewSphericalCameraManipulator creates a manipulator with pan 0, tilt 0, radius 2 and the focus
// at the origin. Left drag orbits, right drag zooms.
//
// Parameters:
//   - options: functional options to configure the manipulator
//
// Returns:
//   - SphericalCameraManipulator: the newly created manipulator
func NewSphericalCameraManipulator(options ...ManipulatorOption) SphericalCameraManipulator {
	m := &sphericalCameraManipulatorImpl{
		radius: defaultRadius,

		minTilt:   defaultMinTilt,
		maxTilt:   defaultMaxTilt,
		minRadius: defaultMinRadius,

		sensitivity:     defaultSensitivity,
		zoomSensitivity: defaultZoomSensitivity,

		orbitButton: common.MouseButtonLeft,
		zoomButton:  common.MouseButtonRight,

		interaction:  InteractionIdle,
		activeButton: common.MouseButtonNone,
	}

	for _, option := range options {
		option(m)
	}

	m.tilt = common.Clamp(m.tilt, m.minTilt, m.maxTilt)
	m.radius = m.clampRadius(m.radius)
	return m
}

// --- internal helpers ---

// clampRadius limits r to [minRadius, maxRadius]; maxRadius 0 leaves the upper end open.
func (m *sphericalCameraManipulatorImpl) clampRadius(r float32) float32 {
	if m.maxRadius > 0 && r > m.maxRadius {
		r = m.maxRadius
	}
	if r < m.minRadius {
		r = m.minRadius
	}
	return r
}

// wrapDegrees maps an angle into [-180, 180).
func wrapDegrees(deg float32) float32 {
	return deg - 360*math32.Floor((deg+180)/360)
}

func (m *sphericalCameraManipulatorImpl) cursor(x, y int) {
	m.lastX = x
	m.lastY = y
}

func (m *sphericalCameraManipulatorImpl) toIdle() {
	m.interaction = InteractionIdle
	m.activeButton = common.MouseButtonNone
}

// --- SphericalCameraManipulator implementation ---

func (m *sphericalCameraManipulatorImpl) SetPanTiltRadius(pan, tilt, radius float32) error {
	if !common.IsFinite(pan, tilt, radius) {
		return fmt.Errorf("camera manipulator: pan %v, tilt %v, radius %v must be finite: %w", pan, tilt, radius, common.ErrInvalidArgument)
	}
	if radius <= 0 {
		return fmt.Errorf("camera manipulator: radius %v must be positive: %w", radius, common.ErrInvalidArgument)
	}
	m.pan = pan
	m.tilt = common.Clamp(tilt, m.minTilt, m.maxTilt)
	m.radius = m.clampRadius(radius)
	return nil
}

func (m *sphericalCameraManipulatorImpl) SetFocus(point common.Vector3) {
	m.focus = point
}

func (m *sphericalCameraManipulatorImpl) HandleMouse(button common.MouseButton, action common.Action, x, y int) {
	switch action {
	case common.ActionPress:
		if m.interaction != InteractionIdle {
			return
		}
		switch button {
		case m.orbitButton:
			m.interaction = InteractionOrbiting
		case m.zoomButton:
			m.interaction = InteractionZooming
		default:
			m.cursor(x, y)
			return
		}
		m.activeButton = button
		m.cursor(x, y)
	case common.ActionRelease:
		if m.interaction == InteractionIdle || button != m.activeButton {
			return
		}
		m.toIdle()
		m.cursor(x, y)
	}
}

func (m *sphericalCameraManipulatorImpl) HandleMouseMotion(x, y int) error {
	dx := float32(x - m.lastX)
	dy := float32(y - m.lastY)

	switch m.interaction {
	case InteractionIdle:
	case InteractionOrbiting:
		m.pan = wrapDegrees(m.pan + dx*m.sensitivity)
		m.tilt = common.Clamp(m.tilt+dy*m.sensitivity, m.minTilt, m.maxTilt)
	case InteractionZooming:
		m.radius = m.clampRadius(m.radius + dy*m.zoomSensitivity)
	default:
		state := m.interaction
		m.toIdle()
		m.cursor(x, y)
		return fmt.Errorf("camera manipulator: motion during interaction %d: %w", state, common.ErrInvalidState)
	}

	m.cursor(x, y)
	return nil
}

func (m *sphericalCameraManipulatorImpl) Apply(modelView common.Matrix4x4) common.Matrix4x4 {
	orbit := common.Translate(0, 0, -m.radius).
		Mul(common.RotateX(m.tilt)).
		Mul(common.RotateY(m.pan)).
		Mul(common.TranslateV(m.focus.Negate()))
	return modelView.Mul(orbit)
}

func (m *sphericalCameraManipulatorImpl) View() common.Matrix4x4 {
	return m.Apply(common.Identity4())
}

func (m *sphericalCameraManipulatorImpl) EyePosition() common.Vector3 {
	// Inverse of the orbit: back out along +Z, undo tilt, undo pan, then offset by the focus.
	back := common.RotateY(-m.pan).
		Mul(common.RotateX(-m.tilt)).
		TransformPoint(common.Vec3(0, 0, m.radius))
	return m.focus.Add(back)
}

func (m *sphericalCameraManipulatorImpl) Pan() float32 {
	return m.pan
}

func (m *sphericalCameraManipulatorImpl) Tilt() float32 {
	return m.tilt
}

func (m *sphericalCameraManipulatorImpl) Radius() float32 {
	return m.radius
}

func (m *sphericalCameraManipulatorImpl) Focus() common.Vector3 {
	return m.focus
}

func (m *sphericalCameraManipulatorImpl) Interaction() Interaction {
	return m.interaction
}

func (m *sphericalCameraManipulatorImpl) LastPosition() (x, y int) {
	return m.lastX, m.lastY
}

func (m *sphericalCameraManipulatorImpl) Sensitivity() float32 {
	return m.sensitivity
}

func (m *sphericalCameraManipulatorImpl) ZoomSensitivity() float32 {
	return m.zoomSensitivity
}

func (m *sphericalCameraManipulatorImpl) TiltBounds() (min, max float32) {
	return m.minTilt, m.maxTilt
}

func (m *sphericalCameraManipulatorImpl) RadiusBounds() (min, max float32) {
	return m.minRadius, m.maxRadius
}
