package camera

import "github.com/Carmen-Shannon/oxy-orbit/common"

// ManipulatorOption is a functional option for configuring a SphericalCameraManipulator.
type ManipulatorOption func(*sphericalCameraManipulatorImpl)

// WithPanTiltRadius sets the initial orbit state. Non-finite values and radius <= 0 are
// ignored; tilt and radius are clamped once all options are applied.
//
// Parameters:
//   - pan: horizontal angle in degrees
//   - tilt: vertical angle in degrees
//   - radius: distance from the focus point
//
// Returns:
//   - ManipulatorOption: functional option to set the orbit state
func WithPanTiltRadius(pan, tilt, radius float32) ManipulatorOption {
	return func(m *sphericalCameraManipulatorImpl) {
		if !common.IsFinite(pan, tilt, radius) || radius <= 0 {
			return
		}
		m.pan = pan
		m.tilt = tilt
		m.radius = radius
	}
}

// WithFocus sets the look-at/pivot point.
//
// Parameters:
//   - focus: world-space orbit center
//
// Returns:
//   - ManipulatorOption: functional option to set the focus
func WithFocus(focus common.Vector3) ManipulatorOption {
	return func(m *sphericalCameraManipulatorImpl) {
		m.focus = focus
	}
}

// WithSensitivity sets the orbit sensitivity.
//
// Parameters:
//   - degreesPerPixel: pan/tilt change per pixel of drag
//
// Returns:
//   - ManipulatorOption: functional option to set the orbit sensitivity
func WithSensitivity(degreesPerPixel float32) ManipulatorOption {
	return func(m *sphericalCameraManipulatorImpl) {
		m.sensitivity = degreesPerPixel
	}
}

// WithZoomSensitivity sets the zoom sensitivity.
//
// Parameters:
//   - unitsPerPixel: radius change per pixel of vertical drag
//
// Returns:
//   - ManipulatorOption: functional option to set the zoom sensitivity
func WithZoomSensitivity(unitsPerPixel float32) ManipulatorOption {
	return func(m *sphericalCameraManipulatorImpl) {
		m.zoomSensitivity = unitsPerPixel
	}
}

// WithTiltBounds sets the minimum and maximum tilt. Ranges that are inverted or reach
// +-90 degrees (where the view flips) are ignored.
//
// Parameters:
//   - min: minimum tilt in degrees
//   - max: maximum tilt in degrees
//
// Returns:
//   - ManipulatorOption: functional option to set tilt bounds
func WithTiltBounds(min, max float32) ManipulatorOption {
	return func(m *sphericalCameraManipulatorImpl) {
		if min > max || min <= -90 || max >= 90 {
			return
		}
		m.minTilt = min
		m.maxTilt = max
	}
}

// WithRadiusBounds sets the minimum and maximum orbit radius.
// min must be > 0; max of 0 leaves the radius unbounded above.
//
// Parameters:
//   - min: minimum zoom distance
//   - max: maximum zoom distance, or 0
//
// Returns:
//   - ManipulatorOption: functional option to set radius bounds
func WithRadiusBounds(min, max float32) ManipulatorOption {
	return func(m *sphericalCameraManipulatorImpl) {
		if min <= 0 || (max != 0 && max < min) {
			return
		}
		m.minRadius = min
		m.maxRadius = max
	}
}

// WithButtonMapping chooses which buttons orbit and zoom. Identical buttons are ignored.
//
// Parameters:
//   - orbit: button that starts orbiting
//   - zoom: button that starts zooming
//
// Returns:
//   - ManipulatorOption: functional option to set the button mapping
func WithButtonMapping(orbit, zoom common.MouseButton) ManipulatorOption {
	return func(m *sphericalCameraManipulatorImpl) {
		if orbit == zoom {
			return
		}
		m.orbitButton = orbit
		m.zoomButton = zoom
	}
}
