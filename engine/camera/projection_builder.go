package camera

// ProjectionOption is a functional option for configuring a Projection.
type ProjectionOption func(*projectionImpl)

// WithFov sets the vertical field of view in degrees.
//
// Parameters:
//   - fov: field of view in degrees
//
// Returns:
//   - ProjectionOption: a function that sets the field of view
func WithFov(fov float32) ProjectionOption {
	return func(p *projectionImpl) {
		_ = p.SetFov(fov)
	}
}

// WithAspect sets the aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio to set
//
// Returns:
//   - ProjectionOption: a function that sets the aspect ratio
func WithAspect(aspect float32) ProjectionOption {
	return func(p *projectionImpl) {
		_ = p.SetAspect(aspect)
	}
}

// WithClipPlanes sets the near and far clipping plane distances.
//
// Parameters:
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - ProjectionOption: a function that sets the clip planes
func WithClipPlanes(near, far float32) ProjectionOption {
	return func(p *projectionImpl) {
		_ = p.SetClipPlanes(near, far)
	}
}
