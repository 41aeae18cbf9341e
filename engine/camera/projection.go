package camera

import (
	"github.com/Carmen-Shannon/oxy-orbit/common"
)

// Projection holds perspective settings and caches the resulting matrix.
// The matrix is rebuilt only when a setting changes, so Matrix can be called every frame.
type Projection interface {
	// Fov returns the vertical field of view in degrees.
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	Aspect() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// SetFov sets the vertical field of view.
	//
	// Parameters:
	//   - fov: field of view in degrees, in (0, 180)
	//
	// Returns:
	//   - error: common.ErrInvalidArgument if out of range; the previous value is kept
	SetFov(fov float32) error

	// SetAspect sets the aspect ratio.
	//
	// Parameters:
	//   - aspect: width / height, > 0
	//
	// Returns:
	//   - error: common.ErrInvalidArgument if out of range; the previous value is kept
	SetAspect(aspect float32) error

	// SetViewport sets the aspect ratio from a viewport size in pixels.
	//
	// Parameters:
	//   - width, height: viewport size, both > 0
	//
	// Returns:
	//   - error: common.ErrInvalidArgument if either dimension is not positive
	SetViewport(width, height int) error

	// SetClipPlanes sets the near and far clipping plane distances together.
	//
	// Parameters:
	//   - near: near plane distance, > 0
	//   - far: far plane distance, > near
	//
	// Returns:
	//   - error: common.ErrInvalidArgument if out of range; the previous values are kept
	SetClipPlanes(near, far float32) error

	// Matrix returns the cached perspective projection matrix (column-major).
	Matrix() common.Matrix4x4

	// Rebuilds returns how many times the matrix has been computed.
	Rebuilds() int
}

type projectionImpl struct {
	fov    float32
	aspect float32
	near   float32
	far    float32

	matrix   common.Matrix4x4
	dirty    bool
	rebuilds int
}

var _ Projection = &projectionImpl{}

// NewProjection creates a Projection with a 90 degree field of view, aspect 1 and clip planes
// at 0.0001 and 100. Options carrying invalid values are ignored.
//
// Parameters:
//   - options: functional options to configure the projection
//
// Returns:
//   - Projection: the newly created projection
func NewProjection(options ...ProjectionOption) Projection {
	p := &projectionImpl{
		fov:    90,
		aspect: 1,
		near:   0.0001,
		far:    100,
		dirty:  true,
	}
	for _, option := range options {
		option(p)
	}
	return p
}

func (p *projectionImpl) Fov() float32 {
	return p.fov
}

func (p *projectionImpl) Aspect() float32 {
	return p.aspect
}

func (p *projectionImpl) Near() float32 {
	return p.near
}

func (p *projectionImpl) Far() float32 {
	return p.far
}

func (p *projectionImpl) SetFov(fov float32) error {
	return p.update(fov, p.aspect, p.near, p.far)
}

func (p *projectionImpl) SetAspect(aspect float32) error {
	return p.update(p.fov, aspect, p.near, p.far)
}

func (p *projectionImpl) SetViewport(width, height int) error {
	if width <= 0 || height <= 0 {
		return p.update(p.fov, 0, p.near, p.far)
	}
	return p.SetAspect(float32(width) / float32(height))
}

func (p *projectionImpl) SetClipPlanes(near, far float32) error {
	return p.update(p.fov, p.aspect, near, far)
}

func (p *projectionImpl) Matrix() common.Matrix4x4 {
	if p.dirty {
		// Settings are validated on the way in, so this cannot fail.
		p.matrix, _ = common.Perspective(p.fov, p.aspect, p.near, p.far)
		p.dirty = false
		p.rebuilds++
	}
	return p.matrix
}

func (p *projectionImpl) Rebuilds() int {
	return p.rebuilds
}

// update validates and stores a full set of settings, marking the matrix stale when anything changed.
func (p *projectionImpl) update(fov, aspect, near, far float32) error {
	if _, err := common.Perspective(fov, aspect, near, far); err != nil {
		return err
	}
	if fov == p.fov && aspect == p.aspect && near == p.near && far == p.far {
		return nil
	}
	p.fov, p.aspect, p.near, p.far = fov, aspect, near, far
	p.dirty = true
	return nil
}
