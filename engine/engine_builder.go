package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/config"
	"github.com/Carmen-Shannon/oxy-orbit/engine/profiler"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithWindow sets the window the engine polls for events.
//
// Parameters:
//   - w: a created window, usually from window.NewWindow
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w Display) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer that draws each frame.
//
// Parameters:
//   - r: a created renderer, usually from renderer.NewRenderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r FrameRenderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithProjection replaces the default projection.
func WithProjection(p camera.Projection) EngineBuilderOption {
	return func(e *engine) {
		e.projection = p
	}
}

// WithManipulator replaces the default orbit manipulator.
func WithManipulator(m camera.SphericalCameraManipulator) EngineBuilderOption {
	return func(e *engine) {
		e.manipulator = m
	}
}

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler.
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		if p != nil {
			e.profiler = p
		}
	}
}

// WithCulling enables or disables frustum culling of whole meshes (enabled by default).
func WithCulling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.culling = enabled
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop.
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps int) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Second / time.Duration(fps)
	}
}

// WithConfig builds the projection and manipulator from the camera and projection sections
// and applies the engine section. Later options override it.
//
// Parameters:
//   - cfg: validated settings, usually from config.Load
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithConfig(cfg config.Config) EngineBuilderOption {
	return func(e *engine) {
		c := cfg.Camera
		e.manipulator = camera.NewSphericalCameraManipulator(
			camera.WithTiltBounds(c.MinTilt, c.MaxTilt),
			camera.WithRadiusBounds(c.MinRadius, c.MaxRadius),
			camera.WithPanTiltRadius(c.Pan, c.Tilt, c.Radius),
			camera.WithSensitivity(c.Sensitivity),
			camera.WithZoomSensitivity(c.ZoomSensitivity),
		)
		e.projection = camera.NewProjection(
			camera.WithFov(cfg.Projection.Fov),
			camera.WithClipPlanes(cfg.Projection.Near, cfg.Projection.Far),
		)
		WithProfiling(cfg.Engine.Profiling)(e)
		WithRenderFrameLimit(cfg.Engine.FrameLimit)(e)
	}
}
