// Package engine is the application context of the viewer. It owns the window, renderer,
// camera and input state and runs the single-threaded event loop.
package engine

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/input"
	"github.com/Carmen-Shannon/oxy-orbit/engine/loader"
	"github.com/Carmen-Shannon/oxy-orbit/engine/profiler"
)

// Display is the part of window.Window the engine drives.
type Display interface {
	SetEventSink(sink func(input.Event))
	PollEvents()
	IsRunning() bool
	RequestClose()
	Close() error
	Width() int
	Height() int
}

// FrameRenderer is the part of renderer.Renderer the engine drives.
type FrameRenderer interface {
	AddMesh(name string, mesh *loader.Mesh, texture *common.TextureBuffer) error
	Resize(width, height int) error
	RenderFrame(uniform camera.GPUCameraUniform, names ...string) error
	Close() error
}

// drawable is a mesh registered with the renderer plus its world-space bounding sphere.
type drawable struct {
	name   string
	center common.Vector3
	radius float32
}

// engine implements the Engine interface.
type engine struct {
	window   Display
	renderer FrameRenderer

	projection  camera.Projection
	manipulator camera.SphericalCameraManipulator
	keys        common.KeyStates

	queue      *input.Queue
	dispatcher input.Dispatcher

	profiler         *profiler.Profiler
	profilingEnabled bool

	drawables []drawable
	culling   bool
	drawn     int
	culled    int

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	lastFrame        time.Time

	running bool
	closed  bool
}

// Engine is the main entry point for the viewer.
// It turns window events into camera changes and draws every registered mesh each frame.
// All methods must be called from the goroutine that created the window.
type Engine interface {
	// AddAsset uploads a loaded asset to the renderer and adds it to the draw list.
	// Meshes are drawn in the order they were added. The asset's texture pixels are
	// released once the upload returns.
	//
	// Parameters:
	//   - asset: the loaded mesh and texture
	//
	// Returns:
	//   - error: common.ErrInvalidArgument for an asset without a mesh, or the renderer's error
	AddAsset(asset loader.Asset) error

	// Manipulator returns the orbit camera controller.
	//
	// Returns:
	//   - camera.SphericalCameraManipulator: the manipulator fed by mouse events
	Manipulator() camera.SphericalCameraManipulator

	// Projection returns the perspective projection, kept in sync with the window size.
	Projection() camera.Projection

	// Keys returns the set of keys currently held down.
	Keys() *common.KeyStates

	// Dispatcher returns the event dispatcher so callers can add their own handlers.
	Dispatcher() input.Dispatcher

	// Post queues an event for the next drain.
	Post(e input.Event)

	// Frame computes the projection and model-view matrices and draws every visible mesh.
	//
	// Returns:
	//   - error: the renderer's error
	Frame() error

	// Run polls window events, dispatches them and draws frames until the window closes,
	// Escape is pressed or Quit is called. Input errors are logged and do not stop the loop.
	//
	// Returns:
	//   - error: the first frame error, or common.ErrInvalidState after Close
	Run() error

	// Quit stops Run after the current iteration and asks the window to close.
	// Safe to call multiple times.
	Quit()

	// Close releases the renderer and then the window. Safe to call more than once.
	//
	// Returns:
	//   - error: the joined close errors
	Close() error
}

var _ Engine = &engine{}

// NewEngine creates a new Engine with the provided options.
// A window and a renderer are required; the projection and manipulator default to their
// package defaults. The projection's aspect ratio is taken from the window size.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: common.ErrInvalidArgument if the window or renderer is missing
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		queue:      input.NewQueue(64),
		dispatcher: input.NewDispatcher(),
		profiler:   profiler.NewProfiler(),
		culling:    true,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window == nil {
		return nil, fmt.Errorf("engine: no window: %w", common.ErrInvalidArgument)
	}
	if e.renderer == nil {
		return nil, fmt.Errorf("engine: no renderer: %w", common.ErrInvalidArgument)
	}
	if e.projection == nil {
		e.projection = camera.NewProjection()
	}
	if e.manipulator == nil {
		e.manipulator = camera.NewSphericalCameraManipulator()
	}

	if err := e.projection.SetViewport(e.window.Width(), e.window.Height()); err != nil {
		log.Printf("[Engine] keeping aspect %.3f: %v", e.projection.Aspect(), err)
	}

	e.registerHandlers()
	e.window.SetEventSink(e.queue.Push)
	return e, nil
}

// registerHandlers wires the built-in input handling into the dispatcher.
func (e *engine) registerHandlers() {
	e.dispatcher.OnButton(func(ev input.ButtonEvent) error {
		e.manipulator.HandleMouse(ev.Button, ev.Action, ev.X, ev.Y)
		return nil
	})
	e.dispatcher.OnMotion(func(ev input.MotionEvent) error {
		return e.manipulator.HandleMouseMotion(ev.X, ev.Y)
	})
	e.dispatcher.OnKey(func(ev input.KeyEvent) error {
		switch ev.Action {
		case common.ActionPress:
			e.keys.Press(ev.Key)
			if ev.Key == common.KeyEscape {
				e.Quit()
			}
		case common.ActionRelease:
			e.keys.Release(ev.Key)
		}
		return nil
	})
	e.dispatcher.OnResize(func(ev input.ResizeEvent) error {
		// Minimized windows report 0x0; keep the last projection and surface.
		if ev.Width <= 0 || ev.Height <= 0 {
			return nil
		}
		if err := e.projection.SetViewport(ev.Width, ev.Height); err != nil {
			return err
		}
		return e.renderer.Resize(ev.Width, ev.Height)
	})
	e.dispatcher.OnFrameTick(func(input.FrameTick) error {
		return e.Frame()
	})
}

func (e *engine) AddAsset(asset loader.Asset) error {
	if asset.Mesh == nil {
		asset.Texture.Release()
		return fmt.Errorf("engine: asset %q has no mesh: %w", asset.Name, common.ErrInvalidArgument)
	}
	if err := e.renderer.AddMesh(asset.Name, asset.Mesh, asset.Texture); err != nil {
		return err
	}
	center := asset.Mesh.Centroid()
	e.drawables = append(e.drawables, drawable{
		name:   asset.Name,
		center: center,
		radius: asset.Mesh.BoundingRadius(center),
	})
	log.Printf("[Engine] added %q: %d triangles, center %v, radius %.3f",
		asset.Name, asset.Mesh.TriangleCount(), center.Array(), e.drawables[len(e.drawables)-1].radius)
	return nil
}

func (e *engine) Manipulator() camera.SphericalCameraManipulator {
	return e.manipulator
}

func (e *engine) Projection() camera.Projection {
	return e.projection
}

func (e *engine) Keys() *common.KeyStates {
	return &e.keys
}

func (e *engine) Dispatcher() input.Dispatcher {
	return e.dispatcher
}

func (e *engine) Post(ev input.Event) {
	e.queue.Push(ev)
}

func (e *engine) Frame() error {
	projection := e.projection.Matrix()
	modelView := e.manipulator.Apply(common.Identity4())

	names := e.visible(projection.Mul(modelView))
	if err := e.renderer.RenderFrame(camera.NewGPUCameraUniform(projection, modelView), names...); err != nil {
		return err
	}

	if e.profilingEnabled {
		e.profiler.Tick(e.drawn, e.culled)
	}
	return nil
}

// visible returns the names of the meshes whose bounding sphere intersects the view frustum,
// in draw order, and records the drawn and culled counts.
func (e *engine) visible(clip common.Matrix4x4) []string {
	names := make([]string, 0, len(e.drawables))
	if !e.culling {
		for _, d := range e.drawables {
			names = append(names, d.name)
		}
		e.drawn, e.culled = len(names), 0
		return names
	}

	frustum := common.ExtractFrustum(clip)
	for _, d := range e.drawables {
		if frustum.ContainsSphere(d.center, d.radius) {
			names = append(names, d.name)
		}
	}
	e.drawn = len(names)
	e.culled = len(e.drawables) - len(names)
	return names
}

func (e *engine) Run() error {
	if e.closed {
		return fmt.Errorf("engine: run after close: %w", common.ErrInvalidState)
	}
	e.running = true
	e.lastFrame = time.Now()

	for e.running && e.window.IsRunning() {
		frameStart := time.Now()

		e.window.PollEvents()
		e.queue.Drain(e.dispatch)
		if !e.running {
			break
		}

		dt := frameStart.Sub(e.lastFrame)
		e.lastFrame = frameStart
		if err := e.dispatcher.Dispatch(input.FrameTick{DeltaTime: dt}); err != nil {
			e.running = false
			return fmt.Errorf("engine: frame: %w", err)
		}

		// Frame rate limiting
		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - time.Since(frameStart); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}
	e.running = false
	return nil
}

// dispatch delivers one queued event, logging handler errors.
func (e *engine) dispatch(ev input.Event) {
	if err := e.dispatcher.Dispatch(ev); err != nil {
		log.Printf("[Engine] %T: %v", ev, err)
	}
}

func (e *engine) Quit() {
	e.running = false
	e.window.RequestClose()
}

func (e *engine) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	e.running = false

	var errs []error
	if err := e.renderer.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close renderer: %w", err))
	}
	if err := e.window.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close window: %w", err))
	}
	return errors.Join(errs...)
}
