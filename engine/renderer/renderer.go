// Package renderer draws textured meshes with a single WebGPU pipeline.
package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/loader"
	"github.com/Carmen-Shannon/oxy-orbit/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-orbit/engine/window"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backend rendererBackend

	camera bind_group_provider.BindGroupProvider
	meshes map[string]bind_group_provider.BindGroupProvider
	order  []string

	sampler common.SamplerStagingData
	closed  bool

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
}

// Renderer defines the interface for the rendering system.
//
// Meshes are uploaded once under a name and drawn each frame with the camera uniform.
// Every mesh is drawn with the same textured pipeline.
type Renderer interface {
	// AddMesh uploads a mesh and its texture under name. The texture's pixels are released
	// once the upload returns, whether or not it succeeded; a nil texture draws white.
	//
	// Parameters:
	//   - name: unique key used by RenderFrame
	//   - mesh: the geometry to upload
	//   - texture: the decoded texture, or nil
	//
	// Returns:
	//   - error: common.ErrInvalidArgument for a bad or duplicate name or an empty mesh,
	//     common.ErrInvalidState after Close, or a GPU error
	AddMesh(name string, mesh *loader.Mesh, texture *common.TextureBuffer) error

	// HasMesh reports whether a mesh was uploaded under name.
	HasMesh(name string) bool

	// Meshes returns the uploaded mesh names in upload order.
	Meshes() []string

	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window. Zero sizes (minimized) are ignored.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if the surface could not be reconfigured
	Resize(width, height int) error

	// RenderFrame writes the camera uniform, clears the target and draws the named meshes in
	// order. With no names the frame is only cleared; pass Meshes() to draw everything.
	//
	// Parameters:
	//   - uniform: projection and model-view for this frame
	//   - names: meshes to draw
	//
	// Returns:
	//   - error: common.ErrInvalidArgument for an unknown name (nothing is drawn),
	//     common.ErrInvalidState after Close, or a GPU error
	RenderFrame(uniform camera.GPUCameraUniform, names ...string) error

	// SetPresentMode sets the surface present mode.
	// A call to Resize is required after changing this for the new mode to take effect.
	SetPresentMode(mode PresentMode)

	// Close releases every mesh, the camera uniform and the GPU device. Safe to call more than once.
	Close() error
}

var _ Renderer = &renderer{}

// NewRenderer creates a WebGPU Renderer drawing into the window's surface.
//
// Parameters:
//   - win: the window providing the surface descriptor and initial size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the renderer
//   - error: an error if no adapter or device is available
func NewRenderer(win window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(options...)

	msaa := MSAA4x // default
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	backend, err := newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
	if err != nil {
		return nil, err
	}
	if err := r.attach(backend, win.Width(), win.Height()); err != nil {
		backend.Release()
		return nil, err
	}
	return r, nil
}

// newRenderer applies options to an empty renderer. Options are applied before any backend
// exists so config flags (e.g. forceFallbackAdapter) are available when the adapter is requested.
func newRenderer(options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:      &sync.Mutex{},
		meshes:  make(map[string]bind_group_provider.BindGroupProvider),
		sampler: common.DefaultSampler(),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// attach configures the surface and creates the camera uniform on a fresh backend.
func (r *renderer) attach(backend rendererBackend, width, height int) error {
	r.backend = backend
	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		return fmt.Errorf("configure surface: %w", err)
	}

	r.camera = bind_group_provider.NewBindGroupProvider("Camera")
	if err := r.backend.InitCamera(r.camera); err != nil {
		r.camera.Release()
		return fmt.Errorf("init camera uniform: %w", err)
	}
	return nil
}

func (r *renderer) AddMesh(name string, mesh *loader.Mesh, texture *common.TextureBuffer) error {
	defer texture.Release()

	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case r.closed:
		return fmt.Errorf("renderer: add mesh %q after close: %w", name, common.ErrInvalidState)
	case name == "":
		return fmt.Errorf("renderer: mesh name is empty: %w", common.ErrInvalidArgument)
	case mesh == nil || len(mesh.Indices) == 0:
		return fmt.Errorf("renderer: mesh %q has no triangles: %w", name, common.ErrInvalidArgument)
	}
	if _, exists := r.meshes[name]; exists {
		return fmt.Errorf("renderer: mesh %q already added: %w", name, common.ErrInvalidArgument)
	}

	if texture == nil {
		texture = &common.TextureBuffer{Pixels: []byte{255, 255, 255, 255}, Width: 1, Height: 1}
	}

	provider := bind_group_provider.NewBindGroupProvider(name, bind_group_provider.WithIndexCount(len(mesh.Indices)))
	err := r.initMesh(provider, mesh, texture)
	if err != nil {
		provider.Release()
		return fmt.Errorf("renderer: upload mesh %q: %w", name, err)
	}

	r.meshes[name] = provider
	r.order = append(r.order, name)
	return nil
}

func (r *renderer) initMesh(provider bind_group_provider.BindGroupProvider, mesh *loader.Mesh, texture *common.TextureBuffer) error {
	if err := r.backend.InitMeshBuffers(provider, mesh.VertexBytes(), mesh.IndexBytes()); err != nil {
		return err
	}
	err := texture.UploadScoped(func(t *common.TextureBuffer) error {
		return r.backend.InitTextureView(provider, textureBinding, t)
	})
	if err != nil {
		return err
	}
	if err := r.backend.InitSampler(provider, samplerBinding, r.sampler); err != nil {
		return err
	}
	return r.backend.InitMaterialBindGroup(provider)
}

func (r *renderer) HasMesh(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.meshes[name]
	return ok
}

func (r *renderer) Meshes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

func (r *renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	return r.backend.ConfigureSurface(width, height)
}

func (r *renderer) RenderFrame(uniform camera.GPUCameraUniform, names ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return fmt.Errorf("renderer: render after close: %w", common.ErrInvalidState)
	}
	draws := make([]bind_group_provider.BindGroupProvider, 0, len(names))
	for _, name := range names {
		p, ok := r.meshes[name]
		if !ok {
			return fmt.Errorf("renderer: unknown mesh %q: %w", name, common.ErrInvalidArgument)
		}
		draws = append(draws, p)
	}

	err := r.backend.WriteBuffers([]bind_group_provider.BufferWrite{{
		Provider: r.camera,
		Binding:  cameraBinding,
		Data:     uniform.Marshal(),
	}})
	if err != nil {
		return fmt.Errorf("renderer: write camera uniform: %w", err)
	}

	if err := r.backend.BeginFrame(); err != nil {
		return fmt.Errorf("renderer: begin frame: %w", err)
	}
	for _, p := range draws {
		r.backend.DrawCall(r.camera, p)
	}
	if err := r.backend.EndFrame(); err != nil {
		return fmt.Errorf("renderer: end frame: %w", err)
	}
	r.backend.Present()
	return nil
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	for i := len(r.order) - 1; i >= 0; i-- {
		r.meshes[r.order[i]].Release()
	}
	r.meshes = map[string]bind_group_provider.BindGroupProvider{}
	r.order = nil
	if r.camera != nil {
		r.camera.Release()
	}
	r.backend.Release()
	return nil
}
