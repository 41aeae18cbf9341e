package renderer

import (
	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/renderer/bind_group_provider"
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// Bind group slots used by the textured mesh shader.
const (
	cameraGroup       = 0
	cameraBinding     = 0
	materialGroup     = 1
	textureBinding    = 0
	samplerBinding    = 1
	cameraUniformSize = 128
)

// rendererBackend is the GPU API boundary of the Renderer. Every resource it creates is stored
// on a BindGroupProvider, which owns it from then on.
type rendererBackend interface {
	// ConfigureSurface (re)creates the swapchain, depth and MSAA targets for a surface size.
	// The render pipeline is built on the first call, once the surface format is known.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: error if a target or the pipeline could not be created
	ConfigureSurface(width, height int) error

	// SetPresentMode sets the surface present mode. Takes effect on the next ConfigureSurface.
	SetPresentMode(mode PresentMode)

	// InitCamera creates the camera uniform buffer and its bind group on the provider.
	InitCamera(provider bind_group_provider.BindGroupProvider) error

	// InitMeshBuffers creates vertex and index buffers from raw bytes on the provider. Nothing is
	// set on the provider unless both uploads succeed.
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte) error

	// InitTextureView creates an RGBA texture from the buffer's pixels on the provider. The
	// pixels are copied into the GPU queue before this returns.
	InitTextureView(provider bind_group_provider.BindGroupProvider, binding int, tex *common.TextureBuffer) error

	// InitSampler creates a sampler on the provider.
	InitSampler(provider bind_group_provider.BindGroupProvider, binding int, data common.SamplerStagingData) error

	// InitMaterialBindGroup binds the provider's texture view and sampler for the fragment stage.
	InitMaterialBindGroup(provider bind_group_provider.BindGroupProvider) error

	// WriteBuffers writes staged buffer data to the GPU queue, stopping at the first failed write.
	WriteBuffers(writes []bind_group_provider.BufferWrite) error

	// BeginFrame acquires the swapchain texture and begins the main render pass.
	BeginFrame() error

	// DrawCall draws one indexed mesh with the camera and mesh bind groups set.
	DrawCall(camera, mesh bind_group_provider.BindGroupProvider)

	// EndFrame ends the render pass and submits the command buffer.
	EndFrame() error

	// Present presents the surface and releases the swapchain texture.
	Present()

	// Release frees the pipeline, targets, device and surface.
	Release()
}
