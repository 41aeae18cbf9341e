// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// TextureBuffer holds decoded RGBA pixel data pending GPU upload.
// The pixels are only needed until the upload call returns; callers release the buffer with
// a deferred Release so that the memory is dropped even when the upload fails.
type TextureBuffer struct {
	// Pixels is the pixel data in RGBA format, with 4 bytes per pixel, row-major, top row first.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
}

// Released reports whether the pixel data has already been dropped.
func (t *TextureBuffer) Released() bool {
	return t == nil || t.Pixels == nil
}

// Release drops the pixel data. Safe to call more than once and on a nil buffer.
func (t *TextureBuffer) Release() {
	if t == nil {
		return
	}
	t.Pixels = nil
}

// UploadScoped hands the buffer to upload and releases it once upload returns, whether or
// not the upload succeeded.
//
// Parameters:
//   - upload: function that copies the pixels to their destination
//
// Returns:
//   - error: ErrInvalidState if the buffer was already released, otherwise upload's error
func (t *TextureBuffer) UploadScoped(upload func(*TextureBuffer) error) error {
	if t.Released() {
		return ErrInvalidState
	}
	defer t.Release()
	return upload(t)
}

// SamplerStagingData holds the configuration for a texture sampler pending GPU creation.
// Fields are passed through unchanged, so the zero value is repeat addressing with nearest filtering.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV specify the addressing mode for texture coordinates outside the [0, 1] range.
	AddressModeU, AddressModeV wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
}

// DefaultSampler returns repeat addressing with linear filtering.
func DefaultSampler() SamplerStagingData {
	return SamplerStagingData{
		AddressModeU: wgpu.AddressModeRepeat,
		AddressModeV: wgpu.AddressModeRepeat,
		MagFilter:    wgpu.FilterModeLinear,
		MinFilter:    wgpu.FilterModeLinear,
	}
}
