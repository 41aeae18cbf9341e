package camera

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-orbit/common"
)

// GPUCameraUniformSource is the canonical WGSL definition of the CameraUniform struct.
// Matches GPUCameraUniform layout exactly (128 bytes).
const GPUCameraUniformSource = `struct CameraUniform {
    projection: mat4x4<f32>,
    model_view: mat4x4<f32>,
};
`

// GPUCameraUniform is the GPU-aligned representation of the camera uniform buffer.
// Matches the WGSL CameraUniform struct layout exactly (see GPUCameraUniformSource).
// Size: 128 bytes.
type GPUCameraUniform struct {
	Projection [16]float32 // offset  0: perspective projection (mat4x4<f32>)
	ModelView  [16]float32 // offset 64: manipulator-applied model-view (mat4x4<f32>)
}

// NewGPUCameraUniform packs a projection and a model-view matrix for upload.
//
// Parameters:
//   - projection: the projection matrix
//   - modelView: the model-view matrix
//
// Returns:
//   - GPUCameraUniform: the packed uniform
func NewGPUCameraUniform(projection, modelView common.Matrix4x4) GPUCameraUniform {
	return GPUCameraUniform{
		Projection: projection,
		ModelView:  modelView,
	}
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (128)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUCameraUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Projection[i]))
	}
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.ModelView[i]))
	}
	return buf
}
