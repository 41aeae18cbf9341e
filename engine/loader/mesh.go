package loader

import (
	"encoding/binary"
	"math"

	"github.com/Carmen-Shannon/oxy-orbit/common"
)

// VertexStride is the size in bytes of one interleaved Vertex on the GPU.
const VertexStride = 32

// Vertex is one interleaved position/texcoord/normal record as uploaded to the vertex buffer.
type Vertex struct {
	Position [3]float32 // offset  0
	UV       [2]float32 // offset 12
	Normal   [3]float32 // offset 20
}

// Mesh is an indexed triangle list ready for upload.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32

	// Positions holds every position record from the source file, referenced or not.
	Positions []common.Vector3
}

// Centroid returns the mean of the source positions, or the origin for an empty mesh.
//
// Returns:
//   - common.Vector3: the average position
func (m *Mesh) Centroid() common.Vector3 {
	if len(m.Positions) == 0 {
		return common.Vector3{}
	}
	var sum common.Vector3
	for _, p := range m.Positions {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float32(len(m.Positions)))
}

// BoundingRadius returns the distance from center to the farthest source position.
func (m *Mesh) BoundingRadius(center common.Vector3) float32 {
	var r float32
	for _, p := range m.Positions {
		if d := p.Sub(center).Length(); d > r {
			r = d
		}
	}
	return r
}

// TriangleCount returns the number of indexed triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// VertexBytes serializes the vertices as little-endian float32s, VertexStride bytes each.
func (m *Mesh) VertexBytes() []byte {
	buf := make([]byte, len(m.Vertices)*VertexStride)
	for i, v := range m.Vertices {
		off := i * VertexStride
		floats := [8]float32{
			v.Position[0], v.Position[1], v.Position[2],
			v.UV[0], v.UV[1],
			v.Normal[0], v.Normal[1], v.Normal[2],
		}
		for j, f := range floats {
			binary.LittleEndian.PutUint32(buf[off+j*4:], math.Float32bits(f))
		}
	}
	return buf
}

// IndexBytes serializes the indices as little-endian uint32s.
func (m *Mesh) IndexBytes() []byte {
	buf := make([]byte, len(m.Indices)*4)
	for i, idx := range m.Indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}
