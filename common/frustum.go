package common

// Plane represents a plane in 3D space using the equation: ax + by + cz + d = 0
// where (a, b, c) is the normal and d is the distance from origin.
type Plane struct {
	Normal   Vector3
	Distance float32
}

// Frustum represents the six planes of a view frustum for culling.
// Planes are oriented so that positive half-space is inside the frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumPlane indices for clarity
const (
	FrustumLeft   = 0
	FrustumRight  = 1
	FrustumBottom = 2
	FrustumTop    = 3
	FrustumNear   = 4
	FrustumFar    = 5
)

// ExtractFrustum extracts frustum planes from a combined projection * model-view matrix.
// Uses the Gribb/Hartmann method for plane extraction: each plane is row 3 plus or minus
// row 0, 1 or 2 of the clip matrix.
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - clip: the projection * model-view matrix
//
// Returns:
//   - Frustum: the extracted frustum with normalized planes
func ExtractFrustum(clip Matrix4x4) Frustum {
	row := func(r int) (Vector3, float32) {
		return Vector3{clip.At(r, 0), clip.At(r, 1), clip.At(r, 2)}, clip.At(r, 3)
	}
	n3, d3 := row(3)

	var f Frustum
	for axis := 0; axis < 3; axis++ {
		n, d := row(axis)
		f.Planes[axis*2] = Plane{Normal: n3.Add(n), Distance: d3 + d}
		f.Planes[axis*2+1] = Plane{Normal: n3.Sub(n), Distance: d3 - d}
	}

	for i := range f.Planes {
		f.normalizePlane(i)
	}
	return f
}

// normalizePlane normalizes a frustum plane so that the normal has unit length.
func (f *Frustum) normalizePlane(index int) {
	p := &f.Planes[index]
	length := p.Normal.Length()
	if length > 0 {
		invLen := 1.0 / length
		p.Normal = p.Normal.Scale(invLen)
		p.Distance *= invLen
	}
}

// ContainsSphere reports whether a bounding sphere is at least partially inside the frustum.
//
// Parameters:
//   - center: sphere center in the space the frustum was extracted for
//   - radius: sphere radius
//
// Returns:
//   - bool: false only if the sphere lies entirely outside one of the planes
func (f Frustum) ContainsSphere(center Vector3, radius float32) bool {
	for _, p := range f.Planes {
		if p.Normal.Dot(center)+p.Distance < -radius {
			return false
		}
	}
	return true
}
