package common

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/chewxy/math32"
)

// Matrix4x4 is a 4x4 float32 matrix stored in column-major order (OpenGL/WebGPU convention).
// Element (row r, column c) lives at index c*4 + r. Points are treated as column vectors, so
// in a product a * b the right-hand matrix is applied to a point first.
type Matrix4x4 [16]float32

// Identity4 returns the identity matrix.
func Identity4() Matrix4x4 {
	return Matrix4x4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// ToIdentity resets the matrix to the identity matrix in place.
func (m *Matrix4x4) ToIdentity() {
	*m = Identity4()
}

// At returns the element at the given row and column.
//
// Parameters:
//   - row: row index in [0, 3]
//   - col: column index in [0, 3]
//
// Returns:
//   - float32: the element value
func (m Matrix4x4) At(row, col int) float32 {
	return m[col*4+row]
}

// Mul multiplies two 4x4 matrices and returns m * b.
// The product is not commutative: b is applied to a point before m.
//
// Parameters:
//   - b: right-hand matrix
//
// Returns:
//   - Matrix4x4: the composed matrix
func (m Matrix4x4) Mul(b Matrix4x4) Matrix4x4 {
	var out Matrix4x4
	for i := 0; i < 4; i++ { // column of b
		for j := 0; j < 4; j++ { // row of m
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += m[k*4+j] * b[i*4+k]
			}
			out[i*4+j] = sum
		}
	}
	return out
}

// Perspective creates an OpenGL-style perspective projection matrix mapping view-space depth
// [-near, -far] to clip-space z in [-1, 1].
//
// The identity matrix is returned together with an ErrInvalidArgument error when the
// parameters would produce a degenerate projection.
//
// Parameters:
//   - fovYDegrees: vertical field of view in degrees, in (0, 180)
//   - aspect: viewport aspect ratio (width/height), > 0
//   - zNear: near clipping plane distance, > 0
//   - zFar: far clipping plane distance, > zNear
//
// Returns:
//   - Matrix4x4: the projection matrix
//   - error: ErrInvalidArgument if a parameter is out of range
func Perspective(fovYDegrees, aspect, zNear, zFar float32) (Matrix4x4, error) {
	if err := validatePerspective(fovYDegrees, aspect, zNear, zFar); err != nil {
		return Identity4(), err
	}

	f := 1.0 / math32.Tan(DegToRad(fovYDegrees)/2.0)
	var out Matrix4x4
	out[0] = f / aspect
	out[5] = f
	out[10] = (zFar + zNear) / (zNear - zFar)
	out[11] = -1.0
	out[14] = (2 * zFar * zNear) / (zNear - zFar)
	return out, nil
}

// SetPerspective replaces the receiver with a perspective projection matrix.
// On invalid parameters the receiver is left untouched and ErrInvalidArgument is returned.
func (m *Matrix4x4) SetPerspective(fovYDegrees, aspect, zNear, zFar float32) error {
	p, err := Perspective(fovYDegrees, aspect, zNear, zFar)
	if err != nil {
		return err
	}
	*m = p
	return nil
}

func validatePerspective(fovYDegrees, aspect, zNear, zFar float32) error {
	switch {
	case !isFinite(fovYDegrees) || fovYDegrees <= 0 || fovYDegrees >= 180:
		return fmt.Errorf("perspective fov %v outside (0, 180): %w", fovYDegrees, ErrInvalidArgument)
	case !isFinite(aspect) || aspect <= 0:
		return fmt.Errorf("perspective aspect %v must be positive: %w", aspect, ErrInvalidArgument)
	case !isFinite(zNear) || zNear <= 0:
		return fmt.Errorf("perspective near plane %v must be positive: %w", zNear, ErrInvalidArgument)
	case !isFinite(zFar) || zFar <= zNear:
		return fmt.Errorf("perspective far plane %v must be greater than near plane %v: %w", zFar, zNear, ErrInvalidArgument)
	}
	return nil
}

// Translate returns a translation matrix.
func Translate(x, y, z float32) Matrix4x4 {
	m := Identity4()
	m[12] = x
	m[13] = y
	m[14] = z
	return m
}

// TranslateV returns a translation matrix for the given offset.
func TranslateV(v Vector3) Matrix4x4 {
	return Translate(v.X, v.Y, v.Z)
}

// RotateX returns a right-handed rotation about the +X axis.
//
// Parameters:
//   - degrees: rotation angle in degrees
//
// Returns:
//   - Matrix4x4: the rotation matrix
func RotateX(degrees float32) Matrix4x4 {
	s, c := math32.Sincos(DegToRad(degrees))
	m := Identity4()
	m[5] = c
	m[6] = s
	m[9] = -s
	m[10] = c
	return m
}

// RotateY returns a right-handed rotation about the +Y axis.
//
// Parameters:
//   - degrees: rotation angle in degrees
//
// Returns:
//   - Matrix4x4: the rotation matrix
func RotateY(degrees float32) Matrix4x4 {
	s, c := math32.Sincos(DegToRad(degrees))
	m := Identity4()
	m[0] = c
	m[2] = -s
	m[8] = s
	m[10] = c
	return m
}

// RotateZ returns a right-handed rotation about the +Z axis.
func RotateZ(degrees float32) Matrix4x4 {
	s, c := math32.Sincos(DegToRad(degrees))
	m := Identity4()
	m[0] = c
	m[1] = s
	m[4] = -s
	m[5] = c
	return m
}

// Translation returns the translation column of the matrix.
func (m Matrix4x4) Translation() Vector3 {
	return Vector3{m[12], m[13], m[14]}
}

// TransformPoint applies the matrix to a point (w = 1). When the resulting w is neither 0
// nor 1 the result is divided by w.
//
// Parameters:
//   - v: the point to transform
//
// Returns:
//   - Vector3: the transformed point
func (m Matrix4x4) TransformPoint(v Vector3) Vector3 {
	x := m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]
	y := m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]
	z := m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]
	w := m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]
	if w != 0 && w != 1 {
		return Vector3{x / w, y / w, z / w}
	}
	return Vector3{x, y, z}
}

// Determinant returns the determinant of the matrix using the Laplace expansion.
func (m Matrix4x4) Determinant() float32 {
	s0, s1, s2, s3, s4, s5, c0, c1, c2, c3, c4, c5 := m.subDeterminants()
	return s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
}

// subDeterminants returns the 2x2 sub-determinants of the upper-left (s*) and lower-right
// (c*) quadrants shared by Determinant and Inverse.
func (m Matrix4x4) subDeterminants() (s0, s1, s2, s3, s4, s5, c0, c1, c2, c3, c4, c5 float32) {
	s0 = m[0]*m[5] - m[4]*m[1]
	s1 = m[0]*m[6] - m[4]*m[2]
	s2 = m[0]*m[7] - m[4]*m[3]
	s3 = m[1]*m[6] - m[5]*m[2]
	s4 = m[1]*m[7] - m[5]*m[3]
	s5 = m[2]*m[7] - m[6]*m[3]

	c5 = m[10]*m[15] - m[14]*m[11]
	c4 = m[9]*m[15] - m[13]*m[11]
	c3 = m[9]*m[14] - m[13]*m[10]
	c2 = m[8]*m[15] - m[12]*m[11]
	c1 = m[8]*m[14] - m[12]*m[10]
	c0 = m[8]*m[13] - m[12]*m[9]
	return
}

// Inverse computes the inverse of the matrix using the cofactor method.
// If the matrix is singular the identity is returned together with false.
//
// Returns:
//   - Matrix4x4: the inverse matrix
//   - bool: true if the matrix was invertible
func (m Matrix4x4) Inverse() (Matrix4x4, bool) {
	s0, s1, s2, s3, s4, s5, c0, c1, c2, c3, c4, c5 := m.subDeterminants()

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
	if det == 0 {
		return Identity4(), false
	}
	invDet := 1.0 / det

	var out Matrix4x4
	out[0] = (m[5]*c5 - m[6]*c4 + m[7]*c3) * invDet
	out[1] = (-m[1]*c5 + m[2]*c4 - m[3]*c3) * invDet
	out[2] = (m[13]*s5 - m[14]*s4 + m[15]*s3) * invDet
	out[3] = (-m[9]*s5 + m[10]*s4 - m[11]*s3) * invDet

	out[4] = (-m[4]*c5 + m[6]*c2 - m[7]*c1) * invDet
	out[5] = (m[0]*c5 - m[2]*c2 + m[3]*c1) * invDet
	out[6] = (-m[12]*s5 + m[14]*s2 - m[15]*s1) * invDet
	out[7] = (m[8]*s5 - m[10]*s2 + m[11]*s1) * invDet

	out[8] = (m[4]*c4 - m[5]*c2 + m[7]*c0) * invDet
	out[9] = (-m[0]*c4 + m[1]*c2 - m[3]*c0) * invDet
	out[10] = (m[12]*s4 - m[13]*s2 + m[15]*s0) * invDet
	out[11] = (-m[8]*s4 + m[9]*s2 - m[11]*s0) * invDet

	out[12] = (-m[4]*c3 + m[5]*c1 - m[6]*c0) * invDet
	out[13] = (m[0]*c3 - m[1]*c1 + m[2]*c0) * invDet
	out[14] = (-m[12]*s3 + m[13]*s1 - m[14]*s0) * invDet
	out[15] = (m[8]*s3 - m[9]*s1 + m[10]*s0) * invDet

	return out, true
}

// Ptr returns a pointer to the 16 column-major scalars, suitable for handing to a graphics API.
func (m *Matrix4x4) Ptr() *[16]float32 {
	return (*[16]float32)(m)
}

// Slice returns the 16 column-major scalars as a slice sharing the matrix storage.
func (m *Matrix4x4) Slice() []float32 {
	return m[:]
}

// Bytes serializes the matrix as 64 little-endian float32 bytes in column-major order.
func (m Matrix4x4) Bytes() []byte {
	buf := make([]byte, 64)
	m.PutBytes(buf)
	return buf
}

// PutBytes writes the matrix into buf as little-endian float32 values in column-major order.
// buf must hold at least 64 bytes.
func (m Matrix4x4) PutBytes(buf []byte) {
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(m[i]))
	}
}

// DegToRad converts degrees to radians.
func DegToRad(degrees float32) float32 {
	return degrees * (math32.Pi / 180.0)
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float32) float32 {
	return radians * (180.0 / math32.Pi)
}

func isFinite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

// IsFinite reports whether every value is neither NaN nor infinite.
func IsFinite(values ...float32) bool {
	for _, v := range values {
		if !isFinite(v) {
			return false
		}
	}
	return true
}
