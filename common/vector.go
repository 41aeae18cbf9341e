package common

import (
	"github.com/chewxy/math32"
)

// Vector3 is an immutable three-component float32 vector used for points, offsets and directions.
type Vector3 struct {
	X, Y, Z float32
}

// Vec3 constructs a Vector3.
func Vec3(x, y, z float32) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Add returns v + a.
func (v Vector3) Add(a Vector3) Vector3 {
	return Vector3{v.X + a.X, v.Y + a.Y, v.Z + a.Z}
}

// Sub returns v - a.
func (v Vector3) Sub(a Vector3) Vector3 {
	return Vector3{v.X - a.X, v.Y - a.Y, v.Z - a.Z}
}

// Scale returns v multiplied by s.
func (v Vector3) Scale(s float32) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// Negate returns -v.
func (v Vector3) Negate() Vector3 {
	return Vector3{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product of v and a.
func (v Vector3) Dot(a Vector3) float32 {
	return v.X*a.X + v.Y*a.Y + v.Z*a.Z
}

// Cross returns the cross product v x a.
func (v Vector3) Cross(a Vector3) Vector3 {
	return Vector3{
		v.Y*a.Z - v.Z*a.Y,
		v.Z*a.X - v.X*a.Z,
		v.X*a.Y - v.Y*a.X,
	}
}

// Length returns the Euclidean length of v.
func (v Vector3) Length() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vector3) Normalize() Vector3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Array returns the components as a [3]float32, matching the layout GPU structs expect.
func (v Vector3) Array() [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}
