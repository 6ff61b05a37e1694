// Package math3d provides the 4-wide vector and row-major matrix kernel
// that the rasterizer's transform and assembly stages are built on.
package math3d

import "math"

// Vector is a homogeneous 4-component vector. It plays three roles
// depending on context: a 3D point (W=1), a direction (W=0), or a
// homogeneous clip-space position (arbitrary W). No separate point type
// is introduced; callers track which role a Vector is playing.
type Vector struct {
	X, Y, Z, W float64
}

// V creates a Vector from all four components.
func V(x, y, z, w float64) Vector {
	return Vector{x, y, z, w}
}

// Point creates a Vector representing a 3D point (W=1).
func Point(x, y, z float64) Vector {
	return Vector{x, y, z, 1}
}

// Dir creates a Vector representing a direction (W=0).
func Dir(x, y, z float64) Vector {
	return Vector{x, y, z, 0}
}

// Zero returns the zero vector.
func Zero() Vector {
	return Vector{}
}

// Length returns the magnitude of the xyz part; W is ignored.
func (v Vector) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Add returns the componentwise sum of the xyz parts of v and o. The
// result always carries W=1, matching the contract that vector addition
// produces a point.
func (v Vector) Add(o Vector) Vector {
	return Vector{v.X + o.X, v.Y + o.Y, v.Z + o.Z, 1}
}

// Sub returns the componentwise difference of the xyz parts of v and o.
// The result always carries W=1.
func (v Vector) Sub(o Vector) Vector {
	return Vector{v.X - o.X, v.Y - o.Y, v.Z - o.Z, 1}
}

// Scale returns v with its xyz part scaled by s. W is left untouched.
func (v Vector) Scale(s float64) Vector {
	return Vector{v.X * s, v.Y * s, v.Z * s, v.W}
}

// Dot returns the dot product of the xyz parts of v and o; W does not
// participate.
func (v Vector) Dot(o Vector) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the right-handed cross product of the xyz parts of v and
// o. The result always carries W=1.
func (v Vector) Cross(o Vector) Vector {
	return Vector{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
		1,
	}
}

// Normalize scales the xyz part to unit length. If the vector has zero
// length it is returned unchanged — normalization never errors and never
// touches W.
func (v Vector) Normalize() Vector {
	l := v.Length()
	if l == 0 {
		return v
	}
	inv := 1 / l
	return Vector{v.X * inv, v.Y * inv, v.Z * inv, v.W}
}

// Interp returns the componentwise linear interpolation of the xyz parts
// of a and b by t (0 returns a, 1 returns b). The result always carries
// W=1.
func Interp(a, b Vector, t float64) Vector {
	return Vector{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
		1,
	}
}
