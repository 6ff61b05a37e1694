package math3d

import "math"

// Matrix is a row-major 4x4 matrix using the row-vector convention: a
// vertex is transformed as v' = v * M, so translation lives in the
// bottom row rather than the rightmost column. This matches the spec's
// left-handed clip space (z in [0, w]) and its post-multiply rule.
type Matrix [4][4]float64

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// ZeroMatrix returns the all-zero matrix.
func ZeroMatrix() Matrix {
	return Matrix{}
}

// Translate returns a translation matrix for (x, y, z).
func Translate(x, y, z float64) Matrix {
	m := Identity()
	m[3][0], m[3][1], m[3][2] = x, y, z
	return m
}

// Scale returns a scaling matrix for (x, y, z).
func Scale(x, y, z float64) Matrix {
	m := ZeroMatrix()
	m[0][0], m[1][1], m[2][2], m[3][3] = x, y, z, 1
	return m
}

// Rotate returns the rotation matrix for theta radians about the unit
// axis parallel to (x, y, z). The axis is taken as given; normalize it
// first if it isn't already unit length.
func Rotate(x, y, z, theta float64) Matrix {
	c, s := math.Cos(theta), math.Sin(theta)
	t := 1 - c
	m := Identity()
	m[0][0], m[0][1], m[0][2] = t*x*x+c, t*x*y+s*z, t*x*z-s*y
	m[1][0], m[1][1], m[1][2] = t*x*y-s*z, t*y*y+c, t*y*z+s*x
	m[2][0], m[2][1], m[2][2] = t*x*z+s*y, t*y*z-s*x, t*z*z+c
	return m
}

// LookAt returns a right-handed view transform: forward f = normalize(at
// - eye), right r = normalize(up x f), up u = f x r. It translates world
// space by -eye and rotates into the {r, u, f} basis.
func LookAt(eye, at, up Vector) Matrix {
	f := at.Sub(eye).Normalize()
	r := up.Cross(f).Normalize()
	u := f.Cross(r)

	m := Identity()
	m[0][0], m[1][0], m[2][0] = r.X, r.Y, r.Z
	m[0][1], m[1][1], m[2][1] = u.X, u.Y, u.Z
	m[0][2], m[1][2], m[2][2] = f.X, f.Y, f.Z
	m[3][0] = -r.Dot(eye)
	m[3][1] = -u.Dot(eye)
	m[3][2] = -f.Dot(eye)
	return m
}

// Perspective returns a left-handed perspective projection into the clip
// cube x,y in [-w, w], z in [0, w]. fovy is the vertical field of view in
// radians, aspect is width/height, zn and zf are the near and far planes.
func Perspective(fovy, aspect, zn, zf float64) Matrix {
	cot := 1 / math.Tan(fovy/2)
	m := ZeroMatrix()
	m[0][0] = cot / aspect
	m[1][1] = cot
	m[2][2] = zf / (zf - zn)
	m[2][3] = 1
	m[3][2] = -zn * zf / (zf - zn)
	return m
}

// Mul returns the standard matrix product a * b. The result is computed
// into a fresh matrix so it is safe to alias a or b with the receiver of
// an assignment (e.g. m = Mul(m, m)).
func Mul(a, b Matrix) Matrix {
	var c Matrix
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += a[i][k] * b[k][j]
			}
			c[i][j] = sum
		}
	}
	return c
}

// Apply transforms v by m under the row-vector convention: y = v * m.
// The fourth component of the result is the homogeneous w used for
// clipping and, after Homogenize, the perspective-correction factor.
func Apply(v Vector, m Matrix) Vector {
	return Vector{
		X: v.X*m[0][0] + v.Y*m[1][0] + v.Z*m[2][0] + v.W*m[3][0],
		Y: v.X*m[0][1] + v.Y*m[1][1] + v.Z*m[2][1] + v.W*m[3][1],
		Z: v.X*m[0][2] + v.Y*m[1][2] + v.Z*m[2][2] + v.W*m[3][2],
		W: v.X*m[0][3] + v.Y*m[1][3] + v.Z*m[2][3] + v.W*m[3][3],
	}
}
