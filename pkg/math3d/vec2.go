package math3d

// Vec2 is a 2-component vector used for texture coordinates.
type Vec2 struct {
	U, V float64
}

// V2 creates a Vec2.
func V2(u, v float64) Vec2 {
	return Vec2{u, v}
}

// Add returns the componentwise sum.
func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a.U + b.U, a.V + b.V}
}

// Sub returns the componentwise difference.
func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a.U - b.U, a.V - b.V}
}

// Scale returns a scaled componentwise by s.
func (a Vec2) Scale(s float64) Vec2 {
	return Vec2{a.U * s, a.V * s}
}

// Lerp returns the linear interpolation between a and b by t.
func (a Vec2) Lerp(b Vec2, t float64) Vec2 {
	return Vec2{
		a.U + (b.U-a.U)*t,
		a.V + (b.V-a.V)*t,
	}
}
