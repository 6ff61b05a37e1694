package raster

import "github.com/mini3dgo/raster3d/pkg/math3d"

// Vertex carries a homogeneous position alongside the attributes that get
// interpolated across a triangle. Rhw is the reciprocal of the clip-space
// w; after RhwInit, TC and Color are pre-multiplied by it so that linear
// interpolation in screen space yields perspective-correct results once
// divided back out at sample time.
type Vertex struct {
	Pos   math3d.Vector
	TC    math3d.Vec2
	Color Color
	Rhw   float64
}

// RhwInit pulls Rhw out of the vertex's position (Homogenize already left
// the reciprocal-w there as Pos.W) and pre-multiplies the interpolatable
// attributes by it. Call this once per vertex after homogenizing and
// before trapezoid decomposition.
func (v *Vertex) RhwInit() {
	v.Rhw = v.Pos.W
	v.TC = v.TC.Scale(v.Rhw)
	v.Color = v.Color.Scale(v.Rhw)
}

// Interp linearly interpolates pos (xyz), tc, color and rhw between a and
// b by t, writing the result into y. t=0 yields a, t=1 yields b.
func Interp(y *Vertex, a, b Vertex, t float64) {
	y.Pos = math3d.Interp(a.Pos, b.Pos, t)
	y.TC = a.TC.Lerp(b.TC, t)
	y.Color = a.Color.Add(b.Color.Sub(a.Color).Scale(t))
	y.Rhw = a.Rhw + (b.Rhw-a.Rhw)*t
}

// Division computes the per-pixel step y = (b - a) / width across every
// interpolated field. Callers must guard width > 0 themselves; this never
// divides by zero on their behalf.
func Division(y *Vertex, a, b Vertex, width float64) {
	inv := 1 / width
	y.Pos = math3d.V(
		(b.Pos.X-a.Pos.X)*inv,
		(b.Pos.Y-a.Pos.Y)*inv,
		(b.Pos.Z-a.Pos.Z)*inv,
		(b.Pos.W-a.Pos.W)*inv,
	)
	y.TC = math3d.V2((b.TC.U-a.TC.U)*inv, (b.TC.V-a.TC.V)*inv)
	y.Color = Color{
		R: (b.Color.R - a.Color.R) * inv,
		G: (b.Color.G - a.Color.G) * inv,
		B: (b.Color.B - a.Color.B) * inv,
	}
	y.Rhw = (b.Rhw - a.Rhw) * inv
}

// Add accumulates x into y on every interpolated field: y += x. Used to
// step a scanline's running vertex by its per-pixel delta.
func (y *Vertex) Add(x Vertex) {
	y.Pos = math3d.V(y.Pos.X+x.Pos.X, y.Pos.Y+x.Pos.Y, y.Pos.Z+x.Pos.Z, y.Pos.W+x.Pos.W)
	y.TC = math3d.V2(y.TC.U+x.TC.U, y.TC.V+x.TC.V)
	y.Color = Color{y.Color.R + x.Color.R, y.Color.G + x.Color.G, y.Color.B + x.Color.B}
	y.Rhw += x.Rhw
}
