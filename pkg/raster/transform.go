package raster

import (
	"math"

	"github.com/mini3dgo/raster3d/pkg/math3d"
)

// Clip-volume rejection bits returned by CheckCVV, one per violated
// half-space of the canonical view volume.
const (
	CVVXMin = 1 << iota
	CVVXMax
	CVVYMin
	CVVYMax
	CVVZMin
	CVVZMax
)

// Transform holds the world/view/projection stack and the screen
// dimensions needed to homogenize clip-space positions into pixels.
// Update must be called after any of World, View or Projection changes;
// nothing recomputes Combined automatically.
type Transform struct {
	World      math3d.Matrix
	View       math3d.Matrix
	Projection math3d.Matrix
	Combined   math3d.Matrix
	W, H       float64
}

// Init sets world and view to identity, projection to a default
// perspective (fovy = pi/2, aspect = width/height, near 1.0, far 500.0),
// records the screen dimensions, and brings Combined up to date.
func Init(width, height int) Transform {
	t := Transform{
		World: math3d.Identity(),
		View:  math3d.Identity(),
		W:     float64(width),
		H:     float64(height),
	}
	t.Projection = math3d.Perspective(math.Pi/2, t.W/t.H, 1.0, 500.0)
	t.Update()
	return t
}

// Update recomputes Combined = World * View * Projection.
func (t *Transform) Update() {
	t.Combined = math3d.Mul(math3d.Mul(t.World, t.View), t.Projection)
}

// Apply transforms x into homogeneous clip space: y = x * Combined.
func (t *Transform) Apply(x math3d.Vector) math3d.Vector {
	return math3d.Apply(x, t.Combined)
}

// CheckCVV returns zero iff v lies within the canonical view volume
// (-w <= x,y <= w, 0 <= z <= w); otherwise each violated half-space sets
// its corresponding bit.
func CheckCVV(v math3d.Vector) int {
	w := v.W
	var bits int
	if v.X < -w {
		bits |= CVVXMin
	}
	if v.X > w {
		bits |= CVVXMax
	}
	if v.Y < -w {
		bits |= CVVYMin
	}
	if v.Y > w {
		bits |= CVVYMax
	}
	if v.Z < 0 {
		bits |= CVVZMin
	}
	if v.Z > w {
		bits |= CVVZMax
	}
	return bits
}

// Homogenize projects a clip-space vertex x into screen space and
// returns the result. The reciprocal-w used for the divide is left in
// the result's W so that RhwInit can pick it straight up without a
// second inversion.
// Y is flipped so clip +Y maps to screen -Y (origin top-left).
func (t *Transform) Homogenize(x math3d.Vector) math3d.Vector {
	rhw := 1 / x.W
	return math3d.Vector{
		X: (x.X*rhw + 1) * t.W / 2,
		Y: (1 - x.Y*rhw) * t.H / 2,
		Z: x.Z * rhw,
		W: rhw,
	}
}

// CheckCCWCulling reports whether the screen-space triangle p1,p2,p3
// should be culled under a counter-clockwise-front convention: the
// signed area of the triangle is <= 0.
func CheckCCWCulling(p1, p2, p3 math3d.Vector) bool {
	area := (p2.X-p1.X)*(p3.Y-p1.Y) - (p2.Y-p1.Y)*(p3.X-p1.X)
	return area <= 0
}
