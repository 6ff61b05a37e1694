package raster

// Edge is one side of a trapezoid: V1 and V2 are its fixed endpoints
// (V1.Pos.Y <= V2.Pos.Y) and V is scratch space, refreshed per scanline
// by EdgeInterp.
type Edge struct {
	V1, V2 Vertex
	V      Vertex
}

// Trapezoid is a screen-space region bounded above and below by the
// horizontal lines Top and Bottom (Top < Bottom), with Left and Right
// edges sharing those Y endpoints.
type Trapezoid struct {
	Top, Bottom float64
	Left, Right Edge
}

// Scanline is a single horizontal run of pixels to shade: V is the
// starting vertex at (X, Y), Step is the per-pixel delta, and W is the
// pixel count (not homogeneous w).
type Scanline struct {
	V    Vertex
	Step Vertex
	X, Y int
	W    int
}

// sortByY returns p1, p2, p3 reordered so Y is ascending.
func sortByY(p1, p2, p3 Vertex) (t, m, b Vertex) {
	v := [3]Vertex{p1, p2, p3}
	if v[0].Pos.Y > v[1].Pos.Y {
		v[0], v[1] = v[1], v[0]
	}
	if v[1].Pos.Y > v[2].Pos.Y {
		v[1], v[2] = v[2], v[1]
	}
	if v[0].Pos.Y > v[1].Pos.Y {
		v[0], v[1] = v[1], v[0]
	}
	return v[0], v[1], v[2]
}

// InitTriangle sorts p1, p2, p3 by screen Y and decomposes the resulting
// triangle into 0, 1 or 2 trapezoids, written into out. It returns the
// count actually produced: 0 for a degenerate line or point, 1 for a
// flat-top or flat-bottom triangle, 2 for the general case split at the
// middle vertex's Y.
func InitTriangle(out *[2]Trapezoid, p1, p2, p3 Vertex) int {
	t, m, b := sortByY(p1, p2, p3)

	if t.Pos.Y == b.Pos.Y {
		return 0
	}
	if t.Pos.X == m.Pos.X && m.Pos.X == b.Pos.X {
		return 0
	}

	if t.Pos.Y == m.Pos.Y {
		if t.Pos.X > m.Pos.X {
			t, m = m, t
		}
		out[0] = Trapezoid{
			Top:    t.Pos.Y,
			Bottom: b.Pos.Y,
			Left:   Edge{V1: t, V2: b},
			Right:  Edge{V1: m, V2: b},
		}
		return 1
	}

	if m.Pos.Y == b.Pos.Y {
		if m.Pos.X > b.Pos.X {
			m, b = b, m
		}
		out[0] = Trapezoid{
			Top:    t.Pos.Y,
			Bottom: b.Pos.Y,
			Left:   Edge{V1: t, V2: m},
			Right:  Edge{V1: t, V2: b},
		}
		return 1
	}

	splitT := (m.Pos.Y - t.Pos.Y) / (b.Pos.Y - t.Pos.Y)
	var split Vertex
	Interp(&split, t, b, splitT)
	split.Pos.Y = m.Pos.Y // pin exactly onto the split scanline

	if split.Pos.X < m.Pos.X {
		out[0] = Trapezoid{
			Top:    t.Pos.Y,
			Bottom: m.Pos.Y,
			Left:   Edge{V1: t, V2: split},
			Right:  Edge{V1: t, V2: m},
		}
		out[1] = Trapezoid{
			Top:    m.Pos.Y,
			Bottom: b.Pos.Y,
			Left:   Edge{V1: split, V2: b},
			Right:  Edge{V1: m, V2: b},
		}
	} else {
		out[0] = Trapezoid{
			Top:    t.Pos.Y,
			Bottom: m.Pos.Y,
			Left:   Edge{V1: t, V2: m},
			Right:  Edge{V1: t, V2: split},
		}
		out[1] = Trapezoid{
			Top:    m.Pos.Y,
			Bottom: b.Pos.Y,
			Left:   Edge{V1: m, V2: b},
			Right:  Edge{V1: split, V2: b},
		}
	}
	return 2
}

// EdgeInterp refreshes the scratch vertex of trap's left and right edges
// at height y.
func EdgeInterp(trap *Trapezoid, y float64) {
	for _, e := range [2]*Edge{&trap.Left, &trap.Right} {
		t := (y - e.V1.Pos.Y) / (e.V2.Pos.Y - e.V1.Pos.Y)
		Interp(&e.V, e.V1, e.V2, t)
	}
}

// InitScanLine builds the scanline for trap at height y: the pixel span
// is [left.V.Pos.X, right.V.Pos.X) rounded to nearest, and Step is the
// per-pixel delta across that span (left unset when the span is empty).
func InitScanLine(trap Trapezoid, y int) Scanline {
	left := trap.Left.V.Pos.X
	right := trap.Right.V.Pos.X
	width := int(right+0.5) - int(left+0.5)

	scan := Scanline{
		X: int(left + 0.5),
		Y: y,
		V: trap.Left.V,
	}
	if width > 0 {
		scan.W = width
		Division(&scan.Step, trap.Left.V, trap.Right.V, float64(width))
	}
	return scan
}
