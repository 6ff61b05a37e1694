package raster

import (
	"testing"

	"github.com/mini3dgo/raster3d/pkg/math3d"
)

func newIdentityDevice(t *testing.T, w, h int) *Device {
	t.Helper()
	d, err := New(w, h)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	d.Transform = Transform{
		World:      math3d.Identity(),
		View:       math3d.Identity(),
		Projection: math3d.Identity(),
		W:          float64(w),
		H:          float64(h),
	}
	d.Transform.Update()
	return d
}

func TestNewDeviceDefaults(t *testing.T) {
	d, err := New(8, 8)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if d.RenderState != Wireframe {
		t.Errorf("RenderState = %v, want Wireframe", d.RenderState)
	}
	if d.Background != Gray.Pack() {
		t.Errorf("Background = %#08x, want %#08x", d.Background, Gray.Pack())
	}
	if d.Foreground != White.Pack() {
		t.Errorf("Foreground = %#08x, want %#08x", d.Foreground, White.Pack())
	}
}

func TestNewRejectsNonPositiveSize(t *testing.T) {
	if _, err := New(0, 10); err == nil {
		t.Error("New(0, 10) should error")
	}
	if _, err := New(10, -1); err == nil {
		t.Error("New(10, -1) should error")
	}
}

func TestNewWithFramebufferReferencesExternal(t *testing.T) {
	external := make([]uint32, 4*4)
	d, err := NewWithFramebuffer(4, 4, external)
	if err != nil {
		t.Fatalf("NewWithFramebuffer: %v", err)
	}
	d.Pixel(1, 1, 0x00ABCDEF)
	if external[1*4+1] != 0x00ABCDEF {
		t.Errorf("external[5] = %#08x, want %#08x", external[5], 0x00ABCDEF)
	}
}

func TestNewWithFramebufferRejectsUndersized(t *testing.T) {
	if _, err := NewWithFramebuffer(4, 4, make([]uint32, 4)); err == nil {
		t.Error("expected error for undersized external framebuffer")
	}
}

func TestDeviceClearFillsBackgroundAndDepth(t *testing.T) {
	d := newIdentityDevice(t, 4, 4)
	d.Clear(0)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := d.fbRows[y][x]; got != d.Background {
				t.Fatalf("pixel (%d,%d) = %#08x, want background %#08x", x, y, got, d.Background)
			}
			if d.zRows[y][x] != 0 {
				t.Fatalf("z (%d,%d) = %v, want 0", x, y, d.zRows[y][x])
			}
		}
	}
}

func TestDevicePixelBoundsChecked(t *testing.T) {
	d := newIdentityDevice(t, 4, 4)
	d.Clear(0)
	before := d.Background

	d.Pixel(-1, 0, 0x00FFFFFF)
	d.Pixel(0, -1, 0x00FFFFFF)
	d.Pixel(4, 0, 0x00FFFFFF)
	d.Pixel(0, 4, 0x00FFFFFF)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if d.fbRows[y][x] != before {
				t.Fatalf("out-of-range write leaked into (%d,%d)", x, y)
			}
		}
	}
}

func TestDrawLineEndpoints(t *testing.T) {
	d := newIdentityDevice(t, 8, 8)
	d.Clear(0)
	d.DrawLine(0, 0, 3, 0, White.Pack())
	for x := 0; x <= 3; x++ {
		if d.fbRows[0][x] != White.Pack() {
			t.Errorf("pixel (%d,0) not drawn", x)
		}
	}
}

// clipVertex builds a clip-space vertex whose screen position, after
// Homogenize with an identity transform over a 4x4 viewport, lands at
// (sx, sy). w and z are held fixed at 1 and 0.5.
func clipVertex(sx, sy float64, c Color) Vertex {
	x := sx/2 - 1
	y := 1 - sy/2
	return Vertex{Pos: math3d.V(x, y, 0.5, 1), Color: c}
}

func TestDrawPrimitiveSolidColorCoverage(t *testing.T) {
	d := newIdentityDevice(t, 4, 4)
	d.RenderState = ColorState
	d.Clear(0)

	v1 := clipVertex(2, 1, Red)
	v2 := clipVertex(3, 3, Red)
	v3 := clipVertex(1, 3, Red)
	d.DrawPrimitive(v1, v2, v3)

	covered := false
	background := false
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			switch d.fbRows[y][x] {
			case Red.Pack():
				covered = true
			case d.Background:
				background = true
			}
		}
	}
	if !covered {
		t.Error("expected at least one red pixel under the triangle")
	}
	if !background {
		t.Error("expected at least one background pixel outside the triangle")
	}
}

func TestDrawPrimitiveDepthTest(t *testing.T) {
	d := newIdentityDevice(t, 4, 4)
	d.RenderState = ColorState
	d.Clear(0)

	far := []Vertex{
		{Pos: math3d.V(-2, 2, 1, 2), Color: Blue},
		{Pos: math3d.V(2, 2, 1, 2), Color: Blue},
		{Pos: math3d.V(-2, -2, 1, 2), Color: Blue},
	}
	d.DrawPrimitive(far[0], far[1], far[2])

	near := []Vertex{
		{Pos: math3d.V(-1, 1, 0.5, 1), Color: Red},
		{Pos: math3d.V(1, 1, 0.5, 1), Color: Red},
		{Pos: math3d.V(-1, -1, 0.5, 1), Color: Red},
	}
	d.DrawPrimitive(near[0], near[1], near[2])

	if d.fbRows[1][1] != Red.Pack() {
		t.Errorf("pixel (1,1) = %#08x, want red (nearer wins)", d.fbRows[1][1])
	}
}

func TestDrawPrimitiveBackfaceCull(t *testing.T) {
	d := newIdentityDevice(t, 4, 4)
	d.RenderState = ColorState | CCWCulling
	d.Clear(0)
	before := make([][]uint32, 4)
	for y := range before {
		before[y] = append([]uint32(nil), d.fbRows[y]...)
	}

	// Clockwise screen-space winding per spec scenario 3: (0,0),(0,2),(2,0).
	v1 := clipVertex(0, 0, Red)
	v2 := clipVertex(0, 2, Red)
	v3 := clipVertex(2, 0, Red)
	d.DrawPrimitive(v1, v2, v3)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if d.fbRows[y][x] != before[y][x] {
				t.Fatalf("pixel (%d,%d) changed despite backface cull", x, y)
			}
		}
	}
}

func TestDrawPrimitiveClipRejection(t *testing.T) {
	d := newIdentityDevice(t, 4, 4)
	d.RenderState = ColorState
	d.Clear(0)
	before := make([][]uint32, 4)
	for y := range before {
		before[y] = append([]uint32(nil), d.fbRows[y]...)
	}

	v1 := Vertex{Pos: math3d.V(0, 0, -1, 1), Color: Red} // z < 0: rejected
	v2 := clipVertex(3, 3, Red)
	v3 := clipVertex(1, 3, Red)
	d.DrawPrimitive(v1, v2, v3)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if d.fbRows[y][x] != before[y][x] {
				t.Fatalf("pixel (%d,%d) written despite clip rejection", x, y)
			}
		}
	}
}

func TestDrawPrimitiveWireframeOnly(t *testing.T) {
	d := newIdentityDevice(t, 4, 4)
	d.RenderState = Wireframe
	d.Clear(0)

	v1 := clipVertex(0, 0, White)
	v2 := clipVertex(3, 0, White)
	v3 := clipVertex(0, 3, White)
	d.DrawPrimitive(v1, v2, v3)

	if d.fbRows[0][0] != d.Foreground {
		t.Errorf("corner (0,0) should be on an edge: got %#08x", d.fbRows[0][0])
	}
	interior := false
	for y := 1; y < 3; y++ {
		for x := 1; x+y < 3; x++ {
			if d.fbRows[y][x] == d.Background {
				interior = true
			}
		}
	}
	if !interior {
		t.Error("expected at least one background pixel left inside the wireframe triangle")
	}
}

func TestDrawPrimitiveTextured(t *testing.T) {
	d := newIdentityDevice(t, 4, 4)
	d.RenderState = TextureState
	d.Clear(0)

	v1 := Vertex{Pos: math3d.V(-1, 1, 0.5, 1), TC: math3d.V2(0, 0)}
	v2 := Vertex{Pos: math3d.V(1, 1, 0.5, 1), TC: math3d.V2(1, 0)}
	v3 := Vertex{Pos: math3d.V(-1, -1, 0.5, 1), TC: math3d.V2(0, 1)}
	d.DrawPrimitive(v1, v2, v3)

	sawBlack, sawWhite := false, false
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			switch d.fbRows[y][x] {
			case Black.Pack():
				sawBlack = true
			case White.Pack():
				sawWhite = true
			}
		}
	}
	if !sawBlack && !sawWhite {
		t.Error("expected checkerboard texture colors to appear in the framebuffer")
	}
}

func TestDrawPrimitiveTextureTakesPrecedenceOverColor(t *testing.T) {
	d := newIdentityDevice(t, 4, 4)
	d.RenderState = ColorState | TextureState
	d.Clear(0)

	v1 := Vertex{Pos: math3d.V(-1, 1, 0.5, 1), TC: math3d.V2(0, 0), Color: Red}
	v2 := Vertex{Pos: math3d.V(1, 1, 0.5, 1), TC: math3d.V2(1, 0), Color: Red}
	v3 := Vertex{Pos: math3d.V(-1, -1, 0.5, 1), TC: math3d.V2(0, 1), Color: Red}
	d.DrawPrimitive(v1, v2, v3)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if d.fbRows[y][x] == Red.Pack() {
				t.Fatalf("pixel (%d,%d) shaded with vertex color, TEXTURE should take precedence", x, y)
			}
		}
	}
}
