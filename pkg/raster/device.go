package raster

import (
	"fmt"
	"math"
)

// Render-state bits. Orthogonal and combinable: e.g. WIREFRAME|COLOR
// overlays an edge outline on top of a filled, solid-shaded triangle.
const (
	Wireframe  = 1 << iota // draw edges only
	TextureState           // sample the current texture
	ColorState             // shade with interpolated vertex color
	CCWCulling             // discard clockwise-wound triangles
)

// Device owns the framebuffer and z-buffer (unless an external
// framebuffer was supplied at construction, in which case it only owns
// the z-buffer), the current transform stack, an optional current
// texture, and the render-state bitmask that controls how primitives are
// shaded.
type Device struct {
	Width, Height int
	Transform     Transform
	RenderState   int
	Background    uint32
	Foreground    uint32

	fbOwned bool
	fbRows  [][]uint32
	zRows   [][]float32

	tex *Texture
}

// New allocates a device that owns its own framebuffer and z-buffer,
// both packed into single backing blocks and sliced into row pointers.
// It starts in wireframe mode with a neutral gray background, a white
// foreground, and the default checkerboard texture, matching the
// reference device's initial state.
func New(width, height int) (*Device, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("raster: invalid device size %dx%d", width, height)
	}
	fbBacking := make([]uint32, width*height)
	fbRows := make([][]uint32, height)
	for y := 0; y < height; y++ {
		fbRows[y] = fbBacking[y*width : (y+1)*width]
	}
	return newDevice(width, height, fbRows, true)
}

// NewWithFramebuffer allocates a device whose framebuffer rows reference
// an externally owned backing block instead of one the device allocates
// itself. The caller must keep fb alive for the device's lifetime and
// sized width*height. The device still owns and allocates its z-buffer.
func NewWithFramebuffer(width, height int, fb []uint32) (*Device, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("raster: invalid device size %dx%d", width, height)
	}
	if len(fb) < width*height {
		return nil, fmt.Errorf("raster: external framebuffer too small: have %d, need %d", len(fb), width*height)
	}
	rows := make([][]uint32, height)
	for y := 0; y < height; y++ {
		rows[y] = fb[y*width : (y+1)*width]
	}
	return newDevice(width, height, rows, false)
}

func newDevice(width, height int, fbRows [][]uint32, owns bool) (*Device, error) {
	zBacking := make([]float32, width*height)
	zRows := make([][]float32, height)
	for y := 0; y < height; y++ {
		zRows[y] = zBacking[y*width : (y+1)*width]
	}
	d := &Device{
		Width:       width,
		Height:      height,
		Transform:   Init(width, height),
		RenderState: Wireframe,
		Background:  Gray.Pack(),
		Foreground:  White.Pack(),
		fbOwned:     owns,
		fbRows:      fbRows,
		zRows:       zRows,
		tex:         CheckerTexture(),
	}
	return d, nil
}

// Destroy releases the device's owned storage. Safe to call multiple
// times; it is a no-op once the rows are released.
func (d *Device) Destroy() {
	d.fbRows = nil
	d.zRows = nil
	d.tex = nil
}

// SetTexture replaces the current texture with one whose row pointers
// are rebuilt over bits, stepping by pitch 32-bit words per row. The
// texture is referenced, not copied; it must outlive its use by the
// device or be replaced by a later SetTexture call.
func (d *Device) SetTexture(bits []uint32, pitch, w, h int) {
	if d.tex == nil {
		d.tex = &Texture{}
	}
	d.tex.SetFrom(bits, pitch, w, h)
}

// SetTextureImage installs tex directly as the current texture.
func (d *Device) SetTextureImage(tex *Texture) {
	d.tex = tex
}

// Clear fills every framebuffer row with the background color and every
// z-buffer row with 0.0 (the smallest rhw, i.e. farthest possible). When
// mode is nonzero, rows are filled with a vertical gradient from
// Background down to a darkened variant of it instead of a flat fill;
// this is purely aesthetic, not part of the depth or shading contract.
func (d *Device) Clear(mode int) {
	bg := Unpack(d.Background)
	for y := 0; y < d.Height; y++ {
		row := bg
		if mode != 0 {
			t := float64(y) / float64(d.Height-1)
			row = bg.Scale(1 - 0.6*t)
		}
		packed := row.Pack()
		fbRow := d.fbRows[y]
		for x := range fbRow {
			fbRow[x] = packed
		}
		zRow := d.zRows[y]
		for x := range zRow {
			zRow[x] = 0
		}
	}
}

// Pixel writes c at (x, y) if the coordinate is within bounds; an
// out-of-range write (including negative coordinates) is silently
// dropped.
func (d *Device) Pixel(x, y int, c uint32) {
	if uint(x) >= uint(d.Width) || uint(y) >= uint(d.Height) {
		return
	}
	d.fbRows[y][x] = c
}

// Pixel32 returns the framebuffer pixel at (x, y), or 0 if out of range.
// It exists so external consumers (a terminal or window presenter) can
// read back rendered pixels without reaching into the device's row
// tables directly.
func (d *Device) Pixel32(x, y int) uint32 {
	if uint(x) >= uint(d.Width) || uint(y) >= uint(d.Height) {
		return 0
	}
	return d.fbRows[y][x]
}

// DrawLine draws an integer Bresenham line from (x0,y0) to (x1,y1) in c.
// Out-of-range points are dropped by Pixel; there is no depth test, and
// the line unconditionally overwrites whatever was there.
func (d *Device) DrawLine(x0, y0, x1, y1 int, c uint32) {
	dx := iabs(x1 - x0)
	dy := -iabs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		d.Pixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func iabs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// DrawPrimitive transforms, clips, culls and rasterizes the triangle
// v1,v2,v3. Vertices outside the canonical view volume cause the whole
// triangle to be rejected; no partial clipping is performed. Under
// CCWCulling, clockwise-wound triangles are discarded. When COLOR or
// TEXTURE is set the interior is filled by trapezoid decomposition and
// scanline rasterization; when WIREFRAME is set the three edges are
// additionally drawn in Foreground, after (and so visually atop) any
// filled interior from the same call.
func (d *Device) DrawPrimitive(v1, v2, v3 Vertex) {
	c1, c2, c3 := v1, v2, v3

	c1.Pos = d.Transform.Apply(v1.Pos)
	c2.Pos = d.Transform.Apply(v2.Pos)
	c3.Pos = d.Transform.Apply(v3.Pos)

	if CheckCVV(c1.Pos) != 0 || CheckCVV(c2.Pos) != 0 || CheckCVV(c3.Pos) != 0 {
		return
	}

	c1.Pos = d.Transform.Homogenize(c1.Pos)
	c2.Pos = d.Transform.Homogenize(c2.Pos)
	c3.Pos = d.Transform.Homogenize(c3.Pos)

	if d.RenderState&CCWCulling != 0 && CheckCCWCulling(c1.Pos, c2.Pos, c3.Pos) {
		return
	}

	if d.RenderState&(ColorState|TextureState) != 0 {
		s1, s2, s3 := c1, c2, c3
		s1.RhwInit()
		s2.RhwInit()
		s3.RhwInit()

		var traps [2]Trapezoid
		n := InitTriangle(&traps, s1, s2, s3)
		for i := 0; i < n; i++ {
			d.renderTrap(traps[i])
		}
	}

	if d.RenderState&Wireframe != 0 {
		x1, y1 := int(c1.Pos.X), int(c1.Pos.Y)
		x2, y2 := int(c2.Pos.X), int(c2.Pos.Y)
		x3, y3 := int(c3.Pos.X), int(c3.Pos.Y)
		d.DrawLine(x1, y1, x2, y2, d.Foreground)
		d.DrawLine(x2, y2, x3, y3, d.Foreground)
		d.DrawLine(x3, y3, x1, y1, d.Foreground)
	}
}

// renderTrap walks trap's integer scanlines from max(ceil(top),0) to
// min(floor(bottom)-1, height-1), rasterizing each.
func (d *Device) renderTrap(trap Trapezoid) {
	top := int(math.Ceil(trap.Top))
	if top < 0 {
		top = 0
	}
	bottom := int(math.Floor(trap.Bottom)) - 1
	if bottom > d.Height-1 {
		bottom = d.Height - 1
	}
	for y := top; y <= bottom; y++ {
		EdgeInterp(&trap, float64(y))
		scan := InitScanLine(trap, y)
		d.drawScanLine(scan)
	}
}

// drawScanLine walks scan's pixel span, depth-testing and shading each
// pixel that passes. The z-buffer stores rhw, so a larger value is
// nearer the camera and the test is a strict greater-than.
func (d *Device) drawScanLine(scan Scanline) {
	if scan.W <= 0 {
		return
	}
	y := scan.Y
	if y < 0 || y >= d.Height {
		return
	}
	x := scan.X
	v := scan.V
	zRow := d.zRows[y]
	for i := 0; i < scan.W && x < d.Width; i++ {
		if x >= 0 {
			rhw := v.Rhw
			if rhw > float64(zRow[x]) {
				zRow[x] = float32(rhw)
				w := 1 / rhw
				switch {
				case d.RenderState&TextureState != 0:
					u := v.TC.U * w
					vv := v.TC.V * w
					d.fbRows[y][x] = d.tex.Read(u, vv)
				case d.RenderState&ColorState != 0:
					c := v.Color.Scale(w)
					d.fbRows[y][x] = c.Pack()
				}
			}
		}
		v.Add(scan.Step)
		x++
	}
}
