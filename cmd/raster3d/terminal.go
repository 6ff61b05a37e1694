package main

import (
	"fmt"
	"strings"

	"github.com/mini3dgo/raster3d/pkg/raster"
)

// halfBlockFrame renders dev's framebuffer as terminal text using the
// upper-half-block trick: each terminal row packs two framebuffer rows,
// the top one as the glyph's foreground and the bottom one as its
// background, doubling vertical resolution. Grounded on the half-block
// compositing idea in the teacher's terminal renderer, reimplemented
// here as a single escape-sequence buffer rather than a cell-grid
// abstraction.
func halfBlockFrame(dev *raster.Device) string {
	var b strings.Builder
	b.WriteString("\x1b[H")
	rows := dev.Height / 2
	for row := 0; row < rows; row++ {
		topY := row * 2
		botY := topY + 1
		for x := 0; x < dev.Width; x++ {
			top := raster.Unpack(dev.Pixel32(x, topY))
			bot := raster.Unpack(dev.Pixel32(x, botY))
			fmt.Fprintf(&b, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀",
				byte8(top.R), byte8(top.G), byte8(top.B),
				byte8(bot.R), byte8(bot.G), byte8(bot.B))
		}
		b.WriteString("\x1b[0m\r\n")
	}
	return b.String()
}

func byte8(v float64) int {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	return int(v*255 + 0.5)
}
