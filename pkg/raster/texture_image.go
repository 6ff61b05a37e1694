package raster

import "image"

// TextureFromImage decodes img into an owned packed-pixel Texture,
// row by row, for use as the device's current texture. Alpha is
// discarded; the core framebuffer format has no alpha channel.
func TextureFromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	tex := NewTexture(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			packed := (r>>8)<<16 | (g>>8)<<8 | (b >> 8)
			tex.SetPixel(x, y, packed)
		}
	}
	return tex
}
