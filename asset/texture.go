package asset

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Texture is a decoded sprite frame plus its hit mask. Image may be nil in
// headless use; geometry and picking still work.
type Texture struct {
	Image   *ebiten.Image
	Width   int
	Height  int
	CenterX int
	CenterY int

	mask *AlphaMask
}

// NewTexture builds a texture from a decoded frame. newImage uploads the
// pixels; pass nil to keep the texture CPU-only.
func NewTexture(img image.Image, centerX, centerY int, newImage func(image.Image) *ebiten.Image) *Texture {
	b := img.Bounds()
	t := &Texture{
		Width:   b.Dx(),
		Height:  b.Dy(),
		CenterX: centerX,
		CenterY: centerY,
		mask:    NewAlphaMask(img),
	}
	if newImage != nil {
		t.Image = newImage(img)
	}
	return t
}

// Contains reports whether the pixel at (x, y) in texture space is opaque.
func (t *Texture) Contains(x, y int) bool {
	if t == nil {
		return false
	}
	return t.mask.Opaque(x, y)
}

// Bounds returns the texture rectangle at the origin.
func (t *Texture) Bounds() image.Rectangle {
	if t == nil {
		return image.Rectangle{}
	}
	return image.Rect(0, 0, t.Width, t.Height)
}
