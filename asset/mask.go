package asset

import "image"

// AlphaMask is a 1-bit opacity map at full texture resolution.
type AlphaMask struct {
	W, H int
	Bits []uint64
}

// Opaque reports whether the mask has an opaque pixel at (x, y).
func (m *AlphaMask) Opaque(x, y int) bool {
	if m == nil || x < 0 || y < 0 || x >= m.W || y >= m.H {
		return false
	}
	idx := y*m.W + x
	return (m.Bits[idx/64]>>(idx%64))&1 != 0
}

// NewAlphaMask records which pixels of img have a non-zero alpha channel.
func NewAlphaMask(img image.Image) *AlphaMask {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	m := &AlphaMask{W: w, H: h, Bits: make([]uint64, (w*h+63)/64)}
	for y := 0; y < h; y++ {
		row := y * w
		for x := 0; x < w; x++ {
			if _, _, _, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA(); a == 0 {
				continue
			}
			bit := row + x
			m.Bits[bit/64] |= 1 << (bit % 64)
		}
	}
	return m
}
