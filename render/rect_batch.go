package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

var whiteImage *ebiten.Image

func solidImage() *ebiten.Image {
	if whiteImage == nil {
		whiteImage = ebiten.NewImage(1, 1)
		whiteImage.Fill(color.White)
	}
	return whiteImage
}

// frameBatch collects 1px sprite frames and draws them with one
// DrawTriangles call.
type frameBatch struct {
	vs []ebiten.Vertex
	is []uint16
}

// Frame queues the four edges of r. Frames past the 16-bit index range are
// dropped until the next flush.
func (b *frameBatch) Frame(r image.Rectangle, c color.RGBA) {
	if r.Empty() || len(b.vs)+16 > 0xffff {
		return
	}
	x0, y0 := float32(r.Min.X), float32(r.Min.Y)
	x1, y1 := float32(r.Max.X), float32(r.Max.Y)
	b.quad(x0, y0, x1, y0+1, c)
	b.quad(x0, y1-1, x1, y1, c)
	b.quad(x0, y0+1, x0+1, y1-1, c)
	b.quad(x1-1, y0+1, x1, y1-1, c)
}

func (b *frameBatch) quad(x0, y0, x1, y1 float32, c color.RGBA) {
	if x1 <= x0 || y1 <= y0 {
		return
	}
	n := uint16(len(b.vs))
	v := ebiten.Vertex{
		ColorR: float32(c.R) / 0xff,
		ColorG: float32(c.G) / 0xff,
		ColorB: float32(c.B) / 0xff,
		ColorA: float32(c.A) / 0xff,
	}
	for _, p := range [4][2]float32{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}} {
		v.DstX, v.DstY = p[0], p[1]
		b.vs = append(b.vs, v)
	}
	b.is = append(b.is, n, n+1, n+2, n+1, n+3, n+2)
}

// Quads returns the number of queued edge quads.
func (b *frameBatch) Quads() int { return len(b.vs) / 4 }

// Flush draws the queued frames onto dst and empties the batch.
func (b *frameBatch) Flush(dst *ebiten.Image) {
	if len(b.is) == 0 {
		return
	}
	dst.DrawTriangles(b.vs, b.is, solidImage(), nil)
	b.vs = b.vs[:0]
	b.is = b.is[:0]
}
