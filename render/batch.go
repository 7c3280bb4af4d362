// Package render draws world sprites and overhead text through Ebiten.
package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"classicgo/asset"
	"classicgo/world"
)

const (
	// HueHidden tints mobiles that are hidden from others.
	HueHidden world.Hue = 0x038E
	// HueSelected tints the object under the cursor when highlighting.
	HueSelected world.Hue = 0x0035
	// MaxLightLevel is the darkest overall light level.
	MaxLightLevel = 0x1F
)

var debugOutline = color.RGBA{0xad, 0xd8, 0xe6, 0xff}

// Light is the isometric lighting applied to a whole batch.
type Light struct {
	// Level runs from 0 (full daylight) to MaxLightLevel.
	Level uint8
}

// Brightness returns the colour multiplier for the light level. The world
// never goes fully black.
func (l Light) Brightness() float32 {
	lv := l.Level
	if lv > MaxLightLevel {
		lv = MaxLightLevel
	}
	return 1 - float32(lv)/MaxLightLevel*0.75
}

// Sprite is one textured draw.
type Sprite struct {
	Tex     *asset.Texture
	X, Y    int
	Flipped bool
	Hue     world.Hue
	Partial bool
	// Alpha is the opacity, 1 for solid.
	Alpha float32
}

// Batcher receives a frame's draw calls.
type Batcher interface {
	Begin(Light)
	Draw(Sprite)
	DrawText(s string, x, y int, hue world.Hue, alpha float32)
	MeasureText(s string) (w, h int)
	End()
}

// Batch draws to an Ebiten image.
type Batch struct {
	Target *ebiten.Image
	Hues   asset.HueTable
	// Debug outlines every drawn sprite.
	Debug bool

	face   text.Face
	light  Light
	frames frameBatch
	op     ebiten.DrawImageOptions
	textOp text.DrawOptions
}

// NewBatch returns a batch using the built-in bitmap font.
func NewBatch(hues asset.HueTable) *Batch {
	return &Batch{Hues: hues, face: text.NewGoXFace(basicfont.Face7x13)}
}

// Begin starts a frame with the given lighting.
func (b *Batch) Begin(l Light) {
	b.light = l
}

func (b *Batch) tint(h world.Hue, alpha float32, cs *ebiten.ColorScale) {
	br := b.light.Brightness()
	r, g, bl := br, br, br
	if h != 0 {
		if c, ok := b.Hues.Color(h); ok {
			r *= float32(c.R) / 0xff
			g *= float32(c.G) / 0xff
			bl *= float32(c.B) / 0xff
		}
	}
	cs.Scale(r, g, bl, 1)
	cs.ScaleAlpha(alpha)
}

// Draw blits a sprite.
func (b *Batch) Draw(s Sprite) {
	if b.Target == nil || s.Tex == nil || s.Tex.Image == nil || s.Alpha <= 0 {
		return
	}
	b.op.GeoM.Reset()
	b.op.ColorScale.Reset()
	if s.Flipped {
		b.op.GeoM.Scale(-1, 1)
		b.op.GeoM.Translate(float64(s.Tex.Width), 0)
	}
	b.op.GeoM.Translate(float64(s.X), float64(s.Y))
	b.tint(s.Hue, s.Alpha, &b.op.ColorScale)
	b.Target.DrawImage(s.Tex.Image, &b.op)
	if b.Debug {
		b.frames.Frame(s.Bounds(), debugOutline)
	}
}

// Bounds is the destination rectangle covered by the sprite.
func (s Sprite) Bounds() image.Rectangle {
	if s.Tex == nil {
		return image.Rectangle{}
	}
	return image.Rect(s.X, s.Y, s.X+s.Tex.Width, s.Y+s.Tex.Height)
}

// DrawText draws a label with its top-left corner at (x, y).
func (b *Batch) DrawText(s string, x, y int, hue world.Hue, alpha float32) {
	if b.Target == nil || s == "" || alpha <= 0 {
		return
	}
	b.textOp.GeoM.Reset()
	b.textOp.ColorScale.Reset()
	b.textOp.GeoM.Translate(float64(x), float64(y))
	c := color.RGBA{0xff, 0xff, 0xff, 0xff}
	if hc, ok := b.Hues.Color(hue); ok {
		c = hc
	}
	b.textOp.ColorScale.ScaleWithColor(c)
	b.textOp.ColorScale.ScaleAlpha(alpha)
	text.Draw(b.Target, s, b.face, &b.textOp)
}

// MeasureText returns the pixel size of s.
func (b *Batch) MeasureText(s string) (int, int) {
	m := b.face.Metrics()
	w, h := text.Measure(s, b.face, m.HAscent+m.HDescent+m.HLineGap)
	return int(w + 0.5), int(h + 0.5)
}

// End draws the queued debug frames over the finished frame.
func (b *Batch) End() {
	if b.Target != nil {
		b.frames.Flush(b.Target)
	}
}
