package view

import (
	"image"

	"classicgo/asset"
	"classicgo/pick"
	"classicgo/render"
	"classicgo/world"
)

// stackOffset is the shift of the second sprite drawn for a pile.
const stackOffset = 5

// Art serves item, static and terrain art without blocking. asset.Store
// implements it.
type Art interface {
	Static(g world.Graphic) *asset.Texture
	Land(g world.Graphic) *asset.Texture
}

// Renderer draws world objects and tests each sprite against the cursor.
type Renderer struct {
	Composer
	Art Art
	// Picks receives hits. Nil disables picking.
	Picks *pick.List

	app Appearance
}

// NewRenderer wires a renderer to its providers.
func NewRenderer(anim Animations, conv Conversions, art Art, picks *pick.List) *Renderer {
	return &Renderer{Composer: Composer{Anim: anim, Conv: conv}, Art: art, Picks: picks}
}

// Appearance returns the last composed mobile appearance.
func (r *Renderer) Appearance() *Appearance { return &r.app }

// DrawObject draws o with its tile anchor at (x, y). It returns the point
// overhead text should hang from and whether anything was drawn. Objects
// whose assets are not loaded yet draw nothing and are retried next frame.
func (r *Renderer) DrawObject(b render.Batcher, o world.Object, x, y int) (image.Point, bool) {
	if !world.Alive(o) {
		return image.Point{}, false
	}
	switch v := o.(type) {
	case *world.Mobile:
		return r.drawMobile(b, v, x, y)
	case *world.Item:
		if !v.OnGround() {
			return image.Point{}, false
		}
		tex := r.artStatic(v.Graphic)
		if tex == nil {
			return image.Point{}, false
		}
		hue := v.Hue
		if v.Selected {
			hue = render.HueSelected
		}
		p := itemPlacement(tex, x, y)
		r.sprite(b, o, tex, p, hue, v.PartialHue())
		if v.Stackable() && v.Amount > 1 {
			p.X += stackOffset
			p.Y += stackOffset
			r.sprite(b, o, tex, p, hue, v.PartialHue())
		}
		return image.Pt(x, p.Y), true
	case *world.Static:
		tex := r.artStatic(v.Graphic)
		if tex == nil {
			return image.Point{}, false
		}
		hue := v.Hue
		if v.Selected {
			hue = render.HueSelected
		}
		p := itemPlacement(tex, x, y)
		r.sprite(b, o, tex, p, hue, false)
		return image.Pt(x, p.Y), true
	case *world.Land:
		if r.Art == nil {
			return image.Point{}, false
		}
		tex := r.Art.Land(v.Graphic)
		if tex == nil {
			return image.Point{}, false
		}
		p := pick.Placement{X: x - 22, Y: y - 22, W: tex.Width, H: tex.Height}
		r.sprite(b, o, tex, p, v.Hue, false)
		return image.Pt(x, y), true
	}
	return image.Point{}, false
}

func (r *Renderer) artStatic(g world.Graphic) *asset.Texture {
	if r.Art == nil {
		return nil
	}
	return r.Art.Static(g)
}

func itemPlacement(tex *asset.Texture, x, y int) pick.Placement {
	return pick.Placement{X: x - tex.Width/2, Y: y + 22 - tex.Height, W: tex.Width, H: tex.Height}
}

func (r *Renderer) sprite(b render.Batcher, o world.Object, tex *asset.Texture, p pick.Placement, hue world.Hue, partial bool) {
	if b != nil {
		b.Draw(render.Sprite{Tex: tex, X: p.X, Y: p.Y, Flipped: p.Flipped, Hue: hue, Partial: partial, Alpha: 1})
	}
	if r.Picks != nil {
		r.Picks.Test(o, tex, p)
	}
}

func (r *Renderer) drawMobile(b render.Batcher, m *world.Mobile, x, y int) (image.Point, bool) {
	r.Compose(m, &r.app)
	drawn := false
	for _, l := range r.app.Layers {
		tex := r.Anim.Texture(l.Hash)
		if tex == nil {
			continue
		}
		ext := layerExtent(tex, r.app.Mirror, l.OffsetY)
		p := pick.Placement{X: x + ext.Min.X, Y: y + ext.Min.Y, W: tex.Width, H: tex.Height, Flipped: r.app.Mirror}
		hue := l.Hue
		switch {
		case m.Hidden:
			hue = render.HueHidden
		case m.Selected:
			hue = render.HueSelected
		}
		r.sprite(b, m, tex, p, hue, l.Partial)
		drawn = true
	}
	if !drawn {
		return image.Point{}, false
	}
	return image.Pt(x, y+r.app.Frame.Min.Y), true
}
