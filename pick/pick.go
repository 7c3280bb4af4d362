// Package pick resolves which world object sits under the cursor.
//
// Objects are tested while they are drawn back-to-front, so the last hit of
// a frame is the topmost one; no depth comparison is needed.
package pick

import (
	"image"

	"classicgo/world"
)

// Mask is a sprite with a per-pixel opacity test in texture space.
type Mask interface {
	Contains(x, y int) bool
}

// Placement locates a sprite on screen: top-left corner, width and whether
// it is mirrored horizontally.
type Placement struct {
	X, Y    int
	W, H    int
	Flipped bool
}

// Rect returns the screen rectangle covered by the sprite.
func (p Placement) Rect() image.Rectangle {
	return image.Rect(p.X, p.Y, p.X+p.W, p.Y+p.H)
}

// Local converts a screen point into texture coordinates.
func (p Placement) Local(pt image.Point) (int, int) {
	x := pt.X - p.X
	if p.Flipped {
		x = p.W - 1 - x
	}
	return x, pt.Y - p.Y
}

// Hit is one object found under the cursor.
type Hit struct {
	Object world.Object
	Rect   image.Rectangle
}

// List collects hits for one frame.
type List struct {
	mouse   image.Point
	enabled bool
	hits    []Hit
}

// SetMouse enables testing for this frame at cursor position p, expressed
// in world viewport coordinates.
func (l *List) SetMouse(p image.Point) {
	l.mouse = p
	l.enabled = true
}

// Disable turns testing off for the frame, as when the cursor leaves the
// world viewport.
func (l *List) Disable() {
	l.enabled = false
	l.hits = l.hits[:0]
}

// Enabled reports whether the cursor is over the world this frame.
func (l *List) Enabled() bool { return l.enabled }

// Mouse returns the cursor position.
func (l *List) Mouse() image.Point { return l.mouse }

// Clear drops the hits of the previous frame.
func (l *List) Clear() { l.hits = l.hits[:0] }

// Hits returns this frame's hits in draw order.
func (l *List) Hits() []Hit { return l.hits }

// Add records o as being under the cursor.
func (l *List) Add(o world.Object, r image.Rectangle) {
	if !l.enabled || !world.Alive(o) {
		return
	}
	l.hits = append(l.hits, Hit{Object: o, Rect: r})
}

// Test checks the cursor against tex drawn at p and records o on a hit.
// Only opaque pixels count.
func (l *List) Test(o world.Object, tex Mask, p Placement) bool {
	if !l.enabled || tex == nil {
		return false
	}
	if !l.mouse.In(p.Rect()) {
		return false
	}
	x, y := p.Local(l.mouse)
	if !tex.Contains(x, y) {
		return false
	}
	l.Add(o, p.Rect())
	return true
}

// Picker keeps the resolved result of the last drawn frame.
type Picker struct {
	over  world.Object
	hover []world.Object
}

// Resolve takes the topmost object and the hover set from l.
func (p *Picker) Resolve(l *List) {
	p.over = nil
	p.hover = p.hover[:0]
	if !l.enabled {
		return
	}
	for _, h := range l.hits {
		if !world.Alive(h.Object) {
			continue
		}
		p.over = h.Object
		if !containsObject(p.hover, h.Object) {
			p.hover = append(p.hover, h.Object)
		}
	}
}

func containsObject(s []world.Object, o world.Object) bool {
	for _, v := range s {
		if v == o {
			return true
		}
	}
	return false
}

// MouseOverObject returns the topmost object, or nil when nothing live is
// under the cursor.
func (p *Picker) MouseOverObject() world.Object {
	if !world.Alive(p.over) {
		return nil
	}
	return p.over
}

// Hover returns every live object under the cursor.
func (p *Picker) Hover() []world.Object {
	out := p.hover[:0:0]
	for _, o := range p.hover {
		if world.Alive(o) {
			out = append(out, o)
		}
	}
	return out
}

// Selection tracks the highlighted object.
type Selection struct {
	// Highlight controls whether selecting sets the Selected flag.
	Highlight bool

	cur world.Object
}

// Current returns the selected object, or nil if it has been disposed.
func (s *Selection) Current() world.Object {
	if !world.Alive(s.cur) {
		return nil
	}
	return s.cur
}

// Set selects o, deselecting the previous object. It returns true when the
// selection changed.
func (s *Selection) Set(o world.Object) bool {
	if !world.Alive(o) {
		o = nil
	}
	if s.cur == o {
		return false
	}
	if s.cur != nil {
		s.cur.Base().Selected = false
	}
	s.cur = o
	if o != nil && s.Highlight {
		o.Base().Selected = true
	}
	return true
}
