// Package view turns world objects into sprites: it composes a mobile's
// layered appearance and draws every object kind with pick testing.
package view

import (
	"image"

	"classicgo/asset"
	"classicgo/world"
)

// HueDeadBody tints non-humanoid mobiles that have died.
const HueDeadBody world.Hue = 0x0386

// Animation groups by body type.
const (
	groupPeopleWalk   = 0
	groupPeopleRun    = 2
	groupPeopleStand  = 4
	groupOnMountWalk  = 23
	groupOnMountRun   = 24
	groupOnMountStand = 25

	groupAnimalWalk  = 0
	groupAnimalRun   = 1
	groupAnimalStand = 2

	groupMonsterWalk  = 0
	groupMonsterStand = 1
)

// Animations serves animation frames without blocking. asset.Store
// implements it.
type Animations interface {
	Direction(anim world.Graphic, group, dir uint8) (asset.Direction, bool)
	Texture(hash uint32) *asset.Texture
	Body(anim world.Graphic) asset.BodyInfo
}

// Conversions remaps worn item animations. asset.EquipConversions
// implements it.
type Conversions interface {
	Lookup(item, animID world.Graphic) (asset.EquipConv, bool)
}

// ViewLayer is one drawable slice of a mobile.
type ViewLayer struct {
	Layer   world.Layer
	Graphic world.Graphic
	Hue     world.Hue
	Hash    uint32
	Partial bool
	// OffsetY lifts the layer, used for riders sitting on a mount.
	OffsetY int
}

// Appearance is the composed look of a mobile for one frame.
type Appearance struct {
	Layers      []ViewLayer
	Dir         uint8
	Mirror      bool
	Group       uint8
	MountOffset int
	// Frame is the union of the layers' extents relative to the feet.
	Frame image.Rectangle
}

// Composer builds appearances. The zero value is not usable; set Anim.
type Composer struct {
	Anim Animations
	Conv Conversions
}

// Compose writes the appearance of m into out, reusing out.Layers.
func (c *Composer) Compose(m *world.Mobile, out *Appearance) {
	out.Layers = out.Layers[:0]
	out.MountOffset = 0
	out.Frame = image.Rectangle{}
	if m == nil || m.IsDisposed() || c.Anim == nil {
		return
	}
	out.Dir, out.Mirror = AnimDirection(m.DirectionForAnimation())
	mounted := m.IsMounted()
	out.Group = c.group(m.Graphic, m.IsHuman(), m.IsMoving(), m.IsRunning(), mounted)

	if !m.IsHuman() {
		hue := m.Hue
		if m.IsDead() {
			hue = HueDeadBody
		}
		c.add(out, m.AnimIndex, world.LayerInvalid, m.Graphic, hue, 0, false, 0)
		return
	}

	dead := m.IsDead()
	for _, l := range layerOrder[out.Dir] {
		switch l {
		case world.LayerInvalid:
			c.add(out, m.AnimIndex, l, m.Graphic, m.Hue, 0, false, out.MountOffset)
			continue
		case world.LayerMount:
			mount := m.Equipment.Get(world.LayerMount)
			if mount == nil {
				continue
			}
			anim := mount.GraphicForAnimation()
			if anim < asset.MaxAnimationID {
				out.MountOffset = c.Anim.Body(anim).MountedHeightOffset
			}
			c.addGroup(out, m.AnimIndex, c.group(anim, false, m.IsMoving(), m.IsRunning(), false), l, anim, mount.Hue, 0, false, 0)
			continue
		case world.LayerHair, world.LayerBeard:
			if dead {
				continue
			}
		}
		it := m.Equipment.Get(l)
		if it == nil || it.AnimID == 0 || IsCovered(m, l) {
			continue
		}
		anim := it.AnimID
		var convHue world.Hue
		if c.Conv != nil {
			if conv, ok := c.Conv.Lookup(it.Graphic, anim); ok {
				if conv.Graphic != 0 {
					anim = conv.Graphic
				}
				convHue = conv.Color
			}
		}
		c.add(out, m.AnimIndex, l, anim, it.Hue, convHue, it.PartialHue(), out.MountOffset)
	}
}

func (c *Composer) add(out *Appearance, frame int, l world.Layer, anim world.Graphic, hue, convHue world.Hue, partial bool, offsetY int) {
	c.addGroup(out, frame, out.Group, l, anim, hue, convHue, partial, offsetY)
}

func (c *Composer) addGroup(out *Appearance, frame int, group uint8, l world.Layer, anim world.Graphic, hue, convHue world.Hue, partial bool, offsetY int) {
	d, ok := c.Anim.Direction(anim, group, out.Dir)
	if !ok || d.FrameCount == 0 || len(d.Hashes) == 0 {
		return
	}
	idx := frame % d.FrameCount
	if idx < 0 {
		idx += d.FrameCount
	}
	if idx >= len(d.Hashes) || d.Hashes[idx] == 0 {
		return
	}
	h := d.Hashes[idx]
	if hue == 0 && d.Replaced {
		hue = c.Anim.Body(anim).Color
	}
	if hue == 0 {
		hue = convHue
	}
	out.Layers = append(out.Layers, ViewLayer{
		Layer:   l,
		Graphic: anim,
		Hue:     hue,
		Hash:    h,
		Partial: partial,
		OffsetY: offsetY,
	})
	if tex := c.Anim.Texture(h); tex != nil {
		out.Frame = out.Frame.Union(layerExtent(tex, out.Mirror, offsetY))
	}
}

// layerExtent is the rectangle a frame covers relative to the mobile's feet.
func layerExtent(tex *asset.Texture, mirror bool, offsetY int) image.Rectangle {
	x := -tex.CenterX
	if mirror {
		x = -(tex.Width - tex.CenterX)
	}
	y := -tex.CenterY - tex.Height - offsetY
	return image.Rect(x, y, x+tex.Width, y+tex.Height)
}

// group picks the animation group for a body doing the given movement.
func (c *Composer) group(anim world.Graphic, human, moving, running, mounted bool) uint8 {
	t := c.Anim.Body(anim).Type
	if human {
		t = asset.GroupPeople
	}
	switch t {
	case asset.GroupPeople:
		switch {
		case mounted && moving && running:
			return groupOnMountRun
		case mounted && moving:
			return groupOnMountWalk
		case mounted:
			return groupOnMountStand
		case moving && running:
			return groupPeopleRun
		case moving:
			return groupPeopleWalk
		}
		return groupPeopleStand
	case asset.GroupAnimal:
		switch {
		case moving && running:
			return groupAnimalRun
		case moving:
			return groupAnimalWalk
		}
		return groupAnimalStand
	}
	if moving {
		return groupMonsterWalk
	}
	return groupMonsterStand
}
