package scene

import (
	"image"

	"classicgo/world"
)

const (
	// PickUpDelayMS is how long a press on an item must be held before it
	// is lifted.
	PickUpDelayMS = 800
	// DragThreshold is the cursor travel in pixels that lifts an item.
	DragThreshold = 3
	// DoubleClickMS is the window for a second click to count as a double
	// click. Single clicks are held back this long.
	DoubleClickMS = 350
)

// clickTracker turns presses and releases on world objects into single
// clicks, double clicks and item pickups.
type clickTracker struct {
	down     bool
	target   world.Object
	downAt   float64
	downPos  image.Point
	pickedUp bool

	last   world.Object
	lastAt float64
}

func (s *Scene) handleMouse(totalMS float64, over bool) {
	c := &s.clicks
	in := s.input
	if in.LeftPressed && over {
		c.down = true
		c.target = s.selection.Current()
		c.downAt = totalMS
		c.downPos = in.Mouse
		c.pickedUp = false
	}
	if !c.down {
		return
	}
	if !world.Alive(c.target) || c.target.Base().Serial == 0 {
		if in.LeftReleased {
			c.down = false
		}
		return
	}
	if it, ok := c.target.(*world.Item); ok && !c.pickedUp && it.OnGround() {
		d := in.Mouse.Sub(c.downPos)
		if totalMS-c.downAt >= PickUpDelayMS || abs(d.X) > DragThreshold || abs(d.Y) > DragThreshold {
			c.pickedUp = true
			s.CancelDeferred(it)
			if s.cfg.Actions != nil {
				s.cfg.Actions.PickUp(it.Serial, it.Amount)
			}
		}
	}
	if !in.LeftReleased {
		return
	}
	c.down = false
	if c.pickedUp {
		return
	}
	o := c.target
	serial := o.Base().Serial
	if c.last == o && totalMS-c.lastAt <= DoubleClickMS {
		c.last = nil
		s.CancelDeferred(o)
		if s.cfg.Actions != nil {
			s.cfg.Actions.DoubleClick(serial)
		}
		return
	}
	c.last, c.lastAt = o, totalMS
	s.Defer(o, DoubleClickMS, func() {
		if s.cfg.Actions != nil {
			s.cfg.Actions.SingleClick(serial)
		}
	})
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
