// Package overhead manages speech and damage text floating above world
// objects.
package overhead

import (
	"image"

	"classicgo/world"
)

const (
	// FadeWindowMS is how long before expiry text starts fading out.
	FadeWindowMS = 1000
	// damageMoveMS is the interval between one-step damage drifts.
	damageMoveMS = 50
	// DamageTimeToLiveMS is the lifetime of a damage number.
	DamageTimeToLiveMS = 1500
	// persistentDim is the transparency of an overlapped persistent label.
	persistentDim = 0.5
)

// Kind separates speech labels from damage numbers.
type Kind uint8

const (
	KindText Kind = iota
	KindDamage
)

// TimeToLive returns the default lifetime of a speech line in milliseconds.
// Longer lines stay up longer.
func TimeToLive(text string) float64 {
	return 4000 + float64(len([]rune(text)))*100
}

// Entry is one floating label. Owner is a serial looked up every frame,
// never a pointer, so a removed owner cannot be reached through it.
type Entry struct {
	Owner      world.Serial
	Text       string
	Hue        world.Hue
	Kind       Kind
	Persistent bool
	// TimeToLive counts down in milliseconds for non-persistent entries.
	TimeToLive float64
	// Alpha is the transparency: 0 is opaque, 1 invisible.
	Alpha float32
	// OffsetY is the upward drift of damage numbers.
	OffsetY int

	overlapped bool
	rect       image.Rectangle
	moveAt     float64
	disposed   bool
}

// IsDisposed reports whether the entry has expired or been removed.
func (e *Entry) IsDisposed() bool { return e == nil || e.disposed }

// Dispose removes the entry at the next update.
func (e *Entry) Dispose() { e.disposed = true }

// IsOverlapped reports whether a later label covered this one last frame.
func (e *Entry) IsOverlapped() bool { return e.overlapped }

// Rect is the screen rectangle from the last draw.
func (e *Entry) Rect() image.Rectangle { return e.rect }

// Opacity is the draw alpha derived from Alpha.
func (e *Entry) Opacity() float32 { return 1 - e.Alpha }

func (e *Entry) update(totalMS, frameMS float64) {
	if e.disposed {
		return
	}
	if e.Persistent {
		e.dim()
	} else {
		e.TimeToLive -= frameMS
		switch {
		case e.TimeToLive <= 0:
			e.disposed = true
			return
		case e.TimeToLive <= FadeWindowMS:
			a := float32(1 - e.TimeToLive/FadeWindowMS)
			if !e.overlapped || a > e.Alpha {
				e.Alpha = a
			}
		default:
			e.dim()
		}
	}
	if e.Kind == KindDamage && e.moveAt < totalMS {
		e.moveAt = totalMS + damageMoveMS
		e.OffsetY -= 2
	}
}

// dim applies the overlap transparency of a label that is not fading.
func (e *Entry) dim() {
	if e.overlapped {
		if e.Alpha <= 0 {
			e.Alpha = persistentDim
		}
	} else {
		e.Alpha = 0
	}
}
