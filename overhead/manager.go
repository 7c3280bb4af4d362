package overhead

import (
	"image"
	"strconv"

	"classicgo/render"
	"classicgo/world"
)

// Resolver finds live objects by serial. *world.World implements it.
type Resolver interface {
	Get(world.Serial) world.Object
}

// Anchors returns the screen point text for an owner hangs from, and false
// when the owner was not drawn this frame.
type Anchors func(world.Serial) (image.Point, bool)

// Manager owns every floating label.
type Manager struct {
	resolver Resolver
	sub      *world.Subscription
	entries  []*Entry
	drawn    []*Entry
}

// NewManager returns a manager that resolves owners through r. If r is a
// *world.World the manager also drops labels as soon as their owner is
// removed; call Close to release that subscription.
func NewManager(r Resolver) *Manager {
	m := &Manager{resolver: r}
	if w, ok := r.(*world.World); ok {
		m.sub = w.OnRemove(func(o world.Object) {
			m.RemoveOwner(o.Base().Serial)
		})
	}
	return m
}

// Close releases the world subscription and drops every entry.
func (m *Manager) Close() {
	m.sub.Close()
	m.sub = nil
	m.entries = nil
	m.drawn = nil
}

func (m *Manager) push(e *Entry) *Entry {
	m.entries = append(m.entries, e)
	return e
}

// Add attaches a speech line to owner that expires after ttlMS.
func (m *Manager) Add(owner world.Serial, text string, hue world.Hue, ttlMS float64) *Entry {
	return m.push(&Entry{Owner: owner, Text: text, Hue: hue, Kind: KindText, TimeToLive: ttlMS})
}

// AddPersistent attaches a label that only goes away through Remove or the
// owner's removal.
func (m *Manager) AddPersistent(owner world.Serial, text string, hue world.Hue) *Entry {
	return m.push(&Entry{Owner: owner, Text: text, Hue: hue, Kind: KindText, Persistent: true})
}

// AddDamage attaches a rising damage number.
func (m *Manager) AddDamage(owner world.Serial, amount int, hue world.Hue) *Entry {
	return m.push(&Entry{
		Owner:      owner,
		Text:       strconv.Itoa(amount),
		Hue:        hue,
		Kind:       KindDamage,
		TimeToLive: DamageTimeToLiveMS,
	})
}

// Remove disposes e.
func (m *Manager) Remove(e *Entry) {
	if e != nil {
		e.Dispose()
	}
}

// RemoveOwner disposes every entry attached to owner.
func (m *Manager) RemoveOwner(owner world.Serial) {
	for _, e := range m.entries {
		if e.Owner == owner {
			e.Dispose()
		}
	}
}

// ByOwner returns the live entries of owner in insertion order.
func (m *Manager) ByOwner(owner world.Serial) []*Entry {
	var out []*Entry
	for _, e := range m.entries {
		if e.Owner == owner && !e.IsDisposed() {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of live entries.
func (m *Manager) Len() int {
	n := 0
	for _, e := range m.entries {
		if !e.IsDisposed() {
			n++
		}
	}
	return n
}

// Update advances fades and drift, then drops expired entries and entries
// whose owner no longer resolves.
func (m *Manager) Update(totalMS, frameMS float64) {
	for _, e := range m.entries {
		if m.resolver != nil && !world.Alive(m.resolver.Get(e.Owner)) {
			e.Dispose()
			continue
		}
		e.update(totalMS, frameMS)
	}
	m.compact()
}

func (m *Manager) compact() {
	live := m.entries[:0]
	for _, e := range m.entries {
		if !e.IsDisposed() {
			live = append(live, e)
		}
	}
	clear(m.entries[len(live):])
	m.entries = live
}

// Draw places every label above its owner's anchor and records which
// labels are covered by ones drawn later. Labels of one owner stack
// upward with the newest nearest the owner.
func (m *Manager) Draw(b render.Batcher, anchor Anchors) {
	m.drawn = m.drawn[:0]
	done := make(map[world.Serial]bool)
	for _, first := range m.entries {
		if first.IsDisposed() || done[first.Owner] {
			continue
		}
		done[first.Owner] = true
		p, ok := anchor(first.Owner)
		if !ok {
			continue
		}
		y := p.Y
		for i := len(m.entries) - 1; i >= 0; i-- {
			e := m.entries[i]
			if e.Owner != first.Owner || e.IsDisposed() {
				continue
			}
			w, h := b.MeasureText(e.Text)
			ty := y - h
			if e.Kind == KindDamage {
				ty = p.Y - h + e.OffsetY
			} else {
				y = ty
			}
			e.rect = image.Rect(p.X-w/2, ty, p.X-w/2+w, ty+h)
			b.DrawText(e.Text, e.rect.Min.X, e.rect.Min.Y, e.Hue, e.Opacity())
			m.drawn = append(m.drawn, e)
		}
	}
	for i, e := range m.drawn {
		e.overlapped = false
		for _, later := range m.drawn[i+1:] {
			if e.rect.Overlaps(later.rect) {
				e.overlapped = true
				break
			}
		}
	}
}

// At returns the topmost label drawn over p in the last frame, or nil.
func (m *Manager) At(p image.Point) *Entry {
	for i := len(m.drawn) - 1; i >= 0; i-- {
		if e := m.drawn[i]; !e.IsDisposed() && p.In(e.rect) {
			return e
		}
	}
	return nil
}
