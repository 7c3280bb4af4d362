package world

// Subscription is a registered callback. Close releases it; closing twice
// is harmless.
type Subscription struct {
	w  *World
	id uint64
}

// Close unregisters the callback.
func (s *Subscription) Close() {
	if s == nil || s.w == nil {
		return
	}
	delete(s.w.removeSubs, s.id)
	s.w = nil
}

// World is the live-object table and the map the objects stand on.
type World struct {
	Map *Map

	objects    map[Serial]Object
	player     Serial
	removeSubs map[uint64]func(Object)
	nextSubID  uint64
	subOrder   []uint64
}

// New returns an empty world over m.
func New(m *Map) *World {
	return &World{
		Map:        m,
		objects:    make(map[Serial]Object),
		removeSubs: make(map[uint64]func(Object)),
	}
}

// Add registers o and places it on the map when it stands in the world.
func (w *World) Add(o Object) {
	e := o.Base()
	if e.Serial != 0 {
		if old, ok := w.objects[e.Serial]; ok && old != o {
			w.Remove(e.Serial)
		}
		w.objects[e.Serial] = o
	}
	if it, ok := o.(*Item); ok && !it.OnGround() {
		return
	}
	w.Map.Place(o)
}

// AddStatic places serial-less scenery.
func (w *World) AddStatic(o Object) { w.Map.Place(o) }

// Get resolves serial to a live object, or nil.
func (w *World) Get(s Serial) Object {
	o, ok := w.objects[s]
	if !ok || o.Base().IsDisposed() {
		return nil
	}
	return o
}

// Mobile resolves serial to a live mobile, or nil.
func (w *World) Mobile(s Serial) *Mobile {
	m, _ := w.Get(s).(*Mobile)
	return m
}

// SetPlayer records which mobile the client controls.
func (w *World) SetPlayer(s Serial) { w.player = s }

// Player returns the controlled mobile, or nil before login.
func (w *World) Player() *Mobile { return w.Mobile(w.player) }

// Len returns the number of live tracked objects.
func (w *World) Len() int { return len(w.objects) }

// OnRemove registers fn to run after an object is disposed and removed.
func (w *World) OnRemove(fn func(Object)) *Subscription {
	w.nextSubID++
	id := w.nextSubID
	w.removeSubs[id] = fn
	w.subOrder = append(w.subOrder, id)
	return &Subscription{w: w, id: id}
}

// Remove disposes the object with serial s, takes it off the map and drops
// anything it was wearing.
func (w *World) Remove(s Serial) {
	o, ok := w.objects[s]
	if !ok {
		return
	}
	delete(w.objects, s)
	w.dispose(o)
}

func (w *World) dispose(o Object) {
	e := o.Base()
	if e.disposed {
		return
	}
	w.Map.Remove(o)
	e.Dispose()
	e.Selected = false
	if m, ok := o.(*Mobile); ok {
		for i, it := range m.Equipment {
			if it == nil {
				continue
			}
			m.Equipment[i] = nil
			delete(w.objects, it.Serial)
			w.dispose(it)
		}
	}
	w.notifyRemove(o)
}

func (w *World) notifyRemove(o Object) {
	live := w.subOrder[:0]
	for _, id := range w.subOrder {
		if _, ok := w.removeSubs[id]; ok {
			live = append(live, id)
		}
	}
	w.subOrder = live
	ids := append([]uint64(nil), live...)
	for _, id := range ids {
		if fn, ok := w.removeSubs[id]; ok {
			fn(o)
		}
	}
}

// Update advances every mobile by frameMS.
func (w *World) Update(totalMS, frameMS float64) {
	for _, o := range w.objects {
		m, ok := o.(*Mobile)
		if !ok || m.disposed {
			continue
		}
		ox, oy, oz := m.X, m.Y, m.Z
		if m.advance(totalMS, frameMS) {
			nx, ny, nz := m.X, m.Y, m.Z
			m.X, m.Y, m.Z = ox, oy, oz
			w.Map.Move(m, nx, ny, nz)
		}
	}
}

// Clear disposes everything.
func (w *World) Clear() {
	for s := range w.objects {
		w.Remove(s)
	}
	w.player = 0
}
