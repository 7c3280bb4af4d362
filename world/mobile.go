package world

const (
	// DirMask selects the facing from a raw direction byte.
	DirMask = 0x07
	// DirRunning is set on the raw direction byte while running.
	DirRunning = 0x80

	// animationDelayMS is the time between animation frames.
	animationDelayMS = 80

	walkStepMS = 400
	runStepMS  = 200
)

// Step is a pending tile move queued by the movement layer.
type Step struct {
	X, Y int
	Z    int8
	Dir  uint8
	Run  bool
}

// Mobile is a player or NPC character.
type Mobile struct {
	Entity
	Name      string
	Direction uint8
	Dead      bool
	Hidden    bool
	Equipment Equipment

	steps        []Step
	stepElapsed  float64
	lastAnimTick float64
}

// NewMobile returns a mobile with body graphic g at (x, y, z).
func NewMobile(serial Serial, g Graphic, hue Hue, x, y int, z int8) *Mobile {
	m := &Mobile{}
	m.Serial, m.Graphic, m.Hue, m.X, m.Y, m.Z = serial, g, hue, x, y, z
	m.kind = KindMobile
	return m
}

// IsHuman reports whether the body uses the layered humanoid paperdoll.
func (m *Mobile) IsHuman() bool {
	g := m.Graphic
	return g >= 0x0190 && g <= 0x0193 ||
		g >= 0x00B7 && g <= 0x00BA ||
		g >= 0x025D && g <= 0x0260 ||
		g == 0x029A || g == 0x029B ||
		g == 0x02B6 || g == 0x02B7 ||
		g == 0x03DB || g == 0x03DF || g == 0x03E2 ||
		g == 0x02E8 || g == 0x02E9 ||
		g == 0x04E5
}

// IsDead reports whether the mobile is a ghost or flagged dead.
func (m *Mobile) IsDead() bool {
	if m.Dead {
		return true
	}
	switch m.Graphic {
	case 0x0192, 0x0193, 0x025F, 0x0260, 0x02B6, 0x02B7:
		return true
	}
	return false
}

// IsMounted reports whether a live mount item is equipped.
func (m *Mobile) IsMounted() bool { return m.Equipment.Has(LayerMount) }

// IsRunning reports whether the current or next step is a run.
func (m *Mobile) IsRunning() bool {
	if len(m.steps) > 0 {
		return m.steps[0].Run
	}
	return m.Direction&DirRunning != 0
}

// IsMoving reports whether steps are queued.
func (m *Mobile) IsMoving() bool { return len(m.steps) > 0 }

// DirectionForAnimation returns the facing used to pick animation frames.
// A walking mobile faces its current step.
func (m *Mobile) DirectionForAnimation() uint8 {
	if len(m.steps) > 0 {
		return m.steps[0].Dir & DirMask
	}
	return m.Direction & DirMask
}

// Equip places it in its slot, replacing any previous item.
func (m *Mobile) Equip(it *Item) {
	if it == nil || it.Layer == LayerInvalid || it.Layer >= LayerCount {
		return
	}
	it.Container = m.Serial
	m.Equipment[it.Layer] = it
}

// Unequip clears slot l and returns what was there.
func (m *Mobile) Unequip(l Layer) *Item {
	if l >= LayerCount {
		return nil
	}
	it := m.Equipment[l]
	m.Equipment[l] = nil
	return it
}

// EnqueueStep adds a move toward a neighbouring tile.
func (m *Mobile) EnqueueStep(s Step) {
	m.steps = append(m.steps, s)
}

// advance moves the animation counter and interpolates the walk offset. It
// returns true when the mobile arrived on a new tile.
func (m *Mobile) advance(totalMS, frameMS float64) (arrived bool) {
	if totalMS-m.lastAnimTick >= animationDelayMS {
		m.lastAnimTick = totalMS
		m.AnimIndex++
	}
	if len(m.steps) == 0 {
		return false
	}
	s := m.steps[0]
	dur := float64(walkStepMS)
	if s.Run {
		dur = runStepMS
	}
	if m.IsMounted() {
		dur /= 2
	}
	m.stepElapsed += frameMS
	if m.stepElapsed >= dur {
		m.X, m.Y, m.Z = s.X, s.Y, s.Z
		m.Direction = s.Dir
		m.Offset = Offset{}
		m.stepElapsed = 0
		m.steps = m.steps[1:]
		return true
	}
	f := float32(m.stepElapsed / dur)
	dx := float32(s.X - m.X)
	dy := float32(s.Y - m.Y)
	dz := float32(int(s.Z) - int(m.Z))
	m.Offset = Offset{
		X: (dx - dy) * 22 * f,
		Y: (dx + dy) * 22 * f,
		Z: dz * 4 * f,
	}
	return false
}
