package world

// Serial identifies a live object. Mobiles use the low range, items the
// high range.
type Serial uint32

const itemSerialBase Serial = 0x40000000

// IsMobile reports whether s falls in the mobile serial range.
func (s Serial) IsMobile() bool { return s != 0 && s < itemSerialBase }

// IsItem reports whether s falls in the item serial range.
func (s Serial) IsItem() bool { return s >= itemSerialBase && s < 0x80000000 }

// Graphic is an art or animation id.
type Graphic uint16

// Hue is an index into the hue table. Zero means no tint.
type Hue uint16

// Kind tags the concrete variant behind an Object.
type Kind uint8

const (
	KindLand Kind = iota
	KindStatic
	KindItem
	KindMobile
)

// Offset is the fractional render displacement of an object, used while a
// mobile walks between tiles.
type Offset struct {
	X, Y, Z float32
}

// Entity holds the state shared by every world object.
type Entity struct {
	Serial  Serial
	Graphic Graphic
	Hue     Hue
	X, Y    int
	Z       int8
	Offset  Offset

	// AnimIndex is the running animation frame counter. Consumers wrap it
	// by the frame count of whatever they draw.
	AnimIndex int

	// Selected is set while the object is highlighted under the cursor.
	Selected bool

	kind     Kind
	order    uint64
	disposed bool
}

// Object is the tagged variant stored in tiles and render lists. Use a type
// switch on *Land, *Static, *Item or *Mobile to reach the payload.
type Object interface {
	Base() *Entity
}

// Base returns the shared entity state.
func (e *Entity) Base() *Entity { return e }

// Kind reports which variant the entity belongs to.
func (e *Entity) Kind() Kind { return e.kind }

// IsDisposed reports whether the object has been removed from the world.
func (e *Entity) IsDisposed() bool { return e == nil || e.disposed }

// Dispose marks the entity dead. It is safe to call more than once.
func (e *Entity) Dispose() { e.disposed = true }

// Alive reports whether o is non-nil and not disposed.
func Alive(o Object) bool {
	return o != nil && !o.Base().IsDisposed()
}

// Land is a terrain cell.
type Land struct {
	Entity
}

// NewLand returns a land object for the tile at (x, y).
func NewLand(g Graphic, x, y int, z int8) *Land {
	l := &Land{}
	l.Graphic, l.X, l.Y, l.Z = g, x, y, z
	l.kind = KindLand
	return l
}

// Static is a fixed piece of scenery.
type Static struct {
	Entity
	// Roof marks statics that hide when the player stands beneath them.
	Roof   bool
	Height int8
}

// NewStatic returns a static object placed at (x, y, z).
func NewStatic(g Graphic, hue Hue, x, y int, z int8) *Static {
	s := &Static{}
	s.Graphic, s.Hue, s.X, s.Y, s.Z = g, hue, x, y, z
	s.kind = KindStatic
	return s
}
