package world

// TileFlags are the tile-data properties of an item graphic that the
// renderer cares about.
type TileFlags uint32

const (
	FlagPartialHue TileFlags = 1 << iota
	FlagStackable
	FlagContainer
	FlagRoof
	FlagWearable
)

// Item is a world or equipped item.
type Item struct {
	Entity
	Amount uint16
	// AnimID is the animation used when the item is worn. Zero means the
	// item has no paperdoll animation and is never drawn on a body.
	AnimID    Graphic
	Flags     TileFlags
	Container Serial
	Layer     Layer
}

// NewItem returns an item lying on the ground.
func NewItem(serial Serial, g Graphic, hue Hue, x, y int, z int8) *Item {
	it := &Item{Amount: 1}
	it.Serial, it.Graphic, it.Hue, it.X, it.Y, it.Z = serial, g, hue, x, y, z
	it.kind = KindItem
	return it
}

// PartialHue reports whether only grey pixels take the hue.
func (it *Item) PartialHue() bool { return it.Flags&FlagPartialHue != 0 }

// Stackable reports whether the item shows as a pile when Amount > 1.
func (it *Item) Stackable() bool { return it.Flags&FlagStackable != 0 }

// IsContainer reports whether the item can hold other items.
func (it *Item) IsContainer() bool { return it.Flags&FlagContainer != 0 }

// OnGround reports whether the item sits in the world rather than inside a
// container or on a mobile.
func (it *Item) OnGround() bool { return it.Container == 0 }

// GraphicForAnimation returns the animation id used to draw the item as a
// mount or worn layer.
func (it *Item) GraphicForAnimation() Graphic {
	if it.AnimID != 0 {
		return it.AnimID
	}
	return it.Graphic
}
