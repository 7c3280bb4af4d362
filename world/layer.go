package world

// Layer is an equipment slot on a mobile.
type Layer uint8

const (
	LayerInvalid Layer = iota
	LayerOneHanded
	LayerTwoHanded
	LayerShoes
	LayerPants
	LayerShirt
	LayerHelmet
	LayerGloves
	LayerRing
	LayerTalisman
	LayerNecklace
	LayerHair
	LayerWaist
	LayerTorso
	LayerBracelet
	LayerFace
	LayerBeard
	LayerTunic
	LayerEarrings
	LayerArms
	LayerCloak
	LayerBackpack
	LayerRobe
	LayerSkirt
	LayerLegs
	LayerMount
	LayerShopBuyRestock
	LayerShopBuy
	LayerShopSell
	LayerBank

	LayerCount
)

var layerNames = [LayerCount]string{
	"invalid", "one-handed", "two-handed", "shoes", "pants", "shirt",
	"helmet", "gloves", "ring", "talisman", "necklace", "hair", "waist",
	"torso", "bracelet", "face", "beard", "tunic", "earrings", "arms",
	"cloak", "backpack", "robe", "skirt", "legs", "mount",
	"shop-restock", "shop-buy", "shop-sell", "bank",
}

func (l Layer) String() string {
	if l < LayerCount {
		return layerNames[l]
	}
	return "unknown"
}

// Equipment is the slot set of a mobile. Each slot holds at most one item.
type Equipment [LayerCount]*Item

// Get returns the item in slot l, or nil when the slot is empty or the
// item has been disposed.
func (e *Equipment) Get(l Layer) *Item {
	if l >= LayerCount {
		return nil
	}
	it := e[l]
	if it == nil || it.IsDisposed() {
		return nil
	}
	return it
}

// Has reports whether a live item occupies slot l.
func (e *Equipment) Has(l Layer) bool { return e.Get(l) != nil }
