package view

import "classicgo/world"

func graphicOf(it *world.Item) world.Graphic {
	if it == nil {
		return 0
	}
	return it.Graphic
}

// IsCovered reports whether slot l is hidden by other equipment on m. The
// graphic ids are game data and must match the client art exactly.
func IsCovered(m *world.Mobile, l world.Layer) bool {
	eq := &m.Equipment
	switch l {
	case world.LayerShoes:
		pants := eq.Get(world.LayerPants)
		if eq.Has(world.LayerLegs) || pants != nil && pants.Graphic == 0x1411 {
			return true
		}
		robe := eq.Get(world.LayerRobe)
		if pants != nil && (pants.Graphic == 0x0513 || pants.Graphic == 0x0514) || robe != nil && robe.Graphic == 0x0504 {
			return true
		}

	case world.LayerPants:
		robe := eq.Get(world.LayerRobe)
		pants := eq.Get(world.LayerPants)
		if eq.Has(world.LayerLegs) || robe != nil && robe.Graphic == 0x0504 {
			return true
		}
		if pants != nil && (pants.Graphic == 0x01EB || pants.Graphic == 0x03E5 || pants.Graphic == 0x03EB) {
			skirt := eq.Get(world.LayerSkirt)
			if skirt != nil && skirt.Graphic != 0x01C7 && skirt.Graphic != 0x01E4 {
				return true
			}
			if robe != nil && robe.Graphic != 0x0229 && (robe.Graphic <= 0x04E7 || robe.Graphic > 0x04EB) {
				return true
			}
		}

	case world.LayerTunic:
		robe := eq.Get(world.LayerRobe)
		tunic := eq.Get(world.LayerTunic)
		if robe != nil && robe.Graphic != 0 {
			return true
		}
		if tunic != nil && tunic.Graphic == 0x0238 {
			return robe != nil && robe.Graphic != 0x9985 && robe.Graphic != 0x9986
		}

	case world.LayerTorso:
		robe := eq.Get(world.LayerRobe)
		if robe != nil && robe.Graphic != 0 && robe.Graphic != 0x9985 && robe.Graphic != 0x9986 {
			return true
		}
		tunic := eq.Get(world.LayerTunic)
		if tunic != nil && tunic.Graphic != 0x1541 && tunic.Graphic != 0x1542 {
			return true
		}
		if g := graphicOf(eq.Get(world.LayerTorso)); g == 0x782A || g == 0x782B {
			return true
		}

	case world.LayerArms:
		robe := eq.Get(world.LayerRobe)
		return robe != nil && robe.Graphic != 0 && robe.Graphic != 0x9985 && robe.Graphic != 0x9986

	case world.LayerHelmet, world.LayerHair:
		robe := eq.Get(world.LayerRobe)
		if robe == nil {
			break
		}
		g := robe.Graphic
		if g > 0x3173 {
			if g == 0x4B9D || g == 0x7816 {
				return true
			}
			break
		}
		if g <= 0x2687 {
			if g < 0x2683 {
				return g >= 0x204E && g <= 0x204F
			}
			return true
		}
		if g == 0x2FB9 || g == 0x3173 {
			return true
		}
	}
	return false
}
