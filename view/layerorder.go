package view

import "classicgo/world"

// usedLayerCount is the number of slots walked per direction.
const usedLayerCount = 25

// frontLayers is used when the body faces the camera: the cloak hangs
// behind the body and is drawn right after it.
var frontLayers = [usedLayerCount]world.Layer{
	world.LayerMount, world.LayerInvalid, world.LayerCloak,
	world.LayerShirt, world.LayerPants, world.LayerShoes, world.LayerLegs,
	world.LayerArms, world.LayerTorso, world.LayerTunic, world.LayerRing,
	world.LayerBracelet, world.LayerFace, world.LayerGloves, world.LayerSkirt,
	world.LayerRobe, world.LayerWaist, world.LayerNecklace, world.LayerHair,
	world.LayerBeard, world.LayerEarrings, world.LayerHelmet,
	world.LayerOneHanded, world.LayerTwoHanded, world.LayerTalisman,
}

// backLayers is used when the body faces away: the cloak covers the back
// and weapons sit behind the torso.
var backLayers = [usedLayerCount]world.Layer{
	world.LayerMount, world.LayerInvalid,
	world.LayerOneHanded, world.LayerTwoHanded,
	world.LayerShirt, world.LayerPants, world.LayerShoes, world.LayerLegs,
	world.LayerArms, world.LayerTorso, world.LayerTunic, world.LayerRing,
	world.LayerBracelet, world.LayerFace, world.LayerGloves, world.LayerSkirt,
	world.LayerRobe, world.LayerWaist, world.LayerNecklace, world.LayerHair,
	world.LayerBeard, world.LayerEarrings, world.LayerHelmet,
	world.LayerTalisman, world.LayerCloak,
}

// layerOrder is indexed by animation direction (see AnimDirection).
var layerOrder = [5]*[usedLayerCount]world.Layer{
	&frontLayers, &frontLayers, &frontLayers, &backLayers, &backLayers,
}

// AnimDirection maps a raw facing (0 north, clockwise) to one of the five
// stored animation directions and reports whether the frames are mirrored.
func AnimDirection(raw uint8) (dir uint8, mirror bool) {
	switch raw & world.DirMask {
	case 2, 4:
		return 1, raw&world.DirMask == 2
	case 1, 5:
		return 2, raw&world.DirMask == 1
	case 0, 6:
		return 3, raw&world.DirMask == 0
	case 3:
		return 0, false
	default:
		return 4, false
	}
}
