package main

import (
	"classicgo/scene"
	"classicgo/world"
)

const fakeMapSize = 64

const (
	fakePlayer world.Serial = 0x00000001
	fakeWalker world.Serial = 0x00000002
	fakeDummy  world.Serial = 0x00000003
)

// fakeSquare is the loop walked by the sample NPC: east, south, west, north.
var fakeSquare = []struct {
	dx, dy int
	dir    uint8
}{
	{1, 0, 2}, {1, 0, 2}, {0, 1, 4}, {0, 1, 4},
	{-1, 0, 6}, {-1, 0, 6}, {0, -1, 0}, {0, -1, 0},
}

// populateFakeWorld fills w with terrain, scenery, a dressed player and a
// few props so the client can be tried without a server.
func populateFakeWorld(w *world.World) {
	for y := 0; y < fakeMapSize; y++ {
		for x := 0; x < fakeMapSize; x++ {
			w.AddStatic(world.NewLand(0x0003, x, y, 0))
		}
	}
	c := fakeMapSize / 2
	for i := -6; i <= 6; i += 3 {
		w.AddStatic(world.NewStatic(0x0CCA, 0, c+i, c-6, 0))
		w.AddStatic(world.NewStatic(0x0CCA, 0, c+i, c+6, 0))
	}
	for x := c + 3; x <= c+5; x++ {
		w.AddStatic(world.NewStatic(0x0080, 0, x, c-3, 0))
	}

	p := world.NewMobile(fakePlayer, 0x0190, 0x83EA, c, c, 0)
	p.Name = "Hero"
	w.Add(p)
	w.SetPlayer(fakePlayer)
	serial := world.Serial(0x40000001)
	wear := func(m *world.Mobile, g, anim world.Graphic, hue world.Hue, l world.Layer) {
		it := world.NewItem(serial, g, hue, m.X, m.Y, m.Z)
		serial++
		it.AnimID = anim
		it.Layer = l
		it.Flags = world.FlagWearable
		m.Equip(it)
		w.Add(it)
	}
	wear(p, 0x1517, 0x01B5, 0x0021, world.LayerShirt)
	wear(p, 0x152E, 0x01C3, 0x0000, world.LayerPants)
	wear(p, 0x170F, 0x01AF, 0x0000, world.LayerShoes)
	wear(p, 0x203B, 0x01F3, 0x044E, world.LayerHair)

	gold := world.NewItem(serial, 0x0EED, 0, c+1, c+1, 0)
	serial++
	gold.Amount = 250
	gold.Flags = world.FlagStackable
	w.Add(gold)
	w.Add(world.NewItem(serial, 0x0E75, 0, c-1, c+1, 0))

	npc := world.NewMobile(fakeWalker, 0x00C9, 0, c-3, c-3, 0)
	npc.Name = "a cat"
	w.Add(npc)
	dummy := world.NewMobile(fakeDummy, 0x0190, 0x83EA, c+2, c-2, 0)
	dummy.Name = "training dummy"
	w.Add(dummy)
}

// runFakeMode schedules the sample world's scripted activity.
func runFakeMode(w *world.World, sc *scene.Scene) {
	o := sc.Overheads()
	if m := w.Mobile(fakeDummy); m != nil {
		o.AddPersistent(m.Serial, m.Name, 0x03B2)
	}
	step := 0
	sc.Tasks().Every(1000, 800, func() {
		m := w.Mobile(fakeWalker)
		if m == nil || m.IsMoving() {
			return
		}
		s := fakeSquare[step%len(fakeSquare)]
		step++
		m.EnqueueStep(world.Step{X: m.X + s.dx, Y: m.Y + s.dy, Z: m.Z, Dir: s.dir})
	})
	hit := 0
	sc.Tasks().Every(2000, 2500, func() {
		if w.Mobile(fakeDummy) == nil {
			return
		}
		hit++
		o.AddDamage(fakeDummy, 3+hit%7, 0x0022)
	})
	sc.Tasks().Every(3000, 12000, func() {
		sc.Say("hail and well met")
	})
}
