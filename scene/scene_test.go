package scene

import (
	"image"
	"image/color"
	"testing"

	"classicgo/asset"
	"classicgo/render"
	"classicgo/speech"
	"classicgo/world"
)

type countingTiles struct {
	visits map[image.Point]int
	order  []image.Point
}

func (c *countingTiles) Tile(x, y int) *world.Tile {
	p := image.Pt(x, y)
	c.visits[p]++
	c.order = append(c.order, p)
	return nil
}

func TestBuildRenderListVisitsEachTileOnce(t *testing.T) {
	windows := []Window{
		{0, 0, 0, 0},
		{0, 0, 4, 0},
		{0, 0, 0, 4},
		{2, 3, 6, 9},
		{-3, -3, 3, 3},
		{5, 1, 12, 4},
	}
	for _, win := range windows {
		src := &countingTiles{visits: make(map[image.Point]int)}
		BuildRenderList(nil, src, win, NoDrawClamp, image.Point{})
		want := (win.MaxX - win.MinX + 1) * (win.MaxY - win.MinY + 1)
		if len(src.visits) != want || len(src.order) != want {
			t.Fatalf("window %+v: visited %d distinct / %d total, want %d", win, len(src.visits), len(src.order), want)
		}
		for p, n := range src.visits {
			if !win.Contains(p.X, p.Y) || n != 1 {
				t.Fatalf("window %+v: tile %v visited %d times", win, p, n)
			}
		}
		for i := 1; i < len(src.order); i++ {
			a, b := src.order[i-1], src.order[i]
			if b.X+b.Y < a.X+a.Y {
				t.Fatalf("window %+v: %v visited after %v breaks painter's order", win, b, a)
			}
			if b.X+b.Y == a.X+a.Y && b.X <= a.X {
				t.Fatalf("window %+v: diagonal not walked toward +x at %v", win, b)
			}
		}
	}
}

func TestBuildRenderListDegenerate(t *testing.T) {
	for _, win := range []Window{{1, 0, 0, 0}, {0, 1, 0, 0}, {5, 5, 4, 9}} {
		src := &countingTiles{visits: make(map[image.Point]int)}
		got := BuildRenderList(make([]RenderEntry, 3), src, win, NoDrawClamp, image.Point{})
		if len(got) != 0 || len(src.order) != 0 {
			t.Fatalf("window %+v produced %d entries, %d tile reads", win, len(got), len(src.order))
		}
	}
}

func TestBuildRenderListContents(t *testing.T) {
	m := world.NewMap(8, 8)
	land := world.NewLand(3, 2, 2, 0)
	st := world.NewStatic(0x100, 0, 2, 2, 5)
	high := world.NewStatic(0x101, 0, 2, 2, 60)
	gone := world.NewItem(0x40000001, 0xEED, 0, 2, 2, 1)
	mob := world.NewMobile(1, 0x190, 0, 2, 2, 0)
	for _, o := range []world.Object{mob, gone, high, st, land} {
		m.Place(o)
	}
	gone.Dispose()

	got := BuildRenderList(nil, m, Window{0, 0, 7, 7}, 20, image.Pt(10, 20))
	want := []world.Object{land, mob, st}
	if len(got) != len(want) {
		t.Fatalf("entries = %d, want %d", len(got), len(want))
	}
	for i, o := range want {
		if got[i].Object != o {
			t.Fatalf("entry %d = %T, want %T", i, got[i].Object, o)
		}
	}
	if got[0].X != -10 || got[0].Y != 68 {
		t.Fatalf("land anchor = %d,%d want -10,68", got[0].X, got[0].Y)
	}
	if got[2].Y != 48 {
		t.Fatalf("static anchor y = %d, want 48", got[2].Y)
	}
}

type fakeArt map[world.Graphic]*asset.Texture

func (f fakeArt) Static(g world.Graphic) *asset.Texture { return f[g] }
func (f fakeArt) Land(world.Graphic) *asset.Texture     { return nil }

func solid(w, h int) *asset.Texture {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{0x80, 0x80, 0x80, 0xff})
		}
	}
	return asset.NewTexture(img, w/2, 0, nil)
}

type nopBatch struct{ sprites int }

func (b *nopBatch) Begin(render.Light)                            {}
func (b *nopBatch) Draw(render.Sprite)                            { b.sprites++ }
func (b *nopBatch) DrawText(string, int, int, world.Hue, float32) {}
func (b *nopBatch) MeasureText(s string) (int, int)               { return len(s) * 7, 13 }
func (b *nopBatch) End()                                          {}

type recorder struct {
	single, double []world.Serial
	pickups        []uint16
	said           [][]uint16
	selected       []world.Object
	packets        [][]byte
}

func (r *recorder) SingleClick(s world.Serial)         { r.single = append(r.single, s) }
func (r *recorder) DoubleClick(s world.Serial)         { r.double = append(r.double, s) }
func (r *recorder) PickUp(s world.Serial, n uint16)    { r.pickups = append(r.pickups, n) }
func (r *recorder) Say(text string, keywords []uint16) { r.said = append(r.said, keywords) }
func (r *recorder) SelectedChanged(o world.Object)     { r.selected = append(r.selected, o) }
func (r *recorder) Send(p []byte)                      { r.packets = append(r.packets, p) }

// itemMouse is where the test item's sprite sits on screen.
var itemMouse = image.Pt(120, 138)

type harness struct {
	s    *Scene
	w    *world.World
	item *world.Item
	rec  *recorder
	b    nopBatch
	now  float64
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	w := world.New(world.NewMap(32, 32))
	player := world.NewMobile(1, 0x190, 0, 10, 10, 0)
	w.Add(player)
	w.SetPlayer(player.Serial)
	item := world.NewItem(0x40000001, 0xEED, 0, 11, 10, 0)
	item.Amount = 7
	w.Add(item)
	rec := &recorder{}
	s := New(Config{
		World:     w,
		Art:       fakeArt{0xEED: solid(10, 10)},
		Egress:    rec,
		UI:        rec,
		Actions:   rec,
		Viewport:  image.Rect(0, 0, 200, 200),
		Highlight: true,
	})
	t.Cleanup(s.Close)
	return &harness{s: s, w: w, item: item, rec: rec}
}

func (h *harness) frame(in Input) {
	h.now += 16
	h.s.SetInput(in)
	h.s.FixedUpdate(h.now, 16)
	h.s.Update(h.now, 16)
	h.s.Draw(&h.b)
}

func (h *harness) idle(ms float64, mouse image.Point) {
	end := h.now + ms
	for h.now < end {
		h.frame(Input{Mouse: mouse})
	}
}

func TestPickAndSelect(t *testing.T) {
	h := newHarness(t)
	h.frame(Input{Mouse: itemMouse})
	if hov := h.s.HoverList(); len(hov) != 1 || hov[0] != h.item {
		t.Fatalf("hover = %v", hov)
	}
	h.frame(Input{Mouse: itemMouse})
	if h.s.SelectedObject() != h.item || !h.item.Selected {
		t.Fatal("item under the cursor should be selected and highlighted")
	}
	if len(h.rec.selected) != 1 {
		t.Fatalf("ui notified %d times", len(h.rec.selected))
	}
	h.frame(Input{Mouse: image.Pt(500, 500)})
	if h.s.SelectedObject() != nil || h.item.Selected {
		t.Fatal("leaving the viewport should clear the selection")
	}
	if len(h.s.HoverList()) != 0 {
		t.Fatal("no hover outside the viewport")
	}
}

func TestDisposeMidFrame(t *testing.T) {
	h := newHarness(t)
	h.frame(Input{Mouse: itemMouse})
	h.frame(Input{Mouse: itemMouse})
	if h.s.SelectedObject() != h.item {
		t.Fatal("setup: item not selected")
	}
	h.s.Tasks().Add(nil, func() { h.w.Remove(h.item.Serial) })
	h.now += 16
	h.s.SetInput(Input{Mouse: itemMouse})
	h.s.Update(h.now, 16)
	h.s.Draw(&h.b)
	for _, e := range h.s.RenderList() {
		if e.Object == h.item || !world.Alive(e.Object) {
			t.Fatal("disposed object still in the render list")
		}
	}
	if len(h.s.HoverList()) != 0 {
		t.Fatalf("hover = %v", h.s.HoverList())
	}
	if h.s.SelectedObject() != nil {
		t.Fatal("disposed object still selected")
	}
}

func TestDeferredActionDroppedOnDispose(t *testing.T) {
	h := newHarness(t)
	fired := 0
	h.s.Defer(h.item, 800, func() { fired++ })
	h.idle(496, image.Point{})
	h.w.Remove(h.item.Serial)
	h.idle(600, image.Point{})
	if fired != 0 {
		t.Fatal("action ran for a disposed object")
	}
}

func TestDeferredActionFiresOnce(t *testing.T) {
	h := newHarness(t)
	fired := 0
	h.s.Defer(h.item, 800, func() { fired++ })
	h.s.Defer(h.item, 800, func() { fired += 10 })
	h.idle(784, image.Point{})
	if fired != 0 {
		t.Fatalf("fired early: %d", fired)
	}
	h.idle(100, image.Point{})
	if fired != 10 {
		t.Fatalf("fired = %d, want only the replacement once", fired)
	}
}

func TestKeepalive(t *testing.T) {
	h := newHarness(t)
	h.frame(Input{})
	if len(h.rec.packets) != 1 || h.rec.packets[0][0] != 0x73 {
		t.Fatalf("packets = %v", h.rec.packets)
	}
	h.idle(9990, image.Point{})
	if len(h.rec.packets) != 1 {
		t.Fatalf("pinged again after %vms", h.now)
	}
	h.idle(32, image.Point{})
	if len(h.rec.packets) != 2 {
		t.Fatalf("packets = %d, want 2", len(h.rec.packets))
	}
}

func TestUseItemQueue(t *testing.T) {
	h := newHarness(t)
	if !h.s.DoubleClickDelayed(h.item.Serial) || h.s.DoubleClickDelayed(h.item.Serial) {
		t.Fatal("duplicate serials should be ignored")
	}
	h.s.DoubleClickDelayed(1)
	h.s.DoubleClickDelayed(0x4000FFFF)
	h.frame(Input{})
	if len(h.rec.double) != 1 || h.rec.double[0] != h.item.Serial {
		t.Fatalf("double clicks = %v", h.rec.double)
	}
	h.idle(500, image.Point{})
	if len(h.rec.double) != 1 {
		t.Fatal("queue fired faster than its interval")
	}
	h.idle(600, image.Point{})
	if len(h.rec.double) != 2 || h.rec.double[1] != 1 {
		t.Fatalf("double clicks = %v", h.rec.double)
	}
	h.idle(1100, image.Point{})
	if len(h.rec.double) != 2 {
		t.Fatal("unknown serial should be skipped")
	}
}

func TestZoomClamp(t *testing.T) {
	h := newHarness(t)
	h.s.Zoom(-10)
	h.frame(Input{})
	if h.s.Scale() != MinScale {
		t.Fatalf("scale = %v, want %v", h.s.Scale(), MinScale)
	}
	h.s.Zoom(30)
	h.frame(Input{})
	if h.s.Scale() != MaxScale {
		t.Fatalf("scale = %v, want %v", h.s.Scale(), MaxScale)
	}
	h.frame(Input{Mouse: image.Pt(10, 10), Wheel: 1})
	if h.s.Scale() != 2.2 {
		t.Fatalf("wheel up scale = %v, want 2.2", h.s.Scale())
	}
	h.frame(Input{Mouse: image.Pt(500, 10), Wheel: 1})
	if h.s.Scale() != 2.2 {
		t.Fatal("wheel outside the viewport should not zoom")
	}
}

func TestTasks(t *testing.T) {
	var q Tasks
	var log []string
	q.Add(After(100), func() {
		log = append(log, "after")
		q.Add(nil, func() { log = append(log, "chained") })
	})
	q.Every(0, 50, func() { log = append(log, "tick") })
	for _, now := range []float64{0, 60, 100, 110} {
		q.Run(now)
	}
	want := []string{"tick", "tick", "after", "tick", "chained"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("log = %v, want %v", log, want)
		}
	}
	if q.Len() != 1 {
		t.Fatalf("pending = %d, want the repeating task", q.Len())
	}
}

func TestUpdateMaxDrawZ(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		z    int8
		want int
	}{
		{"roof over player", 10, 10, 20, 16},
		{"low static", 10, 10, 10, NoDrawClamp},
		{"roof up-left", 9, 9, 30, 16},
		{"roof elsewhere", 12, 10, 30, NoDrawClamp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.w.AddStatic(world.NewStatic(0x200, 0, tt.x, tt.y, tt.z))
			h.s.UpdateMaxDrawZ()
			if got := h.s.MaxDrawZ(); got != tt.want {
				t.Fatalf("MaxDrawZ = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSingleClickWaitsForDoubleClickWindow(t *testing.T) {
	h := newHarness(t)
	h.frame(Input{Mouse: itemMouse})
	h.frame(Input{Mouse: itemMouse, LeftPressed: true})
	h.frame(Input{Mouse: itemMouse, LeftReleased: true})
	if len(h.rec.single) != 0 {
		t.Fatal("single click sent before the double click window closed")
	}
	h.idle(DoubleClickMS+32, itemMouse)
	if len(h.rec.single) != 1 || len(h.rec.double) != 0 {
		t.Fatalf("single=%v double=%v", h.rec.single, h.rec.double)
	}
}

func TestDoubleClick(t *testing.T) {
	h := newHarness(t)
	h.frame(Input{Mouse: itemMouse})
	h.frame(Input{Mouse: itemMouse, LeftPressed: true})
	h.frame(Input{Mouse: itemMouse, LeftReleased: true})
	h.frame(Input{Mouse: itemMouse, LeftPressed: true})
	h.frame(Input{Mouse: itemMouse, LeftReleased: true})
	h.idle(DoubleClickMS+32, itemMouse)
	if len(h.rec.double) != 1 || len(h.rec.single) != 0 {
		t.Fatalf("single=%v double=%v", h.rec.single, h.rec.double)
	}
}

func TestPickUpByHoldAndDrag(t *testing.T) {
	h := newHarness(t)
	h.frame(Input{Mouse: itemMouse})
	h.frame(Input{Mouse: itemMouse, LeftPressed: true})
	h.idle(PickUpDelayMS-48, itemMouse)
	if len(h.rec.pickups) != 0 {
		t.Fatal("picked up too early")
	}
	h.idle(64, itemMouse)
	if len(h.rec.pickups) != 1 || h.rec.pickups[0] != 7 {
		t.Fatalf("pickups = %v", h.rec.pickups)
	}
	h.frame(Input{Mouse: itemMouse, LeftReleased: true})
	h.idle(DoubleClickMS+32, itemMouse)
	if len(h.rec.single) != 0 {
		t.Fatal("a pickup is not a click")
	}

	h2 := newHarness(t)
	h2.frame(Input{Mouse: itemMouse})
	h2.frame(Input{Mouse: itemMouse, LeftPressed: true})
	h2.frame(Input{Mouse: itemMouse.Add(image.Pt(5, 0))})
	if len(h2.rec.pickups) != 1 {
		t.Fatalf("drag pickups = %v", h2.rec.pickups)
	}
}

func TestSay(t *testing.T) {
	h := newHarness(t)
	h.s.cfg.Speech = speech.New([]speech.Entry{speech.NewEntry(5, "*bank*")})
	h.s.Say("Bank please")
	if len(h.rec.said) != 1 || len(h.rec.said[0]) != 1 || h.rec.said[0][0] != 5 {
		t.Fatalf("said = %v", h.rec.said)
	}
	if n := len(h.s.Overheads().ByOwner(1)); n != 1 {
		t.Fatalf("player overheads = %d", n)
	}
}
