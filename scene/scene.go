// Package scene runs the game world frame: it rebuilds the visible render
// list, resolves what is under the cursor, drives timed interactions and
// draws the world with its overhead text.
package scene

import (
	"image"
	"math"
	"time"

	"golang.org/x/time/rate"

	"classicgo/netclient"
	"classicgo/overhead"
	"classicgo/pick"
	"classicgo/render"
	"classicgo/speech"
	"classicgo/view"
	"classicgo/world"
)

const (
	// KeepaliveMS is the interval between pings to the server.
	KeepaliveMS = 10000

	MinScale  = 0.7
	MaxScale  = 2.3
	ScaleStep = 0.1

	// drawClampHeight is how far above the player a roof must be to be
	// hidden while the player stands beneath it.
	drawClampHeight = 16
	// windowMargin pads the visible tile window so sprites taller than a
	// tile still get drawn at the edges.
	windowMargin = 3
)

// Egress sends packets to the server. *netclient.Client implements it.
type Egress interface {
	Send(p []byte)
}

// UISink is told when the object under the cursor changes.
type UISink interface {
	SelectedChanged(o world.Object)
}

// Actions performs game interactions on behalf of the player.
type Actions interface {
	SingleClick(s world.Serial)
	DoubleClick(s world.Serial)
	PickUp(s world.Serial, amount uint16)
	Say(text string, keywords []uint16)
}

// Walker advances path-finding. It runs first in every update.
type Walker interface {
	ProcessAutoWalk()
}

// Input is the pointer state of one update, in screen coordinates.
type Input struct {
	Mouse        image.Point
	Wheel        float64
	LeftPressed  bool
	LeftReleased bool
}

// Config holds the collaborators of a scene. World is required; the rest
// may be nil.
type Config struct {
	World   *world.World
	Anim    view.Animations
	Conv    view.Conversions
	Art     view.Art
	Speech  *speech.Table
	Egress  Egress
	UI      UISink
	Actions Actions
	Walker  Walker

	// Viewport is the screen rectangle the world is shown in.
	Viewport image.Rectangle
	// Scale is the initial zoom, clamped to [MinScale, MaxScale].
	Scale float64
	// Highlight tints the object under the cursor.
	Highlight bool
	Light     render.Light
}

// Scene is the in-game frame orchestrator. All methods must be called from
// the frame goroutine.
type Scene struct {
	cfg   Config
	world *world.World

	renderList []RenderEntry
	window     Window
	cam        image.Point
	maxDrawZ   int
	rendered   int

	picks     pick.List
	picker    pick.Picker
	selection pick.Selection
	renderer  *view.Renderer
	overheads *overhead.Manager
	anchors   map[world.Serial]image.Point

	deferred deferQueue
	useItems *useItemQueue
	tasks    Tasks
	clicks   clickTracker

	input       Input
	scale       float64
	pendingZoom float64
	zoomLimit   *rate.Limiter

	timePing float64
	pingSeq  byte
	totalMS  float64
}

// New returns a scene over cfg.World.
func New(cfg Config) *Scene {
	if cfg.Scale == 0 {
		cfg.Scale = 1
	}
	s := &Scene{
		cfg:       cfg,
		world:     cfg.World,
		maxDrawZ:  NoDrawClamp,
		overheads: overhead.NewManager(cfg.World),
		anchors:   make(map[world.Serial]image.Point),
		useItems:  newUseItemQueue(),
		scale:     clampScale(cfg.Scale),
		zoomLimit: rate.NewLimiter(rate.Every(40*time.Millisecond), 3),
	}
	s.selection.Highlight = cfg.Highlight
	s.renderer = view.NewRenderer(cfg.Anim, cfg.Conv, cfg.Art, &s.picks)
	return s
}

// Close releases the scene's world subscriptions and queues.
func (s *Scene) Close() {
	s.overheads.Close()
	s.useItems.clear()
	s.tasks.Clear()
	s.renderList = s.renderList[:0]
}

// Overheads returns the floating text manager.
func (s *Scene) Overheads() *overhead.Manager { return s.overheads }

// Tasks returns the scheduled continuation queue.
func (s *Scene) Tasks() *Tasks { return &s.tasks }

// RenderList returns the current draw list. It is rebuilt every fixed
// update and must not be retained.
func (s *Scene) RenderList() []RenderEntry { return s.renderList }

// Window returns the tile window of the last fixed update.
func (s *Scene) Window() Window { return s.window }

// MaxDrawZ returns the current altitude draw ceiling.
func (s *Scene) MaxDrawZ() int { return s.maxDrawZ }

// Rendered returns how many objects the last Draw drew.
func (s *Scene) Rendered() int { return s.rendered }

// Scale returns the zoom factor.
func (s *Scene) Scale() float64 { return s.scale }

// SetViewport moves or resizes the world viewport.
func (s *Scene) SetViewport(r image.Rectangle) { s.cfg.Viewport = r }

// SetHighlight toggles tinting of the object under the cursor.
func (s *Scene) SetHighlight(on bool) {
	s.selection.Highlight = on
	if cur := s.selection.Current(); cur != nil {
		cur.Base().Selected = on
	}
}

// TargetSize is the size of the offscreen image the world is drawn to.
// Zooming out grows it; the game scales it back into the viewport.
func (s *Scene) TargetSize() (int, int) {
	return int(float64(s.cfg.Viewport.Dx()) * s.scale), int(float64(s.cfg.Viewport.Dy()) * s.scale)
}

// SetInput records the pointer state for the next Update.
func (s *Scene) SetInput(in Input) { s.input = in }

// SelectedObject returns the object under the cursor, or nil.
func (s *Scene) SelectedObject() world.Object { return s.selection.Current() }

// OverheadUnderMouse returns the topmost overhead label under the cursor
// after the last Draw, or nil.
func (s *Scene) OverheadUnderMouse() *overhead.Entry {
	if !s.mouseOverWorld() {
		return nil
	}
	return s.overheads.At(s.worldMouse())
}

// HoverList returns every object under the cursor after the last Draw.
func (s *Scene) HoverList() []world.Object { return s.picker.Hover() }

// Defer runs action on o after delayMS unless o is disposed first. A newer
// action on the same object replaces the pending one.
func (s *Scene) Defer(o world.Object, delayMS float64, action func()) {
	if !world.Alive(o) {
		return
	}
	s.deferred.add(o, delayMS, action)
}

// CancelDeferred drops the pending action on o.
func (s *Scene) CancelDeferred(o world.Object) bool { return s.deferred.cancel(o) }

// DoubleClickDelayed queues a paced double click on serial.
func (s *Scene) DoubleClickDelayed(serial world.Serial) bool {
	return s.useItems.add(serial)
}

// Say sends speech with its keyword ids and shows it over the player.
func (s *Scene) Say(text string) {
	if text == "" {
		return
	}
	ids := s.cfg.Speech.IDs(text)
	if s.cfg.Actions != nil {
		s.cfg.Actions.Say(text, ids)
	}
	if p := s.world.Player(); p != nil {
		s.overheads.Add(p.Serial, text, 0, overhead.TimeToLive(text))
	}
}

func clampScale(v float64) float64 {
	return math.Max(MinScale, math.Min(MaxScale, v))
}

func (s *Scene) mouseOverWorld() bool {
	return s.input.Mouse.In(s.cfg.Viewport)
}

// worldMouse converts the cursor into offscreen target coordinates.
func (s *Scene) worldMouse() image.Point {
	p := s.input.Mouse.Sub(s.cfg.Viewport.Min)
	return image.Pt(int(float64(p.X)*s.scale), int(float64(p.Y)*s.scale))
}

func (s *Scene) updateCamera(p *world.Mobile) {
	w, h := s.TargetSize()
	x, y := Project(&p.Entity, image.Point{})
	s.cam = image.Pt(x-w/2, y-h/2)
}

// viewWindow covers every tile that can show inside the target around the
// player.
func (s *Scene) viewWindow(p *world.Mobile) Window {
	w, h := s.TargetSize()
	r := max(w, h)/(tileHalf*2) + windowMargin
	win := Window{MinX: p.X - r, MinY: p.Y - r, MaxX: p.X + r, MaxY: p.Y + r}
	if m := s.world.Map; m != nil {
		win.MinX = max(win.MinX, 0)
		win.MinY = max(win.MinY, 0)
		win.MaxX = min(win.MaxX, m.Width-1)
		win.MaxY = min(win.MaxY, m.Height-1)
	}
	return win
}

// UpdateMaxDrawZ hides whatever is well above the player's head when the
// player stands under it, so roofs do not cover the character.
func (s *Scene) UpdateMaxDrawZ() {
	s.maxDrawZ = NoDrawClamp
	p := s.world.Player()
	if p == nil || s.world.Map == nil {
		return
	}
	limit := int(p.Z) + drawClampHeight
	for _, t := range [...]*world.Tile{s.world.Map.Tile(p.X, p.Y), s.world.Map.Tile(p.X-1, p.Y-1)} {
		for _, o := range t.Objects() {
			switch o.(type) {
			case *world.Static, *world.Item:
				if world.Alive(o) && int(o.Base().Z) >= limit {
					s.maxDrawZ = limit
					return
				}
			}
		}
	}
}

// FixedUpdate rebuilds the render list around the player.
func (s *Scene) FixedUpdate(totalMS, frameMS float64) {
	p := s.world.Player()
	if p == nil {
		s.renderList = s.renderList[:0]
		s.window = Window{MinX: 1, MaxX: 0}
		return
	}
	s.updateCamera(p)
	s.window = s.viewWindow(p)
	s.UpdateMaxDrawZ()
	s.renderList = BuildRenderList(s.renderList, s.world.Map, s.window, s.maxDrawZ, s.cam)
}

func (s *Scene) setSelected(o world.Object) {
	if s.selection.Set(o) && s.cfg.UI != nil {
		s.cfg.UI.SelectedChanged(s.selection.Current())
	}
}

// Update advances one variable tick.
func (s *Scene) Update(totalMS, frameMS float64) {
	s.totalMS = totalMS
	if s.cfg.Walker != nil {
		s.cfg.Walker.ProcessAutoWalk()
	}
	s.setSelected(s.picker.MouseOverObject())
	s.deferred.update(frameMS)

	over := s.mouseOverWorld()
	if over {
		s.picks.SetMouse(s.worldMouse())
	} else {
		s.picks.Disable()
		s.setSelected(nil)
	}
	s.picks.Clear()
	s.handleMouse(totalMS, over)

	s.world.Update(totalMS, frameMS)
	s.overheads.Update(totalMS, frameMS)

	if totalMS > s.timePing {
		s.timePing = totalMS + KeepaliveMS
		if s.cfg.Egress != nil {
			s.pingSeq++
			s.cfg.Egress.Send(netclient.PingPacket(s.pingSeq))
		}
	}
	s.useItems.update(totalMS, s.useItem)
	s.applyZoom()
	s.tasks.Run(totalMS)
}

func (s *Scene) useItem(serial world.Serial) {
	if s.cfg.Actions != nil && s.world.Get(serial) != nil {
		s.cfg.Actions.DoubleClick(serial)
	}
}

// applyZoom turns accumulated wheel notches into scale steps. Wheel up
// zooms in.
func (s *Scene) applyZoom() {
	if s.input.Wheel != 0 && s.mouseOverWorld() {
		notches := int(math.Round(s.input.Wheel))
		if notches == 0 {
			notches = int(math.Copysign(1, s.input.Wheel))
		}
		if notches < 0 {
			notches = -notches
		}
		if s.zoomLimit.AllowN(virtualTime(s.totalMS), 1) {
			s.pendingZoom -= math.Copysign(ScaleStep*float64(notches), s.input.Wheel)
		}
	}
	s.input.Wheel = 0
	if s.pendingZoom == 0 {
		return
	}
	s.scale = clampScale(math.Round((s.scale+s.pendingZoom)*10) / 10)
	s.pendingZoom = 0
}

// Zoom adjusts the scale by delta steps of ScaleStep.
func (s *Scene) Zoom(delta int) {
	s.pendingZoom += float64(delta) * ScaleStep
}

func (s *Scene) anchor(serial world.Serial) (image.Point, bool) {
	p, ok := s.anchors[serial]
	return p, ok
}

// compact drops objects disposed since the list was built.
func (s *Scene) compact() {
	live := s.renderList[:0]
	for _, e := range s.renderList {
		if world.Alive(e.Object) {
			live = append(live, e)
		}
	}
	clear(s.renderList[len(live):])
	s.renderList = live
}

// Draw renders the world into b back to front, then the overhead text,
// and resolves what ended up under the cursor.
func (s *Scene) Draw(b render.Batcher) {
	s.compact()
	if p := s.world.Player(); p != nil {
		s.updateCamera(p)
	}
	clear(s.anchors)
	b.Begin(s.cfg.Light)
	s.rendered = 0
	for _, e := range s.renderList {
		base := e.Object.Base()
		if int(base.Z) > s.maxDrawZ {
			continue
		}
		x, y := Project(base, s.cam)
		head, ok := s.renderer.DrawObject(b, e.Object, x, y)
		if !ok {
			continue
		}
		s.rendered++
		if base.Serial != 0 {
			s.anchors[base.Serial] = head
		}
	}
	s.overheads.Draw(b, s.anchor)
	b.End()
	s.picker.Resolve(&s.picks)
}
