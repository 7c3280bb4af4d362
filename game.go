package main

import (
	"context"
	"errors"
	"image"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"classicgo/asset"
	"classicgo/render"
	"classicgo/scene"
	"classicgo/world"
)

const initialWindowW, initialWindowH = 1280, 720

const (
	tps     = 60
	frameMS = 1000.0 / tps

	sweepEveryMS  = 30_000
	directionIdle = time.Minute
)

var errShutdown = errors.New("shutdown")

// Game adapts the scene to Ebiten's loop.
type Game struct {
	ctx   context.Context
	world *world.World
	scene *scene.Scene
	store *asset.Store
	batch *render.Batch

	worldImg  *ebiten.Image
	ticks     uint64
	lastSweep float64
	overlay   *debugOverlay
}

func newGame(ctx context.Context, w *world.World, sc *scene.Scene, store *asset.Store, hues asset.HueTable) *Game {
	b := render.NewBatch(hues)
	b.Debug = gs.DebugSprites
	return &Game{
		ctx:     ctx,
		world:   w,
		scene:   sc,
		store:   store,
		batch:   b,
		overlay: newDebugOverlay(time.Now()),
	}
}

func (g *Game) Update() error {
	select {
	case <-g.ctx.Done():
		return errShutdown
	default:
	}
	g.ticks++
	total := float64(g.ticks) * frameMS

	mx, my := ebiten.CursorPosition()
	_, wy := ebiten.Wheel()
	g.scene.SetInput(scene.Input{
		Mouse:        image.Pt(mx, my),
		Wheel:        wy,
		LeftPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		LeftReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	})
	g.handleKeys()

	g.scene.FixedUpdate(total, frameMS)
	g.scene.Update(total, frameMS)
	gs.GameScale = g.scene.Scale()

	if total-g.lastSweep >= sweepEveryMS {
		g.lastSweep = total
		if n := g.store.Sweep(directionIdle); n > 0 {
			logDebug("unloaded %d idle animation directions", n)
		}
	}
	return nil
}

func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		gs.ShowFPS = !gs.ShowFPS
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF4) {
		gs.DebugSprites = !gs.DebugSprites
		g.batch.Debug = gs.DebugSprites
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		gs.HighlightObjects = !gs.HighlightObjects
		g.scene.SetHighlight(gs.HighlightObjects)
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		// Scale is world pixels per screen pixel, so smaller is closer.
		if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
			g.scene.Zoom(-1)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
			g.scene.Zoom(1)
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	w, h := g.scene.TargetSize()
	if w <= 0 || h <= 0 {
		return
	}
	if g.worldImg == nil || g.worldImg.Bounds().Dx() != w || g.worldImg.Bounds().Dy() != h {
		if g.worldImg != nil {
			g.worldImg.Deallocate()
		}
		g.worldImg = ebiten.NewImage(w, h)
	}
	g.worldImg.Clear()
	g.batch.Target = g.worldImg
	g.scene.Draw(g.batch)

	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	s := 1 / g.scene.Scale()
	op.GeoM.Scale(s, s)
	vp := screen.Bounds()
	op.GeoM.Translate(float64(vp.Min.X), float64(vp.Min.Y))
	screen.DrawImage(g.worldImg, op)

	if gs.ShowFPS {
		g.overlay.Draw(screen, g.stats())
	}
}

func (g *Game) stats() overlayStats {
	dirs, tex := g.store.Stats()
	var label string
	if e := g.scene.OverheadUnderMouse(); e != nil {
		label = e.Text
	}
	return overlayStats{
		objects:    g.world.Len(),
		listed:     len(g.scene.RenderList()),
		drawn:      g.scene.Rendered(),
		directions: dirs,
		textures:   tex,
		selected:   g.scene.SelectedObject(),
		hover:      len(g.scene.HoverList()),
		label:      label,
		scale:      g.scene.Scale(),
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scene.SetViewport(image.Rect(0, 0, outsideWidth, outsideHeight))
	if !ebiten.IsFullscreen() {
		gs.WindowWidth, gs.WindowHeight = ebiten.WindowSize()
	}
	return outsideWidth, outsideHeight
}

func runGame(g *Game) {
	ebiten.SetWindowTitle("classicgo")
	ebiten.SetWindowSize(gs.WindowWidth, gs.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(tps)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, errShutdown) {
		logError("ebiten: %v", err)
	}
}
