package scene

import (
	"image"

	"classicgo/world"
)

const (
	// tileHalf is half the width of an isometric tile in pixels.
	tileHalf = 22
	// zStep is the screen rise of one unit of altitude.
	zStep = 4
	// NoDrawClamp is the draw ceiling when nothing overhead needs hiding.
	NoDrawClamp = 127
)

// TileSource yields the tiles of a map. *world.Map implements it; a nil
// tile is treated as empty.
type TileSource interface {
	Tile(x, y int) *world.Tile
}

// Window is an inclusive range of tile coordinates.
type Window struct {
	MinX, MinY, MaxX, MaxY int
}

// Empty reports whether the window is degenerate.
func (w Window) Empty() bool { return w.MinX > w.MaxX || w.MinY > w.MaxY }

// Contains reports whether (x, y) lies inside w.
func (w Window) Contains(x, y int) bool {
	return x >= w.MinX && x <= w.MaxX && y >= w.MinY && y <= w.MaxY
}

// RenderEntry is one object in draw order with its screen anchor at the
// time the list was built.
type RenderEntry struct {
	Object world.Object
	X, Y   int
}

// Project returns the screen anchor of e for a camera at cam.
func Project(e *world.Entity, cam image.Point) (int, int) {
	x := (e.X-e.Y)*tileHalf - cam.X + int(e.Offset.X)
	y := (e.X+e.Y)*tileHalf - int(e.Z)*zStep - cam.Y + int(e.Offset.Y-e.Offset.Z)
	return x, y
}

// BuildRenderList refills dst with the contents of win in painter's order.
// Tiles are walked along anti-diagonals, each from its lower-left end
// toward the upper-right, so a tile is always appended after the tiles it
// may overlap from behind. Every in-window tile is visited exactly once.
// Disposed objects and objects above maxZ are skipped.
func BuildRenderList(dst []RenderEntry, src TileSource, win Window, maxZ int, cam image.Point) []RenderEntry {
	dst = dst[:0]
	if win.Empty() || src == nil {
		return dst
	}
	visit := func(x, y int) {
		for ; win.Contains(x, y); x, y = x+1, y-1 {
			for _, o := range src.Tile(x, y).Objects() {
				e := o.Base()
				if e.IsDisposed() || int(e.Z) > maxZ {
					continue
				}
				sx, sy := Project(e, cam)
				dst = append(dst, RenderEntry{Object: o, X: sx, Y: sy})
			}
		}
	}
	for row := win.MinY; row <= win.MaxY; row++ {
		visit(win.MinX, row)
	}
	for col := win.MinX + 1; col <= win.MaxX; col++ {
		visit(col, win.MaxY)
	}
	return dst
}
