package world

import "sort"

// Tile is one map cell. Objects are kept bottom-to-top.
type Tile struct {
	X, Y    int
	objects []Object
}

// Objects returns the tile contents in draw order. The slice is owned by the
// tile and must not be modified.
func (t *Tile) Objects() []Object {
	if t == nil {
		return nil
	}
	return t.objects
}

// Empty reports whether nothing stands on the tile.
func (t *Tile) Empty() bool { return t == nil || len(t.objects) == 0 }

func kindPriority(k Kind) int {
	switch k {
	case KindLand:
		return 0
	case KindStatic:
		return 1
	case KindItem:
		return 2
	default:
		return 3
	}
}

func less(a, b *Entity) bool {
	if a.Z != b.Z {
		return a.Z < b.Z
	}
	if pa, pb := kindPriority(a.kind), kindPriority(b.kind); pa != pb {
		return pa < pb
	}
	return a.order < b.order
}

func (t *Tile) insert(o Object) {
	e := o.Base()
	i := sort.Search(len(t.objects), func(i int) bool {
		return less(e, t.objects[i].Base())
	})
	t.objects = append(t.objects, nil)
	copy(t.objects[i+1:], t.objects[i:])
	t.objects[i] = o
}

func (t *Tile) remove(o Object) bool {
	for i, cur := range t.objects {
		if cur == o {
			copy(t.objects[i:], t.objects[i+1:])
			t.objects[len(t.objects)-1] = nil
			t.objects = t.objects[:len(t.objects)-1]
			return true
		}
	}
	return false
}

// Map is a fixed grid of tiles.
type Map struct {
	Width, Height int

	tiles   []Tile
	counter uint64
}

// NewMap allocates a w by h map.
func NewMap(w, h int) *Map {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	m := &Map{Width: w, Height: h, tiles: make([]Tile, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t := &m.tiles[y*w+x]
			t.X, t.Y = x, y
		}
	}
	return m
}

// Tile returns the cell at (x, y) or nil outside the map.
func (m *Map) Tile(x, y int) *Tile {
	if m == nil || x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return nil
	}
	return &m.tiles[y*m.Width+x]
}

// Place inserts o on the tile at its current position. Objects outside the
// map are ignored.
func (m *Map) Place(o Object) bool {
	e := o.Base()
	t := m.Tile(e.X, e.Y)
	if t == nil {
		return false
	}
	m.counter++
	e.order = m.counter
	t.insert(o)
	return true
}

// Remove takes o off the tile at its current position.
func (m *Map) Remove(o Object) bool {
	e := o.Base()
	return m.Tile(e.X, e.Y).removeSafe(o)
}

func (t *Tile) removeSafe(o Object) bool {
	if t == nil {
		return false
	}
	return t.remove(o)
}

// Move relocates o to (x, y, z), updating tile membership.
func (m *Map) Move(o Object, x, y int, z int8) {
	m.Remove(o)
	e := o.Base()
	e.X, e.Y, e.Z = x, y, z
	m.Place(o)
}
