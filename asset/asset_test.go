package asset

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"classicgo/world"
)

func checker(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, color.NRGBA{R: 0xff, A: 0xff})
			}
		}
	}
	return img
}

func TestTextureContainsUsesAlpha(t *testing.T) {
	tex := NewTexture(checker(5, 3), 2, 0, nil)
	if tex.Width != 5 || tex.Height != 3 {
		t.Fatalf("size %dx%d", tex.Width, tex.Height)
	}
	tests := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{1, 0, false},
		{4, 2, true},
		{3, 2, false},
		{-1, 0, false},
		{5, 0, false},
		{0, 3, false},
	}
	for _, tt := range tests {
		if got := tex.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	var nilTex *Texture
	if nilTex.Contains(0, 0) {
		t.Fatalf("nil texture reported a hit")
	}
}

func TestReadBodies(t *testing.T) {
	src := `
bodies:
  - id: 0x190
    type: people
  - id: 0xC8
    type: animal
    mount_offset: 8
  - id: 0x3E
    type: monster
    color: 0x455
    replace: 0x3F
`
	b, err := ReadBodies(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadBodies: %v", err)
	}
	if b[0x190].Type != GroupPeople {
		t.Fatalf("0x190 type = %v", b[0x190].Type)
	}
	if b[0xC8].MountedHeightOffset != 8 || b[0xC8].Type != GroupAnimal {
		t.Fatalf("0xC8 = %+v", b[0xC8])
	}
	if b[0x3E].Color != 0x455 || b[0x3E].Replace != 0x3F {
		t.Fatalf("0x3E = %+v", b[0x3E])
	}
}

func TestReadBodiesEmpty(t *testing.T) {
	if _, err := ReadBodies(strings.NewReader("")); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestReadBodiesBadType(t *testing.T) {
	if _, err := ReadBodies(strings.NewReader("bodies:\n  - id: 1\n    type: dragon\n")); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}

func TestEquipConversionsLookup(t *testing.T) {
	src := `
conversions:
  - item: 0x1F03
    anim: 0x1F0
    graphic: 0x200
    color: 0x21
`
	c, err := ReadEquipConversions(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadEquipConversions: %v", err)
	}
	conv, ok := c.Lookup(0x1F03, 0x1F0)
	if !ok || conv.Graphic != 0x200 || conv.Color != 0x21 {
		t.Fatalf("lookup = %+v %v", conv, ok)
	}
	if _, ok := c.Lookup(0x1F03, 0x1F1); ok {
		t.Fatalf("unexpected match for other anim id")
	}
}

func TestReadHues(t *testing.T) {
	h, err := ReadHues(strings.NewReader("hues:\n  0x386: \"#808080\"\n"))
	if err != nil {
		t.Fatalf("ReadHues: %v", err)
	}
	c, ok := h.Color(0x386)
	if !ok || c != (color.RGBA{0x80, 0x80, 0x80, 0xff}) {
		t.Fatalf("hue 0x386 = %v %v", c, ok)
	}
	if _, err := ReadHues(strings.NewReader("hues:\n  1: \"zz\"\n")); err == nil {
		t.Fatalf("expected error for bad colour")
	}
}

type countingLoader struct {
	calls   atomic.Int32
	release chan struct{}
}

func (l *countingLoader) LoadDirection(anim world.Graphic, group, dir uint8) ([]Frame, error) {
	l.calls.Add(1)
	if l.release != nil {
		<-l.release
	}
	if anim == 0x99 {
		return nil, errors.New("missing")
	}
	return []Frame{{Image: checker(4, 4)}, {Image: checker(2, 2)}}, nil
}

func (l *countingLoader) LoadArt(g world.Graphic, land bool) (Frame, error) {
	if land {
		return Frame{Image: checker(44, 44)}, nil
	}
	return Frame{Image: checker(3, 3)}, nil
}

func TestStoreDirectionLoadsInBackground(t *testing.T) {
	l := &countingLoader{release: make(chan struct{})}
	s := NewStore(l, nil, Options{Workers: 2})

	if _, ok := s.Direction(0x190, 4, 1); ok {
		t.Fatalf("direction ready before load")
	}
	if _, ok := s.Direction(0x190, 4, 1); ok {
		t.Fatalf("direction ready before load")
	}
	close(l.release)
	s.Wait()

	d, ok := s.Direction(0x190, 4, 1)
	if !ok || d.FrameCount != 2 {
		t.Fatalf("direction = %+v %v", d, ok)
	}
	if l.calls.Load() != 1 {
		t.Fatalf("loader called %d times, want 1", l.calls.Load())
	}
	tex := s.Texture(d.Hashes[1])
	if tex == nil || tex.Width != 2 {
		t.Fatalf("texture = %+v", tex)
	}
}

func TestStoreMissingDirection(t *testing.T) {
	l := &countingLoader{}
	s := NewStore(l, nil, Options{})
	s.Direction(0x99, 0, 0)
	s.Wait()
	if _, ok := s.Direction(0x99, 0, 0); ok {
		t.Fatalf("missing direction reported ready")
	}
	if l.calls.Load() != 1 {
		t.Fatalf("missing direction retried before sweep")
	}
}

func TestStoreReplacedBody(t *testing.T) {
	l := &countingLoader{}
	bodies := Bodies{0x3E: {ID: 0x3E, Replace: 0x3F, Color: 0x455}}
	s := NewStore(l, bodies, Options{})
	s.Direction(0x3E, 0, 0)
	s.Wait()
	d, ok := s.Direction(0x3E, 0, 0)
	if !ok || !d.Replaced {
		t.Fatalf("expected replaced direction, got %+v %v", d, ok)
	}
}

func TestStoreArtKeysSeparateLand(t *testing.T) {
	s := NewStore(&countingLoader{}, nil, Options{})
	if s.Static(7) != nil || s.Land(7) != nil {
		t.Fatalf("art ready before load")
	}
	s.Wait()
	if st := s.Static(7); st == nil || st.Width != 3 {
		t.Fatalf("static = %+v", st)
	}
	if ld := s.Land(7); ld == nil || ld.Width != 44 {
		t.Fatalf("land = %+v", ld)
	}
}

func TestStoreSweep(t *testing.T) {
	now := time.Unix(100, 0)
	s := NewStore(nil, nil, Options{Now: func() time.Time { return now }})
	d := s.Register(1, 0, 0, []Frame{{Image: checker(2, 2)}}, false)
	now = now.Add(time.Minute)
	if n := s.Sweep(30 * time.Second); n != 1 {
		t.Fatalf("swept %d, want 1", n)
	}
	if s.Texture(d.Hashes[0]) != nil {
		t.Fatalf("texture survived sweep")
	}
	if _, ok := s.Direction(1, 0, 0); ok {
		t.Fatalf("direction survived sweep")
	}
}

func TestFSLoader(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, checker(6, 8)); err != nil {
		t.Fatal(err)
	}
	fsys := fstest.MapFS{
		"anim/400/4/1/000.png":     {Data: buf.Bytes()},
		"anim/400/4/1/001.png":     {Data: buf.Bytes()},
		"anim/400/4/1/frames.yaml": {Data: []byte("- {cx: 1, cy: 2}\n")},
		"art/3.png":                {Data: buf.Bytes()},
	}
	l := FSLoader{FS: fsys}
	frames, err := l.LoadDirection(400, 4, 1)
	if err != nil {
		t.Fatalf("LoadDirection: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("got %d frames", len(frames))
	}
	if frames[0].CenterX != 1 || frames[0].CenterY != 2 {
		t.Fatalf("frame 0 centre = %d,%d", frames[0].CenterX, frames[0].CenterY)
	}
	if frames[1].CenterX != 3 || frames[1].CenterY != 0 {
		t.Fatalf("frame 1 default centre = %d,%d", frames[1].CenterX, frames[1].CenterY)
	}
	if _, err := l.LoadDirection(1, 0, 0); err == nil {
		t.Fatalf("expected error for missing directory")
	}
	st, err := l.LoadArt(3, false)
	if err != nil || st.Image.Bounds().Dx() != 6 {
		t.Fatalf("LoadStatic: %v", err)
	}
}
