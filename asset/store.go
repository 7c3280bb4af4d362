package asset

import (
	"image"
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/remeh/sizedwaitgroup"

	"classicgo/world"
)

// Frame is one decoded animation or art frame.
type Frame struct {
	Image   image.Image
	CenterX int
	CenterY int
}

// Loader decodes raw frames. Implementations may be slow; Store calls them
// off the frame goroutine.
type Loader interface {
	LoadDirection(anim world.Graphic, group, dir uint8) ([]Frame, error)
	LoadArt(g world.Graphic, land bool) (Frame, error)
}

// Direction is the frame list of one (animation, group, direction).
type Direction struct {
	FrameCount int
	Hashes     []uint32
	// Replaced is true when the frames come from a substitute body.
	Replaced bool
}

type dirKey struct {
	anim  world.Graphic
	group uint8
	dir   uint8
}

type artKey struct {
	g    world.Graphic
	land bool
}

type dirEntry struct {
	Direction
	lastAccess time.Time
}

// Options tune a Store.
type Options struct {
	// Workers bounds concurrent loads. Zero uses the CPU count.
	Workers int
	// NewImage uploads decoded pixels. Nil keeps textures CPU-only.
	NewImage func(image.Image) *ebiten.Image
	// Now overrides the clock used for cache sweeping.
	Now func() time.Time
}

// Store serves animation frames and art to the renderer. Lookups never
// block: anything not yet decoded reports "not ready" and is queued.
type Store struct {
	loader Loader
	bodies Bodies
	opts   Options
	wg     sizedwaitgroup.SizedWaitGroup

	mu       sync.Mutex
	dirs     map[dirKey]*dirEntry
	pending  map[dirKey]struct{}
	missing  map[dirKey]struct{}
	textures map[uint32]*Texture
	arts     map[artKey]*Texture
	artQ     map[artKey]struct{}
	nextHash uint32
	inflight sync.WaitGroup
}

// NewStore returns a store backed by loader. loader may be nil when frames
// are registered directly.
func NewStore(loader Loader, bodies Bodies, opts Options) *Store {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if bodies == nil {
		bodies = Bodies{}
	}
	return &Store{
		loader:   loader,
		bodies:   bodies,
		opts:     opts,
		wg:       sizedwaitgroup.New(opts.Workers),
		dirs:     make(map[dirKey]*dirEntry),
		pending:  make(map[dirKey]struct{}),
		missing:  make(map[dirKey]struct{}),
		textures: make(map[uint32]*Texture),
		arts:     make(map[artKey]*Texture),
		artQ:     make(map[artKey]struct{}),
	}
}

// Body returns metadata for anim. Unknown ids get a zero BodyInfo.
func (s *Store) Body(anim world.Graphic) BodyInfo {
	info, ok := s.bodies[anim]
	if !ok {
		info.ID = anim
	}
	return info
}

// Direction returns the frames for (anim, group, dir). The second result is
// false while the frames are still loading or do not exist.
func (s *Store) Direction(anim world.Graphic, group, dir uint8) (Direction, bool) {
	k := dirKey{anim, group, dir}
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.dirs[k]; ok {
		e.lastAccess = s.opts.Now()
		return e.Direction, true
	}
	if _, ok := s.missing[k]; ok {
		return Direction{}, false
	}
	if _, ok := s.pending[k]; ok || s.loader == nil {
		return Direction{}, false
	}
	s.pending[k] = struct{}{}
	s.inflight.Add(1)
	go s.loadDirection(k)
	return Direction{}, false
}

func (s *Store) loadDirection(k dirKey) {
	defer s.inflight.Done()
	s.wg.Add()
	defer s.wg.Done()

	src := k.anim
	replaced := false
	if info, ok := s.bodies[k.anim]; ok && info.Replace != 0 {
		src = info.Replace
		replaced = true
	}
	frames, err := s.loader.LoadDirection(src, k.group, k.dir)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, k)
	if err != nil || len(frames) == 0 {
		if err != nil {
			log.Printf("load animation %#x group %d dir %d: %v", k.anim, k.group, k.dir, err)
		}
		s.missing[k] = struct{}{}
		return
	}
	s.registerLocked(k, frames, replaced)
}

// Register installs decoded frames for (anim, group, dir) and returns the
// resulting direction.
func (s *Store) Register(anim world.Graphic, group, dir uint8, frames []Frame, replaced bool) Direction {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := dirKey{anim, group, dir}
	delete(s.missing, k)
	return s.registerLocked(k, frames, replaced)
}

func (s *Store) registerLocked(k dirKey, frames []Frame, replaced bool) Direction {
	if old, ok := s.dirs[k]; ok {
		for _, h := range old.Hashes {
			delete(s.textures, h)
		}
	}
	d := Direction{FrameCount: len(frames), Hashes: make([]uint32, len(frames)), Replaced: replaced}
	for i, f := range frames {
		if f.Image == nil {
			continue
		}
		s.nextHash++
		h := s.nextHash
		s.textures[h] = NewTexture(f.Image, f.CenterX, f.CenterY, s.opts.NewImage)
		d.Hashes[i] = h
	}
	s.dirs[k] = &dirEntry{Direction: d, lastAccess: s.opts.Now()}
	return d
}

// Texture returns the frame for hash, or nil.
func (s *Store) Texture(hash uint32) *Texture {
	if hash == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.textures[hash]
}

// Static returns the art for static graphic g, queueing a load when absent.
func (s *Store) Static(g world.Graphic) *Texture { return s.art(artKey{g: g}) }

// Land returns the terrain art for g, queueing a load when absent.
func (s *Store) Land(g world.Graphic) *Texture { return s.art(artKey{g: g, land: true}) }

func (s *Store) art(k artKey) *Texture {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.arts[k]; ok {
		return t
	}
	if _, ok := s.artQ[k]; ok || s.loader == nil {
		return nil
	}
	s.artQ[k] = struct{}{}
	s.inflight.Add(1)
	go s.loadArt(k)
	return nil
}

func (s *Store) loadArt(k artKey) {
	defer s.inflight.Done()
	s.wg.Add()
	defer s.wg.Done()
	f, err := s.loader.LoadArt(k.g, k.land)
	var t *Texture
	if err != nil {
		log.Printf("load art %#x (land=%v): %v", k.g, k.land, err)
	} else if f.Image != nil {
		t = NewTexture(f.Image, f.CenterX, f.CenterY, s.opts.NewImage)
	}
	s.mu.Lock()
	s.arts[k] = t
	delete(s.artQ, k)
	s.mu.Unlock()
}

// RegisterArt installs art for g.
func (s *Store) RegisterArt(g world.Graphic, land bool, f Frame) *Texture {
	t := NewTexture(f.Image, f.CenterX, f.CenterY, s.opts.NewImage)
	s.mu.Lock()
	s.arts[artKey{g: g, land: land}] = t
	s.mu.Unlock()
	return t
}

// Wait blocks until every queued load has finished.
func (s *Store) Wait() {
	s.inflight.Wait()
}

// Sweep unloads directions not accessed within maxIdle and returns how many
// were dropped. Missing entries are forgotten so they are retried.
func (s *Store) Sweep(maxIdle time.Duration) int {
	now := s.opts.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k, e := range s.dirs {
		if now.Sub(e.lastAccess) < maxIdle {
			continue
		}
		for _, h := range e.Hashes {
			delete(s.textures, h)
		}
		delete(s.dirs, k)
		n++
	}
	clear(s.missing)
	return n
}

// Stats reports cache sizes for the debug overlay.
func (s *Store) Stats() (directions, textures int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.dirs), len(s.textures)
}
