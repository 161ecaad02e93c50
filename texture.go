package carousel

import (
	"context"
	"log"

	"golang.org/x/sync/semaphore"
)

// LoadFunc loads the texture for item index from src. It runs off the
// frame goroutine.
type LoadFunc[T any] func(ctx context.Context, index int, src string) (T, error)

type textureResult[T any] struct {
	index int
	tex   T
	err   error
}

type textureSlot[T any] struct {
	tex      T
	resolved bool
	err      error
}

// TextureSet holds one optional texture per item. Loads run in background
// goroutines, at most maxConcurrent at a time; results are only applied by
// Poll on the frame goroutine, so readers never see a half-written slot.
// Items without a resolved texture render with a placeholder.
type TextureSet[T any] struct {
	slots     []textureSlot[T]
	results   chan textureResult[T]
	sem       *semaphore.Weighted
	pending   int
	onResolve func(index int, tex T)
}

// NewTextureSet returns a set for n items.
func NewTextureSet[T any](n int, maxConcurrent int64) *TextureSet[T] {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &TextureSet[T]{
		slots:   make([]textureSlot[T], n),
		results: make(chan textureResult[T], n),
		sem:     semaphore.NewWeighted(maxConcurrent),
	}
}

// OnResolve sets a callback run by Poll for each newly resolved texture.
func (s *TextureSet[T]) OnResolve(fn func(index int, tex T)) {
	s.onResolve = fn
}

// Load starts loading sources[i] into slot i for every source that fits.
// Cancelling ctx abandons loads that have not started.
func (s *TextureSet[T]) Load(ctx context.Context, sources []string, load LoadFunc[T]) {
	for i, src := range sources {
		if i >= len(s.slots) {
			break
		}
		s.pending++
		go func(i int, src string) {
			if err := s.sem.Acquire(ctx, 1); err != nil {
				s.results <- textureResult[T]{index: i, err: err}
				return
			}
			defer s.sem.Release(1)
			tex, err := load(ctx, i, src)
			s.results <- textureResult[T]{index: i, tex: tex, err: err}
		}(i, src)
	}
}

// Poll applies every finished load without blocking and returns how many
// textures resolved. Failed loads are logged and leave the placeholder.
func (s *TextureSet[T]) Poll() int {
	resolved := 0
	for {
		select {
		case r := <-s.results:
			s.pending--
			if r.err != nil {
				s.slots[r.index].err = r.err
				log.Printf("carousel: texture %d: %v", r.index, r.err)
				continue
			}
			s.Resolve(r.index, r.tex)
			resolved++
		default:
			return resolved
		}
	}
}

// Resolve sets slot i directly. Must be called on the frame goroutine.
func (s *TextureSet[T]) Resolve(i int, tex T) {
	if i < 0 || i >= len(s.slots) {
		return
	}
	s.slots[i] = textureSlot[T]{tex: tex, resolved: true}
	if s.onResolve != nil {
		s.onResolve(i, tex)
	}
}

// Get returns the texture for item i and whether it has resolved.
func (s *TextureSet[T]) Get(i int) (T, bool) {
	if i < 0 || i >= len(s.slots) {
		var zero T
		return zero, false
	}
	sl := s.slots[i]
	return sl.tex, sl.resolved
}

// Err returns the load error for item i, if its load failed.
func (s *TextureSet[T]) Err(i int) error {
	if i < 0 || i >= len(s.slots) {
		return nil
	}
	return s.slots[i].err
}

// Pending returns the number of loads not yet polled.
func (s *TextureSet[T]) Pending() int { return s.pending }

// Len returns the number of slots.
func (s *TextureSet[T]) Len() int { return len(s.slots) }
