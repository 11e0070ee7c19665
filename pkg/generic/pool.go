package generic

import "sync"

// Pool is a typed wrapper around sync.Pool.
type Pool[T any] struct {
	pool sync.Pool
}

func NewPool[T any](generate func() T) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return generate()
			},
		},
	}
}

func (p *Pool[T]) Get() T {
	return p.pool.Get().(T)
}

func (p *Pool[T]) Put(value T) {
	p.pool.Put(value)
}

// SlicePool pools slices of E, handing them out empty but with retained
// capacity. Layout passes run per head-pose update, so the scratch
// buffers they need are ideal pool citizens.
type SlicePool[E any] struct {
	pool Pool[[]E]
}

func NewSlicePool[E any](capacity int) *SlicePool[E] {
	return &SlicePool[E]{
		pool: Pool[[]E]{
			pool: sync.Pool{
				New: func() any {
					return make([]E, 0, capacity)
				},
			},
		},
	}
}

func (p *SlicePool[E]) Get() []E {
	return p.pool.Get()[:0]
}

func (p *SlicePool[E]) Put(s []E) {
	p.pool.Put(s)
}
