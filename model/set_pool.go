package model

import "sync"

// cellSet is the living-set representation: membership only, no payload
type cellSet map[Cell]struct{}

// SetPool recycles the scratch sets built on every tick
type SetPool struct {
	pool sync.Pool
}

func NewSetPool() *SetPool {
	return &SetPool{
		pool: sync.Pool{
			New: func() interface{} {
				return make(cellSet)
			},
		},
	}
}

// Get retrieves an empty set from the pool. A nil pool allocates.
func (p *SetPool) Get() cellSet {
	if p == nil {
		return make(cellSet)
	}
	return p.pool.Get().(cellSet)
}

// Put returns a set to the pool, clearing its contents
func (p *SetPool) Put(s cellSet) {
	if p == nil || s == nil {
		return
	}
	clear(s)
	p.pool.Put(s)
}
