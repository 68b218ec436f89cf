package model

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/sheikhrachel/go-life/rules"
)

// World owns the set of living cells on an unbounded grid. Any coordinate
// not in the set is dead.
//
// A World is not safe for concurrent use; the driver calls Advance and the
// read-only queries from a single goroutine. The zero value is an empty world.
type World struct {
	living cellSet
	pool   *SetPool
}

// Bounds is the bounding box of the living cells, inclusive on both ends
type Bounds struct {
	MinX, MaxX, MinY, MaxY int
}

// Area returns the number of coordinates covered by the box
func (b Bounds) Area() int {
	return (b.MaxX - b.MinX + 1) * (b.MaxY - b.MinY + 1)
}

// NewWorld creates a world whose living set is exactly cells; duplicates collapse
func NewWorld(cells ...Cell) *World {
	w := &World{living: make(cellSet, len(cells))}
	w.Add(cells...)
	return w
}

// NewRandomWorld creates a world seeded with SeedRandom
func NewRandomWorld(rng *rand.Rand, count, boundMin, boundMax int) *World {
	w := NewWorld()
	w.SeedRandom(rng, count, boundMin, boundMax)
	return w
}

// UsePool makes Advance draw its scratch sets from pool. A nil pool disables reuse.
func (w *World) UsePool(pool *SetPool) *World {
	w.pool = pool
	return w
}

// Add marks cells as living
func (w *World) Add(cells ...Cell) {
	if w.living == nil {
		w.living = make(cellSet, len(cells))
	}
	for _, c := range cells {
		w.living[c] = struct{}{}
	}
}

// SeedRandom adds count cells with both coordinates drawn uniformly from
// [boundMin, boundMax). Duplicate draws collapse, so fewer than count cells
// may be added. A nil rng uses the global source.
func (w *World) SeedRandom(rng *rand.Rand, count, boundMin, boundMax int) {
	if count <= 0 || boundMax <= boundMin {
		return
	}
	if w.living == nil {
		w.living = make(cellSet, count)
	}
	// Unsigned span so ranges wider than MaxInt still draw; adding the
	// offset back wraps into [boundMin, boundMax)
	span := uint64(boundMax) - uint64(boundMin)
	uint64N := rand.Uint64N
	if rng != nil {
		uint64N = rng.Uint64N
	}
	for range count {
		x := boundMin + int(uint64N(span))
		y := boundMin + int(uint64N(span))
		w.living[Cell{X: x, Y: y}] = struct{}{}
	}
}

// IsAlive reports whether c is in the living set
func (w *World) IsAlive(c Cell) bool {
	_, ok := w.living[c]
	return ok
}

// Population returns the number of living cells
func (w *World) Population() int {
	return len(w.living)
}

// LivingCells returns a sorted snapshot of the living set
func (w *World) LivingCells() []Cell {
	cells := make([]Cell, 0, len(w.living))
	for c := range w.living {
		cells = append(cells, c)
	}
	slices.SortFunc(cells, Cell.Compare)
	return cells
}

// LivingNeighborCount counts the living cells in c's Moore neighborhood
func (w *World) LivingNeighborCount(c Cell) (count int) {
	for _, n := range c.Neighbors() {
		if w.IsAlive(n) {
			count++
		}
	}
	return
}

// DeadNeighbors returns the cells of c's Moore neighborhood that are not alive
func (w *World) DeadNeighbors(c Cell) []Cell {
	dead := make([]Cell, 0, len(mooreOffsets))
	for _, n := range c.Neighbors() {
		if !w.IsAlive(n) {
			dead = append(dead, n)
		}
	}
	return dead
}

// Advance computes the next generation and installs it in a single swap.
// Every neighbor count is taken against the pre-tick set.
func (w *World) Advance() {
	var (
		remove     = w.pool.Get()
		candidates = w.pool.Get()
		add        = w.pool.Get()
	)
	defer func() {
		w.pool.Put(remove)
		w.pool.Put(candidates)
		w.pool.Put(add)
	}()

	for c := range w.living {
		if !rules.Survives(w.LivingNeighborCount(c)) {
			remove[c] = struct{}{}
		}
		// Only cells touching a living cell can ever be born
		for _, n := range w.DeadNeighbors(c) {
			candidates[n] = struct{}{}
		}
	}

	for c := range candidates {
		if rules.Born(w.LivingNeighborCount(c)) {
			add[c] = struct{}{}
		}
	}

	next := w.pool.Get()
	for c := range w.living {
		if _, gone := remove[c]; !gone {
			next[c] = struct{}{}
		}
	}
	for c := range add {
		next[c] = struct{}{}
	}

	prev := w.living
	w.living = next
	w.pool.Put(prev)
}

// Bounds returns the bounding box of the living cells, or false when the world is empty
func (w *World) Bounds() (Bounds, bool) {
	var (
		b     Bounds
		valid bool
	)
	for c := range w.living {
		if !valid {
			b = Bounds{MinX: c.X, MaxX: c.X, MinY: c.Y, MaxY: c.Y}
			valid = true
			continue
		}
		b.MinX = min(b.MinX, c.X)
		b.MaxX = max(b.MaxX, c.X)
		b.MinY = min(b.MinY, c.Y)
		b.MaxY = max(b.MaxY, c.Y)
	}
	return b, valid
}

// Hash returns an MD5 digest of the living set, independent of map iteration order
func (w *World) Hash() string {
	var (
		h   = md5.New()
		buf [16]byte
	)
	for _, c := range w.LivingCells() {
		binary.LittleEndian.PutUint64(buf[:8], uint64(c.X))
		binary.LittleEndian.PutUint64(buf[8:], uint64(c.Y))
		h.Write(buf[:])
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// String lists the living cells in row-major order, e.g. "World [[0,0], [1,0]]"
func (w *World) String() string {
	cells := w.LivingCells()
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = c.String()
	}
	return "World [" + strings.Join(parts, ", ") + "]"
}
