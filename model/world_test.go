package model

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cells(pairs ...[2]int) []Cell {
	out := make([]Cell, len(pairs))
	for i, p := range pairs {
		out[i] = NewCell(p[0], p[1])
	}
	return out
}

func sorted(cs []Cell) []Cell {
	return NewWorld(cs...).LivingCells()
}

func TestWorld_EmptyStaysEmpty(t *testing.T) {
	w := NewWorld()
	for range 3 {
		w.Advance()
		assert.Zero(t, w.Population())
	}
}

func TestWorld_BlockIsStill(t *testing.T) {
	block := cells([2]int{1, 1}, [2]int{1, 2}, [2]int{2, 1}, [2]int{2, 2})
	w := NewWorld(block...)
	for range 10 {
		w.Advance()
		assert.Equal(t, sorted(block), w.LivingCells())
	}
}

func TestWorld_BlinkerOscillates(t *testing.T) {
	vertical := cells([2]int{1, 0}, [2]int{1, 1}, [2]int{1, 2})
	horizontal := cells([2]int{0, 1}, [2]int{1, 1}, [2]int{2, 1})

	w := NewWorld(vertical...)
	w.Advance()
	assert.Equal(t, sorted(horizontal), w.LivingCells())
	w.Advance()
	assert.Equal(t, sorted(vertical), w.LivingCells())
}

func TestWorld_IsolationKills(t *testing.T) {
	w := NewWorld(NewCell(5, 5))
	w.Advance()
	assert.Zero(t, w.Population())
	assert.False(t, w.IsAlive(NewCell(5, 5)))
}

func TestWorld_OvercrowdingKills(t *testing.T) {
	cross := cells([2]int{0, 0}, [2]int{1, 0}, [2]int{-1, 0}, [2]int{0, 1}, [2]int{0, -1})
	w := NewWorld(cross...)
	require.Equal(t, 4, w.LivingNeighborCount(NewCell(0, 0)))

	w.Advance()
	assert.False(t, w.IsAlive(NewCell(0, 0)), "center with 4 neighbors must die")
	// each arm keeps 3 neighbors and each diagonal is born, leaving a ring
	assert.Equal(t, sorted(cells(
		[2]int{-1, -1}, [2]int{0, -1}, [2]int{1, -1},
		[2]int{-1, 0}, [2]int{1, 0},
		[2]int{-1, 1}, [2]int{0, 1}, [2]int{1, 1},
	)), w.LivingCells())
}

func TestWorld_Birth(t *testing.T) {
	w := NewWorld(cells([2]int{0, 0}, [2]int{1, 0}, [2]int{0, 1})...)
	require.Equal(t, 3, w.LivingNeighborCount(NewCell(1, 1)))

	w.Advance()
	assert.True(t, w.IsAlive(NewCell(1, 1)))
	assert.Equal(t, sorted(cells([2]int{0, 0}, [2]int{1, 0}, [2]int{0, 1}, [2]int{1, 1})), w.LivingCells())
}

func TestWorld_GliderTranslates(t *testing.T) {
	w := NewWorld(Glider.At(0, 0)...)
	for range 4 {
		w.Advance()
	}
	assert.Equal(t, sorted(Glider.At(1, 1)), w.LivingCells())
}

func TestWorld_NegativeCoordinates(t *testing.T) {
	w := NewWorld(Blinker.At(-10, -10)...)
	w.Advance()
	assert.Equal(t, sorted(cells([2]int{-9, -11}, [2]int{-9, -10}, [2]int{-9, -9})), w.LivingCells())
}

func TestWorld_QueriesDoNotMutate(t *testing.T) {
	w := NewWorld(cells([2]int{0, 0}, [2]int{1, 0}, [2]int{0, 1})...)
	before := w.LivingCells()
	probe := NewCell(1, 1)
	for range 5 {
		assert.False(t, w.IsAlive(probe))
		assert.Equal(t, 3, w.LivingNeighborCount(probe))
		assert.Len(t, w.DeadNeighbors(NewCell(0, 0)), 6)
	}
	assert.Equal(t, before, w.LivingCells())
}

func TestWorld_LivingCellsIsSnapshot(t *testing.T) {
	w := NewWorld(NewCell(0, 0))
	snapshot := w.LivingCells()
	snapshot[0] = NewCell(9, 9)
	assert.True(t, w.IsAlive(NewCell(0, 0)))
	assert.False(t, w.IsAlive(NewCell(9, 9)))
}

func TestWorld_DeadNeighbors(t *testing.T) {
	w := NewWorld(NewCell(0, 0), NewCell(1, 0))
	dead := w.DeadNeighbors(NewCell(0, 0))
	assert.Len(t, dead, 7)
	assert.NotContains(t, dead, NewCell(1, 0))
	assert.Len(t, NewWorld().DeadNeighbors(NewCell(0, 0)), 8)
}

func TestWorld_DuplicatesCollapse(t *testing.T) {
	w := NewWorld(NewCell(1, 1), NewCell(1, 1), NewCell(2, 2))
	assert.Equal(t, 2, w.Population())
}

func TestWorld_SeedRandom(t *testing.T) {
	tests := []struct {
		name               string
		count, lo, hi, max int
	}{
		{"zero count", 0, 0, 10, 0},
		{"negative count", -5, 0, 10, 0},
		{"empty range", 10, 5, 5, 0},
		{"single coordinate", 50, 3, 4, 1},
		{"classic 10x10", 100, 0, 10, 100},
		{"negative bounds", 40, -20, -10, 40},
		{"range wider than MaxInt", 50, math.MinInt/2 - 10, math.MaxInt/2 + 10, 50},
		{"full int range", 50, math.MinInt, math.MaxInt, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewRandomWorld(rand.New(rand.NewPCG(42, 0)), tt.count, tt.lo, tt.hi)
			assert.LessOrEqual(t, w.Population(), tt.max)
			for _, c := range w.LivingCells() {
				assert.GreaterOrEqual(t, c.X, tt.lo)
				assert.Less(t, c.X, tt.hi)
				assert.GreaterOrEqual(t, c.Y, tt.lo)
				assert.Less(t, c.Y, tt.hi)
			}
		})
	}
}

func TestWorld_SeedRandomDeterministic(t *testing.T) {
	a := NewRandomWorld(rand.New(rand.NewPCG(7, 0)), 30, 0, 20)
	b := NewRandomWorld(rand.New(rand.NewPCG(7, 0)), 30, 0, 20)
	assert.Equal(t, a.LivingCells(), b.LivingCells())
	assert.Positive(t, a.Population())

	// nil rng falls back to the global source
	c := NewRandomWorld(nil, 30, 0, 20)
	assert.Positive(t, c.Population())
}

func TestWorld_Bounds(t *testing.T) {
	_, ok := NewWorld().Bounds()
	assert.False(t, ok)

	b, ok := NewWorld(NewCell(-2, 5), NewCell(3, -1), NewCell(0, 0)).Bounds()
	require.True(t, ok)
	assert.Equal(t, Bounds{MinX: -2, MaxX: 3, MinY: -1, MaxY: 5}, b)
	assert.Equal(t, 42, b.Area())
}

func TestWorld_Hash(t *testing.T) {
	a := NewWorld(NewCell(1, 2), NewCell(3, 4))
	b := NewWorld(NewCell(3, 4), NewCell(1, 2))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.NotEqual(t, a.Hash(), NewWorld(NewCell(1, 2)).Hash())

	block := NewWorld(Block.At(0, 0)...)
	h := block.Hash()
	block.Advance()
	assert.Equal(t, h, block.Hash())
}

func TestWorld_PoolDoesNotChangeResults(t *testing.T) {
	seed := NewRandomWorld(rand.New(rand.NewPCG(99, 0)), 200, 0, 20).LivingCells()
	plain := NewWorld(seed...)
	pooled := NewWorld(seed...).UsePool(NewSetPool())
	for gen := range 50 {
		plain.Advance()
		pooled.Advance()
		require.Equal(t, plain.LivingCells(), pooled.LivingCells(), "generation %d", gen+1)
	}
}

func TestWorld_ZeroValue(t *testing.T) {
	var w World
	assert.Zero(t, w.Population())
	w.Advance()
	assert.Zero(t, w.Population())

	w.Add(Blinker.At(0, 0)...)
	w.Advance()
	assert.Equal(t, sorted(cells([2]int{1, -1}, [2]int{1, 0}, [2]int{1, 1})), w.LivingCells())

	var seeded World
	seeded.SeedRandom(rand.New(rand.NewPCG(3, 0)), 10, 0, 4)
	assert.Positive(t, seeded.Population())
}

func TestWorld_String(t *testing.T) {
	assert.Equal(t, "World []", NewWorld().String())
	assert.Equal(t, "World [[1,-1], [0,2], [3,2]]", NewWorld(NewCell(3, 2), NewCell(0, 2), NewCell(1, -1)).String())
}
