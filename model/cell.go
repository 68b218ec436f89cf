package model

import (
	"cmp"
	"fmt"
)

// mooreOffsets are the 8 orthogonal and diagonal steps around a cell
var mooreOffsets = [8]Cell{
	{X: 1, Y: 0},
	{X: -1, Y: 0},
	{X: 0, Y: 1},
	{X: 0, Y: -1},
	{X: 1, Y: 1},
	{X: -1, Y: -1},
	{X: 1, Y: -1},
	{X: -1, Y: 1},
}

// Cell identifies a position on the unbounded grid. Cells compare by value,
// so they can be used directly as map keys.
type Cell struct {
	X, Y int
}

// NewCell creates a cell at (x, y); any integer pair is valid
func NewCell(x, y int) Cell {
	return Cell{X: x, Y: y}
}

// Neighbors returns the Moore neighborhood of c
func (c Cell) Neighbors() [8]Cell {
	var out [8]Cell
	for i, d := range mooreOffsets {
		out[i] = Cell{X: c.X + d.X, Y: c.Y + d.Y}
	}
	return out
}

// Compare orders cells row-major: by Y, then by X
func (c Cell) Compare(other Cell) int {
	if r := cmp.Compare(c.Y, other.Y); r != 0 {
		return r
	}
	return cmp.Compare(c.X, other.X)
}

func (c Cell) String() string {
	return fmt.Sprintf("[%d,%d]", c.X, c.Y)
}
