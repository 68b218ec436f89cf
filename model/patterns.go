package model

import (
	"bufio"
	"bytes"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Pattern is a set of living cells relative to its top-left corner
type Pattern struct {
	Name  string
	Cells []Cell
}

var (
	// Glider travels one cell diagonally every 4 generations
	Glider = Pattern{Name: "glider", Cells: []Cell{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}}
	// Blinker is a period-2 oscillator
	Blinker = Pattern{Name: "blinker", Cells: []Cell{{0, 0}, {1, 0}, {2, 0}}}
	// Block is a still life
	Block = Pattern{Name: "block", Cells: []Cell{{0, 0}, {1, 0}, {0, 1}, {1, 1}}}
	// RPentomino is a methuselah that runs for over a thousand generations
	RPentomino = Pattern{Name: "r-pentomino", Cells: []Cell{{1, 0}, {2, 0}, {0, 1}, {1, 1}, {1, 2}}}
)

var builtinPatterns = map[string]Pattern{
	Glider.Name:     Glider,
	Blinker.Name:    Blinker,
	Block.Name:      Block,
	RPentomino.Name: RPentomino,
}

// BuiltinPattern looks up a built-in pattern by name
func BuiltinPattern(name string) (Pattern, bool) {
	p, ok := builtinPatterns[strings.ToLower(name)]
	return p, ok
}

// BuiltinPatternNames returns the built-in pattern names in sorted order
func BuiltinPatternNames() []string {
	names := make([]string, 0, len(builtinPatterns))
	for name := range builtinPatterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// At returns the pattern's cells translated so its top-left corner sits at (x, y)
func (p Pattern) At(x, y int) []Cell {
	cells := make([]Cell, len(p.Cells))
	for i, c := range p.Cells {
		cells[i] = Cell{X: c.X + x, Y: c.Y + y}
	}
	return cells
}

// ParsePattern reads the plaintext .cells format: lines starting with '!'
// are comments, 'O' or '*' is alive and '.' is dead.
func ParsePattern(name string, data []byte) (Pattern, error) {
	var (
		p       = Pattern{Name: name}
		scanner = bufio.NewScanner(bytes.NewReader(data))
		y       = 0
	)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if strings.HasPrefix(line, "!") {
			continue
		}
		for x, r := range []rune(line) {
			switch r {
			case 'O', '*':
				p.Cells = append(p.Cells, Cell{X: x, Y: y})
			case '.':
			default:
				return Pattern{}, errors.Errorf("[ParsePattern] %s: unexpected %q at row %d col %d", name, r, y+1, x+1)
			}
		}
		y++
	}
	if err := scanner.Err(); err != nil {
		return Pattern{}, errors.Wrapf(err, "[ParsePattern] failed to scan pattern: %s", name)
	}
	return p, nil
}

// LoadPattern reads a .cells file from disk
func LoadPattern(filename string) (Pattern, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Pattern{}, errors.Wrapf(err, "[LoadPattern] failed to read file: %+v", filename)
	}
	return ParsePattern(filename, data)
}
