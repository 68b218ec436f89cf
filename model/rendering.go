package model

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	DefaultAliveGlyph = '@'
	DefaultDeadGlyph  = '-'

	ansiReset   = "\033c"
	ansiRed     = "\033[31m"
	ansiDefault = "\033[0m"
)

// TerminalRenderer draws a fixed window of the unbounded grid as text
type TerminalRenderer struct {
	OriginX, OriginY int
	Width, Height    int
	AliveGlyph       rune
	DeadGlyph        rune
	ShowRuler        bool
	Color            bool
}

// NewTerminalRenderer returns a renderer for a width x height window at the origin
func NewTerminalRenderer(width, height int) *TerminalRenderer {
	return &TerminalRenderer{
		Width:      width,
		Height:     height,
		AliveGlyph: DefaultAliveGlyph,
		DeadGlyph:  DefaultDeadGlyph,
		ShowRuler:  true,
	}
}

// Header writes the frame title
func (r *TerminalRenderer) Header(w io.Writer) {
	if r.Color {
		fmt.Fprintf(w, "%sState:%s\n", ansiRed, ansiDefault)
		return
	}
	fmt.Fprintln(w, "State:")
}

// Display renders the window of the world to w
func (r *TerminalRenderer) Display(w io.Writer, world *World) {
	var sb strings.Builder
	if r.ShowRuler {
		for x := range r.Width {
			sb.WriteString("  ")
			sb.WriteString(rulerDigit(r.OriginX + x))
		}
		sb.WriteByte('\n')
	}
	for y := range r.Height {
		if r.ShowRuler {
			sb.WriteString(rulerDigit(r.OriginY + y))
		}
		for x := range r.Width {
			glyph := r.DeadGlyph
			if world.IsAlive(Cell{X: r.OriginX + x, Y: r.OriginY + y}) {
				glyph = r.AliveGlyph
			}
			sb.WriteByte(' ')
			sb.WriteRune(glyph)
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	io.WriteString(w, sb.String())
}

// Clear resets the terminal
func (r *TerminalRenderer) Clear(w io.Writer) {
	io.WriteString(w, ansiReset)
}

// rulerDigit labels a coordinate with its last base-36 digit
func rulerDigit(v int) string {
	d := v % 36
	if d < 0 {
		d += 36
	}
	return strconv.FormatInt(int64(d), 36)
}
