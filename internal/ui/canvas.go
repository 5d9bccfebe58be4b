package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// canvas is a fixed-size grid of lines that rendered blocks are spliced
// onto, later blocks covering earlier ones.
type canvas struct {
	width int
	lines []string
}

func newCanvas(width, height int) *canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	blank := strings.Repeat(" ", width)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = blank
	}
	return &canvas{width: width, lines: lines}
}

// place draws block with its top-left corner at x, y, clipping whatever
// falls outside the canvas.
func (c *canvas) place(x, y int, block string) {
	if x < 0 || x >= c.width {
		return
	}
	for i, line := range strings.Split(block, "\n") {
		row := y + i
		if row < 0 {
			continue
		}
		if row >= len(c.lines) {
			return
		}
		w := ansi.StringWidth(line)
		if x+w > c.width {
			line = ansi.Truncate(line, c.width-x, "")
			w = ansi.StringWidth(line)
		}
		bg := c.lines[row]
		left := ansi.Cut(bg, 0, x)
		right := ansi.Cut(bg, x+w, c.width)
		c.lines[row] = left + line + right
	}
}

func (c *canvas) String() string {
	return strings.Join(c.lines, "\n")
}
