package viz

import (
	"math"
	"strings"
)

// Braille cells hold 2x4 dots:
// 1 4
// 2 5
// 3 6
// 7 8
const brailleBlank = 0x2800

var dotBits = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille pixel grid of Cols x Rows terminal cells, that is
// (Cols*2) x (Rows*4) dots.
type Canvas struct {
	Cols, Rows int
	cells      []rune
}

func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{Cols: cols, Rows: rows, cells: make([]rune, cols*rows)}
	c.Clear()
	return c
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = brailleBlank
	}
}

// Set turns on the dot at (x, y). Out of range dots are dropped.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Cols || row >= c.Rows {
		return
	}
	c.cells[row*c.Cols+col] |= dotBits[y%4][x%2]
}

// Dot reports whether the dot at (x, y) is on.
func (c *Canvas) Dot(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Cols || y/4 >= c.Rows {
		return false
	}
	return c.cells[(y/4)*c.Cols+x/2]&dotBits[y%4][x%2] != 0
}

// Line draws a straight line with Bresenham's algorithm.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Plot draws polylines given in a 100x100 viewbox, stretched over the whole
// canvas.
func (c *Canvas) Plot(lines [][]Point) {
	sx := float64(c.Cols*2-1) / 100
	sy := float64(c.Rows*4-1) / 100
	for _, pl := range lines {
		for i := 1; i < len(pl); i++ {
			a, b := pl[i-1], pl[i]
			c.Line(
				int(math.Round(a.X*sx)), int(math.Round(a.Y*sy)),
				int(math.Round(b.X*sx)), int(math.Round(b.Y*sy)),
			)
		}
	}
}

// Lines returns one string per cell row.
func (c *Canvas) Lines() []string {
	out := make([]string, c.Rows)
	for r := 0; r < c.Rows; r++ {
		out[r] = string(c.cells[r*c.Cols : (r+1)*c.Cols])
	}
	return out
}

func (c *Canvas) String() string {
	return strings.Join(c.Lines(), "\n")
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
