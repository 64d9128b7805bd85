package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/bouncesim/internal/dynamo"
	"github.com/san-kum/bouncesim/internal/render"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]uint8{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBase = 0x2800

// BrailleBit is the pattern bit for sub-pixel (dx, dy) of a cell.
func BrailleBit(dx, dy int) uint8 { return pixelMap[dy][dx] }

// Canvas is a Braille sub-pixel canvas. It doubles as a dynamo.Renderer:
// world coordinates are scaled into sub-pixels and each cell keeps the
// colour of the last disk that touched it.
type Canvas struct {
	Width, Height int
	Grid          [][]uint8
	Colors        [][]dynamo.RGB

	// sub-pixels per world unit
	ScaleX, ScaleY float64
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]uint8, h),
		Colors: make([][]dynamo.RGB, h),
		ScaleX: 1,
		ScaleY: 1,
	}
	for i := range c.Grid {
		c.Grid[i] = make([]uint8, w)
		c.Colors[i] = make([]dynamo.RGB, w)
	}
	return c
}

// Fit scales the world rectangle onto the full canvas.
func (c *Canvas) Fit(w dynamo.World) {
	c.ScaleX = float64(c.Width*2) / w.Width
	c.ScaleY = float64(c.Height*4) / w.Height
}

// Set sets a pixel at (x, y) where x,y are in "sub-pixel" coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= pixelMap[y%4][x%2]
}

// Unset clears a pixel
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] &^= pixelMap[y%4][x%2]
}

// Lit reports whether sub-pixel (x, y) is set.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&pixelMap[y%4][x%2] != 0
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0
			c.Colors[i][j] = dynamo.RGB{}
		}
	}
}

// DrawDisk rasterises a world-space disk. The radius is scaled by the
// smaller axis scale and never drops below one sub-pixel.
func (c *Canvas) DrawDisk(center dynamo.Vec2, radius int, color dynamo.RGB) {
	s := math.Min(c.ScaleX, c.ScaleY)
	r := max(1, int(math.Round(float64(radius)*s)))
	sub := dynamo.Vec2{X: center.X * c.ScaleX, Y: center.Y * c.ScaleY}

	render.Disk(sub, r, func(x, y int) {
		if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
			return
		}
		c.Set(x, y)
		c.Colors[y/4][x/2] = color
	})
}

// Present is a no-op; the bubbletea view reads the grid directly.
func (c *Canvas) Present() error { return nil }

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
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

// DrawBorder outlines the canvas edge.
func (c *Canvas) DrawBorder() {
	cw, ch := c.Width*2, c.Height*4
	c.DrawLine(0, 0, cw-1, 0)
	c.DrawLine(0, ch-1, cw-1, ch-1)
	c.DrawLine(0, 0, 0, ch-1)
	c.DrawLine(cw-1, 0, cw-1, ch-1)
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		for _, p := range row {
			b.WriteRune(rune(brailleBase + int(p)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Colored renders the canvas with each cell in its body colour. Lit cells no
// disk touched, such as the border, use the theme's wall colour.
func (c *Canvas) Colored() string {
	walls := lipgloss.NewStyle().Foreground(CurrentTheme.Walls)
	var b strings.Builder
	for i, row := range c.Grid {
		for j, p := range row {
			ch := string(rune(brailleBase + int(p)))
			if p == 0 {
				b.WriteString(ch)
				continue
			}
			col := c.Colors[i][j]
			if col == (dynamo.RGB{}) {
				b.WriteString(walls.Render(ch))
				continue
			}
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(col.Hex())).Render(ch))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
