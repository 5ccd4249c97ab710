// Package draw renders logical-coordinate shapes onto a terminal using
// half-block characters, giving every cell two vertical pixels.
package draw

import (
	"io"
	"math"
	"sort"
	"strconv"
	"unicode/utf8"
)

// Point is a position in logical coordinates.
type Point struct {
	X, Y float64
}

// Half-block glyphs used by Render.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Canvas is a pixel buffer scaled from a fixed logical resolution to the
// current terminal size. Each terminal row holds two pixel rows.
type Canvas struct {
	cols, rows int
	pixels     []bool // [py*cols + px]

	logicalW, logicalH float64
	sx, sy             float64

	scratch []Point
	xs      []float64
	points  []Point
	out     []byte
}

// NewScaledCanvas creates a canvas of cols×rows terminal cells that maps the
// logical area logicalW×logicalH onto it.
func NewScaledCanvas(cols, rows int, logicalW, logicalH float64) *Canvas {
	c := &Canvas{logicalW: logicalW, logicalH: logicalH}
	c.Resize(cols, rows)
	return c
}

// Resize adapts the canvas to a new terminal size, keeping the logical size.
func (c *Canvas) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	if cols != c.cols || rows != c.rows || c.pixels == nil {
		c.cols, c.rows = cols, rows
		c.pixels = make([]bool, cols*rows*2)
	}
	c.sx = float64(cols) / c.logicalW
	c.sy = float64(rows*2) / c.logicalH
}

// Clear unsets every pixel.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

func (c *Canvas) plot(px, py int) {
	if px < 0 || py < 0 || px >= c.cols || py >= c.rows*2 {
		return
	}
	c.pixels[py*c.cols+px] = true
}

func (c *Canvas) toPixel(p Point) (int, int) {
	return int(math.Round(p.X * c.sx)), int(math.Round(p.Y * c.sy))
}

// SetFloat sets the pixel under a logical position.
func (c *Canvas) SetFloat(x, y float64) {
	c.plot(c.toPixel(Point{x, y}))
}

// DrawLine draws a straight line between two logical points.
func (c *Canvas) DrawLine(a, b Point) {
	x0, y0 := c.toPixel(a)
	x1, y1 := c.toPixel(b)

	dx, dy := abs(x1-x0), -abs(y1-y0)
	stepX, stepY := 1, 1
	if x0 > x1 {
		stepX = -1
	}
	if y0 > y1 {
		stepY = -1
	}

	e := dx + dy
	for {
		c.plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += stepX
		}
		if e2 <= dx {
			e += dx
			y0 += stepY
		}
	}
}

// DrawPolygon outlines a closed polygon and optionally fills it.
func (c *Canvas) DrawPolygon(pts []Point, filled bool) {
	if len(pts) < 3 {
		return
	}
	if filled {
		c.fill(pts)
	}
	for i := range pts {
		c.DrawLine(pts[i], pts[(i+1)%len(pts)])
	}
}

// fill paints the polygon interior with an even-odd scanline pass in pixel space.
func (c *Canvas) fill(pts []Point) {
	if cap(c.scratch) < len(pts) {
		c.scratch = make([]Point, len(pts))
	}
	px := c.scratch[:len(pts)]
	top, bottom := math.Inf(1), math.Inf(-1)
	for i, p := range pts {
		px[i] = Point{p.X * c.sx, p.Y * c.sy}
		top = math.Min(top, px[i].Y)
		bottom = math.Max(bottom, px[i].Y)
	}

	for y := int(math.Floor(top)); y <= int(math.Ceil(bottom)); y++ {
		scan := float64(y) + 0.5
		xs := c.xs[:0]
		for i := range px {
			a, b := px[i], px[(i+1)%len(px)]
			if (a.Y <= scan) == (b.Y <= scan) {
				continue
			}
			xs = append(xs, a.X+(scan-a.Y)/(b.Y-a.Y)*(b.X-a.X))
		}
		c.xs = xs
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(math.Ceil(xs[i])); x <= int(math.Floor(xs[i+1])); x++ {
				c.plot(x, y)
			}
		}
	}
}

// DrawRect outlines an axis-aligned rectangle given by its top-left corner and size.
func (c *Canvas) DrawRect(x, y, w, h float64, filled bool) {
	pts := c.BorrowPoints(4)
	pts[0] = Point{x, y}
	pts[1] = Point{x + w, y}
	pts[2] = Point{x + w, y + h}
	pts[3] = Point{x, y + h}
	c.DrawPolygon(pts, filled)
}

// DrawCircle approximates a circle with a regular polygon.
func (c *Canvas) DrawCircle(cx, cy, r float64, filled bool) {
	if r <= 0 {
		c.SetFloat(cx, cy)
		return
	}
	n := 12 + int(r*c.sx)
	pts := c.BorrowPoints(n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = Point{cx + r*math.Cos(a), cy + r*math.Sin(a)}
	}
	c.DrawPolygon(pts, filled)
}

// Render writes the set cells as cursor-addressed half-block glyphs.
// Empty cells are skipped, so the screen must be cleared between frames.
func (c *Canvas) Render(w io.Writer) error {
	buf := c.out[:0]
	for row := 0; row < c.rows; row++ {
		upper := c.pixels[row*2*c.cols:]
		lower := c.pixels[(row*2+1)*c.cols:]
		for col := 0; col < c.cols; col++ {
			var ch rune
			switch {
			case upper[col] && lower[col]:
				ch = BlockFull
			case upper[col]:
				ch = BlockUpperHalf
			case lower[col]:
				ch = BlockLowerHalf
			default:
				continue
			}
			buf = append(buf, "\033["...)
			buf = strconv.AppendInt(buf, int64(row+1), 10)
			buf = append(buf, ';')
			buf = strconv.AppendInt(buf, int64(col+1), 10)
			buf = append(buf, 'H')
			buf = utf8.AppendRune(buf, ch)
		}
	}
	c.out = buf
	_, err := w.Write(buf)
	return err
}

// IsSet reports whether the pixel under a logical position is set.
func (c *Canvas) IsSet(x, y float64) bool {
	px, py := c.toPixel(Point{x, y})
	if px < 0 || py < 0 || px >= c.cols || py >= c.rows*2 {
		return false
	}
	return c.pixels[py*c.cols+px]
}

// TerminalWidth returns the canvas width in terminal columns.
func (c *Canvas) TerminalWidth() int { return c.cols }

// TerminalHeight returns the canvas height in terminal rows.
func (c *Canvas) TerminalHeight() int { return c.rows }

// LogicalToTerminal converts a logical position to a 1-based (col, row) cell,
// for placing text next to drawn shapes.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px, py := c.toPixel(Point{x, y})
	return px + 1, py/2 + 1
}

// BorrowPoints returns a reusable slice of n points, valid until the next call.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.points) < n {
		c.points = make([]Point, n)
	}
	return c.points[:n]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
