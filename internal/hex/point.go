package hex

import (
	"fmt"
	"math"
)

// Point is a pixel-space position.
type Point struct {
	X float64
	Y float64
}

func (p Point) Add(o Point) Point { return Point{X: p.X + o.X, Y: p.Y + o.Y} }
func (p Point) Sub(o Point) Point { return Point{X: p.X - o.X, Y: p.Y - o.Y} }

// Dist returns the Euclidean distance between two points.
func (p Point) Dist(o Point) float64 {
	d := p.Sub(o)
	return math.Hypot(d.X, d.Y)
}

func (p Point) String() string {
	return fmt.Sprintf("(%.3f, %.3f)", p.X, p.Y)
}

// Width is the horizontal extent of a cell: √3·cellSize.
func Width(cellSize float64) float64 { return math.Sqrt(3) * cellSize }

// Height is the vertical extent of a cell: 2·cellSize.
func Height(cellSize float64) float64 { return 2 * cellSize }

// Corners returns the outline of a cell centred on the origin as a closed
// loop: six corners starting at the upper-left edge, then the first again.
func Corners(cellSize float64) []Point {
	halfW := Width(cellSize) / 2
	halfH := Height(cellSize) / 2
	quarterH := Height(cellSize) / 4
	return []Point{
		{X: -halfW, Y: -quarterH},
		{X: 0, Y: -halfH},
		{X: halfW, Y: -quarterH},
		{X: halfW, Y: quarterH},
		{X: 0, Y: halfH},
		{X: -halfW, Y: quarterH},
		{X: -halfW, Y: -quarterH},
	}
}
