package hex

import (
	"fmt"
	"math"
	"sort"
)

// Grid is a circular map of cells around the origin with precomputed
// pixel centres.
// Radius counts rings including the centre: radius 1 is a single cell.
type Grid struct {
	radius   int
	cellSize float64
	centers  map[Hexagon]Point
	order    []Hexagon
}

// NewGrid builds every cell whose distance from the origin is below radius.
func NewGrid(radius int, cellSize float64) (*Grid, error) {
	if radius < 0 {
		return nil, fmt.Errorf("%w: grid radius %d", ErrInvalidArgument, radius)
	}
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		return nil, fmt.Errorf("%w: cell size %v", ErrInvalidArgument, cellSize)
	}
	g := &Grid{
		radius:   radius,
		cellSize: cellSize,
		centers:  make(map[Hexagon]Point, 3*radius*radius),
	}
	for r := -radius; r <= radius; r++ {
		qStart := max(-radius, -r-radius)
		qEnd := min(radius, -r+radius)
		for q := qStart; q <= qEnd; q++ {
			h := Axial(q, r)
			if h.DistanceTo(Zero) < radius {
				g.centers[h] = h.ToPixel(cellSize)
				g.order = append(g.order, h)
			}
		}
	}
	return g, nil
}

func (g *Grid) Radius() int       { return g.radius }
func (g *Grid) CellSize() float64 { return g.cellSize }
func (g *Grid) Count() int        { return len(g.order) }

func (g *Grid) Contains(h Hexagon) bool {
	_, ok := g.centers[h]
	return ok
}

// Cells returns every cell, row by row from the top.
func (g *Grid) Cells() []Hexagon {
	out := make([]Hexagon, len(g.order))
	copy(out, g.order)
	return out
}

// Center returns the pixel centre of a cell on the grid.
func (g *Grid) Center(h Hexagon) (Point, bool) {
	p, ok := g.centers[h]
	return p, ok
}

// CellAt returns the grid cell under a pixel position, if any.
func (g *Grid) CellAt(p Point) (Hexagon, bool) {
	h, err := FromPixel(p, g.cellSize)
	if err != nil {
		return Hexagon{}, false
	}
	if !g.Contains(h) {
		return Hexagon{}, false
	}
	return h, true
}

// Within returns the grid cells whose distance from center lies in [minDist, maxDist],
// sorted by distance then by grid order.
func (g *Grid) Within(center Hexagon, minDist, maxDist int) []Hexagon {
	if maxDist < minDist || maxDist < 0 {
		return nil
	}
	var out []Hexagon
	for _, h := range g.order {
		d := center.DistanceTo(h)
		if d >= minDist && d <= maxDist {
			out = append(out, h)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return center.DistanceTo(out[i]) < center.DistanceTo(out[j])
	})
	return out
}
