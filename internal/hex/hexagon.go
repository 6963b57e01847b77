// Package hex provides cube-coordinate hexagon geometry for the tile map.
// Coordinates follow the cube scheme where q + r + s == 0.
package hex

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidArgument reports a malformed direction or out-of-domain geometry input.
var ErrInvalidArgument = errors.New("hex: invalid argument")

// Hexagon is a cell position in cube coordinates. S is always -Q-R.
type Hexagon struct {
	Q int `yaml:"q" json:"q"`
	R int `yaml:"r" json:"r"`
	S int `yaml:"s" json:"s"`
}

// Zero is the origin cell.
var Zero = Hexagon{}

// Axial builds a hexagon from two axes and derives the third.
func Axial(q, r int) Hexagon {
	return Hexagon{Q: q, R: r, S: -q - r}
}

// Cube builds a hexagon from all three axes. The axes must sum to zero.
func Cube(q, r, s int) (Hexagon, error) {
	if q+r+s != 0 {
		return Hexagon{}, fmt.Errorf("%w: cube (%d, %d, %d) does not sum to zero", ErrInvalidArgument, q, r, s)
	}
	return Hexagon{Q: q, R: r, S: s}, nil
}

// WithQ returns h with Q replaced and S recomputed.
func (h Hexagon) WithQ(q int) Hexagon { return Axial(q, h.R) }

// WithR returns h with R replaced and S recomputed.
func (h Hexagon) WithR(r int) Hexagon { return Axial(h.Q, r) }

// Valid reports whether the cube invariant holds.
func (h Hexagon) Valid() bool { return h.Q+h.R+h.S == 0 }

func (h Hexagon) Add(o Hexagon) Hexagon {
	return Hexagon{Q: h.Q + o.Q, R: h.R + o.R, S: h.S + o.S}
}

func (h Hexagon) MoveQ(length int) Hexagon { return Hexagon{Q: h.Q + length, R: h.R, S: h.S - length} }
func (h Hexagon) MoveR(length int) Hexagon { return Hexagon{Q: h.Q, R: h.R + length, S: h.S - length} }
func (h Hexagon) MoveS(length int) Hexagon { return Hexagon{Q: h.Q - length, R: h.R, S: h.S + length} }

// DistanceTo returns the number of steps between two cells.
func (h Hexagon) DistanceTo(o Hexagon) int {
	return (abs(h.Q-o.Q) + abs(h.R-o.R) + abs(h.S-o.S)) / 2
}

func (h Hexagon) IsNeighbor(o Hexagon) bool {
	return h.DistanceTo(o) == 1
}

// Neighbor returns the adjacent cell in direction d.
func (h Hexagon) Neighbor(d Direction) (Hexagon, error) {
	if !d.Valid() {
		return Hexagon{}, fmt.Errorf("%w: direction %d", ErrInvalidArgument, int(d))
	}
	return h.Add(directionOffsets[d]), nil
}

// Neighbors returns all six adjacent cells in Direction order.
func (h Hexagon) Neighbors() [6]Hexagon {
	var out [6]Hexagon
	for i, off := range directionOffsets {
		out[i] = h.Add(off)
	}
	return out
}

func (h Hexagon) String() string {
	return fmt.Sprintf("(%d, %d, %d)", h.Q, h.R, h.S)
}

// maxCoord bounds fractional cube coordinates; beyond it a float64 has no
// fractional bits left and the int conversion in CubeRound loses the sum.
const maxCoord = 1 << 52

// FromPixel returns the cell containing a pixel-space position.
func FromPixel(p Point, cellSize float64) (Hexagon, error) {
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		return Hexagon{}, fmt.Errorf("%w: cell size %v", ErrInvalidArgument, cellSize)
	}
	if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
		return Hexagon{}, fmt.Errorf("%w: position %v", ErrInvalidArgument, p)
	}
	q := (math.Sqrt(3)/3*p.X - 1.0/3*p.Y) / cellSize
	r := (2.0 / 3 * p.Y) / cellSize
	if math.Abs(q) > maxCoord || math.Abs(r) > maxCoord || math.Abs(q+r) > maxCoord {
		return Hexagon{}, fmt.Errorf("%w: position %v out of range", ErrInvalidArgument, p)
	}
	return CubeRound(q, r, -q-r), nil
}

// ToPixel returns the pixel-space centre of the cell.
func (h Hexagon) ToPixel(cellSize float64) Point {
	return Point{
		X: cellSize * (math.Sqrt(3)*float64(h.Q) + math.Sqrt(3)/2*float64(h.R)),
		Y: cellSize * (3.0 / 2 * float64(h.R)),
	}
}

// CubeRound rounds fractional cube coordinates to the nearest cell.
// The axis with the largest rounding error is recomputed from the other two;
// x is checked first, then y against z, so ties fall through to z.
func CubeRound(x, y, z float64) Hexagon {
	rx := math.RoundToEven(x)
	ry := math.RoundToEven(y)
	rz := math.RoundToEven(z)

	dx := math.Abs(rx - x)
	dy := math.Abs(ry - y)
	dz := math.Abs(rz - z)

	if dx > dy && dx > dz {
		rx = -ry - rz
	} else if dy > dz {
		ry = -rx - rz
	} else {
		rz = -rx - ry
	}
	return Hexagon{Q: int(rx), R: int(ry), S: int(rz)}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
