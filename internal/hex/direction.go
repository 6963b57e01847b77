package hex

import "fmt"

// Direction names one of the six edges of a cell.
type Direction int

const (
	East Direction = iota
	NorthEast
	NorthWest
	West
	SouthWest
	SouthEast
)

// Directions lists every valid direction in offset order.
var Directions = [6]Direction{East, NorthEast, NorthWest, West, SouthWest, SouthEast}

var directionOffsets = [6]Hexagon{
	East:      {Q: 1, R: 0, S: -1},
	NorthEast: {Q: 1, R: -1, S: 0},
	NorthWest: {Q: 0, R: -1, S: 1},
	West:      {Q: -1, R: 0, S: 1},
	SouthWest: {Q: -1, R: 1, S: 0},
	SouthEast: {Q: 0, R: 1, S: -1},
}

var directionNames = [6]string{"east", "north_east", "north_west", "west", "south_west", "south_east"}

func (d Direction) Valid() bool { return d >= East && d <= SouthEast }

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection maps a snake_case direction name to its value.
func ParseDirection(name string) (Direction, error) {
	for i, n := range directionNames {
		if n == name {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("%w: direction %q", ErrInvalidArgument, name)
}
