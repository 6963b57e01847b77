package hex

// Index tracks which keys occupy which cells.
// Accessed only from the tick loop goroutine, so it holds no locks.
type Index[K comparable] struct {
	cells map[Hexagon]map[K]struct{}
	count int
}

func NewIndex[K comparable]() *Index[K] {
	return &Index[K]{
		cells: make(map[Hexagon]map[K]struct{}),
	}
}

// Add places a key on a cell.
func (x *Index[K]) Add(key K, h Hexagon) {
	cell := x.cells[h]
	if cell == nil {
		cell = make(map[K]struct{})
		x.cells[h] = cell
	}
	if _, ok := cell[key]; !ok {
		cell[key] = struct{}{}
		x.count++
	}
}

// Remove takes a key off a cell.
func (x *Index[K]) Remove(key K, h Hexagon) {
	cell := x.cells[h]
	if cell == nil {
		return
	}
	if _, ok := cell[key]; ok {
		delete(cell, key)
		x.count--
	}
	if len(cell) == 0 {
		delete(x.cells, h)
	}
}

// Move updates a key's cell when its position changes.
func (x *Index[K]) Move(key K, from, to Hexagon) {
	if from == to {
		return
	}
	x.Remove(key, from)
	x.Add(key, to)
}

// At returns the keys on a single cell.
func (x *Index[K]) At(h Hexagon) []K {
	cell := x.cells[h]
	out := make([]K, 0, len(cell))
	for k := range cell {
		out = append(out, k)
	}
	return out
}

// Occupied reports whether any key sits on the cell.
func (x *Index[K]) Occupied(h Hexagon) bool {
	return len(x.cells[h]) > 0
}

// Within returns every key at distance <= radius from center.
// Caller sorts if it needs a stable order.
func (x *Index[K]) Within(center Hexagon, radius int) []K {
	if radius < 0 {
		return nil
	}
	var out []K
	for q := -radius; q <= radius; q++ {
		for r := max(-radius, -q-radius); r <= min(radius, -q+radius); r++ {
			for k := range x.cells[center.Add(Axial(q, r))] {
				out = append(out, k)
			}
		}
	}
	return out
}

// Len returns the number of (key, cell) placements.
func (x *Index[K]) Len() int { return x.count }

func (x *Index[K]) Clear() {
	clear(x.cells)
	x.count = 0
}
