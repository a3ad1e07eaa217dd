package core

// Grid stores a 2D field of cell values in row-major order.
type Grid[T any] struct {
	W, H int
	data []T
}

// NewGrid allocates a grid with the given dimensions.
func NewGrid[T any](w, h int) *Grid[T] {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid[T]{W: w, H: h, data: make([]T, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid[T]) Cells() []T { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid[T]) Index(x, y int) int { return y*g.W + x }

// Coords converts a linear index back into coordinates.
func (g *Grid[T]) Coords(idx int) (int, int) { return idx % g.W, idx / g.W }

// InBounds reports whether (x, y) lies on the grid.
func (g *Grid[T]) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.W && y < g.H
}

// At returns the value at (x, y).
func (g *Grid[T]) At(x, y int) T { return g.data[g.Index(x, y)] }

// Set stores v at (x, y).
func (g *Grid[T]) Set(x, y int, v T) { g.data[g.Index(x, y)] = v }

// Fill sets every cell to v.
func (g *Grid[T]) Fill(v T) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Pair is an unordered adjacency between two cell indices, A < B.
type Pair struct {
	A, B int
}

// Pairs4 lists every 4-neighbour adjacency exactly once in row-major order,
// skipping cells for which open returns false.
func (g *Grid[T]) Pairs4(open func(idx int) bool) []Pair {
	pairs := make([]Pair, 0, 2*len(g.data))
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			idx := g.Index(x, y)
			if !open(idx) {
				continue
			}
			if x+1 < g.W && open(idx+1) {
				pairs = append(pairs, Pair{A: idx, B: idx + 1})
			}
			if y+1 < g.H && open(idx+g.W) {
				pairs = append(pairs, Pair{A: idx, B: idx + g.W})
			}
		}
	}
	return pairs
}
