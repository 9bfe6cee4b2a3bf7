package geom

// Lattice provides an interface for reasoning over a 1D slice as if it were
// a 2D grid of nodes. Index 0 is the node at (0, 0) and i varies fastest.
type Lattice struct {
	Width [2]int
	Area  int
}

// NewLattice returns a Lattice with the given number of nodes along each
// side.
func NewLattice(nx, ny int) *Lattice {
	if nx <= 0 || ny <= 0 {
		panic("Lattice widths must be positive.")
	}
	return &Lattice{Width: [2]int{nx, ny}, Area: nx * ny}
}

// Idx returns the slice index of node (i, j).
func (l *Lattice) Idx(i, j int) int {
	return i + j*l.Width[0]
}

// IdxCheck returns an index and true if the given node is inside the
// Lattice and false otherwise.
func (l *Lattice) IdxCheck(i, j int) (idx int, ok bool) {
	if !l.BoundsCheck(i, j) {
		return -1, false
	}
	return l.Idx(i, j), true
}

// BoundsCheck returns true if (i, j) is inside the Lattice.
func (l *Lattice) BoundsCheck(i, j int) bool {
	return i >= 0 && j >= 0 && i < l.Width[0] && j < l.Width[1]
}

// Coords returns the node of a slice index.
func (l *Lattice) Coords(idx int) (i, j int) {
	return idx % l.Width[0], idx / l.Width[0]
}

// UV returns the (u, v) in [0, 1]^2 of node (i, j), with the first and last
// nodes of each row and column sitting on the edges.
func (l *Lattice) UV(i, j int) (u, v float64) {
	return frac(i, l.Width[0]), frac(j, l.Width[1])
}

func frac(i, n int) float64 {
	if n == 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}
