/*package volume operates on dense 3D reciprocal-space grids: scan
sampling-volume maps, Fourier power maps, and CLEAN-style peak extraction.
*/
package volume

// Grid is a dense 3D grid of float64 values backed by a 1D slice. Values are
// stored row major with the k axis fastest, so the flattened index of
// (i, j, k) is (i*N[1] + j)*N[2] + k. Every loop in this package walks the
// grid in that order.
type Grid struct {
	N    [3]int
	Vals []float64
}

// NewGrid returns a zeroed n0 x n1 x n2 grid.
func NewGrid(n0, n1, n2 int) *Grid {
	return &Grid{N: [3]int{n0, n1, n2}, Vals: make([]float64, n0*n1*n2)}
}

// Idx returns the flattened index of the coordinates (i, j, k).
func (g *Grid) Idx(i, j, k int) int {
	return (i*g.N[1]+j)*g.N[2] + k
}

// Coords returns the i, j, k coordinates of a point from its flattened
// index.
func (g *Grid) Coords(idx int) (i, j, k int) {
	k = idx % g.N[2]
	j = (idx / g.N[2]) % g.N[1]
	i = idx / (g.N[1] * g.N[2])
	return i, j, k
}

// MaxIdx returns the flattened index of the largest value in the grid. Ties
// are broken in favor of the lowest index.
func (g *Grid) MaxIdx() int {
	maxIdx := 0
	for i, v := range g.Vals {
		if v > g.Vals[maxIdx] {
			maxIdx = i
		}
	}
	return maxIdx
}

// Max returns the largest value in the grid.
func (g *Grid) Max() float64 {
	return g.Vals[g.MaxIdx()]
}

// pMod computes the positive modulo x % y.
func pMod(x, y int) int {
	m := x % y
	if m < 0 {
		m += y
	}
	return m
}
