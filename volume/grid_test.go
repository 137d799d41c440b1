package volume

import (
	"testing"
)

func TestIdxCoordsRoundTrip(t *testing.T) {
	g := NewGrid(3, 4, 5)
	idx := 0
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 5; k++ {
				if got := g.Idx(i, j, k); got != idx {
					t.Fatalf("Idx(%d, %d, %d) = %d instead of %d",
						i, j, k, got, idx)
				}
				bi, bj, bk := g.Coords(idx)
				if bi != i || bj != j || bk != k {
					t.Fatalf("Coords(%d) = (%d, %d, %d) instead of (%d, %d, %d)",
						idx, bi, bj, bk, i, j, k)
				}
				idx++
			}
		}
	}
}

func TestMaxIdx(t *testing.T) {
	g := NewGrid(2, 2, 2)
	g.Vals = []float64{0, 3, 1, 3, 2, -1, 0, 1}
	// Ties break toward the lowest flattened index.
	if idx := g.MaxIdx(); idx != 1 {
		t.Errorf("MaxIdx() = %d instead of 1", idx)
	}
	if max := g.Max(); max != 3 {
		t.Errorf("Max() = %g instead of 3", max)
	}

	zero := NewGrid(2, 2, 2)
	if idx := zero.MaxIdx(); idx != 0 {
		t.Errorf("MaxIdx() of a zero grid = %d instead of 0", idx)
	}
}

func TestPMod(t *testing.T) {
	table := []struct{ x, y, out int }{
		{0, 5, 0}, {3, 5, 3}, {5, 5, 0}, {7, 5, 2}, {-1, 5, 4}, {-5, 5, 0},
	}
	for i, test := range table {
		if got := pMod(test.x, test.y); got != test.out {
			t.Errorf("%d) pMod(%d, %d) = %d instead of %d",
				i+1, test.x, test.y, got, test.out)
		}
	}
}
