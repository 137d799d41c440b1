package volume

import (
	"math"
	"testing"
)

// wrappedGaussianBeam builds a unit-height point-spread function whose peak
// sits at (0, 0, 0) and whose footprint wraps around the grid edges.
func wrappedGaussianBeam(size int, sigma float64) *Grid {
	g := NewGrid(size, size, size)
	wrap := func(i int) float64 {
		d := float64(i)
		if d > float64(size)/2 {
			d = float64(size) - d
		}
		return d
	}
	for idx := range g.Vals {
		i, j, k := g.Coords(idx)
		di, dj, dk := wrap(i), wrap(j), wrap(k)
		g.Vals[idx] = math.Exp(-(di*di + dj*dj + dk*dk) / (2 * sigma * sigma))
	}
	return g
}

// addSource adds amp times the beam re-centered at p to the map, with
// wraparound.
func addSource(m, beam *Grid, p [3]int, amp float64) {
	n0, n1, n2 := m.N[0], m.N[1], m.N[2]
	for idx := range m.Vals {
		i, j, k := m.Coords(idx)
		bIdx := beam.Idx(pMod(i-p[0], n0), pMod(j-p[1], n1), pMod(k-p[2], n2))
		m.Vals[idx] += amp * beam.Vals[bIdx]
	}
}

func TestClean3DPeakCountAndOrdering(t *testing.T) {
	beam := wrappedGaussianBeam(16, 1)
	dirtyMap := NewGrid(16, 16, 16)

	// Three well-separated sources with decreasing amplitude.
	sources := [][3]int{{3, 4, 5}, {10, 11, 12}, {7, 2, 13}}
	amps := []float64{10, 6, 3}
	for i := range sources {
		addSource(dirtyMap, beam, sources[i], amps[i])
	}

	peaks := Clean3D(beam, dirtyMap, 3, 1)
	if len(peaks) != 3 {
		t.Fatalf("got %d peaks instead of 3", len(peaks))
	}
	for i := range sources {
		if peaks[i] != sources[i] {
			t.Errorf("peak %d = %v instead of %v", i, peaks[i], sources[i])
		}
	}

	// Each located peak's footprint was removed, so the residual there is
	// tiny compared to the original amplitudes.
	for i, p := range peaks {
		res := dirtyMap.Vals[dirtyMap.Idx(p[0], p[1], p[2])]
		if math.Abs(res) > 1e-3 {
			t.Errorf("residual %g left at peak %d %v", res, i, p)
		}
	}
}

func TestClean3DWraparound(t *testing.T) {
	beam := wrappedGaussianBeam(8, 1)
	dirtyMap := NewGrid(8, 8, 8)

	// A source at the grid corner: its footprint extends past every
	// boundary and must be subtracted via periodic wraparound.
	addSource(dirtyMap, beam, [3]int{0, 0, 0}, 5)

	peaks := Clean3D(beam, dirtyMap, 1, 1)
	if peaks[0] != [3]int{0, 0, 0} {
		t.Fatalf("peak = %v instead of [0 0 0]", peaks[0])
	}
	for idx, v := range dirtyMap.Vals {
		if math.Abs(v) > 1e-12 {
			i, j, k := dirtyMap.Coords(idx)
			t.Fatalf("residual %g left at (%d, %d, %d)", v, i, j, k)
		}
	}
}

func TestClean3DGamma(t *testing.T) {
	beam := wrappedGaussianBeam(8, 1)
	dirtyMap := NewGrid(8, 8, 8)
	addSource(dirtyMap, beam, [3]int{4, 4, 4}, 8)

	// With a loop gain below 1 only part of the footprint is removed.
	Clean3D(beam, dirtyMap, 1, 0.5)
	res := dirtyMap.Vals[dirtyMap.Idx(4, 4, 4)]
	if math.Abs(res-4) > 1e-12 {
		t.Errorf("residual at peak = %g instead of 4", res)
	}
}

func TestClean3DExhaustedSignal(t *testing.T) {
	beam := wrappedGaussianBeam(4, 1)
	dirtyMap := NewGrid(4, 4, 4)

	// A degenerate all-zero map still yields exactly the requested number
	// of peaks, tie-breaking toward the lowest flattened index.
	peaks := Clean3D(beam, dirtyMap, 2, 1)
	if len(peaks) != 2 {
		t.Fatalf("got %d peaks instead of 2", len(peaks))
	}
	for i, p := range peaks {
		if p != [3]int{0, 0, 0} {
			t.Errorf("peak %d = %v instead of [0 0 0]", i, p)
		}
	}
}

func TestClean3DShapeMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for mismatched grid shapes")
		}
	}()
	Clean3D(NewGrid(4, 4, 4), NewGrid(4, 4, 5), 1, 1)
}
