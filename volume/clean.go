package volume

import (
	"fmt"
)

// Clean3D extracts nPeaks peak positions from dirtyMap given the instrument
// point-spread function dirtyBeam, mutating dirtyMap in place. The approach
// is the CLEAN algorithm of Högbom, J. A. 1974, A&AS, 15, 417, adapted to a
// periodic 3D grid.
//
// Each iteration records the position of the current map maximum, then
// subtracts the beam re-centered on that position and scaled by
// (peak value / beam maximum) * gamma, wrapping around all three axes.
// gamma is the loop gain: values below 1 remove each peak's footprint only
// partially, which is more stable when peaks overlap.
//
// Exactly nPeaks iterations are performed regardless of how much signal
// remains, so the returned slice always has length nPeaks, ordered from
// strongest remaining signal to weakest. Ties on the maximum break toward
// the lowest flattened index. The grids must have identical shapes;
// violating that precondition panics.
func Clean3D(dirtyBeam, dirtyMap *Grid, nPeaks int, gamma float64) [][3]int {
	if dirtyBeam.N != dirtyMap.N {
		panic(fmt.Sprintf("volume: dirty beam shape %v does not match "+
			"dirty map shape %v", dirtyBeam.N, dirtyMap.N))
	}

	n0, n1, n2 := dirtyMap.N[0], dirtyMap.N[1], dirtyMap.N[2]
	maxDB := dirtyBeam.Max()

	peaks := make([][3]int, 0, nPeaks)
	for iPeak := 0; iPeak < nPeaks; iPeak++ {
		maxIdx := dirtyMap.MaxIdx()
		si, sj, sk := dirtyMap.Coords(maxIdx)
		peaks = append(peaks, [3]int{si, sj, sk})

		// Re-center the beam on the peak and subtract its scaled footprint,
		// wrapping around all three axes.
		scale := dirtyMap.Vals[maxIdx] / maxDB * gamma
		kDB0 := pMod(-sk, n2)
		for i := 0; i < n0; i++ {
			iDB := pMod(i-si, n0)
			for j := 0; j < n1; j++ {
				jDB := pMod(j-sj, n1)
				mapRow := dirtyMap.Vals[(i*n1+j)*n2 : (i*n1+j+1)*n2]
				beamRow := dirtyBeam.Vals[(iDB*n1+jDB)*n2 : (iDB*n1+jDB+1)*n2]
				kDB := kDB0
				for k := 0; k < n2; k++ {
					mapRow[k] -= beamRow[kDB] * scale
					kDB++
					if kDB == n2 {
						kDB = 0
					}
				}
			}
		}
	}
	return peaks
}
