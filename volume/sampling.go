package volume

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/xtal-tools/rotscan/predict"
	"github.com/xtal-tools/rotscan/scan"
)

// thermalScale ties the isotropic B-factor convention used by the sampling
// volume weights to reciprocal resolution. It is a fixed convention of the
// reduction pipeline, not a derivable physical constant.
const thermalScale = 200

// SamplingVolumeMap marks every voxel of g that was observed during the
// rotation scan described by angleRanges, mutating g in place. Voxel (i,j,k)
// sits at reciprocal-space position ((i,j,k) - N/2) * rlGridSpacing relative
// to the grid center. Voxels beyond the resolution limit dMin or whose
// reciprocal point never crosses the Ewald sphere inside the scan are left
// untouched. Sampled voxels are set to 1, or to the thermal weight
// exp(-thermalScale * r^2 / 4) when bIso is nonzero.
//
// The walk is a single deterministic pass; the caller owns exclusive write
// access to g for the duration of the call.
func SamplingVolumeMap(
	g *Grid, angleRanges []scan.AngleRange,
	s0, m2 r3.Vec, rlGridSpacing, dMin, bIso float64,
) {
	ra := predict.NewRotationAngles(s0, m2)
	oneOverDMinSq := 1 / (dMin * dMin)

	for i := 0; i < g.N[0]; i++ {
		iRl := (float64(i) - float64(g.N[0])/2) * rlGridSpacing
		iRlSq := iRl * iRl
		for j := 0; j < g.N[1]; j++ {
			jRl := (float64(j) - float64(g.N[1])/2) * rlGridSpacing
			jRlSq := jRl * jRl
			for k := 0; k < g.N[2]; k++ {
				kRl := (float64(k) - float64(g.N[2])/2) * rlGridSpacing
				rSq := iRlSq + jRlSq + kRl*kRl
				if rSq > oneOverDMinSq {
					continue
				}

				phi, ok := ra.Angles(r3.Vec{X: iRl, Y: jRl, Z: kRl})
				if !ok {
					// The point is never observed.
					continue
				}
				if !scan.AnyContain(angleRanges, phi) {
					continue
				}

				if bIso != 0 {
					g.Vals[g.Idx(i, j, k)] = math.Exp(-thermalScale * rSq / 4)
				} else {
					g.Vals[g.Idx(i, j, k)] = 1
				}
			}
		}
	}
}
