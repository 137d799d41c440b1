/*package scan models the angular coverage of a rotation scan. Angles live on
a periodic domain, so range membership is tested modulo a full turn.
*/
package scan

import (
	"math"
)

const twoPi = 2 * math.Pi

// AngleRange is a closed interval [Start, End] of rotation angles in radians.
// End may exceed Start by more than a full turn, in which case the range
// contains every angle.
type AngleRange struct {
	Start, End float64
}

// mod2Pi maps an angle onto [0, 2pi).
func mod2Pi(angle float64) float64 {
	m := math.Mod(angle, twoPi)
	if m < 0 {
		m += twoPi
	}
	return m
}

// Contains returns true if angle falls inside the range, comparing modulo a
// full turn so that ranges crossing the 0/2pi seam behave correctly.
func (r AngleRange) Contains(angle float64) bool {
	width := r.End - r.Start
	if width >= twoPi {
		return true
	}
	return mod2Pi(angle-r.Start) <= width
}

// AnyContain returns true if either of the two candidate diffraction angles
// falls inside any of the given scan ranges.
func AnyContain(ranges []AngleRange, angles [2]float64) bool {
	for _, angle := range angles {
		for _, r := range ranges {
			if r.Contains(angle) {
				return true
			}
		}
	}
	return false
}
