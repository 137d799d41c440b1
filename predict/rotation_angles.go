/*package predict computes the rotation angles at which reciprocal lattice
points satisfy the diffraction condition.
*/
package predict

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// RotationAngles solves for the rotation angles at which a reciprocal-space
// point crosses the Ewald sphere. A solver is built once per experiment from
// the incident beam vector and the rotation axis and may then be reused for
// any number of points.
//
// Internally the solver works in an orthonormal frame (m1, m2, m3) where m2
// is the rotation axis, m1 = m2 x s0 and m3 completes the frame. Rotation
// leaves the m2 component of a point fixed, which reduces the diffraction
// condition to a circle intersection in the (m1, m3) plane.
type RotationAngles struct {
	s0, m2, m1, m3 r3.Vec
	s0M2, s0M3     float64
}

// NewRotationAngles creates a solver from the incident beam vector s0 and
// the rotation axis m2. The axis need not be normalized. s0 must not be
// parallel to m2.
func NewRotationAngles(s0, m2 r3.Vec) *RotationAngles {
	ra := &RotationAngles{s0: s0, m2: r3.Unit(m2)}
	ra.m1 = r3.Unit(r3.Cross(ra.m2, s0))
	ra.m3 = r3.Unit(r3.Cross(ra.m1, ra.m2))
	ra.s0M2 = r3.Dot(s0, ra.m2)
	ra.s0M3 = r3.Dot(s0, ra.m3)
	return ra
}

// Angles returns the two rotation angles at which pstar0, the position of a
// reciprocal lattice point at a rotation angle of zero, diffracts. ok is
// false if the point can never cross the Ewald sphere. That is the expected
// outcome for points in the blind region or beyond the measurable resolution
// limit, not a program error.
func (ra *RotationAngles) Angles(pstar0 r3.Vec) (phi [2]float64, ok bool) {
	lenSq := r3.Norm2(pstar0)
	b := r3.Dot(pstar0, ra.m2)

	// The diffraction condition s0.p* = -|p*|^2 / 2 pins the m3 component of
	// the rotated point, since the m1 component of s0 is zero.
	c := (-0.5*lenSq - b*ra.s0M2) / ra.s0M3
	rhoSq := lenSq - b*b
	if rhoSq < c*c {
		return phi, false
	}
	a := math.Sqrt(rhoSq - c*c)

	phi0 := math.Atan2(r3.Dot(pstar0, ra.m1), r3.Dot(pstar0, ra.m3))
	phi[0] = math.Atan2(+a, c) - phi0
	phi[1] = math.Atan2(-a, c) - phi0
	return phi, true
}
