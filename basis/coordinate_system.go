/*package basis implements the local reciprocal-space coordinate frame used
to describe the shape of a single diffraction spot independently of where it
falls in the detector/rotation scan, along with the transforms between that
frame and lab-frame observables.

The frame follows Kabsch (1988): e1 is normal to the plane spanned by the
incident and diffracted beams, e2 completes a right-handed frame with e1 and
the scattering vector, and e3 points along the direction in which the
scattering vector moves as the crystal rotates through the reflection.
*/
package basis

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// ZetaFactor computes the Lorentz correction factor for a reflection from
// the full beam geometry: the rotation axis m2, the incident beam vector s0
// and the diffracted beam vector s1. The raw geometric value is returned
// even when it is zero; callers that divide by it must check themselves.
func ZetaFactor(m2, s0, s1 r3.Vec) float64 {
	return ZetaFactorE1(m2, r3.Unit(r3.Cross(s1, s0)))
}

// ZetaFactorE1 computes the Lorentz correction factor directly from the
// rotation axis and an already-computed e1 axis.
func ZetaFactorE1(m2, e1 r3.Vec) float64 {
	return r3.Dot(r3.Unit(m2), e1)
}

// CoordinateSystem is the local orthonormal frame of one reflection. It is
// immutable after construction and safe to share between any number of
// transforms and goroutines.
type CoordinateSystem struct {
	m2, s0, s1 r3.Vec
	phi        float64

	pStar      r3.Vec
	e1, e2, e3 r3.Vec
	zeta       float64
}

// NewCoordinateSystem builds the frame for a single reflection from the
// rotation axis m2, the incident beam vector s0, the diffracted beam vector
// s1 and the rotation angle phi at which the reflection diffracts. The axis
// is normalized internally; the beam vectors are used as given.
//
// Degenerate geometry (s1 parallel to s0, zero-length inputs) yields a
// degenerate frame. Avoiding it is a caller precondition, not a checked
// error.
func NewCoordinateSystem(m2, s0, s1 r3.Vec, phi float64) *CoordinateSystem {
	cs := &CoordinateSystem{
		m2: r3.Unit(m2), s0: s0, s1: s1, phi: phi,
		pStar: r3.Sub(s1, s0),
	}
	cs.e1 = r3.Unit(r3.Cross(s1, s0))
	cs.e2 = r3.Unit(r3.Cross(s1, cs.e1))
	cs.e3 = r3.Unit(r3.Add(s1, s0))
	cs.zeta = r3.Dot(cs.m2, cs.e1)
	return cs
}

// M2 returns the unit rotation axis.
func (cs *CoordinateSystem) M2() r3.Vec { return cs.m2 }

// S0 returns the incident beam vector.
func (cs *CoordinateSystem) S0() r3.Vec { return cs.s0 }

// S1 returns the diffracted beam vector.
func (cs *CoordinateSystem) S1() r3.Vec { return cs.s1 }

// Phi returns the rotation angle at which the reflection diffracts.
func (cs *CoordinateSystem) Phi() float64 { return cs.phi }

// PStar returns the scattering vector s1 - s0.
func (cs *CoordinateSystem) PStar() r3.Vec { return cs.pStar }

// E1 returns the axis normal to the diffraction plane.
func (cs *CoordinateSystem) E1() r3.Vec { return cs.e1 }

// E2 returns the axis completing the right-handed frame with e1 and p*.
func (cs *CoordinateSystem) E2() r3.Vec { return cs.e2 }

// E3 returns the axis along which p* moves at the diffracting position.
func (cs *CoordinateSystem) E3() r3.Vec { return cs.e3 }

// Zeta returns the Lorentz correction factor m2 . e1.
func (cs *CoordinateSystem) Zeta() float64 { return cs.zeta }
