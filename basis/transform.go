package basis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/xtal-tools/rotscan/geom"
)

// The transforms below convert between lab-frame observables (a diffracted
// beam vector, a rotation angle) and the local (c1, c2, c3) coordinate of a
// reflection. Each holds a copy of the constants it needs from a
// CoordinateSystem and carries no other state, so a single transform may be
// applied concurrently from any number of goroutines.
//
// The angle transforms come in two tiers. The Fast tier uses the first-order
// relation c3 = zeta * (phi' - phi), which is very nearly exact close to the
// diffracting position and cheap enough for per-pixel work. The Accurate
// tier solves the full trigonometric relation and remains valid for wide
// angular deviations.

// FromBeamVector maps a diffracted beam vector near s1 to the (c1, c2)
// plane of the local frame by linear projection onto e1 and e2.
type FromBeamVector struct {
	scaledE1, scaledE2, s1 r3.Vec
}

// NewFromBeamVector builds the transform from a coordinate system.
func NewFromBeamVector(cs *CoordinateSystem) FromBeamVector {
	radius := r3.Norm(cs.S1())
	return FromBeamVector{
		scaledE1: r3.Scale(1/radius, cs.E1()),
		scaledE2: r3.Scale(1/radius, cs.E2()),
		s1:       cs.S1(),
	}
}

// Apply returns the (c1, c2) coordinate of the beam vector s1Dash.
func (t FromBeamVector) Apply(s1Dash r3.Vec) (c1, c2 float64) {
	d := r3.Sub(s1Dash, t.s1)
	return r3.Dot(t.scaledE1, d), r3.Dot(t.scaledE2, d)
}

// ToBeamVector maps a local (c1, c2) coordinate back onto the Ewald sphere.
// It is the exact inverse of FromBeamVector.
type ToBeamVector struct {
	scaledE1, scaledE2, normal r3.Vec
	radiusSq                   float64
}

// NewToBeamVector builds the transform from a coordinate system.
func NewToBeamVector(cs *CoordinateSystem) ToBeamVector {
	radius := r3.Norm(cs.S1())
	return ToBeamVector{
		scaledE1: r3.Scale(radius, cs.E1()),
		scaledE2: r3.Scale(radius, cs.E2()),
		normal:   r3.Scale(1/radius, cs.S1()),
		radiusSq: radius * radius,
	}
}

// Apply returns the beam vector with local coordinate (c1, c2). It fails if
// the coordinate lies outside the projection of the Ewald sphere, where no
// beam vector exists.
func (t ToBeamVector) Apply(c1, c2 float64) (r3.Vec, error) {
	p := r3.Add(r3.Scale(c1, t.scaledE1), r3.Scale(c2, t.scaledE2))
	dSq := t.radiusSq - r3.Norm2(p)
	if dSq < 0 {
		return r3.Vec{}, fmt.Errorf(
			"basis: coordinate (%g, %g) lies outside the Ewald sphere", c1, c2)
	}
	return r3.Add(p, r3.Scale(math.Sqrt(dSq), t.normal)), nil
}

// FromRotationAngleFast maps a rotation angle to the local c3 coordinate
// using the first-order relation c3 = zeta * (phi' - phi).
type FromRotationAngleFast struct {
	zeta, phi float64
}

// NewFromRotationAngleFast builds the transform from a coordinate system.
func NewFromRotationAngleFast(cs *CoordinateSystem) FromRotationAngleFast {
	return FromRotationAngleFast{cs.Zeta(), cs.Phi()}
}

// Apply returns the c3 coordinate of the rotation angle phiDash.
func (t FromRotationAngleFast) Apply(phiDash float64) float64 {
	return t.zeta * (phiDash - t.phi)
}

// FromRotationAngleAccurate maps a rotation angle to the local c3 coordinate
// by rotating the scattering vector exactly and projecting its displacement
// onto e3.
type FromRotationAngleAccurate struct {
	m2, scaledE3, pStar r3.Vec
	phi                 float64
}

// NewFromRotationAngleAccurate builds the transform from a coordinate
// system.
func NewFromRotationAngleAccurate(cs *CoordinateSystem) FromRotationAngleAccurate {
	return FromRotationAngleAccurate{
		m2:       cs.M2(),
		scaledE3: r3.Scale(1/r3.Norm(cs.PStar()), cs.E3()),
		pStar:    cs.PStar(),
		phi:      cs.Phi(),
	}
}

// Apply returns the c3 coordinate of the rotation angle phiDash.
func (t FromRotationAngleAccurate) Apply(phiDash float64) float64 {
	rotated := geom.RotateAbout(t.pStar, t.m2, phiDash-t.phi)
	return r3.Dot(t.scaledE3, r3.Sub(rotated, t.pStar))
}

// ToRotationAngleFast maps a local c3 coordinate to a rotation angle using
// the first-order relation phi' = phi + c3 / zeta.
type ToRotationAngleFast struct {
	zeta, phi float64
}

// NewToRotationAngleFast builds the transform from a coordinate system.
func NewToRotationAngleFast(cs *CoordinateSystem) ToRotationAngleFast {
	return ToRotationAngleFast{cs.Zeta(), cs.Phi()}
}

// Apply returns the rotation angle of the coordinate c3.
func (t ToRotationAngleFast) Apply(c3 float64) float64 {
	return t.phi + c3/t.zeta
}

// ToRotationAngleAccurate maps a local c3 coordinate to a rotation angle by
// solving the exact trigonometric relation.
//
// Writing the rotated scattering vector with the Rodrigues formula and
// projecting onto e3 gives a*cos(dphi) + b*sin(dphi) = d, where a, b depend
// only on the geometry and d on c3. The branch containing dphi = 0 is
// selected, which is the inverse of FromRotationAngleAccurate everywhere the
// relation is monotonic.
type ToRotationAngleAccurate struct {
	a, b, radius, alpha float64
	pStarLen, phi       float64
}

// NewToRotationAngleAccurate builds the transform from a coordinate system.
func NewToRotationAngleAccurate(cs *CoordinateSystem) ToRotationAngleAccurate {
	m2, e3, ps := cs.M2(), cs.E3(), cs.PStar()
	a := r3.Dot(e3, ps) - r3.Dot(m2, e3)*r3.Dot(m2, ps)
	b := r3.Dot(e3, r3.Cross(m2, ps))
	return ToRotationAngleAccurate{
		a: a, b: b,
		radius:   math.Hypot(a, b),
		alpha:    math.Atan2(b, a),
		pStarLen: r3.Norm(ps),
		phi:      cs.Phi(),
	}
}

// Apply returns the rotation angle of the coordinate c3. It fails if c3 is
// larger than any rotation of the scattering vector can produce.
func (t ToRotationAngleAccurate) Apply(c3 float64) (float64, error) {
	d := c3*t.pStarLen + t.a
	ratio := d / t.radius
	if ratio > 1 || ratio < -1 {
		if math.Abs(ratio)-1 > 1e-12 {
			return 0, fmt.Errorf(
				"basis: coordinate %g is outside the reachable rotation range", c3)
		}
		ratio = math.Copysign(1, ratio)
	}
	dPhi := t.alpha - math.Copysign(math.Acos(ratio), t.b)
	return t.phi + dPhi, nil
}

// FromBeamVectorAndRotationAngleFast maps a (beam vector, rotation angle)
// pair to the full local (c1, c2, c3) coordinate using the fast angle tier.
type FromBeamVectorAndRotationAngleFast struct {
	beam  FromBeamVector
	angle FromRotationAngleFast
}

// NewFromBeamVectorAndRotationAngleFast builds the transform from a
// coordinate system.
func NewFromBeamVectorAndRotationAngleFast(
	cs *CoordinateSystem,
) FromBeamVectorAndRotationAngleFast {
	return FromBeamVectorAndRotationAngleFast{
		NewFromBeamVector(cs), NewFromRotationAngleFast(cs),
	}
}

// Apply returns the local coordinate of the pair (s1Dash, phiDash).
func (t FromBeamVectorAndRotationAngleFast) Apply(
	s1Dash r3.Vec, phiDash float64,
) (c1, c2, c3 float64) {
	c1, c2 = t.beam.Apply(s1Dash)
	return c1, c2, t.angle.Apply(phiDash)
}

// FromBeamVectorAndRotationAngleAccurate maps a (beam vector, rotation
// angle) pair to the full local (c1, c2, c3) coordinate using the accurate
// angle tier.
type FromBeamVectorAndRotationAngleAccurate struct {
	beam  FromBeamVector
	angle FromRotationAngleAccurate
}

// NewFromBeamVectorAndRotationAngleAccurate builds the transform from a
// coordinate system.
func NewFromBeamVectorAndRotationAngleAccurate(
	cs *CoordinateSystem,
) FromBeamVectorAndRotationAngleAccurate {
	return FromBeamVectorAndRotationAngleAccurate{
		NewFromBeamVector(cs), NewFromRotationAngleAccurate(cs),
	}
}

// Apply returns the local coordinate of the pair (s1Dash, phiDash).
func (t FromBeamVectorAndRotationAngleAccurate) Apply(
	s1Dash r3.Vec, phiDash float64,
) (c1, c2, c3 float64) {
	c1, c2 = t.beam.Apply(s1Dash)
	return c1, c2, t.angle.Apply(phiDash)
}

// ToBeamVectorAndRotationAngleFast maps a full local coordinate back to a
// (beam vector, rotation angle) pair using the fast angle tier.
type ToBeamVectorAndRotationAngleFast struct {
	beam  ToBeamVector
	angle ToRotationAngleFast
}

// NewToBeamVectorAndRotationAngleFast builds the transform from a coordinate
// system.
func NewToBeamVectorAndRotationAngleFast(
	cs *CoordinateSystem,
) ToBeamVectorAndRotationAngleFast {
	return ToBeamVectorAndRotationAngleFast{
		NewToBeamVector(cs), NewToRotationAngleFast(cs),
	}
}

// Apply returns the (beam vector, rotation angle) pair of the local
// coordinate (c1, c2, c3).
func (t ToBeamVectorAndRotationAngleFast) Apply(
	c1, c2, c3 float64,
) (r3.Vec, float64, error) {
	s1Dash, err := t.beam.Apply(c1, c2)
	if err != nil {
		return r3.Vec{}, 0, err
	}
	return s1Dash, t.angle.Apply(c3), nil
}

// ToBeamVectorAndRotationAngleAccurate maps a full local coordinate back to
// a (beam vector, rotation angle) pair using the accurate angle tier.
type ToBeamVectorAndRotationAngleAccurate struct {
	beam  ToBeamVector
	angle ToRotationAngleAccurate
}

// NewToBeamVectorAndRotationAngleAccurate builds the transform from a
// coordinate system.
func NewToBeamVectorAndRotationAngleAccurate(
	cs *CoordinateSystem,
) ToBeamVectorAndRotationAngleAccurate {
	return ToBeamVectorAndRotationAngleAccurate{
		NewToBeamVector(cs), NewToRotationAngleAccurate(cs),
	}
}

// Apply returns the (beam vector, rotation angle) pair of the local
// coordinate (c1, c2, c3).
func (t ToBeamVectorAndRotationAngleAccurate) Apply(
	c1, c2, c3 float64,
) (r3.Vec, float64, error) {
	s1Dash, err := t.beam.Apply(c1, c2)
	if err != nil {
		return r3.Vec{}, 0, err
	}
	phiDash, err := t.angle.Apply(c3)
	if err != nil {
		return r3.Vec{}, 0, err
	}
	return s1Dash, phiDash, nil
}
