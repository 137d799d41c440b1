package predict

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/xtal-tools/rotscan/geom"
)

// ewaldOffset measures how far the point sits from the Ewald sphere after
// rotating it to the given angle. Zero means the point diffracts exactly.
func ewaldOffset(s0, m2, pstar0 r3.Vec, phi float64) float64 {
	p := geom.RotateAbout(pstar0, m2, phi)
	return r3.Norm(r3.Add(s0, p)) - r3.Norm(s0)
}

func TestAnglesSatisfyDiffractionCondition(t *testing.T) {
	s0 := r3.Vec{X: 0.013, Y: 0.002, Z: -0.999914}
	m2 := r3.Unit(r3.Vec{X: 0.999975, Y: -0.001289, Z: -0.004968})
	ra := NewRotationAngles(s0, m2)

	points := []r3.Vec{
		{X: 0.1, Y: 0.2, Z: 0.15},
		{X: -0.05, Y: 0.3, Z: -0.2},
		{X: 0.0, Y: 0.5, Z: 0.1},
		{X: 0.2, Y: -0.4, Z: 0.3},
	}

	for i, p := range points {
		phi, ok := ra.Angles(p)
		if !ok {
			t.Errorf("%d) no solution for %v", i+1, p)
			continue
		}
		for j := 0; j < 2; j++ {
			if off := ewaldOffset(s0, m2, p, phi[j]); math.Abs(off) > 1e-10 {
				t.Errorf("%d) angle %d = %g misses the Ewald sphere by %g",
					i+1, j, phi[j], off)
			}
		}
	}
}

func TestAnglesTwoBranches(t *testing.T) {
	s0 := r3.Vec{Z: -1}
	m2 := r3.Vec{X: 1}
	ra := NewRotationAngles(s0, m2)

	phi, ok := ra.Angles(r3.Vec{X: 0.1, Y: 0.3, Z: 0.2})
	if !ok {
		t.Fatal("expected a solution")
	}
	if math.Abs(phi[0]-phi[1]) < 1e-6 {
		t.Errorf("expected two distinct angles, got %g and %g", phi[0], phi[1])
	}
}

func TestAnglesNoSolution(t *testing.T) {
	s0 := r3.Vec{Z: -1}
	m2 := r3.Vec{X: 1}
	ra := NewRotationAngles(s0, m2)

	table := []r3.Vec{
		// Blind region: the point lies almost along the rotation axis.
		{X: 0.5, Y: 0.001, Z: 0.001},
		// Beyond the diameter of the Ewald sphere.
		{Y: 2.5},
	}

	for i, p := range table {
		if _, ok := ra.Angles(p); ok {
			t.Errorf("%d) expected no solution for %v", i+1, p)
		}
	}
}
