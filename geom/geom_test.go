package geom

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestRotateAbout(t *testing.T) {
	eps := 1e-12
	table := []struct {
		v, axis r3.Vec
		angle   float64
		end     r3.Vec
	}{
		{r3.Vec{X: 1}, r3.Vec{Z: 1}, 0, r3.Vec{X: 1}},
		{r3.Vec{X: 1}, r3.Vec{Z: 1}, math.Pi / 2, r3.Vec{Y: 1}},
		{r3.Vec{X: 1}, r3.Vec{Z: 1}, math.Pi, r3.Vec{X: -1}},
		{r3.Vec{Y: 2}, r3.Vec{X: 1}, math.Pi / 2, r3.Vec{Z: 2}},
		{r3.Vec{Z: 1}, r3.Vec{Z: 1}, 1.234, r3.Vec{Z: 1}},
	}

	for i, test := range table {
		out := RotateAbout(test.v, test.axis, test.angle)
		if !VecsAlmostEqual(out, test.end, eps) {
			t.Errorf("%d) RotateAbout(%v, %v, %.4g) -> %v instead of %v",
				i+1, test.v, test.axis, test.angle, out, test.end)
		}
	}
}

func TestRotateAboutPreservesNorm(t *testing.T) {
	v := r3.Vec{X: 0.3, Y: -1.2, Z: 0.8}
	axis := r3.Unit(r3.Vec{X: 1, Y: 1, Z: -0.5})
	for _, angle := range []float64{-2.5, -0.1, 0.02, 1.1, 3.0} {
		out := RotateAbout(v, axis, angle)
		if math.Abs(r3.Norm(out)-r3.Norm(v)) > 1e-12 {
			t.Errorf("rotation by %g changed |v| from %g to %g",
				angle, r3.Norm(v), r3.Norm(out))
		}
	}
}
