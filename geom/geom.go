/*package geom contains small geometric helpers layered over gonum's r3
vectors, shared by the prediction and coordinate-frame packages.
*/
package geom

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// RotateAbout rotates v by angle radians about the unit axis, following the
// right-hand rule.
func RotateAbout(v, axis r3.Vec, angle float64) r3.Vec {
	return r3.NewRotation(angle, axis).Rotate(v)
}

// VecsAlmostEqual returns true if every component of v1 and v2 agrees to
// within eps.
func VecsAlmostEqual(v1, v2 r3.Vec, eps float64) bool {
	d := r3.Sub(v1, v2)
	return d.X < eps && d.X > -eps &&
		d.Y < eps && d.Y > -eps &&
		d.Z < eps && d.Z > -eps
}
