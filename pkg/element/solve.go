// Package element implements the per-family numerical services consumed
// by the hit samplers: inversion of the element's geometric map (real
// space to reference space) and nodal shape-function evaluation.
//
// All routines are pure, never fail, and never allocate: points on or
// numerically near an element boundary yield best-effort (possibly
// slightly out-of-range) local coordinates rather than an error, because
// the samplers have no channel to report failure through.
package element

// solve3 solves the 3x3 linear system a*x = b by explicit inversion.
// A singular matrix yields the zero vector, which leaves a Newton
// iterate unchanged instead of producing NaNs.
func solve3(a [3][3]float64, b [3]float64) [3]float64 {
	det := a[0][0]*(a[1][1]*a[2][2]-a[1][2]*a[2][1]) -
		a[0][1]*(a[1][0]*a[2][2]-a[1][2]*a[2][0]) +
		a[0][2]*(a[1][0]*a[2][1]-a[1][1]*a[2][0])
	if det == 0 {
		return [3]float64{}
	}
	inv := 1.0 / det

	return [3]float64{
		inv * (b[0]*(a[1][1]*a[2][2]-a[1][2]*a[2][1]) +
			b[1]*(a[0][2]*a[2][1]-a[0][1]*a[2][2]) +
			b[2]*(a[0][1]*a[1][2]-a[0][2]*a[1][1])),
		inv * (b[0]*(a[1][2]*a[2][0]-a[1][0]*a[2][2]) +
			b[1]*(a[0][0]*a[2][2]-a[0][2]*a[2][0]) +
			b[2]*(a[0][2]*a[1][0]-a[0][0]*a[1][2])),
		inv * (b[0]*(a[1][0]*a[2][1]-a[1][1]*a[2][0]) +
			b[1]*(a[0][1]*a[2][0]-a[0][0]*a[2][1]) +
			b[2]*(a[0][0]*a[1][1]-a[0][1]*a[1][0])),
	}
}

// Newton iteration limits for the non-affine (hex, wedge) inverse maps.
// The iteration is capped rather than convergence-checked to failure:
// if the tolerance is not reached the last iterate is returned as the
// best-effort answer.
const (
	maxNewtonIterations = 10
	newtonTolerance     = 1e-11
)
