package element

import "github.com/dcross/go-femvis/pkg/core"

// hexSigns holds the reference-cube corner signs of the 8 hex nodes:
// nodes 0-3 are the bottom face (zeta=-1) counterclockwise, 4-7 the top.
var hexSigns = [8][3]float64{
	{-1, -1, -1},
	{1, -1, -1},
	{1, 1, -1},
	{-1, 1, -1},
	{-1, -1, 1},
	{1, -1, 1},
	{1, 1, 1},
	{-1, 1, 1},
}

// Hex8MapRealToUnit inverts the trilinear geometric map of an 8-node
// hexahedron, returning the local coordinates (xi, eta, zeta) of point p.
// Each component is in [-1,1] for points inside the element. The map is
// non-affine, so the inversion runs a capped Newton iteration starting
// from the reference-cube center.
func Hex8MapRealToUnit(verts *[8]core.Vec3, p core.Vec3) [3]float64 {
	var local [3]float64 // start at the element center

	for iter := 0; iter < maxNewtonIterations; iter++ {
		var f [3]float64      // residual x(local) - p
		var jac [3][3]float64 // d x / d local

		f[0], f[1], f[2] = -p.X, -p.Y, -p.Z
		for i := 0; i < 8; i++ {
			sx, sy, sz := hexSigns[i][0], hexSigns[i][1], hexSigns[i][2]
			fx := 1 + sx*local[0]
			fy := 1 + sy*local[1]
			fz := 1 + sz*local[2]

			n := 0.125 * fx * fy * fz
			dx := 0.125 * sx * fy * fz
			dy := 0.125 * fx * sy * fz
			dz := 0.125 * fx * fy * sz

			v := verts[i]
			f[0] += n * v.X
			f[1] += n * v.Y
			f[2] += n * v.Z

			jac[0][0] += dx * v.X
			jac[0][1] += dy * v.X
			jac[0][2] += dz * v.X
			jac[1][0] += dx * v.Y
			jac[1][1] += dy * v.Y
			jac[1][2] += dz * v.Y
			jac[2][0] += dx * v.Z
			jac[2][1] += dy * v.Z
			jac[2][2] += dz * v.Z
		}

		delta := solve3(jac, f)
		local[0] -= delta[0]
		local[1] -= delta[1]
		local[2] -= delta[2]

		if delta[0]*delta[0]+delta[1]*delta[1]+delta[2]*delta[2] < newtonTolerance*newtonTolerance {
			break
		}
	}

	return local
}

// Hex8SampleAtUnitPoint evaluates the trilinear shape functions at the
// given local coordinates against the 8 nodal values. Evaluating at a
// node's own corner reproduces that node's value exactly.
func Hex8SampleAtUnitPoint(local [3]float64, values *[8]float64) float64 {
	var sum float64
	for i := 0; i < 8; i++ {
		n := 0.125 *
			(1 + hexSigns[i][0]*local[0]) *
			(1 + hexSigns[i][1]*local[1]) *
			(1 + hexSigns[i][2]*local[2])
		sum += n * values[i]
	}
	return sum
}
