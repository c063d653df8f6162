package element

import "github.com/dcross/go-femvis/pkg/core"

// Wedge6MapRealToUnit inverts the geometric map of a 6-node wedge
// (triangular prism), returning local coordinates (r, s, t) of point p.
// (r, s) parametrize the triangular cross-section (r,s >= 0, r+s <= 1
// inside the element) and t in [-1,1] the axial direction between the
// bottom cap (nodes 0-2) and the top cap (nodes 3-5). The map is
// non-affine across the quad faces, so inversion uses a capped Newton
// iteration starting at the cross-section centroid.
func Wedge6MapRealToUnit(verts *[6]core.Vec3, p core.Vec3) [3]float64 {
	local := [3]float64{1.0 / 3.0, 1.0 / 3.0, 0}

	for iter := 0; iter < maxNewtonIterations; iter++ {
		r, s, t := local[0], local[1], local[2]

		// Shape functions and their derivatives w.r.t. (r, s, t)
		n := [6]float64{
			(1 - r - s) * (1 - t) * 0.5,
			r * (1 - t) * 0.5,
			s * (1 - t) * 0.5,
			(1 - r - s) * (1 + t) * 0.5,
			r * (1 + t) * 0.5,
			s * (1 + t) * 0.5,
		}
		dr := [6]float64{-(1 - t) * 0.5, (1 - t) * 0.5, 0, -(1 + t) * 0.5, (1 + t) * 0.5, 0}
		ds := [6]float64{-(1 - t) * 0.5, 0, (1 - t) * 0.5, -(1 + t) * 0.5, 0, (1 + t) * 0.5}
		dt := [6]float64{-(1 - r - s) * 0.5, -r * 0.5, -s * 0.5, (1 - r - s) * 0.5, r * 0.5, s * 0.5}

		var f [3]float64
		var jac [3][3]float64
		f[0], f[1], f[2] = -p.X, -p.Y, -p.Z
		for i := 0; i < 6; i++ {
			v := verts[i]
			f[0] += n[i] * v.X
			f[1] += n[i] * v.Y
			f[2] += n[i] * v.Z

			jac[0][0] += dr[i] * v.X
			jac[0][1] += ds[i] * v.X
			jac[0][2] += dt[i] * v.X
			jac[1][0] += dr[i] * v.Y
			jac[1][1] += ds[i] * v.Y
			jac[1][2] += dt[i] * v.Y
			jac[2][0] += dr[i] * v.Z
			jac[2][1] += ds[i] * v.Z
			jac[2][2] += dt[i] * v.Z
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

// Wedge6SampleAtUnitPoint evaluates the wedge shape functions at the
// given local coordinates against the 6 nodal values.
func Wedge6SampleAtUnitPoint(local [3]float64, values *[6]float64) float64 {
	r, s, t := local[0], local[1], local[2]
	return 0.5 * ((1-r-s)*(1-t)*values[0] +
		r*(1-t)*values[1] +
		s*(1-t)*values[2] +
		(1-r-s)*(1+t)*values[3] +
		r*(1+t)*values[4] +
		s*(1+t)*values[5])
}
