package element

import "github.com/dcross/go-femvis/pkg/core"

// Tet4MapRealToUnit inverts the affine geometric map of a 4-node
// tetrahedron, returning the 4 barycentric coordinates of point p. The
// coordinates sum to 1; all are in [0,1] for points inside the element.
// Being affine, the inversion is a single 3x3 solve, no iteration.
func Tet4MapRealToUnit(verts *[4]core.Vec3, p core.Vec3) [4]float64 {
	e0 := verts[1].Subtract(verts[0])
	e1 := verts[2].Subtract(verts[0])
	e2 := verts[3].Subtract(verts[0])
	rhs := p.Subtract(verts[0])

	lam := solve3([3][3]float64{
		{e0.X, e1.X, e2.X},
		{e0.Y, e1.Y, e2.Y},
		{e0.Z, e1.Z, e2.Z},
	}, [3]float64{rhs.X, rhs.Y, rhs.Z})

	return [4]float64{1 - lam[0] - lam[1] - lam[2], lam[0], lam[1], lam[2]}
}

// Tet4SampleAtUnitPoint evaluates the linear shape functions (the
// barycentric coordinates themselves) against the 4 nodal values.
func Tet4SampleAtUnitPoint(local [4]float64, values *[4]float64) float64 {
	return local[0]*values[0] + local[1]*values[1] + local[2]*values[2] + local[3]*values[3]
}
