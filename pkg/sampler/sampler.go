package sampler

import (
	"math"

	"github.com/dcross/go-femvis/pkg/core"
	"github.com/dcross/go-femvis/pkg/element"
	"github.com/dcross/go-femvis/pkg/mesh"
)

// Boundary-proximity thresholds per element family. These are tunable
// heuristics in reference-space units, not derived from element size.
const (
	hexEdgeTolerance   = 0.1
	wedgeEdgeTolerance = 0.05
	tetEdgeTolerance   = 0.02
)

// Sampler evaluates one RayHit against a snapshot. Exactly one sampler
// variant is bound per snapshot for its whole lifetime; binding is a
// build-time choice, not per-call dispatch.
type Sampler func(snap *mesh.Snapshot, hit *RayHit)

// ForSnapshot returns the sampler variant matching a snapshot's element
// family and field layout.
func ForSnapshot(snap *mesh.Snapshot) Sampler {
	if snap.Layout() == mesh.ElementField {
		return SampleConstant
	}
	switch snap.Kind() {
	case mesh.Hex8:
		return SampleHex8
	case mesh.Wedge6:
		return SampleWedge6
	default:
		return SampleTet4
	}
}

// hitPosition converts a triangle id plus barycentric hit coordinates
// into the real-space hit point: p = (1-u-v)*V0 + u*V1 + v*V2. The
// caller guarantees the id is valid; the weights sum to exactly 1 by
// construction.
func hitPosition(snap *mesh.Snapshot, hit *RayHit) core.Vec3 {
	v0, v1, v2 := snap.Triangle(hit.TriangleID)
	w := 1.0 - hit.U - hit.V
	return v0.Multiply(w).Add(v1.Multiply(hit.U)).Add(v2.Multiply(hit.V))
}

// SampleHex8 interpolates a nodal field inside an 8-node hexahedron.
// The hit is near a boundary when the mapped local coordinates sit
// within hexEdgeTolerance of two reference-cube faces at once, i.e.
// near the edge where the faces meet.
func SampleHex8(snap *mesh.Snapshot, hit *RayHit) {
	if hit.TriangleID == NoHit {
		return
	}
	elem := snap.ElementForTriangle(hit.TriangleID)

	var verts [8]core.Vec3
	var values [8]float64
	for i := 0; i < 8; i++ {
		verts[i] = snap.ElementNodeVertex(elem, i)
		values[i] = snap.NodalValue(elem, i)
	}

	local := element.Hex8MapRealToUnit(&verts, hitPosition(snap, hit))
	hit.FieldValue = element.Hex8SampleAtUnitPoint(local, &values)
	hit.NearBoundary = classifyHex8(local)
}

// classifyHex8 marks a hit as near a boundary when its local coordinates
// sit within hexEdgeTolerance of two reference-cube faces at once, i.e.
// near the edge where the faces meet. Symmetric in the three axes.
func classifyHex8(local [3]float64) Boundary {
	nearX := math.Abs(math.Abs(local[0])-1.0) < hexEdgeTolerance
	nearY := math.Abs(math.Abs(local[1])-1.0) < hexEdgeTolerance
	nearZ := math.Abs(math.Abs(local[2])-1.0) < hexEdgeTolerance
	if (nearX && nearY) || (nearY && nearZ) || (nearX && nearZ) {
		return BoundaryNear
	}
	return BoundaryFar
}

// SampleWedge6 interpolates a nodal field inside a 6-node wedge. An edge
// is the intersection of two faces, so the hit is near a boundary when
// at least two of the three face-proximity predicates hold: near the
// r-edges of the cross-section, near the s=0 edge, or near an end cap.
func SampleWedge6(snap *mesh.Snapshot, hit *RayHit) {
	if hit.TriangleID == NoHit {
		return
	}
	elem := snap.ElementForTriangle(hit.TriangleID)

	var verts [6]core.Vec3
	var values [6]float64
	for i := 0; i < 6; i++ {
		verts[i] = snap.ElementNodeVertex(elem, i)
		values[i] = snap.NodalValue(elem, i)
	}

	local := element.Wedge6MapRealToUnit(&verts, hitPosition(snap, hit))
	hit.FieldValue = element.Wedge6SampleAtUnitPoint(local, &values)
	hit.NearBoundary = classifyWedge6(local)
}

// classifyWedge6 evaluates the three face-proximity predicates of the
// wedge: nearR covers the two cross-section edges not involving s=0,
// nearS the s=0 edge, nearT the two end caps.
func classifyWedge6(local [3]float64) Boundary {
	r, s, t := local[0], local[1], local[2]
	nearR := r < wedgeEdgeTolerance || math.Abs(r+s-1.0) < wedgeEdgeTolerance
	nearS := s < wedgeEdgeTolerance
	nearT := math.Abs(math.Abs(t)-1.0) < wedgeEdgeTolerance
	if (nearR && nearS) || (nearS && nearT) || (nearR && nearT) {
		return BoundaryNear
	}
	return BoundaryFar
}

// SampleTet4 interpolates a nodal field inside a 4-node tetrahedron.
//
// The boundary test deliberately uses the struck triangle's own
// barycentric coordinates (u, v, w) as reported by the intersection
// engine, not the tetrahedron's mapped local coordinates like the hex
// and wedge samplers do. Preserved as observed behavior.
func SampleTet4(snap *mesh.Snapshot, hit *RayHit) {
	if hit.TriangleID == NoHit {
		return
	}
	elem := snap.ElementForTriangle(hit.TriangleID)

	var verts [4]core.Vec3
	var values [4]float64
	for i := 0; i < 4; i++ {
		verts[i] = snap.ElementNodeVertex(elem, i)
		values[i] = snap.NodalValue(elem, i)
	}

	local := element.Tet4MapRealToUnit(&verts, hitPosition(snap, hit))
	hit.FieldValue = element.Tet4SampleAtUnitPoint(local, &values)
	hit.NearBoundary = classifyTet4(hit.U, hit.V)
}

// classifyTet4 marks a hit as near a boundary when any of the struck
// triangle's barycentric coordinates approaches 0 or 1, i.e. the hit is
// near one of the triangle's edges.
func classifyTet4(u, v float64) Boundary {
	for _, c := range [3]float64{u, v, 1.0 - u - v} {
		if c < tetEdgeTolerance || c > 1.0-tetEdgeTolerance {
			return BoundaryNear
		}
	}
	return BoundaryFar
}

// SampleConstant reads the per-element value of a piecewise-constant
// field. No interpolation and no boundary classification: NearBoundary
// is left untouched.
func SampleConstant(snap *mesh.Snapshot, hit *RayHit) {
	if hit.TriangleID == NoHit {
		return
	}
	hit.FieldValue = snap.ElementValue(snap.ElementForTriangle(hit.TriangleID))
}
