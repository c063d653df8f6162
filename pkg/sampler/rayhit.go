// Package sampler evaluates the scalar field of a finite-element mesh at
// ray-triangle intersection points. The intersection engine fills a
// RayHit with the struck triangle id and its barycentric hit coordinates
// and hands it to the sampler bound to the snapshot; the sampler writes
// the interpolated field value and a boundary-proximity flag back into
// the same record.
package sampler

// NoHit is the TriangleID sentinel for "no intersection occurred".
// Samplers treat it as a no-op, leaving every output field untouched.
const NoHit int32 = -1

// Boundary classifies how close a hit point is to an element edge/face.
type Boundary int8

const (
	// BoundaryUnset means no classification was made: either the ray
	// missed, or the snapshot carries a piecewise-constant field.
	BoundaryUnset Boundary = iota
	// BoundaryNear marks hits close enough to an element edge to be
	// drawn as a mesh line.
	BoundaryNear
	// BoundaryFar marks hits in an element face interior.
	BoundaryFar
)

// String returns the boundary classification name
func (b Boundary) String() string {
	switch b {
	case BoundaryUnset:
		return "unset"
	case BoundaryNear:
		return "near"
	case BoundaryFar:
		return "far"
	default:
		return "invalid"
	}
}

// RayHit is the per-intersection record exchanged with the ray engine.
// TriangleID, U and V are inputs; FieldValue and NearBoundary are
// outputs. Each instance belongs to exactly one in-flight ray and is
// consumed synchronously by one sampler call, so no synchronization is
// needed around it.
type RayHit struct {
	TriangleID int32   // struck surface triangle, or NoHit
	U, V       float64 // barycentric hit coordinates; w = 1-u-v

	FieldValue   float64  // interpolated scalar field at the hit point
	NearBoundary Boundary // mesh-line classification
}
