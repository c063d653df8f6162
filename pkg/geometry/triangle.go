package geometry

import (
	"github.com/dcross/go-femvis/pkg/core"
	"github.com/dcross/go-femvis/pkg/mesh"
)

// Intersection describes a ray-triangle intersection. TriangleID and the
// barycentric coordinates U, V are what the field samplers consume.
type Intersection struct {
	T          float64   // Parameter t along the ray
	Point      core.Vec3 // Point of intersection
	Normal     core.Vec3 // Surface normal at intersection
	FrontFace  bool      // Whether ray hit the front face
	TriangleID int32     // Id of the struck triangle in the snapshot
	U, V       float64   // Barycentric coordinates of the hit
}

// setFaceNormal sets the normal vector and determines front/back face
func (is *Intersection) setFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	is.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if is.FrontFace {
		is.Normal = outwardNormal
	} else {
		is.Normal = outwardNormal.Multiply(-1)
	}
}

// MeshTriangle is one surface triangle of a tessellated element, carrying
// the triangle id the samplers use to recover the element.
type MeshTriangle struct {
	V0, V1, V2 core.Vec3
	ID         int32
	normal     core.Vec3 // Cached normal vector
	bbox       core.AABB // Cached bounding box
}

// NewMeshTriangle creates a triangle from three vertices and its snapshot id
func NewMeshTriangle(id int32, v0, v1, v2 core.Vec3) *MeshTriangle {
	t := &MeshTriangle{V0: v0, V1: v1, V2: v2, ID: id}

	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)
	t.normal = edge1.Cross(edge2).Normalize()
	t.bbox = core.NewAABBFromPoints(v0, v1, v2)

	return t
}

// TrianglesForSnapshot builds the intersection triangles for every
// surface triangle of a snapshot, in snapshot id order.
func TrianglesForSnapshot(snap *mesh.Snapshot) []*MeshTriangle {
	triangles := make([]*MeshTriangle, snap.NumTriangles())
	for i := range triangles {
		v0, v1, v2 := snap.Triangle(int32(i))
		triangles[i] = NewMeshTriangle(int32(i), v0, v1, v2)
	}
	return triangles
}

// Hit tests if a ray intersects the triangle using the Möller-Trumbore
// algorithm, filling the caller's intersection record on success. The
// record is caller-owned, so the hot path allocates nothing.
func (t *MeshTriangle) Hit(ray core.Ray, tMin, tMax float64, isect *Intersection) bool {
	const epsilon = 1e-8

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	// If the determinant is near zero, the ray lies in the triangle plane
	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if a > -epsilon && a < epsilon {
		return false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return false
	}

	tParam := f * edge2.Dot(q)
	if tParam < tMin || tParam > tMax {
		return false
	}

	isect.T = tParam
	isect.Point = ray.At(tParam)
	isect.TriangleID = t.ID
	isect.U = u
	isect.V = v
	isect.setFaceNormal(ray, t.normal)

	return true
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *MeshTriangle) BoundingBox() core.AABB {
	return t.bbox
}
