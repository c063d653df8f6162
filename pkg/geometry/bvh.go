package geometry

import (
	"sort"

	"github.com/dcross/go-femvis/pkg/core"
)

// Leaf threshold: nodes with this many or fewer triangles store them
// directly and use linear search
const leafThreshold = 8

// bvhNode represents a node in the Bounding Volume Hierarchy
type bvhNode struct {
	boundingBox core.AABB
	left        *bvhNode
	right       *bvhNode
	triangles   []*MeshTriangle // nil for internal nodes
}

// BVH is a bounding volume hierarchy over the surface triangles of a
// snapshot, used for nearest-intersection queries. Read-only after
// construction, safe for concurrent traversal.
type BVH struct {
	root   *bvhNode
	bounds core.AABB
}

// NewBVH constructs a BVH from a slice of triangles
func NewBVH(triangles []*MeshTriangle) *BVH {
	if len(triangles) == 0 {
		return &BVH{}
	}

	// Copy so sorting during the build doesn't reorder the caller's slice
	trianglesCopy := make([]*MeshTriangle, len(triangles))
	copy(trianglesCopy, triangles)

	root := buildBVH(trianglesCopy)
	return &BVH{root: root, bounds: root.boundingBox}
}

// buildBVH recursively builds the hierarchy with median splits along the
// longest axis, which is fast and good enough for the regular triangle
// blocks a tessellated element mesh produces
func buildBVH(triangles []*MeshTriangle) *bvhNode {
	boundingBox := triangles[0].BoundingBox()
	for i := 1; i < len(triangles); i++ {
		boundingBox = boundingBox.Union(triangles[i].BoundingBox())
	}

	if len(triangles) <= leafThreshold {
		return &bvhNode{
			boundingBox: boundingBox,
			triangles:   triangles,
		}
	}

	axis := boundingBox.LongestAxis()
	sortTrianglesByAxis(triangles, axis)

	mid := len(triangles) / 2
	return &bvhNode{
		boundingBox: boundingBox,
		left:        buildBVH(triangles[:mid]),
		right:       buildBVH(triangles[mid:]),
	}
}

// sortTrianglesByAxis sorts triangles by bounding box center along the given axis
func sortTrianglesByAxis(triangles []*MeshTriangle, axis int) {
	sort.Slice(triangles, func(i, j int) bool {
		centerI := triangles[i].BoundingBox().Center()
		centerJ := triangles[j].BoundingBox().Center()

		switch axis {
		case 0:
			return centerI.X < centerJ.X
		case 1:
			return centerI.Y < centerJ.Y
		default:
			return centerI.Z < centerJ.Z
		}
	})
}

// Bounds returns the bounding box of the whole hierarchy
func (bvh *BVH) Bounds() core.AABB {
	return bvh.bounds
}

// Hit finds the nearest triangle intersection along the ray, filling the
// caller's intersection record on success.
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64, isect *Intersection) bool {
	if bvh.root == nil {
		return false
	}
	return hitNode(bvh.root, ray, tMin, tMax, isect)
}

// hitNode recursively tests ray intersection against BVH nodes, shrinking
// tMax as closer hits are found so the caller's record always holds the
// nearest intersection seen so far
func hitNode(node *bvhNode, ray core.Ray, tMin, tMax float64, isect *Intersection) bool {
	if !node.boundingBox.Hit(ray, tMin, tMax) {
		return false
	}

	if node.triangles != nil {
		hitAnything := false
		closestSoFar := tMax
		for _, triangle := range node.triangles {
			if triangle.Hit(ray, tMin, closestSoFar, isect) {
				hitAnything = true
				closestSoFar = isect.T
			}
		}
		return hitAnything
	}

	hitAnything := false
	closestSoFar := tMax
	if node.left != nil && hitNode(node.left, ray, tMin, closestSoFar, isect) {
		hitAnything = true
		closestSoFar = isect.T
	}
	if node.right != nil && hitNode(node.right, ray, tMin, closestSoFar, isect) {
		hitAnything = true
	}

	return hitAnything
}
