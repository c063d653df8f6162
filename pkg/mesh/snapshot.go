package mesh

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/dcross/go-femvis/pkg/core"
)

// Snapshot is a read-only flattened view of a tessellated finite-element
// mesh plus its scalar field, built once and shared by all render workers.
//
// Triangle ids are assigned so that the triangles of element k occupy the
// contiguous block [k*TrianglesPerElement, (k+1)*TrianglesPerElement).
// NewSnapshot establishes that invariant by construction; everything
// downstream (in particular element-id recovery in the samplers) relies
// on it.
type Snapshot struct {
	kind   ElementKind
	layout FieldLayout

	vertices         []core.Vec3
	triangleIndices  []int32 // 3 vertex ids per triangle
	elementVertexIDs []int32 // NodesPerElement ids per element, contiguous
	fieldValues      []float64

	numElements         int
	trianglesPerElement int
	bounds              core.AABB
}

// NewSnapshot builds a snapshot from flattened element connectivity and
// field values. elementVertexIDs holds kind.NodesPerElement() vertex ids
// per element; fieldValues holds one value per element-local node for
// NodalField layouts, or one value per element for ElementField layouts.
// The element surfaces are tessellated into triangles here, in element
// order, one fixed-size block per element.
func NewSnapshot(kind ElementKind, layout FieldLayout, vertices []core.Vec3, elementVertexIDs []int32, fieldValues []float64) (*Snapshot, error) {
	nodesPerElement := kind.NodesPerElement()
	if nodesPerElement == 0 {
		return nil, fmt.Errorf("invalid element kind %d", kind)
	}
	if len(vertices) == 0 {
		return nil, fmt.Errorf("snapshot requires at least one vertex")
	}
	if len(elementVertexIDs)%nodesPerElement != 0 {
		return nil, fmt.Errorf("connectivity length %d is not a multiple of %d nodes per %s element",
			len(elementVertexIDs), nodesPerElement, kind)
	}
	numElements := len(elementVertexIDs) / nodesPerElement
	if numElements == 0 {
		return nil, fmt.Errorf("snapshot requires at least one element")
	}

	switch layout {
	case NodalField:
		if len(fieldValues) != len(elementVertexIDs) {
			return nil, fmt.Errorf("nodal field: expected %d values, got %d", len(elementVertexIDs), len(fieldValues))
		}
	case ElementField:
		if len(fieldValues) != numElements {
			return nil, fmt.Errorf("element field: expected %d values, got %d", numElements, len(fieldValues))
		}
	default:
		return nil, fmt.Errorf("invalid field layout %d", layout)
	}

	for i, id := range elementVertexIDs {
		if id < 0 || int(id) >= len(vertices) {
			return nil, fmt.Errorf("element %d node %d: vertex id %d out of range [0,%d)",
				i/nodesPerElement, i%nodesPerElement, id, len(vertices))
		}
	}

	s := &Snapshot{
		kind:                kind,
		layout:              layout,
		vertices:            vertices,
		elementVertexIDs:    elementVertexIDs,
		fieldValues:         fieldValues,
		numElements:         numElements,
		trianglesPerElement: kind.TrianglesPerElement(),
		bounds:              core.NewAABBFromPoints(vertices...),
	}

	if err := s.validateElements(); err != nil {
		return nil, err
	}

	s.triangleIndices = make([]int32, 0, numElements*s.trianglesPerElement*3)
	for e := 0; e < numElements; e++ {
		nodes := elementVertexIDs[e*nodesPerElement : (e+1)*nodesPerElement]
		s.triangleIndices = appendSurfaceTriangles(s.triangleIndices, kind, nodes)
	}

	return s, nil
}

// validateElements rejects degenerate or inverted elements by checking
// the sign of the corner Jacobian determinant of each element's
// geometric map. Build-time only; the hit path never re-checks.
func (s *Snapshot) validateElements() error {
	var e0, e1, e2 core.Vec3
	for e := 0; e < s.numElements; e++ {
		v0 := s.ElementNodeVertex(int32(e), 0)
		switch s.kind {
		case Hex8:
			e0 = s.ElementNodeVertex(int32(e), 1).Subtract(v0)
			e1 = s.ElementNodeVertex(int32(e), 3).Subtract(v0)
			e2 = s.ElementNodeVertex(int32(e), 4).Subtract(v0)
		case Wedge6:
			e0 = s.ElementNodeVertex(int32(e), 1).Subtract(v0)
			e1 = s.ElementNodeVertex(int32(e), 2).Subtract(v0)
			e2 = s.ElementNodeVertex(int32(e), 3).Subtract(v0)
		case Tet4:
			e0 = s.ElementNodeVertex(int32(e), 1).Subtract(v0)
			e1 = s.ElementNodeVertex(int32(e), 2).Subtract(v0)
			e2 = s.ElementNodeVertex(int32(e), 3).Subtract(v0)
		}

		jac := mat.NewDense(3, 3, []float64{
			e0.X, e1.X, e2.X,
			e0.Y, e1.Y, e2.Y,
			e0.Z, e1.Z, e2.Z,
		})
		if det := mat.Det(jac); det <= 0 {
			return fmt.Errorf("element %d: degenerate or inverted geometry (corner Jacobian determinant %g)", e, det)
		}
	}
	return nil
}

// Kind returns the element kind of every cell in the snapshot
func (s *Snapshot) Kind() ElementKind { return s.kind }

// Layout returns how field values attach to the mesh
func (s *Snapshot) Layout() FieldLayout { return s.layout }

// NumVertices returns the number of mesh vertices
func (s *Snapshot) NumVertices() int { return len(s.vertices) }

// NumElements returns the number of volumetric elements
func (s *Snapshot) NumElements() int { return s.numElements }

// NumTriangles returns the number of surface triangles over all elements
func (s *Snapshot) NumTriangles() int { return len(s.triangleIndices) / 3 }

// TrianglesPerElement returns the fixed surface-triangle count per element
func (s *Snapshot) TrianglesPerElement() int { return s.trianglesPerElement }

// Bounds returns the bounding box of all mesh vertices
func (s *Snapshot) Bounds() core.AABB { return s.bounds }

// Vertex returns the position of vertex id
func (s *Snapshot) Vertex(id int32) core.Vec3 { return s.vertices[id] }

// Triangle returns the three vertex positions of a surface triangle
func (s *Snapshot) Triangle(triangleID int32) (v0, v1, v2 core.Vec3) {
	base := triangleID * 3
	return s.vertices[s.triangleIndices[base]],
		s.vertices[s.triangleIndices[base+1]],
		s.vertices[s.triangleIndices[base+2]]
}

// ElementForTriangle recovers the element a surface triangle belongs to.
// Valid because each element owns a contiguous block of triangle ids.
func (s *Snapshot) ElementForTriangle(triangleID int32) int32 {
	return triangleID / int32(s.trianglesPerElement)
}

// ElementTriangleRange returns the half-open triangle id range [lo, hi)
// owned by an element.
func (s *Snapshot) ElementTriangleRange(element int32) (lo, hi int32) {
	lo = element * int32(s.trianglesPerElement)
	return lo, lo + int32(s.trianglesPerElement)
}

// ElementNodeVertex returns the position of an element's local node
func (s *Snapshot) ElementNodeVertex(element int32, node int) core.Vec3 {
	return s.vertices[s.elementVertexIDs[int(element)*s.kind.NodesPerElement()+node]]
}

// NodalValue returns the field value at an element's local node.
// Only meaningful for NodalField layouts.
func (s *Snapshot) NodalValue(element int32, node int) float64 {
	return s.fieldValues[int(element)*s.kind.NodesPerElement()+node]
}

// ElementValue returns the per-element field value.
// Only meaningful for ElementField layouts.
func (s *Snapshot) ElementValue(element int32) float64 {
	return s.fieldValues[element]
}

// FieldRange returns the minimum and maximum field values in the snapshot
func (s *Snapshot) FieldRange() (min, max float64) {
	min, max = s.fieldValues[0], s.fieldValues[0]
	for _, v := range s.fieldValues[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
