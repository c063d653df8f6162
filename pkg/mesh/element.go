package mesh

// ElementKind identifies the cell topology of a volumetric mesh.
// Each snapshot holds exactly one kind for its whole lifetime.
type ElementKind int

const (
	Hex8   ElementKind = iota // 8-node hexahedron
	Wedge6                    // 6-node wedge (triangular prism)
	Tet4                      // 4-node tetrahedron
)

// String returns the element kind name
func (k ElementKind) String() string {
	switch k {
	case Hex8:
		return "hex8"
	case Wedge6:
		return "wedge6"
	case Tet4:
		return "tet4"
	default:
		return "unknown"
	}
}

// NodesPerElement returns the number of local nodes per element
func (k ElementKind) NodesPerElement() int {
	switch k {
	case Hex8:
		return 8
	case Wedge6:
		return 6
	case Tet4:
		return 4
	default:
		return 0
	}
}

// TrianglesPerElement returns the number of triangles used to tessellate
// one element's surface for intersection testing: each quad face
// contributes two triangles, each triangular face one.
func (k ElementKind) TrianglesPerElement() int {
	switch k {
	case Hex8:
		return 12 // 6 quad faces
	case Wedge6:
		return 8 // 2 triangle caps + 3 quad faces
	case Tet4:
		return 4 // 4 triangle faces
	default:
		return 0
	}
}

// FieldLayout describes how field values attach to a snapshot.
type FieldLayout int

const (
	// NodalField stores one value per element-local node; samplers
	// interpolate with the element family's shape functions.
	NodalField FieldLayout = iota
	// ElementField stores a single value per element with no
	// intra-element interpolation.
	ElementField
)

// String returns the field layout name
func (l FieldLayout) String() string {
	switch l {
	case NodalField:
		return "nodal"
	case ElementField:
		return "element"
	default:
		return "unknown"
	}
}
