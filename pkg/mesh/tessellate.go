package mesh

// Face connectivity of each element kind in local node indices, oriented
// so triangle normals point out of the element. Quad faces are split into
// two triangles along the (0,2) diagonal.
//
// Node conventions: hex nodes 0-3 form the bottom face counterclockwise
// (viewed from below) and 4-7 the top; wedge nodes 0-2 form the bottom
// triangle and 3-5 the top; tet nodes are the usual right-handed ordering.

var tetFaces = [4][3]int{
	{0, 2, 1},
	{0, 1, 3},
	{0, 3, 2},
	{1, 2, 3},
}

var hexFaces = [6][4]int{
	{0, 3, 2, 1}, // bottom
	{4, 5, 6, 7}, // top
	{0, 1, 5, 4},
	{1, 2, 6, 5},
	{2, 3, 7, 6},
	{3, 0, 4, 7},
}

var wedgeTriFaces = [2][3]int{
	{0, 2, 1}, // bottom cap
	{3, 4, 5}, // top cap
}

var wedgeQuadFaces = [3][4]int{
	{0, 1, 4, 3},
	{1, 2, 5, 4},
	{2, 0, 3, 5},
}

// appendSurfaceTriangles appends the vertex-id triples tessellating one
// element's surface to dst and returns the extended slice. The number and
// order of triangles is fixed per kind, which is what makes triangle ids
// recoverable by integer division later.
func appendSurfaceTriangles(dst []int32, kind ElementKind, nodes []int32) []int32 {
	switch kind {
	case Tet4:
		for _, f := range tetFaces {
			dst = append(dst, nodes[f[0]], nodes[f[1]], nodes[f[2]])
		}
	case Hex8:
		for _, f := range hexFaces {
			dst = appendQuad(dst, nodes[f[0]], nodes[f[1]], nodes[f[2]], nodes[f[3]])
		}
	case Wedge6:
		for _, f := range wedgeTriFaces {
			dst = append(dst, nodes[f[0]], nodes[f[1]], nodes[f[2]])
		}
		for _, f := range wedgeQuadFaces {
			dst = appendQuad(dst, nodes[f[0]], nodes[f[1]], nodes[f[2]], nodes[f[3]])
		}
	}
	return dst
}

// appendQuad splits the quad (a,b,c,d) into triangles (a,b,c) and (a,c,d)
func appendQuad(dst []int32, a, b, c, d int32) []int32 {
	dst = append(dst, a, b, c)
	dst = append(dst, a, c, d)
	return dst
}
