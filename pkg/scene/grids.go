package scene

import (
	"fmt"

	"github.com/dcross/go-femvis/pkg/core"
	"github.com/dcross/go-femvis/pkg/mesh"
)

// gridVertices builds the (nx+1)*(ny+1)*(nz+1) lattice of unit-cell
// corner positions shared by the structured example meshes, along with
// an index function for corner (i,j,k).
func gridVertices(nx, ny, nz int) ([]core.Vec3, func(i, j, k int) int32) {
	vertices := make([]core.Vec3, 0, (nx+1)*(ny+1)*(nz+1))
	for k := 0; k <= nz; k++ {
		for j := 0; j <= ny; j++ {
			for i := 0; i <= nx; i++ {
				vertices = append(vertices, core.NewVec3(float64(i), float64(j), float64(k)))
			}
		}
	}
	index := func(i, j, k int) int32 {
		return int32((k*(ny+1)+j)*(nx+1) + i)
	}
	return vertices, index
}

// hexCellNodes returns the 8 lattice corners of cell (i,j,k) in the hex
// node convention: bottom face counterclockwise, then the top face.
func hexCellNodes(index func(i, j, k int) int32, i, j, k int) [8]int32 {
	return [8]int32{
		index(i, j, k),
		index(i+1, j, k),
		index(i+1, j+1, k),
		index(i, j+1, k),
		index(i, j, k+1),
		index(i+1, j, k+1),
		index(i+1, j+1, k+1),
		index(i, j+1, k+1),
	}
}

// nodalValues samples the synthetic field at each element-local node
func nodalValues(vertices []core.Vec3, connectivity []int32, center core.Vec3) []float64 {
	values := make([]float64, len(connectivity))
	for i, id := range connectivity {
		values[i] = fieldAt(vertices[id], center)
	}
	return values
}

// NewHexGridScene builds an nx*ny*nz structured grid of 8-node hexahedra
// carrying a nodal radial field.
func NewHexGridScene(nx, ny, nz int) (*Scene, error) {
	vertices, index := gridVertices(nx, ny, nz)

	connectivity := make([]int32, 0, nx*ny*nz*8)
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				nodes := hexCellNodes(index, i, j, k)
				connectivity = append(connectivity, nodes[:]...)
			}
		}
	}

	center := core.NewVec3(float64(nx)/2, float64(ny)/2, float64(nz)/2)
	snap, err := mesh.NewSnapshot(mesh.Hex8, mesh.NodalField, vertices, connectivity, nodalValues(vertices, connectivity, center))
	if err != nil {
		return nil, fmt.Errorf("hexgrid scene: %w", err)
	}

	return NewScene("hexgrid", snap), nil
}

// NewWedgeColumnScene builds an nx*ny*nz grid where every cell is split
// into two 6-node wedges along the cell diagonal, carrying a nodal
// radial field.
func NewWedgeColumnScene(nx, ny, nz int) (*Scene, error) {
	vertices, index := gridVertices(nx, ny, nz)

	connectivity := make([]int32, 0, nx*ny*nz*2*6)
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				a, b := index(i, j, k), index(i+1, j, k)
				c, d := index(i+1, j+1, k), index(i, j+1, k)
				at, bt := index(i, j, k+1), index(i+1, j, k+1)
				ct, dt := index(i+1, j+1, k+1), index(i, j+1, k+1)

				// Bottom triangles wind counterclockwise in xy so the
				// wedge axis (+z) gives a positive corner Jacobian
				connectivity = append(connectivity, a, b, c, at, bt, ct)
				connectivity = append(connectivity, a, c, d, at, ct, dt)
			}
		}
	}

	center := core.NewVec3(float64(nx)/2, float64(ny)/2, float64(nz)/2)
	snap, err := mesh.NewSnapshot(mesh.Wedge6, mesh.NodalField, vertices, connectivity, nodalValues(vertices, connectivity, center))
	if err != nil {
		return nil, fmt.Errorf("wedges scene: %w", err)
	}

	return NewScene("wedges", snap), nil
}

// kuhnPaths lists the 6 corner paths of the Kuhn subdivision of a cube
// into tetrahedra, in hex-local node indices: every tet is
// (node0, path[0], path[1], node6) along one axis permutation.
var kuhnPaths = [6][2]int{
	{1, 2}, {1, 5}, {3, 2}, {3, 7}, {4, 5}, {4, 7},
}

// NewTetBlockScene builds an nx*ny*nz grid where every cell is split
// into six 4-node tetrahedra (Kuhn subdivision), carrying a nodal
// radial field.
func NewTetBlockScene(nx, ny, nz int) (*Scene, error) {
	vertices, index := gridVertices(nx, ny, nz)

	connectivity := make([]int32, 0, nx*ny*nz*6*4)
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				nodes := hexCellNodes(index, i, j, k)
				for _, path := range kuhnPaths {
					tet := orientTet(vertices, nodes[0], nodes[path[0]], nodes[path[1]], nodes[6])
					connectivity = append(connectivity, tet[:]...)
				}
			}
		}
	}

	center := core.NewVec3(float64(nx)/2, float64(ny)/2, float64(nz)/2)
	snap, err := mesh.NewSnapshot(mesh.Tet4, mesh.NodalField, vertices, connectivity, nodalValues(vertices, connectivity, center))
	if err != nil {
		return nil, fmt.Errorf("tets scene: %w", err)
	}

	return NewScene("tets", snap), nil
}

// NewConstantScene builds a hex grid carrying one field value per element
// (element center distance from the mesh center), exercising the
// piecewise-constant sampler.
func NewConstantScene(nx, ny, nz int) (*Scene, error) {
	vertices, index := gridVertices(nx, ny, nz)
	center := core.NewVec3(float64(nx)/2, float64(ny)/2, float64(nz)/2)

	connectivity := make([]int32, 0, nx*ny*nz*8)
	values := make([]float64, 0, nx*ny*nz)
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				nodes := hexCellNodes(index, i, j, k)
				connectivity = append(connectivity, nodes[:]...)
				cellCenter := core.NewVec3(float64(i)+0.5, float64(j)+0.5, float64(k)+0.5)
				values = append(values, fieldAt(cellCenter, center))
			}
		}
	}

	snap, err := mesh.NewSnapshot(mesh.Hex8, mesh.ElementField, vertices, connectivity, values)
	if err != nil {
		return nil, fmt.Errorf("constant scene: %w", err)
	}

	return NewScene("constant", snap), nil
}
