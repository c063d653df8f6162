package scene

import (
	"github.com/dcross/go-femvis/pkg/core"
	"github.com/dcross/go-femvis/pkg/geometry"
	"github.com/dcross/go-femvis/pkg/mesh"
	"github.com/dcross/go-femvis/pkg/sampler"
)

// Scene binds everything one render needs: the mesh snapshot, the sampler
// variant chosen for it, the acceleration structure, camera framing and
// the field range used for color mapping.
type Scene struct {
	Name         string
	Snapshot     *mesh.Snapshot
	Sampler      sampler.Sampler
	BVH          *geometry.BVH
	CameraConfig geometry.CameraConfig

	// Field range for color mapping; computed in Preprocess when equal
	FieldMin, FieldMax float64
}

// NewScene builds a scene around a snapshot, binding the sampler variant
// matching the snapshot's element family and field layout.
func NewScene(name string, snap *mesh.Snapshot) *Scene {
	return &Scene{
		Name:         name,
		Snapshot:     snap,
		Sampler:      sampler.ForSnapshot(snap),
		CameraConfig: frameBounds(snap.Bounds()),
	}
}

// Preprocess prepares the scene for rendering: builds the BVH over the
// snapshot's surface triangles and fills in the field range if the scene
// didn't pin one.
func (s *Scene) Preprocess() error {
	s.BVH = geometry.NewBVH(geometry.TrianglesForSnapshot(s.Snapshot))

	if s.FieldMin == s.FieldMax {
		s.FieldMin, s.FieldMax = s.Snapshot.FieldRange()
		if s.FieldMin == s.FieldMax {
			// Uniform field: widen the range so mapping stays finite
			s.FieldMax = s.FieldMin + 1
		}
	}

	return nil
}

// frameBounds places a look-at camera so the whole mesh is in view
func frameBounds(bounds core.AABB) geometry.CameraConfig {
	center := bounds.Center()
	radius := bounds.Size().Length() * 0.5
	if radius == 0 {
		radius = 1
	}

	offset := core.NewVec3(1.0, 0.7, 1.4).Normalize().Multiply(radius * 2.6)
	return geometry.CameraConfig{
		Center:      center.Add(offset),
		LookAt:      center,
		Up:          core.NewVec3(0, 1, 0),
		VFov:        35,
		AspectRatio: 16.0 / 9.0,
	}
}

// fieldAt is the synthetic scalar field the example scenes sample at mesh
// vertices: distance from the mesh center, which renders as concentric
// shells.
func fieldAt(p, center core.Vec3) float64 {
	return p.Subtract(center).Length()
}

// orientTet swaps two nodes when the tet (a,b,c,d) is negatively
// oriented, so every generated element passes the builder's Jacobian
// check regardless of how the cube corner paths wind.
func orientTet(verts []core.Vec3, a, b, c, d int32) [4]int32 {
	e0 := verts[b].Subtract(verts[a])
	e1 := verts[c].Subtract(verts[a])
	e2 := verts[d].Subtract(verts[a])
	if e0.Cross(e1).Dot(e2) < 0 {
		b, c = c, b
	}
	return [4]int32{a, b, c, d}
}
