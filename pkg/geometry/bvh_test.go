package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/dcross/go-femvis/pkg/core"
)

// randomTriangles builds small triangles scattered through the unit-ish
// volume, enough of them to force several BVH levels
func randomTriangles(rng *rand.Rand, count int) []*MeshTriangle {
	triangles := make([]*MeshTriangle, count)
	for i := range triangles {
		center := core.NewVec3(rng.Float64()*10, rng.Float64()*10, rng.Float64()*10)
		v0 := center.Add(core.NewVec3(rng.Float64()-0.5, rng.Float64()-0.5, rng.Float64()-0.5))
		v1 := center.Add(core.NewVec3(rng.Float64()-0.5, rng.Float64()-0.5, rng.Float64()-0.5))
		v2 := center.Add(core.NewVec3(rng.Float64()-0.5, rng.Float64()-0.5, rng.Float64()-0.5))
		triangles[i] = NewMeshTriangle(int32(i), v0, v1, v2)
	}
	return triangles
}

// linearHit is the brute-force reference: test every triangle, keep the
// nearest intersection
func linearHit(triangles []*MeshTriangle, ray core.Ray, tMin, tMax float64, isect *Intersection) bool {
	hitAnything := false
	closest := tMax
	for _, tri := range triangles {
		if tri.Hit(ray, tMin, closest, isect) {
			hitAnything = true
			closest = isect.T
		}
	}
	return hitAnything
}

func TestBVHMatchesLinearScan(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	triangles := randomTriangles(rng, 500)
	bvh := NewBVH(triangles)

	hits := 0
	for i := 0; i < 1000; i++ {
		origin := core.NewVec3(rng.Float64()*14-2, rng.Float64()*14-2, rng.Float64()*14-2)
		direction := core.NewVec3(rng.Float64()-0.5, rng.Float64()-0.5, rng.Float64()-0.5).Normalize()
		if direction.Length() == 0 {
			continue
		}
		ray := core.NewRay(origin, direction)

		var bvhIsect, linIsect Intersection
		bvhHit := bvh.Hit(ray, 0.001, math.Inf(1), &bvhIsect)
		linHit := linearHit(triangles, ray, 0.001, math.Inf(1), &linIsect)

		if bvhHit != linHit {
			t.Fatalf("ray %d: BVH hit=%v, linear hit=%v", i, bvhHit, linHit)
		}
		if !bvhHit {
			continue
		}
		hits++
		if bvhIsect.TriangleID != linIsect.TriangleID {
			t.Fatalf("ray %d: BVH struck triangle %d at t=%v, linear struck %d at t=%v",
				i, bvhIsect.TriangleID, bvhIsect.T, linIsect.TriangleID, linIsect.T)
		}
		if math.Abs(bvhIsect.T-linIsect.T) > 1e-12 {
			t.Fatalf("ray %d: BVH t=%v, linear t=%v", i, bvhIsect.T, linIsect.T)
		}
	}

	// The sampling volume surrounds the triangles, so a fair share of
	// rays must connect for the comparison to mean anything
	if hits < 50 {
		t.Fatalf("only %d/1000 rays hit; test geometry is degenerate", hits)
	}
}

func TestBVHNearestOfStackedTriangles(t *testing.T) {
	// Three parallel triangles along -z; the nearest must win
	var triangles []*MeshTriangle
	for i, z := range []float64{3, 1, 2} {
		triangles = append(triangles, NewMeshTriangle(int32(i),
			core.NewVec3(-1, -1, z),
			core.NewVec3(1, -1, z),
			core.NewVec3(0, 1, z),
		))
	}
	bvh := NewBVH(triangles)

	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	var isect Intersection
	if !bvh.Hit(ray, 0.001, math.Inf(1), &isect) {
		t.Fatal("expected a hit")
	}
	if isect.TriangleID != 0 || math.Abs(isect.T-2) > 1e-12 {
		t.Errorf("expected triangle 0 at t=2, got triangle %d at t=%v", isect.TriangleID, isect.T)
	}
}

func TestBVHEmpty(t *testing.T) {
	bvh := NewBVH(nil)
	var isect Intersection
	if bvh.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1), &isect) {
		t.Error("empty BVH must not report hits")
	}
}

func TestBVHBounds(t *testing.T) {
	triangles := []*MeshTriangle{
		NewMeshTriangle(0, core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)),
		NewMeshTriangle(1, core.NewVec3(5, 5, 5), core.NewVec3(6, 5, 5), core.NewVec3(5, 6, 5)),
	}
	bvh := NewBVH(triangles)

	bounds := bvh.Bounds()
	if bounds.Min != core.NewVec3(0, 0, 0) || bounds.Max != core.NewVec3(6, 6, 5) {
		t.Errorf("unexpected bounds: %v", bounds)
	}
}
