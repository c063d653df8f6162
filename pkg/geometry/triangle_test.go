package geometry

import (
	"math"
	"testing"

	"github.com/dcross/go-femvis/pkg/core"
)

func TestMeshTriangleHit(t *testing.T) {
	tri := NewMeshTriangle(7,
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
	)

	tests := []struct {
		name    string
		ray     core.Ray
		wantHit bool
		wantT   float64
		wantU   float64
		wantV   float64
	}{
		{
			name:    "perpendicular hit near centroid",
			ray:     core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, -1)),
			wantHit: true,
			wantT:   1.0,
			wantU:   0.25,
			wantV:   0.25,
		},
		{
			name:    "hit at first vertex",
			ray:     core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1)),
			wantHit: true,
			wantT:   2.0,
			wantU:   0,
			wantV:   0,
		},
		{
			name:    "miss outside triangle",
			ray:     core.NewRay(core.NewVec3(0.8, 0.8, 1), core.NewVec3(0, 0, -1)),
			wantHit: false,
		},
		{
			name:    "parallel ray misses",
			ray:     core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(1, 0, 0)),
			wantHit: false,
		},
		{
			name:    "triangle behind ray",
			ray:     core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, 1)),
			wantHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var isect Intersection
			hit := tri.Hit(tt.ray, 0.001, math.Inf(1), &isect)
			if hit != tt.wantHit {
				t.Fatalf("expected hit=%v, got %v", tt.wantHit, hit)
			}
			if !tt.wantHit {
				return
			}
			if math.Abs(isect.T-tt.wantT) > 1e-9 {
				t.Errorf("expected t=%v, got %v", tt.wantT, isect.T)
			}
			if math.Abs(isect.U-tt.wantU) > 1e-9 || math.Abs(isect.V-tt.wantV) > 1e-9 {
				t.Errorf("expected (u,v)=(%v,%v), got (%v,%v)", tt.wantU, tt.wantV, isect.U, isect.V)
			}
			if isect.TriangleID != 7 {
				t.Errorf("expected triangle id 7, got %d", isect.TriangleID)
			}
		})
	}
}

func TestMeshTriangleHitRange(t *testing.T) {
	tri := NewMeshTriangle(0,
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
	)
	ray := core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, -1))

	var isect Intersection
	if tri.Hit(ray, 0.001, 0.5, &isect) {
		t.Error("hit at t=1 should be rejected by tMax=0.5")
	}
	if tri.Hit(ray, 1.5, math.Inf(1), &isect) {
		t.Error("hit at t=1 should be rejected by tMin=1.5")
	}
}

func TestMeshTriangleFaceNormal(t *testing.T) {
	tri := NewMeshTriangle(0,
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
	)

	// Geometric normal points +z; a ray coming from above hits the front
	var isect Intersection
	front := core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, -1))
	if !tri.Hit(front, 0.001, math.Inf(1), &isect) {
		t.Fatal("expected front hit")
	}
	if !isect.FrontFace || isect.Normal.Z <= 0 {
		t.Errorf("expected front face with +z normal, got front=%v normal=%v", isect.FrontFace, isect.Normal)
	}

	back := core.NewRay(core.NewVec3(0.25, 0.25, -1), core.NewVec3(0, 0, 1))
	if !tri.Hit(back, 0.001, math.Inf(1), &isect) {
		t.Fatal("expected back hit")
	}
	if isect.FrontFace || isect.Normal.Z >= 0 {
		t.Errorf("expected back face with -z normal, got front=%v normal=%v", isect.FrontFace, isect.Normal)
	}
}

func TestMeshTriangleBoundingBox(t *testing.T) {
	tri := NewMeshTriangle(0,
		core.NewVec3(-1, 0, 2),
		core.NewVec3(1, 3, 0),
		core.NewVec3(0, -2, 1),
	)
	box := tri.BoundingBox()
	if box.Min != core.NewVec3(-1, -2, 0) || box.Max != core.NewVec3(1, 3, 2) {
		t.Errorf("unexpected bounding box: %v", box)
	}
}
