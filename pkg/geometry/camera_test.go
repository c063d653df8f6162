package geometry

import (
	"math"
	"testing"

	"github.com/dcross/go-femvis/pkg/core"
)

func defaultTestCamera() *Camera {
	return NewCamera(CameraConfig{
		Center:      core.NewVec3(0, 0, 5),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40,
		AspectRatio: 16.0 / 9.0,
	})
}

func TestCameraCenterRay(t *testing.T) {
	camera := defaultTestCamera()

	// The center of the viewport looks straight at the target
	ray := camera.GetRay(0.5, 0.5)
	if ray.Origin != core.NewVec3(0, 0, 5) {
		t.Errorf("expected origin at camera center, got %v", ray.Origin)
	}

	dir := ray.Direction.Normalize()
	want := core.NewVec3(0, 0, -1)
	if dir.Subtract(want).Length() > 1e-12 {
		t.Errorf("expected center ray direction %v, got %v", want, dir)
	}
}

func TestCameraViewportOrientation(t *testing.T) {
	camera := defaultTestCamera()

	left := camera.GetRay(0, 0.5).Direction
	right := camera.GetRay(1, 0.5).Direction
	bottom := camera.GetRay(0.5, 0).Direction
	top := camera.GetRay(0.5, 1).Direction

	// Looking down -z with +y up: s grows to the right (-x for this
	// basis is at s=0), t grows upward
	if !(left.X < right.X) {
		t.Errorf("expected s to increase along +x, got left.X=%v right.X=%v", left.X, right.X)
	}
	if !(bottom.Y < top.Y) {
		t.Errorf("expected t to increase along +y, got bottom.Y=%v top.Y=%v", bottom.Y, top.Y)
	}

	// Symmetric viewport: opposite edges mirror around the center
	if math.Abs(left.X+right.X) > 1e-12 {
		t.Errorf("expected horizontal symmetry, got left.X=%v right.X=%v", left.X, right.X)
	}
	if math.Abs(bottom.Y+top.Y) > 1e-12 {
		t.Errorf("expected vertical symmetry, got bottom.Y=%v top.Y=%v", bottom.Y, top.Y)
	}
}

func TestCameraFieldOfView(t *testing.T) {
	vfov := 60.0
	camera := NewCamera(CameraConfig{
		Center:      core.NewVec3(0, 0, 1),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        vfov,
		AspectRatio: 1,
	})

	// Vertical half-angle between the center ray and the top-edge ray
	center := camera.GetRay(0.5, 0.5).Direction.Normalize()
	top := camera.GetRay(0.5, 1).Direction.Normalize()
	halfAngle := math.Acos(center.Dot(top)) * 180 / math.Pi

	if math.Abs(halfAngle-vfov/2) > 1e-9 {
		t.Errorf("expected half-angle %v, got %v", vfov/2, halfAngle)
	}
}
