package element

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcross/go-femvis/pkg/core"
)

const interpTolerance = 1e-10

// A mildly distorted hexahedron so the trilinear map is genuinely
// non-affine and the Newton iteration has to work for its answer
func skewedHexVerts() [8]core.Vec3 {
	return [8]core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(1.2, 0.1, 0),
		core.NewVec3(1.3, 1.1, -0.1),
		core.NewVec3(-0.1, 1, 0.1),
		core.NewVec3(0.1, 0, 1),
		core.NewVec3(1.1, -0.1, 1.2),
		core.NewVec3(1.2, 1.2, 1.1),
		core.NewVec3(0, 1.1, 0.9),
	}
}

// hex8Position evaluates the forward trilinear map componentwise
func hex8Position(verts *[8]core.Vec3, local [3]float64) core.Vec3 {
	var xs, ys, zs [8]float64
	for i, v := range verts {
		xs[i], ys[i], zs[i] = v.X, v.Y, v.Z
	}
	return core.NewVec3(
		Hex8SampleAtUnitPoint(local, &xs),
		Hex8SampleAtUnitPoint(local, &ys),
		Hex8SampleAtUnitPoint(local, &zs),
	)
}

func TestHex8_InterpolationProperty(t *testing.T) {
	values := [8]float64{1, -2, 3.5, 0, 7, 2.25, -1.5, 4}

	for i := 0; i < 8; i++ {
		corner := hexSigns[i]
		got := Hex8SampleAtUnitPoint(corner, &values)
		assert.InDelta(t, values[i], got, interpTolerance, "node %d", i)
	}
}

func TestHex8_MapRoundTrip(t *testing.T) {
	verts := skewedHexVerts()

	locals := [][3]float64{
		{0, 0, 0},
		{0.5, -0.5, 0.25},
		{0.9, 0.9, -0.9},
		{-1, 1, 1}, // a corner
		{1, 0, -1}, // an edge midpoint
	}

	for _, want := range locals {
		p := hex8Position(&verts, want)
		got := Hex8MapRealToUnit(&verts, p)
		for axis := 0; axis < 3; axis++ {
			require.InDelta(t, want[axis], got[axis], 1e-8, "local %v axis %d", want, axis)
		}
	}
}

func TestHex8_BestEffortOutsidePoint(t *testing.T) {
	verts := skewedHexVerts()

	// Point well outside the element: the map must still return a
	// finite, out-of-range coordinate rather than fail
	got := Hex8MapRealToUnit(&verts, core.NewVec3(5, 5, 5))
	for axis := 0; axis < 3; axis++ {
		assert.False(t, math.IsNaN(got[axis]), "NaN on axis %d", axis)
	}
	outside := false
	for axis := 0; axis < 3; axis++ {
		if got[axis] < -1 || got[axis] > 1 {
			outside = true
		}
	}
	assert.True(t, outside, "expected at least one out-of-range coordinate for an outside point, got %v", got)
}

func wedgeVerts() [6]core.Vec3 {
	return [6]core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(2, 0, 0),
		core.NewVec3(0, 1.5, 0),
		core.NewVec3(0.1, 0.1, 1),
		core.NewVec3(2.1, 0, 1.2),
		core.NewVec3(0, 1.6, 1.1),
	}
}

// wedgeNodeLocals are the local coordinates of the 6 wedge nodes
var wedgeNodeLocals = [6][3]float64{
	{0, 0, -1}, {1, 0, -1}, {0, 1, -1},
	{0, 0, 1}, {1, 0, 1}, {0, 1, 1},
}

func wedge6Position(verts *[6]core.Vec3, local [3]float64) core.Vec3 {
	var xs, ys, zs [6]float64
	for i, v := range verts {
		xs[i], ys[i], zs[i] = v.X, v.Y, v.Z
	}
	return core.NewVec3(
		Wedge6SampleAtUnitPoint(local, &xs),
		Wedge6SampleAtUnitPoint(local, &ys),
		Wedge6SampleAtUnitPoint(local, &zs),
	)
}

func TestWedge6_InterpolationProperty(t *testing.T) {
	values := [6]float64{3, -1, 0.5, 8, 2, -4.25}

	for i, corner := range wedgeNodeLocals {
		got := Wedge6SampleAtUnitPoint(corner, &values)
		assert.InDelta(t, values[i], got, interpTolerance, "node %d", i)
	}
}

func TestWedge6_MapRoundTrip(t *testing.T) {
	verts := wedgeVerts()

	locals := [][3]float64{
		{1.0 / 3.0, 1.0 / 3.0, 0}, // centroid
		{0.25, 0.5, 0.5},
		{0.05, 0.05, -0.9},
		{0, 0, -1}, // a corner
		{0.5, 0.5, 1},
	}

	for _, want := range locals {
		p := wedge6Position(&verts, want)
		got := Wedge6MapRealToUnit(&verts, p)
		for axis := 0; axis < 3; axis++ {
			require.InDelta(t, want[axis], got[axis], 1e-8, "local %v axis %d", want, axis)
		}
	}
}

func tetVerts() [4]core.Vec3 {
	return [4]core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(2, 0, 0),
		core.NewVec3(0, 3, 0),
		core.NewVec3(0, 0, 1.5),
	}
}

func TestTet4_InterpolationProperty(t *testing.T) {
	values := [4]float64{5, -3, 2.5, 11}
	verts := tetVerts()

	for i := 0; i < 4; i++ {
		local := Tet4MapRealToUnit(&verts, verts[i])
		got := Tet4SampleAtUnitPoint(local, &values)
		assert.InDelta(t, values[i], got, interpTolerance, "node %d", i)
	}
}

func TestTet4_BarycentricSumToOne(t *testing.T) {
	verts := tetVerts()

	points := []core.Vec3{
		core.NewVec3(0.5, 0.5, 0.25),
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 1, 0),
		core.NewVec3(3, 3, 3), // outside: still sums to 1
	}

	for _, p := range points {
		local := Tet4MapRealToUnit(&verts, p)
		sum := local[0] + local[1] + local[2] + local[3]
		require.InDelta(t, 1.0, sum, 1e-12, "point %v", p)
	}
}

func TestTet4_LinearFieldExactness(t *testing.T) {
	// A linear field is reproduced exactly anywhere in the element
	verts := tetVerts()
	field := func(p core.Vec3) float64 { return 2*p.X - p.Y + 0.5*p.Z + 3 }

	var values [4]float64
	for i, v := range verts {
		values[i] = field(v)
	}

	p := core.NewVec3(0.4, 0.6, 0.3)
	local := Tet4MapRealToUnit(&verts, p)
	assert.InDelta(t, field(p), Tet4SampleAtUnitPoint(local, &values), 1e-12)
}

func TestSolve3_Singular(t *testing.T) {
	// Singular systems yield the zero vector instead of NaNs
	got := solve3([3][3]float64{{1, 2, 3}, {2, 4, 6}, {0, 0, 1}}, [3]float64{1, 2, 3})
	assert.Equal(t, [3]float64{}, got)
}
