/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/spano
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package warp

/*****************************************************************************************************************/

import (
	"errors"
	"math"
	"testing"
)

/*****************************************************************************************************************/

func almostEqual(a, b, tolerance float32) bool {
	return math.Abs(float64(a-b)) <= float64(tolerance)
}

/*****************************************************************************************************************/

func TestFromParamsInvalidLength(t *testing.T) {
	for _, n := range []int{1, 3, 4, 5, 7, 9} {
		_, err := FromParams(make([]float32, n))
		if !errors.Is(err, ErrInvalidParameterCount) {
			t.Errorf("FromParams(len=%d) error = %v; want ErrInvalidParameterCount", n, err)
		}
	}
}

/*****************************************************************************************************************/

func TestFromParamsIdentity(t *testing.T) {
	m, err := FromParams(nil)
	if err != nil {
		t.Fatalf("FromParams(nil) returned unexpected error: %v", err)
	}

	if m.Kind != Identity {
		t.Errorf("FromParams(nil).Kind = %v; want Identity", m.Kind)
	}

	if m.Mat != identityMatrix3() {
		t.Errorf("FromParams(nil).Mat = %v; want identity", m.Mat)
	}
}

/*****************************************************************************************************************/

func TestGetParamsRoundTrip(t *testing.T) {
	cases := [][]float32{
		{5, -3},
		{0.1, -0.2, 0.3, -0.4, 0.5, -0.6},
		{0.1, -0.2, 0.3, -0.4, 0.5, -0.6, 0.01, -0.02},
	}

	for _, params := range cases {
		m, err := FromParams(params)
		if err != nil {
			t.Fatalf("FromParams(%v) returned unexpected error: %v", params, err)
		}

		got := m.GetParams()
		if len(got) != len(params) {
			t.Fatalf("GetParams() returned %d params; want %d", len(got), len(params))
		}

		for i := range params {
			if !almostEqual(got[i], params[i], 1e-5) {
				t.Errorf("GetParams()[%d] = %v; want %v", i, got[i], params[i])
			}
		}
	}
}

/*****************************************************************************************************************/

func TestWarpPointsProjective(t *testing.T) {
	m := FromMatrix(Matrix3{
		{1.13411823, 4.38092511, 9.315785},
		{1.37351153, 5.27648111, 1.60252762},
		{7.76114426, 9.66312177, 2.61286966},
	}, Projective)

	warped := WarpPoints(m, [][2]int{{0, 0}})

	wantX, wantY := float32(3.56534624), float32(0.61332092)

	if !almostEqual(warped[0][0], wantX, 1e-5) || !almostEqual(warped[0][1], wantY, 1e-5) {
		t.Errorf("WarpPoints((0,0)) = %v; want (%v, %v)", warped[0], wantX, wantY)
	}
}

/*****************************************************************************************************************/

func TestWarpPointsIdentityFastPath(t *testing.T) {
	m := NewIdentity()

	points := [][2]float64{{1.5, -2.5}, {100, 200}}
	warped := WarpPoints(m, points)

	for i, p := range points {
		if !almostEqual(warped[i][0], float32(p[0]), 1e-9) || !almostEqual(warped[i][1], float32(p[1]), 1e-9) {
			t.Errorf("WarpPoints(identity)[%d] = %v; want %v", i, warped[i], p)
		}
	}
}

/*****************************************************************************************************************/

func TestTransformWithAbsentOperandsIsIdentical(t *testing.T) {
	m, _ := FromParams([]float32{0.1, -0.2, 0.3, -0.4, 0.5, -0.6, 0.01, -0.02})

	composed := m.Transform(nil, nil)

	if composed.Mat != m.Mat {
		t.Errorf("Transform(nil, nil).Mat = %v; want %v", composed.Mat, m.Mat)
	}

	if composed.Kind != m.Kind {
		t.Errorf("Transform(nil, nil).Kind = %v; want %v", composed.Kind, m.Kind)
	}
}

/*****************************************************************************************************************/

func TestInverseRoundTrip(t *testing.T) {
	m, _ := FromParams([]float32{0.1, -0.2, 0.3, -0.4, 0.5, -0.6, 0.01, -0.02})

	inv, err := m.Inverse()
	if err != nil {
		t.Fatalf("Inverse() returned unexpected error: %v", err)
	}

	roundTripped, err := inv.Inverse()
	if err != nil {
		t.Fatalf("Inverse().Inverse() returned unexpected error: %v", err)
	}

	points := [][2]float64{{0, 0}, {10, 20}, {-5, 7}}

	original := WarpPoints(m, points)
	doubled := WarpPoints(roundTripped, points)

	for i := range points {
		if !almostEqual(original[i][0], doubled[i][0], 1e-3) || !almostEqual(original[i][1], doubled[i][1], 1e-3) {
			t.Errorf("round-tripped inverse mismatch at %d: %v vs %v", i, original[i], doubled[i])
		}
	}
}

/*****************************************************************************************************************/

func TestInverseUndoesWarp(t *testing.T) {
	m, _ := FromParams([]float32{0.05, -0.1, 0.2, -0.05, 3, -4, 0.001, -0.002})

	inv, err := m.Inverse()
	if err != nil {
		t.Fatalf("Inverse() returned unexpected error: %v", err)
	}

	points := [][2]float64{{0, 0}, {12, 34}, {-8, 2}}

	forward := WarpPoints(m, points)
	back := WarpPoints(inv, forward)

	for i, p := range points {
		if !almostEqual(back[i][0], float32(p[0]), 1e-3) || !almostEqual(back[i][1], float32(p[1]), 1e-3) {
			t.Errorf("inverse did not undo warp at %d: got %v, want %v", i, back[i], p)
		}
	}
}

/*****************************************************************************************************************/

func TestInverseSingularMatrix(t *testing.T) {
	m := FromMatrix(Matrix3{
		{0, 0, 0},
		{0, 0, 0},
		{0, 0, 0},
	}, Affine)

	_, err := m.Inverse()
	if !errors.Is(err, ErrSingularMatrix) {
		t.Errorf("Inverse() error = %v; want ErrSingularMatrix", err)
	}
}

/*****************************************************************************************************************/

func TestRescalePreservesKindAndWarpsConsistently(t *testing.T) {
	m := Shift(5, 10)

	rescaled := m.Rescale(2)

	if rescaled.Kind != Translational {
		t.Errorf("Rescale().Kind = %v; want Translational", rescaled.Kind)
	}

	warped := WarpPoints(rescaled, [][2]int{{0, 0}})

	if !almostEqual(warped[0][0], 10, 1e-4) || !almostEqual(warped[0][1], 20, 1e-4) {
		t.Errorf("Rescale(2) warped (0,0) = %v; want (10, 20)", warped[0])
	}
}

/*****************************************************************************************************************/

func TestMaximumExtentBroadcastsShorterList(t *testing.T) {
	shift := Shift(10, 20)

	sizes := [][2]int{{100, 50}, {200, 30}}

	extent, offset, err := MaximumExtent([]Mapping{shift}, sizes)
	if err != nil {
		t.Fatalf("MaximumExtent returned unexpected error: %v", err)
	}

	// Corners applies the inverse mapping, so both source rectangles are shifted by
	// (-10, -20); the offset mapping should report the minimum corner of their union,
	// i.e. (-10, -20), and the extent should cover the wider (200) and taller (50) of
	// the two rectangles.
	params := offset.GetParams()

	if !almostEqual(params[0], -10, 1e-4) || !almostEqual(params[1], -20, 1e-4) {
		t.Errorf("MaximumExtent offset params = %v; want (-10, -20)", params)
	}

	if !almostEqual(extent[0], 200, 1e-3) || !almostEqual(extent[1], 50, 1e-3) {
		t.Errorf("MaximumExtent extent = %v; want (200, 50)", extent)
	}
}

/*****************************************************************************************************************/

func TestAccumulateEmptyReturnsIdentityOnly(t *testing.T) {
	out := Accumulate(nil)

	if len(out) != 1 {
		t.Fatalf("Accumulate(nil) has length %d; want 1", len(out))
	}

	if out[0].Mat != identityMatrix3() {
		t.Errorf("Accumulate(nil)[0] = %v; want identity", out[0].Mat)
	}
}

/*****************************************************************************************************************/

func TestAccumulateComposesLeftToRight(t *testing.T) {
	m1 := Shift(1, 2)
	m2 := Shift(3, 4)

	out := Accumulate([]Mapping{m1, m2})

	if len(out) != 3 {
		t.Fatalf("Accumulate() has length %d; want 3", len(out))
	}

	if out[0].Mat != identityMatrix3() {
		t.Errorf("Accumulate()[0] = %v; want identity", out[0].Mat)
	}

	warped := WarpPoints(out[2], [][2]int{{0, 0}})
	if !almostEqual(warped[0][0], 4, 1e-4) || !almostEqual(warped[0][1], 6, 1e-4) {
		t.Errorf("Accumulate()[2] warped (0,0) = %v; want (4, 6)", warped[0])
	}
}

/*****************************************************************************************************************/

func TestInterpolateScalarLinearFallback(t *testing.T) {
	ts := []float32{0, 1}
	maps := []Mapping{NewIdentity(), Shift(10, 20)}

	m, err := InterpolateScalar(ts, maps, 0.5)
	if err != nil {
		t.Fatalf("InterpolateScalar returned unexpected error: %v", err)
	}

	warped := WarpPoints(m, [][2]int{{0, 0}})
	if !almostEqual(warped[0][0], 5, 1e-4) || !almostEqual(warped[0][1], 10, 1e-4) {
		t.Errorf("InterpolateScalar(0.5) warped (0,0) = %v; want (5, 10)", warped[0])
	}
}

/*****************************************************************************************************************/

func TestInterpolateScalarCubicHitsKnots(t *testing.T) {
	ts := []float32{0, 1, 2, 3}
	maps := []Mapping{
		Shift(0, 0),
		Shift(10, 0),
		Shift(10, 10),
		Shift(0, 10),
	}

	for i, knot := range ts {
		m, err := InterpolateScalar(ts, maps, knot)
		if err != nil {
			t.Fatalf("InterpolateScalar(%v) returned unexpected error: %v", knot, err)
		}

		want := maps[i].GetParamsFull()
		got := m.GetParamsFull()

		for j := range want {
			if !almostEqual(got[j], want[j], 1e-3) {
				t.Errorf("InterpolateScalar at knot %v, param %d = %v; want %v", knot, j, got[j], want[j])
			}
		}
	}
}

/*****************************************************************************************************************/

func TestInterpolateArrayRequiresAtLeastTwoKnots(t *testing.T) {
	_, err := InterpolateArray([]float32{0}, []Mapping{NewIdentity()}, []float32{0})
	if !errors.Is(err, ErrInterpolationDomainError) {
		t.Errorf("InterpolateArray with 1 knot error = %v; want ErrInterpolationDomainError", err)
	}
}

/*****************************************************************************************************************/

func TestInterpolateArrayRequiresMonotonicKnots(t *testing.T) {
	ts := []float32{0, 0.5, 0.25}
	maps := []Mapping{NewIdentity(), Shift(1, 1), Shift(2, 2)}

	_, err := InterpolateArray(ts, maps, []float32{0.1})
	if !errors.Is(err, ErrInterpolationDomainError) {
		t.Errorf("InterpolateArray with non-monotonic knots error = %v; want ErrInterpolationDomainError", err)
	}
}

/*****************************************************************************************************************/

func TestWithRespectToNormalizesReferenceToIdentity(t *testing.T) {
	m1 := Shift(1, 1)
	m2 := Shift(3, 3)

	out, err := WithRespectTo([]Mapping{m1, m2}, m1)
	if err != nil {
		t.Fatalf("WithRespectTo returned unexpected error: %v", err)
	}

	warped := WarpPoints(out[0], [][2]int{{0, 0}})
	if !almostEqual(warped[0][0], 0, 1e-4) || !almostEqual(warped[0][1], 0, 1e-4) {
		t.Errorf("WithRespectTo(wrt=m1)[0] warped (0,0) = %v; want (0, 0)", warped[0])
	}
}

/*****************************************************************************************************************/
