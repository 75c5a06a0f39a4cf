package stroke

import (
	"errors"
	"math"
	"testing"

	"github.com/ThatOtherAndrew/Sketchmatch/internal/models"
	"github.com/ThatOtherAndrew/Sketchmatch/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var approx = cmpopts.EquateApprox(0, testutil.DefaultTolerance)

func mustCanonicalize(t *testing.T, points []models.Point) *Gesture {
	t.Helper()
	g, err := Canonicalize(points)
	require.NoError(t, err)
	return g
}

func TestCanonicalize_FixedLength(t *testing.T) {
	tests := []struct {
		name   string
		points []models.Point
	}{
		{"two_points", []models.Point{{X: 0, Y: 0}, {X: 3, Y: 4}}},
		{"ten_points", testutil.Circle(10, 5)},
		{"thousand_points", testutil.Circle(1000, 250)},
		{"square_corners", testutil.UnitSquare()},
		{"traced_square", testutil.Trace(testutil.UnitSquare(), 0, 50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustCanonicalize(t, tt.points)
			assert.Equal(t, DefaultNumPoints, g.Len())
			testutil.AssertFinitePoints(t, g.Points())
		})
	}
}

func TestCanonicalize_ScaleInvariance(t *testing.T) {
	base := testutil.Trace(testutil.Triangle(), 0, 7)
	want := mustCanonicalize(t, base).Points()

	for _, k := range []float64{0.01, 0.5, 3, 3.7, 1000} {
		got := mustCanonicalize(t, testutil.Transform(base, k, 0, 0)).Points()
		if diff := cmp.Diff(want, got, approx); diff != "" {
			t.Errorf("scale %v changed canonical form (-want +got):\n%s", k, diff)
		}
	}
}

func TestCanonicalize_TranslationInvariance(t *testing.T) {
	base := testutil.Circle(37, 1)
	want := mustCanonicalize(t, base).Points()

	offsets := [][2]float64{{5, 5}, {-120, 40}, {0.25, -3}}
	for _, off := range offsets {
		got := mustCanonicalize(t, testutil.Transform(base, 1, off[0], off[1])).Points()
		if diff := cmp.Diff(want, got, approx); diff != "" {
			t.Errorf("offset %v changed canonical form (-want +got):\n%s", off, diff)
		}
	}
}

func TestCanonicalize_StraightLineIsEvenlySpaced(t *testing.T) {
	g := mustCanonicalize(t, []models.Point{{X: 0, Y: 0}, {X: 10, Y: 0}})
	points := g.Points()

	assert.InDelta(t, -0.5, points[0].X, testutil.DefaultTolerance)
	assert.InDelta(t, 0.5, points[len(points)-1].X, testutil.DefaultTolerance)
	want := 1.0 / float64(DefaultNumPoints-1)
	for i := 1; i < len(points); i++ {
		assert.InDelta(t, want, points[i].X-points[i-1].X, testutil.DefaultTolerance, "gap %d", i)
		assert.InDelta(t, 0, points[i].Y, testutil.DefaultTolerance)
	}
}

func TestCanonicalize_PreservesAspectRatio(t *testing.T) {
	// 4 wide, 1 tall: x spans 1 after scaling, y spans a quarter.
	g := mustCanonicalize(t, []models.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 1}})
	var minX, maxX, minY, maxY float64
	for _, p := range g.Points() {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	assert.InDelta(t, 1.0, maxX-minX, 1e-6)
	assert.InDelta(t, 0.25, maxY-minY, 1e-6)
}

func TestCanonicalize_SkipsRepeatedPoints(t *testing.T) {
	plain := []models.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}
	repeated := []models.Point{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}

	g := mustCanonicalize(t, repeated)
	assert.Equal(t, DefaultNumPoints, g.Len())
	testutil.AssertFinitePoints(t, g.Points())

	// Duplicates shift the centroid but not the spacing along the path.
	a, b := mustCanonicalize(t, plain).Points(), g.Points()
	for i := 1; i < len(a); i++ {
		assert.InDelta(t, distance(a[i-1], a[i]), distance(b[i-1], b[i]), 1e-9)
	}
}

func TestCanonicalize_DoesNotModifyInput(t *testing.T) {
	points := testutil.Trace(testutil.UnitSquare(), 1, 5)
	orig := append([]models.Point(nil), points...)

	_ = mustCanonicalize(t, points)
	assert.Equal(t, orig, points)
}

func TestCanonicalize_Degenerate(t *testing.T) {
	tests := []struct {
		name   string
		points []models.Point
	}{
		{"empty", nil},
		{"single_point", []models.Point{{X: 1, Y: 1}}},
		{"identical_points", []models.Point{{X: 2, Y: 3}, {X: 2, Y: 3}, {X: 2, Y: 3}}},
		{"nan", []models.Point{{X: 0, Y: 0}, {X: math.NaN(), Y: 1}}},
		{"inf", []models.Point{{X: 0, Y: 0}, {X: 1, Y: math.Inf(1)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Canonicalize(tt.points)
			require.Error(t, err)
			assert.Nil(t, g)
			assert.ErrorIs(t, err, ErrDegenerateStroke)

			var degenerate *DegenerateStrokeError
			require.True(t, errors.As(err, &degenerate))
			assert.Equal(t, len(tt.points), degenerate.Points)
		})
	}
}

func TestCanonicalize_AxisAlignedLineIsNotDegenerate(t *testing.T) {
	g, err := Canonicalize([]models.Point{{X: 1, Y: 7}, {X: 1, Y: 9}, {X: 1, Y: 12}})
	require.NoError(t, err)
	for _, p := range g.Points() {
		assert.InDelta(t, 0, p.X, testutil.DefaultTolerance)
	}
}

func TestResample_ClampsFractionWithinSegment(t *testing.T) {
	points := []models.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}
	out := resample(points, 5)

	require.Len(t, out, 5)
	want := []models.Point{{X: 0, Y: 0}, {X: 0.5, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 0.5}, {X: 1, Y: 1}}
	if diff := cmp.Diff(want, out, approx); diff != "" {
		t.Errorf("resample (-want +got):\n%s", diff)
	}
}

func TestGesture_PointsIsACopy(t *testing.T) {
	g := mustCanonicalize(t, testutil.UnitSquare())
	points := g.Points()
	points[0] = models.Point{X: 99, Y: 99}
	assert.NotEqual(t, points[0], g.At(0))

	var nilGesture *Gesture
	assert.Equal(t, 0, nilGesture.Len())
	assert.Nil(t, nilGesture.Points())
}
