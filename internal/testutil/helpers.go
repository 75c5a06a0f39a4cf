// Package testutil provides stroke fixtures and assertions shared by the
// sketchmatch tests.
package testutil

import (
	"math"
	"testing"

	"github.com/ThatOtherAndrew/Sketchmatch/internal/models"
	"github.com/stretchr/testify/assert"
)

// Tolerances used across packages.
const (
	DefaultTolerance = 1e-9
	ScoreTolerance   = 1e-9
)

// UnitSquare is the corner outline of the bundled square template.
func UnitSquare() []models.Point {
	return []models.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
}

func Triangle() []models.Point {
	return []models.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0.5, Y: 1}}
}

// Trace densifies a closed outline the way a pointer would record it: each
// edge is split into perEdge samples, starting at corner start and finishing
// back on it.
func Trace(corners []models.Point, start, perEdge int) []models.Point {
	n := len(corners)
	out := make([]models.Point, 0, n*perEdge+1)
	for e := 0; e < n; e++ {
		a := corners[(start+e)%n]
		b := corners[(start+e+1)%n]
		for k := 0; k < perEdge; k++ {
			t := float64(k) / float64(perEdge)
			out = append(out, models.Point{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)})
		}
	}
	return append(out, corners[start%n])
}

// Transform scales then translates every point.
func Transform(points []models.Point, k, dx, dy float64) []models.Point {
	out := make([]models.Point, len(points))
	for i, p := range points {
		out[i] = models.Point{X: p.X*k + dx, Y: p.Y*k + dy}
	}
	return out
}

// Circle samples n points around a circle, useful for long inputs.
func Circle(n int, radius float64) []models.Point {
	out := make([]models.Point, n)
	for i := range out {
		a := 2 * math.Pi * float64(i) / float64(n)
		out[i] = models.Point{X: radius * math.Cos(a), Y: radius * math.Sin(a)}
	}
	return out
}

// AssertFinitePoints fails if any coordinate is NaN or infinite.
func AssertFinitePoints(t *testing.T, points []models.Point) bool {
	t.Helper()
	for i, p := range points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return assert.Fail(t, "non-finite point", "points[%d] = %+v", i, p)
		}
	}
	return true
}

// AssertScore checks that a score lies in [0, 1] and is not NaN.
func AssertScore(t *testing.T, score float64) bool {
	t.Helper()
	if math.IsNaN(score) {
		return assert.Fail(t, "score is NaN")
	}
	return assert.GreaterOrEqual(t, score, 0.0) && assert.LessOrEqual(t, score, 1.0)
}
