package stroke

import (
	"math"

	"github.com/ThatOtherAndrew/Sketchmatch/internal/models"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Gesture is a stroke in canonical form: unit scale, centroid at the origin,
// resampled to a fixed number of equally spaced points.
type Gesture struct {
	points []models.Point
}

// Len returns the number of points. A nil gesture has none.
func (g *Gesture) Len() int {
	if g == nil {
		return 0
	}
	return len(g.points)
}

func (g *Gesture) At(i int) models.Point {
	return g.points[i]
}

// Points returns a copy of the canonical points.
func (g *Gesture) Points() []models.Point {
	if g == nil {
		return nil
	}
	out := make([]models.Point, len(g.points))
	copy(out, g.points)
	return out
}

// Canonicalize scales, centres and resamples points. The input is not
// modified. Strokes whose bounding box has zero width and height are rejected
// with a DegenerateStrokeError rather than divided by zero.
func (r *Recognizer) Canonicalize(points []models.Point) (*Gesture, error) {
	if len(points) < 2 {
		return nil, &DegenerateStrokeError{Points: len(points), Reason: "need at least 2 points"}
	}
	xs, ys := split(points)
	for i := range xs {
		if !isFinite(xs[i]) || !isFinite(ys[i]) {
			return nil, &DegenerateStrokeError{Points: len(points), Reason: "non-finite coordinate"}
		}
	}

	// Step 1
	if !normalizeScale(xs, ys) {
		return nil, &DegenerateStrokeError{Points: len(points), Reason: "zero-extent bounding box"}
	}
	// Step 2
	translateToOrigin(xs, ys)
	// Step 3
	return &Gesture{points: resample(join(xs, ys), r.numPoints)}, nil
}

// Step 1

// normalizeScale maps the bounding box so its larger side spans 1 without
// changing the aspect ratio. It reports false when the box is a single point.
func normalizeScale(xs, ys []float64) bool {
	minX, maxX := floats.Min(xs), floats.Max(xs)
	minY, maxY := floats.Min(ys), floats.Max(ys)
	scale := math.Max(maxX-minX, maxY-minY)
	if scale == 0 || !isFinite(scale) {
		return false
	}
	floats.AddConst(-minX, xs)
	floats.AddConst(-minY, ys)
	floats.Scale(1/scale, xs)
	floats.Scale(1/scale, ys)
	return true
}

// Step 2

func translateToOrigin(xs, ys []float64) {
	c := centroid(xs, ys)
	floats.AddConst(-c.X, xs)
	floats.AddConst(-c.Y, ys)
}

func centroid(xs, ys []float64) models.Point {
	return models.Point{X: stat.Mean(xs, nil), Y: stat.Mean(ys, nil)}
}

// Step 3

// resample walks the polyline and emits n points spaced pathLength/(n-1)
// apart. A long segment can emit several points; leftover length carries into
// the next segment.
func resample(points []models.Point, n int) []models.Point {
	interval := pathLength(points) / float64(n-1)
	newPoints := make([]models.Point, 1, n)
	newPoints[0] = points[0]

	D := 0.0
	for i := 1; i < len(points) && len(newPoints) < n; i++ {
		d := distance(points[i-1], points[i])
		if d == 0 {
			continue
		}
		if D+d < interval {
			D += d
			continue
		}
		from := points[i-1]
		for D+d >= interval && len(newPoints) < n {
			t := math.Min(math.Max((interval-D)/d, 0), 1)
			if math.IsNaN(t) {
				t = 0.5
			}
			q := models.Point{
				X: (1-t)*from.X + t*points[i].X,
				Y: (1-t)*from.Y + t*points[i].Y,
			}
			newPoints = append(newPoints, q)
			d = D + d - interval
			D = 0
			from = q
		}
		D = d
	}

	// Rounding can leave the walk one interval short of the end.
	last := points[len(points)-1]
	for len(newPoints) < n {
		newPoints = append(newPoints, last)
	}
	return newPoints
}

func pathLength(points []models.Point) float64 {
	d := 0.0
	for i := 1; i < len(points); i++ {
		d += distance(points[i-1], points[i])
	}
	return d
}

func distance(a, b models.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func squaredDistance(a, b models.Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

func split(points []models.Point) (xs, ys []float64) {
	xs = make([]float64, len(points))
	ys = make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
	}
	return xs, ys
}

func join(xs, ys []float64) []models.Point {
	points := make([]models.Point, len(xs))
	for i := range xs {
		points[i] = models.Point{X: xs[i], Y: ys[i]}
	}
	return points
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
