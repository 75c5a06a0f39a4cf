package stroke

import (
	"math"

	"github.com/ThatOtherAndrew/Sketchmatch/internal/models"
)

// Score returns the similarity of two gestures in [0, 1]. Both directions are
// matched from a subsample of start offsets and the smallest elastic distance
// wins, so the result does not depend on argument order or on where along
// the outline either stroke began.
func (r *Recognizer) Score(a, b *Gesture) (float64, error) {
	n := a.Len()
	if n == 0 || n != b.Len() {
		return 0, &ShapeLengthMismatchError{Left: n, Right: b.Len()}
	}

	step := int(math.Floor(math.Pow(float64(n), 1-r.epsilon)))
	if step < 1 {
		step = 1
	}

	minDistance := math.Inf(1)
	for i := 0; i < n; i += step {
		d1 := elasticDistance(a.points, b.points, i)
		d2 := elasticDistance(b.points, a.points, i)
		minDistance = math.Min(minDistance, math.Min(d1, d2))
	}
	return r.remap(minDistance), nil
}

// remap turns an elastic distance into a score: 0 maps to 1 and anything at
// or beyond the ceiling maps to 0.
func (r *Recognizer) remap(d float64) float64 {
	score := (d - r.ceiling) / -r.ceiling
	if math.IsNaN(score) || score < 0 {
		return 0
	}
	return math.Min(score, 1)
}

// elasticDistance greedily pairs every source point, walking cyclically from
// start, with the nearest target point not yet taken. Earlier pairs weigh
// more: the first has weight 1 and the last 1/n.
func elasticDistance(source, target []models.Point, start int) float64 {
	n := len(source)
	matched := make([]bool, n)

	sum := 0.0
	i := start
	for {
		index := -1
		minDistance := math.Inf(1)
		for j := range target {
			if matched[j] {
				continue
			}
			if d := squaredDistance(source[i], target[j]); d < minDistance {
				minDistance = d
				index = j
			}
		}
		matched[index] = true

		weight := 1 - float64((i-start+n)%n)/float64(n)
		sum += weight * minDistance

		i = (i + 1) % n
		if i == start {
			break
		}
	}
	return sum
}
