package session

import (
	"fmt"
	"sort"

	"github.com/ThatOtherAndrew/Sketchmatch/internal/logging"
	"github.com/ThatOtherAndrew/Sketchmatch/internal/models"
	"github.com/ThatOtherAndrew/Sketchmatch/internal/shapes"
	"github.com/ThatOtherAndrew/Sketchmatch/internal/stroke"
)

type Ranking struct {
	Shape string  `json:"shape"`
	Score float64 `json:"score"`
}

// Rank scores points against every template, best first. Ties keep the
// template order.
func Rank(r *stroke.Recognizer, points []models.Point, set shapes.Set) ([]Ranking, error) {
	if len(set) == 0 {
		return nil, ErrNoShapes
	}
	if r == nil {
		r = stroke.Default()
	}

	candidate, err := r.Canonicalize(points)
	if err != nil {
		return nil, fmt.Errorf("candidate: %w", err)
	}

	log := logging.Logger()
	rankings := make([]Ranking, 0, len(set))
	for _, shape := range set {
		template, err := r.Canonicalize(shape.Points)
		if err != nil {
			return nil, fmt.Errorf("template %q: %w", shape.Name, err)
		}
		score, err := r.Score(candidate, template)
		if err != nil {
			return nil, fmt.Errorf("template %q: %w", shape.Name, err)
		}
		log.Debug("scored template", "shape", shape.Name, "score", score)
		rankings = append(rankings, Ranking{Shape: shape.Name, Score: score})
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Score > rankings[j].Score
	})
	return rankings, nil
}
