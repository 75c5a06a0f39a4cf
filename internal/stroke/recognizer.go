// Package stroke recognises single-stroke drawings. Canonicalize turns a raw
// point path into a fixed-length gesture that no longer depends on where or
// how large the stroke was drawn; Score compares two gestures regardless of
// where along the path each one started.
package stroke

import (
	"fmt"

	"github.com/ThatOtherAndrew/Sketchmatch/internal/models"
)

const (
	// DefaultNumPoints is the number of points every gesture is resampled to.
	DefaultNumPoints = 64
	// DefaultEpsilon controls how many start offsets the matcher tries:
	// step = floor(n^(1-eps)).
	DefaultEpsilon = 0.5
	// DefaultDistanceCeiling is the elastic distance that maps to a score of 0.
	DefaultDistanceCeiling = 2.0
)

type Options struct {
	NumPoints       int
	Epsilon         float64
	DistanceCeiling float64
}

// Recognizer holds the tuning constants. It is immutable and safe for
// concurrent use.
type Recognizer struct {
	numPoints int
	epsilon   float64
	ceiling   float64
}

var defaultRecognizer = &Recognizer{
	numPoints: DefaultNumPoints,
	epsilon:   DefaultEpsilon,
	ceiling:   DefaultDistanceCeiling,
}

// New builds a Recognizer. Zero fields take their defaults.
func New(opts Options) (*Recognizer, error) {
	r := *defaultRecognizer
	if opts.NumPoints != 0 {
		if opts.NumPoints < 2 {
			return nil, fmt.Errorf("%w: num points must be at least 2, got %d", ErrInvalidOptions, opts.NumPoints)
		}
		r.numPoints = opts.NumPoints
	}
	if opts.Epsilon != 0 {
		if opts.Epsilon < 0 || opts.Epsilon > 1 {
			return nil, fmt.Errorf("%w: epsilon must be in [0, 1], got %v", ErrInvalidOptions, opts.Epsilon)
		}
		r.epsilon = opts.Epsilon
	}
	if opts.DistanceCeiling != 0 {
		if opts.DistanceCeiling < 0 {
			return nil, fmt.Errorf("%w: distance ceiling must be positive, got %v", ErrInvalidOptions, opts.DistanceCeiling)
		}
		r.ceiling = opts.DistanceCeiling
	}
	return &r, nil
}

// Default returns the recognizer used by the package-level functions.
func Default() *Recognizer {
	return defaultRecognizer
}

func (r *Recognizer) NumPoints() int { return r.numPoints }

// Canonicalize normalises points using the default recognizer.
func Canonicalize(points []models.Point) (*Gesture, error) {
	return defaultRecognizer.Canonicalize(points)
}

// Score compares two gestures using the default recognizer.
func Score(a, b *Gesture) (float64, error) {
	return defaultRecognizer.Score(a, b)
}

// Match canonicalizes both strokes and scores them.
func (r *Recognizer) Match(candidate, template []models.Point) (float64, error) {
	c, err := r.Canonicalize(candidate)
	if err != nil {
		return 0, fmt.Errorf("candidate: %w", err)
	}
	t, err := r.Canonicalize(template)
	if err != nil {
		return 0, fmt.Errorf("template: %w", err)
	}
	return r.Score(c, t)
}
