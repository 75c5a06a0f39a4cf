package capture

import (
	"github.com/ThatOtherAndrew/Sketchmatch/internal/models"
)

const (
	DefaultMinDistance = 2
	DefaultMaxPoints   = 2048
)

// Region is the drawing area. The zero Region is unbounded.
type Region struct {
	MinX, MinY, MaxX, MaxY float64
}

func (r Region) IsZero() bool {
	return r == Region{}
}

func (r Region) Contains(x, y float64) bool {
	if r.IsZero() {
		return true
	}
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

type Options struct {
	// MinDistance is how far the pointer must move before another sample is
	// kept.
	MinDistance float64
	MaxPoints   int
}

// Stroke collects the samples of one pointer drag.
type Stroke struct {
	region  Region
	minDist float64
	max     int
	points  []models.Point
	outside bool
}

func NewStroke(region Region, opts Options) *Stroke {
	if opts.MinDistance <= 0 {
		opts.MinDistance = DefaultMinDistance
	}
	if opts.MaxPoints < 2 {
		opts.MaxPoints = DefaultMaxPoints
	}
	return &Stroke{region: region, minDist: opts.MinDistance, max: opts.MaxPoints}
}

// Add records a pointer sample. It reports whether the sample was kept.
// Leaving the region marks the stroke as outside for good.
func (s *Stroke) Add(x, y float64) bool {
	if !s.region.Contains(x, y) {
		s.outside = true
		return false
	}

	newPoint := models.Point{X: x, Y: y}
	if len(s.points) > 0 {
		lastPoint := s.points[len(s.points)-1]
		dx := newPoint.X - lastPoint.X
		dy := newPoint.Y - lastPoint.Y
		if dx*dx+dy*dy <= s.minDist*s.minDist {
			return false
		}
	}

	s.points = append(s.points, newPoint)
	if len(s.points) > s.max {
		s.points = s.points[len(s.points)-s.max:]
	}
	return true
}

func (s *Stroke) Points() []models.Point {
	out := make([]models.Point, len(s.points))
	copy(out, s.points)
	return out
}

func (s *Stroke) Len() int { return len(s.points) }

func (s *Stroke) Outside() bool { return s.outside }

// Attempt packages the finished stroke for judging.
func (s *Stroke) Attempt() models.Attempt {
	return models.Attempt{Points: s.Points(), Outside: s.outside}
}

func (s *Stroke) Reset() {
	s.points = s.points[:0]
	s.outside = false
}
