package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThatOtherAndrew/Sketchmatch/internal/config"
	"github.com/ThatOtherAndrew/Sketchmatch/internal/logging"
	"github.com/ThatOtherAndrew/Sketchmatch/internal/models"
	"github.com/ThatOtherAndrew/Sketchmatch/internal/shapes"
	"github.com/ThatOtherAndrew/Sketchmatch/internal/stroke"
	"github.com/google/uuid"
)

var (
	ErrNoShapes   = errors.New("no shapes loaded")
	ErrNotStarted = errors.New("round not started")
	ErrRoundOver  = errors.New("round is over")
)

// Session is one practice round: the player is shown templates in order and
// earns a point and some extra time for every accepted drawing. Methods are
// safe for concurrent use.
type Session struct {
	ID uuid.UUID

	mu         sync.Mutex
	shapes     shapes.Set
	templates  []*stroke.Gesture
	settings   config.Settings
	recognizer *stroke.Recognizer
	index      int
	score      int
	started    bool
	timer      Timer
}

// New canonicalizes every template up front so a bad template fails here
// rather than mid-round. A nil recognizer uses stroke.Default.
func New(set shapes.Set, settings *config.Settings, r *stroke.Recognizer) (*Session, error) {
	if len(set) == 0 {
		return nil, ErrNoShapes
	}
	if settings == nil {
		settings = config.Defaults()
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if r == nil {
		r = stroke.Default()
	}

	templates := make([]*stroke.Gesture, len(set))
	for i, shape := range set {
		g, err := r.Canonicalize(shape.Points)
		if err != nil {
			return nil, fmt.Errorf("template %q: %w", shape.Name, err)
		}
		templates[i] = g
	}

	s := &Session{
		ID:         uuid.New(),
		shapes:     set,
		templates:  templates,
		settings:   *settings,
		recognizer: r,
	}
	logging.Logger().Info("session created", "session", s.ID, "shapes", len(set))
	return s, nil
}

// Start begins (or restarts) the round from the first template.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.index = 0
	s.score = 0
	s.started = true
	s.timer.Set(seconds(s.settings.RoundSeconds))
	s.timer.Run()
}

func (s *Session) Current() models.Shape {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shapes[s.index]
}

// Next moves to the following template, wrapping after the last.
func (s *Session) Next() models.Shape {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advance()
	return s.shapes[s.index]
}

func (s *Session) advance() {
	s.index = (s.index + 1) % len(s.shapes)
}

func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

func (s *Session) Remaining() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer.Remaining()
}

// Clock returns the countdown formatted as "MM : SS".
func (s *Session) Clock() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer.String()
}

// Tick advances the round timer and reports whether the round just ended.
func (s *Session) Tick(dt time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	expired := s.timer.Tick(dt)
	if expired {
		logging.Logger().Info("round over", "session", s.ID, "score", s.score)
	}
	return expired
}

// Pause and Resume hold the clock while a verdict is on screen.
func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timer.Pause()
}

func (s *Session) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timer.Resume()
}

// Over reports whether a started round has run out of time.
func (s *Session) Over() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.over()
}

func (s *Session) over() bool {
	return s.started && s.timer.Remaining() == 0
}

// Submit judges an attempt against the current template and moves on to the
// next one. A stroke that left the drawing region is rejected without being
// matched. A degenerate stroke yields a rejected verdict and the error.
func (s *Session) Submit(attempt models.Attempt) (models.Verdict, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return models.Verdict{}, ErrNotStarted
	}
	if s.over() {
		return models.Verdict{}, ErrRoundOver
	}

	log := logging.Logger().With("session", s.ID)
	verdict := models.Verdict{Shape: s.shapes[s.index].Name}
	template := s.templates[s.index]
	s.advance()

	if attempt.Outside {
		verdict.Outside = true
		log.Info("attempt left the drawing area", "shape", verdict.Shape)
		return verdict, nil
	}

	candidate, err := s.recognizer.Canonicalize(attempt.Points)
	if err != nil {
		verdict.Err = err
		log.Info("attempt rejected", "shape", verdict.Shape, "err", err)
		return verdict, fmt.Errorf("session %s: %w", s.ID, err)
	}
	score, err := s.recognizer.Score(candidate, template)
	if err != nil {
		verdict.Err = err
		return verdict, fmt.Errorf("session %s: %w", s.ID, err)
	}

	verdict.Score = score
	verdict.Accepted = score > s.settings.MatchThreshold
	if verdict.Accepted {
		s.score++
		s.timer.Add(s.bonus())
	}
	log.Info("attempt judged", "shape", verdict.Shape, "score", score, "accepted", verdict.Accepted, "total", s.score)
	return verdict, nil
}

// bonus is the extra time earned by the latest success; it shrinks as the
// score grows and never goes negative.
func (s *Session) bonus() time.Duration {
	extra := s.settings.BonusSeconds - float64(s.score)*s.settings.BonusDecaySeconds
	return seconds(max(extra, 0))
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}
