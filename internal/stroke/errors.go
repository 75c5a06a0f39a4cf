package stroke

import (
	"errors"
	"fmt"
)

var (
	ErrDegenerateStroke    = errors.New("degenerate stroke")
	ErrShapeLengthMismatch = errors.New("shape length mismatch")
	ErrInvalidOptions      = errors.New("invalid recognizer options")
)

// DegenerateStrokeError is returned by Canonicalize when a stroke has no
// usable extent: fewer than two points, non-finite coordinates, or a bounding
// box of zero width and height.
type DegenerateStrokeError struct {
	Points int
	Reason string
}

func (e *DegenerateStrokeError) Error() string {
	return fmt.Sprintf("degenerate stroke (%d points): %s", e.Points, e.Reason)
}

func (e *DegenerateStrokeError) Is(target error) bool {
	return target == ErrDegenerateStroke
}

// ShapeLengthMismatchError is returned by Score when the two gestures were
// resampled to different point counts.
type ShapeLengthMismatchError struct {
	Left, Right int
}

func (e *ShapeLengthMismatchError) Error() string {
	return fmt.Sprintf("shape length mismatch: %d != %d", e.Left, e.Right)
}

func (e *ShapeLengthMismatchError) Is(target error) bool {
	return target == ErrShapeLengthMismatch
}
