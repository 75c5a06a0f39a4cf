package session

import (
	"context"

	"github.com/ThatOtherAndrew/Sketchmatch/internal/models"
)

// Judge submits attempts as they arrive and emits one verdict per attempt.
// Errors travel in Verdict.Err. The returned channel is closed once attempts
// is closed or ctx is done.
func (s *Session) Judge(ctx context.Context, attempts <-chan models.Attempt) <-chan models.Verdict {
	out := make(chan models.Verdict)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case attempt, ok := <-attempts:
				if !ok {
					return
				}
				verdict, err := s.Submit(attempt)
				if err != nil {
					verdict.Err = err
				}
				select {
				case out <- verdict:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
