package jobs

import (
	"context"
	"time"

	"hackswipe/internal/middleware"
	"hackswipe/internal/repository"
)

// SessionSweeper deletes sessions whose expiry has passed.
type SessionSweeper struct {
	sessions repository.SessionRepository
	now      func() time.Time
}

func NewSessionSweeper(sessions repository.SessionRepository) *SessionSweeper {
	return &SessionSweeper{sessions: sessions, now: time.Now}
}

func (s *SessionSweeper) Name() string { return "session_sweeper" }

func (s *SessionSweeper) Run(ctx context.Context) error {
	n, err := s.sessions.DeleteExpired(ctx, s.now())
	if err != nil {
		return err
	}
	if n > 0 {
		middleware.Logger.InfoContext(ctx, "expired sessions removed", "count", n)
	}
	return nil
}
