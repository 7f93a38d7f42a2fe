package cleanup

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

type SessionRepository interface {
	DeleteExpiredSessions() (int64, error)
}

// Worker periodically removes expired login sessions from the
// database.
type Worker struct {
	repo     SessionRepository
	interval time.Duration
}

func NewWorker(repo SessionRepository) *Worker {
	return &Worker{repo: repo, interval: time.Hour}
}

// Run blocks until the context is cancelled, sweeping on each tick.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := w.repo.DeleteExpiredSessions()
			if err != nil {
				log.Error().Err(err).Msg("session cleanup failed")
				continue
			}
			if removed > 0 {
				log.Info().Int64("removed", removed).Msg("expired sessions cleaned up")
			}
		}
	}
}
