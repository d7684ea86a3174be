package cleanup

import (
	"context"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
)

// Sweeper is the part of the session manager the worker drives
type Sweeper interface {
	CleanupOldSessions(finishedTTL, staleTTL time.Duration) int
}

type Worker struct {
	sessions    Sweeper
	interval    time.Duration
	finishedTTL time.Duration
	staleTTL    time.Duration
	clock       quartz.Clock
	logger      zerolog.Logger
}

func NewWorker(sessions Sweeper, interval, finishedTTL, staleTTL time.Duration, clock quartz.Clock, logger zerolog.Logger) *Worker {
	return &Worker{
		sessions:    sessions,
		interval:    interval,
		finishedTTL: finishedTTL,
		staleTTL:    staleTTL,
		clock:       clock,
		logger:      logger.With().Str("component", "cleanup").Logger(),
	}
}

// Run sweeps once immediately, then every interval until ctx is done
func (w *Worker) Run(ctx context.Context) error {
	ticker := w.clock.NewTicker(w.interval, "cleanup")
	defer ticker.Stop()

	w.logger.Info().Dur("interval", w.interval).Msg("background worker started")
	w.runCleanup()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("background worker stopped")
			return nil
		case <-ticker.C:
			w.runCleanup()
		}
	}
}

// runCleanup executes the actual cleanup logic
func (w *Worker) runCleanup() {
	removed := w.sessions.CleanupOldSessions(w.finishedTTL, w.staleTTL)
	w.logger.Debug().Int("removed", removed).Msg("scheduled cleanup finished")
}
