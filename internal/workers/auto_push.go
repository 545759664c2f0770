package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-req-sync/internal/logger"
)

// AutoPushWorker runs PushAll on a fixed interval. Conflicts and failures
// are logged per collection; the next tick retries them.
type AutoPushWorker struct {
	pusher   Pusher
	interval time.Duration
	logger   *logger.Logger
}

func NewAutoPushWorker(pusher Pusher, interval time.Duration, logger *logger.Logger) *AutoPushWorker {
	return &AutoPushWorker{
		pusher:   pusher,
		interval: interval,
		logger:   logger,
	}
}

func (w *AutoPushWorker) Run(ctx context.Context) {
	if w.interval <= 0 {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info().Dur("interval", w.interval).Msg("auto-push worker started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("auto-push worker stopped")
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *AutoPushWorker) tick(ctx context.Context) {
	res, err := w.pusher.PushAll(ctx)
	if err != nil {
		w.logger.Err(err).Str("func", "AutoPushWorker.tick").Msg("auto-push failed")
		return
	}

	for id, paths := range res.Conflicts {
		w.logger.Warn().
			Str("func", "AutoPushWorker.tick").
			Str("collection_id", id).
			Strs("paths", paths).
			Msg("collection needs conflict resolution")
	}
	for id, reason := range res.Failures {
		w.logger.Error().
			Str("func", "AutoPushWorker.tick").
			Str("collection_id", id).
			Str("reason", reason).
			Msg("collection push failed")
	}
	if len(res.Pushed) > 0 {
		w.logger.Info().Int("pushed", len(res.Pushed)).Msg("auto-push finished")
	}
}
