package workers

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/brunolandim/back-jurix/internal/engine/notifications"
	"github.com/brunolandim/back-jurix/internal/platform/repositories"
)

// Cleaner removes rows whose retention window has passed.
type Cleaner interface {
	Sweep(cutoff int64) (*repositories.CleanupResult, error)
}

// Runner executes one background cycle: retention cleanup first, then the
// notification send pass. Cycles are independent, a failed one is logged and
// the next tick starts fresh.
type Runner struct {
	cleaner         Cleaner
	sender          *notifications.Sender
	retentionMonths int
}

func NewRunner(cleaner Cleaner, sender *notifications.Sender, retentionMonths int) *Runner {
	return &Runner{cleaner: cleaner, sender: sender, retentionMonths: retentionMonths}
}

func (r *Runner) RunOnce(ctx context.Context) {
	start := time.Now()

	cutoff := time.Now().AddDate(0, -r.retentionMonths, 0).Unix()
	cleaned, err := r.cleaner.Sweep(cutoff)
	if err != nil {
		log.Error().Err(err).Msg("cleanup sweep failed")
	} else if cleaned.Notifications > 0 || cleaned.ShareLinks > 0 {
		log.Info().
			Int("notifications", cleaned.Notifications).
			Int("shareLinks", cleaned.ShareLinks).
			Msg("cleanup sweep removed expired rows")
	}

	result, err := r.sender.Run(ctx)
	if err != nil {
		log.Error().Err(err).Msg("notification send pass failed")
		return
	}

	if result.Total > 0 {
		log.Info().
			Int("total", result.Total).
			Int("sent", result.Sent).
			Int("failed", result.Failed).
			Dur("duration", time.Since(start)).
			Msg("notification send pass finished")
	}
}

// Start runs cycles on the given interval until the context is canceled.
func (r *Runner) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// First pass immediately so a restart does not delay due notifications
	r.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.RunOnce(ctx)
		}
	}
}
