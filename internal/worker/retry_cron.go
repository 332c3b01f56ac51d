package worker

// retry_cron.go
// Background goroutine that periodically re-enqueues notifications stuck in
// status='pending' (e.g. the original job was lost to a crash or Redis
// flush). Rows pending longer than the abandon cutoff are marked failed and
// moved to the DLQ. Uses the circuit breaker to avoid hammering a downed SMS
// gateway.

import (
	"context"
	"fmt"
	"time"

	"github.com/Banchi-salim/PhoneStoreInventory/internal/infra"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 60 * time.Second
	retryBatchSize    = 20
	// stuckCutoff: pending rows younger than this are assumed in-flight
	stuckCutoff = 2 * time.Minute
	// abandonCutoff: pending rows older than this are declared failed
	abandonCutoff = 30 * time.Minute
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	NotifRepo  repository.NotificationRepository
	Dispatcher *Dispatcher
	CB         *infra.CircuitBreaker
	RDB        *redis.Client
}

// StartRetryCron launches a background goroutine that ticks every minute,
// queries stuck pending notifications, and re-enqueues them for delivery.
// It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	// If CB is open, skip entirely — don't hammer a downed gateway
	if cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("retry_cron: circuit breaker is open, skipping tick")
		return
	}

	cutoff := time.Now().Add(-stuckCutoff)
	stuck, err := cfg.NotifRepo.ListStuckPending(ctx, cutoff, retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query stuck notifications")
		return
	}

	if len(stuck) == 0 {
		return
	}

	log.Info().Int("count", len(stuck)).Msg("retry_cron: processing stuck notifications")

	abandonBefore := time.Now().Add(-abandonCutoff)
	for i := range stuck {
		n := &stuck[i]

		if n.CreatedAt.Before(abandonBefore) {
			reason := fmt.Sprintf("abandoned after %s pending", abandonCutoff)
			if err := cfg.NotifRepo.MarkFailed(ctx, n.ID, reason); err != nil {
				log.Error().Err(err).Str("notification_id", n.ID.String()).
					Msg("retry_cron: failed to mark abandoned")
				continue
			}
			payload := fmt.Sprintf(`{"notification_id":"%s"}`, n.ID)
			SendToDLQ(ctx, cfg.RDB, QueueNotifications, "notification", []byte(payload), reason, 0)
			continue
		}

		job := NotificationJobPayload{NotificationID: n.ID.String()}
		if err := cfg.Dispatcher.EnqueueNotification(ctx, job); err != nil {
			log.Error().Err(err).Str("notification_id", n.ID.String()).
				Msg("retry_cron: failed to re-enqueue")
			continue
		}
		log.Info().Str("notification_id", n.ID.String()).
			Time("created_at", n.CreatedAt).
			Msg("retry_cron: stuck notification re-enqueued")
	}
}
