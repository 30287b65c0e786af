package producer

import (
	"context"
	"go-payroll/internal/messaging/kafka"
	"time"

	"go.uber.org/zap"
)

// RelayConfig tunes the outbox relay loop.
type RelayConfig struct {
	PollInterval time.Duration
	BatchSize    int
}

func (c RelayConfig) withDefaults() RelayConfig {
	if c.PollInterval <= 0 {
		c.PollInterval = 3 * time.Second
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 50
	}
	return c
}

type relayStats struct {
	sent   int
	failed int
}

// ProcessOutboxEvents relays claimed outbox rows to Kafka until ctx is done.
// A full batch is followed immediately by another poll instead of waiting
// for the next tick.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
	cfg RelayConfig,
) {
	cfg = cfg.withDefaults()
	log := logger.Named("kafka.producer.relay")
	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()

	log.Info("outbox relay started",
		zap.Duration("poll_interval", cfg.PollInterval),
		zap.Int("batch_size", cfg.BatchSize),
	)

	for {
		select {
		case <-ctx.Done():
			log.Info("outbox relay stopped")
			return
		case <-ticker.C:
		}

		for ctx.Err() == nil {
			claimed, stats, err := processPendingEvents(ctx, repo, writer, log, cfg.BatchSize)
			if err != nil {
				log.Error("process outbox events failed", zap.Error(err))
				break
			}
			if claimed > 0 {
				log.Info("outbox batch relayed",
					zap.Int("claimed", claimed),
					zap.Int("sent", stats.sent),
					zap.Int("failed", stats.failed),
				)
			}
			if claimed < cfg.BatchSize {
				break
			}
		}
	}
}

func processPendingEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
	batchSize int,
) (int, relayStats, error) {
	var stats relayStats
	events, err := repo.ListPending(ctx, batchSize)
	if err != nil {
		return 0, stats, err
	}

	for _, event := range events {
		evLog := logger.With(
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
			zap.String("request_id", event.RequestID),
		)

		if err := publishEvent(ctx, writer, event); err != nil {
			stats.failed++
			evLog.Error("publish outbox event failed", zap.Int("retry_count", event.RetryCount), zap.Error(err))
			if markErr := repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				evLog.Error("mark outbox failed failed", zap.Error(markErr))
			}
			continue
		}

		if err := repo.MarkSent(ctx, event.ID); err != nil {
			// the row is re-claimed after its lease and published again;
			// consumers are idempotent on run id
			evLog.Error("mark outbox sent failed", zap.Error(err))
			continue
		}
		stats.sent++
		evLog.Debug("outbox event sent")
	}

	return len(events), stats, nil
}
