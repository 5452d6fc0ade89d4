package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/haebit-bank/fx-backend/internal/core/domain"
	portsrepo "github.com/haebit-bank/fx-backend/internal/core/ports/repositories"
	portssvc "github.com/haebit-bank/fx-backend/internal/core/ports/services"
	"github.com/haebit-bank/fx-backend/internal/middleware"
)

// OutboxRelay polls committed replication events and delivers them to the
// queue. Delivery is at-least-once: a message is only marked sent after the
// broker acknowledged it, so a crash between publish and mark replays it.
type OutboxRelay struct {
	outboxRepo portsrepo.OutboxRepository
	publisher  portssvc.ReplicationPublisher
	interval   time.Duration
	batchSize  int
	maxRetry   int
}

// NewOutboxRelay creates a new OutboxRelay.
func NewOutboxRelay(outboxRepo portsrepo.OutboxRepository, publisher portssvc.ReplicationPublisher, interval time.Duration, batchSize int, maxRetry int) *OutboxRelay {
	return &OutboxRelay{
		outboxRepo: outboxRepo,
		publisher:  publisher,
		interval:   interval,
		batchSize:  batchSize,
		maxRetry:   maxRetry,
	}
}

// Run polls until the context is cancelled. Intended to run in its own
// goroutine next to the HTTP server.
func (r *OutboxRelay) Run(ctx context.Context) {
	logger := middleware.GetLoggerFromCtx(ctx)
	logger.Info("Outbox relay started",
		slog.Duration("interval", r.interval),
		slog.Int("batch_size", r.batchSize),
	)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Outbox relay stopped")
			return
		case <-ticker.C:
			r.processPending(ctx)
		}
	}
}

func (r *OutboxRelay) processPending(ctx context.Context) {
	logger := middleware.GetLoggerFromCtx(ctx)

	messages, err := r.outboxRepo.ListPending(ctx, r.batchSize)
	if err != nil {
		logger.Error("Failed to list pending outbox messages", slog.String("error", err.Error()))
		return
	}

	for _, msg := range messages {
		r.deliver(ctx, msg)
	}
}

func (r *OutboxRelay) deliver(ctx context.Context, msg domain.OutboxMessage) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := r.publisher.Publish(ctx, msg.Topic, msg.MessageKey, msg.Payload); err != nil {
		logger.Warn("Failed to publish replication event",
			slog.String("message_id", msg.MessageID),
			slog.Int("retry_count", msg.RetryCount),
			slog.String("error", err.Error()),
		)
		if msg.RetryCount+1 >= r.maxRetry {
			if err := r.outboxRepo.MarkFailed(ctx, msg.MessageID); err != nil {
				logger.Error("Failed to park outbox message", slog.String("message_id", msg.MessageID), slog.String("error", err.Error()))
			} else {
				logger.Error("Replication event exhausted retries", slog.String("message_id", msg.MessageID))
			}
			return
		}
		if err := r.outboxRepo.IncrementRetry(ctx, msg.MessageID); err != nil {
			logger.Error("Failed to increment outbox retry count", slog.String("message_id", msg.MessageID), slog.String("error", err.Error()))
		}
		return
	}

	if err := r.outboxRepo.MarkSent(ctx, msg.MessageID); err != nil {
		// The event will be re-published on the next tick; consumers must
		// tolerate duplicates.
		logger.Error("Failed to mark outbox message sent", slog.String("message_id", msg.MessageID), slog.String("error", err.Error()))
	}
}
