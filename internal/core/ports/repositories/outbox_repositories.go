package repositories

import (
	"context"

	"github.com/haebit-bank/fx-backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// OutboxRepository stages replication events in the primary store and tracks
// their delivery state. EnqueueInTx participates in the exchange transaction;
// the remaining methods are used by the relay job after commit.
type OutboxRepository interface {
	// EnqueueInTx inserts the messages as PENDING within tx, preserving slice order.
	EnqueueInTx(ctx context.Context, tx pgx.Tx, messages []domain.OutboxMessage) error

	// ListPending retrieves up to limit PENDING messages, oldest first.
	ListPending(ctx context.Context, limit int) ([]domain.OutboxMessage, error)

	// MarkSent transitions a message to SENT after a successful publish.
	MarkSent(ctx context.Context, messageID string) error

	// IncrementRetry bumps the retry counter after a failed publish.
	IncrementRetry(ctx context.Context, messageID string) error

	// MarkFailed parks a message as FAILED once retries are exhausted.
	MarkFailed(ctx context.Context, messageID string) error
}
