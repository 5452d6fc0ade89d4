package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haebit-bank/fx-backend/internal/apperrors"
	"github.com/haebit-bank/fx-backend/internal/core/domain"
	portsrepo "github.com/haebit-bank/fx-backend/internal/core/ports/repositories"
	"github.com/haebit-bank/fx-backend/internal/models"
)

// PgxOutboxRepository implements the outbox repository port using pgxpool.
type PgxOutboxRepository struct {
	BaseRepository
}

// NewPgxOutboxRepository creates a new PgxOutboxRepository.
func NewPgxOutboxRepository(db *pgxpool.Pool) *PgxOutboxRepository {
	return &PgxOutboxRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.OutboxRepository = (*PgxOutboxRepository)(nil)

func toDomainOutboxMessage(m models.OutboxMessage) domain.OutboxMessage {
	return domain.OutboxMessage{
		MessageID:  m.MessageID,
		MessageKey: m.MessageKey,
		Topic:      m.Topic,
		Payload:    m.Payload,
		Status:     domain.OutboxStatus(m.Status),
		RetryCount: m.RetryCount,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// EnqueueInTx stages replication messages inside the caller's transaction so
// they commit or roll back together with the balance and ledger writes.
func (r *PgxOutboxRepository) EnqueueInTx(ctx context.Context, tx pgx.Tx, messages []domain.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, m := range messages {
		batch.Queue(`
			INSERT INTO outbox_messages (
				message_id, message_key, topic, payload, status, retry_count, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			m.MessageID, m.MessageKey, m.Topic, m.Payload, string(m.Status), m.RetryCount, m.CreatedAt, m.UpdatedAt,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for range messages {
		if _, err := results.Exec(); err != nil {
			return apperrors.NewAppError(500, "failed to enqueue outbox message", err)
		}
	}
	return nil
}

// ListPending retrieves undelivered messages oldest first so events reach the
// queue in commit order.
func (r *PgxOutboxRepository) ListPending(ctx context.Context, limit int) ([]domain.OutboxMessage, error) {
	query := `
		SELECT message_id, message_key, topic, payload, status, retry_count, created_at, updated_at
		FROM outbox_messages
		WHERE status = $1
		ORDER BY created_at ASC
		LIMIT $2;
	`

	rows, err := r.Pool.Query(ctx, query, models.OutboxStatusPending, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list pending outbox messages", err)
	}
	defer rows.Close()

	var messages []domain.OutboxMessage
	for rows.Next() {
		var m models.OutboxMessage
		if err := rows.Scan(&m.MessageID, &m.MessageKey, &m.Topic, &m.Payload, &m.Status, &m.RetryCount, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan outbox message", err)
		}
		messages = append(messages, toDomainOutboxMessage(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate outbox messages", err)
	}
	return messages, nil
}

// MarkSent records a successful delivery.
func (r *PgxOutboxRepository) MarkSent(ctx context.Context, messageID string) error {
	return r.setStatus(ctx, messageID, models.OutboxStatusSent)
}

// IncrementRetry bumps the retry counter after a failed delivery attempt.
func (r *PgxOutboxRepository) IncrementRetry(ctx context.Context, messageID string) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE outbox_messages
		SET retry_count = retry_count + 1, updated_at = NOW()
		WHERE message_id = $1`,
		messageID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to increment outbox retry count", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("outbox message not found: " + messageID)
	}
	return nil
}

// MarkFailed parks a message that exhausted its retries. Failed messages stay
// in the table for manual inspection and replay.
func (r *PgxOutboxRepository) MarkFailed(ctx context.Context, messageID string) error {
	return r.setStatus(ctx, messageID, models.OutboxStatusFailed)
}

func (r *PgxOutboxRepository) setStatus(ctx context.Context, messageID string, status string) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE outbox_messages
		SET status = $1, updated_at = NOW()
		WHERE message_id = $2`,
		status, messageID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update outbox message status", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("outbox message not found: " + messageID)
	}
	return nil
}
