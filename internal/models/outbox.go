package models

import "time"

const (
	OutboxStatusPending = "PENDING"
	OutboxStatusSent    = "SENT"
	OutboxStatusFailed  = "FAILED"
)

// OutboxMessage mirrors the outbox_messages table.
type OutboxMessage struct {
	MessageID  string    `db:"message_id"`
	MessageKey string    `db:"message_key"`
	Topic      string    `db:"topic"`
	Payload    []byte    `db:"payload"`
	Status     string    `db:"status"`
	RetryCount int       `db:"retry_count"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}
