package domain

import "time"

// EventType classifies replication events for the secondary-store consumer.
type EventType string

const (
	EventTransfer EventType = "TRANSFER"
	EventExchange EventType = "EXCHANGE"
)

// ReplicationEvent is the wire shape published to the replication queue.
// One TRANSFER event is emitted per ledger leg (debit leg first), plus one
// EXCHANGE summary per completed exchange.
type ReplicationEvent struct {
	EventType          EventType `json:"eventType"`
	AcctNo             string    `json:"accountNo"`
	CounterpartyAcctNo string    `json:"counterpartyAccountNo"`
	Amount             int64     `json:"amount"`
	LegType            LegType   `json:"legType,omitempty"`
	Memo               string    `json:"memo"`
	Timestamp          time.Time `json:"timestamp"`
}

// OutboxStatus is the delivery state of an outbox message.
type OutboxStatus string

const (
	OutboxPending OutboxStatus = "PENDING"
	OutboxSent    OutboxStatus = "SENT"
	OutboxFailed  OutboxStatus = "FAILED"
)

// OutboxMessage is a replication event staged in the primary store within the
// same transaction as the balance and ledger writes. A relay job delivers
// pending rows to the queue, so a committed exchange can never lose its
// replication events to a transient broker failure.
type OutboxMessage struct {
	MessageID  string       `json:"messageID"`
	MessageKey string       `json:"messageKey"` // partition key: the affected account number
	Topic      string       `json:"topic"`
	Payload    []byte       `json:"payload"` // serialized ReplicationEvent
	Status     OutboxStatus `json:"status"`
	RetryCount int          `json:"retryCount"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}
