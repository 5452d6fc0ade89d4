package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/haebit-bank/fx-backend/internal/core/domain"
	portsrepo "github.com/haebit-bank/fx-backend/internal/core/ports/repositories"
)

type MockOutboxRepository struct {
	mock.Mock
}

var _ portsrepo.OutboxRepository = (*MockOutboxRepository)(nil)

func (m *MockOutboxRepository) EnqueueInTx(ctx context.Context, tx pgx.Tx, messages []domain.OutboxMessage) error {
	args := m.Called(ctx, tx, messages)
	return args.Error(0)
}

func (m *MockOutboxRepository) ListPending(ctx context.Context, limit int) ([]domain.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OutboxMessage), args.Error(1)
}

func (m *MockOutboxRepository) MarkSent(ctx context.Context, messageID string) error {
	args := m.Called(ctx, messageID)
	return args.Error(0)
}

func (m *MockOutboxRepository) IncrementRetry(ctx context.Context, messageID string) error {
	args := m.Called(ctx, messageID)
	return args.Error(0)
}

func (m *MockOutboxRepository) MarkFailed(ctx context.Context, messageID string) error {
	args := m.Called(ctx, messageID)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, topic, key string, payload []byte) error {
	args := m.Called(ctx, topic, key, payload)
	return args.Error(0)
}

func pendingMessage(id string, retries int) domain.OutboxMessage {
	return domain.OutboxMessage{
		MessageID:  id,
		MessageKey: "110-001",
		Topic:      "account-replication",
		Payload:    []byte(`{"eventType":"TRANSFER"}`),
		Status:     domain.OutboxPending,
		RetryCount: retries,
	}
}

func TestRelayMarksSentAfterPublish(t *testing.T) {
	repo := new(MockOutboxRepository)
	pub := new(MockPublisher)
	relay := NewOutboxRelay(repo, pub, 0, 100, 5)
	msg := pendingMessage("m1", 0)

	repo.On("ListPending", mock.Anything, 100).Return([]domain.OutboxMessage{msg}, nil)
	pub.On("Publish", mock.Anything, "account-replication", "110-001", msg.Payload).Return(nil)
	repo.On("MarkSent", mock.Anything, "m1").Return(nil)

	relay.processPending(context.Background())

	repo.AssertCalled(t, "MarkSent", mock.Anything, "m1")
	repo.AssertNotCalled(t, "IncrementRetry", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "MarkFailed", mock.Anything, mock.Anything)
}

func TestRelayIncrementsRetryOnPublishFailure(t *testing.T) {
	repo := new(MockOutboxRepository)
	pub := new(MockPublisher)
	relay := NewOutboxRelay(repo, pub, 0, 100, 5)
	msg := pendingMessage("m1", 1)

	repo.On("ListPending", mock.Anything, 100).Return([]domain.OutboxMessage{msg}, nil)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))
	repo.On("IncrementRetry", mock.Anything, "m1").Return(nil)

	relay.processPending(context.Background())

	repo.AssertCalled(t, "IncrementRetry", mock.Anything, "m1")
	repo.AssertNotCalled(t, "MarkSent", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "MarkFailed", mock.Anything, mock.Anything)
}

func TestRelayParksMessageAtMaxRetry(t *testing.T) {
	repo := new(MockOutboxRepository)
	pub := new(MockPublisher)
	relay := NewOutboxRelay(repo, pub, 0, 100, 5)
	msg := pendingMessage("m1", 4)

	repo.On("ListPending", mock.Anything, 100).Return([]domain.OutboxMessage{msg}, nil)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))
	repo.On("MarkFailed", mock.Anything, "m1").Return(nil)

	relay.processPending(context.Background())

	repo.AssertCalled(t, "MarkFailed", mock.Anything, "m1")
	repo.AssertNotCalled(t, "IncrementRetry", mock.Anything, mock.Anything)
}

func TestRelayDeliversInListOrder(t *testing.T) {
	repo := new(MockOutboxRepository)
	pub := new(MockPublisher)
	relay := NewOutboxRelay(repo, pub, 0, 100, 5)

	msgs := []domain.OutboxMessage{pendingMessage("m1", 0), pendingMessage("m2", 0), pendingMessage("m3", 0)}
	repo.On("ListPending", mock.Anything, 100).Return(msgs, nil)

	var published []string
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			published = append(published, args.String(2))
		}).Return(nil)
	repo.On("MarkSent", mock.Anything, mock.Anything).Return(nil)

	relay.processPending(context.Background())

	assert.Len(t, published, 3)
	repo.AssertNumberOfCalls(t, "MarkSent", 3)
}
