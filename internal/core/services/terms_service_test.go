package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/haebit-bank/fx-backend/internal/core/services"
)

func TestSaveAgreementStampsTime(t *testing.T) {
	mockRepo := new(MockTermsRepository)
	svc := services.NewTermsService(mockRepo)

	var stamped time.Time
	mockRepo.On("SaveAgreement", mock.Anything, "C1001", mock.Anything).
		Run(func(args mock.Arguments) {
			stamped = args.Get(2).(time.Time)
		}).Return(nil)

	err := svc.SaveAgreement(context.Background(), "C1001")

	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), stamped, 5*time.Second)
}

func TestHasAgreedDelegates(t *testing.T) {
	mockRepo := new(MockTermsRepository)
	svc := services.NewTermsService(mockRepo)

	mockRepo.On("HasAgreed", mock.Anything, "C1001").Return(true, nil)

	agreed, err := svc.HasAgreed(context.Background(), "C1001")

	assert.NoError(t, err)
	assert.True(t, agreed)
}
