package usecasees

import (
	"context"
	"errors"
	"testing"
	"time"

	ctrlMocks "dascopy/internal/controllers/mocks"
	mongoMocks "dascopy/internal/repository/mongo/mocks"
	"dascopy/internal/usecasees/structs"
	"dascopy/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type locateReplicatorHarness struct {
	broker   *ctrlMocks.BrokerCtrl
	recorder *taskRecorder
	follower *models.Follower
	useCase  *locateReplicatorUseCase
}

func newLocateReplicatorHarness() *locateReplicatorHarness {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	multiplierRepo := &mongoMocks.MultiplierRepo{}
	multiplier := NewMultiplierUseCase(multiplierRepo, logger)
	multiplier.SetBase("f1", 0.5)

	h := &locateReplicatorHarness{
		broker:   &ctrlMocks.BrokerCtrl{},
		recorder: newTaskRecorder(),
		follower: &models.Follower{
			ID:                 "f1",
			MaxLocatePrice:     0.05,
			LocateRetryTimeout: 2,
		},
	}
	h.useCase = NewLocateReplicatorUseCase(multiplier, h.recorder, nil, logger)

	return h
}

func Test_LocateReplicateScalesQuantity(t *testing.T) {
	h := newLocateReplicatorHarness()

	h.broker.On("Locate", mock.Anything, "AAPL", int64(500), 0.03, 2*time.Second).
		Return(&structs.LocateResult{Symbol: "AAPL", FilledQty: 500}, nil)

	err := h.useCase.Replicate(context.Background(), "AAPL", 1000, 0.03, h.follower, h.broker)
	assert.NoError(t, err)
	assert.Equal(t, 0, h.recorder.alertCount())
	h.broker.AssertExpectations(t)
}

func Test_LocateReplicatePriceCap(t *testing.T) {
	h := newLocateReplicatorHarness()

	// Master paid more than the follower allows: capped at the
	// follower's maximum.
	h.broker.On("Locate", mock.Anything, "AAPL", int64(500), 0.05, mock.Anything).
		Return(&structs.LocateResult{Symbol: "AAPL", FilledQty: 500}, nil).Once()

	err := h.useCase.Replicate(context.Background(), "AAPL", 1000, 0.10, h.follower, h.broker)
	assert.NoError(t, err)

	// No master price on the event: the cap applies as-is.
	h.broker.On("Locate", mock.Anything, "TSLA", int64(100), 0.05, mock.Anything).
		Return(&structs.LocateResult{Symbol: "TSLA", FilledQty: 100}, nil).Once()

	err = h.useCase.Replicate(context.Background(), "TSLA", 200, 0, h.follower, h.broker)
	assert.NoError(t, err)
	h.broker.AssertExpectations(t)
}

func Test_LocateReplicatePartialFillAlerts(t *testing.T) {
	h := newLocateReplicatorHarness()

	h.broker.On("Locate", mock.Anything, "AAPL", int64(500), mock.Anything, mock.Anything).
		Return(&structs.LocateResult{Symbol: "AAPL", FilledQty: 200}, nil)

	err := h.useCase.Replicate(context.Background(), "AAPL", 1000, 0.03, h.follower, h.broker)
	assert.NoError(t, err)
	assert.Equal(t, 1, h.recorder.alertCount())
}

func Test_LocateReplicateFailureAlerts(t *testing.T) {
	h := newLocateReplicatorHarness()

	h.broker.On("Locate", mock.Anything, "AAPL", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("route unavailable"))

	err := h.useCase.Replicate(context.Background(), "AAPL", 1000, 0.03, h.follower, h.broker)
	assert.Error(t, err)
	assert.Equal(t, 1, h.recorder.alertCount())
}
