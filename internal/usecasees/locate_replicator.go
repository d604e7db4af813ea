package usecasees

import (
	"context"
	"fmt"
	"time"

	"dascopy/internal/controllers"
	"dascopy/internal/usecasees/structs"
	"dascopy/models"

	"github.com/sirupsen/logrus"
)

// locateReplicatorUseCase mirrors the master's own filled locates onto
// followers at the follower's scale, so followers hold borrow before the
// master's next short arrives. It shares the global locate slot limiter
// with the short sale workflow.
type locateReplicatorUseCase struct {
	multiplierUseCase *multiplierUseCase
	notifier          Notifier

	locateSlots chan struct{}

	logger *logrus.Logger
}

func NewLocateReplicatorUseCase(
	multiplierUseCase *multiplierUseCase,
	notifier Notifier,
	locateSlots chan struct{},
	logger *logrus.Logger,
) *locateReplicatorUseCase {
	if locateSlots == nil {
		locateSlots = make(chan struct{}, DefaultMaxConcurrentLocates)
	}

	return &locateReplicatorUseCase{
		multiplierUseCase: multiplierUseCase,
		notifier:          notifier,
		locateSlots:       locateSlots,
		logger:            logger,
	}
}

// Replicate issues a scaled locate on one follower. The master's fill
// price is capped by the follower's configured maximum.
func (u *locateReplicatorUseCase) Replicate(ctx context.Context, symbol string, masterQty int64, masterPrice float64, follower *models.Follower, ctrl controllers.BrokerCtrl) error {
	qty := u.multiplierUseCase.Scale(masterQty, follower.ID, symbol)

	maxPrice := follower.MaxLocatePrice
	if masterPrice > 0 && masterPrice < maxPrice {
		maxPrice = masterPrice
	}

	select {
	case u.locateSlots <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() {
		<-u.locateSlots
	}()

	timeout := time.Duration(follower.LocateRetryTimeout) * time.Second

	result, err := ctrl.Locate(ctx, symbol, qty, maxPrice, timeout)
	if err != nil {
		u.notifier.Notify(structs.Notification{
			Event:      structs.NotifyAlert,
			Level:      structs.LevelWarn,
			FollowerID: follower.ID,
			Symbol:     symbol,
			Error:      err.Error(),
			Message:    fmt.Sprintf("locate replication failed for %s: %s", symbol, err),
		})
		return err
	}

	u.logger.Infof("replicated locate %s on %s: %d/%d shares", symbol, follower.ID, result.FilledQty, qty)

	if result.FilledQty < qty {
		u.notifier.Notify(structs.Notification{
			Event:      structs.NotifyAlert,
			Level:      structs.LevelWarn,
			FollowerID: follower.ID,
			Symbol:     symbol,
			Message:    fmt.Sprintf("locate replication partial for %s: filled %d/%d", symbol, result.FilledQty, qty),
		})
	}

	return nil
}
