package usecasees

import (
	"fmt"

	"dascopy/internal/controllers"
	"dascopy/internal/usecasees/structs"
	"dascopy/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// orderReplicatorUseCase translates one master order event into follower
// submit/cancel/replace calls. Order type, side, prices and time-in-force
// pass through verbatim; only quantity is scaled. Submit failures are
// surfaced, never retried.
type orderReplicatorUseCase struct {
	multiplierUseCase *multiplierUseCase
	orderMapUseCase   *orderMapUseCase
	notifier          Notifier

	logger *logrus.Logger
}

func NewOrderReplicatorUseCase(
	multiplierUseCase *multiplierUseCase,
	orderMapUseCase *orderMapUseCase,
	notifier Notifier,
	logger *logrus.Logger,
) *orderReplicatorUseCase {
	return &orderReplicatorUseCase{
		multiplierUseCase: multiplierUseCase,
		orderMapUseCase:   orderMapUseCase,
		notifier:          notifier,
		logger:            logger,
	}
}

// Replicate submits the follower-side copy of a master order and records
// the mapping. Returns the follower order id.
func (u *orderReplicatorUseCase) Replicate(event *structs.MasterOrderEvent, followerID string, ctrl controllers.BrokerCtrl) (int64, error) {
	scaledQty := u.multiplierUseCase.Scale(event.Quantity, followerID, event.Symbol)

	followerOrderID, err := ctrl.SubmitOrder(&structs.OrderRequest{
		Symbol:      event.Symbol,
		Side:        event.Side,
		Quantity:    scaledQty,
		Price:       event.Price,
		StopPrice:   event.StopPrice,
		TrailAmount: event.TrailAmount,
		TimeInForce: event.TimeInForce,
		OrderType:   event.OrderType,
	})
	if err != nil {
		u.recordFailure(event, followerID, err)
		return 0, err
	}

	mapping := &models.OrderMapping{
		ID:              uuid.NewString(),
		MasterOrderID:   event.OrderID,
		FollowerID:      followerID,
		FollowerOrderID: followerOrderID,
		Symbol:          event.Symbol,
		Side:            event.Side,
		Quantity:        scaledQty,
		Status:          models.MappingStatusActive,
	}
	if err := u.orderMapUseCase.Record(mapping); err != nil {
		u.logger.WithError(err).Errorf("store mapping for master order %d", event.OrderID)
	}

	u.notifier.Notify(structs.Notification{
		Event:      structs.NotifyOrderReplicated,
		Level:      structs.LevelInfo,
		SubjectID:  mapping.ID,
		FollowerID: followerID,
		Symbol:     event.Symbol,
		Status:     mapping.Status,
		Message:    fmt.Sprintf("replicated %s %s qty=%d (master=%d)", event.Side, event.Symbol, scaledQty, event.Quantity),
	})

	return followerOrderID, nil
}

func (u *orderReplicatorUseCase) recordFailure(event *structs.MasterOrderEvent, followerID string, cause error) {
	mapping := &models.OrderMapping{
		ID:            uuid.NewString(),
		MasterOrderID: event.OrderID,
		FollowerID:    followerID,
		Symbol:        event.Symbol,
		Side:          event.Side,
		Status:        models.MappingStatusFailed,
	}
	if err := u.orderMapUseCase.Record(mapping); err != nil {
		u.logger.WithError(err).Errorf("store failed mapping for master order %d", event.OrderID)
	}

	u.notifier.Notify(structs.Notification{
		Event:      structs.NotifyOrderReplicated,
		Level:      structs.LevelError,
		SubjectID:  mapping.ID,
		FollowerID: followerID,
		Symbol:     event.Symbol,
		Status:     models.MappingStatusFailed,
		Error:      cause.Error(),
		Message:    fmt.Sprintf("order replication failed for %s: %s", event.Symbol, cause),
	})
}

// CancelFollowerOrders cancels every live follower order mapped to a
// master order. The mapping entry is marked terminal, never deleted.
func (u *orderReplicatorUseCase) CancelFollowerOrders(masterOrderID int64, followers map[string]controllers.BrokerCtrl) map[string]bool {
	results := map[string]bool{}

	for followerID, mapping := range u.orderMapUseCase.ForMasterOrder(masterOrderID) {
		if !mapping.IsLive() {
			continue
		}

		ctrl, ok := followers[followerID]
		if !ok || !ctrl.IsAlive() {
			results[followerID] = false
			continue
		}

		if err := ctrl.CancelOrder(mapping.FollowerOrderID); err != nil {
			results[followerID] = false
			u.notifier.Notify(structs.Notification{
				Event:      structs.NotifyOrderCancelled,
				Level:      structs.LevelError,
				SubjectID:  mapping.ID,
				FollowerID: followerID,
				Symbol:     mapping.Symbol,
				Status:     mapping.Status,
				Error:      err.Error(),
				Message:    fmt.Sprintf("cancel failed for %s: %s", mapping.Symbol, err),
			})
			continue
		}

		if err := u.orderMapUseCase.SetStatus(mapping, models.MappingStatusCancelled); err != nil {
			u.logger.WithError(err).Errorf("mark cancelled mapping %s", mapping.ID)
		}

		results[followerID] = true

		u.notifier.Notify(structs.Notification{
			Event:      structs.NotifyOrderCancelled,
			Level:      structs.LevelInfo,
			SubjectID:  mapping.ID,
			FollowerID: followerID,
			Symbol:     mapping.Symbol,
			Status:     models.MappingStatusCancelled,
			Message:    fmt.Sprintf("cancelled %s order", mapping.Symbol),
		})
	}

	return results
}

// ReplaceFollowerOrders re-scales the new quantity per follower and
// replaces every live mapped order; the mapping keeps its identity and
// takes the new follower order id.
func (u *orderReplicatorUseCase) ReplaceFollowerOrders(masterOrderID, newQuantity int64, newPrice float64, followers map[string]controllers.BrokerCtrl) map[string]bool {
	results := map[string]bool{}

	for followerID, mapping := range u.orderMapUseCase.ForMasterOrder(masterOrderID) {
		if !mapping.IsLive() {
			continue
		}

		ctrl, ok := followers[followerID]
		if !ok || !ctrl.IsAlive() {
			results[followerID] = false
			continue
		}

		scaledQty := mapping.Quantity
		if newQuantity > 0 {
			scaledQty = u.multiplierUseCase.Scale(newQuantity, followerID, mapping.Symbol)
		}

		newFollowerOrderID, err := ctrl.ReplaceOrder(mapping.FollowerOrderID, scaledQty, newPrice)
		if err != nil {
			results[followerID] = false
			u.notifier.Notify(structs.Notification{
				Event:      structs.NotifyOrderReplaced,
				Level:      structs.LevelError,
				SubjectID:  mapping.ID,
				FollowerID: followerID,
				Symbol:     mapping.Symbol,
				Status:     mapping.Status,
				Error:      err.Error(),
				Message:    fmt.Sprintf("replace failed for %s: %s", mapping.Symbol, err),
			})
			continue
		}

		if err := u.orderMapUseCase.SetFollowerOrderID(mapping, newFollowerOrderID); err != nil {
			u.logger.WithError(err).Errorf("update mapping %s", mapping.ID)
		}

		results[followerID] = true

		u.notifier.Notify(structs.Notification{
			Event:      structs.NotifyOrderReplaced,
			Level:      structs.LevelInfo,
			SubjectID:  mapping.ID,
			FollowerID: followerID,
			Symbol:     mapping.Symbol,
			Status:     mapping.Status,
			Message:    fmt.Sprintf("replaced %s order: qty=%d price=%.2f", mapping.Symbol, scaledQty, newPrice),
		})
	}

	return results
}
