package usecasees

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"dascopy/internal/controllers"
	"dascopy/internal/repository/postgres"
	"dascopy/internal/usecasees/structs"
	"dascopy/models"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

type EngineState int

const (
	StateStopped EngineState = iota
	StateConnected
	StateReplicating
)

func (s EngineState) String() string {
	switch s {
	case StateConnected:
		return "CONNECTED"
	case StateReplicating:
		return "REPLICATING"
	}
	return "STOPPED"
}

var (
	ErrNotConnected     = fmt.Errorf("%s", "engine is not connected")
	ErrNotReconciled    = fmt.Errorf("%s", "reconciliation has not been applied or skipped")
	ErrAlreadyConnected = fmt.Errorf("%s", "engine is already connected")
	ErrNotReplicating   = fmt.Errorf("%s", "engine is not replicating")
)

type sinkCounter interface {
	SinkCount() int
}

// BrokerFactory builds a broker session for one follower account.
type BrokerFactory func(follower *models.Follower) controllers.BrokerCtrl

type EngineSnapshot struct {
	State         string                  `json:"state"`
	ActiveTasks   []structs.ShortSaleTask `json:"activeTasks"`
	OrderMappings []models.OrderMapping   `json:"orderMappings"`
	QueuedActions []structs.QueuedAction  `json:"queuedActions"`
	Followers     map[string]bool         `json:"followers"`
}

// engineUseCase orchestrates the replication lifecycle:
// stopped → connected → replicating. It serializes intake of master
// events and fans each event out to followers concurrently; the fan-out
// is joined per event so the order map sees one master order's events in
// arrival order.
type engineUseCase struct {
	masterCtrl    controllers.BrokerCtrl
	brokerFactory BrokerFactory

	followerRepo postgres.FollowerRepo

	multiplierUseCase *multiplierUseCase
	blacklistUseCase  *blacklistUseCase
	orderMapUseCase   *orderMapUseCase
	orderReplicator   *orderReplicatorUseCase
	shortSaleUseCase  *shortSaleUseCase
	locateReplicator  *locateReplicatorUseCase
	actionQueue       *actionQueueUseCase
	notifier          Notifier

	cron *cron.Cron

	mu            sync.RWMutex
	state         EngineState
	reconciled    bool
	sessions      map[string]*FollowerSession
	prevConnected map[string]bool

	intakeCancel context.CancelFunc
	intakeDone   chan struct{}

	logger *logrus.Logger
}

func NewEngineUseCase(
	masterCtrl controllers.BrokerCtrl,
	brokerFactory BrokerFactory,
	followerRepo postgres.FollowerRepo,
	multiplierUseCase *multiplierUseCase,
	blacklistUseCase *blacklistUseCase,
	orderMapUseCase *orderMapUseCase,
	orderReplicator *orderReplicatorUseCase,
	shortSaleUseCase *shortSaleUseCase,
	locateReplicator *locateReplicatorUseCase,
	actionQueue *actionQueueUseCase,
	notifier Notifier,
	logger *logrus.Logger,
) *engineUseCase {
	return &engineUseCase{
		masterCtrl:        masterCtrl,
		brokerFactory:     brokerFactory,
		followerRepo:      followerRepo,
		multiplierUseCase: multiplierUseCase,
		blacklistUseCase:  blacklistUseCase,
		orderMapUseCase:   orderMapUseCase,
		orderReplicator:   orderReplicator,
		shortSaleUseCase:  shortSaleUseCase,
		locateReplicator:  locateReplicator,
		actionQueue:       actionQueue,
		notifier:          notifier,
		cron:              cron.New(),
		sessions:          map[string]*FollowerSession{},
		prevConnected:     map[string]bool{},
		logger:            logger,
	}
}

func (u *engineUseCase) State() EngineState {
	u.mu.RLock()
	defer u.mu.RUnlock()

	return u.state
}

func (u *engineUseCase) Master() controllers.BrokerCtrl {
	return u.masterCtrl
}

func (u *engineUseCase) FollowerSessions() []FollowerSession {
	u.mu.RLock()
	defer u.mu.RUnlock()

	out := make([]FollowerSession, 0, len(u.sessions))
	for _, session := range u.sessions {
		out = append(out, *session)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Follower.ID < out[j].Follower.ID
	})

	return out
}

// Connect loads configuration, brings up follower sessions and restores
// persistent state. Event dispatch does not run yet; reconciliation has
// to be applied or skipped first.
func (u *engineUseCase) Connect() error {
	u.mu.Lock()
	if u.state != StateStopped {
		u.mu.Unlock()
		return ErrAlreadyConnected
	}
	u.mu.Unlock()

	if !u.masterCtrl.IsAlive() {
		return fmt.Errorf("%s", "master session is not reachable")
	}

	if err := u.multiplierUseCase.Load(); err != nil {
		return err
	}
	if err := u.blacklistUseCase.Load(); err != nil {
		return err
	}
	if err := u.orderMapUseCase.Load(); err != nil {
		return err
	}

	followers, err := u.followerRepo.GetEnabled()
	if err != nil {
		return err
	}

	sessions := map[string]*FollowerSession{}
	for i := range followers {
		follower := followers[i]
		u.multiplierUseCase.SetBase(follower.ID, follower.BaseMultiplier)
		sessions[follower.ID] = &FollowerSession{
			Follower: &follower,
			Ctrl:     u.brokerFactory(&follower),
		}
	}

	u.mu.Lock()
	// Re-check: a competing Connect may have won while we were loading.
	if u.state != StateStopped {
		u.mu.Unlock()
		return ErrAlreadyConnected
	}
	u.sessions = sessions
	u.prevConnected = map[string]bool{}
	u.state = StateConnected
	u.reconciled = false
	u.mu.Unlock()

	u.logger.Infof("engine connected: %d follower sessions", len(sessions))

	return nil
}

// MarkReconciled releases the replication gate. Called by the
// reconciliation apply step or by an explicit user skip.
func (u *engineUseCase) MarkReconciled() {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.reconciled = true
}

// StartReplication subscribes to the master event stream and runs the
// dispatch loop. Refused until reconciliation has run for this connect.
func (u *engineUseCase) StartReplication() error {
	u.mu.Lock()
	if u.state == StateReplicating {
		u.mu.Unlock()
		return nil
	}
	if u.state != StateConnected {
		u.mu.Unlock()
		return ErrNotConnected
	}
	if !u.reconciled {
		u.mu.Unlock()
		return ErrNotReconciled
	}
	u.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())

	events, err := u.masterCtrl.StreamEvents(ctx)
	if err != nil {
		cancel()
		return err
	}

	done := make(chan struct{})

	u.mu.Lock()
	u.intakeCancel = cancel
	u.intakeDone = done
	u.state = StateReplicating
	u.mu.Unlock()

	go u.intakeLoop(ctx, events, done)
	go u.monitorLoop(ctx)

	u.logger.Info("replication started")

	return nil
}

// Stop tears down dispatch, in-flight tasks and the queues, and returns
// the engine to the stopped state. Configuration, blacklist and
// multiplier state live outside the engine and survive.
func (u *engineUseCase) Stop() {
	u.mu.Lock()
	cancel := u.intakeCancel
	done := u.intakeDone
	u.intakeCancel = nil
	u.intakeDone = nil
	u.state = StateStopped
	u.reconciled = false
	u.sessions = map[string]*FollowerSession{}
	u.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}

	u.shortSaleUseCase.Reset()
	u.actionQueue.Clear()
	u.orderMapUseCase.Reset()

	u.logger.Info("engine stopped")
}

// ScheduleDailyRestart registers the fixed-time restart. The restart
// tears down all sessions and in-memory state, then reconnects.
func (u *engineUseCase) ScheduleDailyRestart(spec string) error {
	if _, err := u.cron.AddFunc(spec, u.scheduledRestart); err != nil {
		return err
	}
	u.cron.Start()

	u.logger.Infof("daily restart scheduled: %s", spec)

	return nil
}

func (u *engineUseCase) scheduledRestart() {
	u.logger.Info("scheduled restart starting")

	u.Stop()

	if err := u.Connect(); err != nil {
		u.logger.WithError(err).Error("scheduled restart reconnect failed")
		u.notifier.Notify(structs.Notification{
			Event:   structs.NotifyAlert,
			Level:   structs.LevelError,
			Error:   err.Error(),
			Message: "scheduled restart failed to reconnect",
		})
		return
	}

	u.logger.Info("scheduled restart completed, awaiting reconciliation")
}

func (u *engineUseCase) Snapshot() *EngineSnapshot {
	followers := map[string]bool{}
	var queued []structs.QueuedAction
	for _, session := range u.FollowerSessions() {
		followers[session.Follower.ID] = session.Ctrl.IsAlive()
		queued = append(queued, u.actionQueue.Pending(session.Follower.ID)...)
	}

	return &EngineSnapshot{
		State:         u.State().String(),
		ActiveTasks:   u.shortSaleUseCase.ActiveTasks(),
		OrderMappings: u.orderMapUseCase.Snapshot(),
		QueuedActions: queued,
		Followers:     followers,
	}
}

// intakeLoop applies master events strictly in arrival order.
func (u *engineUseCase) intakeLoop(ctx context.Context, events <-chan structs.MasterOrderEvent, done chan struct{}) {
	defer close(done)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			u.dispatch(ctx, &event)
		}
	}
}

func (u *engineUseCase) dispatch(ctx context.Context, event *structs.MasterOrderEvent) {
	if event.IsProbe() {
		u.logger.Debugf("ignoring probe order %d", event.OrderID)
		return
	}

	switch event.Type {
	case structs.EventOrderAccepted:
		u.dispatchSubmit(event)
	case structs.EventOrderCancelled:
		u.dispatchCancel(event)
	case structs.EventOrderReplaced:
		u.dispatchReplace(event)
	case structs.EventLocateFilled:
		u.dispatchLocate(ctx, event)
	default:
		u.logger.Warnf("unknown master event type %s", event.Type)
	}
}

// dispatchSubmit fans one accepted master order out to every enabled
// follower. The join is bookkeeping only: short sales return immediately
// after task creation and run in the background.
func (u *engineUseCase) dispatchSubmit(event *structs.MasterOrderEvent) {
	var wg sync.WaitGroup

	for _, session := range u.FollowerSessions() {
		session := session

		if u.blacklistUseCase.IsBlacklisted(session.Follower.ID, event.Symbol) {
			u.logger.Debugf("skip %s for %s: blacklisted", event.Symbol, session.Follower.ID)
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()

			if !session.Ctrl.IsAlive() {
				u.queueAction(structs.QueuedAction{
					FollowerID:    session.Follower.ID,
					ActionType:    structs.ActionOrderSubmit,
					Symbol:        event.Symbol,
					MasterOrderID: event.OrderID,
				})
				return
			}

			if event.IsShortSale() {
				u.shortSaleUseCase.HandleShortSale(event, session.Follower, session.Ctrl)
				return
			}

			// Failure is surfaced by the replicator; no retry.
			_, _ = u.orderReplicator.Replicate(event, session.Follower.ID, session.Ctrl)
		}()
	}

	wg.Wait()
}

// dispatchCancel propagates a master cancel: in-flight short-sale tasks
// are interrupted immediately, live mapped orders are cancelled, and
// unreachable followers with a live mapping get a queued cancel.
func (u *engineUseCase) dispatchCancel(event *structs.MasterOrderEvent) {
	u.shortSaleUseCase.OnMasterOrderCancelled(event.OrderID)

	mapped := u.orderMapUseCase.ForMasterOrder(event.OrderID)
	alive := map[string]controllers.BrokerCtrl{}

	for _, session := range u.FollowerSessions() {
		mapping, ok := mapped[session.Follower.ID]
		if !ok || !mapping.IsLive() {
			continue
		}

		if !session.Ctrl.IsAlive() {
			u.queueAction(structs.QueuedAction{
				FollowerID:    session.Follower.ID,
				ActionType:    structs.ActionOrderCancel,
				Symbol:        mapping.Symbol,
				MasterOrderID: event.OrderID,
			})
			continue
		}

		alive[session.Follower.ID] = session.Ctrl
	}

	u.orderReplicator.CancelFollowerOrders(event.OrderID, alive)
}

func (u *engineUseCase) dispatchReplace(event *structs.MasterOrderEvent) {
	mapped := u.orderMapUseCase.ForMasterOrder(event.OrderID)
	alive := map[string]controllers.BrokerCtrl{}

	for _, session := range u.FollowerSessions() {
		mapping, ok := mapped[session.Follower.ID]
		if !ok || !mapping.IsLive() {
			continue
		}

		if !session.Ctrl.IsAlive() {
			u.queueAction(structs.QueuedAction{
				FollowerID:    session.Follower.ID,
				ActionType:    structs.ActionOrderReplace,
				Symbol:        mapping.Symbol,
				MasterOrderID: event.OrderID,
				NewQuantity:   event.NewQuantity,
				NewPrice:      event.NewPrice,
			})
			continue
		}

		alive[session.Follower.ID] = session.Ctrl
	}

	u.orderReplicator.ReplaceFollowerOrders(event.OrderID, event.NewQuantity, event.NewPrice, alive)
}

func (u *engineUseCase) dispatchLocate(ctx context.Context, event *structs.MasterOrderEvent) {
	if event.LocateQty <= 0 {
		return
	}

	for _, session := range u.FollowerSessions() {
		session := session

		if u.blacklistUseCase.IsBlacklisted(session.Follower.ID, event.Symbol) {
			continue
		}

		if !session.Ctrl.IsAlive() {
			u.queueAction(structs.QueuedAction{
				FollowerID:  session.Follower.ID,
				ActionType:  structs.ActionLocate,
				Symbol:      event.Symbol,
				LocateQty:   event.LocateQty,
				LocatePrice: event.LocatePrice,
			})
			continue
		}

		go func() {
			_ = u.locateReplicator.Replicate(ctx, event.Symbol, event.LocateQty, event.LocatePrice, session.Follower, session.Ctrl)
		}()
	}
}

func (u *engineUseCase) queueAction(action structs.QueuedAction) {
	queued := u.actionQueue.Enqueue(action)

	u.notifier.Notify(structs.Notification{
		Event:      structs.NotifyActionQueued,
		Level:      structs.LevelWarn,
		SubjectID:  queued.ID,
		FollowerID: queued.FollowerID,
		Symbol:     queued.Symbol,
		Status:     queued.ActionType,
		Message:    fmt.Sprintf("follower %s offline, %s for %s queued", queued.FollowerID, queued.ActionType, queued.Symbol),
	})
}

// ReplayQueuedActions replays the selected actions on a reconnected
// follower in their original enqueue order. A queued short-sell submit
// re-enters the full borrow workflow: capacity may have changed since
// the action was queued.
func (u *engineUseCase) ReplayQueuedActions(ctx context.Context, followerID string, actionIDs []string) (map[string]bool, error) {
	u.mu.RLock()
	session, ok := u.sessions[followerID]
	u.mu.RUnlock()

	if !ok || !session.Ctrl.IsAlive() {
		return nil, fmt.Errorf("follower %s is not connected", followerID)
	}

	results := map[string]bool{}

	for _, action := range u.actionQueue.Take(followerID, actionIDs) {
		ok, err := u.replaySingle(ctx, session, action)
		results[action.ID] = ok && err == nil
		if err != nil {
			u.logger.WithError(err).Errorf("replay %s for %s", action.ActionType, followerID)
		}
	}

	u.notifier.Notify(structs.Notification{
		Event:      structs.NotifyActionsReplayed,
		Level:      structs.LevelInfo,
		FollowerID: followerID,
		Message:    fmt.Sprintf("replayed %d queued action(s)", len(results)),
	})

	return results, nil
}

func (u *engineUseCase) replaySingle(ctx context.Context, session *FollowerSession, action structs.QueuedAction) (bool, error) {
	switch action.ActionType {
	case structs.ActionOrderSubmit:
		order, err := u.masterCtrl.GetOrder(action.MasterOrderID)
		if err != nil {
			return false, err
		}
		if order.IsShortSale() {
			u.shortSaleUseCase.HandleShortSale(order, session.Follower, session.Ctrl)
			return true, nil
		}
		if _, err := u.orderReplicator.Replicate(order, session.Follower.ID, session.Ctrl); err != nil {
			return false, err
		}
		return true, nil

	case structs.ActionOrderCancel:
		results := u.orderReplicator.CancelFollowerOrders(action.MasterOrderID, map[string]controllers.BrokerCtrl{
			session.Follower.ID: session.Ctrl,
		})
		return results[session.Follower.ID], nil

	case structs.ActionOrderReplace:
		results := u.orderReplicator.ReplaceFollowerOrders(action.MasterOrderID, action.NewQuantity, action.NewPrice, map[string]controllers.BrokerCtrl{
			session.Follower.ID: session.Ctrl,
		})
		return results[session.Follower.ID], nil

	case structs.ActionLocate:
		if err := u.locateReplicator.Replicate(ctx, action.Symbol, action.LocateQty, action.LocatePrice, session.Follower, session.Ctrl); err != nil {
			return false, err
		}
		return true, nil
	}

	return false, fmt.Errorf("unknown action type %s", action.ActionType)
}

func (u *engineUseCase) DiscardQueuedActions(followerID string, actionIDs []string) int {
	return u.actionQueue.Discard(followerID, actionIDs)
}

// monitorLoop detects follower reconnections and pushes state snapshots
// to registered observers at 1Hz.
func (u *engineUseCase) monitorLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			u.checkReconnections()

			if counter, ok := u.notifier.(sinkCounter); ok && counter.SinkCount() == 0 {
				continue
			}

			u.notifier.Notify(structs.Notification{
				Event:   structs.NotifyStateUpdate,
				Level:   structs.LevelInfo,
				Status:  u.State().String(),
				Message: "state update",
			})
		}
	}
}

func (u *engineUseCase) checkReconnections() {
	for _, session := range u.FollowerSessions() {
		followerID := session.Follower.ID
		nowConnected := session.Ctrl.IsAlive()

		u.mu.Lock()
		wasConnected := u.prevConnected[followerID]
		u.prevConnected[followerID] = nowConnected
		u.mu.Unlock()

		if nowConnected && !wasConnected && u.actionQueue.HasPending(followerID) {
			pending := u.actionQueue.Pending(followerID)

			u.logger.Infof("follower %s reconnected with %d queued actions", followerID, len(pending))

			u.notifier.Notify(structs.Notification{
				Event:      structs.NotifyActionsAvailable,
				Level:      structs.LevelWarn,
				FollowerID: followerID,
				Message:    fmt.Sprintf("follower %s reconnected, %d queued action(s) ready for replay", followerID, len(pending)),
			})
		}
	}
}
