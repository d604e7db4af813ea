package usecasees

import (
	"context"
	"fmt"
	"sync"
	"time"

	"dascopy/internal/controllers"
	"dascopy/internal/usecasees/structs"
	"dascopy/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const DefaultMaxConcurrentLocates = 3

type symbolKey struct {
	followerID string
	symbol     string
}

// shortSaleUseCase runs the on-demand locate-then-short workflow.
//
// Two disciplines guard the borrow state:
//   - a per-(follower, symbol) lock held from the capacity check through
//     order placement, so a second short on the same symbol re-checks
//     capacity only after the first task's locate is reflected;
//   - a global slot limiter on locate calls across all followers and
//     symbols, respecting the broker terminal's rate limits.
type shortSaleUseCase struct {
	multiplierUseCase *multiplierUseCase
	orderReplicator   *orderReplicatorUseCase
	notifier          Notifier

	locateSlots chan struct{}

	mu          sync.Mutex
	tasks       map[string]*structs.ShortSaleTask
	taskCancels map[string]context.CancelFunc
	cancelled   map[int64]bool
	symbolLocks map[symbolKey]*sync.Mutex

	logger *logrus.Logger
}

func NewShortSaleUseCase(
	multiplierUseCase *multiplierUseCase,
	orderReplicator *orderReplicatorUseCase,
	notifier Notifier,
	locateSlots chan struct{},
	logger *logrus.Logger,
) *shortSaleUseCase {
	if locateSlots == nil {
		locateSlots = make(chan struct{}, DefaultMaxConcurrentLocates)
	}

	return &shortSaleUseCase{
		multiplierUseCase: multiplierUseCase,
		orderReplicator:   orderReplicator,
		notifier:          notifier,
		locateSlots:       locateSlots,
		tasks:             map[string]*structs.ShortSaleTask{},
		taskCancels:       map[string]context.CancelFunc{},
		cancelled:         map[int64]bool{},
		symbolLocks:       map[symbolKey]*sync.Mutex{},
		logger:            logger,
	}
}

// HandleShortSale starts the workflow in the background and returns the
// task id. Completion is observed through status notifications only.
func (u *shortSaleUseCase) HandleShortSale(event *structs.MasterOrderEvent, follower *models.Follower, ctrl controllers.BrokerCtrl) string {
	task := &structs.ShortSaleTask{
		ID:            uuid.NewString(),
		FollowerID:    follower.ID,
		Symbol:        event.Symbol,
		MasterOrderID: event.OrderID,
		RequiredQty:   u.multiplierUseCase.Scale(event.Quantity, follower.ID, event.Symbol),
		Status:        structs.TaskStatusPending,
		CreatedAt:     time.Now(),
	}

	ctx, cancel := context.WithCancel(context.Background())

	u.mu.Lock()
	u.tasks[task.ID] = task
	u.taskCancels[task.ID] = cancel
	u.mu.Unlock()

	u.broadcast(task)

	u.logger.Infof("short sale task %s created: follower=%s symbol=%s qty=%d",
		task.ID, follower.ID, event.Symbol, task.RequiredQty)

	go u.executeTask(ctx, task, event, follower, ctrl)

	return task.ID
}

// OnMasterOrderCancelled marks the master order cancelled and actively
// interrupts any in-flight task for it, so no further locate is issued
// once the cancel is known.
func (u *shortSaleUseCase) OnMasterOrderCancelled(masterOrderID int64) {
	u.mu.Lock()
	u.cancelled[masterOrderID] = true

	var cancels []context.CancelFunc
	for id, task := range u.tasks {
		if task.MasterOrderID == masterOrderID && !task.IsTerminal() {
			if cancel, ok := u.taskCancels[id]; ok {
				cancels = append(cancels, cancel)
			}
		}
	}
	u.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}

// CancelTask cancels one task by id (user initiated).
func (u *shortSaleUseCase) CancelTask(taskID string) bool {
	u.mu.Lock()
	task, ok := u.tasks[taskID]
	if !ok || task.IsTerminal() {
		u.mu.Unlock()
		return false
	}
	cancel := u.taskCancels[taskID]
	u.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	return true
}

func (u *shortSaleUseCase) ActiveTasks() []structs.ShortSaleTask {
	u.mu.Lock()
	defer u.mu.Unlock()

	var out []structs.ShortSaleTask
	for _, task := range u.tasks {
		if !task.IsTerminal() {
			out = append(out, *task)
		}
	}

	return out
}

func (u *shortSaleUseCase) AllTasks() []structs.ShortSaleTask {
	u.mu.Lock()
	defer u.mu.Unlock()

	out := make([]structs.ShortSaleTask, 0, len(u.tasks))
	for _, task := range u.tasks {
		out = append(out, *task)
	}

	return out
}

// Reset cancels every in-flight task and clears task state. Used on
// engine stop and scheduled restart.
func (u *shortSaleUseCase) Reset() {
	u.mu.Lock()
	cancels := make([]context.CancelFunc, 0, len(u.taskCancels))
	for _, cancel := range u.taskCancels {
		cancels = append(cancels, cancel)
	}
	u.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}

	u.mu.Lock()
	u.tasks = map[string]*structs.ShortSaleTask{}
	u.taskCancels = map[string]context.CancelFunc{}
	u.cancelled = map[int64]bool{}
	u.mu.Unlock()
}

func (u *shortSaleUseCase) symbolLock(followerID, symbol string) *sync.Mutex {
	u.mu.Lock()
	defer u.mu.Unlock()

	key := symbolKey{followerID, symbol}
	if u.symbolLocks[key] == nil {
		u.symbolLocks[key] = &sync.Mutex{}
	}

	return u.symbolLocks[key]
}

func (u *shortSaleUseCase) isMasterCancelled(masterOrderID int64) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	return u.cancelled[masterOrderID]
}

func (u *shortSaleUseCase) transition(task *structs.ShortSaleTask, status, errStr string) {
	u.mu.Lock()
	task.Status = status
	task.Error = errStr
	u.mu.Unlock()

	u.broadcast(task)
}

func (u *shortSaleUseCase) broadcast(task *structs.ShortSaleTask) {
	u.notifier.Notify(structs.Notification{
		Event:      structs.NotifyTaskUpdate,
		Level:      taskLevel(task.Status),
		SubjectID:  task.ID,
		FollowerID: task.FollowerID,
		Symbol:     task.Symbol,
		Status:     task.Status,
		Error:      task.Error,
		Message:    fmt.Sprintf("short sale task %s: %s", task.ID, task.Status),
	})
}

func taskLevel(status string) string {
	switch status {
	case structs.TaskStatusFailed:
		return structs.LevelError
	case structs.TaskStatusCancelled:
		return structs.LevelWarn
	}
	return structs.LevelInfo
}

func (u *shortSaleUseCase) executeTask(ctx context.Context, task *structs.ShortSaleTask, event *structs.MasterOrderEvent, follower *models.Follower, ctrl controllers.BrokerCtrl) {
	lock := u.symbolLock(task.FollowerID, task.Symbol)
	lock.Lock()
	defer lock.Unlock()

	defer func() {
		u.mu.Lock()
		delete(u.taskCancels, task.ID)
		u.mu.Unlock()
	}()

	if u.isMasterCancelled(task.MasterOrderID) || ctx.Err() != nil {
		u.transition(task, structs.TaskStatusCancelled, "master order cancelled before execution")
		return
	}

	u.transition(task, structs.TaskStatusChecking, "")

	// A transient capacity-query failure is treated as a capacity
	// failure, not a connectivity one: the session passed the liveness
	// gate just before dispatch.
	maxSell, err := ctrl.GetMaxSell(task.Symbol)
	if err != nil {
		u.transition(task, structs.TaskStatusFailed, fmt.Sprintf("capacity check failed: %s", err))
		return
	}

	deficit := task.RequiredQty - maxSell

	u.logger.Infof("short sale task %s capacity check: symbol=%s maxSell=%d required=%d",
		task.ID, task.Symbol, maxSell, task.RequiredQty)

	if deficit > 0 {
		u.mu.Lock()
		task.LocateDeficit = deficit
		u.mu.Unlock()

		u.transition(task, structs.TaskStatusLocating, "")

		select {
		case u.locateSlots <- struct{}{}:
		case <-ctx.Done():
			u.transition(task, structs.TaskStatusCancelled, "cancelled while waiting for locate slot")
			return
		}

		if u.isMasterCancelled(task.MasterOrderID) {
			<-u.locateSlots
			u.transition(task, structs.TaskStatusCancelled, "master order cancelled while waiting")
			return
		}

		timeout := time.Duration(follower.LocateRetryTimeout) * time.Second
		result, err := ctrl.Locate(ctx, task.Symbol, deficit, follower.MaxLocatePrice, timeout)
		<-u.locateSlots

		if ctx.Err() != nil {
			u.transition(task, structs.TaskStatusCancelled, "cancelled during locate")
			return
		}

		if err != nil {
			u.transition(task, structs.TaskStatusFailed, fmt.Sprintf("locate failed: %s", err))
			u.alert(task, fmt.Sprintf("could not locate %d shares of %s for %s: %s",
				deficit, task.Symbol, task.FollowerID, err))
			return
		}

		if result.FilledQty < deficit {
			u.transition(task, structs.TaskStatusFailed,
				fmt.Sprintf("locate incomplete: filled %d/%d shares", result.FilledQty, deficit))
			u.alert(task, fmt.Sprintf("could not locate %d shares of %s for %s (filled %d)",
				deficit, task.Symbol, task.FollowerID, result.FilledQty))
			return
		}

		u.logger.Infof("short sale task %s located %d shares of %s", task.ID, result.FilledQty, task.Symbol)
	}

	if u.isMasterCancelled(task.MasterOrderID) || ctx.Err() != nil {
		u.transition(task, structs.TaskStatusCancelled, "master order cancelled after locate")
		return
	}

	u.transition(task, structs.TaskStatusPlacingOrder, "")

	followerOrderID, err := u.orderReplicator.Replicate(event, task.FollowerID, ctrl)
	if err != nil {
		u.transition(task, structs.TaskStatusFailed, fmt.Sprintf("order submission failed: %s", err))
		return
	}

	u.mu.Lock()
	task.FollowerOrderID = followerOrderID
	u.mu.Unlock()

	u.transition(task, structs.TaskStatusCompleted, "")
}

func (u *shortSaleUseCase) alert(task *structs.ShortSaleTask, message string) {
	u.notifier.Notify(structs.Notification{
		Event:      structs.NotifyAlert,
		Level:      structs.LevelWarn,
		SubjectID:  task.ID,
		FollowerID: task.FollowerID,
		Symbol:     task.Symbol,
		Status:     task.Status,
		Message:    message,
	})
}
