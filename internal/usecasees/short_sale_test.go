package usecasees

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	ctrlMocks "dascopy/internal/controllers/mocks"
	mongoMocks "dascopy/internal/repository/mongo/mocks"
	pgMocks "dascopy/internal/repository/postgres/mocks"
	"dascopy/internal/usecasees/structs"
	"dascopy/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// taskRecorder captures task status notifications in order and lets the
// test wait for specific transitions.
type taskRecorder struct {
	mu       sync.Mutex
	statuses []string
	alerts   int
	statusCh chan string
}

func newTaskRecorder() *taskRecorder {
	return &taskRecorder{statusCh: make(chan string, 32)}
}

func (r *taskRecorder) Notify(n structs.Notification) {
	r.mu.Lock()
	if n.Event == structs.NotifyTaskUpdate {
		r.statuses = append(r.statuses, n.Status)
	}
	if n.Event == structs.NotifyAlert {
		r.alerts++
	}
	r.mu.Unlock()

	if n.Event == structs.NotifyTaskUpdate {
		r.statusCh <- n.Status
	}
}

func (r *taskRecorder) waitFor(t *testing.T, status string) {
	t.Helper()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case s := <-r.statusCh:
			if s == status {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for status %s, saw %v", status, r.seen())
		}
	}
}

func (r *taskRecorder) waitTerminal(t *testing.T) string {
	t.Helper()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case s := <-r.statusCh:
			switch s {
			case structs.TaskStatusCompleted, structs.TaskStatusFailed, structs.TaskStatusCancelled:
				return s
			}
		case <-deadline:
			t.Fatalf("timed out waiting for terminal status, saw %v", r.seen())
		}
	}
}

func (r *taskRecorder) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.statuses))
	copy(out, r.statuses)

	return out
}

func (r *taskRecorder) alertCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.alerts
}

type shortSaleHarness struct {
	broker   *ctrlMocks.BrokerCtrl
	recorder *taskRecorder
	useCase  *shortSaleUseCase
	follower *models.Follower
}

func newShortSaleHarness() *shortSaleHarness {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	orderMapRepo := &pgMocks.OrderMapRepo{}
	orderMapRepo.On("Store", mock.AnythingOfType("*models.OrderMapping")).Return(nil).Maybe()

	recorder := newTaskRecorder()

	multiplier := NewMultiplierUseCase(&mongoMocks.MultiplierRepo{}, logger)
	multiplier.SetBase("f1", 2.0)

	orderMap := NewOrderMapUseCase(orderMapRepo, logger)
	replicator := NewOrderReplicatorUseCase(multiplier, orderMap, recorder, logger)

	return &shortSaleHarness{
		broker:   &ctrlMocks.BrokerCtrl{},
		recorder: recorder,
		useCase:  NewShortSaleUseCase(multiplier, replicator, recorder, nil, logger),
		follower: &models.Follower{
			ID:                 "f1",
			AccountID:          "ACC1",
			MaxLocatePrice:     0.05,
			LocateRetryTimeout: 1,
		},
	}
}

func shortEvent(orderID int64, qty int64) *structs.MasterOrderEvent {
	return &structs.MasterOrderEvent{
		Type:      structs.EventOrderAccepted,
		OrderID:   orderID,
		Symbol:    "AAPL",
		Side:      structs.SideShort,
		Quantity:  qty,
		Price:     180.5,
		OrderType: structs.OrderTypeLimit,
	}
}

func Test_ShortSaleLocatePath(t *testing.T) {
	h := newShortSaleHarness()

	h.broker.On("GetMaxSell", "AAPL").Return(int64(0), nil)
	h.broker.On("Locate", mock.Anything, "AAPL", int64(600), 0.05, time.Second).
		Return(&structs.LocateResult{Symbol: "AAPL", FilledQty: 600, AvgPrice: 0.03}, nil)
	h.broker.On("SubmitOrder", mock.AnythingOfType("*structs.OrderRequest")).Return(int64(555), nil)

	taskID := h.useCase.HandleShortSale(shortEvent(10, 300), h.follower, h.broker)

	assert.Equal(t, structs.TaskStatusCompleted, h.recorder.waitTerminal(t))

	assert.Equal(t, []string{
		structs.TaskStatusPending,
		structs.TaskStatusChecking,
		structs.TaskStatusLocating,
		structs.TaskStatusPlacingOrder,
		structs.TaskStatusCompleted,
	}, h.recorder.seen())

	for _, task := range h.useCase.AllTasks() {
		if task.ID == taskID {
			assert.Equal(t, int64(555), task.FollowerOrderID)
			assert.Equal(t, int64(600), task.RequiredQty)
			assert.Equal(t, int64(600), task.LocateDeficit)
		}
	}

	h.broker.AssertExpectations(t)
}

func Test_ShortSaleSufficientCapacity(t *testing.T) {
	h := newShortSaleHarness()

	h.broker.On("GetMaxSell", "AAPL").Return(int64(600), nil)
	h.broker.On("SubmitOrder", mock.AnythingOfType("*structs.OrderRequest")).Return(int64(556), nil)

	h.useCase.HandleShortSale(shortEvent(11, 300), h.follower, h.broker)

	assert.Equal(t, structs.TaskStatusCompleted, h.recorder.waitTerminal(t))
	assert.NotContains(t, h.recorder.seen(), structs.TaskStatusLocating)

	h.broker.AssertNotCalled(t, "Locate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func Test_ShortSaleCapacityCheckFails(t *testing.T) {
	h := newShortSaleHarness()

	h.broker.On("GetMaxSell", "AAPL").Return(int64(0), errors.New("query timed out"))

	h.useCase.HandleShortSale(shortEvent(12, 300), h.follower, h.broker)

	assert.Equal(t, structs.TaskStatusFailed, h.recorder.waitTerminal(t))

	h.broker.AssertNotCalled(t, "Locate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	h.broker.AssertNotCalled(t, "SubmitOrder", mock.Anything)
}

func Test_ShortSalePartialLocate(t *testing.T) {
	h := newShortSaleHarness()

	h.broker.On("GetMaxSell", "AAPL").Return(int64(0), nil)
	h.broker.On("Locate", mock.Anything, "AAPL", int64(600), 0.05, time.Second).
		Return(&structs.LocateResult{Symbol: "AAPL", FilledQty: 100}, nil)

	h.useCase.HandleShortSale(shortEvent(13, 300), h.follower, h.broker)

	assert.Equal(t, structs.TaskStatusFailed, h.recorder.waitTerminal(t))
	assert.Equal(t, 1, h.recorder.alertCount())

	h.broker.AssertNotCalled(t, "SubmitOrder", mock.Anything)
}

func Test_ShortSaleCancelDuringLocate(t *testing.T) {
	h := newShortSaleHarness()

	h.broker.On("GetMaxSell", "AAPL").Return(int64(0), nil)
	h.broker.On("Locate", mock.Anything, "AAPL", int64(600), 0.05, time.Second).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			<-ctx.Done()
		}).
		Return(nil, context.Canceled)

	h.useCase.HandleShortSale(shortEvent(14, 300), h.follower, h.broker)

	h.recorder.waitFor(t, structs.TaskStatusLocating)
	h.useCase.OnMasterOrderCancelled(14)

	assert.Equal(t, structs.TaskStatusCancelled, h.recorder.waitTerminal(t))

	h.broker.AssertNotCalled(t, "SubmitOrder", mock.Anything)
}

func Test_ShortSaleCancelledBeforeExecution(t *testing.T) {
	h := newShortSaleHarness()

	h.useCase.OnMasterOrderCancelled(15)
	h.useCase.HandleShortSale(shortEvent(15, 300), h.follower, h.broker)

	assert.Equal(t, structs.TaskStatusCancelled, h.recorder.waitTerminal(t))

	h.broker.AssertNotCalled(t, "GetMaxSell", mock.Anything)
}

// serializingBroker verifies that capacity checks and order placement for
// the same follower and symbol never interleave.
type serializingBroker struct {
	mu         sync.Mutex
	inCritical int
	maxSeen    int
	maxSell    int64
	submits    int64
}

func (b *serializingBroker) enter() {
	b.mu.Lock()
	b.inCritical++
	if b.inCritical > b.maxSeen {
		b.maxSeen = b.inCritical
	}
	b.mu.Unlock()
}

func (b *serializingBroker) IsAlive() bool { return true }

func (b *serializingBroker) GetPositions() ([]structs.Position, error) { return nil, nil }

func (b *serializingBroker) GetOrder(int64) (*structs.MasterOrderEvent, error) { return nil, nil }

func (b *serializingBroker) GetMaxSell(string) (int64, error) {
	b.enter()
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.maxSell, nil
}

func (b *serializingBroker) Locate(ctx context.Context, symbol string, quantity int64, maxPrice float64, timeout time.Duration) (*structs.LocateResult, error) {
	time.Sleep(20 * time.Millisecond)

	b.mu.Lock()
	b.maxSell += quantity
	b.mu.Unlock()

	return &structs.LocateResult{Symbol: symbol, FilledQty: quantity}, nil
}

func (b *serializingBroker) SubmitOrder(order *structs.OrderRequest) (int64, error) {
	b.mu.Lock()
	b.maxSell -= order.Quantity
	b.submits++
	b.inCritical--
	b.mu.Unlock()

	return b.submits, nil
}

func (b *serializingBroker) CancelOrder(int64) error { return nil }

func (b *serializingBroker) ReplaceOrder(int64, int64, float64) (int64, error) { return 0, nil }

func (b *serializingBroker) StreamEvents(context.Context) (<-chan structs.MasterOrderEvent, error) {
	return nil, nil
}

func Test_ShortSaleSerializesPerSymbol(t *testing.T) {
	h := newShortSaleHarness()
	broker := &serializingBroker{}

	h.useCase.HandleShortSale(shortEvent(20, 300), h.follower, broker)
	h.useCase.HandleShortSale(shortEvent(21, 300), h.follower, broker)

	first := h.recorder.waitTerminal(t)
	second := h.recorder.waitTerminal(t)

	assert.Equal(t, structs.TaskStatusCompleted, first)
	assert.Equal(t, structs.TaskStatusCompleted, second)

	broker.mu.Lock()
	defer broker.mu.Unlock()
	assert.Equal(t, 1, broker.maxSeen)
	assert.Equal(t, int64(2), broker.submits)
}
