package usecasees

import (
	"strings"
	"sync"
	"testing"
	"time"

	ctrlMocks "dascopy/internal/controllers/mocks"
	"dascopy/internal/usecasees/structs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newNotifierForTest(t *testing.T) (*notifierUseCase, *ctrlMocks.TgmCtrl) {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	tgm := &ctrlMocks.TgmCtrl{}

	counters := map[structs.MetricConst]prometheus.Counter{}
	for _, m := range []structs.MetricConst{
		structs.MetricOrderReplicated,
		structs.MetricOrderCancelled,
		structs.MetricActionQueued,
		structs.MetricLocateCompleted,
	} {
		counters[m] = prometheus.NewCounter(prometheus.CounterOpts{Name: m.ToString()})
	}

	return NewNotifierUseCase(tgm, counters, logger), tgm
}

func Test_NotifierAlertsTelegramOnWarn(t *testing.T) {
	notifier, tgm := newNotifierForTest(t)

	sent := make(chan string, 1)
	tgm.On("Send", mock.AnythingOfType("string")).Run(func(args mock.Arguments) {
		sent <- args.String(0)
	}).Return(nil)

	notifier.Notify(structs.Notification{
		Event:      structs.NotifyActionQueued,
		Level:      structs.LevelWarn,
		FollowerID: "f1",
		Symbol:     "AAPL",
		Message:    "follower f1 offline, order_submit for AAPL queued",
	})

	select {
	case msg := <-sent:
		assert.True(t, strings.Contains(msg, "f1"))
		assert.True(t, strings.Contains(msg, "AAPL"))
	case <-time.After(5 * time.Second):
		t.Fatal("telegram alert not sent")
	}
}

func Test_NotifierSkipsTelegramOnInfo(t *testing.T) {
	notifier, tgm := newNotifierForTest(t)

	notifier.Notify(structs.Notification{
		Event:   structs.NotifyOrderReplicated,
		Level:   structs.LevelInfo,
		Message: "replicated",
	})

	tgm.AssertNotCalled(t, "Send", mock.Anything)
}

func Test_NotifierFansOutToSinks(t *testing.T) {
	notifier, _ := newNotifierForTest(t)

	var mu sync.Mutex
	var received []structs.Notification

	assert.Equal(t, 0, notifier.SinkCount())
	notifier.AddSink(func(n structs.Notification) {
		mu.Lock()
		received = append(received, n)
		mu.Unlock()
	})
	assert.Equal(t, 1, notifier.SinkCount())

	notifier.Notify(structs.Notification{Event: structs.NotifyTaskUpdate, Status: structs.TaskStatusCompleted})
	notifier.Notify(structs.Notification{Event: structs.NotifyOrderCancelled})

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, received, 2)
	assert.False(t, received[0].Time.IsZero())
}
