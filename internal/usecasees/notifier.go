package usecasees

import (
	"fmt"
	"sync"
	"time"

	"dascopy/internal/controllers"
	"dascopy/internal/usecasees/structs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

//go:generate mockery --case=snake --name=Notifier

// Notifier receives every task transition, replication outcome and queue
// event. The engine never blocks on a sink.
type Notifier interface {
	Notify(n structs.Notification)
}

// notifierUseCase fans notifications out to the log, the telegram alert
// channel (warn/error only) and prometheus counters. Observers can
// register an additional sink for UI push.
type notifierUseCase struct {
	tgmController controllers.TgmCtrl
	counters      map[structs.MetricConst]prometheus.Counter

	mu    sync.RWMutex
	sinks []func(structs.Notification)

	logger *logrus.Logger
}

func NewNotifierUseCase(
	tgmController controllers.TgmCtrl,
	counters map[structs.MetricConst]prometheus.Counter,
	logger *logrus.Logger,
) *notifierUseCase {
	return &notifierUseCase{
		tgmController: tgmController,
		counters:      counters,
		logger:        logger,
	}
}

// AddSink registers an observer callback. Sinks must not block.
func (u *notifierUseCase) AddSink(sink func(structs.Notification)) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.sinks = append(u.sinks, sink)
}

func (u *notifierUseCase) SinkCount() int {
	u.mu.RLock()
	defer u.mu.RUnlock()

	return len(u.sinks)
}

func (u *notifierUseCase) Notify(n structs.Notification) {
	if n.Time.IsZero() {
		n.Time = time.Now()
	}

	entry := u.logger.
		WithField("event", n.Event).
		WithField("follower", n.FollowerID).
		WithField("symbol", n.Symbol).
		WithField("status", n.Status)

	switch n.Level {
	case structs.LevelError:
		entry.Error(n.Message)
	case structs.LevelWarn:
		entry.Warn(n.Message)
	default:
		entry.Info(n.Message)
	}

	u.count(n)

	if n.Level == structs.LevelError || n.Level == structs.LevelWarn {
		go func() {
			if err := u.tgmController.Send(fmt.Sprintf("[ %s ]\n"+
				"follower:\t%s\n"+
				"symbol:\t%s\n"+
				"status:\t%s\n"+
				"%s",
				n.Event,
				n.FollowerID,
				n.Symbol,
				n.Status,
				n.Message)); err != nil {
				u.logger.WithError(err).Error("telegram alert")
			}
		}()
	}

	u.mu.RLock()
	sinks := u.sinks
	u.mu.RUnlock()

	for _, sink := range sinks {
		sink(n)
	}
}

func (u *notifierUseCase) count(n structs.Notification) {
	if u.counters == nil {
		return
	}

	var metric structs.MetricConst = -1

	switch n.Event {
	case structs.NotifyOrderReplicated:
		metric = structs.MetricOrderReplicated
		if n.Error != "" {
			metric = structs.MetricOrderFailed
		}
	case structs.NotifyOrderCancelled:
		metric = structs.MetricOrderCancelled
	case structs.NotifyOrderReplaced:
		metric = structs.MetricOrderReplaced
	case structs.NotifyActionQueued:
		metric = structs.MetricActionQueued
	case structs.NotifyTaskUpdate:
		switch n.Status {
		case structs.TaskStatusCompleted:
			metric = structs.MetricLocateCompleted
		case structs.TaskStatusFailed:
			metric = structs.MetricLocateFailed
		case structs.TaskStatusCancelled:
			metric = structs.MetricTaskCancelled
		}
	}

	if counter, ok := u.counters[metric]; ok {
		counter.Inc()
	}
}
