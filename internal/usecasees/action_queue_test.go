package usecasees

import (
	"testing"

	"dascopy/internal/usecasees/structs"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newQueueForTest() *actionQueueUseCase {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	return NewActionQueueUseCase(logger)
}

func Test_ActionQueueOrder(t *testing.T) {
	u := newQueueForTest()

	a1 := u.Enqueue(structs.QueuedAction{FollowerID: "f1", ActionType: structs.ActionOrderSubmit, Symbol: "AAPL", MasterOrderID: 1})
	a2 := u.Enqueue(structs.QueuedAction{FollowerID: "f1", ActionType: structs.ActionOrderCancel, Symbol: "AAPL", MasterOrderID: 1})
	a3 := u.Enqueue(structs.QueuedAction{FollowerID: "f1", ActionType: structs.ActionOrderSubmit, Symbol: "TSLA", MasterOrderID: 2})

	assert.True(t, u.HasPending("f1"))
	assert.False(t, u.HasPending("f2"))

	pending := u.Pending("f1")
	assert.Len(t, pending, 3)
	assert.Equal(t, []string{a1.ID, a2.ID, a3.ID}, []string{pending[0].ID, pending[1].ID, pending[2].ID})

	t.Run("take preserves enqueue order", func(t *testing.T) {
		taken := u.Take("f1", []string{a3.ID, a1.ID})
		assert.Len(t, taken, 2)
		assert.Equal(t, a1.ID, taken[0].ID)
		assert.Equal(t, a3.ID, taken[1].ID)

		left := u.Pending("f1")
		assert.Len(t, left, 1)
		assert.Equal(t, a2.ID, left[0].ID)
	})
}

func Test_ActionQueueDiscard(t *testing.T) {
	u := newQueueForTest()

	a1 := u.Enqueue(structs.QueuedAction{FollowerID: "f1", ActionType: structs.ActionOrderSubmit, Symbol: "AAPL"})
	u.Enqueue(structs.QueuedAction{FollowerID: "f1", ActionType: structs.ActionOrderSubmit, Symbol: "MSFT"})
	u.Enqueue(structs.QueuedAction{FollowerID: "f1", ActionType: structs.ActionLocate, Symbol: "GME"})

	assert.Equal(t, 1, u.Discard("f1", []string{a1.ID}))
	assert.Len(t, u.Pending("f1"), 2)

	assert.Equal(t, 0, u.Discard("f1", []string{"no-such-id"}))
	assert.Len(t, u.Pending("f1"), 2)
}

func Test_ActionQueueDrainAndClear(t *testing.T) {
	u := newQueueForTest()

	u.Enqueue(structs.QueuedAction{FollowerID: "f1", ActionType: structs.ActionOrderSubmit, Symbol: "AAPL"})
	u.Enqueue(structs.QueuedAction{FollowerID: "f2", ActionType: structs.ActionOrderSubmit, Symbol: "AAPL"})

	drained := u.Drain("f1")
	assert.Len(t, drained, 1)
	assert.False(t, u.HasPending("f1"))
	assert.True(t, u.HasPending("f2"))

	u.Clear()
	assert.False(t, u.HasPending("f2"))
}
