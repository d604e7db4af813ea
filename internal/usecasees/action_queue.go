package usecasees

import (
	"sync"
	"time"

	"dascopy/internal/usecasees/structs"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// actionQueueUseCase holds actions destined for unreachable followers.
// Held in memory only: a process restart also clears the in-flight order
// map, so replaying stale actions after a restart would be unsafe.
type actionQueueUseCase struct {
	mu     sync.Mutex
	queues map[string][]structs.QueuedAction

	logger *logrus.Logger
}

func NewActionQueueUseCase(logger *logrus.Logger) *actionQueueUseCase {
	return &actionQueueUseCase{
		queues: map[string][]structs.QueuedAction{},
		logger: logger,
	}
}

func (u *actionQueueUseCase) Enqueue(action structs.QueuedAction) structs.QueuedAction {
	action.ID = uuid.NewString()
	action.QueuedAt = time.Now()

	u.mu.Lock()
	u.queues[action.FollowerID] = append(u.queues[action.FollowerID], action)
	u.mu.Unlock()

	u.logger.Infof("queued %s for follower %s: %s", action.ActionType, action.FollowerID, action.Symbol)

	return action
}

// Pending returns a copy of the queue for a follower in enqueue order.
func (u *actionQueueUseCase) Pending(followerID string) []structs.QueuedAction {
	u.mu.Lock()
	defer u.mu.Unlock()

	out := make([]structs.QueuedAction, len(u.queues[followerID]))
	copy(out, u.queues[followerID])

	return out
}

func (u *actionQueueUseCase) HasPending(followerID string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	return len(u.queues[followerID]) > 0
}

// Take removes the selected actions and returns them, preserving the
// original enqueue order so a replay reproduces the master's sequence.
func (u *actionQueueUseCase) Take(followerID string, actionIDs []string) []structs.QueuedAction {
	wanted := map[string]bool{}
	for _, id := range actionIDs {
		wanted[id] = true
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	var taken, kept []structs.QueuedAction
	for _, action := range u.queues[followerID] {
		if wanted[action.ID] {
			taken = append(taken, action)
		} else {
			kept = append(kept, action)
		}
	}
	u.queues[followerID] = kept

	return taken
}

// Drain removes and returns every queued action for a follower in
// enqueue order.
func (u *actionQueueUseCase) Drain(followerID string) []structs.QueuedAction {
	u.mu.Lock()
	defer u.mu.Unlock()

	out := u.queues[followerID]
	delete(u.queues, followerID)

	return out
}

// Discard drops the selected actions without replay. Returns the number
// removed.
func (u *actionQueueUseCase) Discard(followerID string, actionIDs []string) int {
	return len(u.Take(followerID, actionIDs))
}

func (u *actionQueueUseCase) Clear() {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.queues = map[string][]structs.QueuedAction{}
}
