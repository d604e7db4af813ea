package structs

import "time"

const (
	TaskStatusPending      = "PENDING"
	TaskStatusChecking     = "CHECKING"
	TaskStatusLocating     = "LOCATING"
	TaskStatusPlacingOrder = "PLACING_ORDER"
	TaskStatusCompleted    = "COMPLETED"
	TaskStatusFailed       = "FAILED"
	TaskStatusCancelled    = "CANCELLED"
)

// ShortSaleTask tracks one locate-then-short workflow for one follower.
type ShortSaleTask struct {
	ID              string    `json:"id"`
	FollowerID      string    `json:"followerId"`
	Symbol          string    `json:"symbol"`
	MasterOrderID   int64     `json:"masterOrderId"`
	RequiredQty     int64     `json:"requiredQty"`
	LocateDeficit   int64     `json:"locateDeficit"`
	Status          string    `json:"status"`
	Error           string    `json:"error,omitempty"`
	FollowerOrderID int64     `json:"followerOrderId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (t *ShortSaleTask) IsTerminal() bool {
	switch t.Status {
	case TaskStatusCompleted, TaskStatusFailed, TaskStatusCancelled:
		return true
	}
	return false
}
