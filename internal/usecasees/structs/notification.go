package structs

import "time"

const (
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"

	NotifyTaskUpdate       = "short_sale_task_update"
	NotifyOrderReplicated  = "order_replicated"
	NotifyOrderCancelled   = "order_cancelled"
	NotifyOrderReplaced    = "order_replaced"
	NotifyActionQueued     = "action_queued"
	NotifyActionsReplayed  = "actions_replayed"
	NotifyActionsAvailable = "queued_actions_available"
	NotifyAlert            = "alert"
	NotifyStateUpdate      = "state_update"
)

// Notification is the payload pushed to the presentation layer on every
// task transition, replication outcome and queue event.
type Notification struct {
	Event      string    `json:"event"`
	Level      string    `json:"level"`
	SubjectID  string    `json:"subjectId"`
	FollowerID string    `json:"followerId,omitempty"`
	Symbol     string    `json:"symbol,omitempty"`
	Status     string    `json:"status,omitempty"`
	Error      string    `json:"error,omitempty"`
	Message    string    `json:"message,omitempty"`
	Time       time.Time `json:"time"`
}
