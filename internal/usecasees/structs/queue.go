package structs

import "time"

const (
	ActionOrderSubmit  = "ORDER_SUBMIT"
	ActionOrderCancel  = "ORDER_CANCEL"
	ActionOrderReplace = "ORDER_REPLACE"
	ActionLocate       = "LOCATE"
)

// QueuedAction is a replication action deferred because the follower was
// unreachable at dispatch time.
type QueuedAction struct {
	ID            string    `json:"id"`
	FollowerID    string    `json:"followerId"`
	ActionType    string    `json:"actionType"`
	Symbol        string    `json:"symbol"`
	MasterOrderID int64     `json:"masterOrderId"`
	NewQuantity   int64     `json:"newQuantity,omitempty"`
	NewPrice      float64   `json:"newPrice,omitempty"`
	LocateQty     int64     `json:"locateQty,omitempty"`
	LocatePrice   float64   `json:"locatePrice,omitempty"`
	QueuedAt      time.Time `json:"queuedAt"`
}
