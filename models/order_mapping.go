package models

import "time"

const (
	MappingStatusPending   = "PENDING"
	MappingStatusActive    = "ACTIVE"
	MappingStatusFilled    = "FILLED"
	MappingStatusCancelled = "CANCELLED"
	MappingStatusFailed    = "FAILED"
	MappingStatusSkipped   = "SKIPPED"
)

// OrderMapping links one master order to the follower order that replicates
// it. Rows are superseded, never deleted, so a restart can still resolve
// cancel/replace events for in-flight orders.
type OrderMapping struct {
	ID              string    `db:"id"`
	MasterOrderID   int64     `db:"master_order_id"`
	FollowerID      string    `db:"follower_id"`
	FollowerOrderID int64     `db:"follower_order_id"`
	Symbol          string    `db:"symbol"`
	Side            string    `db:"side"`
	Quantity        int64     `db:"quantity"`
	Status          string    `db:"status"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (m *OrderMapping) IsLive() bool {
	return m.Status == MappingStatusPending || m.Status == MappingStatusActive
}
