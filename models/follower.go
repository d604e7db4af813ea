package models

import "time"

// Follower is the stored configuration of one follower account.
type Follower struct {
	ID                 string    `db:"id"`
	Name               string    `db:"name"`
	AccountID          string    `db:"account_id"`
	Host               string    `db:"host"`
	Port               int       `db:"port"`
	BaseMultiplier     float64   `db:"base_multiplier"`
	MaxLocatePrice     float64   `db:"max_locate_price"`
	LocateRetryTimeout int       `db:"locate_retry_timeout"`
	Enabled            bool      `db:"enabled"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}
