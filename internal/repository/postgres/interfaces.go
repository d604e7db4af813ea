package postgres

import (
	"dascopy/models"
)

//go:generate mockery --case=snake --name=OrderMapRepo
//go:generate mockery --case=snake --name=FollowerRepo

type OrderMapRepo interface {
	Store(m *models.OrderMapping) error
	GetByID(id string) (*models.OrderMapping, error)
	GetByMasterOrder(masterOrderID int64) ([]models.OrderMapping, error)
	GetLive() ([]models.OrderMapping, error)
	SetStatus(id string, status string) error
	SetFollowerOrderID(id string, followerOrderID int64) error
}

type FollowerRepo interface {
	GetAll() ([]models.Follower, error)
	GetEnabled() ([]models.Follower, error)
	GetByID(id string) (*models.Follower, error)
	SetBaseMultiplier(id string, multiplier float64) error
	SetEnabled(id string, enabled bool) error
}
