package mongo

import (
	"dascopy/internal/repository/mongo/structs"
)

//go:generate mockery --case=snake --name=MultiplierRepo
//go:generate mockery --case=snake --name=BlacklistRepo

type MultiplierRepo interface {
	LoadAll() ([]structs.SymbolMultiplier, error)
	Upsert(followerID, symbol string, multiplier float64, source string) error
	Delete(followerID, symbol string) error
}

type BlacklistRepo interface {
	LoadAll() ([]structs.BlacklistEntry, error)
	Insert(followerID, symbol, reason string) error
	Delete(followerID, symbol string) error
}
