package controllers

import (
	"context"
	"time"

	"dascopy/internal/usecasees/structs"

	tgmBotAPI "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

//go:generate mockery --case=snake --name=BrokerCtrl
//go:generate mockery --case=snake --name=TgmCtrl

// BrokerCtrl is one live broker-terminal session (master or follower).
type BrokerCtrl interface {
	IsAlive() bool
	GetPositions() ([]structs.Position, error)
	GetOrder(orderID int64) (*structs.MasterOrderEvent, error)
	GetMaxSell(symbol string) (int64, error)
	Locate(ctx context.Context, symbol string, quantity int64, maxPrice float64, timeout time.Duration) (*structs.LocateResult, error)
	SubmitOrder(order *structs.OrderRequest) (int64, error)
	CancelOrder(orderID int64) error
	ReplaceOrder(orderID, quantity int64, price float64) (int64, error)
	StreamEvents(ctx context.Context) (<-chan structs.MasterOrderEvent, error)
}

type TgmCtrl interface {
	Send(text string) error
	CheckChatID(chatID int64) bool
	Update(msgID int, text string) error
	GetUpdates() tgmBotAPI.UpdatesChannel
}
