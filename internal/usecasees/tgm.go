package usecasees

import (
	"dascopy/internal/controllers"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/sirupsen/logrus"
)

type tgmUseCase struct {
	engineUseCase    *engineUseCase
	shortSaleUseCase *shortSaleUseCase
	actionQueue      *actionQueueUseCase
	tgmController    *controllers.TgmController
	logger           *logrus.Logger
}

func NewTgmUseCase(
	engineUseCase *engineUseCase,
	shortSaleUseCase *shortSaleUseCase,
	actionQueue *actionQueueUseCase,
	tgmController *controllers.TgmController,
	logger *logrus.Logger,
) *tgmUseCase {
	return &tgmUseCase{
		engineUseCase:    engineUseCase,
		shortSaleUseCase: shortSaleUseCase,
		actionQueue:      actionQueue,
		tgmController:    tgmController,
		logger:           logger,
	}
}

func (u *tgmUseCase) CommandProcessor() {
	for update := range u.tgmController.GetUpdates() {
		if update.Message == nil {
			continue
		}

		if u.tgmController.CheckChatID(update.Message.Chat.ID) {
			switch update.Message.Command() {
			case "ping":
				u.pingProc()
			case "status":
				u.statusProc()
			case "tasks":
				u.tasksProc()
			case "queue":
				u.queueProc()
			}
		}
	}
}

func (u *tgmUseCase) pingProc() {
	if err := u.tgmController.Send(
		fmt.Sprintf(
			"PONG [ %s ]",
			time.Now().Format(time.RFC822),
		)); err != nil {
		u.logger.Debug(err)
	}
}

func (u *tgmUseCase) statusProc() {
	snapshot := u.engineUseCase.Snapshot()

	msg := fmt.Sprintf(
		"[ Engine Status ]\n"+
			"State:\t%s\n"+
			"Followers:\t%d\n"+
			"Active tasks:\t%d\n"+
			"Live mappings:\t%d\n",
		snapshot.State,
		len(snapshot.Followers),
		len(snapshot.ActiveTasks),
		len(snapshot.OrderMappings),
	)

	for followerID, connected := range snapshot.Followers {
		state := "OFFLINE"
		if connected {
			state = "ONLINE"
		}
		msg += fmt.Sprintf("%s:\t%s\n", followerID, state)
	}

	if err := u.tgmController.Send(msg); err != nil {
		u.logger.
			Error(string(debug.Stack()))
	}
}

func (u *tgmUseCase) tasksProc() {
	tasks := u.shortSaleUseCase.ActiveTasks()

	if len(tasks) == 0 {
		if err := u.tgmController.Send("No active short sale tasks"); err != nil {
			u.logger.Debug(err)
		}
		return
	}

	msg := "[ Short Sale Tasks ]\n"
	for _, task := range tasks {
		msg += fmt.Sprintf(
			"Task:\t%s\n"+
				"Follower:\t%s\n"+
				"Symbol:\t%s\n"+
				"Qty:\t%d\n"+
				"Status:\t%s\n",
			task.ID,
			task.FollowerID,
			task.Symbol,
			task.RequiredQty,
			task.Status,
		)
	}

	if err := u.tgmController.Send(msg); err != nil {
		u.logger.
			Error(string(debug.Stack()))
	}
}

func (u *tgmUseCase) queueProc() {
	msg := "[ Queued Actions ]\n"

	var total int
	for _, session := range u.engineUseCase.FollowerSessions() {
		pending := u.actionQueue.Pending(session.Follower.ID)
		if len(pending) == 0 {
			continue
		}

		total += len(pending)
		msg += fmt.Sprintf("%s:\t%d\n", session.Follower.ID, len(pending))
		for _, action := range pending {
			msg += fmt.Sprintf("\t%s %s\n", action.ActionType, action.Symbol)
		}
	}

	if total == 0 {
		msg = "Action queue is empty"
	}

	if err := u.tgmController.Send(msg); err != nil {
		u.logger.
			Error(string(debug.Stack()))
	}
}
