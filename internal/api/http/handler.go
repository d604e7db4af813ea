package http

import (
	"context"

	"dascopy/internal/usecasees"
	"dascopy/internal/usecasees/structs"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type Engine interface {
	Connect() error
	StartReplication() error
	Stop()
	MarkReconciled()
	Snapshot() *usecasees.EngineSnapshot
	ReplayQueuedActions(ctx context.Context, followerID string, actionIDs []string) (map[string]bool, error)
	DiscardQueuedActions(followerID string, actionIDs []string) int
}

type Reconciler interface {
	Compute() ([]structs.FollowerReconciliation, error)
	Apply(decisions []structs.FollowerDecisions) (*usecasees.ReconcileStats, error)
}

type MultiplierService interface {
	SetOverride(followerID, symbol string, multiplier float64) error
	ClearOverride(followerID, symbol string) error
	ForFollower(followerID string) map[string]float64
}

type BlacklistService interface {
	Add(followerID, symbol, reason string) (bool, error)
	Remove(followerID, symbol string) (bool, error)
	ForFollower(followerID string) map[string]string
}

type TaskService interface {
	CancelTask(taskID string) bool
	AllTasks() []structs.ShortSaleTask
}

type QueueService interface {
	Pending(followerID string) []structs.QueuedAction
}

type Handler struct {
	fiber       *fiber.App
	engine      Engine
	reconciler  Reconciler
	multipliers MultiplierService
	blacklist   BlacklistService
	tasks       TaskService
	queue       QueueService
	logger      *logrus.Logger
}

func NewHandler(
	f *fiber.App,
	engine Engine,
	reconciler Reconciler,
	multipliers MultiplierService,
	blacklist BlacklistService,
	tasks TaskService,
	queue QueueService,
	l *logrus.Logger,
) *Handler {
	return &Handler{
		fiber:       f,
		engine:      engine,
		reconciler:  reconciler,
		multipliers: multipliers,
		blacklist:   blacklist,
		tasks:       tasks,
		queue:       queue,
		logger:      l,
	}
}

func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	body := struct {
		Status bool `json:"status"`
	}{
		Status: true,
	}

	if err := c.JSON(body); err != nil {
		return err
	}

	return nil
}

func (h *Handler) Connect(c *fiber.Ctx) error {
	if err := h.engine.Connect(); err != nil {
		h.logger.WithError(err).Error("connect failed")
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}

	return c.JSON(fiber.Map{"status": "connected"})
}

func (h *Handler) Start(c *fiber.Ctx) error {
	if err := h.engine.StartReplication(); err != nil {
		h.logger.WithError(err).Error("start failed")
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}

	return c.JSON(fiber.Map{"status": "replicating"})
}

func (h *Handler) Stop(c *fiber.Ctx) error {
	h.engine.Stop()

	return c.JSON(fiber.Map{"status": "stopped"})
}

func (h *Handler) Snapshot(c *fiber.Ctx) error {
	return c.JSON(h.engine.Snapshot())
}

func (h *Handler) Reconcile(c *fiber.Ctx) error {
	report, err := h.reconciler.Compute()
	if err != nil {
		h.logger.WithError(err).Error("reconcile compute failed")
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}

	return c.JSON(report)
}

func (h *Handler) ReconcileApply(c *fiber.Ctx) error {
	var decisions []structs.FollowerDecisions
	if err := c.BodyParser(&decisions); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	stats, err := h.reconciler.Apply(decisions)
	if err != nil {
		h.logger.WithError(err).Error("reconcile apply failed")
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(stats)
}

func (h *Handler) ReconcileSkip(c *fiber.Ctx) error {
	h.engine.MarkReconciled()

	return c.JSON(fiber.Map{"status": "reconciliation skipped"})
}

func (h *Handler) ListTasks(c *fiber.Ctx) error {
	return c.JSON(h.tasks.AllTasks())
}

func (h *Handler) CancelTask(c *fiber.Ctx) error {
	if !h.tasks.CancelTask(c.Params("id")) {
		return fiber.NewError(fiber.StatusNotFound, "task not found or already terminal")
	}

	return c.JSON(fiber.Map{"status": "cancelled"})
}

func (h *Handler) GetMultipliers(c *fiber.Ctx) error {
	return c.JSON(h.multipliers.ForFollower(c.Params("follower")))
}

func (h *Handler) SetMultiplier(c *fiber.Ctx) error {
	var body struct {
		Multiplier float64 `json:"multiplier"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if body.Multiplier <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "multiplier must be positive")
	}

	if err := h.multipliers.SetOverride(c.Params("follower"), c.Params("symbol"), body.Multiplier); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) DeleteMultiplier(c *fiber.Ctx) error {
	if err := h.multipliers.ClearOverride(c.Params("follower"), c.Params("symbol")); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) GetBlacklist(c *fiber.Ctx) error {
	return c.JSON(h.blacklist.ForFollower(c.Params("follower")))
}

func (h *Handler) AddBlacklist(c *fiber.Ctx) error {
	added, err := h.blacklist.Add(c.Params("follower"), c.Params("symbol"), "manual")
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{"added": added})
}

func (h *Handler) RemoveBlacklist(c *fiber.Ctx) error {
	removed, err := h.blacklist.Remove(c.Params("follower"), c.Params("symbol"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{"removed": removed})
}

func (h *Handler) GetQueue(c *fiber.Ctx) error {
	return c.JSON(h.queue.Pending(c.Params("follower")))
}

func (h *Handler) ReplayQueue(c *fiber.Ctx) error {
	var body struct {
		ActionIDs []string `json:"actionIds"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	results, err := h.engine.ReplayQueuedActions(c.UserContext(), c.Params("follower"), body.ActionIDs)
	if err != nil {
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}

	return c.JSON(results)
}

func (h *Handler) DiscardQueue(c *fiber.Ctx) error {
	var body struct {
		ActionIDs []string `json:"actionIds"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	discarded := h.engine.DiscardQueuedActions(c.Params("follower"), body.ActionIDs)

	return c.JSON(fiber.Map{"discarded": discarded})
}
