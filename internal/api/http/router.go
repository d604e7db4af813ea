package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

func RegisterHTTPEndpoints(
	f *fiber.App,
	engine Engine,
	reconciler Reconciler,
	multipliers MultiplierService,
	blacklist BlacklistService,
	tasks TaskService,
	queue QueueService,
	l *logrus.Logger,
) {
	h := NewHandler(f, engine, reconciler, multipliers, blacklist, tasks, queue, l)

	router := f.Group("api")
	router.Get("/healthcheck", h.HealthCheck)

	router.Post("/connect", h.Connect)
	router.Post("/start", h.Start)
	router.Post("/stop", h.Stop)
	router.Get("/snapshot", h.Snapshot)

	router.Get("/reconcile", h.Reconcile)
	router.Post("/reconcile/apply", h.ReconcileApply)
	router.Post("/reconcile/skip", h.ReconcileSkip)

	router.Get("/tasks", h.ListTasks)
	router.Post("/tasks/:id/cancel", h.CancelTask)

	router.Get("/multipliers/:follower", h.GetMultipliers)
	router.Put("/multipliers/:follower/:symbol", h.SetMultiplier)
	router.Delete("/multipliers/:follower/:symbol", h.DeleteMultiplier)

	router.Get("/blacklist/:follower", h.GetBlacklist)
	router.Post("/blacklist/:follower/:symbol", h.AddBlacklist)
	router.Delete("/blacklist/:follower/:symbol", h.RemoveBlacklist)

	router.Get("/queue/:follower", h.GetQueue)
	router.Post("/queue/:follower/replay", h.ReplayQueue)
	router.Post("/queue/:follower/discard", h.DiscardQueue)
}
