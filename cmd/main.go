package main

import (
	"flag"
	"fmt"
	"strconv"

	"dascopy/internal/api/http"
	"dascopy/internal/controllers"
	"dascopy/internal/repository/mongo"
	"dascopy/internal/repository/postgres"
	"dascopy/internal/usecasees"
	"dascopy/models"

	"github.com/gofiber/fiber/v2"
)

func main() {
	var app App
	var confFileName string

	flag.StringVar(&confFileName, "config", ".env", "")
	flag.Parse()

	if err := app.loadConfig(confFileName); err != nil {
		panic(err)
	}

	app.initLogger()

	if app.Config.LokiAddr != "" {
		if err := app.initLoki(); err != nil {
			app.Logger.WithError(err).Error("loki init failed")
		}
	}

	if err := app.initTgBot(); err != nil {
		panic(err)
	}

	if err := app.InitDB(app.Config.DB); err != nil {
		panic(err)
	}

	if err := app.initMongo(); err != nil {
		panic(err)
	}

	app.initHTTPClient()
	app.InitMetrics()

	chatId, err := strconv.ParseInt(app.Config.TelegramChatID, 10, 64)
	if err != nil {
		panic(err)
	}

	maxLocates, err := strconv.Atoi(app.Config.MaxConcurrentLocates)
	if err != nil {
		panic(err)
	}

	followerRepo := postgres.NewFollowerRepository(app.DB)
	orderMapRepo := postgres.NewOrderMapRepository(app.DB)
	multiplierRepo := mongo.NewMultiplierRepository(app.Mongo)
	blacklistRepo := mongo.NewBlacklistRepository(app.Mongo)

	cryptoController := controllers.NewCryptoController(
		app.Config.BridgeSecretKey,
	)
	tgmController := controllers.NewTgmController(
		app.TGM,
		chatId,
	)
	masterController := controllers.NewBrokerController(
		app.HTTPClient,
		cryptoController,
		app.Config.MasterUrl,
		app.Config.MasterAccountID,
		app.Config.BridgeApiKey,
		app.Logger,
	)

	brokerFactory := func(follower *models.Follower) controllers.BrokerCtrl {
		return controllers.NewBrokerController(
			app.HTTPClient,
			cryptoController,
			fmt.Sprintf("http://%s:%d", follower.Host, follower.Port),
			follower.AccountID,
			app.Config.BridgeApiKey,
			app.Logger,
		)
	}

	notifier := usecasees.NewNotifierUseCase(
		tgmController,
		app.Metrics.Replication,
		app.Logger,
	)

	multiplierUseCase := usecasees.NewMultiplierUseCase(multiplierRepo, app.Logger)
	blacklistUseCase := usecasees.NewBlacklistUseCase(blacklistRepo, app.Logger)
	orderMapUseCase := usecasees.NewOrderMapUseCase(orderMapRepo, app.Logger)

	orderReplicator := usecasees.NewOrderReplicatorUseCase(
		multiplierUseCase,
		orderMapUseCase,
		notifier,
		app.Logger,
	)

	locateSlots := make(chan struct{}, maxLocates)

	shortSaleUseCase := usecasees.NewShortSaleUseCase(
		multiplierUseCase,
		orderReplicator,
		notifier,
		locateSlots,
		app.Logger,
	)

	locateReplicator := usecasees.NewLocateReplicatorUseCase(
		multiplierUseCase,
		notifier,
		locateSlots,
		app.Logger,
	)

	actionQueue := usecasees.NewActionQueueUseCase(app.Logger)

	engineUseCase := usecasees.NewEngineUseCase(
		masterController,
		brokerFactory,
		followerRepo,
		multiplierUseCase,
		blacklistUseCase,
		orderMapUseCase,
		orderReplicator,
		shortSaleUseCase,
		locateReplicator,
		actionQueue,
		notifier,
		app.Logger,
	)

	reconcileUseCase := usecasees.NewReconcileUseCase(
		engineUseCase,
		multiplierUseCase,
		blacklistUseCase,
		engineUseCase.MarkReconciled,
		app.Logger,
	)

	if app.Config.RestartCron != "" {
		if err := engineUseCase.ScheduleDailyRestart(app.Config.RestartCron); err != nil {
			panic(err)
		}
	}

	tgmUseCase := usecasees.NewTgmUseCase(
		engineUseCase,
		shortSaleUseCase,
		actionQueue,
		tgmController,
		app.Logger,
	)
	go tgmUseCase.CommandProcessor()

	f := fiber.New()

	middleware := http.NewMiddleware(f, app.Config.AppName)
	middleware.UseMetrics()

	http.RegisterHTTPEndpoints(
		f,
		engineUseCase,
		reconcileUseCase,
		multiplierUseCase,
		blacklistUseCase,
		shortSaleUseCase,
		actionQueue,
		app.Logger,
	)

	if err := f.Listen(fmt.Sprintf(":%s", app.Config.AppPort)); err != nil {
		panic(err)
	}
}
