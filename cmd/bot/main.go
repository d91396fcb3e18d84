package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // TIMEZONE must resolve on minimal images

	"weather_notification_bot/internal/app"
	"weather_notification_bot/internal/domain/location"
	"weather_notification_bot/internal/infra/config"
	idb "weather_notification_bot/internal/infra/database"
	"weather_notification_bot/internal/infra/httpserver"
	"weather_notification_bot/internal/infra/logger"
	"weather_notification_bot/internal/infra/metrics"
	"weather_notification_bot/internal/infra/scheduler"
	"weather_notification_bot/internal/infra/session"
	"weather_notification_bot/internal/infra/telegram"
	"weather_notification_bot/internal/infra/weatherapi"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("Could not load application configuration: %v", err)
	}
	logger.Init(cfg)
	mainLogger := logger.Component("main")

	mainLogger.WithFields(logrus.Fields{
		"environment": cfg.Environment,
		"timezone":    cfg.TimeZone,
		"admin_id":    cfg.AdminTelegramID,
	}).Info("Weather Notification Bot starting...")

	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()

	// Initialize Database Connection
	db, dialect, err := idb.Open(appCtx, cfg.DatabaseURL)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not connect to database")
	}
	defer db.Close()
	mainLogger.WithField("dialect", dialect).Info("Database connection established and migrated.")

	prefRepo := idb.NewPreferenceRepository(db, dialect)
	sessions := session.NewStore()
	recorder := metrics.New()

	provider := weatherapi.NewProvider(cfg.WeatherAPIBaseURL, cfg.WeatherAPIKey, cfg.WeatherAPITimeout, cfg.Location, logger.Component("weatherapi"))
	forecastService := app.NewForecastService(provider, prefRepo, cfg.Location, logger.Component("forecast"), recorder)

	router := app.NewRouter(sessions, prefRepo, forecastService, location.Uzbekistan,
		app.RouterOptions{ContactUsername: cfg.ContactUsername, BotLink: cfg.BotLink},
		logger.Component("router"), recorder)

	// Initialize Telegram Bot
	botLogger := logger.Component("telebot")
	pref := telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) { // Global error handler
			logCtx := botLogger.WithError(err)
			if c != nil && c.Sender() != nil {
				logCtx = logCtx.WithFields(logrus.Fields{"sender_id": c.Sender().ID, "text": c.Text()})
			}
			logCtx.Error("Unhandled bot error")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not create Telegram bot")
	}

	handlers := telegram.NewInFlight()
	bot.Use(handlers.Middleware) // before Handle: telebot applies group middleware at registration

	telegramClient := telegram.NewTelebotAdapter(bot, cfg.TelegramSendRate)
	notificationService := app.NewNotificationServiceImpl(prefRepo, forecastService, telegramClient,
		logger.Component("notifications"), recorder, cfg.NotificationWorkers)
	adminService := app.NewAdminService(prefRepo, sessions, notificationService, cfg.AdminTelegramID)

	// Register Handlers
	telegram.RegisterAdminHandlers(appCtx, bot, adminService, cfg.AdminTelegramID, logger.Component("admin_handlers"))
	telegram.RegisterBotHandlers(appCtx, bot, router, logger.Component("bot_handlers"))
	mainLogger.Info("Telegram handlers registered.")

	notifScheduler := scheduler.NewNotificationScheduler(notificationService, logger.Component("scheduler"), cfg.Location, cfg.CronSpecNotify)
	if err := notifScheduler.Start(); err != nil {
		mainLogger.WithError(err).Fatal("Could not start notification scheduler")
	}

	var httpServer *httpserver.Server
	if cfg.HTTPAddr != "" {
		httpServer = httpserver.New(cfg.HTTPAddr, db, recorder.Handler(), logger.Component("http"))
		go func() {
			if err := httpServer.Start(); err != nil {
				mainLogger.WithError(err).Error("HTTP server stopped unexpectedly")
			}
		}()
	}

	// Start bot in a goroutine so it doesn't block graceful shutdown handling
	go bot.Start()
	mainLogger.Info("Application setup complete. Bot and scheduler are running.")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit // Block until a signal is received

	mainLogger.WithField("signal", sig.String()).Info("Shutting down application...")
	notifScheduler.Stop() // waits for an in-flight tick
	bot.Stop()
	handlers.Drain() // handlers may still be recording lookups
	cancelApp()
	forecastService.Wait() // flush pending lookup writes before closing the database

	if httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := httpServer.Shutdown(ctx); err != nil {
			mainLogger.WithError(err).Warn("HTTP server shutdown error")
		}
		cancel()
	}
	mainLogger.Info("Application shut down gracefully.")
}
