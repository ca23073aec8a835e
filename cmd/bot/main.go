package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"birthday_reminder_bot/internal/app"
	"birthday_reminder_bot/internal/infra/config"
	"birthday_reminder_bot/internal/infra/logger"
	"birthday_reminder_bot/internal/infra/nlp"
	"birthday_reminder_bot/internal/infra/redisstore"
	"birthday_reminder_bot/internal/infra/scheduler"
	"birthday_reminder_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"gopkg.in/telebot.v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	logger.Init(cfg)
	mainLogger := logger.Get().WithField("component", "main")
	mainLogger.WithFields(logrus.Fields{
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
	}).Info("Configuration loaded")

	// Initialize Store Connection
	redisClient, err := redisstore.NewClient(cfg.RedisURL, cfg.StoreTimeout)
	if err != nil {
		mainLogger.Fatalf("FATAL: Could not connect to redis: %v", err)
	}
	defer redisClient.Close()
	mainLogger.Info("Redis connection established successfully.")

	// Initialize Repositories
	baseEntry := logger.Get().WithField("app", "birthday_bot")
	birthdayRepo := redisstore.NewRedisBirthdayRepository(redisClient, baseEntry)
	communityRepo := redisstore.NewRedisCommunityRepository(redisClient, baseEntry)
	marker := redisstore.NewAnnouncementMarker(redisClient, baseEntry)
	mainLogger.Info("Repositories initialized.")

	// Initialize Telegram Bot
	pref := telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) { // Global error handler
			entry := logger.Get().WithField("component", "telebot").WithError(err)
			if c != nil && c.Sender() != nil && c.Chat() != nil {
				entry = entry.WithFields(logrus.Fields{
					"message":   c.Text(),
					"sender_id": c.Sender().ID,
					"chat_id":   c.Chat().ID,
				})
			}
			entry.Error("Unhandled bot error")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		mainLogger.Fatalf("FATAL: Could not create Telegram bot: %v", err)
	}
	adapter := telegram.NewTelebotAdapter(bot)

	// Initialize Services
	birthdayService := app.NewBirthdayService(birthdayRepo, communityRepo, adapter, baseEntry)
	broadcastLimiter := rate.NewLimiter(rate.Limit(cfg.BroadcastRate), cfg.BroadcastBurst)
	announceService := app.NewAnnounceService(birthdayRepo, communityRepo, adapter, marker, broadcastLimiter, baseEntry)
	conversations := app.NewConversationManager(cfg.ClarifyTimeout, func(requesterID int64) {
		if err := adapter.SendPrivate(requesterID, "I stopped waiting for a reply. Message me again whenever you're ready."); err != nil {
			baseEntry.WithError(err).WithField("requester_id", requesterID).Warn("Failed to notify requester about timeout")
		}
	}, baseEntry)
	classifier := nlp.NewKeywordClassifier()
	mainLogger.Info("Services initialized.")

	// Initialize AnnouncementScheduler
	announceScheduler := scheduler.NewAnnouncementScheduler(
		announceService,
		marker,
		baseEntry,
		cfg.CronSpecAnnounce,
		cfg.AnnounceCatchUp,
	)
	announceScheduler.Start()

	// Register Handlers
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dispatcher := telegram.NewDispatcher(ctx, birthdayService, adapter, communityRepo, baseEntry, bot)
	telegram.RegisterBirthdayHandlers(bot, dispatcher, baseEntry)
	telegram.RegisterTextHandlers(bot, dispatcher, classifier, conversations, baseEntry)
	mainLogger.Info("Command and free-text handlers registered.")

	mainLogger.Info("Application setup complete. Bot and Scheduler are starting...")

	// Start bot in a goroutine so it doesn't block graceful shutdown handling
	go bot.Start()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	mainLogger.Info("Shutting down application...")
	announceScheduler.Stop()
	bot.Stop()
	mainLogger.Info("Application shut down gracefully.")
}
