package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/telebot.v3"

	"github.com/myplan/myplan-bot/internal/bot"
	"github.com/myplan/myplan-bot/internal/config"
	"github.com/myplan/myplan-bot/internal/flow"
	"github.com/myplan/myplan-bot/internal/logger"
	"github.com/myplan/myplan-bot/internal/reminder"
	"github.com/myplan/myplan-bot/internal/report"
	"github.com/myplan/myplan-bot/internal/session"
	"github.com/myplan/myplan-bot/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("error loading configuration: %v", err)
	}
	appLogger := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := storage.Migrate(cfg.PostgresDSN); err != nil {
		appLogger.Fatalf("error migrating database: %v", err)
	}

	storageInstance, err := storage.NewStorage(ctx, cfg.PostgresDSN)
	if err != nil {
		appLogger.Fatalf("unable to connect to database: %v", err)
	}
	defer storageInstance.Close()

	botSettings := telebot.Settings{
		Token:  cfg.BotToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
	}
	botAPI, err := telebot.NewBot(botSettings)
	if err != nil {
		appLogger.Fatalf("error creating bot instance: %v", err)
	}

	var schedule flow.ScheduleCollector = flow.TextSchedule{}
	if cfg.ScheduleInput == "pick" {
		schedule = flow.NewPickSchedule()
	}

	sessions := session.NewMemoryStore()
	engine := flow.NewEngine(sessions, storageInstance, schedule, cfg.DefaultCurrency, appLogger)
	reports := report.NewExporter(cfg.ReportFormat)

	bot.RegisterHandlers(botAPI, engine, storageInstance, reports, appLogger)

	dispatcher := reminder.NewDispatcher(storageInstance, bot.NewReminderSender(botAPI), cfg.RemindInterval, appLogger)
	go dispatcher.Run(ctx)

	go func() {
		<-ctx.Done()
		botAPI.Stop()
	}()

	appLogger.Info("bot start")
	botAPI.Start()
}
