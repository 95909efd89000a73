package main

import (
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"dogcare-bot/internal/config"
	"dogcare-bot/internal/conversation"
	"dogcare-bot/internal/handlers"
	"dogcare-bot/internal/logger"
	"dogcare-bot/internal/scheduler"
	"dogcare-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	var logg *zap.SugaredLogger
	if cfg.Debug {
		logg = logger.NewDevelopment()
	} else {
		logg = logger.New()
	}
	defer logg.Sync()

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		logg.Fatalw("open storage", "path", cfg.DBPath, "err", err)
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		logg.Fatalw("connect telegram", "err", err)
	}

	sched, err := scheduler.New(bot, db, logg)
	if err != nil {
		logg.Fatalw("start scheduler", "err", err)
	}
	defer sched.Stop()

	// Re-arm a timer for every reminder saved before the restart.
	if err := sched.ReconcileFromStore(); err != nil {
		logg.Fatalw("reconcile reminders", "err", err)
	}
	logg.Infow("scheduler ready", "timers", sched.ActiveTimers())

	h := handlers.New(bot, db, sched, conversation.NewManager(), logg)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := bot.GetUpdatesChan(updateConfig)

	logg.Infow("bot started", "username", bot.Self.UserName)
	for upd := range updates {
		if upd.Message != nil {
			h.HandleMessage(upd.Message)
		}
	}
}
