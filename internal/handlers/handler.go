package handlers

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"dogcare-bot/internal/conversation"
	"dogcare-bot/internal/scheduler"
	"dogcare-bot/internal/storage"
)

// Handler routes incoming messages to the command handlers or, when a
// dialogue is in progress, into the conversation state machine.
type Handler struct {
	Bot      scheduler.Sender
	DB       *storage.DB
	Sched    *scheduler.Scheduler
	Sessions *conversation.Manager
	Log      *zap.SugaredLogger
}

func New(bot scheduler.Sender, db *storage.DB, sched *scheduler.Scheduler, sessions *conversation.Manager, log *zap.SugaredLogger) *Handler {
	return &Handler{Bot: bot, DB: db, Sched: sched, Sessions: sessions, Log: log}
}

func (h *Handler) HandleMessage(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		// Only /cancel and the dialogue entry commands cut through an
		// active dialogue (discard and restart, respectively).
		switch msg.Command() {
		case "cancel":
			h.HandleCancel(chatID)
			return
		case "addweight":
			h.HandleAddWeight(chatID)
			return
		case "addreminder":
			h.HandleAddReminder(chatID)
			return
		}

		// The bot asks one question at a time: any other command typed
		// mid-dialogue is treated as the answer to the pending question.
		if !h.Sessions.Active(chatID) {
			switch msg.Command() {
			case "start":
				h.HandleStart(msg)
			case "viewweights":
				h.HandleViewWeights(chatID)
			case "listreminders":
				h.HandleListReminders(chatID)
			case "deletereminder":
				h.HandleDeleteReminder(chatID, msg.CommandArguments())
			default:
				h.reply(chatID, textUnknownCommand)
			}
			return
		}
	}

	h.HandleText(msg)
}

func (h *Handler) reply(chatID int64, text string) {
	if _, err := h.Bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		h.Log.Warnw("send reply", "chat_id", chatID, "err", err)
	}
}
