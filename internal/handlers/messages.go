package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"dogcare-bot/internal/conversation"
	"dogcare-bot/internal/models"
)

// HandleText feeds free text into the user's active dialogue. Text
// arriving with no dialogue in progress is ignored.
func (h *Handler) HandleText(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if !h.Sessions.Active(chatID) {
		return
	}

	done, next, err := h.Sessions.Advance(chatID, msg.Text, time.Now())

	var verr *conversation.ValidationError
	if errors.As(err, &verr) {
		// Bad field input never ends the dialogue: explain and re-ask.
		h.reply(chatID, verr.Reason+" Try again:")
		return
	}
	if done == nil {
		h.reply(chatID, promptFor(next))
		return
	}

	switch done.Kind {
	case conversation.KindWeight:
		h.finishWeight(chatID, done)
	case conversation.KindReminder:
		h.finishReminder(chatID, done)
	}
}

func (h *Handler) finishWeight(chatID int64, done *conversation.Completed) {
	if err := h.DB.AppendWeight(chatID, done.Day, done.Weight); err != nil {
		h.Log.Errorw("append weight", "chat_id", chatID, "err", err)
		h.reply(chatID, textCouldNotSave)
		return
	}
	h.reply(chatID, fmt.Sprintf(
		"Successfully recorded your dog's weight: %s on %s.",
		strconv.FormatFloat(done.Weight, 'f', -1, 64), done.Day,
	))
}

func (h *Handler) finishReminder(chatID int64, done *conversation.Completed) {
	r, err := h.DB.AppendReminder(chatID, done.At, done.Message)
	if err != nil {
		h.Log.Errorw("append reminder", "chat_id", chatID, "err", err)
		h.reply(chatID, textCouldNotSave)
		return
	}
	if err := h.Sched.Register(*r); err != nil {
		// The reminder is persisted; the next restart's reconcile will
		// arm it. Tell the user it is not live yet.
		h.Log.Errorw("register reminder", "chat_id", chatID, "reminder_id", r.ID, "err", err)
		h.reply(chatID, textReminderNotScheduled)
		return
	}
	h.reply(chatID, fmt.Sprintf(
		"Daily reminder set for %s with message: '%s' 🔔", r.At, r.Message,
	))
}

func promptFor(state models.State) string {
	switch state {
	case models.StateAwaitingDate:
		return textAskDate
	case models.StateAwaitingWeight:
		return textAskWeight
	case models.StateAwaitingTime:
		return textAskTime
	case models.StateAwaitingMessage:
		return textAskMessage
	}
	return textHelp
}
