package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"dogcare-bot/internal/storage"
)

// ---------------- /start --------------------

func (h *Handler) HandleStart(msg *tgbotapi.Message) {
	name := "there"
	if msg.From != nil && msg.From.FirstName != "" {
		name = msg.From.FirstName
	}
	h.reply(msg.Chat.ID, "Hi "+name+"! I'm your dog care bot. "+textHelp)
}

// ---------------- /cancel -------------------

func (h *Handler) HandleCancel(chatID int64) {
	if h.Sessions.Cancel(chatID) {
		h.reply(chatID, textCanceled)
		return
	}
	h.reply(chatID, textNothingToDo)
}

// ---------------- dialogue entry points -----

// HandleAddWeight starts (or restarts) the weight-entry dialogue.
func (h *Handler) HandleAddWeight(chatID int64) {
	h.Sessions.StartWeight(chatID)
	h.reply(chatID, textAskDate)
}

// HandleAddReminder starts (or restarts) the reminder-entry dialogue.
func (h *Handler) HandleAddReminder(chatID int64) {
	h.Sessions.StartReminder(chatID)
	h.reply(chatID, textAskTime)
}

// ---------------- read-only queries ---------

func (h *Handler) HandleViewWeights(chatID int64) {
	weights, err := h.DB.ListWeights(chatID)
	if err != nil {
		h.Log.Errorw("list weights", "chat_id", chatID, "err", err)
		h.reply(chatID, textCouldNotRead)
		return
	}
	if len(weights) == 0 {
		h.reply(chatID, textNoWeights)
		return
	}

	var b strings.Builder
	b.WriteString(textWeightsHeader)
	for _, w := range weights {
		fmt.Fprintf(&b, "- %s: %s kg\n", w.Day, strconv.FormatFloat(w.Weight, 'f', -1, 64))
	}
	h.reply(chatID, b.String())
}

func (h *Handler) HandleListReminders(chatID int64) {
	reminders, err := h.DB.ListReminders(chatID)
	if err != nil {
		h.Log.Errorw("list reminders", "chat_id", chatID, "err", err)
		h.reply(chatID, textCouldNotRead)
		return
	}
	if len(reminders) == 0 {
		h.reply(chatID, textNoReminders)
		return
	}

	var b strings.Builder
	b.WriteString(textRemindersHead)
	for _, r := range reminders {
		fmt.Fprintf(&b, "%d. At %s: %s\n", r.Index, r.At, r.Message)
	}
	b.WriteString(textDeleteHint)
	h.reply(chatID, b.String())
}

// ---------------- /deletereminder -----------

func (h *Handler) HandleDeleteReminder(chatID int64, args string) {
	args = strings.TrimSpace(args)
	if args == "" {
		h.reply(chatID, textDeleteUsage)
		return
	}
	index, err := strconv.Atoi(args)
	if err != nil {
		h.reply(chatID, textDeleteUsage)
		return
	}

	r, err := h.DB.DeleteReminder(chatID, index)
	if errors.Is(err, storage.ErrNotFound) {
		h.reply(chatID, textDeleteBadNum)
		return
	}
	if err != nil {
		h.Log.Errorw("delete reminder", "chat_id", chatID, "index", index, "err", err)
		h.reply(chatID, textCouldNotSave)
		return
	}

	h.Sched.Unregister(r.ID)
	h.reply(chatID, fmt.Sprintf("Reminder '%s' at %s deleted successfully!", r.Message, r.At))
}
