// Package scheduler keeps one recurring daily timer per persisted
// reminder and re-arms the set from storage after a restart.
package scheduler

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/go-co-op/gocron/v2"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"dogcare-bot/internal/models"
	"dogcare-bot/internal/storage"
)

// Sender is the outbound half of the chat transport.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Scheduler owns the live timer set. Timers are keyed by the
// reminder's stable row ID, never by the display index, so deletions
// that renumber the user-visible list cannot detach a timer from the
// wrong reminder.
type Scheduler struct {
	bot Sender
	db  *storage.DB
	log *zap.SugaredLogger

	mu   sync.Mutex
	cron gocron.Scheduler
	jobs map[int64]uuid.UUID // reminder ID -> gocron job ID
}

// New creates and starts the underlying cron scheduler. No timers are
// armed until ReconcileFromStore or Register.
func New(bot Sender, db *storage.DB, log *zap.SugaredLogger) (*Scheduler, error) {
	cron, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	s := &Scheduler{
		bot:  bot,
		db:   db,
		log:  log,
		cron: cron,
		jobs: make(map[int64]uuid.UUID),
	}
	cron.Start()
	return s, nil
}

// ReconcileFromStore arms one timer per persisted reminder across all
// users. Idempotent: reminders that already hold a timer are skipped.
func (s *Scheduler) ReconcileFromStore() error {
	reminders, err := s.db.AllReminders()
	if err != nil {
		return fmt.Errorf("list reminders: %w", err)
	}
	for _, r := range reminders {
		if err := s.Register(r); err != nil {
			return fmt.Errorf("register reminder %d: %w", r.ID, err)
		}
	}
	return nil
}

// Register arms a daily timer for the reminder. A reminder that is
// already registered keeps its existing timer.
func (s *Scheduler) Register(r models.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[r.ID]; ok {
		return nil
	}

	hour, minute, err := splitClock(r.At)
	if err != nil {
		return err
	}

	job, err := s.cron.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(uint(hour), uint(minute), 0))),
		gocron.NewTask(s.fire, r.ID),
	)
	if err != nil {
		return err
	}
	s.jobs[r.ID] = job.ID()
	return nil
}

// Unregister stops and drops the timer for the reminder, if any. A
// firing already in flight is allowed to finish; it re-reads the row
// and finds it gone.
func (s *Scheduler) Unregister(reminderID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.jobs[reminderID]
	if !ok {
		return
	}
	if err := s.cron.RemoveJob(id); err != nil {
		s.log.Warnw("remove job", "reminder_id", reminderID, "err", err)
	}
	delete(s.jobs, reminderID)
}

// ActiveTimers returns the number of armed timers.
func (s *Scheduler) ActiveTimers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Stop shuts the cron scheduler down. Timer registrations are lost;
// they come back via ReconcileFromStore on the next start.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.cron.Shutdown(); err != nil {
		s.log.Warnw("scheduler shutdown", "err", err)
	}
	s.jobs = make(map[int64]uuid.UUID)
}

// fire delivers one reminder. Fields are re-read from storage at fire
// time; a row deleted since scheduling means nothing is sent. A failed
// send is logged and the timer stays armed for the next day.
func (s *Scheduler) fire(reminderID int64) {
	r, err := s.db.GetReminder(reminderID)
	if err != nil {
		s.log.Errorw("read reminder", "reminder_id", reminderID, "err", err)
		return
	}
	if r == nil {
		return
	}
	if _, err := s.bot.Send(tgbotapi.NewMessage(r.ChatID, "🔔 Reminder: "+r.Message)); err != nil {
		s.log.Warnw("reminder delivery failed", "chat_id", r.ChatID, "reminder_id", r.ID, "err", err)
		return
	}
	s.log.Infow("reminder sent", "chat_id", r.ChatID, "reminder_id", r.ID, "at", r.At)
}

func splitClock(at string) (int, int, error) {
	parts := strings.SplitN(at, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("bad reminder time %q", at)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("bad reminder time %q", at)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("bad reminder time %q", at)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("bad reminder time %q", at)
	}
	return hour, minute, nil
}
