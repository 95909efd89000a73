// Package conversation keeps the per-user dialogue state for the
// multi-turn input flows (weight entry, reminder entry). Sessions live
// in process memory only; restarts drop them.
package conversation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"dogcare-bot/internal/models"
)

// Kind tags which flow a session collects fields for.
type Kind int

const (
	KindWeight Kind = iota
	KindReminder
)

// Session is the typed field buffer for one user's active dialogue.
// Only the fields of its Kind are ever populated.
type Session struct {
	Kind  Kind
	State models.State

	Day    string  // weight flow, validated YYYY-MM-DD
	Weight float64 // weight flow

	At      string // reminder flow, validated HH:MM
	Message string // reminder flow
}

// Completed carries the fields of a finished dialogue, ready to be
// written through to storage.
type Completed struct {
	Kind    Kind
	Day     string
	Weight  float64
	At      string
	Message string
}

// ValidationError reports a field that failed to parse. It is consumed
// by the re-prompt path only and never ends a session.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Field + ": " + e.Reason
}

// Manager holds at most one session per chat ID.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[int64]*Session)}
}

// Active reports whether the user has a dialogue in progress.
func (m *Manager) Active(chatID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[chatID] != nil
}

// StartWeight begins (or restarts) the weight-entry flow for the user.
func (m *Manager) StartWeight(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[chatID] = &Session{Kind: KindWeight, State: models.StateAwaitingDate}
}

// StartReminder begins (or restarts) the reminder-entry flow.
func (m *Manager) StartReminder(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[chatID] = &Session{Kind: KindReminder, State: models.StateAwaitingTime}
}

// Cancel discards the user's session, reporting whether one existed.
// Nothing reaches storage.
func (m *Manager) Cancel(chatID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[chatID]
	delete(m.sessions, chatID)
	return ok
}

// State returns the user's current dialogue state.
func (m *Manager) State(chatID int64) models.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[chatID]; ok {
		return s.State
	}
	return models.StateIdle
}

// Advance feeds one message into the user's session. On a validation
// failure it returns a *ValidationError and the session stays at the
// same stage. On an intermediate field it returns the next state. On
// the final field it destroys the session and returns the Completed
// record. now anchors the "today" date shortcut.
func (m *Manager) Advance(chatID int64, input string, now time.Time) (*Completed, models.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[chatID]
	if !ok {
		return nil, models.StateIdle, nil
	}

	switch s.State {
	case models.StateAwaitingDate:
		day, err := parseDay(input, now)
		if err != nil {
			return nil, s.State, err
		}
		s.Day = day
		s.State = models.StateAwaitingWeight
		return nil, s.State, nil

	case models.StateAwaitingWeight:
		w, err := parseWeight(input)
		if err != nil {
			return nil, s.State, err
		}
		s.Weight = w
		delete(m.sessions, chatID)
		return &Completed{Kind: KindWeight, Day: s.Day, Weight: w}, models.StateIdle, nil

	case models.StateAwaitingTime:
		at, err := parseClock(input)
		if err != nil {
			return nil, s.State, err
		}
		s.At = at
		s.State = models.StateAwaitingMessage
		return nil, s.State, nil

	case models.StateAwaitingMessage:
		text := strings.TrimSpace(input)
		if text == "" {
			return nil, s.State, &ValidationError{Field: "message", Reason: "message must not be empty"}
		}
		delete(m.sessions, chatID)
		return &Completed{Kind: KindReminder, At: s.At, Message: text}, models.StateIdle, nil
	}

	return nil, models.StateIdle, nil
}

// ---------- field validators ------------------------------------------------

const dayLayout = "2006-01-02"

var clockRx = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

func parseDay(input string, now time.Time) (string, error) {
	text := strings.ToLower(strings.TrimSpace(input))
	if text == "today" {
		return now.Format(dayLayout), nil
	}
	t, err := time.Parse(dayLayout, text)
	if err != nil {
		return "", &ValidationError{Field: "date", Reason: "use YYYY-MM-DD or 'today'"}
	}
	return t.Format(dayLayout), nil
}

// parseWeight reads the leading token so inputs like "12.5 kg" work.
func parseWeight(input string) (float64, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return 0, &ValidationError{Field: "weight", Reason: "enter a number, e.g. 12.5"}
	}
	w, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
		return 0, &ValidationError{Field: "weight", Reason: "weight must be a positive number, e.g. 12.5"}
	}
	return w, nil
}

func parseClock(input string) (string, error) {
	match := clockRx.FindStringSubmatch(strings.TrimSpace(input))
	if match == nil {
		return "", &ValidationError{Field: "time", Reason: "use HH:MM, e.g. 08:30"}
	}
	hour, _ := strconv.Atoi(match[1])
	minute, _ := strconv.Atoi(match[2])
	if hour > 23 || minute > 59 {
		return "", &ValidationError{Field: "time", Reason: "time must be between 00:00 and 23:59"}
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}
