package conversation

import (
	"errors"
	"testing"
	"time"

	"dogcare-bot/internal/models"
)

var now = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func TestWeightFlow(t *testing.T) {
	m := NewManager()
	m.StartWeight(1)

	done, next, err := m.Advance(1, "2024-03-01", now)
	if err != nil {
		t.Fatalf("date: %v", err)
	}
	if done != nil || next != models.StateAwaitingWeight {
		t.Fatalf("after date: done=%v next=%v", done, next)
	}

	done, _, err = m.Advance(1, "12.5", now)
	if err != nil {
		t.Fatalf("weight: %v", err)
	}
	if done == nil || done.Kind != KindWeight {
		t.Fatalf("expected completed weight flow, got %+v", done)
	}
	if done.Day != "2024-03-01" || done.Weight != 12.5 {
		t.Errorf("completed = %q/%v", done.Day, done.Weight)
	}
	if m.Active(1) {
		t.Error("session should be destroyed on completion")
	}
}

func TestTodayShortcut(t *testing.T) {
	m := NewManager()
	m.StartWeight(1)

	if _, _, err := m.Advance(1, "Today", now); err != nil {
		t.Fatalf("today: %v", err)
	}
	done, _, err := m.Advance(1, "9", now)
	if err != nil {
		t.Fatalf("weight: %v", err)
	}
	if done.Day != "2024-03-15" {
		t.Errorf("day = %q, want 2024-03-15", done.Day)
	}
}

func TestWeightWithUnitSuffix(t *testing.T) {
	m := NewManager()
	m.StartWeight(1)
	m.Advance(1, "today", now)

	done, _, err := m.Advance(1, "33.5 lbs", now)
	if err != nil {
		t.Fatalf("weight: %v", err)
	}
	if done.Weight != 33.5 {
		t.Errorf("weight = %v, want 33.5", done.Weight)
	}
}

func TestInvalidDateKeepsStage(t *testing.T) {
	m := NewManager()
	m.StartWeight(1)

	for _, bad := range []string{"march first", "2024-13-01", "01/03/2024", ""} {
		done, next, err := m.Advance(1, bad, now)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("input %q: err = %v, want ValidationError", bad, err)
		}
		if verr.Field != "date" {
			t.Errorf("input %q: field = %q", bad, verr.Field)
		}
		if done != nil || next != models.StateAwaitingDate {
			t.Errorf("input %q advanced the session", bad)
		}
	}

	// A valid date in the same stage still works.
	if _, next, err := m.Advance(1, "2024-03-01", now); err != nil || next != models.StateAwaitingWeight {
		t.Fatalf("valid date after failures: next=%v err=%v", next, err)
	}
}

func TestInvalidWeightKeepsStage(t *testing.T) {
	m := NewManager()
	m.StartWeight(1)
	m.Advance(1, "today", now)

	for _, bad := range []string{"heavy", "-3", "0", "NaN", ""} {
		done, next, err := m.Advance(1, bad, now)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("input %q: err = %v, want ValidationError", bad, err)
		}
		if done != nil || next != models.StateAwaitingWeight {
			t.Errorf("input %q advanced the session", bad)
		}
	}

	done, _, err := m.Advance(1, "12.5", now)
	if err != nil || done == nil {
		t.Fatalf("valid weight after failures: done=%v err=%v", done, err)
	}
}

func TestReminderFlow(t *testing.T) {
	m := NewManager()
	m.StartReminder(1)

	_, next, err := m.Advance(1, "8:05", now)
	if err != nil {
		t.Fatalf("time: %v", err)
	}
	if next != models.StateAwaitingMessage {
		t.Fatalf("after time: next=%v", next)
	}

	done, _, err := m.Advance(1, "Walk the dog", now)
	if err != nil {
		t.Fatalf("message: %v", err)
	}
	if done == nil || done.Kind != KindReminder {
		t.Fatalf("expected completed reminder flow, got %+v", done)
	}
	if done.At != "08:05" {
		t.Errorf("time not normalized: %q", done.At)
	}
	if done.Message != "Walk the dog" {
		t.Errorf("message = %q", done.Message)
	}
}

func TestInvalidTimeKeepsStage(t *testing.T) {
	m := NewManager()
	m.StartReminder(1)

	for _, bad := range []string{"noon", "25:00", "08:60", "8", "8:5", ""} {
		done, next, err := m.Advance(1, bad, now)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("input %q: err = %v, want ValidationError", bad, err)
		}
		if done != nil || next != models.StateAwaitingTime {
			t.Errorf("input %q advanced the session", bad)
		}
	}
}

func TestEmptyMessageKeepsStage(t *testing.T) {
	m := NewManager()
	m.StartReminder(1)
	m.Advance(1, "08:00", now)

	done, next, err := m.Advance(1, "   ", now)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if done != nil || next != models.StateAwaitingMessage {
		t.Error("blank message advanced the session")
	}
}

func TestCancel(t *testing.T) {
	m := NewManager()
	m.StartWeight(1)
	m.Advance(1, "2024-03-01", now)

	if !m.Cancel(1) {
		t.Fatal("cancel reported no active session")
	}
	if m.Active(1) {
		t.Error("session survived cancel")
	}
	if m.Cancel(1) {
		t.Error("second cancel reported an active session")
	}
}

func TestRestartOverwritesBuffer(t *testing.T) {
	m := NewManager()
	m.StartWeight(1)
	m.Advance(1, "2024-03-01", now)

	// Starting a new flow of either kind discards the old buffer.
	m.StartReminder(1)
	if st := m.State(1); st != models.StateAwaitingTime {
		t.Fatalf("state after restart = %v", st)
	}

	m.Advance(1, "08:00", now)
	done, _, err := m.Advance(1, "Feed the dog", now)
	if err != nil || done == nil || done.Kind != KindReminder {
		t.Fatalf("reminder flow after restart: done=%+v err=%v", done, err)
	}
	if done.Day != "" {
		t.Errorf("stale weight buffer leaked into reminder: %q", done.Day)
	}
}

func TestAdvanceWithoutSession(t *testing.T) {
	m := NewManager()

	done, next, err := m.Advance(1, "hello", now)
	if done != nil || err != nil || next != models.StateIdle {
		t.Errorf("advance without session: done=%v next=%v err=%v", done, next, err)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	m := NewManager()
	m.StartWeight(1)
	m.StartReminder(2)

	if st := m.State(1); st != models.StateAwaitingDate {
		t.Errorf("user 1 state = %v", st)
	}
	if st := m.State(2); st != models.StateAwaitingTime {
		t.Errorf("user 2 state = %v", st)
	}

	m.Cancel(1)
	if !m.Active(2) {
		t.Error("canceling user 1 dropped user 2's session")
	}
}
