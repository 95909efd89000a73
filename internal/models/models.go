package models

// WeightEntry is one logged weight measurement.
type WeightEntry struct {
	ID        int64   `db:"id"         json:"id"`
	ChatID    int64   `db:"chat_id"    json:"chat_id"`
	Day       string  `db:"day"        json:"day"` // YYYY-MM-DD
	Weight    float64 `db:"weight"     json:"weight"`
	CreatedAt int64   `db:"created_at" json:"created_at"`
}

// Reminder is a persisted daily reminder.
type Reminder struct {
	ID        int64  `db:"id"         json:"id"`
	ChatID    int64  `db:"chat_id"    json:"chat_id"`
	At        string `db:"at_time"    json:"at_time"` // "HH:MM"
	Message   string `db:"message"    json:"message"`
	CreatedAt int64  `db:"created_at" json:"created_at"`

	// Index is the 1-based position shown to the user. It is derived
	// from insertion order on every read and never stored, so it stays
	// contiguous after deletions. Timers are keyed by ID, not Index.
	Index int `db:"-" json:"-"`
}
