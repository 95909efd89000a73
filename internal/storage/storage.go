package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"dogcare-bot/internal/models"
)

//go:embed schema.sql
var ddl embed.FS

// ErrNotFound is returned when a delete addresses an index the user's
// reminder list does not hold.
var ErrNotFound = errors.New("reminder not found")

type DB struct{ *sql.DB }

// New opens (or creates) the database at path and applies the schema.
// A missing file means a fresh empty store; an unreadable one fails here.
func New(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err = migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &DB{db}, nil
}

func migrate(db *sql.DB) error {
	b, err := ddl.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = db.Exec(string(b))
	return err
}

// ---------- weights ---------------------------------------------------------

func (d *DB) AppendWeight(chatID int64, day string, weight float64) error {
	_, err := d.Exec(`
        INSERT INTO weights (chat_id, day, weight, created_at)
        VALUES (?,?,?,?)
    `, chatID, day, weight, time.Now().Unix())
	return err
}

// ListWeights returns the user's entries in insertion order.
func (d *DB) ListWeights(chatID int64) ([]models.WeightEntry, error) {
	rows, err := d.Query(`
        SELECT id, chat_id, day, weight, created_at
        FROM weights WHERE chat_id=? ORDER BY id`, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []models.WeightEntry
	for rows.Next() {
		var w models.WeightEntry
		if err := rows.Scan(&w.ID, &w.ChatID, &w.Day, &w.Weight, &w.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, w)
	}
	return res, rows.Err()
}

// ---------- reminders -------------------------------------------------------

// AppendReminder inserts the reminder and returns it with its assigned
// row ID and 1-based display index.
func (d *DB) AppendReminder(chatID int64, at, message string) (*models.Reminder, error) {
	res, err := d.Exec(`
        INSERT INTO reminders (chat_id, at_time, message, created_at)
        VALUES (?,?,?,?)
    `, chatID, at, message, time.Now().Unix())
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	var n int
	if err := d.QueryRow(`SELECT COUNT(*) FROM reminders WHERE chat_id=?`, chatID).Scan(&n); err != nil {
		return nil, err
	}
	return &models.Reminder{
		ID:      id,
		ChatID:  chatID,
		At:      at,
		Message: message,
		Index:   n,
	}, nil
}

// ListReminders returns the user's reminders in insertion order with
// contiguous 1-based indices.
func (d *DB) ListReminders(chatID int64) ([]models.Reminder, error) {
	rows, err := d.Query(`
        SELECT id, chat_id, at_time, message, created_at
        FROM reminders WHERE chat_id=? ORDER BY id`, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []models.Reminder
	for rows.Next() {
		var r models.Reminder
		if err := rows.Scan(&r.ID, &r.ChatID, &r.At, &r.Message, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Index = len(res) + 1
		res = append(res, r)
	}
	return res, rows.Err()
}

// DeleteReminder removes the reminder at the given 1-based index of the
// user's current list and returns the deleted row, so the caller can
// unregister its timer by stable ID. Index resolution and deletion run
// in one transaction.
func (d *DB) DeleteReminder(chatID int64, index int) (*models.Reminder, error) {
	tx, err := d.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	rows, err := tx.Query(`
        SELECT id, chat_id, at_time, message, created_at
        FROM reminders WHERE chat_id=? ORDER BY id`, chatID)
	if err != nil {
		return nil, err
	}
	var list []models.Reminder
	for rows.Next() {
		var r models.Reminder
		if err := rows.Scan(&r.ID, &r.ChatID, &r.At, &r.Message, &r.CreatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		list = append(list, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if index < 1 || index > len(list) {
		return nil, ErrNotFound
	}
	r := list[index-1]
	if _, err := tx.Exec(`DELETE FROM reminders WHERE id=?`, r.ID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	r.Index = index
	return &r, nil
}

// GetReminder looks a reminder up by stable ID; nil, nil when it no
// longer exists.
func (d *DB) GetReminder(id int64) (*models.Reminder, error) {
	var r models.Reminder
	err := d.QueryRow(`
        SELECT id, chat_id, at_time, message, created_at
        FROM reminders WHERE id=?`, id,
	).Scan(&r.ID, &r.ChatID, &r.At, &r.Message, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// AllReminders returns every persisted reminder across all users, for
// startup reconciliation.
func (d *DB) AllReminders() ([]models.Reminder, error) {
	rows, err := d.Query(`
        SELECT id, chat_id, at_time, message, created_at
        FROM reminders ORDER BY chat_id, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []models.Reminder
	for rows.Next() {
		var r models.Reminder
		if err := rows.Scan(&r.ID, &r.ChatID, &r.At, &r.Message, &r.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, rows.Err()
}
