package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"cms-cli/internal/model"

	_ "modernc.org/sqlite"
)

// EventLog is an append-only audit trail of mutations for the current
// session. It is backed by an in-memory SQLite database so it supports
// ordered, filtered reads without inventing an index, while still honoring
// the no-durable-storage contract (the database dies with the process).
type EventLog struct {
	db *sql.DB
}

const eventLogSchema = `
CREATE TABLE IF NOT EXISTS events (
  seq     INTEGER PRIMARY KEY AUTOINCREMENT,
  ts      TEXT NOT NULL,
  type    TEXT NOT NULL,
  entity  TEXT NOT NULL,
  payload TEXT
);
CREATE INDEX IF NOT EXISTS idx_events_entity ON events(entity);
`

// OpenEventLog opens a fresh in-memory event log.
func OpenEventLog() (*EventLog, error) {
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	// A :memory: database exists per connection; more than one connection
	// would silently split the log.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(context.Background(), eventLogSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init event log schema: %w", err)
	}
	return &EventLog{db: db}, nil
}

func (l *EventLog) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	return l.db.Close()
}

// Append records one mutation. Append failures are reported but are never
// fatal to the operation that triggered them; callers typically ignore the
// error the way they would a best-effort audit write.
func (l *EventLog) Append(evType, entity string, payload any) error {
	if l == nil || l.db == nil {
		return nil
	}
	var payloadJSON []byte
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal event payload: %w", err)
		}
		payloadJSON = b
	}
	_, err := l.db.ExecContext(context.Background(),
		`INSERT INTO events (ts, type, entity, payload) VALUES (?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339Nano), evType, entity, string(payloadJSON))
	return err
}

// List returns all events in append order. An empty entity matches all.
func (l *EventLog) List(entity string) ([]model.Event, error) {
	if l == nil || l.db == nil {
		return nil, nil
	}
	q := `SELECT seq, ts, type, entity, payload FROM events ORDER BY seq`
	args := []any{}
	if entity != "" {
		q = `SELECT seq, ts, type, entity, payload FROM events WHERE entity = ? ORDER BY seq`
		args = append(args, entity)
	}
	rows, err := l.db.QueryContext(context.Background(), q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Event
	for rows.Next() {
		var (
			ev         model.Event
			ts         string
			payloadStr sql.NullString
		)
		if err := rows.Scan(&ev.Seq, &ts, &ev.Type, &ev.Entity, &payloadStr); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			ev.TS = t
		}
		if payloadStr.Valid && payloadStr.String != "" {
			var payload any
			if err := json.Unmarshal([]byte(payloadStr.String), &payload); err == nil {
				ev.Payload = payload
			}
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// Count returns the number of recorded events.
func (l *EventLog) Count() (int64, error) {
	if l == nil || l.db == nil {
		return 0, nil
	}
	var n int64
	err := l.db.QueryRowContext(context.Background(), `SELECT COUNT(*) FROM events`).Scan(&n)
	return n, err
}
