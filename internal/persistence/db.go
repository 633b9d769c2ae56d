// Package persistence provides the SQLite run archive: events, the per-tick
// stats trajectory, and run metadata. Write-side telemetry only; the
// simulation never restores state from it.
package persistence

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/dating-world/internal/engine"
)

// DB wraps a SQLite connection for the run archive.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		seq INTEGER PRIMARY KEY,
		tick INTEGER NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS stats_history (
		tick INTEGER PRIMARY KEY,
		messages_sent INTEGER NOT NULL,
		dates_arranged INTEGER NOT NULL,
		relationships_formed INTEGER NOT NULL,
		singles INTEGER NOT NULL,
		couples INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS run_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_tick ON events(tick);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveEvents appends events to the archive. Seq is the primary key, so
// re-saving an already-archived event is a no-op rather than a duplicate.
func (db *DB) SaveEvents(events []engine.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(
		"INSERT OR IGNORE INTO events (seq, tick, description, category) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range events {
		if _, err := stmt.Exec(e.Seq, e.Tick, e.Description, e.Category); err != nil {
			return fmt.Errorf("insert event %d: %w", e.Seq, err)
		}
	}

	return tx.Commit()
}

// SaveSamples writes stats-trajectory points, keyed by tick.
func (db *DB) SaveSamples(samples []engine.StatsSample) error {
	if len(samples) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(`INSERT OR REPLACE INTO stats_history
		(tick, messages_sent, dates_arranged, relationships_formed, singles, couples)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range samples {
		_, err := stmt.Exec(s.Tick,
			s.Stats.MessagesSent, s.Stats.DatesArranged, s.Stats.RelationshipsFormed,
			s.Singles, s.Couples)
		if err != nil {
			return fmt.Errorf("insert sample tick %d: %w", s.Tick, err)
		}
	}

	return tx.Commit()
}

// SaveMeta stores a key-value pair in run metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO run_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM run_meta WHERE key = ?", key)
	return value, err
}

// RecentEvents returns the most recent N archived events, newest first.
func (db *DB) RecentEvents(limit int) ([]engine.Event, error) {
	var events []engine.Event
	err := db.conn.Select(&events,
		"SELECT seq, tick, description, category FROM events ORDER BY seq DESC LIMIT ?",
		limit,
	)
	return events, err
}

// Archive performs one save pass: all events newer than lastSeq plus every
// sample from offset onward. Returns the new event cursor.
func (db *DB) Archive(sim *engine.Simulation, lastSeq uint64, samples []engine.StatsSample) (uint64, error) {
	events := sim.EventsSince(lastSeq)

	if err := db.SaveEvents(events); err != nil {
		return lastSeq, fmt.Errorf("save events: %w", err)
	}
	if err := db.SaveSamples(samples); err != nil {
		return lastSeq, fmt.Errorf("save samples: %w", err)
	}
	if err := db.SaveMeta("last_tick", fmt.Sprintf("%d", sim.CurrentTick())); err != nil {
		return lastSeq, fmt.Errorf("save meta: %w", err)
	}

	for _, e := range events {
		if e.Seq > lastSeq {
			lastSeq = e.Seq
		}
	}

	slog.Debug("run archived", "tick", sim.CurrentTick(), "events", len(events), "samples", len(samples))
	return lastSeq, nil
}
