// Package persist is the System collaborator's durable checkpoint store:
// it saves a printer's full configuration snapshot to sqlite whenever
// System.ConfigChanged fires, and reloads it at startup so pause state,
// location/contact fields, and driver defaults survive a restart. This
// is a distinct concern from internal/jobmgr's own job log — jobs are
// transient work items with their own lifecycle table, while this store
// holds the printer's persisted identity/configuration.
package persist

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Bhavna2020/ippcored/internal/model"
)

// Store is the sqlite-backed printer configuration checkpoint log.
// Grounded on the teacher's internal/store.Store: same sql.Open DSN with
// WAL and a busy timeout, same WithTx transaction wrapper.
type Store struct {
	db *sql.DB
}

func Open(ctx context.Context, dbPath string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) withTx(ctx context.Context, readOnly bool, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: readOnly})
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *Store) migrate(ctx context.Context) error {
	return s.withTx(ctx, false, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS printer_snapshots (
			printer_id INTEGER PRIMARY KEY,
			data       TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		)`)
		return err
	})
}

// Save upserts p's full configuration as a JSON blob, the way the
// teacher's store serializes its own map-shaped columns
// (store.go's "details" json.Marshal before an upsert).
func (s *Store) Save(ctx context.Context, p model.Printer) error {
	blob, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("persist: marshal printer %d: %w", p.ID, err)
	}
	return s.withTx(ctx, false, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO printer_snapshots (printer_id, data, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT(printer_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
			p.ID, string(blob), time.Now().UTC())
		return err
	})
}

// Load reads back the last-saved snapshot for printerID, if any.
func (s *Store) Load(ctx context.Context, printerID int64) (model.Printer, bool, error) {
	var blob string
	err := s.withTx(ctx, true, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `SELECT data FROM printer_snapshots WHERE printer_id = ?`, printerID)
		return row.Scan(&blob)
	})
	if err == sql.ErrNoRows {
		return model.Printer{}, false, nil
	}
	if err != nil {
		return model.Printer{}, false, fmt.Errorf("persist: load printer %d: %w", printerID, err)
	}
	var p model.Printer
	if err := json.Unmarshal([]byte(blob), &p); err != nil {
		return model.Printer{}, false, fmt.Errorf("persist: unmarshal printer %d: %w", printerID, err)
	}
	return p, true, nil
}

// LoadAll reads every saved snapshot, for startup restoration of a
// multi-printer system.
func (s *Store) LoadAll(ctx context.Context) ([]model.Printer, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT data FROM printer_snapshots ORDER BY printer_id`)
	if err != nil {
		return nil, fmt.Errorf("persist: load all: %w", err)
	}
	defer rows.Close()

	var out []model.Printer
	for rows.Next() {
		var blob string
		if err := rows.Scan(&blob); err != nil {
			return nil, fmt.Errorf("persist: scan: %w", err)
		}
		var p model.Printer
		if err := json.Unmarshal([]byte(blob), &p); err != nil {
			return nil, fmt.Errorf("persist: unmarshal: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
