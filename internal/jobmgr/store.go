// Package jobmgr is the default collab.JobManager implementation: a
// durable sqlite-backed job log (grounded on the teacher's
// internal/store), a document spool (grounded on the teacher's
// internal/spool), and an in-memory cache for the observable fields the
// dispatcher reads on every request.
package jobmgr

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Bhavna2020/ippcored/internal/model"
)

// sqlStore is the durable job log. It never decides job semantics; it
// only records what the Manager tells it, the same division of labor
// as the teacher's *store.Store relative to internal/server.
type sqlStore struct {
	db *sql.DB
}

func openStore(ctx context.Context, dsn string) (*sqlStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	s := &sqlStore{db: db}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *sqlStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *sqlStore) withTx(ctx context.Context, readOnly bool, fn func(tx *sql.Tx) error) error {
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

func (s *sqlStore) insertJob(ctx context.Context, printerID int64, uuid, name, username, format string, state model.JobState) (int64, time.Time, error) {
	now := time.Now().UTC()
	var id int64
	err := s.withTx(ctx, false, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO jobs (printer_id, uuid, name, user_name, format, state, state_reasons, submitted_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, printerID, uuid, name, username, format, int(state), "job-incoming", now)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	return id, now, err
}

func (s *sqlStore) updateState(ctx context.Context, jobID int64, state model.JobState, reasons []string) error {
	return s.withTx(ctx, false, func(tx *sql.Tx) error {
		var completedAt any
		if state.Terminal() {
			completedAt = time.Now().UTC()
		}
		_, err := tx.ExecContext(ctx, `
			UPDATE jobs SET state = ?, state_reasons = ?, completed_at = ? WHERE id = ?
		`, int(state), strings.Join(reasons, ","), completedAt, jobID)
		return err
	})
}

func (s *sqlStore) listActiveByPrinter(ctx context.Context, printerID int64) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id FROM jobs WHERE printer_id = ? AND state < ? ORDER BY id
	`, printerID, int(model.JobCanceled))
	if err != nil {
		return nil, fmt.Errorf("list active jobs: %w", err)
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
