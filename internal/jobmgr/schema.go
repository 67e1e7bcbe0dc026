package jobmgr

import (
	"context"
	"database/sql"
)

func (s *sqlStore) migrate(ctx context.Context) error {
	return s.withTx(ctx, false, func(tx *sql.Tx) error {
		stmts := []string{
			`CREATE TABLE IF NOT EXISTS jobs (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				printer_id INTEGER NOT NULL,
				uuid TEXT NOT NULL,
				name TEXT NOT NULL DEFAULT '',
				user_name TEXT NOT NULL DEFAULT '',
				format TEXT NOT NULL DEFAULT '',
				state INTEGER NOT NULL,
				state_reasons TEXT NOT NULL DEFAULT '',
				submitted_at DATETIME NOT NULL,
				completed_at DATETIME
			)`,
			`CREATE INDEX IF NOT EXISTS idx_jobs_printer ON jobs(printer_id)`,
			`CREATE INDEX IF NOT EXISTS idx_jobs_state ON jobs(printer_id, state)`,
		}
		for _, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
}
