package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"hourglass/internal/core/model"
)

// LedgerFileName is the default name of the session history database.
const LedgerFileName = "history.db"

const completedAtLayout = time.RFC3339Nano

// LedgerDB wraps the SQLite session history database.
type LedgerDB struct {
	*sql.DB
}

// OpenLedger opens the history database and applies the schema.
func OpenLedger(dataSourceName string) (*LedgerDB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	ledgerDB := &LedgerDB{db}
	if err := ledgerDB.RunMigrations(); err != nil {
		db.Close()
		return nil, err
	}
	return ledgerDB, nil
}

// RunMigrations creates the schema if it does not exist yet.
func (db *LedgerDB) RunMigrations() error {
	migration := `
CREATE TABLE IF NOT EXISTS sessions (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    kind TEXT NOT NULL CHECK(kind IN ('work', 'break')),
    planned_seconds INTEGER NOT NULL DEFAULT 0,
    completed_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_completed_at ON sessions(completed_at);
`

	if _, err := db.Exec(migration); err != nil {
		return fmt.Errorf("run history migrations: %w", err)
	}
	return nil
}

// LoadRecords returns every stored session in completion order.
func (db *LedgerDB) LoadRecords(ctx context.Context) ([]model.SessionRecord, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, kind, planned_seconds, completed_at
		FROM sessions
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var records []model.SessionRecord
	for rows.Next() {
		var (
			record      model.SessionRecord
			kind        string
			completedAt string
		)
		if err := rows.Scan(&record.ID, &kind, &record.PlannedSeconds, &completedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		record.Kind, err = model.ParseMode(kind)
		if err != nil {
			return nil, fmt.Errorf("session %s: %w", record.ID, err)
		}
		record.CompletedAt, err = time.Parse(completedAtLayout, completedAt)
		if err != nil {
			return nil, fmt.Errorf("session %s: parse completed_at: %w", record.ID, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	return records, nil
}

// SaveRecords stores records that are not already present. The ledger is
// append-only, so known IDs are skipped and order follows the slice.
func (db *LedgerDB) SaveRecords(ctx context.Context, records []model.SessionRecord) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save sessions: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO sessions (id, kind, planned_seconds, completed_at)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare save sessions: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		_, err := stmt.ExecContext(ctx,
			record.ID,
			record.Kind.String(),
			record.PlannedSeconds,
			record.CompletedAt.UTC().Format(completedAtLayout),
		)
		if err != nil {
			return fmt.Errorf("insert session %s: %w", record.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save sessions: %w", err)
	}
	return nil
}

// ClearRecords deletes all stored sessions.
func (db *LedgerDB) ClearRecords(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("clear sessions: %w", err)
	}
	return nil
}
