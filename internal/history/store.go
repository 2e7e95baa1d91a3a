package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"mangasync/internal/config"
	"mangasync/internal/logging"
	"mangasync/internal/syncer"
)

// maxReports bounds the history: saving past the cap prunes the oldest
// reports.
const maxReports = 10

// createdAtLayout is fixed-width so the TEXT column sorts
// lexicographically in timestamp order. RFC3339Nano trims trailing
// fractional zeros, which breaks ordering within the same second.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store persists sync reports backed by SQLite.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Open initializes or connects to the history database.
func Open(cfg *config.Config, logger *slog.Logger) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	dbPath := cfg.HistoryDBPath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	const schema = `CREATE TABLE IF NOT EXISTS sync_reports (
        id TEXT PRIMARY KEY,
        created_at TEXT NOT NULL,
        payload TEXT NOT NULL
    )`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db, path: dbPath, logger: logging.NewComponentLogger(logger, "history")}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save stores a report and prunes the history down to the cap, oldest
// first.
func (s *Store) Save(ctx context.Context, report *syncer.Report) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sync_reports (id, created_at, payload) VALUES (?, ?, ?)`,
		report.ID,
		report.Timestamp.UTC().Format(createdAtLayout),
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM sync_reports WHERE id NOT IN (
            SELECT id FROM sync_reports ORDER BY created_at DESC LIMIT ?
        )`, maxReports)
	if err != nil {
		return fmt.Errorf("prune reports: %w", err)
	}

	return tx.Commit()
}

// List returns stored reports newest-first. Rows whose payload no
// longer parses are skipped with a warning rather than failing the
// whole read.
func (s *Store) List(ctx context.Context) ([]syncer.Report, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, payload FROM sync_reports ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var reports []syncer.Report
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		var report syncer.Report
		if err := json.Unmarshal([]byte(payload), &report); err != nil {
			s.logger.Warn("skipping malformed report",
				logging.String("report_id", id),
				logging.Error(err))
			continue
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return reports, nil
}
