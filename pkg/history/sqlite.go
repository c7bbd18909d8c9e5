package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"mercator-hq/modellint/pkg/nlu/ast"
	"mercator-hq/modellint/pkg/nlu/validator"

	_ "github.com/mattn/go-sqlite3" // registers "sqlite3"
	_ "modernc.org/sqlite"          // registers "sqlite"
)

// Supported SQLite driver names.
const (
	DriverSQLite  = "sqlite"  // modernc.org/sqlite, pure Go
	DriverSQLite3 = "sqlite3" // github.com/mattn/go-sqlite3, cgo
)

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Driver is the database/sql driver name.
	// Default: "sqlite"
	Driver string

	// Path is the database file path. Parent directories are created.
	Path string

	// WALMode enables Write-Ahead Logging mode.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration

	// Logger receives operational messages. Default: slog.Default()
	Logger *slog.Logger
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	config SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStore opens the database and initializes the schema.
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	if cfg.Driver == "" {
		cfg.Driver = DriverSQLite
	}
	if cfg.Driver != DriverSQLite && cfg.Driver != DriverSQLite3 {
		return nil, NewStorageError(cfg.Driver, "open", fmt.Errorf("unsupported driver %q", cfg.Driver))
	}
	if cfg.Path == "" {
		return nil, NewStorageError(cfg.Driver, "open", errors.New("db path cannot be empty"))
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, NewStorageError(cfg.Driver, "open", err)
		}
	}

	db, err := sql.Open(cfg.Driver, cfg.Path)
	if err != nil {
		return nil, NewStorageError(cfg.Driver, "open", err)
	}

	// SQLite only supports a single writer; one connection keeps PRAGMAs in effect.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &SQLiteStore{
		db:     db,
		config: cfg,
		logger: cfg.Logger.With("component", "history.sqlite"),
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	s.logger.Debug("history store initialized",
		"driver", cfg.Driver,
		"path", cfg.Path,
		"wal_mode", cfg.WALMode,
	)

	return s, nil
}

// initialize sets pragmas, creates the schema and verifies its version.
func (s *SQLiteStore) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return s.fail("enable_wal", err)
		}
	}

	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", s.config.BusyTimeout.Milliseconds())); err != nil {
		return s.fail("set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return s.fail("create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return s.fail("insert_schema_version", err)
	}

	var version int
	if err := s.db.QueryRow(GetSchemaVersion).Scan(&version); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return s.fail("get_schema_version", err)
	}
	if version != SchemaVersion {
		return s.fail("schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	return nil
}

// SaveRun stores a run and its locale results in one transaction.
func (s *SQLiteStore) SaveRun(ctx context.Context, run *Run) error {
	if run == nil || run.ID == "" {
		return s.fail("save", errors.New("run must have an ID"))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return s.fail("save", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, insertRun,
		run.ID, run.StartedAt.UnixNano(), int64(run.Duration), run.ModelsDir,
		nullString(run.Revision), run.Status, run.Warnings, run.Errors,
	)
	if err != nil {
		return s.fail("save", err)
	}

	for i, lr := range run.Locales {
		_, err := tx.ExecContext(ctx, insertLocaleResult,
			run.ID, i, lr.Locale, lr.File, nullString(lr.Error), nullString(lr.ErrorType),
		)
		if err != nil {
			return s.fail("save", err)
		}

		for j, f := range lr.Findings {
			_, err := tx.ExecContext(ctx, insertFinding,
				run.ID, i, j, string(f.Check), string(f.Code), f.Locale, f.Text, f.Container,
				nullString(f.PreviousOwner), nullString(f.Location.File), f.Location.Line, f.Location.Column,
			)
			if err != nil {
				return s.fail("save", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return s.fail("save", err)
	}
	return nil
}

// GetRun returns a run with its locale results.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+selectRunColumns+" FROM runs WHERE id = ?", id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, s.fail("get", err)
	}

	if run.Locales, err = s.loadLocales(ctx, id); err != nil {
		return nil, s.fail("get", err)
	}
	return run, nil
}

func (s *SQLiteStore) loadLocales(ctx context.Context, runID string) ([]LocaleRun, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT locale, file, error, error_type FROM locale_results WHERE run_id = ? ORDER BY position", runID)
	if err != nil {
		return nil, err
	}

	var locales []LocaleRun
	for rows.Next() {
		var lr LocaleRun
		var errText, errType sql.NullString
		if err := rows.Scan(&lr.Locale, &lr.File, &errText, &errType); err != nil {
			rows.Close()
			return nil, err
		}
		lr.Error = errText.String
		lr.ErrorType = errType.String
		locales = append(locales, lr)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, `
SELECT locale_position, check_name, code, locale, text, container, previous_owner, file, line, col
FROM findings WHERE run_id = ? ORDER BY locale_position, position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var pos int
		var f findingRow
		if err := rows.Scan(&pos, &f.check, &f.code, &f.locale, &f.text, &f.container,
			&f.previousOwner, &f.file, &f.line, &f.column); err != nil {
			return nil, err
		}
		if pos < 0 || pos >= len(locales) {
			return nil, fmt.Errorf("finding refers to unknown locale position %d", pos)
		}
		locales[pos].Findings = append(locales[pos].Findings, f.finding())
	}
	return locales, rows.Err()
}

// ListRuns returns up to limit runs, newest first.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	query := "SELECT " + selectRunColumns + " FROM runs ORDER BY started_at DESC, id DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, s.fail("list", err)
	}
	defer rows.Close()

	runs := []*Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, s.fail("list", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail("list", err)
	}
	return runs, nil
}

// Count returns the number of stored runs.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs").Scan(&count); err != nil {
		return 0, s.fail("count", err)
	}
	return count, nil
}

// DeleteBefore removes runs started before cutoff.
func (s *SQLiteStore) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	deleted, err := s.deleteRuns(ctx, "started_at < ?", cutoff.UnixNano())
	if err != nil {
		return 0, s.fail("delete_before", err)
	}
	return deleted, nil
}

// TrimToCount removes the oldest runs until at most keep remain.
func (s *SQLiteStore) TrimToCount(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		return 0, s.fail("trim", errors.New("keep must not be negative"))
	}

	deleted, err := s.deleteRuns(ctx,
		"id NOT IN (SELECT id FROM runs ORDER BY started_at DESC, id DESC LIMIT ?)", keep)
	if err != nil {
		return 0, s.fail("trim", err)
	}
	return deleted, nil
}

// deleteRuns removes the runs matching where, together with their child rows.
func (s *SQLiteStore) deleteRuns(ctx context.Context, where string, args ...any) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	selected := "SELECT id FROM runs WHERE " + where
	for _, table := range []string{"findings", "locale_results"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE run_id IN ("+selected+")", args...); err != nil {
			return 0, err
		}
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM runs WHERE "+where, args...)
	if err != nil {
		return 0, err
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	return deleted, tx.Commit()
}

// Ping checks the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return s.fail("ping", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return s.fail("close", err)
	}
	return nil
}

func (s *SQLiteStore) fail(operation string, err error) error {
	return NewStorageError(s.config.Driver, operation, err)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var startedAt, duration int64
	var revision sql.NullString
	err := row.Scan(&run.ID, &startedAt, &duration, &run.ModelsDir, &revision,
		&run.Status, &run.Warnings, &run.Errors)
	if err != nil {
		return nil, err
	}
	run.StartedAt = time.Unix(0, startedAt).UTC()
	run.Duration = time.Duration(duration)
	run.Revision = revision.String
	return &run, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// findingRow holds the nullable columns of a findings row.
type findingRow struct {
	check, code, locale, text, container string
	previousOwner, file                  sql.NullString
	line, column                         sql.NullInt64
}

func (r findingRow) finding() validator.Finding {
	return validator.Finding{
		Check:         validator.Check(r.check),
		Code:          validator.Code(r.code),
		Locale:        r.locale,
		Text:          r.text,
		Container:     r.container,
		PreviousOwner: r.previousOwner.String,
		Location: ast.Location{
			File:   r.file.String,
			Line:   int(r.line.Int64),
			Column: int(r.column.Int64),
		},
	}
}
