package history

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema contains the SQL statements to create the history database schema.
// Timestamps are Unix nanoseconds so both drivers read them back identically.
const Schema = `
-- Lint runs
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    started_at INTEGER NOT NULL,
    duration_ns INTEGER NOT NULL,
    models_dir TEXT NOT NULL,
    revision TEXT,
    status TEXT NOT NULL,
    warnings INTEGER NOT NULL,
    errors INTEGER NOT NULL
);

-- Per-locale results, in run order
CREATE TABLE IF NOT EXISTS locale_results (
    run_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    locale TEXT NOT NULL,
    file TEXT NOT NULL,
    error TEXT,
    error_type TEXT,
    PRIMARY KEY (run_id, position)
);

-- Findings, in report order
CREATE TABLE IF NOT EXISTS findings (
    run_id TEXT NOT NULL,
    locale_position INTEGER NOT NULL,
    position INTEGER NOT NULL,
    check_name TEXT NOT NULL,
    code TEXT NOT NULL,
    locale TEXT NOT NULL,
    text TEXT NOT NULL,
    container TEXT NOT NULL,
    previous_owner TEXT,
    file TEXT,
    line INTEGER,
    col INTEGER,
    PRIMARY KEY (run_id, locale_position, position)
);

-- Schema version table
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
`

// InsertSchemaVersion inserts the schema version into the schema_version table.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion retrieves the current schema version from the database.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`

const (
	insertRun = `
INSERT INTO runs (id, started_at, duration_ns, models_dir, revision, status, warnings, errors)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	insertLocaleResult = `
INSERT INTO locale_results (run_id, position, locale, file, error, error_type)
VALUES (?, ?, ?, ?, ?, ?)`

	insertFinding = `
INSERT INTO findings (run_id, locale_position, position, check_name, code, locale, text, container, previous_owner, file, line, col)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	selectRunColumns = `id, started_at, duration_ns, models_dir, revision, status, warnings, errors`
)
