package database

// SQL migrations for the run-history database.
// All migrations use IF NOT EXISTS to be idempotent.

const migrationRunHistory = `
CREATE TABLE IF NOT EXISTS run_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    status TEXT NOT NULL,
    tickers_resolved INTEGER DEFAULT 0,
    cash_flow_rows INTEGER DEFAULT 0,
    output_dir TEXT,
    error_message TEXT,
    started_at DATETIME NOT NULL,
    completed_at DATETIME,
    duration_ms INTEGER
);
`

const migrationRunHistoryIndexes = `
CREATE INDEX IF NOT EXISTS idx_run_history_started_at ON run_history(started_at);
`
