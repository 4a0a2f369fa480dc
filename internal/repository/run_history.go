// Package repository provides database access for the export tool.
package repository

import (
	"database/sql"
	"time"

	"balanz_export/internal/database"
	"balanz_export/internal/models"
)

// RunHistoryRepository handles run history database operations.
type RunHistoryRepository struct {
	db *database.DB
}

// NewRunHistoryRepository creates a new RunHistoryRepository.
func NewRunHistoryRepository(db *database.DB) *RunHistoryRepository {
	return &RunHistoryRepository{db: db}
}

// Start creates a new run history entry with status "started" and returns its ID.
func (r *RunHistoryRepository) Start() (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO run_history (status, started_at)
		VALUES ('started', ?)
	`, time.Now())
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// Complete marks a run as successful.
func (r *RunHistoryRepository) Complete(id int64, tickersResolved, cashFlowRows int, outputDir string) error {
	now := time.Now()
	_, err := r.db.Exec(`
		UPDATE run_history
		SET status = 'success', tickers_resolved = ?, cash_flow_rows = ?, output_dir = ?, completed_at = ?,
		    duration_ms = (julianday(?) - julianday(started_at)) * 86400000
		WHERE id = ?
	`, tickersResolved, cashFlowRows, outputDir, now, now, id)
	return err
}

// Fail marks a run as failed with an error message.
func (r *RunHistoryRepository) Fail(id int64, errorMsg string) error {
	now := time.Now()
	_, err := r.db.Exec(`
		UPDATE run_history
		SET status = 'error', error_message = ?, completed_at = ?,
		    duration_ms = (julianday(?) - julianday(started_at)) * 86400000
		WHERE id = ?
	`, errorMsg, now, now, id)
	return err
}

// GetByID retrieves a run history entry by ID.
func (r *RunHistoryRepository) GetByID(id int64) (*models.RunHistory, error) {
	row := r.db.QueryRow(`
		SELECT id, status, tickers_resolved, cash_flow_rows, output_dir, error_message, started_at, completed_at, duration_ms
		FROM run_history
		WHERE id = ?
	`, id)

	return r.scanHistory(row)
}

// Recent retrieves the most recent runs, newest first.
func (r *RunHistoryRepository) Recent(limit int) ([]*models.RunHistory, error) {
	rows, err := r.db.Query(`
		SELECT id, status, tickers_resolved, cash_flow_rows, output_dir, error_message, started_at, completed_at, duration_ms
		FROM run_history
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanHistories(rows)
}

// DeleteOlderThan removes run history entries older than the given time.
func (r *RunHistoryRepository) DeleteOlderThan(before time.Time) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM run_history WHERE started_at < ?`, before)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// scanHistory scans a single row into a RunHistory.
func (r *RunHistoryRepository) scanHistory(row *sql.Row) (*models.RunHistory, error) {
	history := &models.RunHistory{}
	var outputDir, errorMsg sql.NullString
	var completedAt sql.NullTime
	var durationMs sql.NullInt64

	err := row.Scan(
		&history.ID,
		&history.Status,
		&history.TickersResolved,
		&history.CashFlowRows,
		&outputDir,
		&errorMsg,
		&history.StartedAt,
		&completedAt,
		&durationMs,
	)
	if err != nil {
		return nil, err
	}

	history.OutputDir = outputDir.String
	history.ErrorMessage = errorMsg.String
	if completedAt.Valid {
		history.CompletedAt = &completedAt.Time
	}
	history.DurationMs = durationMs.Int64

	return history, nil
}

// scanHistories scans multiple rows into RunHistory entries.
func (r *RunHistoryRepository) scanHistories(rows *sql.Rows) ([]*models.RunHistory, error) {
	var histories []*models.RunHistory

	for rows.Next() {
		history := &models.RunHistory{}
		var outputDir, errorMsg sql.NullString
		var completedAt sql.NullTime
		var durationMs sql.NullInt64

		err := rows.Scan(
			&history.ID,
			&history.Status,
			&history.TickersResolved,
			&history.CashFlowRows,
			&outputDir,
			&errorMsg,
			&history.StartedAt,
			&completedAt,
			&durationMs,
		)
		if err != nil {
			return nil, err
		}

		history.OutputDir = outputDir.String
		history.ErrorMessage = errorMsg.String
		if completedAt.Valid {
			history.CompletedAt = &completedAt.Time
		}
		history.DurationMs = durationMs.Int64

		histories = append(histories, history)
	}

	return histories, rows.Err()
}
