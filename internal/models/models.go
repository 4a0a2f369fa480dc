// Package models contains the domain models for the export tool.
package models

import "time"

// RunHistory tracks export runs for auditing.
type RunHistory struct {
	ID              int64      `json:"id"`
	Status          string     `json:"status"` // "started", "success", "error"
	TickersResolved int        `json:"tickers_resolved"`
	CashFlowRows    int        `json:"cash_flow_rows"`
	OutputDir       string     `json:"output_dir,omitempty"`
	ErrorMessage    string     `json:"error_message,omitempty"`
	StartedAt       time.Time  `json:"started_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	DurationMs      int64      `json:"duration_ms,omitempty"`
}
