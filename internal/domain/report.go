package domain

import "fmt"

// ──────────────────────────────────────────────────────────────────────────────
// RunReport — the stable contract returned by every pipeline run
// ──────────────────────────────────────────────────────────────────────────────

// RunReport aggregates the outcome of one ingestion run. A non-empty Errors
// slice with ItemsProcessed > 0 is a partial success, not a failure: callers
// must not treat per-item errors as fatal.
type RunReport struct {
	ItemsProcessed int      `json:"items_processed"`
	ItemsTotal     int      `json:"items_total"`
	WagersGraded   int      `json:"wagers_graded,omitempty"` // score runs only
	Errors         []string `json:"errors,omitempty"`
	Advisory       string   `json:"advisory,omitempty"`
}

// AddError records one per-item (non-fatal) error in the report.
func (r *RunReport) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Clean returns true when the run finished without any per-item errors.
func (r *RunReport) Clean() bool {
	return len(r.Errors) == 0
}
