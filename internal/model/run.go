package model

import "time"

// RunStatus tracks the lifecycle of a pipeline run.
type RunStatus string

const (
	RunStatusQueued   RunStatus = "queued"
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run is one recorded pipeline run.
type Run struct {
	ID        string     `json:"id"`
	Status    RunStatus  `json:"status"`
	Result    *RunResult `json:"result,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// RunResult holds the per-stage row counts and outcome of a run.
type RunResult struct {
	CatalogRows      int     `json:"catalog_rows"`
	AwardRows        int     `json:"award_rows"`
	BiographicalRows int     `json:"biographical_rows"`
	MergedRows       int     `json:"merged_rows"`
	Loaded           bool    `json:"loaded"`
	Shared           bool    `json:"shared"`
	DurationSecs     float64 `json:"duration_secs"`
	Error            string  `json:"error,omitempty"`
}
