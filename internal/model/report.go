package model

import "time"

// GroupStatus is the typed outcome of processing one source group. Every
// stage failure maps to a status so the orchestrator's skip-and-continue
// behavior is driven by values, not string matching.
type GroupStatus string

const (
	StatusPublished          GroupStatus = "published"
	StatusNoCandidates       GroupStatus = "no-candidates"
	StatusNoContent          GroupStatus = "no-content"
	StatusSummaryUnavailable GroupStatus = "summary-unavailable"
	StatusPublishFailed      GroupStatus = "publish-failed"
	StatusHistoryError       GroupStatus = "history-error"
	StatusInternalError      GroupStatus = "internal-error"
)

// GroupResult records what happened to one group during a run.
type GroupResult struct {
	Group  string      `json:"group"`
	Status GroupStatus `json:"status"`
	ItemID string      `json:"item_id,omitempty"`
	Title  string      `json:"title,omitempty"`
	Unseen int         `json:"unseen"`
	Err    string      `json:"error,omitempty"`
}

// RunReport aggregates one full pipeline invocation.
type RunReport struct {
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Results    []GroupResult `json:"results"`
	Published  int           `json:"published"`
}

// Add appends a group result and updates the publish counter.
func (r *RunReport) Add(res GroupResult) {
	r.Results = append(r.Results, res)
	if res.Status == StatusPublished {
		r.Published++
	}
}
