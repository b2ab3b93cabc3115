package entity

import "time"

// Mode names the input resolution strategy of a run.
type Mode string

const (
	ModeDirectory Mode = "directory"
	ModeURL       Mode = "url"
)

// Run identifies one invocation of the tool.
type Run struct {
	ID        string    `json:"id" yaml:"id"`
	Mode      Mode      `json:"mode" yaml:"mode"`
	StartedAt time.Time `json:"started_at" yaml:"started_at"`
}

// CaptureRecord is what result stores persist for each capture.
type CaptureRecord struct {
	RunID  string        `json:"run_id" yaml:"run_id"`
	Result CaptureResult `json:"result" yaml:"result"`
}
