package entity

import "time"

// CaptureResult holds the measurements taken while capturing a single input.
type CaptureResult struct {
	Input               CaptureInput  `json:"input" yaml:"input"`
	OutputPath          string        `json:"output_path" yaml:"output_path"`
	RenderedHeightPx    int64         `json:"rendered_height_px" yaml:"rendered_height_px"`
	NavigateDuration    time.Duration `json:"navigate_duration" yaml:"navigate_duration"`
	ScreenshotDuration  time.Duration `json:"screenshot_duration" yaml:"screenshot_duration"`
	OutputFileSizeBytes int64         `json:"output_file_size_bytes" yaml:"output_file_size_bytes"`
	CapturedAt          time.Time     `json:"captured_at" yaml:"captured_at"`
}

// SizeMB returns the output size in decimal megabytes.
func (r CaptureResult) SizeMB() float64 {
	return float64(r.OutputFileSizeBytes) / 1000000
}
