package response

import (
	"time"

	"github.com/user/snap-site/internal/entity"
)

// CaptureResponse is a DTO for one capture, mirroring entity.CaptureResult.
type CaptureResponse struct {
	RunID             string    `json:"run_id"`
	Suffix            string    `json:"suffix"`
	URL               string    `json:"url"`
	OutputPath        string    `json:"output_path"`
	RenderedHeightPx  int64     `json:"rendered_height_px"`
	NavigateSeconds   float64   `json:"navigate_seconds"`
	ScreenshotSeconds float64   `json:"screenshot_seconds"`
	SizeBytes         int64     `json:"size_bytes"`
	CapturedAt        time.Time `json:"captured_at"`
}

type CapturesResponse struct {
	Count    int               `json:"count"`
	Captures []CaptureResponse `json:"captures"`
}

// NewCapturesResponse converts stored records into the API representation.
func NewCapturesResponse(records []entity.CaptureRecord) CapturesResponse {
	out := CapturesResponse{Count: len(records), Captures: make([]CaptureResponse, 0, len(records))}
	for _, rec := range records {
		res := rec.Result
		out.Captures = append(out.Captures, CaptureResponse{
			RunID:             rec.RunID,
			Suffix:            res.Input.Suffix,
			URL:               res.Input.URL,
			OutputPath:        res.OutputPath,
			RenderedHeightPx:  res.RenderedHeightPx,
			NavigateSeconds:   res.NavigateDuration.Seconds(),
			ScreenshotSeconds: res.ScreenshotDuration.Seconds(),
			SizeBytes:         res.OutputFileSizeBytes,
			CapturedAt:        res.CapturedAt,
		})
	}
	return out
}
