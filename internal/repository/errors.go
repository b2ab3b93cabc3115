package repository

import "errors"

var (
	// ErrConfiguration is returned for invalid option combinations or a missing site directory.
	ErrConfiguration = errors.New("invalid configuration")
	// ErrNavigation is returned when the target URL could not be loaded.
	ErrNavigation = errors.New("navigation failed")
	// ErrEvaluation is returned when a DOM query on the page fails.
	ErrEvaluation = errors.New("page evaluation failed")
	// ErrCapture is returned when the browser fails to produce a screenshot.
	ErrCapture = errors.New("screenshot capture failed")
	// ErrFilesystem is returned when output directories or files cannot be written.
	ErrFilesystem = errors.New("filesystem error")
)

// ErrorType maps an error onto a short label used in logs and metrics.
func ErrorType(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrNavigation):
		return "navigation"
	case errors.Is(err, ErrEvaluation):
		return "evaluation"
	case errors.Is(err, ErrCapture):
		return "capture"
	case errors.Is(err, ErrFilesystem):
		return "filesystem"
	default:
		return "unknown"
	}
}
