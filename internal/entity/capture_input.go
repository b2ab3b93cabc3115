package entity

// CaptureInput is one page to capture. Suffix is the relative path used both
// for the output file name and, in directory mode, the URL path.
type CaptureInput struct {
	Suffix string `json:"suffix" yaml:"suffix"`
	URL    string `json:"url" yaml:"url"`
}
