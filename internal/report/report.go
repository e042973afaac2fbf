// Package report defines the validation report structure and its output
// renderers.
package report

import "fmt"

// Violation kinds.
const (
	KindPattern = "pattern"
	KindRule    = "rule"
)

// Report is the top-level result of one validation run.
type Report struct {
	Tool         string       `json:"tool"`
	Version      string       `json:"version"`
	Root         string       `json:"root"`
	ManifestHash string       `json:"manifest_hash"`
	Mode         string       `json:"mode"` // "staged" or "tracked"
	Summary      Summary      `json:"summary"`
	Files        []FileResult `json:"files"`
}

// Summary holds the aggregate counts for the run.
type Summary struct {
	FilesChecked   int `json:"files_checked"`
	FilesValid     int `json:"files_valid"`
	ViolationCount int `json:"violation_count"`
}

// FileResult is the verdict for a single candidate file.
type FileResult struct {
	Path       string      `json:"path"`
	Valid      bool        `json:"valid"`
	Violations []Violation `json:"violations,omitempty"`
}

// Violation records one protected-content hit. Kind is "pattern" for regex
// category matches and "rule" for validation-rule failures; Source names the
// category or rule.
type Violation struct {
	Kind    string `json:"kind"`
	Source  string `json:"source"`
	Message string `json:"message"`
}

// HasViolations reports whether any checked file failed.
func (r *Report) HasViolations() bool {
	return r.Summary.ViolationCount > 0
}

// Renderer formats a Report into bytes for output.
type Renderer interface {
	Render(report *Report) ([]byte, error)
}

// NewRenderer returns a Renderer for the given format string.
// Supported formats: "human" (default), "json".
func NewRenderer(format string) (Renderer, error) {
	switch format {
	case "human", "":
		return &humanRenderer{}, nil
	case "json":
		return &jsonRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q: supported formats are human, json", format)
	}
}
