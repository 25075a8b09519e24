package types

import "fmt"

// Diagnostic represents a single issue reported by the linter.
// Line and Column are 1-based.
type Diagnostic struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

// Region is a half-open span [Begin, End) of buffer offsets.
type Region struct {
	Begin int `json:"begin"`
	End   int `json:"end"`
}

// Point returns an empty region located at offset.
func Point(offset int) Region {
	return Region{Begin: offset, End: offset}
}

// Contains reports whether pos lies inside r. The end is inclusive so that
// a caret placed right after a word still belongs to it.
func (r Region) Contains(pos int) bool {
	return r.Begin <= pos && pos <= r.End
}

// Intersects reports whether r and other share at least one position.
func (r Region) Intersects(other Region) bool {
	if r == other {
		return true
	}
	return r.Begin <= other.End && other.Begin <= r.End
}

// PresentedDiagnostic is a diagnostic mapped into the coordinate space
// of the buffer it was computed against.
type PresentedDiagnostic struct {
	Diagnostic
	Region Region `json:"region"`
}

// PanelItem renders the entry shown in the selectable list.
func (d PresentedDiagnostic) PanelItem() string {
	return fmt.Sprintf("%d:%d %s", d.Line, d.Column, d.Message)
}

// LintRequest carries the buffer snapshot handed to the linter.
type LintRequest struct {
	Text string
	// PathHint is the buffer's real path, empty for scratch buffers.
	PathHint string
}

// ParsedOutput is the result of splitting and parsing the linter output.
type ParsedOutput struct {
	// Preamble holds everything before the sentinel. It goes to the log,
	// never to the user.
	Preamble    []byte
	Diagnostics []Diagnostic
	// Skipped counts result lines that did not match the expected format.
	Skipped int
}
