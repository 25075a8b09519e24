// Package host defines the narrow surface of the editor that the lint
// engine talks to, plus in-memory and terminal implementations of it.
package host

import tt "github.com/asplogic/jshint/internal/types"

// Region keys used for highlighting.
const (
	ErrorsKey   = "jshint_errors"
	SelectedKey = "jshint_selected"
)

// Style selects how highlighted regions are drawn.
type Style struct {
	Scope string
	Icon  string
	Flags DrawFlags
}

type DrawFlags uint

const (
	DrawEmpty DrawFlags = 1 << iota
	DrawNoFill
	DrawNoOutline
	DrawSquigglyUnderline
	DrawOutlined
)

var (
	// ErrorStyle underlines every diagnostic and marks the gutter.
	ErrorStyle = Style{
		Scope: "keyword",
		Icon:  "warning",
		Flags: DrawEmpty | DrawNoFill | DrawNoOutline | DrawSquigglyUnderline,
	}
	// SelectedStyle highlights the diagnostic picked from the panel.
	SelectedStyle = Style{Scope: "meta"}
)

// View is an open buffer and its on-screen presentation.
type View interface {
	Text() string
	// FileName returns the buffer's path, or "" for scratch buffers.
	FileName() string
	Syntax() string
	// TextPoint converts a 0-based (row, col) to a buffer offset.
	TextPoint(row, col int) int
	Word(offset int) tt.Region
	Line(offset int) tt.Region
	Selection() []tt.Region
	SetSelection(regions ...tt.Region)
	Show(offset int)
	AddRegions(key string, regions []tt.Region, style Style)
	EraseRegions(key string)
	// Window may return nil when the view is detached.
	Window() Window
}

// Window hosts views and modal UI.
type Window interface {
	// ShowQuickPanel presents a selectable list. onSelect receives -1 when
	// the panel is dismissed.
	ShowQuickPanel(items []string, onSelect func(index int))
	OpenFile(path string)
}

// Host exposes application level services.
type Host interface {
	OkCancelDialog(msg string) bool
	ErrorMessage(msg string)
	StatusMessage(msg string)
	// Dispatch runs fn on the host's callback thread. fn may run before
	// Dispatch returns or later.
	Dispatch(fn func())
	Platform() string
}
