package host

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

var (
	errorStyle  = color.New(color.FgRed, color.Bold)
	promptStyle = color.New(color.FgHiYellow, color.Bold)
	statusStyle = color.New(color.FgCyan)
	indexStyle  = color.New(color.FgHiBlue, color.Bold)
)

// Terminal is a non-interactive Host and Window writing to an io.Writer.
// Dialogs are printed and answered with "cancel"; quick panels are printed
// as a numbered list and dismissed.
type Terminal struct {
	mu       sync.Mutex
	dispatch sync.Mutex
	out      io.Writer
	platform string
	opened   []string
}

func NewTerminal(out io.Writer, platform string) *Terminal {
	return &Terminal{out: out, platform: platform}
}

func (t *Terminal) OkCancelDialog(msg string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	promptStyle.Fprintf(t.out, "%s\n", msg)
	return false
}

func (t *Terminal) ErrorMessage(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	errorStyle.Fprintf(t.out, "error: %s\n", msg)
}

func (t *Terminal) StatusMessage(msg string) {
	if msg == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	statusStyle.Fprintf(t.out, "%s\n", msg)
}

func (t *Terminal) Dispatch(fn func()) {
	t.dispatch.Lock()
	defer t.dispatch.Unlock()
	fn()
}

func (t *Terminal) Platform() string {
	return t.platform
}

func (t *Terminal) ShowQuickPanel(items []string, onSelect func(index int)) {
	t.mu.Lock()
	for i, item := range items {
		fmt.Fprintf(t.out, "%s %s\n", indexStyle.Sprintf("%3d", i+1), item)
	}
	t.mu.Unlock()

	if onSelect != nil {
		onSelect(-1)
	}
}

func (t *Terminal) OpenFile(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.opened = append(t.opened, path)
	fmt.Fprintf(t.out, "open %s\n", path)
}
