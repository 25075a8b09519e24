package host

import "sync"

// MemoryWindow records the modal UI requests it receives.
type MemoryWindow struct {
	mu       sync.Mutex
	items    []string
	onSelect func(int)
	opened   []string
}

func NewMemoryWindow() *MemoryWindow {
	return &MemoryWindow{}
}

func (w *MemoryWindow) ShowQuickPanel(items []string, onSelect func(index int)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.items = append([]string(nil), items...)
	w.onSelect = onSelect
}

// PanelItems returns the items of the last quick panel, nil if none.
func (w *MemoryWindow) PanelItems() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.items
}

// Choose simulates the user picking index from the last quick panel.
func (w *MemoryWindow) Choose(index int) {
	w.mu.Lock()
	onSelect := w.onSelect
	w.mu.Unlock()

	if onSelect != nil {
		onSelect(index)
	}
}

func (w *MemoryWindow) OpenFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.opened = append(w.opened, path)
}

// Opened lists the files opened so far.
func (w *MemoryWindow) Opened() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.opened...)
}

// MemoryHost records dialogs and status messages. Dispatch runs callbacks
// inline, serialized by a lock standing in for the UI thread.
type MemoryHost struct {
	mu       sync.Mutex
	dispatch sync.Mutex
	platform string

	// OkCancelAnswer is returned from OkCancelDialog.
	OkCancelAnswer bool

	okCancel []string
	errors   []string
	status   []string
}

func NewMemoryHost(platform string) *MemoryHost {
	return &MemoryHost{platform: platform}
}

func (h *MemoryHost) OkCancelDialog(msg string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.okCancel = append(h.okCancel, msg)
	return h.OkCancelAnswer
}

func (h *MemoryHost) ErrorMessage(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors = append(h.errors, msg)
}

func (h *MemoryHost) StatusMessage(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.status = append(h.status, msg)
}

func (h *MemoryHost) Dispatch(fn func()) {
	h.dispatch.Lock()
	defer h.dispatch.Unlock()
	fn()
}

func (h *MemoryHost) Platform() string {
	return h.platform
}

func (h *MemoryHost) OkCancelPrompts() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.okCancel...)
}

func (h *MemoryHost) Errors() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.errors...)
}

// LastStatus returns the latest status message and whether any was set.
func (h *MemoryHost) LastStatus() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.status) == 0 {
		return "", false
	}
	return h.status[len(h.status)-1], true
}
