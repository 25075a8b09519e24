package internal

import "github.com/asplogic/jshint/internal/host"

// Listener turns host buffer events into lint runs according to the
// current settings.
type Listener struct {
	engine *Engine
}

func NewListener(engine *Engine) *Listener {
	return &Listener{engine: engine}
}

// OnModified schedules a debounced run when lint_on_edit is set.
func (l *Listener) OnModified(view host.View) {
	settings := l.engine.Settings()
	if !settings.LintOnEdit {
		return
	}
	l.engine.ScheduleLint(view, settings.EditDelay())
}

// OnPostSave and OnLoad only draw regions; the quick panel is reserved
// for explicit runs.
func (l *Listener) OnPostSave(view host.View) {
	if !l.engine.Settings().LintOnSave {
		return
	}
	l.engine.LintAsync(view, LintOptions{ShowRegions: true})
}

func (l *Listener) OnLoad(view host.View) {
	if !l.engine.Settings().LintOnLoad {
		return
	}
	l.engine.LintAsync(view, LintOptions{ShowRegions: true})
}

// OnSelectionModified shows the message of the diagnostic under the first
// selection in the status bar, or clears it.
func (l *Listener) OnSelectionModified(view host.View) {
	selection := view.Selection()
	if len(selection) == 0 {
		return
	}

	msg := ""
	if d, ok := l.engine.Session().FindIntersecting(selection[0]); ok {
		msg = d.Message
	}
	l.engine.Host().StatusMessage(msg)
}
