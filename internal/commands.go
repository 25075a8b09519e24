package internal

import (
	"errors"
	"fmt"
	"sort"

	"github.com/asplogic/jshint/internal/host"
)

var ErrUnknownCommand = errors.New("unknown command")

// Args carries command arguments as the host passes them.
type Args map[string]any

// Bool returns the boolean argument key, or def if it is absent or not a
// boolean.
func (a Args) Bool(key string, def bool) bool {
	if v, ok := a[key].(bool); ok {
		return v
	}
	return def
}

// Command is a user-invocable action bound to a view.
type Command interface {
	Name() string
	Run(view host.View, args Args) error
}

type lintCommand struct{ engine *Engine }

func (c lintCommand) Name() string { return "jshint" }

// Run starts an asynchronous run. show_regions and show_panel default to
// true.
func (c lintCommand) Run(view host.View, args Args) error {
	c.engine.LintAsync(view, LintOptions{
		ShowRegions: args.Bool("show_regions", true),
		ShowPanel:   args.Bool("show_panel", true),
	})
	return nil
}

type clearAnnotationsCommand struct{ engine *Engine }

func (c clearAnnotationsCommand) Name() string { return "jshint_clear_annotations" }

func (c clearAnnotationsCommand) Run(view host.View, _ Args) error {
	c.engine.ClearAnnotations(view)
	return nil
}

// openFileCommand opens a configuration file in the view's window.
type openFileCommand struct {
	name string
	path func() string
}

func (c openFileCommand) Name() string { return c.name }

func (c openFileCommand) Run(view host.View, _ Args) error {
	window := view.Window()
	if window == nil {
		return fmt.Errorf("%s: view has no window", c.name)
	}
	window.OpenFile(c.path())
	return nil
}

// Registry maps command names to commands.
type Registry struct {
	commands map[string]Command
}

// NewRegistry registers every command the plugin provides.
func NewRegistry(engine *Engine) *Registry {
	r := &Registry{commands: make(map[string]Command)}

	r.Register(lintCommand{engine: engine})
	r.Register(clearAnnotationsCommand{engine: engine})
	r.Register(openFileCommand{name: "jshint_set_linting_prefs", path: engine.RCFile})
	r.Register(openFileCommand{name: "jshint_set_plugin_options", path: engine.SettingsFile})
	r.Register(openFileCommand{name: "jshint_set_node_path", path: engine.SettingsFile})
	r.Register(openFileCommand{
		name: "jshint_set_keyboard_shortcuts",
		path: func() string { return engine.KeymapFile(engine.Host().Platform()) },
	})

	return r
}

func (r *Registry) Register(c Command) {
	r.commands[c.Name()] = c
}

func (r *Registry) Run(name string, view host.View, args Args) error {
	c, ok := r.commands[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return c.Run(view, args)
}

// Names returns the registered command names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
