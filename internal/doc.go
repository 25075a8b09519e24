// Package internal runs JSHint for editor views and presents the results.
//
// Key components:
//
// Engine: lints one view at a time. A run snapshots the view, writes it to
// a scratch file, executes the linter script through Node.js and parses its
// output. Results of a run that was superseded by a newer one are dropped.
//
// Listener: turns editor events (modified, saved, loaded, selection moved)
// into runs and status bar messages according to the plugin settings.
//
// Registry: the named commands an editor binds to menu entries and keys.
//
// Watcher: drives listeners from file system events so that files edited
// outside an editor are linted as they change.
//
// Usage:
//
//	engine := internal.NewEngine(h, internal.WithPluginDir(dir))
//	if err := engine.Lint(ctx, view, internal.LintOptions{ShowRegions: true}); err != nil {
//	    // handle error
//	}
//	for _, d := range engine.Diagnostics() {
//	    fmt.Println(d.Line, d.Column, d.Message)
//	}
package internal
