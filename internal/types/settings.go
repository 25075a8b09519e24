package types

import "time"

const (
	DefaultLintOnEditTimeout = 1.0
	DefaultLintTimeout       = 30 * time.Second
)

// Settings holds the recognized plugin options.
type Settings struct {
	// NodePath maps a platform name (windows, linux, osx) to the node
	// executable used when neither nodejs nor node is found on PATH.
	NodePath map[string]string `yaml:"node_path" toml:"node_path" json:"node_path"`
	// LinterScript is passed to node before the scratch file. When empty
	// the executable is treated as the linter itself.
	LinterScript string `yaml:"linter_script" toml:"linter_script" json:"linter_script"`

	LintOnEdit               bool    `yaml:"lint_on_edit" toml:"lint_on_edit" json:"lint_on_edit"`
	LintOnEditTimeout        float64 `yaml:"lint_on_edit_timeout" toml:"lint_on_edit_timeout" json:"lint_on_edit_timeout"`
	LintOnSave               bool    `yaml:"lint_on_save" toml:"lint_on_save" json:"lint_on_save"`
	LintOnLoad               bool    `yaml:"lint_on_load" toml:"lint_on_load" json:"lint_on_load"`
	HighlightSelectedRegions bool    `yaml:"highlight_selected_regions" toml:"highlight_selected_regions" json:"highlight_selected_regions"`

	// LintTimeout bounds a single linter invocation, in seconds.
	LintTimeout  float64 `yaml:"lint_timeout" toml:"lint_timeout" json:"lint_timeout"`
	CacheResults bool    `yaml:"cache_results" toml:"cache_results" json:"cache_results"`
}

// DefaultSettings mirrors the settings file shipped with the plugin.
func DefaultSettings() Settings {
	return Settings{
		NodePath: map[string]string{
			"windows": "C:/Program Files/nodejs/node.exe",
			"linux":   "/usr/bin/nodejs",
			"osx":     "/usr/local/bin/node",
		},
		LinterScript:      "scripts/run.js",
		LintOnEdit:        false,
		LintOnEditTimeout: DefaultLintOnEditTimeout,
		LintOnSave:        false,
		LintOnLoad:        false,
		LintTimeout:       DefaultLintTimeout.Seconds(),
	}
}

// EditDelay returns the debounce interval for edit-triggered runs.
func (s Settings) EditDelay() time.Duration {
	if s.LintOnEditTimeout <= 0 {
		return time.Duration(DefaultLintOnEditTimeout * float64(time.Second))
	}
	return time.Duration(s.LintOnEditTimeout * float64(time.Second))
}

// RunTimeout returns the upper bound for one linter invocation.
func (s Settings) RunTimeout() time.Duration {
	if s.LintTimeout <= 0 {
		return DefaultLintTimeout
	}
	return time.Duration(s.LintTimeout * float64(time.Second))
}
