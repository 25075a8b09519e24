package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/asplogic/jshint/internal"
	tt "github.com/asplogic/jshint/internal/types"
	"github.com/asplogic/jshint/lint"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

// withDirs points the global flags at a fresh plugin directory for the
// duration of the test.
func withDirs(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	oldCfg, oldDir, oldArgs, oldList := cfgFile, pluginDir, commandArgs, listCommands
	cfgFile, pluginDir, commandArgs, listCommands = "", dir, nil, false
	t.Cleanup(func() {
		cfgFile, pluginDir, commandArgs, listCommands = oldCfg, oldDir, oldArgs, oldList
	})
	return dir
}

func sampleResults(t *testing.T) []lint.FileResult {
	t.Helper()
	dir := t.TempDir()
	file := filepath.Join(dir, "a.js")
	require.NoError(t, os.WriteFile(file, []byte("var a = 1\nfoo(bar)\n"), 0o644))

	return []lint.FileResult{
		{Filename: filepath.Join(dir, "b.js")},
		{
			Filename: file,
			Diagnostics: []tt.PresentedDiagnostic{{
				Diagnostic: tt.Diagnostic{Line: 2, Column: 5, Message: "'bar' is not defined."},
				Region:     tt.Region{Begin: 14, End: 17},
			}},
		},
	}
}

func TestPrintResults_Text(t *testing.T) {
	results := sampleResults(t)

	var buf bytes.Buffer
	require.NoError(t, printResults(&buf, results, nil, false, ""))

	expected := `warning: 'bar' is not defined.
 --> ` + results[1].Filename + `:2:5
  |
2 | foo(bar)
  |     ~~~

1 problem(s) found in 2 file(s)
`
	assert.Equal(t, expected, buf.String())
}

func TestPrintResults_Stdin(t *testing.T) {
	results := []lint.FileResult{{
		Filename: stdinName,
		Diagnostics: []tt.PresentedDiagnostic{{
			Diagnostic: tt.Diagnostic{Line: 1, Column: 4, Message: "Missing semicolon."},
			Region:     tt.Region{Begin: 0, End: 3},
		}},
	}}
	sources := map[string]*internal.SourceCode{stdinName: internal.NewSourceCode("x()")}

	var buf bytes.Buffer
	require.NoError(t, printResults(&buf, results, sources, false, ""))
	assert.Contains(t, buf.String(), "1 | x()\n")
	assert.Contains(t, buf.String(), " --> <stdin>:1:4\n")
}

func TestPrintResults_JSON(t *testing.T) {
	results := sampleResults(t)

	var buf bytes.Buffer
	require.NoError(t, printResults(&buf, results, nil, true, ""))

	expected := `[{"filename":"` + results[1].Filename + `","diagnostics":[{"line":2,"column":5,"message":"'bar' is not defined.","region":{"begin":14,"end":17}}]},` +
		`{"filename":"` + results[0].Filename + `","diagnostics":null}]`
	if results[0].Filename < results[1].Filename {
		expected = `[{"filename":"` + results[0].Filename + `","diagnostics":null},` +
			`{"filename":"` + results[1].Filename + `","diagnostics":[{"line":2,"column":5,"message":"'bar' is not defined.","region":{"begin":14,"end":17}}]}]`
	}
	assert.JSONEq(t, expected, buf.String())

	out := filepath.Join(t.TempDir(), "out.json")
	buf.Reset()
	require.NoError(t, printResults(&buf, results, nil, true, out))
	assert.Empty(t, buf.String())
	written, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.JSONEq(t, expected, string(written))
}

func TestParseCommandArgs(t *testing.T) {
	t.Parallel()

	args, err := parseCommandArgs([]string{"show_panel=false", "show_regions=1", "name=value=x"})
	require.NoError(t, err)
	assert.Equal(t, internal.Args{"show_panel": false, "show_regions": true, "name": "value=x"}, args)

	_, err = parseCommandArgs([]string{"novalue"})
	assert.Error(t, err)
	_, err = parseCommandArgs([]string{"=x"})
	assert.Error(t, err)
}

func TestInitConfigurationFile(t *testing.T) {
	dir := withDirs(t)

	path, err := initConfigurationFile("", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "jshint.yaml"), path)
	assert.Equal(t, path, settingsPath(), "settings in the plugin directory are picked up")

	_, err = initConfigurationFile("", dir)
	assert.Error(t, err, "existing settings are not overwritten")

	custom := filepath.Join(dir, "custom.yaml")
	path, err = initConfigurationFile(custom, dir)
	require.NoError(t, err)
	assert.Equal(t, custom, path)
}

func TestSettingsPath(t *testing.T) {
	dir := withDirs(t)
	assert.Equal(t, "", settingsPath())

	cfgFile = filepath.Join(dir, "explicit.toml")
	assert.Equal(t, cfgFile, settingsPath())
}

func TestRunCommand(t *testing.T) {
	dir := withDirs(t)

	var buf bytes.Buffer
	listCommands = true
	require.NoError(t, runCommand(context.Background(), &buf, nil))
	assert.Equal(t, `jshint
jshint_clear_annotations
jshint_set_keyboard_shortcuts
jshint_set_linting_prefs
jshint_set_node_path
jshint_set_plugin_options
`, buf.String())

	listCommands = false
	buf.Reset()
	require.NoError(t, runCommand(context.Background(), &buf, []string{"jshint_set_linting_prefs"}))
	assert.Equal(t, "open "+filepath.Join(dir, ".jshintrc")+"\n", buf.String())

	buf.Reset()
	require.NoError(t, runCommand(context.Background(), &buf, []string{"jshint_clear_annotations"}))
	assert.Empty(t, buf.String())

	assert.Error(t, runCommand(context.Background(), &buf, nil))
	assert.ErrorIs(t, runCommand(context.Background(), &buf, []string{"nope"}), internal.ErrUnknownCommand)
	assert.Error(t, runCommand(context.Background(), &buf, []string{"jshint", filepath.Join(dir, "missing.js")}))
}
