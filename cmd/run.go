package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/asplogic/jshint/internal"
	"github.com/asplogic/jshint/internal/host"
	"github.com/asplogic/jshint/internal/runner"
	"github.com/asplogic/jshint/lint"
	"github.com/spf13/cobra"
)

var (
	commandArgs  []string
	listCommands bool
)

var runCmd = &cobra.Command{
	Use:   "run <command> [file]",
	Short: "Invoke a plugin command against a file",
	Long: `Invokes one of the plugin commands (jshint, jshint_clear_annotations,
jshint_set_linting_prefs, ...) the way an editor would, printing the quick
panel and the files it would open.
Example) jshint run jshint app.js --arg show_regions=false`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return runCommand(ctx, os.Stdout, args)
	},
}

func init() {
	runCmd.Flags().StringArrayVar(&commandArgs, "arg", nil, "Command argument as key=value (repeatable)")
	runCmd.Flags().BoolVar(&listCommands, "list", false, "List the available commands")
}

func runCommand(ctx context.Context, out io.Writer, args []string) error {
	term := host.NewTerminal(out, runner.Platform())
	engine, _, err := lint.New(logger, term, pluginDir, settingsPath(), internal.WithContext(ctx))
	if err != nil {
		return err
	}
	registry := internal.NewRegistry(engine)

	if listCommands {
		for _, name := range registry.Names() {
			fmt.Fprintln(out, name)
		}
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("please provide a command name")
	}

	view := host.NewBuffer("", "", "")
	if len(args) > 1 {
		content, err := os.ReadFile(args[1])
		if err != nil {
			return err
		}
		view = host.NewBuffer(string(content), args[1], "")
	}
	view.Attach(term)

	parsed, err := parseCommandArgs(commandArgs)
	if err != nil {
		return err
	}

	if err := registry.Run(args[0], view, parsed); err != nil {
		return err
	}
	engine.Wait()
	return nil
}

// parseCommandArgs turns key=value pairs into command arguments. Values
// that parse as booleans become booleans.
func parseCommandArgs(pairs []string) (internal.Args, error) {
	args := internal.Args{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid argument %q, expected key=value", pair)
		}
		if b, err := strconv.ParseBool(value); err == nil {
			args[key] = b
			continue
		}
		args[key] = value
	}
	return args, nil
}
