package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/asplogic/jshint/formatter"
	"github.com/asplogic/jshint/internal"
	"github.com/asplogic/jshint/internal/host"
	"github.com/asplogic/jshint/internal/runner"
	"github.com/asplogic/jshint/lint"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const stdinName = "<stdin>"

var (
	lintJsonOutput bool
	outPath        string
	lintStdin      bool
)

var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Lint JavaScript files and directories",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 && !lintStdin {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		term := host.NewTerminal(os.Stderr, runner.Platform())
		engine, _, err := lint.New(logger, term, pluginDir, settingsPath())
		if err != nil {
			logger.Fatal("Failed to initialize lint engine", zap.Error(err))
		}

		var sources map[string]*internal.SourceCode
		var results []lint.FileResult
		if lintStdin {
			source, err := io.ReadAll(os.Stdin)
			if err != nil {
				logger.Fatal("Failed to read stdin", zap.Error(err))
			}
			result, err := lint.ProcessSource(ctx, engine, source)
			if err != nil {
				logger.Error("Error processing stdin", zap.Error(err))
				os.Exit(1)
			}
			result.Filename = stdinName
			results = append(results, result)
			sources = map[string]*internal.SourceCode{stdinName: internal.NewSourceCode(string(source))}
		}

		fileResults, err := lint.ProcessFiles(ctx, logger, engine, args, lint.ProcessFile)
		if err != nil {
			logger.Error("Error processing files", zap.Error(err))
			os.Exit(1)
		}
		results = append(results, fileResults...)

		if err := printResults(os.Stdout, results, sources, lintJsonOutput, outPath); err != nil {
			logger.Error("Error printing results", zap.Error(err))
			os.Exit(1)
		}

		if countDiagnostics(results) > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	lintCmd.Flags().BoolVar(&lintJsonOutput, "json", false, "Output diagnostics in JSON format")
	lintCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
	lintCmd.Flags().BoolVar(&lintStdin, "stdin", false, "Lint JavaScript read from standard input")
}

func countDiagnostics(results []lint.FileResult) int {
	n := 0
	for _, r := range results {
		n += len(r.Diagnostics)
	}
	return n
}

// printResults writes results as text to w, or as JSON to w or jsonOutput.
// Source lines for the text output come from sources when present there,
// otherwise from disk.
func printResults(w io.Writer, results []lint.FileResult, sources map[string]*internal.SourceCode, isJson bool, jsonOutput string) error {
	sorted := append([]lint.FileResult(nil), results...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Filename < sorted[j].Filename })

	if isJson {
		d, err := json.Marshal(sorted)
		if err != nil {
			return fmt.Errorf("error marshalling diagnostics to JSON: %w", err)
		}
		if jsonOutput == "" {
			_, err = fmt.Fprintln(w, string(d))
			return err
		}
		return os.WriteFile(jsonOutput, d, 0o644)
	}

	for _, result := range sorted {
		if len(result.Diagnostics) == 0 {
			continue
		}
		source, ok := sources[result.Filename]
		if !ok {
			var err error
			source, err = internal.ReadSourceCode(result.Filename)
			if err != nil {
				logger.Error("Error reading source file", zap.String("file", result.Filename), zap.Error(err))
				continue
			}
		}
		fmt.Fprint(w, formatter.GenerateFormattedDiagnostics(result.Filename, result.Diagnostics, source))
	}
	fmt.Fprint(w, formatter.Summary(countDiagnostics(results), len(results)))
	return nil
}
