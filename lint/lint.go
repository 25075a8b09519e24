package lint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/asplogic/jshint/internal"
	"github.com/asplogic/jshint/internal/config"
	"github.com/asplogic/jshint/internal/host"
	tt "github.com/asplogic/jshint/internal/types"
	"github.com/asplogic/jshint/scanner"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// LintEngine lints one view at a time and exposes the diagnostics of the
// latest run.
type LintEngine interface {
	Lint(ctx context.Context, view host.View, opts internal.LintOptions) error
	Diagnostics() []tt.PresentedDiagnostic
}

// FileResult holds the diagnostics reported for one file.
type FileResult struct {
	Filename    string                   `json:"filename"`
	Diagnostics []tt.PresentedDiagnostic `json:"diagnostics"`
}

// Processor lints a single file.
type Processor func(ctx context.Context, engine LintEngine, path string) (FileResult, error)

// New builds an engine whose settings come from settingsPath (defaults when
// empty) and whose linter script and .jshintrc live in pluginDir. The
// returned store can be reloaded when the settings file changes.
func New(logger *zap.Logger, h host.Host, pluginDir, settingsPath string, opts ...internal.Option) (*internal.Engine, *config.Store, error) {
	store, err := config.NewStore(settingsPath, logger)
	if err != nil {
		return nil, nil, err
	}
	return NewWithStore(logger, h, pluginDir, store, opts...), store, nil
}

// NewWithStore builds an engine reading its settings from store, so that
// several engines can share one settings file.
func NewWithStore(logger *zap.Logger, h host.Host, pluginDir string, store *config.Store, opts ...internal.Option) *internal.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	base := []internal.Option{
		internal.WithLogger(logger),
		internal.WithSettings(store),
		internal.WithPluginDir(pluginDir),
		internal.WithCache(internal.NewCache(filepath.Join(pluginDir, internal.RCFileName))),
	}
	if store.Path() != "" {
		base = append(base, internal.WithSettingsFile(store.Path()))
	}

	return internal.NewEngine(h, append(base, opts...)...)
}

func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	paths []string,
	processor Processor,
) ([]FileResult, error) {
	var results []FileResult
	for _, path := range paths {
		fileResults, err := ProcessPath(ctx, logger, engine, path, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return results, err
		}
		results = append(results, fileResults...)
	}

	return results, nil
}

// ProcessPath lints path, or every JavaScript file below it when it is a
// directory. Files are linted one after another since an engine keeps the
// diagnostics of a single run.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	path string,
	processor Processor,
) ([]FileResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !hasDesiredExtension(path) {
			return nil, nil
		}
		result, err := processor(ctx, engine, path)
		if err != nil {
			return nil, err
		}
		return []FileResult{result}, nil
	}

	files, err := scanner.New(path, desiredExtensions...).Paths()
	if err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", path, err)
	}

	bar := newProgressBar(len(files), path, logger == nil)
	defer bar.Finish()

	results := make([]FileResult, 0, len(files))
	for _, filePath := range files {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		result, err := processor(ctx, engine, filePath)
		bar.Add(1)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing file", zap.String("file", filePath), zap.Error(err))
			}
			// every other file would fail the same way
			if errors.Is(err, tt.ErrExecutableNotFound) || errors.Is(err, context.Canceled) {
				return results, err
			}
			continue
		}
		results = append(results, result)
	}

	return results, nil
}

// ProcessFile lints the file at path.
func ProcessFile(ctx context.Context, engine LintEngine, path string) (FileResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return FileResult{}, fmt.Errorf("error reading %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return FileResult{}, err
	}

	view := host.NewBuffer(string(content), abs, "")
	if err := engine.Lint(ctx, view, internal.LintOptions{ShowRegions: true}); err != nil {
		return FileResult{}, fmt.Errorf("error linting %s: %w", path, err)
	}
	return FileResult{Filename: path, Diagnostics: engine.Diagnostics()}, nil
}

// ProcessSource lints source as an unsaved JavaScript buffer.
func ProcessSource(ctx context.Context, engine LintEngine, source []byte) (FileResult, error) {
	view := host.NewBuffer(string(source), "", "JavaScript")
	if err := engine.Lint(ctx, view, internal.LintOptions{ShowRegions: true}); err != nil {
		return FileResult{}, err
	}
	return FileResult{Diagnostics: engine.Diagnostics()}, nil
}

var desiredExtensions = []string{".js", ".jsm"}

func hasDesiredExtension(path string) bool {
	return scanner.New("", desiredExtensions...).IsTarget(path)
}

func newProgressBar(total int, description string, quiet bool) *progressbar.ProgressBar {
	var w io.Writer = os.Stderr
	if quiet {
		w = io.Discard
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
