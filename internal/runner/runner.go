package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	tt "github.com/asplogic/jshint/internal/types"
	"go.uber.org/zap"
)

// PathPlaceholder is passed to the linter when the buffer has no file.
const PathPlaceholder = "?"

const scratchPattern = ".__temp__*.js"

// waitDelay bounds how long output pipes held by orphaned children may
// delay returning after the linter was killed.
const waitDelay = 2 * time.Second

// Command describes how the linter is invoked.
type Command struct {
	// Executable is a binary name looked up on PATH or an absolute path.
	Executable string
	// Script is inserted before the scratch file path when set.
	Script  string
	Timeout time.Duration
}

// Runner invokes the external linter on a snapshot of buffer text.
type Runner struct {
	logger     *zap.Logger
	scratchDir string
	lookPath   func(string) (string, error)
}

// Option configures the Runner.
type Option func(*Runner)

// WithScratchDir sets the directory that receives scratch files.
func WithScratchDir(dir string) Option {
	return func(r *Runner) {
		r.scratchDir = dir
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

func New(opts ...Option) *Runner {
	r := &Runner{
		logger:   zap.NewNop(),
		lookPath: exec.LookPath,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run writes the request text to a scratch file, runs the linter on it and
// returns the combined stdout and stderr. The scratch file is removed on
// every path. On ErrNonZeroExit the captured output is returned as well.
func (r *Runner) Run(ctx context.Context, cmd Command, req tt.LintRequest) ([]byte, error) {
	scratch, err := r.writeScratch(req.Text)
	if err != nil {
		return nil, err
	}
	defer r.cleanupScratch(scratch)

	hint := req.PathHint
	if hint == "" {
		hint = PathPlaceholder
	}

	args := make([]string, 0, 3)
	if cmd.Script != "" {
		args = append(args, cmd.Script)
	}
	args = append(args, scratch, hint)
	argv := append([]string{cmd.Executable}, args...)

	exe, err := r.lookPath(cmd.Executable)
	if err != nil {
		return nil, tt.NewRunError(argv, nil, fmt.Errorf("%w: %v", tt.ErrExecutableNotFound, err))
	}

	if cmd.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cmd.Timeout)
		defer cancel()
	}

	r.logger.Debug("running linter", zap.Strings("argv", argv), zap.String("scratch", scratch))

	c := exec.CommandContext(ctx, exe, args...)
	c.WaitDelay = waitDelay
	output, err := c.CombinedOutput()
	if err == nil {
		return output, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return output, tt.NewRunError(argv, output, ctxErr)
	}

	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		return output, tt.NewRunError(argv, output, fmt.Errorf("%w: %v", tt.ErrNonZeroExit, err))
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return nil, tt.NewRunError(argv, output, fmt.Errorf("%w: %v", tt.ErrExecutableNotFound, err))
	default:
		return output, tt.NewRunError(argv, output, err)
	}
}

func (r *Runner) writeScratch(text string) (string, error) {
	f, err := os.CreateTemp(r.scratchDir, scratchPattern)
	if err != nil {
		return "", fmt.Errorf("error creating scratch file: %w", err)
	}

	if _, err := f.WriteString(text); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("error writing scratch file: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("error closing scratch file: %w", err)
	}

	return f.Name(), nil
}

func (r *Runner) cleanupScratch(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		r.logger.Warn("failed to remove scratch file", zap.String("path", path), zap.Error(err))
	}
}

// Platform returns the settings key for the running OS.
func Platform() string {
	switch runtime.GOOS {
	case "windows":
		return "windows"
	case "darwin":
		return "osx"
	default:
		return "linux"
	}
}

// ResolveNode picks the node executable: nodejs or node on PATH first,
// then the per-platform node_path setting.
func ResolveNode(settings tt.Settings, platform string, lookPath func(string) (string, error)) string {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	for _, name := range []string{"nodejs", "node"} {
		if _, err := lookPath(name); err == nil {
			return name
		}
	}
	return settings.NodePath[platform]
}

// ResolveScript makes a relative linter script path absolute against base.
func ResolveScript(script, base string) string {
	if script == "" || filepath.IsAbs(script) || base == "" {
		return script
	}
	return filepath.Join(base, script)
}
