package internal

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/asplogic/jshint/internal/config"
	"github.com/asplogic/jshint/internal/debounce"
	"github.com/asplogic/jshint/internal/host"
	"github.com/asplogic/jshint/internal/metrics"
	"github.com/asplogic/jshint/internal/parser"
	"github.com/asplogic/jshint/internal/runner"
	"github.com/asplogic/jshint/internal/session"
	tt "github.com/asplogic/jshint/internal/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

const (
	msgNodeNotFound = "Node.js was not found in the default path. Please specify the location."
	msgNodeRequired = "You won't be able to use this plugin without specifying the path to Node.js."

	// RCFileName is the linter's own configuration file in the plugin directory.
	RCFileName = ".jshintrc"
)

var (
	jsExtension = regexp.MustCompile(`\.jsm?$`)
	// diagnostics whose message starts with a quoted symbol highlight the
	// word at the reported position instead of the whole line.
	symbolPattern = regexp.MustCompile(`^'[^']+'`)
)

// ProcessRunner executes the external linter once.
type ProcessRunner interface {
	Run(ctx context.Context, cmd runner.Command, req tt.LintRequest) ([]byte, error)
}

// SettingsProvider returns the settings in effect for the next run.
type SettingsProvider interface {
	Settings() tt.Settings
}

// StaticSettings is a SettingsProvider that never changes.
type StaticSettings tt.Settings

func (s StaticSettings) Settings() tt.Settings { return tt.Settings(s) }

// LintOptions selects how the results of a run are presented.
type LintOptions struct {
	ShowRegions bool
	ShowPanel   bool
}

// Engine orchestrates lint runs for views: it snapshots the buffer, runs
// the linter, parses its output, maps diagnostics to regions and presents
// them. Results of superseded runs are dropped.
type Engine struct {
	logger       *zap.Logger
	host         host.Host
	runner       ProcessRunner
	settings     SettingsProvider
	session      *session.Session
	scheduler    *debounce.Scheduler
	sem          *semaphore.Weighted
	cache        *Cache
	metrics      *metrics.Metrics
	lookPath     func(string) (string, error)
	pluginDir    string
	settingsFile string
	onApplied    func(host.View, []tt.PresentedDiagnostic)

	baseCtx  context.Context
	inflight sync.WaitGroup
}

type Option func(*Engine)

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

func WithRunner(r ProcessRunner) Option {
	return func(e *Engine) { e.runner = r }
}

func WithSettings(p SettingsProvider) Option {
	return func(e *Engine) { e.settings = p }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

func WithCache(c *Cache) Option {
	return func(e *Engine) { e.cache = c }
}

// WithPluginDir sets the directory that relative linter scripts, the
// .jshintrc and the keymap files are resolved against.
func WithPluginDir(dir string) Option {
	return func(e *Engine) { e.pluginDir = dir }
}

// WithSettingsFile sets the file opened when the user is asked to
// configure the node path.
func WithSettingsFile(path string) Option {
	return func(e *Engine) { e.settingsFile = path }
}

func WithLookPath(fn func(string) (string, error)) Option {
	return func(e *Engine) { e.lookPath = fn }
}

// WithContext sets the context of runs started asynchronously.
func WithContext(ctx context.Context) Option {
	return func(e *Engine) { e.baseCtx = ctx }
}

// WithOnApplied registers fn to be called on the host's callback thread
// after the diagnostics of a current run were recorded.
func WithOnApplied(fn func(host.View, []tt.PresentedDiagnostic)) Option {
	return func(e *Engine) { e.onApplied = fn }
}

func NewEngine(h host.Host, opts ...Option) *Engine {
	e := &Engine{
		host:      h,
		session:   session.New(),
		scheduler: debounce.New(),
		sem:       semaphore.NewWeighted(1),
		baseCtx:   context.Background(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	if e.settings == nil {
		e.settings = StaticSettings(tt.DefaultSettings())
	}
	if e.runner == nil {
		e.runner = runner.New(runner.WithLogger(e.logger))
	}
	if e.settingsFile == "" {
		e.settingsFile = filepath.Join(e.pluginDir, config.DefaultFileName)
	}

	e.scheduler.OnSupersede = e.metrics.IncSuperseded
	e.session.Bind(e.scheduler)
	return e
}

// IsSupported reports whether view holds JavaScript: its file name ends in
// .js or .jsm, or its syntax mentions JavaScript. JSON syntaxes never are.
func IsSupported(view host.View) bool {
	syntax := strings.ToLower(view.Syntax())
	if strings.Contains(syntax, "json") {
		return false
	}
	return jsExtension.MatchString(view.FileName()) || strings.Contains(syntax, "javascript")
}

// Lint runs the linter over a snapshot of view and presents the result.
// Previous annotations are invalidated before anything else happens.
// Failures are reported through the host and returned.
func (e *Engine) Lint(ctx context.Context, view host.View, opts LintOptions) error {
	start := time.Now()
	seq := e.session.Reset()
	logger := e.logger.With(zap.String("run", uuid.NewString()), zap.Uint64("seq", seq))

	if !IsSupported(view) {
		logger.Debug("Skipping unsupported view",
			zap.String("file", view.FileName()), zap.String("syntax", view.Syntax()))
		e.metrics.ObserveRun(metrics.OutcomeSkipped, 0)
		return nil
	}

	req := tt.LintRequest{Text: view.Text(), PathHint: view.FileName()}
	settings := e.settings.Settings()

	if err := e.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	if !e.session.IsCurrent(seq) {
		e.sem.Release(1)
		logger.Debug("Run superseded before start")
		e.metrics.ObserveRun(metrics.OutcomeStale, 0)
		return nil
	}
	output, err := e.execute(ctx, logger, settings, req)
	e.sem.Release(1)

	if err != nil {
		e.metrics.ObserveRun(outcomeOf(err), time.Since(start))
		if !e.session.IsCurrent(seq) {
			logger.Debug("Dropping failure of superseded run", zap.Error(err))
			return nil
		}
		e.host.Dispatch(func() { e.report(view, err) })
		return err
	}

	if preamble := strings.TrimSpace(string(output.Preamble)); preamble != "" {
		logger.Info("Linter log", zap.String("file", req.PathHint), zap.String("output", preamble))
	}
	if output.Skipped > 0 {
		logger.Warn("Skipped malformed result lines", zap.Int("count", output.Skipped))
	}

	result := make(chan bool, 1)
	e.host.Dispatch(func() {
		result <- e.apply(view, seq, output.Diagnostics, opts, settings)
	})
	var applied bool
	select {
	case applied = <-result:
	case <-ctx.Done():
		return ctx.Err()
	}
	if !applied {
		logger.Debug("Dropping results of superseded run")
		e.metrics.ObserveRun(metrics.OutcomeStale, time.Since(start))
		return nil
	}

	logger.Debug("Lint finished",
		zap.String("file", req.PathHint),
		zap.Int("diagnostics", len(output.Diagnostics)),
		zap.Duration("elapsed", time.Since(start)))
	e.metrics.ObserveRun(metrics.OutcomeSuccess, time.Since(start))
	e.metrics.SetDiagnostics(len(output.Diagnostics), output.Skipped)
	return nil
}

// LintAsync starts Lint on a separate goroutine. Host interaction happens
// through Host.Dispatch.
func (e *Engine) LintAsync(view host.View, opts LintOptions) {
	e.inflight.Add(1)
	go func() {
		defer e.inflight.Done()
		if err := e.Lint(e.baseCtx, view, opts); err != nil {
			e.logger.Debug("Asynchronous lint failed", zap.String("file", view.FileName()), zap.Error(err))
		}
	}()
}

// ScheduleLint debounces an edit-triggered run of view by delay. Only the
// last scheduled run fires, with regions shown and no panel.
func (e *Engine) ScheduleLint(view host.View, delay time.Duration) {
	e.scheduler.Schedule(delay, func() {
		e.LintAsync(view, LintOptions{ShowRegions: true})
	})
}

// Wait blocks until asynchronous runs started so far have finished.
func (e *Engine) Wait() {
	e.inflight.Wait()
}

// ClearAnnotations discards the stored diagnostics and erases both region
// sets from view.
func (e *Engine) ClearAnnotations(view host.View) {
	e.session.Reset()
	view.EraseRegions(host.ErrorsKey)
	view.EraseRegions(host.SelectedKey)
}

// Diagnostics returns a copy of the diagnostics of the current run.
func (e *Engine) Diagnostics() []tt.PresentedDiagnostic {
	return e.session.Current()
}

func (e *Engine) Session() *session.Session {
	return e.session
}

func (e *Engine) Settings() tt.Settings {
	return e.settings.Settings()
}

func (e *Engine) Host() host.Host {
	return e.host
}

func (e *Engine) SettingsFile() string {
	return e.settingsFile
}

func (e *Engine) RCFile() string {
	return filepath.Join(e.pluginDir, RCFileName)
}

// KeymapFile returns the default key bindings file for platform.
func (e *Engine) KeymapFile(platform string) string {
	name := map[string]string{"windows": "Windows", "linux": "Linux", "osx": "OSX"}[platform]
	if name == "" {
		name = platform
	}
	return filepath.Join(e.pluginDir, fmt.Sprintf("Default (%s).keymap", name))
}

func (e *Engine) execute(ctx context.Context, logger *zap.Logger, settings tt.Settings, req tt.LintRequest) (*tt.ParsedOutput, error) {
	useCache := e.cache != nil && settings.CacheResults
	if useCache {
		if output, ok := e.cache.Get(req); ok {
			logger.Debug("Serving cached result", zap.String("file", req.PathHint))
			e.metrics.IncCacheHit()
			return output, nil
		}
	}

	cmd := runner.Command{
		Executable: runner.ResolveNode(settings, e.host.Platform(), e.lookPath),
		Script:     runner.ResolveScript(settings.LinterScript, e.pluginDir),
		Timeout:    settings.RunTimeout(),
	}

	raw, runErr := e.runner.Run(ctx, cmd, req)
	if runErr != nil && !errors.Is(runErr, tt.ErrNonZeroExit) {
		return nil, runErr
	}

	output, err := parser.Parse(raw)
	if err != nil {
		logger.Error("Unexpected linter output", zap.ByteString("output", raw))
		if runErr != nil {
			return nil, runErr
		}
		return nil, fmt.Errorf("linter %s: %w", cmd.Executable, err)
	}
	if runErr != nil {
		logger.Warn("Linter exited with an error, using its output", zap.Error(runErr))
	}

	if useCache {
		e.cache.Set(req, output)
	}
	return output, nil
}

// apply records and presents diagnostics. It must run on the host's
// callback thread and reports false if seq is no longer current.
func (e *Engine) apply(view host.View, seq uint64, diagnostics []tt.Diagnostic, opts LintOptions, settings tt.Settings) bool {
	if !e.session.IsCurrent(seq) {
		return false
	}

	presented := Present(view, diagnostics)
	if !e.session.Record(seq, presented) {
		return false
	}

	view.EraseRegions(host.ErrorsKey)
	if opts.ShowRegions && len(presented) > 0 {
		regions := make([]tt.Region, len(presented))
		for i, d := range presented {
			regions[i] = d.Region
		}
		view.AddRegions(host.ErrorsKey, regions, host.ErrorStyle)
	}

	if opts.ShowPanel && len(presented) > 0 {
		if window := view.Window(); window != nil {
			items := make([]string, len(presented))
			for i, d := range presented {
				items[i] = d.PanelItem()
			}
			highlight := settings.HighlightSelectedRegions
			window.ShowQuickPanel(items, func(index int) {
				e.onChosen(view, presented, index, highlight)
			})
		}
	}

	if e.onApplied != nil {
		e.onApplied(view, presented)
	}
	return true
}

func (e *Engine) onChosen(view host.View, presented []tt.PresentedDiagnostic, index int, highlight bool) {
	if index < 0 || index >= len(presented) {
		return
	}

	region := presented[index].Region
	view.SetSelection(tt.Point(region.Begin))
	view.Show(region.Begin)

	if !highlight {
		return
	}
	view.EraseRegions(host.SelectedKey)
	view.AddRegions(host.SelectedKey, []tt.Region{region}, host.SelectedStyle)
}

func (e *Engine) report(view host.View, err error) {
	switch {
	case errors.Is(err, tt.ErrExecutableNotFound):
		if e.host.OkCancelDialog(msgNodeNotFound) {
			if window := view.Window(); window != nil {
				window.OpenFile(e.settingsFile)
			}
			return
		}
		e.host.ErrorMessage(msgNodeRequired)
	case errors.Is(err, context.Canceled):
	default:
		e.host.ErrorMessage(fmt.Sprintf("JSHint failed: %v", err))
	}
}

// Present maps diagnostics to regions of view. Positions are 1-based;
// out-of-range positions are clamped by the view.
func Present(view host.View, diagnostics []tt.Diagnostic) []tt.PresentedDiagnostic {
	presented := make([]tt.PresentedDiagnostic, 0, len(diagnostics))
	for _, d := range diagnostics {
		point := view.TextPoint(d.Line-1, d.Column-1)

		region := view.Line(point)
		if symbolPattern.MatchString(d.Message) {
			region = view.Word(point)
		}
		presented = append(presented, tt.PresentedDiagnostic{Diagnostic: d, Region: region})
	}
	return presented
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, tt.ErrExecutableNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, tt.ErrInvalidOutputFormat):
		return metrics.OutcomeInvalidOutput
	default:
		return metrics.OutcomeFailed
	}
}
