package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/asplogic/jshint/formatter"
	"github.com/asplogic/jshint/internal"
	"github.com/asplogic/jshint/internal/config"
	"github.com/asplogic/jshint/internal/host"
	"github.com/asplogic/jshint/internal/metrics"
	"github.com/asplogic/jshint/internal/runner"
	tt "github.com/asplogic/jshint/internal/types"
	"github.com/asplogic/jshint/lint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var metricsAddr string

var watchCmd = &cobra.Command{
	Use:   "watch [files...]",
	Short: "Lint files whenever they change on disk",
	Long: `Watches the given files and lints each one after it was written, waiting
lint_on_edit_timeout seconds for further writes first. Changes to the
settings file are picked up without a restart.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runWatch(ctx, os.Stdout, args)
	},
}

func init() {
	watchCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve prometheus metrics on this address (e.g. :9090)")
}

func runWatch(ctx context.Context, out io.Writer, files []string) error {
	term := host.NewTerminal(out, runner.Platform())

	var m *metrics.Metrics
	if metricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		m = metrics.New(reg)

		srv := serveMetrics(metricsAddr, reg)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	store, err := config.NewStore(settingsPath(), logger)
	if err != nil {
		return err
	}

	watcher, err := internal.NewWatcher(store, logger)
	if err != nil {
		return err
	}

	printer := &resultPrinter{out: out}
	var engines []*internal.Engine
	for _, file := range files {
		engine := lint.NewWithStore(logger, term, pluginDir, store,
			internal.WithMetrics(m),
			internal.WithContext(ctx),
			internal.WithOnApplied(printer.print),
		)
		engines = append(engines, engine)

		buf, err := watcher.Open(file, engine, term)
		if err != nil {
			_ = watcher.StopWatching()
			return err
		}
		if !store.Settings().LintOnLoad {
			engine.LintAsync(buf, internal.LintOptions{ShowRegions: true})
		}
	}

	store.OnReload(func(tt.Settings) {
		logger.Info("Relinting watched files with the new settings")
		watcher.Relint()
	})

	if err := watcher.StartWatching(ctx); err != nil {
		_ = watcher.StopWatching()
		for _, engine := range engines {
			engine.Wait()
		}
		return err
	}
	logger.Info("Watching files", zap.Strings("files", files))

	<-ctx.Done()
	err = watcher.StopWatching()
	for _, engine := range engines {
		engine.Wait()
	}
	return err
}

func serveMetrics(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", zap.String("addr", addr), zap.Error(err))
		}
	}()
	return srv
}

// resultPrinter writes the diagnostics of each applied run.
type resultPrinter struct {
	mu  sync.Mutex
	out io.Writer
}

func (p *resultPrinter) print(view host.View, diagnostics []tt.PresentedDiagnostic) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, "%s %s\n", time.Now().Format("15:04:05"), view.FileName())
	source := internal.NewSourceCode(view.Text())
	fmt.Fprint(p.out, formatter.GenerateFormattedDiagnostics(view.FileName(), diagnostics, source))
	fmt.Fprint(p.out, formatter.Summary(len(diagnostics), 1))
}
