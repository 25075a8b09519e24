package cmd

import (
	"os"
	"path/filepath"
	"time"

	"github.com/asplogic/jshint/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultTimeout = 5 * time.Minute

var (
	cfgFile   string
	pluginDir string
	timeout   time.Duration
	verbose   bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:              "jshint [paths...]",
	Short:            "jshint - lint JavaScript files through JSHint running on Node.js",
	TraverseChildren: true, // Prioritize subcommands
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogger()
	},
	Run: func(cmd *cobra.Command, args []string) {
		// no subcommand
		if len(args) == 0 {
			_ = cmd.Help()
			return
		}
		// Format: jshint [path1 path2 ...] => behaves like the lint subcommand
		lintCmd.Run(lintCmd, args)
	},
}

func Execute() error {
	defer func() { _ = logger.Sync() }()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Settings file (default: jshint.yaml in the plugin directory when present)")
	rootCmd.PersistentFlags().StringVar(&pluginDir, "plugin-dir", ".", "Directory holding the linter script and .jshintrc")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", defaultTimeout, "Overall timeout for the command")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(runCmd)
}

func initLogger() error {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.OutputPaths = []string{"stderr"}

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	logger = l
	return nil
}

// settingsPath returns the settings file to load, "" for defaults.
func settingsPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	candidate := filepath.Join(pluginDir, config.DefaultFileName)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return ""
}
