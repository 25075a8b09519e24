package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/asplogic/jshint/internal/config"
	tt "github.com/asplogic/jshint/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// initCmd: jshint init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a settings file with the default options",
	Run: func(cmd *cobra.Command, args []string) {
		path, err := initConfigurationFile(cfgFile, pluginDir)
		if err != nil {
			logger.Error("Error initializing settings file", zap.Error(err))
			return
		}
		fmt.Printf("Settings file created: %s\n", path)
	},
}

func initConfigurationFile(configurationPath, dir string) (string, error) {
	if configurationPath == "" {
		configurationPath = filepath.Join(dir, config.DefaultFileName)
	}
	return configurationPath, config.Write(configurationPath, tt.DefaultSettings())
}
