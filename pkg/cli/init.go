package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/macpack/macpack/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate example macpack configuration",
	Long: `Generate an example .macpack.yaml configuration file in the current directory.
This file contains all the basic configuration sections with example values.`,
	Run: runInit,
}

// runInit executes the init command
func runInit(cmd *cobra.Command, args []string) {
	logger := SetupLogger(GetDebugMode())
	configPath := ".macpack.yaml"

	if _, err := os.Stat(configPath); err == nil {
		logger.Infof("Configuration file %s already exists", configPath)
		os.Exit(0)
	}

	exampleConfig := config.ExampleConfig()
	if err := config.SaveConfig(configPath, exampleConfig); err != nil {
		ExitWithErrorf(logger, "Failed to save configuration: %v", err)
	}

	logger.Infof("Example configuration created: %s", configPath)
	logger.Info("Edit this file to match your project requirements")
}
