package cli

import (
	"github.com/spf13/cobra"

	"github.com/macpack/macpack/pkg/pipeline"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate configuration file",
	Long: `Validate the .macpack.yaml configuration file.
This command checks for syntax errors, required fields, unresolved
environment references, and the consistency of the resolved packaging
configuration. Nothing is built or modified.`,
	Run: runCheck,
}

// runCheck executes the check command
func runCheck(cmd *cobra.Command, args []string) {
	logger := SetupLogger(GetDebugMode())
	ctx := loadContext(logger)

	if err := pipeline.RunValidation(ctx); err != nil {
		ExitWithErrorf(logger, "Configuration validation failed: %v", err)
	}

	logger.Info("Configuration is valid")
}
