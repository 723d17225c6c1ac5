package cli

import (
	"github.com/spf13/cobra"

	"github.com/macpack/macpack/pkg/pipeline"
)

// publishCmd represents the publish command
var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish packaged artifacts to a GitHub release",
	Long: `Publish the artifacts produced by the package command.
This command creates a GitHub release tagged with the resolved version
(or reuses an existing one) and uploads the installer packages and disk
images found for this version.`,
	Run: runPublish,
}

// runPublish executes the publish command
func runPublish(cmd *cobra.Command, args []string) {
	logger := SetupLogger(GetDebugMode())
	ctx := loadContext(logger)

	if err := pipeline.RunPublish(ctx); err != nil {
		ExitWithErrorf(logger, "Publish failed: %v", err)
	}

	logger.Info("Publish completed")
}
