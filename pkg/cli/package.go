package cli

import (
	"github.com/spf13/cobra"

	"github.com/macpack/macpack/pkg/pipeline"
)

// packageCmd represents the package command
var packageCmd = &cobra.Command{
	Use:   "package",
	Short: "Bundle, sign, and package the application",
	Long: `Bundle, sign, and package the application for distribution.
This command validates configuration, rewrites the project metadata from
the resolved values, runs the external bundler, signs the bundle, and
produces the installer package (store build) or notarized disk image
(outside-store build). The rewritten project files are restored before
the command exits, whether packaging succeeded or not.`,
	Run: runPackage,
}

// runPackage executes the package command
func runPackage(cmd *cobra.Command, args []string) {
	logger := SetupLogger(GetDebugMode())
	ctx := loadContext(logger)

	if skip, _ := cmd.Flags().GetBool("skip-notarize"); skip {
		ctx.SkipNotarize = true
	}

	if err := pipeline.Run(ctx); err != nil {
		ExitWithErrorf(logger, "Packaging failed: %v", err)
	}

	logger.Infof("Packaging completed for %s %s", ctx.Packaging.AppName, ctx.Packaging.Version)
}
