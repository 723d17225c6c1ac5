package cli

import (
	"fmt"
	"os"

	"github.com/macpack/macpack/pkg/version"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "macpack",
	Short:   "macOS app packaging automation",
	Version: version.VersionInfo(),
	Long: `MacPack automates the bundle, sign, and package process for macOS
applications. It drives the external bundler, signs the result for store
or outside-store distribution, and produces the installer package or
notarized disk image, restoring the project files it touched afterwards.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := cmd.Help(); err != nil {
			fmt.Fprintf(os.Stderr, "Error displaying help: %v\n", err)
			os.Exit(1)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	registerCommands()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	return rootCmd.Execute()
}

// registerCommands initializes flags and registers all subcommands
func registerCommands() {
	rootCmd.PersistentFlags().String("config", ".macpack.yaml", "config file path")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug mode")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(packageCmd)
	rootCmd.AddCommand(publishCmd)

	packageCmd.Flags().Bool("skip-notarize", false, "skip notarization (for quick local pipeline validation)")
}

// GetConfigPath returns the config file path from flags
func GetConfigPath() string {
	configPath, _ := rootCmd.PersistentFlags().GetString("config")
	return configPath
}

// GetDebugMode returns debug mode flag value
func GetDebugMode() bool {
	debug, _ := rootCmd.PersistentFlags().GetBool("debug")
	return debug
}
