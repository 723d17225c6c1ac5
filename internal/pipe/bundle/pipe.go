package bundle

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/macpack/macpack/pkg/bundle"
	"github.com/macpack/macpack/pkg/context"
	"github.com/macpack/macpack/pkg/plist"
)

// Pipe produces the .app bundle by driving the external bundler. It
// materializes the extend-info property list first so the bundler can
// merge the extra Info.plist entries into the bundle.
type Pipe struct{}

func (Pipe) String() string { return "bundling application" }

func (Pipe) Run(ctx *context.Context) error {
	pc := ctx.Packaging

	if err := os.MkdirAll(pc.DistDir, 0755); err != nil {
		return fmt.Errorf("failed to create dist directory: %w", err)
	}

	entriesPath := filepath.Join(ctx.Config.Project.Root, ctx.Config.Project.PlistEntries)
	entries, err := plist.LoadEntries(entriesPath, pc.ExportComplianceCode)
	if err != nil {
		return fmt.Errorf("failed to load plist entries: %w", err)
	}

	extendInfoPath := filepath.Join(pc.DistDir, "extend-info.plist")
	if err := entries.WriteFile(extendInfoPath); err != nil {
		return fmt.Errorf("failed to write extend-info plist: %w", err)
	}
	ctx.Artifacts.ExtendInfoPath = extendInfoPath

	opts := bundle.OptionsFromConfig(pc, extendInfoPath)

	ctx.Logger.Infof("Bundling %s %s (%s)", pc.AppName, pc.Version, pc.Arch)
	output, err := bundle.Run(opts)
	if output != "" {
		ctx.Logger.Debug(output)
	}
	if err != nil {
		return fmt.Errorf("bundler failed: %w", err)
	}

	appPath := bundle.AppPath(opts)
	if _, err := os.Stat(appPath); err != nil {
		return fmt.Errorf("bundler finished but no bundle exists at %s: %w", appPath, err)
	}
	ctx.Artifacts.AppPath = appPath

	ctx.Logger.Infof("Bundle created: %s", appPath)
	return nil
}
