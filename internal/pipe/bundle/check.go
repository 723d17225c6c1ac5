package bundle

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/macpack/macpack/pkg/context"
	"github.com/macpack/macpack/pkg/validate"
)

// CheckPipe validates the bundler inputs
type CheckPipe struct{}

func (CheckPipe) String() string { return "validating bundler configuration" }

func (CheckPipe) Run(ctx *context.Context) error {
	pc := ctx.Packaging

	if err := validate.RequiredString(pc.Arch, "package.arch"); err != nil {
		return err
	}
	if err := validate.RequiredString(pc.DistDir, "package.dist_dir"); err != nil {
		return err
	}

	entriesPath := filepath.Join(ctx.Config.Project.Root, ctx.Config.Project.PlistEntries)
	if _, err := os.Stat(entriesPath); err != nil {
		return fmt.Errorf("plist entries file not found at %s - create it or set project.plist_entries", entriesPath)
	}

	ctx.Logger.Debug("Bundler configuration validated successfully")
	return nil
}
