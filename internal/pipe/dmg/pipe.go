package dmg

import (
	"fmt"
	"path/filepath"

	"github.com/macpack/macpack/pkg/archive"
	"github.com/macpack/macpack/pkg/context"
)

type skipError string

func (e skipError) Error() string { return string(e) }

func (e skipError) IsSkip() bool { return true }

// Pipe packages the notarized bundle into a compressed disk image for
// distribution outside the store. It runs after notarization so the
// image carries the stapled ticket.
type Pipe struct{}

func (Pipe) String() string { return "building disk image" }

func (Pipe) Run(ctx *context.Context) error {
	pc := ctx.Packaging

	if !pc.ShouldNotarize {
		return skipError("store build produces an installer package, not a disk image")
	}
	if ctx.Artifacts.AppPath == "" {
		return fmt.Errorf("no bundle to package: the bundling step did not produce one")
	}

	dmgPath := filepath.Join(pc.DistDir, fmt.Sprintf("%s-%s.dmg", pc.AppName, pc.Version))
	volumeName := fmt.Sprintf("%s %s", pc.AppName, pc.Version)

	ctx.Logger.Infof("Building disk image: %s", dmgPath)
	if err := archive.CreateDMG(ctx.Artifacts.AppPath, dmgPath, volumeName); err != nil {
		return err
	}

	ctx.Artifacts.DMGPath = dmgPath
	ctx.Artifacts.Packages = append(ctx.Artifacts.Packages, dmgPath)
	return nil
}
