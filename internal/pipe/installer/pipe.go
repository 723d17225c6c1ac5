package installer

import (
	"fmt"
	"path/filepath"

	"github.com/macpack/macpack/pkg/context"
	"github.com/macpack/macpack/pkg/installer"
)

// Pipe builds the signed installer package for store builds. It does
// nothing when the manual signer already produced one.
type Pipe struct{}

func (Pipe) String() string { return "building installer package" }

func (Pipe) Run(ctx *context.Context) error {
	pc := ctx.Packaging

	if pc.ShouldNotarize {
		return skipError("outside-store build produces a disk image, not an installer package")
	}
	if pc.InstallerCert == "" {
		return skipError("no installer signing identity configured")
	}
	if ctx.Artifacts.PkgPath != "" {
		return skipError("installer package already produced by the manual signer")
	}
	if ctx.Artifacts.AppPath == "" {
		return fmt.Errorf("no bundle to package: the bundling step did not produce one")
	}

	pkgPath := filepath.Join(pc.DistDir, fmt.Sprintf("%s-%s.pkg", pc.AppName, pc.Version))
	ctx.Logger.Infof("Building installer package: %s", pkgPath)

	output, err := installer.Build(ctx.Artifacts.AppPath, installer.DefaultInstallLocation, pc.InstallerCert, pkgPath)
	if output != "" {
		ctx.Logger.Debug(output)
	}
	if err != nil {
		return err
	}

	ctx.Artifacts.PkgPath = pkgPath
	ctx.Artifacts.Packages = append(ctx.Artifacts.Packages, pkgPath)
	return nil
}
