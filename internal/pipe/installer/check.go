package installer

import (
	"github.com/macpack/macpack/pkg/context"
	"github.com/macpack/macpack/pkg/env"
)

type skipError string

func (e skipError) Error() string { return string(e) }

func (e skipError) IsSkip() bool { return true }

// CheckPipe validates the installer configuration
type CheckPipe struct{}

func (CheckPipe) String() string { return "validating installer configuration" }

func (CheckPipe) Run(ctx *context.Context) error {
	pc := ctx.Packaging

	if pc.ShouldNotarize {
		return skipError("outside-store build produces a disk image, not an installer package")
	}
	if pc.InstallerCert == "" {
		return skipError("no installer signing identity configured")
	}
	if err := env.CheckResolved(pc.InstallerCert, "sign.installer_identity"); err != nil {
		return err
	}

	ctx.Logger.Debug("Installer configuration validated successfully")
	return nil
}
