package sign

import (
	"fmt"

	"github.com/macpack/macpack/pkg/context"
	"github.com/macpack/macpack/pkg/env"
)

type skipError string

func (e skipError) Error() string { return string(e) }

func (e skipError) IsSkip() bool { return true }

// CheckPipe validates the signing configuration
type CheckPipe struct{}

func (CheckPipe) String() string { return "validating signing configuration" }

func (CheckPipe) Run(ctx *context.Context) error {
	pc := ctx.Packaging

	if pc.ManualSign && pc.ShouldNotarize {
		return fmt.Errorf("manual signing cannot be combined with notarization: the notary service requires the bundler's automatic signing pass")
	}

	if pc.AppCert == "" {
		return skipError("code signing not configured")
	}
	if err := env.CheckResolved(pc.AppCert, "sign.app_identity"); err != nil {
		return err
	}
	if pc.InstallerCert != "" {
		if err := env.CheckResolved(pc.InstallerCert, "sign.installer_identity"); err != nil {
			return err
		}
	}

	ctx.Logger.Debug("Signing configuration validated successfully")
	return nil
}
