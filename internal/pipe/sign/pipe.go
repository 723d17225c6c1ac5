package sign

import (
	"fmt"
	"path/filepath"

	"github.com/macpack/macpack/pkg/context"
	"github.com/macpack/macpack/pkg/sign"
)

// Pipe signs the produced bundle. With automatic signing the bundler has
// already done the work, so the pipe validates the identity and verifies
// the resulting signature. With manual signing it signs every component
// of the bundle individually and, when an installer identity is
// configured, builds the signed installer package as well.
type Pipe struct{}

func (Pipe) String() string { return "signing application" }

func (Pipe) Run(ctx *context.Context) error {
	pc := ctx.Packaging

	if pc.AppCert == "" {
		return skipError("no application signing identity configured")
	}
	if pc.ManualSign && pc.ShouldNotarize {
		return fmt.Errorf("manual signing cannot be combined with notarization: the notary service requires the bundler's automatic signing pass")
	}
	if ctx.Artifacts.AppPath == "" {
		return fmt.Errorf("no bundle to sign: the bundling step did not produce one")
	}

	if err := sign.CheckIdentityInKeychain(pc.AppCert); err != nil {
		return err
	}

	if pc.ManualSign {
		return runManual(ctx)
	}

	ctx.Logger.Infof("Verifying signature of %s", ctx.Artifacts.AppPath)
	output, err := sign.RunVerify(ctx.Artifacts.AppPath)
	if output != "" {
		ctx.Logger.Debug(output)
	}
	if err != nil {
		return fmt.Errorf("signature verification failed: %w", err)
	}
	return nil
}

func runManual(ctx *context.Context) error {
	pc := ctx.Packaging

	signer := sign.NewManualSigner(ctx.Logger)
	signer.AppPath = ctx.Artifacts.AppPath
	signer.PkgPath = filepath.Join(pc.DistDir, fmt.Sprintf("%s-%s.pkg", pc.AppName, pc.Version))
	signer.Identity = pc.AppCert
	signer.InstallerIdentity = pc.InstallerCert
	signer.Entitlements = pc.EntitlementsPath
	signer.ChildEntitlements = pc.ChildEntitlementsPath

	pkgPath, err := signer.Run()
	if err != nil {
		return err
	}
	if pkgPath != "" {
		ctx.Artifacts.PkgPath = pkgPath
		ctx.Artifacts.Packages = append(ctx.Artifacts.Packages, pkgPath)
		ctx.Logger.Infof("Installer package created: %s", pkgPath)
	}
	return nil
}
