package notarize

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/macpack/macpack/pkg/archive"
	"github.com/macpack/macpack/pkg/context"
	"github.com/macpack/macpack/pkg/notarize"
)

// Pipe submits the signed bundle to the notary service, staples the
// resulting ticket, and asserts Gatekeeper acceptance.
type Pipe struct{}

func (Pipe) String() string { return "notarizing application" }

func (Pipe) Run(ctx *context.Context) error {
	pc := ctx.Packaging

	if !pc.ShouldNotarize {
		return skipError("notarization not requested")
	}
	if ctx.SkipNotarize {
		return skipError("notarization skipped by flag")
	}
	if ctx.Artifacts.AppPath == "" {
		return fmt.Errorf("no bundle to notarize: the bundling step did not produce one")
	}
	if pc.Notarize == nil {
		return fmt.Errorf("notarization requested but no credentials resolved")
	}

	zipPath := filepath.Join(pc.DistDir, fmt.Sprintf("%s-%s-notarize.zip", pc.AppName, pc.Version))
	ctx.Logger.Infof("Archiving %s for submission", ctx.Artifacts.AppPath)
	if err := archive.CreateZip(ctx.Artifacts.AppPath, zipPath); err != nil {
		return fmt.Errorf("failed to archive bundle for notarization: %w", err)
	}
	defer os.Remove(zipPath)

	ctx.Logger.Info("Submitting to the notary service (this can take a while)")
	output, err := notarize.RunSubmit(zipPath, pc.Notarize.AppleID, pc.Notarize.TeamID, pc.Notarize.Password)
	if output != "" {
		ctx.Logger.Debug(output)
	}
	if err != nil {
		return err
	}
	if id := notarize.ParseSubmissionID(output); id != "" {
		ctx.Logger.Infof("Notarization accepted (submission %s)", id)
	}

	ctx.Logger.Info("Stapling notarization ticket")
	output, err = notarize.RunStaple(ctx.Artifacts.AppPath)
	if output != "" {
		ctx.Logger.Debug(output)
	}
	if err != nil {
		return err
	}

	output, err = notarize.RunAssess(ctx.Artifacts.AppPath)
	if output != "" {
		ctx.Logger.Debug(output)
	}
	if err != nil {
		return fmt.Errorf("notarized bundle failed Gatekeeper assessment: %w", err)
	}

	return nil
}
