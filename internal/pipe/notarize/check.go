package notarize

import (
	"fmt"

	"github.com/macpack/macpack/pkg/context"
	"github.com/macpack/macpack/pkg/env"
	"github.com/macpack/macpack/pkg/validate"
)

type skipError string

func (e skipError) Error() string { return string(e) }

func (e skipError) IsSkip() bool { return true }

// CheckPipe validates the notary service credentials
type CheckPipe struct{}

func (CheckPipe) String() string { return "validating notarization credentials" }

func (CheckPipe) Run(ctx *context.Context) error {
	pc := ctx.Packaging

	if !pc.ShouldNotarize {
		return skipError("notarization not requested")
	}
	if ctx.SkipNotarize {
		return skipError("notarization skipped by flag")
	}
	if pc.Notarize == nil {
		return fmt.Errorf("notarization requested but no credentials resolved")
	}

	fields := []struct {
		value string
		name  string
	}{
		{pc.Notarize.AppleID, "notarize.apple_id"},
		{pc.Notarize.TeamID, "notarize.team_id"},
		{pc.Notarize.Password, "notarize.password"},
	}
	for _, f := range fields {
		if err := validate.RequiredString(f.value, f.name); err != nil {
			return err
		}
		if err := env.CheckResolved(f.value, f.name); err != nil {
			return err
		}
	}

	ctx.Logger.Debug("Notarization credentials validated successfully")
	return nil
}
