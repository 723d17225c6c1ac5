package project

import (
	"github.com/macpack/macpack/pkg/context"
	"github.com/macpack/macpack/pkg/validate"
)

// CheckPipe validates the resolved project configuration
type CheckPipe struct{}

func (CheckPipe) String() string { return "validating project configuration" }

func (CheckPipe) Run(ctx *context.Context) error {
	if err := validate.RequiredString(ctx.Config.Project.Root, "project.root"); err != nil {
		return err
	}
	if err := validate.RequiredString(ctx.Config.Project.Metadata, "project.metadata"); err != nil {
		return err
	}
	if err := validate.RequiredString(ctx.Config.Project.AppMetadata, "project.app_metadata"); err != nil {
		return err
	}

	pc := ctx.Packaging
	if err := validate.RequiredString(pc.AppName, "package.json name"); err != nil {
		return err
	}
	if err := validate.RequiredString(pc.Version, "package.json version"); err != nil {
		return err
	}

	ctx.Logger.Debug("Project configuration validated successfully")
	return nil
}
