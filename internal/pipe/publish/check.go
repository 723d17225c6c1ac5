package publish

import (
	"fmt"

	"github.com/macpack/macpack/pkg/context"
	gh "github.com/macpack/macpack/pkg/github"
	"github.com/macpack/macpack/pkg/validate"
)

// CheckPipe validates the publish configuration
type CheckPipe struct{}

func (CheckPipe) String() string { return "validating publish configuration" }

func (CheckPipe) Run(ctx *context.Context) error {
	cfg := ctx.Config.Publish.GitHub

	if err := validate.RequiredString(cfg.Owner, "publish.github.owner"); err != nil {
		return err
	}
	if err := validate.RequiredString(cfg.Repo, "publish.github.repo"); err != nil {
		return err
	}
	if gh.GetGitHubToken() == "" {
		return fmt.Errorf("GITHUB_TOKEN environment variable is not set")
	}

	ctx.Logger.Debug("Publish configuration validated successfully")
	return nil
}
