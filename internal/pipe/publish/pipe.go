package publish

import (
	"fmt"
	"path/filepath"

	"github.com/google/go-github/github"

	"github.com/macpack/macpack/pkg/context"
	gh "github.com/macpack/macpack/pkg/github"
)

// Pipe creates a GitHub release for the resolved version and uploads the
// packaging artifacts to it. An existing release for the tag is reused.
type Pipe struct {
	// Client overrides the GitHub client, used by tests. When nil a real
	// client is constructed from the GITHUB_TOKEN environment variable.
	Client gh.ClientInterface
}

func (Pipe) String() string { return "publishing release" }

func (p Pipe) Run(ctx *context.Context) error {
	cfg := ctx.Config.Publish.GitHub
	pc := ctx.Packaging

	client := p.Client
	if client == nil {
		c, err := gh.NewClient(gh.GetGitHubToken())
		if err != nil {
			return err
		}
		client = c
	}

	if _, err := client.GetRepository(ctx.StdCtx, cfg.Owner, cfg.Repo); err != nil {
		return fmt.Errorf("failed to access repository %s/%s: %w", cfg.Owner, cfg.Repo, err)
	}

	assets := ctx.Artifacts.Packages
	if len(assets) == 0 {
		found, err := findArtifacts(pc.DistDir)
		if err != nil {
			return err
		}
		assets = found
	}
	if len(assets) == 0 {
		return fmt.Errorf("no packaging artifacts found in %s: run the package command first", pc.DistDir)
	}

	tag := "v" + pc.Version
	release, err := client.GetRelease(ctx.StdCtx, cfg.Owner, cfg.Repo, tag)
	if err != nil {
		if !gh.IsNotFound(err) {
			return fmt.Errorf("failed to look up release %s: %w", tag, err)
		}
		name := fmt.Sprintf("%s %s", pc.AppName, pc.Version)
		draft := cfg.Draft
		release, err = client.CreateRelease(ctx.StdCtx, cfg.Owner, cfg.Repo, &github.RepositoryRelease{
			TagName: &tag,
			Name:    &name,
			Draft:   &draft,
		})
		if err != nil {
			return fmt.Errorf("failed to create release %s: %w", tag, err)
		}
		ctx.Logger.Infof("Created release %s", tag)
	} else {
		ctx.Logger.Infof("Reusing existing release %s", tag)
	}

	for _, asset := range assets {
		ctx.Logger.Infof("Uploading %s", filepath.Base(asset))
		if _, err := client.UploadReleaseAsset(ctx.StdCtx, cfg.Owner, cfg.Repo, release.GetID(), asset, gh.ContentTypeForAsset(asset)); err != nil {
			return fmt.Errorf("failed to upload %s: %w", asset, err)
		}
	}

	ctx.Logger.Infof("Published %d artifacts to %s/%s %s", len(assets), cfg.Owner, cfg.Repo, tag)
	return nil
}

// findArtifacts lists the distributable artifacts in the dist directory.
func findArtifacts(distDir string) ([]string, error) {
	var artifacts []string
	for _, pattern := range []string{"*.pkg", "*.dmg"} {
		matches, err := filepath.Glob(filepath.Join(distDir, pattern))
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, matches...)
	}
	return artifacts, nil
}
