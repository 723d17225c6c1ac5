package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/macpack/macpack/pkg/backup"
	"github.com/macpack/macpack/pkg/context"
)

// Pipe snapshots the project metadata files and rewrites them with the
// resolved application name and version
type Pipe struct{}

func (Pipe) String() string { return "preparing project metadata" }

func (Pipe) Run(ctx *context.Context) error {
	cfg := ctx.Config
	pc := ctx.Packaging

	paths := []string{
		filepath.Join(cfg.Project.Root, cfg.Project.Metadata),
		filepath.Join(cfg.Project.Root, cfg.Project.AppMetadata),
	}

	b, err := backup.Take(paths)
	if err != nil {
		return fmt.Errorf("failed to snapshot project metadata: %w", err)
	}
	ctx.Backup = b
	ctx.Logger.Debugf("Backed up %d project metadata files", len(paths))

	for _, path := range paths {
		if err := rewriteMetadata(path, pc.AppName, pc.Version); err != nil {
			return fmt.Errorf("failed to update %s: %w", path, err)
		}
	}

	ctx.Logger.Infof("Project metadata updated for %s %s", pc.AppName, pc.Version)
	return nil
}

// rewriteMetadata sets the name and version fields of a package.json
// style file, preserving every other field it carries.
func rewriteMetadata(path, name, version string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	doc["name"] = name
	doc["version"] = version

	updated, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	updated = append(updated, '\n')

	return os.WriteFile(path, updated, 0644)
}
