package restore

import (
	"fmt"

	"github.com/macpack/macpack/pkg/context"
)

type skipError string

func (e skipError) Error() string { return string(e) }

func (e skipError) IsSkip() bool { return true }

// Pipe restores the project metadata files from the backup taken before
// packaging. It runs whether the preceding pipes succeeded or not.
type Pipe struct{}

func (Pipe) String() string { return "restoring project metadata" }

func (Pipe) Run(ctx *context.Context) error {
	if ctx.Backup == nil {
		return skipError("no project metadata to restore")
	}

	b := ctx.Backup
	ctx.Backup = nil

	if err := b.Restore(); err != nil {
		return fmt.Errorf("failed to restore project metadata: %w", err)
	}

	ctx.Logger.Infof("Restored %d project metadata files", len(b.Paths()))
	return nil
}
