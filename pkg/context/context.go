package context

import (
	"context"

	"github.com/macpack/macpack/pkg/backup"
	"github.com/macpack/macpack/pkg/config"
	"github.com/sirupsen/logrus"
)

// Artifacts tracks the filesystem outputs produced as the pipeline runs.
type Artifacts struct {
	// AppPath is the produced .app bundle, set by the bundle pipe.
	AppPath string
	// ExtendInfoPath is the property list handed to the bundler.
	ExtendInfoPath string
	// PkgPath is the installer package produced by a store build.
	PkgPath string
	// DMGPath is the disk image produced by an outside-store build.
	DMGPath string
	// Packages lists every distributable artifact for publishing.
	Packages []string
}

// Context provides shared state for all pipes
type Context struct {
	StdCtx    context.Context // Standard context for cancellation support
	Config    *config.Config
	Packaging *config.PackagingConfig
	Logger    *logrus.Logger
	Artifacts Artifacts

	// Backup is the live snapshot of the mutated project files. Set by
	// the project pipe, consumed exactly once by the restore pipe; it
	// must never survive past the end of a run.
	Backup *backup.Backup

	// SkipNotarize suppresses notary submission for quick local runs.
	SkipNotarize bool
}

// NewContext creates a new context with the given standard context, configs, and logger.
// If stdCtx is nil, context.Background() is used.
func NewContext(stdCtx context.Context, cfg *config.Config, pc *config.PackagingConfig, logger *logrus.Logger) *Context {
	if stdCtx == nil {
		stdCtx = context.Background()
	}
	return &Context{
		StdCtx:    stdCtx,
		Config:    cfg,
		Packaging: pc,
		Logger:    logger,
	}
}

// Done returns the done channel from the standard context for cancellation support
func (c *Context) Done() <-chan struct{} {
	return c.StdCtx.Done()
}

// Err returns the error from the standard context
func (c *Context) Err() error {
	return c.StdCtx.Err()
}
