package pipeline

import (
	"github.com/macpack/macpack/internal/pipe/bundle"
	"github.com/macpack/macpack/internal/pipe/dmg"
	"github.com/macpack/macpack/internal/pipe/installer"
	"github.com/macpack/macpack/internal/pipe/notarize"
	"github.com/macpack/macpack/internal/pipe/project"
	"github.com/macpack/macpack/internal/pipe/publish"
	"github.com/macpack/macpack/internal/pipe/restore"
	"github.com/macpack/macpack/internal/pipe/sign"
	"github.com/macpack/macpack/pkg/pipe"
)

// ValidationPipes contains all validation pipes, run by check and as the
// first stage of the package command.
var ValidationPipes = []pipe.Piper{
	project.CheckPipe{},   // Validate project file configuration
	bundle.CheckPipe{},    // Validate bundler inputs
	sign.CheckPipe{},      // Validate signing configuration
	installer.CheckPipe{}, // Validate installer configuration
	notarize.CheckPipe{},  // Validate notarization credentials
}

// ExecutionPipes contains all execution pipes, run after validation
// succeeds. Pipes inside the mutation window (everything after project)
// may fail; CleanupPipes still run afterwards.
var ExecutionPipes = []pipe.Piper{
	project.Pipe{},   // Back up and rewrite project metadata files
	bundle.Pipe{},    // Produce the .app with the external bundler
	sign.Pipe{},      // Automatic verify or manual per-target signing
	notarize.Pipe{},  // Submit to the notary service and staple
	dmg.Pipe{},       // Outside-store build: disk image
	installer.Pipe{}, // Store build: signed installer package
}

// CleanupPipes run unconditionally after the execution stage, whether it
// succeeded or failed. Restoration of the mutated project files lives
// here so no packaging failure can skip it.
var CleanupPipes = []pipe.Piper{
	restore.Pipe{}, // Restore backed-up project metadata files
}

// PublishPipes are run only by the publish command.
var PublishPipes = []pipe.Piper{
	publish.CheckPipe{}, // Validate publish configuration
	publish.Pipe{},      // Create the release and upload artifacts
}
