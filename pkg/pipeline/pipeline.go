// Package pipeline executes all registered pipes in sequence.
//
// The pipeline runs in three stages:
//   - Validation: checks configuration before anything is touched.
//   - Execution: mutates project files, bundles, signs, and packages.
//   - Cleanup: restores the mutated files; runs on every exit path of
//     the execution stage, including failure.
//
// Usage:
//
//	ctx := context.NewContext(context.Background(), cfg, pc, logger)
//	if err := pipeline.Run(ctx); err != nil {
//	    // Handle error; cleanup has already run.
//	}
package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/macpack/macpack/pkg/context"
	"github.com/macpack/macpack/pkg/pipe"
)

// RunValidation executes only the validation pipes.
// Used by the check command.
func RunValidation(ctx *context.Context) error {
	return runPipes(ctx, ValidationPipes)
}

// RunExecution executes the execution pipes, then the cleanup pipes.
// The cleanup stage runs regardless of the execution outcome: a failure
// while bundling or signing must never skip restoration of the mutated
// project files. The returned error carries the execution failure, with
// any cleanup failures joined in.
func RunExecution(ctx *context.Context) error {
	execErr := runPipes(ctx, ExecutionPipes)
	if execErr != nil {
		ctx.Logger.Errorf("Packaging failed: %v", execErr)
	}
	return errors.Join(execErr, runCleanup(ctx, CleanupPipes))
}

// Run executes validation pipes first, then execution and cleanup.
// Used by the package command.
func Run(ctx *context.Context) error {
	if err := RunValidation(ctx); err != nil {
		return err
	}
	return RunExecution(ctx)
}

// RunPublish executes the publish pipes. No cleanup stage is involved;
// publishing mutates nothing locally.
func RunPublish(ctx *context.Context) error {
	return runPipes(ctx, PublishPipes)
}

// runPipes executes a slice of pipes in sequence, stopping at the first
// non-skip error.
func runPipes(ctx *context.Context, pipes []pipe.Piper) error {
	for _, p := range pipes {
		ctx.Logger.Infof("Running: %s", p.String())
		start := time.Now()

		if err := p.Run(ctx); err != nil {
			if pipe.IsSkip(err) {
				ctx.Logger.Infof("Skipping: %v", err)
				continue
			}
			return fmt.Errorf("%s: %w", p.String(), err)
		}

		duration := time.Since(start)
		ctx.Logger.Infof("Completed: %s (%s)", p.String(), duration.Round(time.Millisecond))
	}
	return nil
}

// runCleanup runs every cleanup pipe even when an earlier one fails.
func runCleanup(ctx *context.Context, pipes []pipe.Piper) error {
	var errs []error
	for _, p := range pipes {
		ctx.Logger.Infof("Running: %s", p.String())
		if err := p.Run(ctx); err != nil {
			if pipe.IsSkip(err) {
				ctx.Logger.Infof("Skipping: %v", err)
				continue
			}
			ctx.Logger.Errorf("%s: %v", p.String(), err)
			errs = append(errs, fmt.Errorf("%s: %w", p.String(), err))
			continue
		}
		ctx.Logger.Infof("Completed: %s", p.String())
	}
	return errors.Join(errs...)
}

// Piper is re-exported for convenience within the pipeline package.
type Piper = pipe.Piper
