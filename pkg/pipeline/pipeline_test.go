package pipeline

import (
	stdctx "context"
	"errors"
	"io"
	"testing"

	"github.com/macpack/macpack/pkg/config"
	"github.com/macpack/macpack/pkg/context"
	"github.com/macpack/macpack/pkg/pipe"
	"github.com/sirupsen/logrus"
)

func testContext() *context.Context {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return context.NewContext(stdctx.Background(), &config.Config{}, &config.PackagingConfig{}, logger)
}

// fakePipe records whether it ran and returns a fixed error.
type fakePipe struct {
	name string
	err  error
	ran  *bool
}

func (p fakePipe) String() string { return p.name }
func (p fakePipe) Run(*context.Context) error {
	*p.ran = true
	return p.err
}

func TestRunPipesStopsAtFirstError(t *testing.T) {
	var first, second, third bool
	boom := errors.New("boom")

	err := runPipes(testContext(), []pipe.Piper{
		fakePipe{name: "first", ran: &first},
		fakePipe{name: "second", ran: &second, err: boom},
		fakePipe{name: "third", ran: &third},
	})

	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped boom", err)
	}
	if !first || !second {
		t.Error("pipes before the failure must run")
	}
	if third {
		t.Error("pipes after the failure must not run")
	}
}

func TestRunPipesSkipContinues(t *testing.T) {
	var first, second bool

	err := runPipes(testContext(), []pipe.Piper{
		fakePipe{name: "first", ran: &first, err: pipe.Skip("not configured")},
		fakePipe{name: "second", ran: &second},
	})

	if err != nil {
		t.Fatalf("skips must not fail the pipeline, got %v", err)
	}
	if !second {
		t.Error("pipes after a skip must run")
	}
}

func TestRunCleanupRunsEveryPipe(t *testing.T) {
	var first, second bool
	boom := errors.New("restore failed")

	err := runCleanup(testContext(), []pipe.Piper{
		fakePipe{name: "first", ran: &first, err: boom},
		fakePipe{name: "second", ran: &second},
	})

	if !errors.Is(err, boom) {
		t.Fatalf("cleanup error must be reported, got %v", err)
	}
	if !first || !second {
		t.Error("every cleanup pipe must run, even after a failure")
	}
}
