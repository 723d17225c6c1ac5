package dmg

import (
	"testing"

	stdctx "context"

	"github.com/sirupsen/logrus"

	"github.com/macpack/macpack/pkg/config"
	"github.com/macpack/macpack/pkg/context"
	"github.com/macpack/macpack/pkg/pipe"
)

func TestPipeSkipsForStoreBuild(t *testing.T) {
	ctx := context.NewContext(stdctx.Background(), &config.Config{}, &config.PackagingConfig{}, logrus.New())
	if err := (Pipe{}).Run(ctx); !pipe.IsSkip(err) {
		t.Fatalf("expected a skip for a store build, got %v", err)
	}
}

func TestPipeRequiresBundle(t *testing.T) {
	pc := &config.PackagingConfig{ShouldNotarize: true}
	ctx := context.NewContext(stdctx.Background(), &config.Config{}, pc, logrus.New())
	err := (Pipe{}).Run(ctx)
	if err == nil || pipe.IsSkip(err) {
		t.Fatalf("expected a hard error when no bundle was produced, got %v", err)
	}
}
