package sign

import (
	"strings"
	"testing"

	stdctx "context"

	"github.com/sirupsen/logrus"

	"github.com/macpack/macpack/pkg/config"
	"github.com/macpack/macpack/pkg/context"
	"github.com/macpack/macpack/pkg/pipe"
)

func testContext(pc *config.PackagingConfig) *context.Context {
	return context.NewContext(stdctx.Background(), &config.Config{}, pc, logrus.New())
}

func TestPipeSkipsWithoutIdentity(t *testing.T) {
	ctx := testContext(&config.PackagingConfig{})
	err := (Pipe{}).Run(ctx)
	if !pipe.IsSkip(err) {
		t.Fatalf("expected a skip without an identity, got %v", err)
	}
}

func TestPipeRejectsManualSignWithNotarization(t *testing.T) {
	ctx := testContext(&config.PackagingConfig{
		AppCert:        "Developer ID Application: Demo",
		ManualSign:     true,
		ShouldNotarize: true,
	})
	ctx.Artifacts.AppPath = "/tmp/Demo.app"

	err := (Pipe{}).Run(ctx)
	if err == nil {
		t.Fatal("expected an error for manual signing combined with notarization")
	}
	if pipe.IsSkip(err) {
		t.Fatal("the unsupported combination must fail, not skip")
	}
	if !strings.Contains(err.Error(), "manual signing") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestPipeRequiresBundle(t *testing.T) {
	ctx := testContext(&config.PackagingConfig{
		AppCert: "3rd Party Mac Developer Application: Demo",
	})

	err := (Pipe{}).Run(ctx)
	if err == nil {
		t.Fatal("expected an error when no bundle was produced")
	}
	if pipe.IsSkip(err) {
		t.Fatal("a missing bundle must fail, not skip")
	}
}

func TestCheckPipeRejectsManualSignWithNotarization(t *testing.T) {
	ctx := testContext(&config.PackagingConfig{
		ManualSign:     true,
		ShouldNotarize: true,
	})
	if err := (CheckPipe{}).Run(ctx); err == nil {
		t.Fatal("expected validation to reject manual signing with notarization")
	}
}

func TestCheckPipeSkipsWithoutIdentity(t *testing.T) {
	ctx := testContext(&config.PackagingConfig{})
	if err := (CheckPipe{}).Run(ctx); !pipe.IsSkip(err) {
		t.Fatalf("expected a skip without signing configuration, got %v", err)
	}
}

func TestCheckPipeRejectsUnresolvedIdentity(t *testing.T) {
	ctx := testContext(&config.PackagingConfig{
		AppCert: "env(MACOS_APP_CERT)",
	})
	if err := (CheckPipe{}).Run(ctx); err == nil {
		t.Fatal("expected validation to reject an unresolved identity placeholder")
	}
}
