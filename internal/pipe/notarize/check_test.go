package notarize

import (
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

func TestCheckPipeSkipsWhenNotRequested(t *testing.T) {
	ctx := testContext(&config.PackagingConfig{})
	if err := (CheckPipe{}).Run(ctx); !pipe.IsSkip(err) {
		t.Fatalf("expected a skip when notarization is not requested, got %v", err)
	}
}

func TestCheckPipeSkipsWhenSuppressedByFlag(t *testing.T) {
	ctx := testContext(&config.PackagingConfig{ShouldNotarize: true})
	ctx.SkipNotarize = true
	if err := (CheckPipe{}).Run(ctx); !pipe.IsSkip(err) {
		t.Fatalf("expected a skip when notarization is suppressed, got %v", err)
	}
}

func TestCheckPipeValidCredentials(t *testing.T) {
	ctx := testContext(&config.PackagingConfig{
		ShouldNotarize: true,
		Notarize: &config.NotarizationConfig{
			AppleID:  "dev@example.com",
			TeamID:   "ABCDE12345",
			Password: "app-specific-password",
		},
	})
	if err := (CheckPipe{}).Run(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckPipeMissingCredentials(t *testing.T) {
	tests := []struct {
		name     string
		notarize *config.NotarizationConfig
	}{
		{"no credentials", nil},
		{"missing apple id", &config.NotarizationConfig{TeamID: "ABCDE12345", Password: "secret"}},
		{"missing team id", &config.NotarizationConfig{AppleID: "dev@example.com", Password: "secret"}},
		{"missing password", &config.NotarizationConfig{AppleID: "dev@example.com", TeamID: "ABCDE12345"}},
		{"unresolved password", &config.NotarizationConfig{
			AppleID:  "dev@example.com",
			TeamID:   "ABCDE12345",
			Password: "env(NOTARIZE_PASSWORD)",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(&config.PackagingConfig{
				ShouldNotarize: true,
				Notarize:       tt.notarize,
			})
			err := (CheckPipe{}).Run(ctx)
			if err == nil || pipe.IsSkip(err) {
				t.Fatalf("expected a hard validation error, got %v", err)
			}
		})
	}
}

func TestPipeSkipsWhenNotRequested(t *testing.T) {
	ctx := testContext(&config.PackagingConfig{})
	if err := (Pipe{}).Run(ctx); !pipe.IsSkip(err) {
		t.Fatalf("expected a skip when notarization is not requested, got %v", err)
	}
}

func TestPipeRequiresBundle(t *testing.T) {
	ctx := testContext(&config.PackagingConfig{ShouldNotarize: true})
	err := (Pipe{}).Run(ctx)
	if err == nil || pipe.IsSkip(err) {
		t.Fatalf("expected a hard error when no bundle was produced, got %v", err)
	}
}
