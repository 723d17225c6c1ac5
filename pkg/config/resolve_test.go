package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeProject lays out a minimal project tree for resolution tests and
// returns a Config pointing at it.
func writeProject(t *testing.T, metadata string, envDefaults string) *Config {
	t.Helper()
	root := t.TempDir()

	if err := os.WriteFile(filepath.Join(root, "package.json"), []byte(metadata), 0644); err != nil {
		t.Fatalf("failed to write package.json: %v", err)
	}
	if envDefaults != "" {
		if err := os.MkdirAll(filepath.Join(root, "build"), 0755); err != nil {
			t.Fatalf("failed to create build dir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(root, "build", "env-defaults.json"), []byte(envDefaults), 0644); err != nil {
			t.Fatalf("failed to write env defaults: %v", err)
		}
	}

	cfg := &Config{Project: ProjectConfig{Root: root}}
	cfg.applyDefaults()
	return cfg
}

// emptyEnv is an environment lookup with nothing set.
func emptyEnv(string) (string, bool) { return "", false }

func envWith(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestResolveBundleIDPrecedence(t *testing.T) {
	const metadataNoAppID = `{"name": "myapp", "productName": "MyApp", "version": "1.2.3"}`
	const metadataWithAppID = `{"name": "myapp", "version": "1.2.3", "build": {"appId": "com.json.app"}}`

	tests := []struct {
		name     string
		metadata string
		env      map[string]string
		want     string
	}{
		{
			name:     "default when nothing else is set",
			metadata: metadataNoAppID,
			want:     DefaultBundleID,
		},
		{
			name:     "environment overrides default",
			metadata: metadataNoAppID,
			env:      map[string]string{EnvBundleID: "com.example.app"},
			want:     "com.example.app",
		},
		{
			name:     "project JSON overrides environment",
			metadata: metadataWithAppID,
			env:      map[string]string{EnvBundleID: "com.example.app"},
			want:     "com.json.app",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := writeProject(t, tt.metadata, "")
			pc, err := resolveWithEnv(cfg, envWith(tt.env))
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if pc.BundleID != tt.want {
				t.Errorf("BundleID = %q, want %q", pc.BundleID, tt.want)
			}
		})
	}
}

func TestResolveEnvDefaultsFileBelowEnvironment(t *testing.T) {
	cfg := writeProject(t,
		`{"name": "myapp", "version": "1.0.0"}`,
		`{"MACOS_BUNDLE_ID": "com.defaults.app", "ELECTRON_MIRROR": "https://mirror.example/"}`,
	)

	// File value used when the environment leaves the variable unset.
	pc, err := resolveWithEnv(cfg, emptyEnv)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if pc.BundleID != "com.defaults.app" {
		t.Errorf("BundleID = %q, want value from env-defaults file", pc.BundleID)
	}
	if pc.ElectronMirror != "https://mirror.example/" {
		t.Errorf("ElectronMirror = %q, want value from env-defaults file", pc.ElectronMirror)
	}

	// Real environment wins over the file.
	pc, err = resolveWithEnv(cfg, envWith(map[string]string{EnvBundleID: "com.env.app"}))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if pc.BundleID != "com.env.app" {
		t.Errorf("BundleID = %q, want environment value over file value", pc.BundleID)
	}
}

func TestResolveNameAndVersion(t *testing.T) {
	cfg := writeProject(t, `{"name": "myapp", "productName": "My App", "version": "2.0.1", "build": {"buildNumber": "451"}}`, "")
	pc, err := resolveWithEnv(cfg, emptyEnv)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if pc.AppName != "My App" {
		t.Errorf("AppName = %q, want productName to win over name", pc.AppName)
	}
	if pc.Version != "2.0.1" {
		t.Errorf("Version = %q, want 2.0.1", pc.Version)
	}
	if pc.BuildNumber != "451" {
		t.Errorf("BuildNumber = %q, want 451", pc.BuildNumber)
	}
}

func TestResolveBuildNumberFallsBackToVersion(t *testing.T) {
	cfg := writeProject(t, `{"name": "myapp", "version": "2.0.1"}`, "")
	pc, err := resolveWithEnv(cfg, emptyEnv)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if pc.BuildNumber != "2.0.1" {
		t.Errorf("BuildNumber = %q, want version fallback", pc.BuildNumber)
	}
}

func TestResolveSigningSubConfig(t *testing.T) {
	const metadata = `{"name": "myapp", "version": "1.0.0"}`

	tests := []struct {
		name       string
		manualSign bool
		notarize   bool
		appCert    string
		wantSign   bool
	}{
		{name: "automatic signing with identity", manualSign: false, notarize: false, appCert: "Cert A", wantSign: true},
		{name: "manual signing without notarization", manualSign: true, notarize: false, appCert: "Cert A", wantSign: false},
		{name: "manual signing with notarization", manualSign: true, notarize: true, appCert: "Cert A", wantSign: true},
		{name: "no identity configured", manualSign: false, notarize: true, appCert: "", wantSign: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := writeProject(t, metadata, "")
			cfg.Package.ManualSign = tt.manualSign
			cfg.Package.Notarize = tt.notarize

			env := map[string]string{}
			if tt.appCert != "" {
				env[EnvAppCert] = tt.appCert
			}

			pc, err := resolveWithEnv(cfg, envWith(env))
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if (pc.Sign != nil) != tt.wantSign {
				t.Fatalf("Sign populated = %v, want %v", pc.Sign != nil, tt.wantSign)
			}
			if pc.Sign != nil {
				if pc.Sign.Identity != tt.appCert {
					t.Errorf("Sign.Identity = %q, want %q", pc.Sign.Identity, tt.appCert)
				}
				if pc.Sign.HardenedRuntime != tt.notarize {
					t.Errorf("Sign.HardenedRuntime = %v, want %v", pc.Sign.HardenedRuntime, tt.notarize)
				}
			}
		})
	}
}

func TestResolveNotarizationSubConfig(t *testing.T) {
	cfg := writeProject(t, `{"name": "myapp", "version": "1.0.0"}`, "")
	pc, err := resolveWithEnv(cfg, emptyEnv)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if pc.Notarize != nil {
		t.Error("Notarize should be nil when notarization is not requested")
	}

	cfg.Package.Notarize = true
	pc, err = resolveWithEnv(cfg, envWith(map[string]string{
		EnvNotarizeAppleID:  "dev@example.com",
		EnvNotarizePassword: "app-specific",
		EnvNotarizeTeamID:   "TEAM123",
	}))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if pc.Notarize == nil {
		t.Fatal("Notarize should be populated when notarization is requested")
	}
	if pc.Notarize.AppleID != "dev@example.com" || pc.Notarize.Password != "app-specific" || pc.Notarize.TeamID != "TEAM123" {
		t.Errorf("Notarize = %+v, want credentials from environment", pc.Notarize)
	}
}

func TestResolveMissingMetadata(t *testing.T) {
	cfg := &Config{Project: ProjectConfig{Root: t.TempDir()}}
	cfg.applyDefaults()

	_, err := resolveWithEnv(cfg, emptyEnv)
	if err == nil {
		t.Fatal("expected error for missing project metadata")
	}
	if !os.IsNotExist(errUnwrapAll(err)) {
		t.Errorf("error = %v, want a not-exist file error", err)
	}
}

func TestResolveMalformedMetadata(t *testing.T) {
	cfg := writeProject(t, `{"name": "myapp",`, "")
	_, err := resolveWithEnv(cfg, emptyEnv)
	if err == nil {
		t.Fatal("expected error for malformed project metadata")
	}
	if !strings.Contains(err.Error(), "failed to parse project metadata") {
		t.Errorf("error = %v, want parse error", err)
	}
}

func TestChildEntitlementsPath(t *testing.T) {
	got := childEntitlementsPath("build/entitlements.mas.plist")
	want := "build/entitlements.mas.inherit.plist"
	if got != want {
		t.Errorf("childEntitlementsPath = %q, want %q", got, want)
	}
}

// errUnwrapAll unwraps to the innermost error for os.IsNotExist checks.
func errUnwrapAll(err error) error {
	type unwrapper interface{ Unwrap() error }
	for {
		u, ok := err.(unwrapper)
		if !ok {
			return err
		}
		next := u.Unwrap()
		if next == nil {
			return err
		}
		err = next
	}
}
