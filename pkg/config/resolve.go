package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Environment variables recognized during resolution. They rank above the
// hard-coded defaults and the env-defaults file, and below the project
// metadata JSON for the fields both can carry.
const (
	EnvBundleID             = "MACOS_BUNDLE_ID"
	EnvExportComplianceCode = "MACOS_EXPORT_COMPLIANCE_CODE"
	EnvAppCert              = "MACOS_APP_CERT"
	EnvInstallerCert        = "MACOS_INSTALLER_CERT"
	EnvNotarizationCert     = "MACOS_NOTARIZATION_CERT"
	EnvElectronMirror       = "ELECTRON_MIRROR"
	EnvNotarizeAppleID      = "NOTARIZE_APPLE_ID"
	EnvNotarizePassword     = "NOTARIZE_PASSWORD"
	EnvNotarizeTeamID       = "NOTARIZE_TEAM_ID"
)

// DefaultBundleID is the lowest-precedence bundle identifier.
const DefaultBundleID = "com.macpack.app"

// PackagingConfig holds the fully resolved settings for one packaging run.
// It is built once per invocation and never mutated afterwards.
type PackagingConfig struct {
	AppName              string
	Version              string
	BuildNumber          string
	BundleID             string
	ProtocolScheme       string
	ElectronMirror       string
	ExportComplianceCode string

	ProjectRoot string
	DistDir     string
	Arch        string

	ManualSign     bool
	ShouldNotarize bool

	// Identity names as resolved from config and environment. Empty when
	// the corresponding certificate is not configured.
	AppCert          string
	InstallerCert    string
	NotarizationCert string

	EntitlementsPath      string
	ChildEntitlementsPath string

	// Sign is populated only when automatic signing applies (manual
	// signing disabled or notarization requested) and an application
	// identity is configured; it parameterizes the bundler's signing pass.
	Sign *SigningConfig

	// Notarize is populated only when notarization is requested.
	Notarize *NotarizationConfig
}

// SigningConfig parameterizes the bundler's automatic signing pass.
type SigningConfig struct {
	Identity          string
	Entitlements      string
	ChildEntitlements string
	HardenedRuntime   bool
}

// NotarizationConfig carries notary service credentials.
type NotarizationConfig struct {
	AppleID  string
	TeamID   string
	Password string
	Identity string
}

// ProjectMetadata mirrors the fields of the project's package.json that
// participate in configuration resolution.
type ProjectMetadata struct {
	Name        string        `json:"name"`
	ProductName string        `json:"productName"`
	Version     string        `json:"version"`
	Build       BuildMetadata `json:"build"`
}

// BuildMetadata is the optional "build" object inside package.json.
type BuildMetadata struct {
	AppID          string `json:"appId"`
	BuildNumber    string `json:"buildNumber"`
	ProtocolScheme string `json:"protocolScheme"`
}

// LoadProjectMetadata reads and parses the project metadata JSON file.
// A missing file and a malformed file are reported as distinct errors.
func LoadProjectMetadata(path string) (*ProjectMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project metadata: %w", err)
	}

	var meta ProjectMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse project metadata %s: %w", path, err)
	}

	return &meta, nil
}

// loadEnvDefaults reads the optional env-defaults JSON file, a flat map of
// environment variable names to fallback values. A missing file yields an
// empty map; a malformed file is an error.
func loadEnvDefaults(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read env defaults: %w", err)
	}

	var defaults map[string]string
	if err := json.Unmarshal(data, &defaults); err != nil {
		return nil, fmt.Errorf("failed to parse env defaults %s: %w", path, err)
	}

	return defaults, nil
}

// Resolve merges the hard-coded defaults, the env-defaults file, the real
// environment, and the project metadata JSON into an immutable
// PackagingConfig. Later sources win; the metadata JSON has the final say
// on the fields it carries.
func Resolve(cfg *Config) (*PackagingConfig, error) {
	return resolveWithEnv(cfg, os.LookupEnv)
}

// resolveWithEnv is the injectable core of Resolve; tests supply their own
// environment lookup.
func resolveWithEnv(cfg *Config, lookupEnv func(string) (string, bool)) (*PackagingConfig, error) {
	root := cfg.Project.Root

	meta, err := LoadProjectMetadata(filepath.Join(root, cfg.Project.Metadata))
	if err != nil {
		return nil, err
	}

	envDefaults, err := loadEnvDefaults(filepath.Join(root, cfg.Project.EnvDefaults))
	if err != nil {
		return nil, err
	}

	lookup := func(key string) string {
		if v, ok := lookupEnv(key); ok {
			return v
		}
		return envDefaults[key]
	}

	entitlements := filepath.Join(root, cfg.Project.Entitlements)

	pc := &PackagingConfig{
		BundleID:              DefaultBundleID,
		ProjectRoot:           root,
		DistDir:               filepath.Join(root, cfg.Package.DistDir),
		Arch:                  cfg.Package.Arch,
		ProtocolScheme:        cfg.Package.ProtocolScheme,
		ManualSign:            cfg.Package.ManualSign,
		ShouldNotarize:        cfg.Package.Notarize,
		EntitlementsPath:      entitlements,
		ChildEntitlementsPath: childEntitlementsPath(entitlements),
	}

	// Environment overrides the defaults.
	if v := lookup(EnvBundleID); v != "" {
		pc.BundleID = v
	}
	pc.ExportComplianceCode = lookup(EnvExportComplianceCode)
	pc.ElectronMirror = lookup(EnvElectronMirror)

	pc.AppCert = cfg.Sign.AppIdentity
	if v := lookup(EnvAppCert); v != "" {
		pc.AppCert = v
	}
	pc.InstallerCert = cfg.Sign.InstallerIdentity
	if v := lookup(EnvInstallerCert); v != "" {
		pc.InstallerCert = v
	}
	pc.NotarizationCert = lookup(EnvNotarizationCert)

	// The project metadata JSON wins on the fields it carries.
	pc.AppName = meta.Name
	if meta.ProductName != "" {
		pc.AppName = meta.ProductName
	}
	pc.Version = meta.Version
	pc.BuildNumber = meta.Build.BuildNumber
	if pc.BuildNumber == "" {
		pc.BuildNumber = meta.Version
	}
	if meta.Build.AppID != "" {
		pc.BundleID = meta.Build.AppID
	}
	if meta.Build.ProtocolScheme != "" {
		pc.ProtocolScheme = meta.Build.ProtocolScheme
	}

	// Automatic signing applies when manual signing is disabled or
	// notarization is requested, and only with an application identity.
	if (!pc.ManualSign || pc.ShouldNotarize) && pc.AppCert != "" {
		pc.Sign = &SigningConfig{
			Identity:          pc.AppCert,
			Entitlements:      pc.EntitlementsPath,
			ChildEntitlements: pc.ChildEntitlementsPath,
			HardenedRuntime:   pc.ShouldNotarize,
		}
	}

	if pc.ShouldNotarize {
		notarize := &NotarizationConfig{
			AppleID:  cfg.Notarize.AppleID,
			TeamID:   cfg.Notarize.TeamID,
			Password: cfg.Notarize.Password,
			Identity: pc.NotarizationCert,
		}
		if v := lookup(EnvNotarizeAppleID); v != "" {
			notarize.AppleID = v
		}
		if v := lookup(EnvNotarizePassword); v != "" {
			notarize.Password = v
		}
		if v := lookup(EnvNotarizeTeamID); v != "" {
			notarize.TeamID = v
		}
		pc.Notarize = notarize
	}

	return pc, nil
}

// childEntitlementsPath derives the inherited-entitlements path from the
// parent entitlements path: entitlements.mas.plist -> entitlements.mas.inherit.plist.
func childEntitlementsPath(parent string) string {
	return strings.TrimSuffix(parent, ".plist") + ".inherit.plist"
}
