package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/parser"
	"github.com/macpack/macpack/pkg/env"
)

// Config represents the complete macpack configuration (.macpack.yaml).
// It names the project files the packaging run reads and mutates and
// carries the switches that select store vs outside-store packaging.
// Identity names and credentials are normally injected through the
// environment; YAML values additionally support env(VAR) substitution.
type Config struct {
	Project  ProjectConfig  `yaml:"project"`
	Package  PackageConfig  `yaml:"package"`
	Sign     SignConfig     `yaml:"sign"`
	Notarize NotarizeConfig `yaml:"notarize"`
	Publish  PublishConfig  `yaml:"publish"`
}

// ProjectConfig names the project files consumed by a packaging run.
// All paths are resolved relative to Root.
type ProjectConfig struct {
	Root         string `yaml:"root"`
	Metadata     string `yaml:"metadata,omitempty"`
	AppMetadata  string `yaml:"app_metadata,omitempty"`
	EnvDefaults  string `yaml:"env_defaults,omitempty"`
	PlistEntries string `yaml:"plist_entries,omitempty"`
	Entitlements string `yaml:"entitlements,omitempty"`
}

// PackageConfig contains packaging behavior switches
type PackageConfig struct {
	DistDir        string `yaml:"dist_dir,omitempty"`
	Arch           string `yaml:"arch,omitempty"`
	ProtocolScheme string `yaml:"protocol_scheme,omitempty"`
	// Notarize selects the outside-store build: the bundle is packaged
	// into a disk image and submitted to the notary service. When false,
	// a store build produces a signed installer package instead.
	Notarize bool `yaml:"notarize"`
	// ManualSign disables the bundler's automatic signing pass; the
	// bundle's components are then signed individually, innermost first.
	ManualSign bool `yaml:"manual_sign"`
}

// SignConfig contains code signing configuration. Values left empty are
// filled from the certificate-name environment variables during resolution.
type SignConfig struct {
	AppIdentity       string `yaml:"app_identity,omitempty"`
	InstallerIdentity string `yaml:"installer_identity,omitempty"`
}

// NotarizeConfig contains notary service credentials.
// SECURITY NOTE: the Password field holds the app-specific password in
// memory as a plain string, which is unavoidable for passing to notarytool.
// Always use env(VAR) substitution instead of hardcoding it in config files.
type NotarizeConfig struct {
	AppleID  string `yaml:"apple_id,omitempty"`
	TeamID   string `yaml:"team_id,omitempty"`
	Password string `yaml:"password,omitempty"`
}

// PublishConfig contains release publishing configuration
type PublishConfig struct {
	GitHub GitHubConfig `yaml:"github"`
}

// GitHubConfig contains GitHub-specific publish configuration
type GitHubConfig struct {
	Owner string `yaml:"owner"`
	Repo  string `yaml:"repo"`
	Draft bool   `yaml:"draft"`
}

// Default project-file paths, relative to project.root.
const (
	DefaultMetadataPath     = "package.json"
	DefaultAppMetadataPath  = "app/package.json"
	DefaultEnvDefaultsPath  = "build/env-defaults.json"
	DefaultPlistEntriesPath = "build/plist-entries.json"
	DefaultEntitlementsPath = "build/entitlements.mas.plist"
	DefaultDistDir          = "dist"
	DefaultArch             = "universal"
)

// LoadConfig loads and parses a configuration file
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config file path is required")
	}

	cleanPath, err := validateConfigPath(path)
	if err != nil {
		return nil, err
	}

	data, err := readConfigFile(cleanPath)
	if err != nil {
		return nil, err
	}

	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return nil, fmt.Errorf("failed to parse config: empty document")
	}

	if err := env.SubstituteNode(file.Docs[0].Body); err != nil {
		return nil, fmt.Errorf("environment variable substitution failed: %w", err)
	}

	var config Config
	if err := yaml.NodeToValue(file.Docs[0].Body, &config, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

// applyDefaults fills in the documented defaults for omitted paths.
func (c *Config) applyDefaults() {
	if c.Project.Root == "" {
		c.Project.Root = "."
	}
	if c.Project.Metadata == "" {
		c.Project.Metadata = DefaultMetadataPath
	}
	if c.Project.AppMetadata == "" {
		c.Project.AppMetadata = DefaultAppMetadataPath
	}
	if c.Project.EnvDefaults == "" {
		c.Project.EnvDefaults = DefaultEnvDefaultsPath
	}
	if c.Project.PlistEntries == "" {
		c.Project.PlistEntries = DefaultPlistEntriesPath
	}
	if c.Project.Entitlements == "" {
		c.Project.Entitlements = DefaultEntitlementsPath
	}
	if c.Package.DistDir == "" {
		c.Package.DistDir = DefaultDistDir
	}
	if c.Package.Arch == "" {
		c.Package.Arch = DefaultArch
	}
}

// SaveConfig saves a configuration to a file
func SaveConfig(path string, config *Config) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Use restrictive permissions (0600) since config may contain sensitive data
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func validateConfigPath(path string) (string, error) {
	// Resolve to an absolute path first, then make sure a path inside the
	// working directory does not climb back out with parent references.
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	cleanPath := filepath.Clean(absPath)

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	wd = filepath.Clean(wd)

	if strings.HasPrefix(cleanPath, wd+string(filepath.Separator)) || cleanPath == wd {
		relPath, err := filepath.Rel(wd, cleanPath)
		if err != nil {
			return "", fmt.Errorf("invalid config path: %w", err)
		}
		if !filepath.IsLocal(relPath) {
			return "", fmt.Errorf("invalid config path: path traversal detected")
		}
	}
	// Absolute paths outside the working directory are allowed; tests and
	// CI invocations pass full temp paths.

	return cleanPath, nil
}

func readConfigFile(cleanPath string) ([]byte, error) {
	// os.Stat (not Lstat) follows symlinks and validates the target
	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to access config file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("config path is not a regular file")
	}

	// Limit to 1MB
	const maxConfigSize = 1024 * 1024
	if info.Size() > maxConfigSize {
		return nil, fmt.Errorf("config file too large: maximum size is 1MB")
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return data, nil
}
