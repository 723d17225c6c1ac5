package config

// ExampleConfig returns a configuration with example values for use with `macpack init`
func ExampleConfig() *Config {
	return &Config{
		Project: ProjectConfig{
			Root:         ".",
			Metadata:     DefaultMetadataPath,
			AppMetadata:  DefaultAppMetadataPath,
			EnvDefaults:  DefaultEnvDefaultsPath,
			PlistEntries: DefaultPlistEntriesPath,
			Entitlements: DefaultEntitlementsPath,
		},
		Package: PackageConfig{
			DistDir:        DefaultDistDir,
			Arch:           DefaultArch,
			ProtocolScheme: "myapp",
			Notarize:       true,
			ManualSign:     false,
		},
		Sign: SignConfig{
			AppIdentity:       "env(MACOS_APP_CERT)",
			InstallerIdentity: "env(MACOS_INSTALLER_CERT)",
		},
		Notarize: NotarizeConfig{
			AppleID:  "env(NOTARIZE_APPLE_ID)",
			TeamID:   "env(NOTARIZE_TEAM_ID)",
			Password: "env(NOTARIZE_PASSWORD)",
		},
		Publish: PublishConfig{
			GitHub: GitHubConfig{
				Owner: "yourname",
				Repo:  "myapp",
				Draft: false,
			},
		},
	}
}
