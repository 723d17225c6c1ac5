package bundle

import (
	"github.com/macpack/macpack/pkg/config"
)

// OptionsFromConfig derives the bundler options from a resolved packaging
// configuration. The signing and notarization sub-options mirror the
// sub-configs the resolver populated: automatic signing is passed through
// only when the resolver decided it applies.
func OptionsFromConfig(pc *config.PackagingConfig, extendInfoPath string) Options {
	opts := Options{
		Dir:          pc.ProjectRoot,
		Name:         pc.AppName,
		AppBundleID:  pc.BundleID,
		AppVersion:   pc.Version,
		BuildVersion: pc.BuildNumber,
		Out:          pc.DistDir,
		Arch:         pc.Arch,
		Protocol:     pc.ProtocolScheme,
		ExtendInfo:   extendInfoPath,
		Mirror:       pc.ElectronMirror,
	}

	if pc.Sign != nil {
		opts.Sign = &SignOptions{
			Identity:          pc.Sign.Identity,
			Entitlements:      pc.Sign.Entitlements,
			ChildEntitlements: pc.Sign.ChildEntitlements,
			HardenedRuntime:   pc.Sign.HardenedRuntime,
		}
	}

	if pc.Notarize != nil {
		opts.Notarize = &NotarizeOptions{
			AppleID:  pc.Notarize.AppleID,
			Password: pc.Notarize.Password,
			TeamID:   pc.Notarize.TeamID,
		}
	}

	return opts
}
