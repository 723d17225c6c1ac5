// Package bundle drives the external Electron app bundler. The bundler
// is treated as an opaque process: macpack builds its argument list,
// runs it to completion, and locates the produced .app from the
// documented output layout.
package bundle

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Options holds the arguments needed to invoke the bundler.
type Options struct {
	Dir         string // project directory handed to the bundler
	Name        string // application name
	AppBundleID string // CFBundleIdentifier
	AppVersion  string // CFBundleShortVersionString
	BuildVersion string // CFBundleVersion
	Out         string // output directory
	Arch        string // target architecture (x64, arm64, universal)
	Protocol    string // custom URL scheme registered by the app
	ExtendInfo  string // path to the extra Info.plist entries
	Mirror      string // Electron binary download mirror

	// Sign enables the bundler's automatic signing pass. Nil disables it;
	// the components are then signed manually after bundling.
	Sign *SignOptions

	// Notarize passes notary credentials through to the bundler.
	Notarize *NotarizeOptions
}

// SignOptions parameterizes the bundler's signing pass.
type SignOptions struct {
	Identity          string
	Entitlements      string
	ChildEntitlements string
	HardenedRuntime   bool
}

// NotarizeOptions carries notary credentials for the bundler.
type NotarizeOptions struct {
	AppleID  string
	Password string
	TeamID   string
}

// BuildArgs constructs the bundler's argument list.
func BuildArgs(opts Options) []string {
	args := []string{
		"electron-packager", opts.Dir, opts.Name,
		"--platform=darwin",
		"--arch=" + opts.Arch,
		"--out=" + opts.Out,
		"--overwrite",
	}

	if opts.AppBundleID != "" {
		args = append(args, "--app-bundle-id="+opts.AppBundleID)
	}
	if opts.AppVersion != "" {
		args = append(args, "--app-version="+opts.AppVersion)
	}
	if opts.BuildVersion != "" {
		args = append(args, "--build-version="+opts.BuildVersion)
	}
	if opts.Protocol != "" {
		args = append(args, "--protocol="+opts.Protocol)
	}
	if opts.ExtendInfo != "" {
		args = append(args, "--extend-info="+opts.ExtendInfo)
	}

	if opts.Sign != nil {
		args = append(args, "--osx-sign.identity="+opts.Sign.Identity)
		if opts.Sign.Entitlements != "" {
			args = append(args, "--osx-sign.entitlements="+opts.Sign.Entitlements)
		}
		if opts.Sign.ChildEntitlements != "" {
			args = append(args, "--osx-sign.entitlements-inherit="+opts.Sign.ChildEntitlements)
		}
		if opts.Sign.HardenedRuntime {
			args = append(args, "--osx-sign.hardened-runtime")
		}
	} else {
		args = append(args, "--no-osx-sign")
	}

	if opts.Notarize != nil {
		args = append(args,
			"--osx-notarize.appleId="+opts.Notarize.AppleID,
			"--osx-notarize.appleIdPassword="+opts.Notarize.Password,
		)
		if opts.Notarize.TeamID != "" {
			args = append(args, "--osx-notarize.teamId="+opts.Notarize.TeamID)
		}
	}

	return args
}

// AppPath returns the path of the .app the bundler produces for opts.
func AppPath(opts Options) string {
	return filepath.Join(opts.Out, fmt.Sprintf("%s-darwin-%s", opts.Name, opts.Arch), opts.Name+".app")
}

// Run executes the bundler via npx with the given options, blocking until
// it completes. Returns combined stdout/stderr output and any error.
func Run(opts Options) (string, error) {
	if _, err := exec.LookPath("npx"); err != nil {
		return "", fmt.Errorf("npx not found — install Node.js to run the app bundler")
	}

	cmd := exec.Command("npx", BuildArgs(opts)...)
	cmd.Dir = opts.Dir
	cmd.Env = os.Environ()
	if opts.Mirror != "" {
		cmd.Env = append(cmd.Env, "ELECTRON_MIRROR="+opts.Mirror)
	}

	out, err := cmd.CombinedOutput()
	output := string(out)

	if err != nil {
		if strings.Contains(output, "Unable to determine Electron version") {
			return output, fmt.Errorf("bundler could not determine the Electron version — ensure electron is a devDependency of the project: %w", err)
		}
		if strings.Contains(output, "ENOTFOUND") || strings.Contains(output, "ETIMEDOUT") {
			return output, fmt.Errorf("bundler failed to download Electron — check network access or set %s: %w", "ELECTRON_MIRROR", err)
		}
		return output, fmt.Errorf("bundling failed: %s: %w", output, err)
	}

	return output, nil
}
