// Package installer wraps the productbuild command that turns a signed
// .app bundle into a distributable installer package.
package installer

import (
	"fmt"
	"os/exec"
	"strings"
)

// DefaultInstallLocation is where the installer places the bundle.
const DefaultInstallLocation = "/Applications"

// BuildArgs constructs the productbuild argument list. The signing
// identity is omitted when empty, producing an unsigned package.
func BuildArgs(componentPath, installLocation, identity, outputPath string) []string {
	args := []string{"--component", componentPath, installLocation}
	if identity != "" {
		args = append(args, "--sign", identity)
	}
	return append(args, outputPath)
}

// Build runs productbuild to produce the installer package at outputPath.
// Returns combined output and any error.
func Build(componentPath, installLocation, identity, outputPath string) (string, error) {
	if _, err := exec.LookPath("productbuild"); err != nil {
		return "", fmt.Errorf("productbuild not found — install Xcode Command Line Tools with: xcode-select --install")
	}

	cmd := exec.Command("productbuild", BuildArgs(componentPath, installLocation, identity, outputPath)...)

	out, err := cmd.CombinedOutput()
	output := string(out)

	if err != nil {
		if strings.Contains(output, "no identity found") {
			return output, fmt.Errorf("productbuild could not find the installer identity %q in the keychain", identity)
		}
		return output, fmt.Errorf("productbuild failed: %s: %w", output, err)
	}

	return output, nil
}
