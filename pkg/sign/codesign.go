package sign

import (
	"fmt"
	"os/exec"
	"strings"
)

// RunCodesign signs the file or bundle at targetPath with the given
// identity using --force. An entitlements file is attached when
// entitlementsPath is non-empty, and --options runtime is included when
// hardenedRuntime is true (required for notarization). Returns combined
// output and any error.
func RunCodesign(identity, entitlementsPath, targetPath string, hardenedRuntime bool) (string, error) {
	if _, err := exec.LookPath("codesign"); err != nil {
		return "", fmt.Errorf("codesign not found — install Xcode Command Line Tools with: xcode-select --install")
	}

	args := []string{"--force"}
	if entitlementsPath != "" {
		args = append(args, "--entitlements", entitlementsPath)
	}
	if hardenedRuntime {
		args = append(args, "--options", "runtime")
	}
	args = append(args, "--sign", identity, targetPath)
	cmd := exec.Command("codesign", args...)

	out, err := cmd.CombinedOutput()
	output := string(out)

	if err != nil {
		if strings.Contains(output, "resource fork, Finder information, or similar detritus") {
			return output, fmt.Errorf("codesign failed due to extended attributes — remove them with: xattr -cr %s", targetPath)
		}
		return output, fmt.Errorf("codesign failed: %s: %w", output, err)
	}

	return output, nil
}

// RunVerify verifies the code signature of the bundle at appPath
// using --deep --strict flags. Returns combined output and any error.
func RunVerify(appPath string) (string, error) {
	if _, err := exec.LookPath("codesign"); err != nil {
		return "", fmt.Errorf("codesign not found — install Xcode Command Line Tools with: xcode-select --install")
	}

	cmd := exec.Command("codesign", "--verify", "--deep", "--strict", appPath)

	out, err := cmd.CombinedOutput()
	output := string(out)

	if err != nil {
		return output, fmt.Errorf("signature verification failed for %s: %s: %w", appPath, output, err)
	}

	return output, nil
}
