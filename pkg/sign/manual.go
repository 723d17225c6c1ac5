package sign

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/macpack/macpack/pkg/installer"
	"github.com/sirupsen/logrus"
)

// ManualSigner signs the components of a produced bundle individually
// instead of relying on one recursive automatic signing pass. Each
// codesign invocation is best-effort: its output is logged and a failure
// does not stop the remaining targets from being signed.
type ManualSigner struct {
	Logger *logrus.Logger

	AppPath string // the produced .app bundle
	PkgPath string // installer package output path

	Identity          string // application-signing identity
	InstallerIdentity string // installer-signing identity; empty skips the package step
	Entitlements      string // top-level entitlements file
	ChildEntitlements string // inherited entitlements for nested components

	// runCodesign is swapped out in tests to record invocation order.
	runCodesign func(identity, entitlements, target string, hardenedRuntime bool) (string, error)
}

// NewManualSigner returns a signer wired to the real codesign command.
func NewManualSigner(logger *logrus.Logger) *ManualSigner {
	return &ManualSigner{Logger: logger, runCodesign: RunCodesign}
}

// Run signs every fixed target inside the bundle, then the top-level
// executable, then the bundle itself, and finally builds the signed
// installer package when an installer identity is configured. Without an
// application identity it does nothing. The returned path is the produced
// installer package, empty when none was built.
func (s *ManualSigner) Run() (string, error) {
	if s.Identity == "" {
		return "", nil
	}

	appName := strings.TrimSuffix(filepath.Base(s.AppPath), ".app")

	for _, target := range Targets(appName) {
		s.sign(s.Identity, s.ChildEntitlements, filepath.Join(s.AppPath, filepath.FromSlash(target)))
	}

	// The top-level executable and the enclosing bundle go last; signing
	// the bundle first would invalidate every signature underneath it.
	s.sign(s.Identity, s.ChildEntitlements, filepath.Join(s.AppPath, "Contents", "MacOS", appName))
	s.sign(s.Identity, s.Entitlements, s.AppPath)

	if s.InstallerIdentity == "" {
		return "", nil
	}

	// Installer packages carry their own identity; re-sign the executable
	// and the whole bundle with inherited entitlements before wrapping.
	s.sign(s.Identity, s.ChildEntitlements, filepath.Join(s.AppPath, "Contents", "MacOS", appName))
	s.sign(s.Identity, s.ChildEntitlements, s.AppPath)

	out, err := installer.Build(s.AppPath, installer.DefaultInstallLocation, s.InstallerIdentity, s.PkgPath)
	if out != "" {
		s.Logger.Debug(out)
	}
	if err != nil {
		return "", fmt.Errorf("installer package build failed: %w", err)
	}

	return s.PkgPath, nil
}

// sign runs one codesign invocation, logging its output and any failure.
// Failures are reported, not fatal: later targets are still signed.
func (s *ManualSigner) sign(identity, entitlements, target string) {
	s.Logger.Infof("signing %s", target)

	out, err := s.runCodesign(identity, entitlements, target, false)
	if out != "" {
		s.Logger.Debug(out)
	}
	if err != nil {
		s.Logger.Errorf("codesign %s: %v", target, err)
	}
}
