package sign

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// recordingSigner returns a ManualSigner whose codesign invocations are
// recorded instead of executed. failOn marks targets whose invocation
// reports a non-zero exit.
func recordingSigner(appPath string, calls *[]string, failOn map[string]bool) *ManualSigner {
	s := NewManualSigner(quietLogger())
	s.AppPath = appPath
	s.runCodesign = func(identity, entitlements, target string, hardenedRuntime bool) (string, error) {
		*calls = append(*calls, target)
		if failOn[target] {
			return "error output", fmt.Errorf("codesign failed: exit status 1")
		}
		return "signed", nil
	}
	return s
}

func TestManualSignerSignsBundleLast(t *testing.T) {
	appPath := filepath.Join("dist", "MyApp-darwin-universal", "MyApp.app")
	var calls []string
	s := recordingSigner(appPath, &calls, nil)
	s.Identity = "3rd Party Mac Developer Application: Example"

	pkgPath, err := s.Run()
	require.NoError(t, err)
	assert.Empty(t, pkgPath, "no installer identity, no package")

	require.NotEmpty(t, calls)
	assert.Equal(t, appPath, calls[len(calls)-1], "the .app bundle is signed last")
	assert.Equal(t, filepath.Join(appPath, "Contents", "MacOS", "MyApp"), calls[len(calls)-2],
		"the top-level executable is signed immediately before the bundle")

	// Every nested helper executable is signed strictly before its
	// containing .app, and every helper .app before the top-level bundle.
	position := make(map[string]int, len(calls))
	for i, call := range calls {
		position[call] = i
	}
	for _, call := range calls[:len(calls)-1] {
		if strings.HasSuffix(call, ".app") {
			nested := filepath.Join(call, "Contents", "MacOS", strings.TrimSuffix(filepath.Base(call), ".app"))
			if p, ok := position[nested]; ok {
				assert.Less(t, p, position[call], "%s before %s", nested, call)
			}
			assert.Less(t, position[call], position[appPath])
		}
	}
}

func TestManualSignerContinuesPastFailures(t *testing.T) {
	appPath := filepath.Join("dist", "MyApp-darwin-universal", "MyApp.app")

	failing := filepath.Join(appPath, "Contents", "Frameworks", "MyApp Helper.app")
	var calls []string
	s := recordingSigner(appPath, &calls, map[string]bool{failing: true})
	s.Identity = "Cert A"

	_, err := s.Run()
	require.NoError(t, err, "per-target failures are logged, not returned")

	// Everything after the failed target is still attempted.
	expected := len(Targets("MyApp")) + 2 // fixed list + executable + bundle
	assert.Len(t, calls, expected)
	assert.Equal(t, appPath, calls[len(calls)-1])
}

func TestManualSignerNoIdentityNoSideEffect(t *testing.T) {
	var calls []string
	s := recordingSigner("dist/MyApp.app", &calls, nil)
	s.Identity = ""

	pkgPath, err := s.Run()
	require.NoError(t, err)
	assert.Empty(t, pkgPath)
	assert.Empty(t, calls, "no identity configured means no codesign invocations")
}

func TestManualSignerEntitlementsSelection(t *testing.T) {
	appPath := filepath.Join("dist", "MyApp-darwin-universal", "MyApp.app")

	type call struct{ entitlements, target string }
	var calls []call
	s := NewManualSigner(quietLogger())
	s.AppPath = appPath
	s.Identity = "Cert A"
	s.Entitlements = "build/entitlements.mas.plist"
	s.ChildEntitlements = "build/entitlements.mas.inherit.plist"
	s.runCodesign = func(identity, entitlements, target string, hardenedRuntime bool) (string, error) {
		calls = append(calls, call{entitlements, target})
		return "", nil
	}

	_, err := s.Run()
	require.NoError(t, err)

	for _, c := range calls {
		if c.target == appPath {
			assert.Equal(t, s.Entitlements, c.entitlements, "the bundle gets the parent entitlements")
		} else {
			assert.Equal(t, s.ChildEntitlements, c.entitlements, "nested components get inherited entitlements")
		}
	}
}

func TestParseIdentityOutput(t *testing.T) {
	output := `Policy: Code Signing
  Matching identities
  1) ABCDEF0123456789ABCDEF0123456789ABCDEF01 "3rd Party Mac Developer Application: Example (TEAM123)"
  2) 0123456789ABCDEF0123456789ABCDEF01234567 "Developer ID Application: Example (TEAM123)"
     2 identities found
`
	identities := ParseIdentityOutput(output)
	require.Len(t, identities, 2)
	assert.Equal(t, "3rd Party Mac Developer Application: Example (TEAM123)", identities[0])
	assert.Equal(t, "Developer ID Application: Example (TEAM123)", identities[1])
}

func TestValidateIdentity(t *testing.T) {
	available := []string{"Cert A", "Cert B"}

	assert.NoError(t, ValidateIdentity("Cert A", available))

	err := ValidateIdentity("Cert C", available)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cert A")
	assert.Contains(t, err.Error(), "find-identity")

	err = ValidateIdentity("Cert C", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no valid signing identities")
}
