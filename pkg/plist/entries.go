// Package plist loads the extra Info.plist entries merged into the
// produced bundle's metadata and writes them out as a property list the
// bundler consumes through its extend-info option.
package plist

import (
	"encoding/json"
	"fmt"
	"os"

	hplist "howett.net/plist"
)

// Export-compliance keys injected when a compliance code is configured.
const (
	UsesNonExemptEncryptionKey    = "ITSAppUsesNonExemptEncryption"
	EncryptionComplianceCodeKey   = "ITSEncryptionExportComplianceCode"
)

// Entries maps Info.plist keys to values.
type Entries map[string]any

// LoadEntries reads the JSON template at path. When complianceCode is
// non-empty the two export-compliance keys are injected; otherwise
// neither key is present.
func LoadEntries(path, complianceCode string) (Entries, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plist entries: %w", err)
	}

	var entries Entries
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse plist entries %s: %w", path, err)
	}
	if entries == nil {
		entries = Entries{}
	}

	if complianceCode != "" {
		entries[UsesNonExemptEncryptionKey] = true
		entries[EncryptionComplianceCodeKey] = complianceCode
	}

	return entries, nil
}

// WriteFile serializes the entries as an XML property list.
func (e Entries) WriteFile(path string) error {
	data, err := hplist.MarshalIndent(e, hplist.XMLFormat, "\t")
	if err != nil {
		return fmt.Errorf("failed to marshal plist entries: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write plist entries: %w", err)
	}
	return nil
}
