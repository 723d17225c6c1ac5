package logging

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// BulletFormatter formats log entries in goreleaser-style hierarchical bullets.
//
// Entries with a "stage" field produce top-level bullets:
//
//	  * bundling application
//
// Info-level entries without "stage" produce sub-bullets:
//
//	    * signing Contents/MacOS/MyApp
//
// Warn-level entries produce warning sub-bullets:
//
//	    ! codesign exited non-zero
//
// Error-level entries produce error bullets:
//
//	  x bundling failed
//
// Remaining key-value fields are appended as key=value pairs.
type BulletFormatter struct{}

func (f *BulletFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var buf bytes.Buffer

	stage, hasStage := entry.Data["stage"]

	switch {
	case hasStage:
		fmt.Fprintf(&buf, "  * %s", stage)
		buf.WriteString(formatFields(entry.Data, "stage"))
	case entry.Level == logrus.ErrorLevel:
		fmt.Fprintf(&buf, "  x %s", entry.Message)
		buf.WriteString(formatFields(entry.Data))
	case entry.Level == logrus.WarnLevel:
		fmt.Fprintf(&buf, "    ! %s", entry.Message)
		buf.WriteString(formatFields(entry.Data))
	case entry.Level == logrus.InfoLevel:
		fmt.Fprintf(&buf, "    * %s", entry.Message)
		buf.WriteString(formatFields(entry.Data))
	default:
		// Debug output normally goes through the plain text formatter;
		// indent it if it arrives here anyway.
		fmt.Fprintf(&buf, "      %s", entry.Message)
	}

	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// formatFields returns a formatted string of key=value pairs, excluding
// the specified skip keys. Returns empty string if no fields remain.
func formatFields(fields logrus.Fields, skip ...string) string {
	skipSet := make(map[string]bool, len(skip))
	for _, s := range skip {
		skipSet[s] = true
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		if !skipSet[k] {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
	}

	return "  " + strings.Join(parts, " ")
}
