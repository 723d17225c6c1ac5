// Package backup snapshots a set of files before a mutation window and
// writes them back verbatim afterwards. Restore is best-effort per file:
// one file failing to restore never prevents the others from being
// attempted. A handle restores at most once.
package backup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

type snapshot struct {
	path string
	data []byte
	mode fs.FileMode
}

// Backup holds the captured content of a set of files.
type Backup struct {
	snapshots []snapshot
	restored  bool
}

// Take captures the current content and permissions of every listed file.
// Any unreadable path fails the whole call; nothing is captured partially.
func Take(paths []string) (*Backup, error) {
	snapshots := make([]snapshot, 0, len(paths))

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to back up %s: %w", path, err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to back up %s: %w", path, err)
		}
		snapshots = append(snapshots, snapshot{path: path, data: data, mode: info.Mode().Perm()})
	}

	return &Backup{snapshots: snapshots}, nil
}

// Paths returns the backed-up file paths in capture order.
func (b *Backup) Paths() []string {
	paths := make([]string, len(b.snapshots))
	for i, s := range b.snapshots {
		paths[i] = s.path
	}
	return paths
}

// Restore writes every captured file back byte for byte. Every file is
// attempted regardless of earlier failures; the failures are aggregated
// into the returned error. A second Restore on the same handle is a no-op.
func (b *Backup) Restore() error {
	if b.restored {
		return nil
	}
	b.restored = true

	var errs []error
	for _, s := range b.snapshots {
		if err := os.WriteFile(s.path, s.data, s.mode); err != nil {
			errs = append(errs, fmt.Errorf("failed to restore %s: %w", s.path, err))
		}
	}

	return errors.Join(errs...)
}
