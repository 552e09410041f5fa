// Package fileutil writes command output files.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// OwnerReadWrite is the file permission mode for documents written by the
// CLI, which may hold configuration secrets (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// RejectSymlink returns an error if path is an existing symlink.
func RejectSymlink(path string) error {
	info, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("fileutil: checking output path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("fileutil: refusing to write to symlink: %s", path)
	}
	return nil
}

// WriteOwnerOnly writes data to the cleaned path with OwnerReadWrite
// permissions, refusing to follow a symlink at that path.
func WriteOwnerOnly(path string, data []byte) error {
	cleaned := filepath.Clean(path)
	if err := RejectSymlink(cleaned); err != nil {
		return err
	}
	if err := os.WriteFile(cleaned, data, OwnerReadWrite); err != nil {
		return fmt.Errorf("fileutil: writing %s: %w", cleaned, err)
	}
	return nil
}
