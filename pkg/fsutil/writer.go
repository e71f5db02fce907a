package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	// DirPermPublic is used for directories other users or containers must traverse.
	DirPermPublic fs.FileMode = 0o755
	// FilePermPublic is used for files other users or containers must read.
	FilePermPublic fs.FileMode = 0o644
)

// WriteFile replaces output with data using perm, creating parent
// directories. The file and any created directories are chowned to owner.
func WriteFile(output string, data []byte, perm fs.FileMode, owner *Owner) error {
	if output == "" {
		return ErrEmptyOutputPath
	}

	output = filepath.Clean(output)

	err := MkdirAll(filepath.Dir(output), DirPermPublic, owner)
	if err != nil {
		return err
	}

	err = os.WriteFile(output, data, perm)
	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", output, err)
	}

	// os.WriteFile keeps the mode of an existing file.
	err = os.Chmod(output, perm)
	if err != nil {
		return fmt.Errorf("failed to set mode on %s: %w", output, err)
	}

	return owner.Chown(output)
}
