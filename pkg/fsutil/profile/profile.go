// Package profile appends the vmprep login banner to a shell profile.
package profile

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/devantler-tech/vmprep/pkg/fsutil"
)

const (
	// BeginMarker opens the managed block. Its presence means the file is patched.
	BeginMarker = "# >>> vmprep login banner >>>"
	// EndMarker closes the managed block.
	EndMarker = "# <<< vmprep login banner <<<"

	banner = `neofetch
echo "Public IP: $(curl -fsS --max-time 5 https://ifconfig.me || echo unavailable)"
`
)

// ErrEmptyPath is returned when no profile path is given.
var ErrEmptyPath = errors.New("profile path cannot be empty")

// Result reports what Patch did.
type Result struct {
	Path           string
	AlreadyPatched bool
	Created        bool
}

// Block returns the managed block, including both markers.
func Block() string {
	return BeginMarker + "\n" + banner + EndMarker + "\n"
}

// Patch appends the login banner block to path unless the begin marker is
// already present. A missing file is created and handed to owner.
func Patch(path string, owner *fsutil.Owner) (Result, error) {
	if path == "" {
		return Result{}, ErrEmptyPath
	}

	path = filepath.Clean(path)
	result := Result{Path: path}

	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		result.Created = true
	default:
		return result, fmt.Errorf("failed to read profile %s: %w", path, err)
	}

	if bytes.Contains(existing, []byte(BeginMarker)) {
		result.AlreadyPatched = true

		return result, nil
	}

	err = appendBlock(path, existing)
	if err != nil {
		return result, err
	}

	if result.Created {
		err = owner.Chown(path)
		if err != nil {
			return result, err
		}
	}

	return result, nil
}

func appendBlock(path string, existing []byte) error {
	var buf bytes.Buffer

	if len(existing) > 0 && !bytes.HasSuffix(existing, []byte("\n")) {
		buf.WriteByte('\n')
	}

	buf.WriteByte('\n')
	buf.WriteString(Block())

	//nolint:gosec // G304: path is the user's own shell profile.
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, fsutil.FilePermPublic)
	if err != nil {
		return fmt.Errorf("failed to open profile %s: %w", path, err)
	}

	_, err = file.Write(buf.Bytes())
	if err != nil {
		_ = file.Close()

		return fmt.Errorf("failed to append to profile %s: %w", path, err)
	}

	err = file.Close()
	if err != nil {
		return fmt.Errorf("failed to close profile %s: %w", path, err)
	}

	return nil
}
