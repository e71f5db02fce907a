package fsutil

import (
	"fmt"
	"os/user"
	"path/filepath"
	"strings"
)

// HasHomePrefix reports whether path starts with ~ or ~/.
func HasHomePrefix(path string) bool {
	return path == "~" || strings.HasPrefix(path, "~/")
}

// ExpandHomePath expands a leading ~/ against home and makes the result
// absolute. An empty home means the current user's home.
func ExpandHomePath(path, home string) (string, error) {
	if HasHomePrefix(path) {
		if home == "" {
			usr, err := user.Current()
			if err != nil {
				return "", fmt.Errorf("failed to get current user: %w", err)
			}

			home = usr.HomeDir
		}

		path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to convert to absolute path: %w", err)
		}

		return absPath, nil
	}

	return path, nil
}

// ShortenHomePath replaces a leading home with ~ for display.
func ShortenHomePath(path, home string) string {
	if home == "" || home == "/" {
		return path
	}

	home = filepath.Clean(home)
	path = filepath.Clean(path)

	if path == home {
		return "~"
	}

	if rest, ok := strings.CutPrefix(path, home+string(filepath.Separator)); ok {
		return "~/" + rest
	}

	return path
}
