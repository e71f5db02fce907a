package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Owner is the uid/gid applied to created paths. A nil *Owner leaves
// ownership as the process created it.
type Owner struct {
	UID int
	GID int
}

// NewOwner returns an Owner, or nil when chown is not needed because the
// process already runs as the target user.
func NewOwner(uid, gid int, escalated bool) *Owner {
	if !escalated {
		return nil
	}

	return &Owner{UID: uid, GID: gid}
}

// Chown applies the owner to path. It is a no-op on a nil receiver.
func (o *Owner) Chown(path string) error {
	if o == nil {
		return nil
	}

	err := os.Lchown(path, o.UID, o.GID)
	if err != nil {
		return fmt.Errorf("failed to chown %s to %d:%d: %w", path, o.UID, o.GID, err)
	}

	return nil
}

// MkdirAll creates path and any missing parents, chowning every directory it
// created. Existing directories keep their owner.
func MkdirAll(path string, perm fs.FileMode, owner *Owner) error {
	path = filepath.Clean(path)

	var missing []string

	for dir := path; ; dir = filepath.Dir(dir) {
		_, err := os.Stat(dir)
		if err == nil {
			break
		}

		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to check directory %s: %w", dir, err)
		}

		missing = append(missing, dir)

		if filepath.Dir(dir) == dir {
			break
		}
	}

	err := os.MkdirAll(path, perm)
	if err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}

	for i := len(missing) - 1; i >= 0; i-- {
		err = owner.Chown(missing[i])
		if err != nil {
			return err
		}
	}

	return nil
}
