package generator

import (
	"fmt"

	"github.com/devantler-tech/vmprep/pkg/fsutil"
)

// Generator is implemented by the file generators. The Options type parameter
// allows each implementation to define its own options structure.
type Generator[T any, Options any] interface {
	Generate(model T, opts Options) (string, error)
}

// Options controls where generated content is written.
type Options struct {
	// Output is the target file. Content is only returned when empty.
	Output string
	// Owner receives the written file and any directories created for it.
	Owner *fsutil.Owner
}

// Write stores content at opts.Output, replacing any existing file. It is a
// no-op when no output is set.
func Write(content string, opts Options) error {
	if opts.Output == "" {
		return nil
	}

	err := fsutil.WriteFile(opts.Output, []byte(content), fsutil.FilePermPublic, opts.Owner)
	if err != nil {
		return fmt.Errorf("write %s: %w", opts.Output, err)
	}

	return nil
}
