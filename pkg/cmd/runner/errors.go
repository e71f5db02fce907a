package runner

import (
	"errors"
	"fmt"
	"strings"
)

// ExitCodeNotFound is reported when the program could not be started.
const ExitCodeNotFound = 127

// ErrEmptyCommand is returned when a command has no program name.
var ErrEmptyCommand = errors.New("command has no program name")

// ExitError reports a command that did not exit cleanly.
type ExitError struct {
	Command string
	Code    int
	Stderr  string
	Err     error
}

func (e *ExitError) Error() string {
	detail := lastLine(e.Stderr)
	if detail == "" && e.Err != nil {
		detail = e.Err.Error()
	}

	if detail == "" {
		return fmt.Sprintf("command %q exited with code %d", e.Command, e.Code)
	}

	return fmt.Sprintf("command %q exited with code %d: %s", e.Command, e.Code, detail)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit code of the failed command.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// ExitCodeOf returns the exit code carried by err, or 1 when err carries none.
// A nil error yields 0.
func ExitCodeOf(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Code != 0 {
		return exitErr.Code
	}

	return 1
}

func lastLine(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")

	return strings.TrimSpace(lines[len(lines)-1])
}
