package errorhandler

import (
	"errors"
	"fmt"

	"github.com/devantler-tech/vmprep/pkg/cmd/runner"
	"github.com/spf13/cobra"
)

// ErrUsage marks failures caused by how the command was invoked, such as an
// unknown flag, a bad flag value or too many arguments.
var ErrUsage = errors.New("invalid usage")

// Executor runs a cobra command and turns its failure into a single
// *CommandError. Cobra's own "Error:" line is silenced; the caller prints the
// returned error once.
type Executor struct{}

// NewExecutor constructs an Executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// Execute runs cmd. Flag and argument errors are tagged with ErrUsage and
// carry a pointer to --help.
func (e *Executor) Execute(cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	cmd.SilenceErrors = true
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return usageError(c, err)
	})

	if validate := cmd.Args; validate != nil {
		cmd.Args = func(c *cobra.Command, args []string) error {
			err := validate(c, args)
			if err != nil {
				return usageError(c, err)
			}

			return nil
		}
	}

	err := cmd.Execute()
	if err == nil {
		return nil
	}

	var commandErr *CommandError
	if errors.As(err, &commandErr) {
		return commandErr
	}

	return &CommandError{cause: err}
}

func usageError(cmd *cobra.Command, err error) error {
	return &CommandError{
		cause: fmt.Errorf("%w: %w", ErrUsage, err),
		hint:  fmt.Sprintf("run '%s --help' for usage", cmd.CommandPath()),
	}
}

// CommandError is a failed command run with an optional hint for the operator.
type CommandError struct {
	cause error
	hint  string
}

// Error returns the cause's message, followed by the hint on its own line.
func (e *CommandError) Error() string {
	if e == nil || e.cause == nil {
		return ""
	}

	if e.hint == "" {
		return e.cause.Error()
	}

	return e.cause.Error() + "\n" + e.hint
}

// Unwrap exposes the cause for errors.Is and errors.As.
func (e *CommandError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// Usage reports whether the failure came from flag or argument validation.
func (e *CommandError) Usage() bool {
	return errors.Is(e, ErrUsage)
}

// ExitCode returns the process exit status for the failure.
func (e *CommandError) ExitCode() int {
	if e == nil {
		return 0
	}

	if e.cause == nil {
		return 1
	}

	return ExitCode(e.cause)
}

// ExitCode maps err to a process exit status. Nil is 0, a failed external
// command keeps its own code and every other error is 1.
func ExitCode(err error) int {
	return runner.ExitCodeOf(err)
}
