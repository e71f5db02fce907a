// Package runner executes host commands and reports their output and exit status.
package runner

import (
	"context"
	"strings"
)

// Command is a single program invocation.
type Command struct {
	Name string
	Args []string
	// Env entries (KEY=value) are appended to the process environment.
	Env []string
	// Description is shown next to the spinner while the command runs.
	Description string
}

// NewCommand returns a Command for name with args.
func NewCommand(name string, args ...string) Command {
	return Command{Name: name, Args: args}
}

// WithEnv returns a copy of c with env appended.
func (c Command) WithEnv(env ...string) Command {
	c.Env = append(append([]string{}, c.Env...), env...)

	return c
}

// String renders the command line, quoting arguments that contain whitespace.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Name)

	for _, arg := range c.Args {
		if arg == "" || strings.ContainsAny(arg, " \t\n\"'") {
			parts = append(parts, quote(arg))

			continue
		}

		parts = append(parts, arg)
	}

	return strings.Join(parts, " ")
}

func quote(arg string) string {
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}

// CommandResult holds the captured output of a finished command.
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// CommandRunner runs commands on the host.
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) (CommandResult, error)
}
