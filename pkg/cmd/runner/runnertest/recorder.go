// Package runnertest provides a CommandRunner that records commands instead of running them.
package runnertest

import (
	"context"
	"strings"
	"sync"

	"github.com/devantler-tech/vmprep/pkg/cmd/runner"
)

type failure struct {
	prefix string
	code   int
	stderr string
}

type response struct {
	prefix string
	stdout string
}

// Recorder is a fake runner.CommandRunner. Every command succeeds unless it
// matches a prefix registered with FailOn.
type Recorder struct {
	mu        sync.Mutex
	commands  []runner.Command
	failures  []failure
	responses []response
}

// New returns an empty Recorder.
func New() *Recorder {
	return &Recorder{}
}

// FailOn makes commands whose rendered line starts with prefix exit with code.
func (r *Recorder) FailOn(prefix string, code int) *Recorder {
	return r.FailOnWithStderr(prefix, code, "")
}

// FailOnWithStderr is FailOn with captured stderr.
func (r *Recorder) FailOnWithStderr(prefix string, code int, stderr string) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.failures = append(r.failures, failure{prefix: prefix, code: code, stderr: stderr})

	return r
}

// Respond makes commands starting with prefix print stdout.
func (r *Recorder) Respond(prefix, stdout string) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.responses = append(r.responses, response{prefix: prefix, stdout: stdout})

	return r
}

// Run implements runner.CommandRunner.
func (r *Recorder) Run(ctx context.Context, cmd runner.Command) (runner.CommandResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return runner.CommandResult{}, err
	}

	r.commands = append(r.commands, cmd)
	line := cmd.String()

	var result runner.CommandResult

	for _, resp := range r.responses {
		if strings.HasPrefix(line, resp.prefix) {
			result.Stdout = resp.stdout
		}
	}

	for _, fail := range r.failures {
		if strings.HasPrefix(line, fail.prefix) {
			result.ExitCode = fail.code
			result.Stderr = fail.stderr

			return result, &runner.ExitError{Command: line, Code: fail.code, Stderr: fail.stderr}
		}
	}

	return result, nil
}

// Commands returns the recorded commands in order.
func (r *Recorder) Commands() []runner.Command {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]runner.Command(nil), r.commands...)
}

// Lines returns the recorded commands rendered with runner.Command.String.
func (r *Recorder) Lines() []string {
	commands := r.Commands()
	lines := make([]string, 0, len(commands))

	for _, cmd := range commands {
		lines = append(lines, cmd.String())
	}

	return lines
}
