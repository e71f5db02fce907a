package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/briandowns/spinner"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

const spinnerDelay = 100 * time.Millisecond

// ExecRunner runs commands with os/exec.
//
// Output is always captured. With streaming enabled it is also copied to the
// configured writers as it is produced; otherwise a spinner is drawn on the
// error writer when that writer is a terminal.
type ExecRunner struct {
	stdout  io.Writer
	stderr  io.Writer
	stream  bool
	spinner bool
	logger  logrus.FieldLogger
}

// ExecOption configures an ExecRunner.
type ExecOption func(*ExecRunner)

// WithWriters sets where streamed output and the spinner are written.
func WithWriters(stdout, stderr io.Writer) ExecOption {
	return func(r *ExecRunner) {
		r.stdout = stdout
		r.stderr = stderr
		r.spinner = isTerminal(stderr)
	}
}

// WithStreaming copies command output to the writers while it runs.
func WithStreaming(stream bool) ExecOption {
	return func(r *ExecRunner) {
		r.stream = stream
	}
}

// WithSpinner forces the spinner on or off.
func WithSpinner(enabled bool) ExecOption {
	return func(r *ExecRunner) {
		r.spinner = enabled
	}
}

// WithLogger sets the logger used for command traces.
func WithLogger(logger logrus.FieldLogger) ExecOption {
	return func(r *ExecRunner) {
		r.logger = logger
	}
}

// NewExecRunner returns an ExecRunner writing to os.Stdout and os.Stderr.
func NewExecRunner(opts ...ExecOption) *ExecRunner {
	runner := &ExecRunner{
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		spinner: isTerminal(os.Stderr),
		logger:  logrus.StandardLogger(),
	}

	for _, opt := range opts {
		opt(runner)
	}

	return runner
}

// Run executes cmd and waits for it to finish. A non-zero exit or a failure
// to start is returned as *ExitError alongside the captured output.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (CommandResult, error) {
	if cmd.Name == "" {
		return CommandResult{}, ErrEmptyCommand
	}

	line := cmd.String()
	log := r.logger.WithField("command", line)
	log.Debug("running command")

	//nolint:gosec // commands are assembled from fixed templates, not user input
	process := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	if len(cmd.Env) > 0 {
		process.Env = append(os.Environ(), cmd.Env...)
	}

	var outBuf, errBuf bytes.Buffer

	process.Stdout = &outBuf
	process.Stderr = &errBuf

	if r.stream {
		process.Stdout = io.MultiWriter(&outBuf, r.stdout)
		process.Stderr = io.MultiWriter(&errBuf, r.stderr)
	} else if r.spinner {
		stop := r.startSpinner(cmd)
		defer stop()
	}

	started := time.Now()
	err := process.Run()

	result := CommandResult{Stdout: outBuf.String(), Stderr: errBuf.String()}
	if err == nil {
		log.WithField("elapsed", time.Since(started)).Debug("command finished")

		return result, nil
	}

	result.ExitCode = exitCode(err)
	log.WithFields(logrus.Fields{
		"code":   result.ExitCode,
		"stderr": result.Stderr,
	}).Debug("command failed")

	return result, &ExitError{
		Command: line,
		Code:    result.ExitCode,
		Stderr:  result.Stderr,
		Err:     fmt.Errorf("run %s: %w", cmd.Name, err),
	}
}

func (r *ExecRunner) startSpinner(cmd Command) func() {
	description := cmd.Description
	if description == "" {
		description = cmd.String()
	}

	spin := spinner.New(spinner.CharSets[14], spinnerDelay, spinner.WithWriter(r.stderr))
	spin.Suffix = " " + description
	spin.Start()

	return spin.Stop
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code > 0 {
			return code
		}

		return 1
	}

	var execErr *exec.Error
	if errors.As(err, &execErr) || errors.Is(err, os.ErrNotExist) {
		return ExitCodeNotFound
	}

	return 1
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(file.Fd()))
}
