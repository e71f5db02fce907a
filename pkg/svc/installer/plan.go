package installer

import (
	"context"
	"errors"
	"fmt"

	"github.com/devantler-tech/vmprep/pkg/cmd/runner"
	"github.com/devantler-tech/vmprep/pkg/utils/notify"
	"github.com/sirupsen/logrus"
)

// ErrRequiredStep wraps the failure of a step whose policy is Required.
var ErrRequiredStep = errors.New("required step failed")

// errEmptyStep is returned for a step with neither commands nor an action.
var errEmptyStep = errors.New("step has nothing to run")

// Policy decides what a step failure does to the rest of the plan.
type Policy int

const (
	// Required aborts the plan on failure.
	Required Policy = iota
	// BestEffort reports the failure and continues.
	BestEffort
)

// Step is one unit of a plan. Commands are alternatives: they are tried in
// order until one succeeds. Action runs instead of Commands when set.
type Step struct {
	Description string
	Commands    []runner.Command
	Action      func(ctx context.Context) error
	Policy      Policy
}

// Plan is an ordered list of steps.
type Plan []Step

// Result lists the best-effort steps that failed.
type Result struct {
	Failed []string
}

// Executor runs plans through a command runner.
type Executor struct {
	runner  runner.CommandRunner
	printer *notify.Printer
	logger  logrus.FieldLogger
}

// NewExecutor returns an Executor. A nil logger uses the logrus standard logger.
func NewExecutor(cmdRunner runner.CommandRunner, printer *notify.Printer, logger logrus.FieldLogger) *Executor {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Executor{runner: cmdRunner, printer: printer, logger: logger}
}

// Run executes plan in order. It stops at the first failed Required step and
// returns an error wrapping both ErrRequiredStep and the step's cause, so
// runner.ExitCodeOf still sees the command's exit code.
func (e *Executor) Run(ctx context.Context, plan Plan) (Result, error) {
	var result Result

	for _, step := range plan {
		e.printer.Activity("%s", step.Description)

		err := e.runStep(ctx, step)
		if err == nil {
			continue
		}

		if step.Policy == Required {
			return result, fmt.Errorf("%w: %s: %w", ErrRequiredStep, step.Description, err)
		}

		e.logger.WithError(err).WithField("step", step.Description).Debug("best-effort step failed")
		e.printer.Warning("%s failed, continuing: %v", step.Description, err)

		result.Failed = append(result.Failed, step.Description)
	}

	return result, nil
}

func (e *Executor) runStep(ctx context.Context, step Step) error {
	if step.Action != nil {
		return step.Action(ctx)
	}

	if len(step.Commands) == 0 {
		return errEmptyStep
	}

	var lastErr error

	for _, cmd := range step.Commands {
		if cmd.Description == "" {
			cmd.Description = step.Description
		}

		_, err := e.runner.Run(ctx, cmd)
		if err == nil {
			return nil
		}

		if ctx.Err() != nil {
			return err
		}

		lastErr = err
	}

	return lastErr
}
