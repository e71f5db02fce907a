package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/devantler-tech/vmprep/pkg/cmd/runner"
)

// OpenRCManager enables services in the default runlevel with rc-update.
type OpenRCManager struct {
	Runner runner.CommandRunner
}

// NewOpenRCManager returns an OpenRCManager.
func NewOpenRCManager(cmdRunner runner.CommandRunner) *OpenRCManager {
	return &OpenRCManager{Runner: cmdRunner}
}

// EnableAndStart adds name to the default runlevel and starts it. Both
// commands run even if the first fails.
func (m *OpenRCManager) EnableAndStart(ctx context.Context, name string) error {
	var errs []error

	_, err := m.Runner.Run(ctx, runner.NewCommand("rc-update", "add", name, "default"))
	if err != nil {
		errs = append(errs, fmt.Errorf("add %s to default runlevel: %w", name, err))
	}

	_, err = m.Runner.Run(ctx, runner.NewCommand("rc-service", name, "start"))
	if err != nil {
		errs = append(errs, fmt.Errorf("start %s: %w", name, err))
	}

	return errors.Join(errs...)
}
