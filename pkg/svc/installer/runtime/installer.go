// Package runtimeinstaller installs the Docker engine and compose plugin.
package runtimeinstaller

import (
	"context"
	"fmt"

	"github.com/devantler-tech/vmprep/pkg/svc/installer"
)

// PlanSource supplies the runtime install plan for the host.
type PlanSource interface {
	RuntimePlan() installer.Plan
}

// Installer runs the runtime plan of a platform.
type Installer struct {
	executor *installer.Executor
	source   PlanSource
	result   installer.Result
}

var _ installer.Installer = (*Installer)(nil)

// NewInstaller creates a new runtime installer.
func NewInstaller(executor *installer.Executor, source PlanSource) *Installer {
	return &Installer{executor: executor, source: source}
}

// Install runs the plan. Only a failed required step is returned; its error
// keeps the failing command's exit code.
func (i *Installer) Install(ctx context.Context) error {
	result, err := i.executor.Run(ctx, i.source.RuntimePlan())
	i.result = result

	if err != nil {
		return fmt.Errorf("failed to install docker: %w", err)
	}

	return nil
}

// Skipped lists the best-effort steps that failed during the last Install.
func (i *Installer) Skipped() []string {
	return i.result.Failed
}
