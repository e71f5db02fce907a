package service

import (
	"context"
	"fmt"

	v1alpha1 "github.com/devantler-tech/vmprep/pkg/apis/host/v1alpha1"
	"github.com/devantler-tech/vmprep/pkg/cmd/runner"
	"github.com/devantler-tech/vmprep/pkg/utils/notify"
	"github.com/sirupsen/logrus"
)

// DockerService is the service name of the Docker daemon on every supported family.
const DockerService = "docker"

// Managers selects a Manager by init system.
type Managers map[v1alpha1.InitSystem]Manager

// Target is the per-family information the activator needs.
type Target interface {
	InitSystem() v1alpha1.InitSystem
	GroupAddCommand(user string) runner.Command
}

// Report records what activation did. Every failure in it was already
// reported to the user and does not fail the run.
type Report struct {
	ServiceErr   error
	GroupSkipped bool
	GroupErr     error
}

// Activator enables the Docker service and adds the user to the docker group.
type Activator struct {
	managers Managers
	runner   runner.CommandRunner
	printer  *notify.Printer
	logger   logrus.FieldLogger
}

// NewActivator returns an Activator.
func NewActivator(managers Managers, cmdRunner runner.CommandRunner, printer *notify.Printer, logger logrus.FieldLogger) *Activator {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Activator{managers: managers, runner: cmdRunner, printer: printer, logger: logger}
}

// Activate never fails; problems are printed as warnings and returned in the Report.
func (a *Activator) Activate(ctx context.Context, target Target, invocation v1alpha1.InvocationContext) Report {
	var report Report

	report.ServiceErr = a.startService(ctx, target.InitSystem())
	if report.ServiceErr != nil {
		a.printer.Warning("could not enable the %s service: %v", DockerService, report.ServiceErr)
	} else {
		a.printer.Success("%s service enabled and started", DockerService)
	}

	if invocation.IsRoot {
		report.GroupSkipped = true
		a.printer.Info("running as root, which already has docker access; skipping group membership")

		return report
	}

	cmd := target.GroupAddCommand(invocation.ActualUser)

	_, report.GroupErr = a.runner.Run(ctx, cmd)
	if report.GroupErr != nil {
		a.logger.WithError(report.GroupErr).WithField("command", cmd.String()).Debug("group add failed")
		a.printer.Warning("could not add %s to the docker group: %v", invocation.ActualUser, report.GroupErr)
	} else {
		a.printer.Success("added %s to the docker group", invocation.ActualUser)
	}

	a.printer.Info("group membership applies to new login sessions; log out and back in or run 'newgrp docker'")

	return report
}

func (a *Activator) startService(ctx context.Context, initSystem v1alpha1.InitSystem) error {
	manager, ok := a.managers[initSystem]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoManager, initSystem)
	}

	return manager.EnableAndStart(ctx, DockerService)
}
