// Package sysinfoinstaller installs the neofetch system-info tool.
package sysinfoinstaller

import (
	"context"
	"errors"
	"fmt"

	v1alpha1 "github.com/devantler-tech/vmprep/pkg/apis/host/v1alpha1"
	"github.com/devantler-tech/vmprep/pkg/svc/installer"
)

// ErrInstallFailed is returned when neofetch could not be installed.
var ErrInstallFailed = errors.New("failed to install neofetch")

// PlanSource supplies the sysinfo install plan for the host.
type PlanSource interface {
	SysinfoPlan() installer.Plan
}

// Installer runs the sysinfo plan of a platform.
type Installer struct {
	executor *installer.Executor
	source   PlanSource
}

var _ installer.Installer = (*Installer)(nil)

// NewInstaller creates a new sysinfo installer.
func NewInstaller(executor *installer.Executor, source PlanSource) *Installer {
	return &Installer{executor: executor, source: source}
}

// Install runs the plan.
func (i *Installer) Install(ctx context.Context) error {
	_, err := i.executor.Run(ctx, i.source.SysinfoPlan())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInstallFailed, err)
	}

	return nil
}

// Remediation returns the manual steps for installing neofetch with pm.
func Remediation(pm v1alpha1.PackageManager) string {
	switch pm {
	case v1alpha1.PackageManagerApt:
		return "enable the universe repository if your release needs it, then run: sudo apt-get install -y neofetch"
	case v1alpha1.PackageManagerDnf, v1alpha1.PackageManagerYum:
		return fmt.Sprintf("enable the EPEL repository (sudo %[1]s install -y epel-release), then run: sudo %[1]s install -y neofetch", pm)
	case v1alpha1.PackageManagerApk:
		return "enable the community repository in /etc/apk/repositories, then run: apk add neofetch"
	default:
		return "install neofetch with your package manager"
	}
}
