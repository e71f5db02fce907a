package service

import (
	"context"
	"fmt"

	"github.com/coreos/go-systemd/v22/dbus"
	"github.com/coreos/go-systemd/v22/util"
	"github.com/devantler-tech/vmprep/pkg/cmd/runner"
	"github.com/sirupsen/logrus"
)

const startMode = "replace"

// UnitConn is the subset of the systemd D-Bus API used to enable and start units.
type UnitConn interface {
	EnableUnitFilesContext(ctx context.Context, files []string, runtime bool, force bool) (bool, []dbus.EnableUnitFileChange, error)
	ReloadContext(ctx context.Context) error
	StartUnitContext(ctx context.Context, name string, mode string, ch chan<- string) (int, error)
	Close()
}

// SystemdManager talks to systemd over D-Bus and falls back to systemctl
// when the bus is unavailable.
type SystemdManager struct {
	Connect func(ctx context.Context) (UnitConn, error)
	Booted  func() bool
	Runner  runner.CommandRunner
	Logger  logrus.FieldLogger
}

// NewSystemdManager returns a SystemdManager using the system bus.
func NewSystemdManager(cmdRunner runner.CommandRunner, logger logrus.FieldLogger) *SystemdManager {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &SystemdManager{
		Connect: func(ctx context.Context) (UnitConn, error) {
			return dbus.NewWithContext(ctx)
		},
		Booted: util.IsRunningSystemd,
		Runner: cmdRunner,
		Logger: logger,
	}
}

// EnableAndStart enables and starts the unit for name.
func (m *SystemdManager) EnableAndStart(ctx context.Context, name string) error {
	unit := unitName(name)
	log := m.Logger.WithField("unit", unit)

	if m.Booted() {
		err := m.enableAndStartOverBus(ctx, unit)
		if err == nil {
			return nil
		}

		log.WithError(err).Debug("systemd D-Bus call failed, falling back to systemctl")
	} else {
		log.Debug("host not booted with systemd, trying systemctl")
	}

	_, err := m.Runner.Run(ctx, runner.NewCommand("systemctl", "enable", "--now", name))
	if err != nil {
		return fmt.Errorf("enable %s: %w", unit, err)
	}

	return nil
}

func (m *SystemdManager) enableAndStartOverBus(ctx context.Context, unit string) error {
	conn, err := m.Connect(ctx)
	if err != nil {
		return fmt.Errorf("connect to systemd: %w", err)
	}

	defer conn.Close()

	_, _, err = conn.EnableUnitFilesContext(ctx, []string{unit}, false, true)
	if err != nil {
		return fmt.Errorf("enable %s: %w", unit, err)
	}

	err = conn.ReloadContext(ctx)
	if err != nil {
		return fmt.Errorf("reload systemd: %w", err)
	}

	done := make(chan string, 1)

	_, err = conn.StartUnitContext(ctx, unit, startMode, done)
	if err != nil {
		return fmt.Errorf("start %s: %w", unit, err)
	}

	select {
	case result := <-done:
		if result != "done" {
			return fmt.Errorf("%w: %s job finished with %q", ErrUnitStart, unit, result)
		}

		return nil
	case <-ctx.Done():
		return fmt.Errorf("start %s: %w", unit, ctx.Err())
	}
}
