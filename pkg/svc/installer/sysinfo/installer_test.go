package sysinfoinstaller_test

import (
	"context"
	"io"
	"testing"

	v1alpha1 "github.com/devantler-tech/vmprep/pkg/apis/host/v1alpha1"
	"github.com/devantler-tech/vmprep/pkg/cmd/runner"
	"github.com/devantler-tech/vmprep/pkg/cmd/runner/runnertest"
	"github.com/devantler-tech/vmprep/pkg/svc/installer"
	sysinfoinstaller "github.com/devantler-tech/vmprep/pkg/svc/installer/sysinfo"
	"github.com/devantler-tech/vmprep/pkg/utils/notify"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticPlan installer.Plan

func (p staticPlan) SysinfoPlan() installer.Plan { return installer.Plan(p) }

func TestInstall(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		recorder *runnertest.Recorder
		wantErr  bool
	}{
		{name: "installs", recorder: runnertest.New()},
		{name: "package missing", recorder: runnertest.New().FailOn("apk add", 1), wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			logger := logrus.New()
			logger.SetOutput(io.Discard)

			executor := installer.NewExecutor(tc.recorder, notify.NewPrinter(io.Discard, io.Discard), logger)
			inst := sysinfoinstaller.NewInstaller(executor, staticPlan{
				{
					Description: "install neofetch",
					Commands:    []runner.Command{runner.NewCommand("apk", "add", "neofetch", "curl")},
				},
			})

			err := inst.Install(context.Background())

			if tc.wantErr {
				require.ErrorIs(t, err, sysinfoinstaller.ErrInstallFailed)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, []string{"apk add neofetch curl"}, tc.recorder.Lines())
		})
	}
}

func TestRemediation(t *testing.T) {
	t.Parallel()

	assert.Contains(t, sysinfoinstaller.Remediation(v1alpha1.PackageManagerApk), "community")
	assert.Contains(t, sysinfoinstaller.Remediation(v1alpha1.PackageManagerDnf), "sudo dnf install -y epel-release")
	assert.Contains(t, sysinfoinstaller.Remediation(v1alpha1.PackageManagerYum), "sudo yum install -y neofetch")
	assert.Contains(t, sysinfoinstaller.Remediation(v1alpha1.PackageManagerApt), "apt-get install -y neofetch")
}
