package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	v1alpha1 "github.com/devantler-tech/vmprep/pkg/apis/host/v1alpha1"
	"github.com/devantler-tech/vmprep/pkg/cmd/runner"
	"github.com/devantler-tech/vmprep/pkg/cmd/runner/runnertest"
	"github.com/devantler-tech/vmprep/pkg/svc/service"
	"github.com/devantler-tech/vmprep/pkg/utils/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTarget struct {
	initSystem v1alpha1.InitSystem
}

func (s stubTarget) InitSystem() v1alpha1.InitSystem { return s.initSystem }

func (s stubTarget) GroupAddCommand(user string) runner.Command {
	return runner.NewCommand("usermod", "-aG", "docker", user)
}

type stubManager struct {
	err   error
	calls []string
}

func (s *stubManager) EnableAndStart(_ context.Context, name string) error {
	s.calls = append(s.calls, name)

	return s.err
}

func newActivator(manager service.Manager, recorder *runnertest.Recorder) (*service.Activator, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer

	activator := service.NewActivator(
		service.Managers{v1alpha1.InitSystemSystemd: manager},
		recorder,
		notify.NewPrinter(&out, &errOut),
		quietLogger(),
	)

	return activator, &out, &errOut
}

func TestActivator_AddsUserToGroup(t *testing.T) {
	t.Parallel()

	manager := &stubManager{}
	recorder := runnertest.New()
	activator, out, _ := newActivator(manager, recorder)

	report := activator.Activate(
		context.Background(),
		stubTarget{initSystem: v1alpha1.InitSystemSystemd},
		v1alpha1.InvocationContext{ActualUser: "alice", HomeDir: "/home/alice"},
	)

	require.NoError(t, report.ServiceErr)
	require.NoError(t, report.GroupErr)
	assert.False(t, report.GroupSkipped)
	assert.Equal(t, []string{"docker"}, manager.calls)
	assert.Equal(t, []string{"usermod -aG docker alice"}, recorder.Lines())
	assert.Contains(t, out.String(), "added alice to the docker group")
	assert.Contains(t, out.String(), "newgrp docker")
}

func TestActivator_RootIssuesNoGroupCommand(t *testing.T) {
	t.Parallel()

	recorder := runnertest.New()
	activator, out, _ := newActivator(&stubManager{}, recorder)

	report := activator.Activate(
		context.Background(),
		stubTarget{initSystem: v1alpha1.InitSystemSystemd},
		v1alpha1.InvocationContext{ActualUser: "root", HomeDir: "/root", IsRoot: true},
	)

	assert.True(t, report.GroupSkipped)
	assert.Empty(t, recorder.Lines())
	assert.Contains(t, out.String(), "skipping group membership")
	assert.NotContains(t, out.String(), "newgrp")
}

func TestActivator_FailuresAreSwallowed(t *testing.T) {
	t.Parallel()

	errStart := errors.New("unit failed")
	recorder := runnertest.New().FailOn("usermod", 6)
	activator, out, errOut := newActivator(&stubManager{err: errStart}, recorder)

	report := activator.Activate(
		context.Background(),
		stubTarget{initSystem: v1alpha1.InitSystemSystemd},
		v1alpha1.InvocationContext{ActualUser: "alice", HomeDir: "/home/alice"},
	)

	require.ErrorIs(t, report.ServiceErr, errStart)
	assert.Equal(t, 6, runner.ExitCodeOf(report.GroupErr))
	assert.Contains(t, errOut.String(), "could not enable the docker service")
	assert.Contains(t, errOut.String(), "could not add alice to the docker group")
	assert.Contains(t, out.String(), "newgrp docker")
}

func TestActivator_UnknownInitSystem(t *testing.T) {
	t.Parallel()

	activator, _, _ := newActivator(&stubManager{}, runnertest.New())

	report := activator.Activate(
		context.Background(),
		stubTarget{initSystem: v1alpha1.InitSystemOpenRC},
		v1alpha1.InvocationContext{ActualUser: "root", IsRoot: true},
	)

	require.ErrorIs(t, report.ServiceErr, service.ErrNoManager)
}
