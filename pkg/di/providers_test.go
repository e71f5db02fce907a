package di_test

import (
	"bytes"
	"testing"

	v1alpha1 "github.com/devantler-tech/vmprep/pkg/apis/host/v1alpha1"
	"github.com/devantler-tech/vmprep/pkg/di"
	"github.com/devantler-tech/vmprep/pkg/svc/service"
	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func settingsModule(settings di.Settings) di.Module {
	var out, errOut bytes.Buffer

	return di.WithSettings(settings, di.Streams{Out: &out, Err: &errOut})
}

func TestNewRuntime_ProvidesTimer(t *testing.T) {
	t.Parallel()

	rt := di.NewRuntime()

	err := rt.Invoke(func(injector di.Injector) error {
		tmr, resolveErr := di.ResolveTimer(injector)
		require.NoError(t, resolveErr)
		require.NotNil(t, tmr)

		return nil
	}, settingsModule(di.Settings{}))

	require.NoError(t, err)
}

func TestNewRuntime_ProvidesProvisioner(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		settings   di.Settings
		wantOutput bool
	}{
		{name: "default", settings: di.Settings{LogLevel: v1alpha1.LogLevelWarn}},
		{name: "timing", settings: di.Settings{Timing: true, OSRelease: "/tmp/os-release"}, wantOutput: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := di.NewRuntime().Invoke(func(injector di.Injector) error {
				prov, resolveErr := di.ResolveProvisioner(injector)
				require.NoError(t, resolveErr)

				assert.NotNil(t, prov.Identity)
				assert.NotNil(t, prov.Detector)
				assert.NotNil(t, prov.Platforms)
				assert.NotNil(t, prov.Executor)
				assert.NotNil(t, prov.Activator)
				assert.NotNil(t, prov.Prompter)
				assert.NotNil(t, prov.Networks)
				assert.NotNil(t, prov.Scaffolder)
				assert.NotNil(t, prov.Patch)
				assert.NotNil(t, prov.Timer)
				assert.Equal(t, tc.wantOutput, prov.OutputTimer != nil)

				return nil
			}, settingsModule(tc.settings))

			require.NoError(t, err)
		})
	}
}

func TestNewRuntime_ProvidesBothServiceManagers(t *testing.T) {
	t.Parallel()

	err := di.NewRuntime().Invoke(func(injector di.Injector) error {
		managers, resolveErr := do.Invoke[service.Managers](injector)
		require.NoError(t, resolveErr)

		assert.Contains(t, managers, v1alpha1.InitSystemSystemd)
		assert.Contains(t, managers, v1alpha1.InitSystemOpenRC)

		return nil
	}, settingsModule(di.Settings{}))

	require.NoError(t, err)
}

func TestResolveProvisioner_MissingSettings(t *testing.T) {
	t.Parallel()

	err := di.NewRuntime().Invoke(func(injector di.Injector) error {
		_, resolveErr := di.ResolveProvisioner(injector)

		return resolveErr
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve provisioner dependency")
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	logger, err := di.NewLogger(v1alpha1.LogLevelDebug, &out)
	require.NoError(t, err)

	logger.Debug("visible")
	logger.Trace("hidden")

	assert.Contains(t, out.String(), "visible")
	assert.NotContains(t, out.String(), "hidden")

	logger, err = di.NewLogger("", &out)
	require.NoError(t, err)
	assert.Equal(t, "warning", logger.GetLevel().String())

	_, err = di.NewLogger("loud", &out)
	require.ErrorIs(t, err, v1alpha1.ErrInvalidLogLevel)
}
