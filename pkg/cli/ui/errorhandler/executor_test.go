package errorhandler_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/devantler-tech/vmprep/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/vmprep/pkg/cmd/runner"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNoNetwork = errors.New("no network name entered")

// newCommand mirrors the root command's argument and flag shape.
func newCommand(run func(*cobra.Command, []string) error, args ...string) (*cobra.Command, *bytes.Buffer) {
	var stderr bytes.Buffer

	cmd := &cobra.Command{
		Use:          "vmprep [network-name]",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         run,
	}
	cmd.Flags().Bool("timing", false, "")
	cmd.SetArgs(args)
	cmd.SetErr(&stderr)
	cmd.SetOut(&bytes.Buffer{})

	return cmd, &stderr
}

func succeed(*cobra.Command, []string) error { return nil }

func execute(t *testing.T, cmd *cobra.Command) *errorhandler.CommandError {
	t.Helper()

	err := errorhandler.NewExecutor().Execute(cmd)
	require.Error(t, err)

	var commandErr *errorhandler.CommandError
	require.ErrorAs(t, err, &commandErr)

	return commandErr
}

func TestExecute_Success(t *testing.T) {
	t.Parallel()

	cmd, stderr := newCommand(succeed, "tpet-dev")

	require.NoError(t, errorhandler.NewExecutor().Execute(cmd))
	assert.Empty(t, stderr.String())
}

func TestExecute_NilCommand(t *testing.T) {
	t.Parallel()

	require.NoError(t, errorhandler.NewExecutor().Execute(nil))
}

func TestExecute_TooManyArgumentsIsUsageError(t *testing.T) {
	t.Parallel()

	cmd, stderr := newCommand(succeed, "one", "two")

	err := execute(t, cmd)

	require.ErrorIs(t, err, errorhandler.ErrUsage)
	assert.True(t, err.Usage())
	assert.Equal(t,
		"invalid usage: accepts at most 1 arg(s), received 2\nrun 'vmprep --help' for usage",
		err.Error(),
	)
	assert.Equal(t, 1, err.ExitCode())
	assert.Empty(t, stderr.String())
}

func TestExecute_UnknownFlagIsUsageError(t *testing.T) {
	t.Parallel()

	cmd, _ := newCommand(succeed, "--loud")

	err := execute(t, cmd)

	assert.True(t, err.Usage())
	assert.Contains(t, err.Error(), "unknown flag: --loud")
	assert.Contains(t, err.Error(), "run 'vmprep --help' for usage")
}

func TestExecute_RunFailureKeepsCause(t *testing.T) {
	t.Parallel()

	cmd, stderr := newCommand(func(*cobra.Command, []string) error { return errNoNetwork })

	err := execute(t, cmd)

	require.ErrorIs(t, err, errNoNetwork)
	assert.False(t, err.Usage())
	assert.Equal(t, "no network name entered", err.Error())
	assert.Empty(t, stderr.String())
}

func TestExecute_CommandFailureKeepsExitCode(t *testing.T) {
	t.Parallel()

	cmd, _ := newCommand(func(*cobra.Command, []string) error {
		return fmt.Errorf("install docker: %w", &runner.ExitError{Command: "apk add docker", Code: 3})
	})

	err := execute(t, cmd)

	assert.Equal(t, 3, err.ExitCode())
	assert.Equal(t, 3, errorhandler.ExitCode(fmt.Errorf("wrapped: %w", err)))
}

func TestCommandError_ZeroValues(t *testing.T) {
	t.Parallel()

	var nilErr *errorhandler.CommandError

	assert.Empty(t, nilErr.Error())
	require.NoError(t, nilErr.Unwrap())
	assert.Equal(t, 0, nilErr.ExitCode())

	empty := &errorhandler.CommandError{}

	assert.Empty(t, empty.Error())
	assert.Equal(t, 1, empty.ExitCode())
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: 0},
		{name: "plain error", err: errNoNetwork, want: 1},
		{
			name: "command failure",
			err:  fmt.Errorf("install docker: %w", &runner.ExitError{Command: "apt-get install -y docker-ce", Code: 100}),
			want: 100,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, errorhandler.ExitCode(testCase.err))
		})
	}
}
