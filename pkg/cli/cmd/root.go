package cmd

import (
	"fmt"
	"os"
	"strings"

	v1alpha1 "github.com/devantler-tech/vmprep/pkg/apis/host/v1alpha1"
	"github.com/devantler-tech/vmprep/pkg/cli/flags"
	"github.com/devantler-tech/vmprep/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/vmprep/pkg/di"
	"github.com/devantler-tech/vmprep/pkg/utils/notify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const rootLong = `vmprep provisions a freshly created Linux virtual machine in one run.

It installs Docker and the compose plugin, enables the Docker service, adds
the invoking user to the docker group, creates a Docker network, writes an
nginx reverse-proxy scaffold to ~/nginx, installs neofetch and adds a login
banner to the shell profile.

Run it with sudo. The network name is read from the first argument, or asked
for interactively when stdin is a terminal.

Supported distribution families: debian, rhel, fedora, alpine.`

// NewRootCmd creates the root command wired to the host.
func NewRootCmd(version, commit, date string) *cobra.Command {
	return NewRootCmdWithRuntime(
		di.NewRuntime(),
		di.Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr},
		version, commit, date,
	)
}

// NewRootCmdWithRuntime creates the root command on runtime. overrides run
// after the default modules and may replace any dependency.
func NewRootCmdWithRuntime(
	runtime *di.Runtime,
	streams di.Streams,
	version, commit, date string,
	overrides ...di.Module,
) *cobra.Command {
	viperInstance := flags.NewViper()
	logLevel := v1alpha1.LogLevelWarn

	var settings di.Settings

	cmd := &cobra.Command{
		Use:          "vmprep [network-name]",
		Short:        "Provision a fresh Linux VM with Docker and an nginx proxy scaffold",
		Long:         rootLong,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	if streams.Out != nil {
		cmd.SetOut(streams.Out)
	}

	if streams.In != nil {
		cmd.SetIn(streams.In)
	}

	if streams.Err == nil {
		streams.Err = os.Stderr
	}

	cmd.PersistentFlags().Var(&logLevel, flags.LogLevelFlagName,
		"Diagnostic log level ("+strings.Join(logLevel.ValidValues(), "|")+"); debug and trace stream command output")
	cmd.PersistentFlags().Bool(flags.TimingFlagName, false, "Show per-step timing output")
	cmd.Flags().String(flags.OSReleaseFlagName, "", "Read the distribution from this os-release file")
	cmd.Flags().String(flags.ImageFlagName, "", "nginx image for the generated compose file")
	_ = cmd.Flags().MarkHidden(flags.OSReleaseFlagName)
	_ = cmd.Flags().MarkHidden(flags.ImageFlagName)

	_ = flags.Bind(viperInstance, cmd.PersistentFlags(), flags.LogLevelFlagName, flags.TimingFlagName)
	_ = flags.Bind(viperInstance, cmd.Flags(), flags.OSReleaseFlagName, flags.ImageFlagName)

	cmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		loaded, err := loadSettings(viperInstance)
		if err != nil {
			return err
		}

		settings = loaded

		return nil
	}

	settingsModule := func(i di.Injector) error {
		runStreams := streams
		runStreams.Out = notify.NewStageSeparatingWriter(cmd.OutOrStdout())

		return di.WithSettings(settings, runStreams)(i)
	}

	modules := append([]di.Module{settingsModule}, overrides...)
	cmd.RunE = di.RunEWithRuntime(runtime, handleRootRunE, modules...)

	return cmd
}

// Execute runs the provided root command and handles errors.
func Execute(cmd *cobra.Command) error {
	executor := errorhandler.NewExecutor()

	err := executor.Execute(cmd)
	if err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// --- internals ---

func loadSettings(viperInstance *viper.Viper) (di.Settings, error) {
	var settings di.Settings

	err := flags.Decode(viperInstance, &settings)
	if err != nil {
		return di.Settings{}, err
	}

	return settings, nil
}

func handleRootRunE(cmd *cobra.Command, injector di.Injector) error {
	prov, err := di.ResolveProvisioner(injector)
	if err != nil {
		return err
	}

	var networkArg string
	if args := cmd.Flags().Args(); len(args) > 0 {
		networkArg = args[0]
	}

	_, err = prov.Run(cmd.Context(), networkArg)

	return err
}
