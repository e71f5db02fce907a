package di

import (
	"fmt"
	"io"
	"os"

	v1alpha1 "github.com/devantler-tech/vmprep/pkg/apis/host/v1alpha1"
	"github.com/devantler-tech/vmprep/pkg/cli/ui/prompt"
	"github.com/devantler-tech/vmprep/pkg/client/docker"
	"github.com/devantler-tech/vmprep/pkg/cmd/runner"
	"github.com/devantler-tech/vmprep/pkg/fsutil"
	"github.com/devantler-tech/vmprep/pkg/fsutil/profile"
	"github.com/devantler-tech/vmprep/pkg/fsutil/scaffolder"
	"github.com/devantler-tech/vmprep/pkg/svc/detector/distro"
	"github.com/devantler-tech/vmprep/pkg/svc/identity"
	"github.com/devantler-tech/vmprep/pkg/svc/installer"
	"github.com/devantler-tech/vmprep/pkg/svc/network"
	"github.com/devantler-tech/vmprep/pkg/svc/platform"
	"github.com/devantler-tech/vmprep/pkg/svc/provisioner"
	"github.com/devantler-tech/vmprep/pkg/svc/service"
	"github.com/devantler-tech/vmprep/pkg/utils/notify"
	"github.com/devantler-tech/vmprep/pkg/utils/timer"
	"github.com/samber/do/v2"
	"github.com/sirupsen/logrus"
)

// Settings are the command-line choices that shape the wiring.
type Settings struct {
	// OSRelease replaces the default os-release search paths when set. A
	// leading ~ refers to the invoking user's home.
	OSRelease string `mapstructure:"os-release"`
	// Image replaces the nginx image in the generated compose file.
	Image string `mapstructure:"image"`
	// Timing prints stage timings after each step.
	Timing bool `mapstructure:"timing"`
	// LogLevel also decides whether command output is streamed.
	LogLevel v1alpha1.LogLevel `mapstructure:"log-level"`
}

// Streams are the process's standard streams.
type Streams struct {
	In  *os.File
	Out io.Writer
	Err io.Writer
}

// NewRuntime constructs the runtime used by the root command and tests.
func NewRuntime() *Runtime {
	return New(
		provideTimer,
		provideLogger,
		providePrinter,
		provideCommandRunner,
		provideNetworkClientFactory,
		provideServiceManagers,
		providePrompter,
		provideIdentityResolver,
		provideDistroDetector,
		providePlatformOptions,
		provideProvisioner,
	)
}

// WithSettings provides the command's settings and streams.
func WithSettings(settings Settings, streams Streams) Module {
	return func(i Injector) error {
		do.ProvideValue(i, settings)
		do.ProvideValue(i, streams)

		return nil
	}
}

func provideTimer(i Injector) error {
	do.Provide(i, func(Injector) (timer.Timer, error) {
		return timer.New(), nil
	})

	return nil
}

func provideLogger(i Injector) error {
	do.Provide(i, func(i Injector) (logrus.FieldLogger, error) {
		settings, err := do.Invoke[Settings](i)
		if err != nil {
			return nil, err
		}

		streams, err := do.Invoke[Streams](i)
		if err != nil {
			return nil, err
		}

		return NewLogger(settings.LogLevel, streams.Err)
	})

	return nil
}

// NewLogger returns a logrus logger writing text to out at level. An empty
// level means warn.
func NewLogger(level v1alpha1.LogLevel, out io.Writer) (*logrus.Logger, error) {
	if level == "" {
		level = v1alpha1.LogLevelWarn
	}

	parsed, err := logrus.ParseLevel(string(level))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", v1alpha1.ErrInvalidLogLevel, level)
	}

	if out == nil {
		out = os.Stderr
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(parsed)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	return logger, nil
}

func providePrinter(i Injector) error {
	do.Provide(i, func(i Injector) (*notify.Printer, error) {
		streams, err := do.Invoke[Streams](i)
		if err != nil {
			return nil, err
		}

		return notify.NewPrinter(streams.Out, streams.Err), nil
	})

	return nil
}

func provideCommandRunner(i Injector) error {
	do.Provide(i, func(i Injector) (runner.CommandRunner, error) {
		streams, err := do.Invoke[Streams](i)
		if err != nil {
			return nil, err
		}

		settings, err := do.Invoke[Settings](i)
		if err != nil {
			return nil, err
		}

		logger, err := do.Invoke[logrus.FieldLogger](i)
		if err != nil {
			return nil, err
		}

		return runner.NewExecRunner(
			runner.WithWriters(streams.Out, streams.Err),
			runner.WithStreaming(settings.LogLevel.Verbose()),
			runner.WithLogger(logger),
		), nil
	})

	return nil
}

func provideNetworkClientFactory(i Injector) error {
	do.Provide(i, func(Injector) (docker.NetworkClientFactory, error) {
		return docker.GetNetworkClient, nil
	})

	return nil
}

func provideServiceManagers(i Injector) error {
	do.Provide(i, func(i Injector) (service.Managers, error) {
		cmdRunner, err := do.Invoke[runner.CommandRunner](i)
		if err != nil {
			return nil, err
		}

		logger, err := do.Invoke[logrus.FieldLogger](i)
		if err != nil {
			return nil, err
		}

		return service.Managers{
			v1alpha1.InitSystemSystemd: service.NewSystemdManager(cmdRunner, logger),
			v1alpha1.InitSystemOpenRC:  service.NewOpenRCManager(cmdRunner),
		}, nil
	})

	return nil
}

func providePrompter(i Injector) error {
	do.Provide(i, func(i Injector) (provisioner.NetworkNamer, error) {
		streams, err := do.Invoke[Streams](i)
		if err != nil {
			return nil, err
		}

		return prompt.NewPrompter(streams.In, streams.Out), nil
	})

	return nil
}

func provideIdentityResolver(i Injector) error {
	do.Provide(i, func(Injector) (provisioner.IdentityResolver, error) {
		return identity.NewResolver(), nil
	})

	return nil
}

func provideDistroDetector(i Injector) error {
	do.Provide(i, func(i Injector) (provisioner.DistroDetector, error) {
		settings, err := do.Invoke[Settings](i)
		if err != nil {
			return nil, err
		}

		if settings.OSRelease == "" {
			return distro.NewDetector(), nil
		}

		var home string

		if fsutil.HasHomePrefix(settings.OSRelease) {
			resolver, err := do.Invoke[provisioner.IdentityResolver](i)
			if err != nil {
				return nil, err
			}

			invocation, err := resolver.Resolve()
			if err != nil {
				return nil, err
			}

			home = invocation.HomeDir
		}

		path, err := fsutil.ExpandHomePath(settings.OSRelease, home)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve os-release path: %w", err)
		}

		return distro.NewDetector(path), nil
	})

	return nil
}

func providePlatformOptions(i Injector) error {
	do.Provide(i, func(i Injector) (platform.Options, error) {
		cmdRunner, err := do.Invoke[runner.CommandRunner](i)
		if err != nil {
			return platform.Options{}, err
		}

		logger, err := do.Invoke[logrus.FieldLogger](i)
		if err != nil {
			return platform.Options{}, err
		}

		return platform.Options{Runner: cmdRunner, Logger: logger}, nil
	})

	return nil
}

//nolint:funlen // wires every provisioning step
func provideProvisioner(i Injector) error {
	do.Provide(i, func(i Injector) (*provisioner.Provisioner, error) {
		settings, err := do.Invoke[Settings](i)
		if err != nil {
			return nil, err
		}

		printer, err := do.Invoke[*notify.Printer](i)
		if err != nil {
			return nil, err
		}

		logger, err := do.Invoke[logrus.FieldLogger](i)
		if err != nil {
			return nil, err
		}

		cmdRunner, err := do.Invoke[runner.CommandRunner](i)
		if err != nil {
			return nil, err
		}

		tmr, err := do.Invoke[timer.Timer](i)
		if err != nil {
			return nil, err
		}

		managers, err := do.Invoke[service.Managers](i)
		if err != nil {
			return nil, err
		}

		factory, err := do.Invoke[docker.NetworkClientFactory](i)
		if err != nil {
			return nil, err
		}

		namer, err := do.Invoke[provisioner.NetworkNamer](i)
		if err != nil {
			return nil, err
		}

		resolver, err := do.Invoke[provisioner.IdentityResolver](i)
		if err != nil {
			return nil, err
		}

		detector, err := do.Invoke[provisioner.DistroDetector](i)
		if err != nil {
			return nil, err
		}

		platformOpts, err := do.Invoke[platform.Options](i)
		if err != nil {
			return nil, err
		}

		var outputTimer timer.Timer
		if settings.Timing {
			outputTimer = tmr
		}

		return &provisioner.Provisioner{
			Identity: resolver,
			Detector: detector,
			Platforms: func(detected v1alpha1.DistroProfile) (platform.Platform, error) {
				return platform.For(detected, platformOpts)
			},
			Executor:    installer.NewExecutor(cmdRunner, printer, logger),
			Activator:   service.NewActivator(managers, cmdRunner, printer, logger),
			Prompter:    namer,
			Networks:    network.NewProvisioner(factory, printer, logger),
			Scaffolder:  scaffolder.NewScaffolder(printer).WithImage(settings.Image),
			Patch:       profile.Patch,
			Printer:     printer,
			Timer:       tmr,
			OutputTimer: outputTimer,
			Logger:      logger,
		}, nil
	})

	return nil
}
