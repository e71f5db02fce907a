// Package platform holds everything that differs between distribution
// families: install plans, service manager, group command and login profile.
package platform

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	goruntime "runtime"
	"time"

	v1alpha1 "github.com/devantler-tech/vmprep/pkg/apis/host/v1alpha1"
	"github.com/devantler-tech/vmprep/pkg/cmd/runner"
	"github.com/devantler-tech/vmprep/pkg/svc/installer"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultDownloadBaseURL is the root of Docker's package repositories.
	DefaultDownloadBaseURL = "https://download.docker.com/linux"

	dockerGroup     = "docker"
	downloadTimeout = 30 * time.Second
)

// ErrUnknownFamily is returned for a profile whose family has no platform.
var ErrUnknownFamily = errors.New("no platform for distribution family")

// dockerPackages is the engine package set shared by the apt, dnf and yum repositories.
var dockerPackages = []string{
	"docker-ce",
	"docker-ce-cli",
	"containerd.io",
	"docker-buildx-plugin",
	"docker-compose-plugin",
}

// Platform is the per-family behavior, resolved once from a DistroProfile.
type Platform interface {
	Family() v1alpha1.Family
	InitSystem() v1alpha1.InitSystem
	// RuntimePlan installs the Docker engine and compose plugin.
	RuntimePlan() installer.Plan
	// SysinfoPlan installs neofetch.
	SysinfoPlan() installer.Plan
	// GroupAddCommand adds user to the docker group.
	GroupAddCommand(user string) runner.Command
	// ProfileFile is the login script patched for user in home.
	ProfileFile(home string) string
}

// Options configures the side effects a platform performs outside the runner.
type Options struct {
	// Root prefixes every system path written directly (apt keyring and source list).
	Root string
	// Runner is used by plan actions that query the host.
	Runner runner.CommandRunner
	// HTTPClient downloads repository signing keys.
	HTTPClient *http.Client
	// DownloadBaseURL defaults to DefaultDownloadBaseURL.
	DownloadBaseURL string
	// Arch is a Go architecture name used when dpkg cannot report one.
	Arch   string
	Logger logrus.FieldLogger
}

func (o Options) withDefaults() Options {
	if o.Root == "" {
		o.Root = "/"
	}

	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{Timeout: downloadTimeout}
	}

	if o.DownloadBaseURL == "" {
		o.DownloadBaseURL = DefaultDownloadBaseURL
	}

	if o.Arch == "" {
		o.Arch = goruntime.GOARCH
	}

	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}

	return o
}

func (o Options) path(elem ...string) string {
	return filepath.Join(append([]string{o.Root}, elem...)...)
}

// For returns the Platform for profile.
func For(profile v1alpha1.DistroProfile, opts Options) (Platform, error) {
	opts = opts.withDefaults()
	common := base{profile: profile, opts: opts}

	switch profile.Family {
	case v1alpha1.FamilyDebian:
		return &debian{base: common}, nil
	case v1alpha1.FamilyRHEL:
		return &rhel{base: common}, nil
	case v1alpha1.FamilyFedora:
		return &fedora{base: common}, nil
	case v1alpha1.FamilyAlpine:
		return &alpine{base: common}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, profile.Family)
	}
}

type base struct {
	profile v1alpha1.DistroProfile
	opts    Options
}

func (b *base) Family() v1alpha1.Family {
	return b.profile.Family
}

func (b *base) InitSystem() v1alpha1.InitSystem {
	family := b.profile.Family

	return family.InitSystem()
}

func (b *base) GroupAddCommand(user string) runner.Command {
	return runner.NewCommand("usermod", "-aG", dockerGroup, user)
}

func (b *base) ProfileFile(home string) string {
	return filepath.Join(home, ".bashrc")
}

func (b *base) packageManager() string {
	return string(b.profile.PackageManager)
}

func (b *base) install(packages ...string) runner.Command {
	return runner.NewCommand(b.packageManager(), append([]string{"install", "-y"}, packages...)...)
}

func (b *base) remove(packages ...string) runner.Command {
	return runner.NewCommand(b.packageManager(), append([]string{"remove", "-y"}, packages...)...)
}

func step(description string, policy installer.Policy, commands ...runner.Command) installer.Step {
	return installer.Step{Description: description, Commands: commands, Policy: policy}
}
