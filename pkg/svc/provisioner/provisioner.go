package provisioner

import (
	"context"
	"fmt"
	"strings"

	v1alpha1 "github.com/devantler-tech/vmprep/pkg/apis/host/v1alpha1"
	"github.com/devantler-tech/vmprep/pkg/fsutil"
	"github.com/devantler-tech/vmprep/pkg/fsutil/profile"
	"github.com/devantler-tech/vmprep/pkg/fsutil/scaffolder"
	"github.com/devantler-tech/vmprep/pkg/svc/installer"
	runtimeinstaller "github.com/devantler-tech/vmprep/pkg/svc/installer/runtime"
	sysinfoinstaller "github.com/devantler-tech/vmprep/pkg/svc/installer/sysinfo"
	"github.com/devantler-tech/vmprep/pkg/svc/network"
	"github.com/devantler-tech/vmprep/pkg/svc/platform"
	"github.com/devantler-tech/vmprep/pkg/svc/service"
	"github.com/devantler-tech/vmprep/pkg/utils/notify"
	"github.com/devantler-tech/vmprep/pkg/utils/timer"
	"github.com/sirupsen/logrus"
)

// Step names used in outcomes.
const (
	StepUser     = "user"
	StepDistro   = "distribution"
	StepDocker   = "docker"
	StepService  = "service"
	StepNetwork  = "network"
	StepScaffold = "nginx scaffold"
	StepSysinfo  = "neofetch"
	StepProfile  = "login banner"
)

// IdentityResolver resolves the invoking user.
type IdentityResolver interface {
	Resolve() (v1alpha1.InvocationContext, error)
}

// DistroDetector classifies the host.
type DistroDetector interface {
	Detect() (v1alpha1.DistroProfile, error)
}

// PlatformFactory returns the per-family behavior for a detected host.
type PlatformFactory func(profile v1alpha1.DistroProfile) (platform.Platform, error)

// ServiceActivator enables Docker and grants the user access.
type ServiceActivator interface {
	Activate(ctx context.Context, target service.Target, invocation v1alpha1.InvocationContext) service.Report
}

// NetworkNamer supplies the network name from an argument or the operator.
type NetworkNamer interface {
	NetworkName(arg string) (string, error)
}

// NetworkEnsurer creates the Docker network.
type NetworkEnsurer interface {
	Ensure(ctx context.Context, name string) (network.Result, error)
}

// ProxyScaffolder writes the nginx project.
type ProxyScaffolder interface {
	Scaffold(home, network string, owner *fsutil.Owner) (scaffolder.Layout, error)
}

// ProfilePatcher appends the login banner to a profile file.
type ProfilePatcher func(path string, owner *fsutil.Owner) (profile.Result, error)

// Provisioner wires the steps of a run together.
type Provisioner struct {
	Identity   IdentityResolver
	Detector   DistroDetector
	Platforms  PlatformFactory
	Executor   *installer.Executor
	Activator  ServiceActivator
	Prompter   NetworkNamer
	Networks   NetworkEnsurer
	Scaffolder ProxyScaffolder
	Patch      ProfilePatcher
	Printer    *notify.Printer
	// Timer measures every stage.
	Timer timer.Timer
	// OutputTimer is Timer when timing output is on, nil otherwise.
	OutputTimer timer.Timer
	Logger      logrus.FieldLogger
}

// Summary is everything a run learned, for the final report.
type Summary struct {
	Invocation v1alpha1.InvocationContext
	Distro     v1alpha1.DistroProfile
	Network    string
	Layout     scaffolder.Layout
	Profile    string
	Outcomes   []StepOutcome
}

type run struct {
	*Provisioner

	summary  Summary
	platform platform.Platform
}

// Run provisions the host. networkArg is the positional argument and may be
// empty. The returned Summary holds the outcomes of every step that finished,
// also when an error is returned.
func (p *Provisioner) Run(ctx context.Context, networkArg string) (Summary, error) {
	if p.Logger == nil {
		p.Logger = logrus.StandardLogger()
	}

	if p.Timer == nil {
		p.Timer = timer.New()
	}

	p.Timer.Start()
	defer p.Timer.Stop()

	r := &run{Provisioner: p}

	steps := []func(context.Context) error{
		func(context.Context) error { return r.resolveUser() },
		func(context.Context) error { return r.detectDistro() },
		r.installRuntime,
		r.activateService,
		func(ctx context.Context) error { return r.ensureNetwork(ctx, networkArg) },
		func(context.Context) error { return r.writeScaffold() },
		r.installSysinfo,
		func(context.Context) error { return r.patchProfile() },
	}

	for _, step := range steps {
		err := ctx.Err()
		if err != nil {
			return r.summary, fmt.Errorf("provisioning interrupted: %w", err)
		}

		err = step(ctx)
		if err != nil {
			return r.summary, err
		}
	}

	WriteSummary(p.Printer, r.summary)

	return r.summary, nil
}

func (r *run) stage(emoji, title string) {
	r.Printer.Title(emoji, "%s", title)
	r.Timer.NewStage()
}

func (r *run) record(step string, status Status, detail string) {
	r.summary.Outcomes = append(r.summary.Outcomes, StepOutcome{Step: step, Status: status, Detail: detail})
	r.Logger.WithFields(logrus.Fields{"step": step, "status": status}).Debug(detail)
}

func (r *run) stageDone(format string, args ...any) {
	if r.OutputTimer != nil {
		r.Printer.SuccessWithTimer(r.OutputTimer, format, args...)

		return
	}

	r.Printer.Success(format, args...)
}

func (r *run) owner() *fsutil.Owner {
	inv := r.summary.Invocation

	return fsutil.NewOwner(inv.UID, inv.GID, inv.Escalated)
}

func (r *run) resolveUser() error {
	r.stage("👤", "Resolve user...")

	inv, err := r.Identity.Resolve()
	if err != nil {
		return fmt.Errorf("resolve user: %w", err)
	}

	r.summary.Invocation = inv

	detail := fmt.Sprintf("%s (%s)", inv.ActualUser, inv.HomeDir)
	r.record(StepUser, StatusDone, detail)
	r.stageDone("provisioning for %s", detail)

	return nil
}

func (r *run) detectDistro() error {
	r.stage("🔍", "Detect distribution...")

	distro, err := r.Detector.Detect()
	if err != nil {
		return fmt.Errorf("detect distribution: %w", err)
	}

	plat, err := r.Platforms(distro)
	if err != nil {
		return fmt.Errorf("detect distribution: %w", err)
	}

	r.summary.Distro = distro
	r.platform = plat

	detail := fmt.Sprintf("%s (%s family, %s)", distro.DisplayName(), distro.Family, distro.PackageManager)
	r.record(StepDistro, StatusDone, detail)
	r.stageDone("detected %s", detail)

	return nil
}

func (r *run) installRuntime(ctx context.Context) error {
	r.stage("🐳", "Install Docker...")

	inst := runtimeinstaller.NewInstaller(r.Executor, r.platform)

	err := inst.Install(ctx)
	if err != nil {
		return err
	}

	detail := "docker engine and compose plugin installed"
	if skipped := inst.Skipped(); len(skipped) > 0 {
		detail += "; skipped: " + strings.Join(skipped, ", ")
	}

	r.record(StepDocker, StatusDone, detail)
	r.stageDone("docker installed")

	return nil
}

func (r *run) activateService(ctx context.Context) error {
	r.stage("⚙️", "Enable Docker service...")

	report := r.Activator.Activate(ctx, r.platform, r.summary.Invocation)

	switch {
	case report.ServiceErr != nil:
		r.record(StepService, StatusFailed, fmt.Sprintf("service not started: %v", report.ServiceErr))
	case report.GroupErr != nil:
		r.record(StepService, StatusFailed, fmt.Sprintf("group membership not granted: %v", report.GroupErr))
	case report.GroupSkipped:
		r.record(StepService, StatusDone, "service enabled; root needs no group membership")
	default:
		r.record(StepService, StatusDone, fmt.Sprintf("service enabled; %s added to docker group", r.summary.Invocation.ActualUser))
	}

	return nil
}

func (r *run) ensureNetwork(ctx context.Context, arg string) error {
	r.stage("🌐", "Create network...")

	name, err := r.Prompter.NetworkName(arg)
	if err != nil {
		return fmt.Errorf("network name: %w", err)
	}

	r.summary.Network = name

	result, err := r.Networks.Ensure(ctx, name)
	if err != nil {
		return fmt.Errorf("create network: %w", err)
	}

	switch result.Status {
	case network.Created:
		r.record(StepNetwork, StatusDone, name+" created")
	case network.AlreadyExists:
		r.record(StepNetwork, StatusAlreadyPresent, name+" already exists")
	default:
		r.record(StepNetwork, StatusFailed, fmt.Sprintf("%s not created: %v", name, result.Err))
	}

	return nil
}

func (r *run) writeScaffold() error {
	r.stage("📁", "Write nginx scaffold...")

	home := r.summary.Invocation.HomeDir

	layout, err := r.Scaffolder.Scaffold(home, r.summary.Network, r.owner())
	if err != nil {
		return fmt.Errorf("write nginx scaffold: %w", err)
	}

	r.summary.Layout = layout

	short := fsutil.ShortenHomePath(layout.Root, home)
	r.record(StepScaffold, StatusDone, short+" written")
	r.stageDone("scaffold written to %s", short)

	return nil
}

func (r *run) installSysinfo(ctx context.Context) error {
	r.stage("🖥️", "Install neofetch...")

	err := sysinfoinstaller.NewInstaller(r.Executor, r.platform).Install(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("provisioning interrupted: %w", ctx.Err())
		}

		r.Printer.Error("%v", err)
		r.Printer.Info("%s", sysinfoinstaller.Remediation(r.summary.Distro.PackageManager))
		r.record(StepSysinfo, StatusFailed, "install neofetch manually")

		return nil
	}

	r.record(StepSysinfo, StatusDone, "neofetch installed")
	r.stageDone("neofetch installed")

	return nil
}

func (r *run) patchProfile() error {
	r.stage("📝", "Patch login profile...")

	home := r.summary.Invocation.HomeDir
	path := r.platform.ProfileFile(home)
	r.summary.Profile = path
	short := fsutil.ShortenHomePath(path, home)

	result, err := r.Patch(path, r.owner())
	if err != nil {
		return fmt.Errorf("patch login profile: %w", err)
	}

	if result.AlreadyPatched {
		r.Printer.Skip("%s already contains the login banner", short)
		r.record(StepProfile, StatusAlreadyPresent, short+" already patched")

		return nil
	}

	r.record(StepProfile, StatusDone, short+" patched")
	r.stageDone("login banner added to %s", short)

	return nil
}
