package platform

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	v1alpha1 "github.com/devantler-tech/vmprep/pkg/apis/host/v1alpha1"
	"github.com/devantler-tech/vmprep/pkg/cmd/runner"
	"github.com/devantler-tech/vmprep/pkg/svc/installer"
)

const epelReleaseURL = "https://dl.fedoraproject.org/pub/epel/epel-release-latest-%d.noarch.rpm"

var legacyRHELPackages = []string{
	"docker",
	"docker-client",
	"docker-client-latest",
	"docker-common",
	"docker-latest",
	"docker-latest-logrotate",
	"docker-logrotate",
	"docker-engine",
	"podman",
	"runc",
}

type rhel struct {
	base
}

func (r *rhel) repoURL() string {
	repo := "centos"
	if r.profile.ID == "rhel" {
		repo = "rhel"
	}

	return fmt.Sprintf("%s/%s/docker-ce.repo", r.opts.DownloadBaseURL, repo)
}

func (r *rhel) RuntimePlan() installer.Plan {
	prerequisite := "dnf-plugins-core"
	addRepo := []runner.Command{
		runner.NewCommand("dnf", "config-manager", "--add-repo", r.repoURL()),
		runner.NewCommand("dnf", "config-manager", "addrepo", "--from-repofile="+r.repoURL()),
	}

	if r.profile.PackageManager == v1alpha1.PackageManagerYum {
		prerequisite = "yum-utils"
		addRepo = []runner.Command{runner.NewCommand("yum-config-manager", "--add-repo", r.repoURL())}
	}

	return installer.Plan{
		step("remove legacy packages", installer.BestEffort, r.remove(legacyRHELPackages...)),
		step("install repository tooling", installer.BestEffort, r.install(prerequisite)),
		step("register Docker repository", installer.BestEffort, addRepo...),
		step("install Docker engine", installer.Required, r.install(dockerPackages...)),
	}
}

func (r *rhel) SysinfoPlan() installer.Plan {
	epel := []runner.Command{r.install("epel-release")}

	if major, ok := r.majorVersion(); ok {
		epel = append(epel, r.install(fmt.Sprintf(epelReleaseURL, major)))
	}

	return installer.Plan{
		step("enable EPEL repository", installer.BestEffort, epel...),
		step("install neofetch", installer.Required, r.install("neofetch")),
	}
}

func (r *rhel) majorVersion() (uint64, bool) {
	version, err := semver.NewVersion(r.profile.VersionID)
	if err != nil {
		r.opts.Logger.WithError(err).WithField("version", r.profile.VersionID).Debug("unparsable VERSION_ID")

		return 0, false
	}

	return version.Major(), true
}
