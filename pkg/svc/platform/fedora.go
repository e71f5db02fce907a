package platform

import (
	"github.com/devantler-tech/vmprep/pkg/cmd/runner"
	"github.com/devantler-tech/vmprep/pkg/svc/installer"
)

var legacyFedoraPackages = []string{
	"docker",
	"docker-client",
	"docker-client-latest",
	"docker-common",
	"docker-latest",
	"docker-latest-logrotate",
	"docker-logrotate",
	"docker-selinux",
	"docker-engine-selinux",
	"docker-engine",
}

type fedora struct {
	base
}

func (f *fedora) RuntimePlan() installer.Plan {
	repoURL := f.opts.DownloadBaseURL + "/fedora/docker-ce.repo"

	return installer.Plan{
		step("remove legacy packages", installer.BestEffort, f.remove(legacyFedoraPackages...)),
		step("install repository tooling", installer.BestEffort, f.install("dnf-plugins-core")),
		step("register Docker repository", installer.BestEffort,
			runner.NewCommand("dnf", "config-manager", "--add-repo", repoURL),
			runner.NewCommand("dnf", "config-manager", "addrepo", "--from-repofile="+repoURL),
		),
		step("install Docker engine", installer.Required, f.install(dockerPackages...)),
	}
}

func (f *fedora) SysinfoPlan() installer.Plan {
	return installer.Plan{
		step("install neofetch", installer.Required, f.install("neofetch")),
	}
}
