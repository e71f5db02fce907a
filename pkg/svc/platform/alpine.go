package platform

import (
	"path/filepath"

	"github.com/devantler-tech/vmprep/pkg/cmd/runner"
	"github.com/devantler-tech/vmprep/pkg/svc/installer"
)

type alpine struct {
	base
}

func (a *alpine) RuntimePlan() installer.Plan {
	return installer.Plan{
		step("refresh package index", installer.BestEffort, runner.NewCommand("apk", "update")),
		step("install Docker engine", installer.Required,
			runner.NewCommand("apk", "add", "docker", "docker-cli-compose")),
	}
}

func (a *alpine) SysinfoPlan() installer.Plan {
	return installer.Plan{
		step("install neofetch", installer.Required, runner.NewCommand("apk", "add", "neofetch", "curl")),
	}
}

func (a *alpine) GroupAddCommand(user string) runner.Command {
	return runner.NewCommand("addgroup", user, dockerGroup)
}

// ProfileFile is ~/.profile because busybox ash does not read .bashrc.
func (a *alpine) ProfileFile(home string) string {
	return filepath.Join(home, ".profile")
}
