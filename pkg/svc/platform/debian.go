package platform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/devantler-tech/vmprep/pkg/cmd/runner"
	"github.com/devantler-tech/vmprep/pkg/fsutil"
	"github.com/devantler-tech/vmprep/pkg/svc/installer"
)

const (
	aptKeyringPath    = "etc/apt/keyrings/docker.asc"
	aptSourceListPath = "etc/apt/sources.list.d/docker.list"
	maxKeySize        = 1 << 20
)

var (
	errNoCodename      = errors.New("os-release has no release codename")
	errKeyDownload     = errors.New("failed to download signing key")
	errUnknownDpkgArch = errors.New("no dpkg architecture for Go architecture")
)

var conflictingDebianPackages = []string{
	"docker.io",
	"docker-doc",
	"docker-compose",
	"docker-compose-v2",
	"podman-docker",
	"containerd",
	"runc",
}

// dpkgArch maps Go architectures to Debian architecture names.
var dpkgArch = map[string]string{
	"amd64":   "amd64",
	"arm64":   "arm64",
	"arm":     "armhf",
	"386":     "i386",
	"ppc64le": "ppc64el",
	"s390x":   "s390x",
}

type debian struct {
	base
}

func (d *debian) apt(args ...string) runner.Command {
	return runner.NewCommand("apt-get", args...).WithEnv("DEBIAN_FRONTEND=noninteractive")
}

// RuntimePlan removes conflicting packages one per step; apt rejects the whole
// removal when a single name is unknown to the package index.
func (d *debian) RuntimePlan() installer.Plan {
	plan := make(installer.Plan, 0, len(conflictingDebianPackages)+6)

	for _, pkg := range conflictingDebianPackages {
		plan = append(plan, step("remove conflicting package "+pkg, installer.BestEffort, d.apt("remove", "-y", pkg)))
	}

	return append(plan,
		step("refresh package index", installer.BestEffort, d.apt("update")),
		step("install repository prerequisites", installer.BestEffort,
			d.apt("install", "-y", "ca-certificates", "curl")),
		installer.Step{Description: "import Docker signing key", Action: d.importKey, Policy: installer.BestEffort},
		installer.Step{Description: "register Docker apt repository", Action: d.writeSourceList, Policy: installer.BestEffort},
		step("refresh package index", installer.BestEffort, d.apt("update")),
		step("install Docker engine", installer.Required,
			d.apt(append([]string{"install", "-y"}, dockerPackages...)...)),
	)
}

func (d *debian) SysinfoPlan() installer.Plan {
	return installer.Plan{
		step("install neofetch", installer.Required, d.apt("install", "-y", "neofetch")),
	}
}

// repository returns "ubuntu" for Ubuntu and its derivatives, "debian" otherwise.
func (d *debian) repository() string {
	if d.profile.ID == "ubuntu" || d.profile.UbuntuCodename != "" {
		return "ubuntu"
	}

	return "debian"
}

func (d *debian) importKey(ctx context.Context) error {
	url := fmt.Sprintf("%s/%s/gpg", d.opts.DownloadBaseURL, d.repository())
	d.opts.Logger.WithField("url", url).Debug("downloading signing key")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", errKeyDownload, err)
	}

	resp, err := d.opts.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", errKeyDownload, err)
	}

	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned %s", errKeyDownload, url, resp.Status)
	}

	key, err := io.ReadAll(io.LimitReader(resp.Body, maxKeySize))
	if err != nil {
		return fmt.Errorf("%w: %w", errKeyDownload, err)
	}

	return fsutil.WriteFile(d.opts.path(aptKeyringPath), key, fsutil.FilePermPublic, nil)
}

func (d *debian) writeSourceList(ctx context.Context) error {
	codename := d.profile.Codename()
	if codename == "" {
		return errNoCodename
	}

	arch, err := d.architecture(ctx)
	if err != nil {
		return err
	}

	line := fmt.Sprintf(
		"deb [arch=%s signed-by=/%s] %s/%s %s stable\n",
		arch,
		aptKeyringPath,
		d.opts.DownloadBaseURL,
		d.repository(),
		codename,
	)

	return fsutil.WriteFile(d.opts.path(aptSourceListPath), []byte(line), fsutil.FilePermPublic, nil)
}

// architecture asks dpkg first and falls back to mapping the Go architecture.
func (d *debian) architecture(ctx context.Context) (string, error) {
	if d.opts.Runner != nil {
		result, err := d.opts.Runner.Run(ctx, runner.NewCommand("dpkg", "--print-architecture"))
		if arch := strings.TrimSpace(result.Stdout); err == nil && arch != "" {
			return arch, nil
		}
	}

	arch, ok := dpkgArch[d.opts.Arch]
	if !ok {
		return "", fmt.Errorf("%w %q", errUnknownDpkgArch, d.opts.Arch)
	}

	return arch, nil
}
