// Package scaffolder writes the nginx proxy project into the user's home.
package scaffolder

import (
	"fmt"
	"path/filepath"

	"github.com/devantler-tech/vmprep/pkg/fsutil"
	"github.com/devantler-tech/vmprep/pkg/fsutil/generator"
	composegenerator "github.com/devantler-tech/vmprep/pkg/fsutil/generator/compose"
	nginxgenerator "github.com/devantler-tech/vmprep/pkg/fsutil/generator/nginx"
	"github.com/devantler-tech/vmprep/pkg/utils/notify"
)

const (
	// ProjectDir is the scaffold directory below the home directory.
	ProjectDir = "nginx"
	// ConfigDir holds nginx.conf.
	ConfigDir = "config"
	// LogsDir is mounted as the nginx log directory.
	LogsDir = "logs"
	// NginxConfigFile is the nginx configuration filename.
	NginxConfigFile = "nginx.conf"
	// ComposeFile is the compose descriptor filename.
	ComposeFile = "docker-compose.yml"
)

// Layout lists the paths of a scaffold.
type Layout struct {
	Root        string
	ConfigDir   string
	LogsDir     string
	NginxConfig string
	Compose     string
}

// LayoutFor returns the scaffold paths below home.
func LayoutFor(home string) Layout {
	root := filepath.Join(home, ProjectDir)

	return Layout{
		Root:        root,
		ConfigDir:   filepath.Join(root, ConfigDir),
		LogsDir:     filepath.Join(root, LogsDir),
		NginxConfig: filepath.Join(root, ConfigDir, NginxConfigFile),
		Compose:     filepath.Join(root, ComposeFile),
	}
}

// Scaffolder generates the nginx proxy files.
type Scaffolder struct {
	NginxGenerator   generator.Generator[nginxgenerator.Site, generator.Options]
	ComposeGenerator generator.Generator[composegenerator.Proxy, generator.Options]
	Printer          *notify.Printer
	Image            string
}

// NewScaffolder creates a new Scaffolder reporting through printer.
func NewScaffolder(printer *notify.Printer) *Scaffolder {
	return &Scaffolder{
		NginxGenerator:   nginxgenerator.NewGenerator(),
		ComposeGenerator: composegenerator.NewGenerator(),
		Printer:          printer,
	}
}

// WithImage overrides the nginx image in the compose file.
func (s *Scaffolder) WithImage(image string) *Scaffolder {
	s.Image = image

	return s
}

// Scaffold creates <home>/nginx with config/ and logs/, then writes
// nginx.conf and docker-compose.yml attached to network. Both files are
// replaced on every call; logs/ is only created.
func (s *Scaffolder) Scaffold(home, network string, owner *fsutil.Owner) (Layout, error) {
	if home == "" {
		return Layout{}, ErrEmptyHome
	}

	layout := LayoutFor(home)

	for _, dir := range []string{layout.ConfigDir, layout.LogsDir} {
		err := fsutil.MkdirAll(dir, fsutil.DirPermPublic, owner)
		if err != nil {
			return layout, fmt.Errorf("%w: %w", ErrLayout, err)
		}
	}

	_, err := s.NginxGenerator.Generate(nginxgenerator.Site{}, generator.Options{
		Output: layout.NginxConfig,
		Owner:  owner,
	})
	if err != nil {
		return layout, fmt.Errorf("%w: %w", ErrNginxConfigGeneration, err)
	}

	s.Printer.Generate("%s", layout.NginxConfig)

	_, err = s.ComposeGenerator.Generate(composegenerator.Proxy{Network: network, Image: s.Image}, generator.Options{
		Output: layout.Compose,
		Owner:  owner,
	})
	if err != nil {
		return layout, fmt.Errorf("%w: %w", ErrComposeGeneration, err)
	}

	s.Printer.Generate("%s", layout.Compose)

	return layout, nil
}
