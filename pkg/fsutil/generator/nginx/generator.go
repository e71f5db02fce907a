// Package nginxgenerator renders the nginx.conf for the nginx proxy.
package nginxgenerator

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"text/template"

	"github.com/devantler-tech/vmprep/pkg/fsutil/generator"
)

const (
	// DefaultPort is the port nginx listens on inside the container.
	DefaultPort = 80
	// DefaultRoot is the directory nginx serves.
	DefaultRoot = "/usr/share/nginx/html"
	// DefaultServerName matches any host.
	DefaultServerName = "localhost"
	maxPort           = 65535
)

// ErrInvalidPort is returned for a port outside 1-65535.
var ErrInvalidPort = errors.New("invalid listen port")

//go:embed templates/nginx.conf.tmpl
var configTemplate string

//nolint:gochecknoglobals // parsed once from the embedded template
var tmpl = template.Must(template.New("nginx.conf").Parse(configTemplate))

// Site describes the single server block. Zero values take the defaults.
type Site struct {
	Port       int
	Root       string
	ServerName string
}

// Generator generates nginx.conf content.
type Generator struct{}

var _ generator.Generator[Site, generator.Options] = (*Generator)(nil)

// NewGenerator creates and returns a new Generator instance.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders site and writes it to opts.Output when set.
func (g *Generator) Generate(site Site, opts generator.Options) (string, error) {
	site = withDefaults(site)

	if site.Port < 1 || site.Port > maxPort {
		return "", fmt.Errorf("%w: %d", ErrInvalidPort, site.Port)
	}

	var buf bytes.Buffer

	err := tmpl.Execute(&buf, site)
	if err != nil {
		return "", fmt.Errorf("render nginx config: %w", err)
	}

	out := buf.String()

	err = generator.Write(out, opts)
	if err != nil {
		return "", fmt.Errorf("write nginx config: %w", err)
	}

	return out, nil
}

func withDefaults(site Site) Site {
	if site.Port == 0 {
		site.Port = DefaultPort
	}

	if site.Root == "" {
		site.Root = DefaultRoot
	}

	if site.ServerName == "" {
		site.ServerName = DefaultServerName
	}

	return site
}
