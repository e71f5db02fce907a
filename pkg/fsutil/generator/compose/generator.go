// Package composegenerator renders the docker-compose.yml for the nginx proxy.
package composegenerator

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/devantler-tech/vmprep/pkg/fsutil/generator"
	"github.com/docker/go-connections/nat"
	"github.com/google/go-containerregistry/pkg/name"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultImage is the nginx image used when none is set.
	DefaultImage = "nginx:stable"
	// DefaultPort is used for an unset host or container port.
	DefaultPort = 80

	serviceName = "nginx"
	yamlIndent  = 2
	header      = "# Generated by vmprep. This file is rewritten on every run.\n"
)

var (
	// ErrEmptyNetwork is returned when the proxy has no network to attach to.
	ErrEmptyNetwork = errors.New("compose network name cannot be empty")
	// ErrInvalidImage is returned for an image that is not a valid reference.
	ErrInvalidImage = errors.New("invalid image reference")
	// ErrInvalidPort is returned for a port mapping Docker would reject.
	ErrInvalidPort = errors.New("invalid port mapping")
)

// Proxy describes the nginx proxy deployment.
type Proxy struct {
	// Network is the external Docker network the proxy joins.
	Network string
	// Image overrides DefaultImage.
	Image string
	// HostPort and ContainerPort default to DefaultPort.
	HostPort      int
	ContainerPort int
}

// File is the subset of the compose file format the proxy uses.
type File struct {
	Services map[string]Service         `yaml:"services"`
	Networks map[string]ExternalNetwork `yaml:"networks"`
}

// Service is a compose service definition.
type Service struct {
	Image         string   `yaml:"image"`
	ContainerName string   `yaml:"container_name"`
	Restart       string   `yaml:"restart"`
	Ports         []string `yaml:"ports"`
	Volumes       []string `yaml:"volumes"`
	Networks      []string `yaml:"networks"`
}

// ExternalNetwork declares a network managed outside compose.
type ExternalNetwork struct {
	External bool `yaml:"external"`
}

// Generator generates docker-compose.yml content.
type Generator struct{}

var _ generator.Generator[Proxy, generator.Options] = (*Generator)(nil)

// NewGenerator creates and returns a new Generator instance.
func NewGenerator() *Generator {
	return &Generator{}
}

// Build returns the compose model for proxy.
func Build(proxy Proxy) (File, error) {
	if proxy.Network == "" {
		return File{}, ErrEmptyNetwork
	}

	image := proxy.Image
	if image == "" {
		image = DefaultImage
	}

	_, err := name.NewTag(image)
	if err != nil {
		return File{}, fmt.Errorf("%w %q: %w", ErrInvalidImage, image, err)
	}

	ports, err := portMapping(proxy.HostPort, proxy.ContainerPort)
	if err != nil {
		return File{}, err
	}

	return File{
		Services: map[string]Service{
			serviceName: {
				Image:         image,
				ContainerName: serviceName,
				Restart:       "always",
				Ports:         []string{ports},
				Volumes: []string{
					"./config/nginx.conf:/etc/nginx/nginx.conf:ro",
					"./logs:/var/log/nginx",
				},
				Networks: []string{proxy.Network},
			},
		},
		Networks: map[string]ExternalNetwork{
			proxy.Network: {External: true},
		},
	}, nil
}

func portMapping(hostPort, containerPort int) (string, error) {
	if hostPort == 0 {
		hostPort = DefaultPort
	}

	if containerPort == 0 {
		containerPort = DefaultPort
	}

	portSpec := fmt.Sprintf("%d:%d/tcp", hostPort, containerPort)

	mappings, err := nat.ParsePortSpec(portSpec)
	if err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrInvalidPort, portSpec, err)
	}

	if len(mappings) != 1 {
		return "", fmt.Errorf("%w %q", ErrInvalidPort, portSpec)
	}

	mapping := mappings[0]

	return mapping.Binding.HostPort + ":" + mapping.Port.Port(), nil
}

// Generate renders proxy as YAML and writes it to opts.Output when set.
func (g *Generator) Generate(proxy Proxy, opts generator.Options) (string, error) {
	file, err := Build(proxy)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer

	buf.WriteString(header)

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(yamlIndent)

	err = encoder.Encode(file)
	if err != nil {
		return "", fmt.Errorf("marshal compose file: %w", err)
	}

	err = encoder.Close()
	if err != nil {
		return "", fmt.Errorf("marshal compose file: %w", err)
	}

	out := buf.String()

	err = generator.Write(out, opts)
	if err != nil {
		return "", fmt.Errorf("write compose file: %w", err)
	}

	return out, nil
}
