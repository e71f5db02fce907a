// Package network ensures the user-defined Docker network exists.
package network

import (
	"context"
	"errors"
	"fmt"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/devantler-tech/vmprep/pkg/client/docker"
	"github.com/devantler-tech/vmprep/pkg/utils/notify"
	"github.com/docker/docker/api/types/filters"
	dockernetwork "github.com/docker/docker/api/types/network"
	"github.com/sirupsen/logrus"
)

const bridgeDriver = "bridge"

// ErrEmptyName is returned when Ensure is called without a network name.
var ErrEmptyName = errors.New("network name cannot be empty")

// Status is the outcome of Ensure.
type Status int

const (
	// Created means the network did not exist and was created.
	Created Status = iota
	// AlreadyExists means a network with the name was found.
	AlreadyExists
	// Failed means the daemon was unreachable or refused the request.
	Failed
)

func (s Status) String() string {
	switch s {
	case Created:
		return "created"
	case AlreadyExists:
		return "already exists"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result reports what Ensure did. Err is set when Status is Failed.
type Result struct {
	Name   string
	Status Status
	ID     string
	Err    error
}

// Provisioner creates Docker networks.
type Provisioner struct {
	newClient docker.NetworkClientFactory
	printer   *notify.Printer
	logger    logrus.FieldLogger
}

// NewProvisioner returns a Provisioner that connects with newClient.
func NewProvisioner(newClient docker.NetworkClientFactory, printer *notify.Printer, logger logrus.FieldLogger) *Provisioner {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Provisioner{newClient: newClient, printer: printer, logger: logger}
}

// Ensure creates a bridge network called name unless one already exists.
// Only an empty name is returned as an error; daemon and API failures are
// reported as informational messages and a Failed result.
func (p *Provisioner) Ensure(ctx context.Context, name string) (Result, error) {
	if name == "" {
		return Result{}, ErrEmptyName
	}

	result := Result{Name: name}

	apiClient, err := p.newClient()
	if err != nil {
		return p.failed(result, err), nil
	}

	defer func() {
		closeErr := apiClient.Close()
		if closeErr != nil {
			p.logger.WithError(closeErr).Debug("failed to close docker client")
		}
	}()

	existing, found, err := findNetwork(ctx, apiClient, name)
	if err != nil {
		return p.failed(result, err), nil
	}

	if found {
		result.Status = AlreadyExists
		result.ID = existing.ID
		p.printer.Info("network '%s' already exists", name)

		return result, nil
	}

	p.printer.Activity("creating network '%s'", name)

	resp, err := apiClient.NetworkCreate(ctx, name, dockernetwork.CreateOptions{Driver: bridgeDriver})
	if err != nil {
		if cerrdefs.IsConflict(err) {
			result.Status = AlreadyExists
			p.printer.Info("network '%s' already exists", name)

			return result, nil
		}

		return p.failed(result, fmt.Errorf("failed to create network: %w", err)), nil
	}

	if resp.Warning != "" {
		p.printer.Warning("%s", resp.Warning)
	}

	result.Status = Created
	result.ID = resp.ID
	p.logger.WithFields(logrus.Fields{"network": name, "id": resp.ID}).Debug("network created")
	p.printer.Success("network '%s' created", name)

	return result, nil
}

func (p *Provisioner) failed(result Result, err error) Result {
	result.Status = Failed
	result.Err = err

	p.logger.WithError(err).WithField("network", result.Name).Debug("network provisioning failed")
	p.printer.Info("could not create network '%s' (%v); create it later with: docker network create %s",
		result.Name, err, result.Name)

	return result
}

// findNetwork returns the network whose name matches exactly. The name
// filter of the list endpoint also matches substrings.
func findNetwork(
	ctx context.Context,
	apiClient docker.NetworkAPI,
	name string,
) (dockernetwork.Summary, bool, error) {
	networks, err := apiClient.NetworkList(ctx, dockernetwork.ListOptions{
		Filters: filters.NewArgs(filters.Arg("name", name)),
	})
	if err != nil {
		return dockernetwork.Summary{}, false, fmt.Errorf("failed to list networks: %w", err)
	}

	for _, candidate := range networks {
		if candidate.Name == name {
			return candidate, true, nil
		}
	}

	return dockernetwork.Summary{}, false, nil
}
