// Package docker creates Docker Engine API clients.
package docker

import (
	"context"
	"errors"
	"fmt"

	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/client"
)

// ErrUnexpectedDockerClientType is returned when the Docker client has an unexpected concrete type.
var ErrUnexpectedDockerClientType = errors.New("unexpected docker client type")

// NetworkAPI is the part of the Engine API used to manage networks.
type NetworkAPI interface {
	NetworkList(ctx context.Context, options network.ListOptions) ([]network.Summary, error)
	NetworkCreate(ctx context.Context, name string, options network.CreateOptions) (network.CreateResponse, error)
	Close() error
}

// NetworkClientFactory creates a NetworkAPI on demand. Creation is deferred
// because the daemon is installed during the same run.
type NetworkClientFactory func() (NetworkAPI, error)

// GetDockerClient creates a Docker client using environment configuration
// (DOCKER_HOST and friends) with API version negotiation.
func GetDockerClient() (client.APIClient, error) {
	dockerClient, err := client.NewClientWithOpts(
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}

	return dockerClient, nil
}

// GetNetworkClient is a NetworkClientFactory backed by GetDockerClient.
func GetNetworkClient() (NetworkAPI, error) {
	dockerClient, err := GetDockerClient()
	if err != nil {
		return nil, err
	}

	networkClient, ok := dockerClient.(NetworkAPI)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnexpectedDockerClientType, dockerClient)
	}

	return networkClient, nil
}
