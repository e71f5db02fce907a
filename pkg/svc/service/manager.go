// Package service enables and starts the container runtime and grants the
// invoking user access to it.
package service

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrUnitStart is returned when a start job does not finish with "done".
	ErrUnitStart = errors.New("service failed to start")

	// ErrNoManager is returned when no Manager handles the host's init system.
	ErrNoManager = errors.New("no service manager for init system")
)

// Manager enables a service at boot and starts it now.
type Manager interface {
	EnableAndStart(ctx context.Context, name string) error
}

// unitName appends ".service" to bare service names.
func unitName(name string) string {
	if strings.Contains(name, ".") {
		return name
	}

	return name + ".service"
}
