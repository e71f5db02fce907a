package di

import (
	"fmt"

	"github.com/devantler-tech/vmprep/pkg/svc/provisioner"
	"github.com/devantler-tech/vmprep/pkg/utils/timer"
	"github.com/samber/do/v2"
)

// ResolveTimer retrieves the timer dependency from the injector with consistent error handling.
func ResolveTimer(injector Injector) (timer.Timer, error) {
	tmr, err := do.Invoke[timer.Timer](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve timer dependency: %w", err)
	}

	return tmr, nil
}

// ResolveProvisioner retrieves the fully wired provisioner.
func ResolveProvisioner(injector Injector) (*provisioner.Provisioner, error) {
	prov, err := do.Invoke[*provisioner.Provisioner](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve provisioner dependency: %w", err)
	}

	return prov, nil
}
