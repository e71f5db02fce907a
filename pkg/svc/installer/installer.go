package installer

import "context"

// Installer installs one component on the host.
type Installer interface {
	// Install installs the component.
	Install(ctx context.Context) error
}
