package scaffolder

import "errors"

// Scaffolding errors.
var (
	// ErrEmptyHome indicates no home directory was given to scaffold into.
	ErrEmptyHome = errors.New("home directory cannot be empty")

	// ErrLayout wraps failures when creating the scaffold directories.
	ErrLayout = errors.New("failed to create nginx directories")

	// ErrNginxConfigGeneration wraps failures when creating nginx.conf.
	ErrNginxConfigGeneration = errors.New("failed to generate nginx configuration")

	// ErrComposeGeneration wraps failures when creating docker-compose.yml.
	ErrComposeGeneration = errors.New("failed to generate compose file")
)
