// Package cli provides the command wiring of vmprep.
//
// This package is organized into subpackages:
//
//   - cli/cmd: the root command and its execution
//   - cli/flags: flag names and their VMPREP_* environment bindings
//   - cli/ui: interactive components (errorhandler, prompt)
//
// Commands resolve their services from the pkg/di runtime so tests can
// replace any dependency that touches the host.
package cli
