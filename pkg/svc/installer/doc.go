// Package installer installs host packages by executing ordered plans of
// package-manager commands.
//
// Subpackages:
//   - runtime: the Docker engine and compose plugin
//   - sysinfo: the neofetch system-info tool
package installer
