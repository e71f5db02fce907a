// Package svc provides the service layer of vmprep.
//
// This package contains the business logic that coordinates between the CLI
// command and the host: package managers, init systems and the Docker daemon.
//
// Subpackages:
//   - detector: distribution family detection from os-release
//   - identity: the invoking user and home directory
//   - installer: plan execution for the Docker engine and neofetch
//   - network: Docker network creation
//   - platform: per-family install plans, service manager and profile file
//   - provisioner: the ordered provisioning run and its summary
//   - service: Docker service activation and docker group membership
package svc
