// Package host groups the versioned types that describe the provisioned machine.
package host
