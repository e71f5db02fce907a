// Package detector inspects the host before anything is changed on it.
//
// Subpackages:
//   - distro: os-release parsing and distribution family classification
package detector
