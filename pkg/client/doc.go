// Package client holds thin constructors for the external APIs vmprep talks to.
//
// Subpackages:
//   - docker: Docker Engine API client
package client
