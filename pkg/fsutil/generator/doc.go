// Package generator provides an interface for generating files from code.
//
// Subpackages:
//   - compose: docker-compose.yml for the nginx proxy
//   - nginx: nginx.conf for the nginx proxy
package generator
