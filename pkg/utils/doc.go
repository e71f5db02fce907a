// Package utils provides utility packages for common operations.
//
// This package contains subpackages with utility functions used across
// vmprep:
//
//   - notify: Formatted message display with symbols, colors, and timing
//   - timer: Execution time tracking for single and multi-stage operations
package utils
