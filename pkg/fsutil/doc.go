// Package fsutil provides filesystem helpers for writing files on behalf of
// another user.
//
// Key functionality:
//   - File writing: WriteFile
//   - Ownership: Owner, MkdirAll
//   - Path operations: ExpandHomePath, HasHomePrefix, ShortenHomePath
//
// Subpackages:
//   - generator: renders configuration files from Go values
//   - scaffolder: writes the nginx proxy scaffold
//   - profile: patches login shell profiles
package fsutil
