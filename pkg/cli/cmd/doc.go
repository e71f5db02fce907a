// Package cmd provides the command-line interface for vmprep.
//
// vmprep has a single root command that provisions the host it runs on.
package cmd
