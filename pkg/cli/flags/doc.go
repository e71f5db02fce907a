// Package flags holds the command-line flag names of vmprep and binds them to
// viper so every flag can also be set through a VMPREP_* environment variable.
package flags
