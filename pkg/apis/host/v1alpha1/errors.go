package v1alpha1

import "errors"

// ErrInvalidLogLevel is returned when a log level name is not supported.
var ErrInvalidLogLevel = errors.New("invalid log level")
