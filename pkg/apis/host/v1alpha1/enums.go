package v1alpha1

import (
	"fmt"
	"strings"
)

// --- Family ---

// Family is the group of distributions that share a package manager and
// Docker repository layout.
type Family string

const (
	// FamilyDebian covers Debian, Ubuntu and their derivatives.
	FamilyDebian Family = "debian"
	// FamilyRHEL covers RHEL and its rebuilds (CentOS, Rocky, AlmaLinux, Oracle Linux).
	FamilyRHEL Family = "rhel"
	// FamilyFedora covers Fedora.
	FamilyFedora Family = "fedora"
	// FamilyAlpine covers Alpine Linux.
	FamilyAlpine Family = "alpine"
)

// ValidFamilies returns the supported families in detection order.
func ValidFamilies() []Family {
	return []Family{FamilyDebian, FamilyRHEL, FamilyFedora, FamilyAlpine}
}

// FamilyNames returns the supported family names in detection order.
func FamilyNames() []string {
	names := make([]string, 0, len(ValidFamilies()))
	for _, family := range ValidFamilies() {
		names = append(names, string(family))
	}

	return names
}

// InitSystem returns the service manager the family ships with.
func (f *Family) InitSystem() InitSystem {
	if *f == FamilyAlpine {
		return InitSystemOpenRC
	}

	return InitSystemSystemd
}

// --- PackageManager ---

// PackageManager is the native package tool of a distribution.
type PackageManager string

const (
	// PackageManagerApt is used by the debian family.
	PackageManagerApt PackageManager = "apt"
	// PackageManagerDnf is used by fedora and by rhel 8 and later.
	PackageManagerDnf PackageManager = "dnf"
	// PackageManagerYum is used by rhel hosts without dnf.
	PackageManagerYum PackageManager = "yum"
	// PackageManagerApk is used by alpine.
	PackageManagerApk PackageManager = "apk"
)

// --- InitSystem ---

// InitSystem is the service manager used to enable and start the container runtime.
type InitSystem string

const (
	// InitSystemSystemd manages units with systemctl or over D-Bus.
	InitSystemSystemd InitSystem = "systemd"
	// InitSystemOpenRC manages services with rc-update and rc-service.
	InitSystemOpenRC InitSystem = "openrc"
)

// --- LogLevel ---

// LogLevel controls how much diagnostic output is written to stderr.
type LogLevel string

const (
	// LogLevelError logs only errors.
	LogLevelError LogLevel = "error"
	// LogLevelWarn logs warnings and errors.
	LogLevelWarn LogLevel = "warn"
	// LogLevelInfo adds informational entries.
	LogLevelInfo LogLevel = "info"
	// LogLevelDebug adds command traces and streams command output.
	LogLevelDebug LogLevel = "debug"
	// LogLevelTrace adds every file write and API request.
	LogLevelTrace LogLevel = "trace"
)

// ValidLogLevels returns the supported log levels from quietest to loudest.
func ValidLogLevels() []LogLevel {
	return []LogLevel{LogLevelError, LogLevelWarn, LogLevelInfo, LogLevelDebug, LogLevelTrace}
}

// Set implements pflag.Value.
func (l *LogLevel) Set(value string) error {
	for _, level := range ValidLogLevels() {
		if strings.EqualFold(value, string(level)) {
			*l = level

			return nil
		}
	}

	return fmt.Errorf(
		"%w: %s (valid options: %s)",
		ErrInvalidLogLevel,
		value,
		strings.Join(l.ValidValues(), ", "),
	)
}

// String returns the level name.
func (l *LogLevel) String() string {
	return string(*l)
}

// Type returns the flag type name.
func (l *LogLevel) Type() string {
	return "LogLevel"
}

// Verbose reports whether command output should be streamed.
func (l *LogLevel) Verbose() bool {
	return *l == LogLevelDebug || *l == LogLevelTrace
}

// ValidValues returns the supported level names.
func (l *LogLevel) ValidValues() []string {
	values := make([]string, 0, len(ValidLogLevels()))
	for _, level := range ValidLogLevels() {
		values = append(values, string(level))
	}

	return values
}
