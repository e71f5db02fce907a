package flags

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes environment variables that mirror flags.
	EnvPrefix = "VMPREP"

	// LogLevelFlagName selects the diagnostic log level.
	LogLevelFlagName = "log-level"
	// TimingFlagName enables per-step timing output.
	TimingFlagName = "timing"
	// OSReleaseFlagName overrides the os-release file.
	OSReleaseFlagName = "os-release"
	// ImageFlagName overrides the nginx image in the generated compose file.
	ImageFlagName = "image"
)

// NewViper returns a viper instance reading VMPREP_* variables, with dashes
// in flag names mapped to underscores.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// Bind registers the named flags of flagSet with v.
func Bind(v *viper.Viper, flagSet *pflag.FlagSet, names ...string) error {
	for _, name := range names {
		flag := flagSet.Lookup(name)
		if flag == nil {
			return fmt.Errorf("bind flag %q: %w", name, errUnknownFlag)
		}

		err := v.BindPFlag(name, flag)
		if err != nil {
			return fmt.Errorf("bind flag %q: %w", name, err)
		}
	}

	return nil
}
