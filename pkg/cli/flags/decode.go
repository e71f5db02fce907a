package flags

import (
	"fmt"
	"reflect"

	v1alpha1 "github.com/devantler-tech/vmprep/pkg/apis/host/v1alpha1"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Decode unmarshals every bound flag and VMPREP_* variable in v into target,
// matching keys against `mapstructure` tags. Enum values are validated.
func Decode(v *viper.Viper, target any) error {
	decoderConfig := func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			logLevelDecodeHook(),
		)
	}

	err := v.Unmarshal(target, decoderConfig)
	if err != nil {
		return fmt.Errorf("failed to decode settings: %w", err)
	}

	return nil
}

func logLevelDecodeHook() mapstructure.DecodeHookFuncType {
	levelType := reflect.TypeFor[v1alpha1.LogLevel]()

	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to != levelType || from.Kind() != reflect.String {
			return data, nil
		}

		var level v1alpha1.LogLevel

		err := level.Set(reflect.ValueOf(data).String())
		if err != nil {
			return nil, err
		}

		return level, nil
	}
}
