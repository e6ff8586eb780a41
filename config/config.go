// Package config registers the configuration fields and loads them through viper.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/vres-cli/vres/constant"
	"github.com/vres-cli/vres/filesystem"
	"github.com/vres-cli/vres/icon"
	"github.com/vres-cli/vres/key"
	"github.com/vres-cli/vres/where"
)

// EnvKeyReplacer maps configuration keys onto environment variable names.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup binds defaults and VRES_* variables, then reads vres.toml from the config directory when present.
func Setup() error {
	viper.SetConfigName(constant.Vres)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Vres)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	err := viper.ReadInConfig()
	if err != nil && !errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return fmt.Errorf("read config: %w", err)
	}

	return validate()
}

// validate rejects values that parse but make no sense.
func validate() error {
	var errs []error

	if variant := viper.GetString(key.IconsVariant); !lo.Contains(icon.AvailableVariants(), variant) {
		errs = append(errs, fmt.Errorf("%s: unknown variant %q", key.IconsVariant, variant))
	}

	if viper.GetInt(key.BrowsePreviewBytes) < 0 {
		errs = append(errs, fmt.Errorf("%s: must not be negative", key.BrowsePreviewBytes))
	}

	return errors.Join(errs...)
}
