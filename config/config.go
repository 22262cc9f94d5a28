// Package config registers every setting with viper and loads the config file.
package config

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/natty-misc/ymd3/constant"
	"github.com/natty-misc/ymd3/filesystem"
	"github.com/natty-misc/ymd3/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer maps a setting key to its environment variable suffix.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup binds defaults and YMD_* environment variables, then reads ymd.toml
// from the config directory if it exists. A .env file in the working
// directory is loaded first and never overrides the real environment.
func Setup() error {
	_ = godotenv.Load()

	viper.SetConfigName(constant.App)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.App)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	viper.SetTypeByDefaultValue(true)

	for name, field := range Default {
		viper.MustBindEnv(name)
		viper.SetDefault(name, field.Value)
	}

	err := viper.ReadInConfig()
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return nil
	}
	return err
}
