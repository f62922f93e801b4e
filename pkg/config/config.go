// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"errors"

	"github.com/spf13/viper"
)

// Config wraps viper access to the CLI settings file
// (~/.sas-cli/cli.json). Profiles live separately in profiles.yaml,
// this file holds tool preferences only.
type Config struct{}

func New() *Config {
	return &Config{}
}

func (*Config) GetConfigStringValue(key string) string {
	return viper.GetString(key)
}

func (*Config) GetConfigBoolValue(key string) bool {
	return viper.GetBool(key)
}

func (*Config) GetConfigIntValue(key string) int {
	return viper.GetInt(key)
}

func (*Config) ConfigValueIsSet(key string) bool {
	return viper.IsSet(key)
}

func (*Config) ConfigFileExists() bool {
	return viper.ConfigFileUsed() != ""
}

func (*Config) SetConfigValue(key string, value interface{}) error {
	viper.Set(key, value)
	err := viper.WriteConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		// first write, the settings file does not exist yet
		return viper.SafeWriteConfig()
	}
	return err
}

// GetConfigPath returns the path to the configuration file
func (*Config) GetConfigPath() string {
	return viper.ConfigFileUsed()
}

// AllSettings returns every effective setting as a flat map
func (*Config) AllSettings() map[string]interface{} {
	return viper.AllSettings()
}
