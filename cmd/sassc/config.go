package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// fileConfig is the shape of .sassrc.yaml, read via Viper per spec.md §6's
// load-paths/package-config/style/charset options. CLI flags take
// precedence over this, which takes precedence over Options's own zero
// defaults (spec.md §6; applyOptionDefaults-style layering).
type fileConfig struct {
	LoadPaths     []string          `mapstructure:"load-paths"`
	PackageConfig map[string]string `mapstructure:"package-config"`
	Style         string            `mapstructure:"style"`
	Charset       *bool             `mapstructure:"charset"`
}

func loadFileConfig() (fileConfig, error) {
	var cfg fileConfig

	v := viper.New()
	v.SetConfigName(".sassrc")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("sassc")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return cfg, err
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing .sassrc.yaml: %w", err)
	}
	return cfg, nil
}
