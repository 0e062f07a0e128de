package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/robbyt/go-polytemplate/engines/types"
)

const envPrefix = "POLYTEMPLATE"

// cliConfig is the merged result of flags, POLYTEMPLATE_* variables and an
// optional polytemplate.yaml in the working directory.
type cliConfig struct {
	Engine   string `mapstructure:"engine"`
	Strict   bool   `mapstructure:"strict"`
	LogLevel string `mapstructure:"log-level"`
	LogFile  string `mapstructure:"log-file"`
	NullText string `mapstructure:"null-text"`
	Config   string `mapstructure:"config"`
}

func defaultConfig() cliConfig {
	return cliConfig{
		Engine:   types.Default.String(),
		LogLevel: "warn",
	}
}

// loadConfig layers flags over environment over the config file over defaults.
func loadConfig(flags *pflag.FlagSet) (cliConfig, error) {
	cfg := defaultConfig()

	v := viper.New()
	v.SetDefault("engine", cfg.Engine)
	v.SetDefault("log-level", cfg.LogLevel)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{"engine", "strict", "log-level", "log-file", "null-text", "config"} {
		_ = v.BindEnv(key)
	}
	if err := v.BindPFlags(flags); err != nil {
		return cfg, fmt.Errorf("failed to bind flags: %w", err)
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("polytemplate")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return cfg, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := types.Parse(cfg.Engine); err != nil {
		return cfg, err
	}
	return cfg, nil
}
