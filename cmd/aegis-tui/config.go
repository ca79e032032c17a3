package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/aegisgate/aegis/internal/model"
)

// cliConfig holds only dashboard-relevant configuration.
type cliConfig struct {
	APIURL          string        `mapstructure:"api-url"`
	APIToken        string        `mapstructure:"api-token"`
	RefreshInterval time.Duration `mapstructure:"refresh-interval"`
	RequestTimeout  time.Duration `mapstructure:"request-timeout"`
	LogFile         string        `mapstructure:"log-file"`
}

func loadCLIConfig(configPath string) (cliConfig, error) {
	var cfg cliConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("AEGIS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("api-url", "http://localhost:5000/api")
	v.SetDefault("api-token", "")
	v.SetDefault("refresh-interval", model.DefaultRefreshInterval)
	v.SetDefault("request-timeout", model.DefaultRequestTimeout)
	v.SetDefault("log-file", "")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "aegis", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}
