// Package config loads application settings from ~/.rota.yaml, the
// environment, and defaults.
package config

import (
	"fmt"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config carries the resolved application settings.
type Config struct {
	BaseURL          string
	Timeout          time.Duration
	AutoSaveInterval time.Duration
	StoragePath      string
}

// Load reads configuration. Files named .rota (yaml implicit) are searched in
// the home directory and the working directory; ROTA_* environment variables
// override file values, for example ROTA_API_BASE_URL.
func Load() (Config, error) {
	v := viper.New()
	v.SetDefault("api.base_url", "http://localhost:5000")
	v.SetDefault("api.timeout", "10s")
	v.SetDefault("autosave.interval", "30s")
	v.SetDefault("storage.path", "~/.rota")
	v.SetConfigName(".rota") // .yaml is implicit
	v.SetEnvPrefix("ROTA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("config: reading config file: %w", err)
		}
	}

	storage, err := homedir.Expand(v.GetString("storage.path"))
	if err != nil {
		return Config{}, fmt.Errorf("config: expanding storage path: %w", err)
	}

	return Config{
		BaseURL:          v.GetString("api.base_url"),
		Timeout:          v.GetDuration("api.timeout"),
		AutoSaveInterval: v.GetDuration("autosave.interval"),
		StoragePath:      storage,
	}, nil
}
