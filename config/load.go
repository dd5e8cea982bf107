package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/viper"
)

// Load reads configuration from the provided path. If path is empty,
// uses DefaultPath. A missing file is not an error; defaults apply.
func Load(path string) (Config, error) {
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	cfg := Default()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("tab_width", cfg.TabWidth)
	v.SetDefault("vi_keys", cfg.ViKeys)
	v.SetDefault("status_bar", cfg.StatusBar)
	v.SetDefault("watch", cfg.Watch)
	v.SetDefault("debug", cfg.Debug)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.TabWidth = v.GetInt("tab_width")
	cfg.ViKeys = v.GetBool("vi_keys")
	cfg.StatusBar = v.GetBool("status_bar")
	cfg.Watch = v.GetBool("watch")
	cfg.Debug = v.GetBool("debug")

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
