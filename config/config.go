package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. TILELEVEL_START_LEVEL
// or TILELEVEL_LOG_LEVEL.
const EnvPrefix = "TILELEVEL"

type Config struct {
	ScreenWidth  int     `mapstructure:"screen_width"`
	ScreenHeight int     `mapstructure:"screen_height"`
	Scale        float64 `mapstructure:"scale"`
	ScrollSpeed  int     `mapstructure:"scroll_speed"`

	StartLevel string `mapstructure:"start_level"`
	LevelsDir  string `mapstructure:"levels_dir"`
	TilesFile  string `mapstructure:"tiles_file"`
	Seed       int64  `mapstructure:"seed"`
	Watch      bool   `mapstructure:"watch"`

	Log Log `mapstructure:"log"`
}

type Log struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("screen_width", 320)
	v.SetDefault("screen_height", 180)
	v.SetDefault("scale", 4.0)
	v.SetDefault("scroll_speed", 2)
	v.SetDefault("start_level", "")
	v.SetDefault("levels_dir", "")
	v.SetDefault("tiles_file", "")
	v.SetDefault("seed", 0)
	v.SetDefault("watch", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
}

// Load reads path, if given, over the defaults and then applies
// environment overrides.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if c.ScreenWidth <= 0 || c.ScreenHeight <= 0 {
		return fmt.Errorf("config: screen size %dx%d", c.ScreenWidth, c.ScreenHeight)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("config: scale %v", c.Scale)
	}
	return nil
}
