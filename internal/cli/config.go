package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/wikiflowhq/wikiflow/pkg/errors"
)

// Config is the on-disk CLI configuration, read from
// ~/.config/wikiflow/config.toml (or $XDG_CONFIG_HOME/wikiflow/config.toml).
//
// Example:
//
//	[defaults]
//	edges  = "/data/enwiki/edges"
//	target = "Philosophy"
//
//	[redis]
//	addr = "localhost:6379"
//
//	[mongo]
//	uri      = "mongodb://localhost:27017"
//	database = "wikiflow"
type Config struct {
	Defaults DefaultsConfig `toml:"defaults"`
	Redis    RedisConfig    `toml:"redis"`
	Mongo    MongoConfig    `toml:"mongo"`
}

// DefaultsConfig sets per-user defaults for edge source and target.
type DefaultsConfig struct {
	Edges  string `toml:"edges"`
	Target string `toml:"target"`
}

// RedisConfig enables the shared Redis cache when Addr is set.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig enables the run archive when URI is set.
type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{}
}

// ConfigPath returns the config file location following XDG conventions.
func ConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// LoadConfig reads the config file at path, or the default location when path
// is empty. A missing file is not an error and yields DefaultConfig; a file
// that exists but does not parse is reported so typos don't silently revert
// the user to defaults.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		var err error
		if path, err = ConfigPath(); err != nil {
			return DefaultConfig(), nil
		}
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return cfg, nil
}

// configCommandHint is printed when a command needs an edge source and none
// is configured.
func configCommandHint() string {
	path, err := ConfigPath()
	if err != nil {
		path = "~/.config/wikiflow/config.toml"
	}
	return fmt.Sprintf("pass --edges or set defaults.edges in %s", path)
}
