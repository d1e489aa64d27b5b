package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings for the engine and its reaper.
type Config struct {
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Reaper struct {
		Interval           time.Duration `yaml:"interval"`
		StalenessThreshold time.Duration `yaml:"staleness_threshold"`
	} `yaml:"reaper"`
}

// Defaults returns the configuration used when no config file exists:
// database under the user's home directory, a 60s reaper sweep, and a
// 5 minute staleness threshold.
func Defaults() *Config {
	cfg := &Config{}
	cfg.Reaper.Interval = 60 * time.Second
	cfg.Reaper.StalenessThreshold = 5 * time.Minute
	if home, err := os.UserHomeDir(); err == nil {
		cfg.Database.Path = filepath.Join(home, ".timeclock", "timeclock.db")
	} else {
		cfg.Database.Path = "timeclock.db"
	}
	return cfg
}

// Load reads configuration from the YAML file at path, expanding ${VAR}
// placeholders from the environment. Missing file yields the defaults.
// TIMECLOCK_DB overrides the database path regardless of file contents.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path == "" {
		path = os.Getenv("TIMECLOCK_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		} else {
			content := expandEnv(string(data))
			if err := yaml.Unmarshal([]byte(content), cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		}
	}

	if dbPath := os.Getenv("TIMECLOCK_DB"); dbPath != "" {
		cfg.Database.Path = dbPath
	}

	if cfg.Reaper.Interval <= 0 {
		return nil, fmt.Errorf("reaper interval must be positive")
	}
	if cfg.Reaper.StalenessThreshold <= 0 {
		return nil, fmt.Errorf("staleness threshold must be positive")
	}
	return cfg, nil
}

// expandEnv replaces ${VAR} placeholders with environment values.
func expandEnv(content string) string {
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 {
			continue
		}
		content = strings.ReplaceAll(content, "${"+pair[0]+"}", pair[1])
	}
	return content
}
