package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level repograde configuration.
type Config struct {
	Scoring   Scoring   `mapstructure:"scoring"`
	Recommend Recommend `mapstructure:"recommend"`
	Output    Output    `mapstructure:"output"`
	DBPath    string    `mapstructure:"db_path"`
}

// Scoring defines the scoring knobs.
type Scoring struct {
	// SampleLimit bounds how many files a content check may scan.
	SampleLimit int `mapstructure:"sample_limit"`

	// AuditTimeoutSeconds bounds the external vulnerability audit tool.
	AuditTimeoutSeconds int `mapstructure:"audit_timeout_seconds"`

	// DisableAudit skips the external audit tool entirely.
	DisableAudit bool `mapstructure:"disable_audit"`
}

// Recommend defines recommendation preferences.
type Recommend struct {
	// Top is how many ranked recommendations to show.
	Top int `mapstructure:"top"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("scoring.sample_limit", DefaultScoring.SampleLimit)
	v.SetDefault("scoring.audit_timeout_seconds", DefaultScoring.AuditTimeoutSeconds)
	v.SetDefault("scoring.disable_audit", DefaultScoring.DisableAudit)
	v.SetDefault("recommend.top", DefaultRecommend.Top)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)
	v.SetDefault("db_path", filepath.Join(DefaultConfigDir, DefaultDBName))

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		configDir := expandPath(DefaultConfigDir)
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only return error for problems other than file not found.
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.DBPath = expandPath(cfg.DBPath)
	return &cfg, nil
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
