// Package config provides configuration loading and defaults for repograde.
package config

// DefaultConfigDir is the default location for repograde configuration.
const DefaultConfigDir = "~/.config/repograde"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "repograde.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultScoring holds the default scoring knobs.
var DefaultScoring = Scoring{
	SampleLimit:         20,
	AuditTimeoutSeconds: 30,
}

// DefaultRecommend holds the default recommendation preferences.
var DefaultRecommend = Recommend{
	Top: 10,
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
