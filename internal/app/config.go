package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SweepPath   string // hcl sweep file or directory
	OutputDir   string // where job scripts are written
	OptionsPath string // optional YAML script-options file
	DryRun      bool   // print the listing instead of writing scripts

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.SweepPath == "" {
		return nil, errors.New("SweepPath is a required configuration field and cannot be empty")
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "jobs"
	}
	return &cfg, nil
}
