package app

import "errors"

// Config holds everything an App instance needs to run.
type Config struct {
	ConfigPath string // hcl file or directory

	// CLI-level overrides, layered on top of the loaded config.
	ContentURL  string
	ContentFile string
	SkyboxURL   string

	LogFormat  string
	LogLevel   string
	StatusPort int
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" && cfg.ContentURL == "" {
		return nil, errors.New("either a config path or a content URL is required")
	}
	return &cfg, nil
}
