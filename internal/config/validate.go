package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/liveline/internal/errors"
)

// Validate checks that numeric settings are usable.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig, "Config is nil", "")
	}
	if cfg.Width < 1 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("width must be at least 1, got %d", cfg.Width),
			"Set width to the column count to assume when the terminal size is unknown, e.g. 80")
	}
	if cfg.Margin < 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("margin can't be negative, got %d", cfg.Margin),
			"Use 0 to let the status line reach the right edge")
	}
	if cfg.LabelMax < 1 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("label_max must be at least 1, got %d", cfg.LabelMax),
			"Pass --label to control the label directly")
	}
	return nil
}

// YAML renders cfg the way it would appear in a config file.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig, "Couldn't render config", "")
	}
	return out, nil
}
