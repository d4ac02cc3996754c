package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateExtract(); err != nil {
		return err
	}
	if err := c.validateEditor(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateExtract() error {
	switch c.Extract.Pause {
	case PauseAlways, PauseAuto, PauseNever:
	default:
		return fmt.Errorf("extract.pause must be one of %q, %q, %q (got %q)", PauseAlways, PauseAuto, PauseNever, c.Extract.Pause)
	}
	if c.Extract.MagicLength < 1 {
		return errors.New("extract.magic_length must be positive")
	}
	return nil
}

func (c *Config) validateEditor() error {
	if c.Editor.LockTimeoutSeconds < 0 {
		return errors.New("editor.lock_timeout_seconds must be zero or positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error (got %q)", c.Logging.Level)
	}
	return nil
}
