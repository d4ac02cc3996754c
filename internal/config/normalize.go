package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeExtract(); err != nil {
		return err
	}
	c.normalizeEditor()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	c.normalizeGames()
	return nil
}

func (c *Config) normalizeExtract() error {
	c.Extract.OutputDir = strings.TrimSpace(c.Extract.OutputDir)
	if c.Extract.OutputDir != "" {
		expanded, err := expandPath(c.Extract.OutputDir)
		if err != nil {
			return fmt.Errorf("extract.output_dir: %w", err)
		}
		c.Extract.OutputDir = expanded
	}
	c.Extract.Pause = strings.ToLower(strings.TrimSpace(c.Extract.Pause))
	if c.Extract.Pause == "" {
		c.Extract.Pause = defaultPauseMode
	}
	if c.Extract.MagicLength == 0 {
		c.Extract.MagicLength = defaultMagicLength
	}
	return nil
}

func (c *Config) normalizeEditor() {
	if c.Editor.LockTimeoutSeconds == 0 {
		c.Editor.LockTimeoutSeconds = defaultLockTimeoutSeconds
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if file := strings.TrimSpace(c.Logging.File); file != "" {
		expanded, err := expandPath(file)
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = expanded
	}
	return nil
}

func (c *Config) normalizeGames() {
	games := c.Games[:0]
	for _, game := range c.Games {
		game.Name = strings.TrimSpace(game.Name)
		game.Notes = strings.TrimSpace(game.Notes)
		if game.Name == "" {
			continue
		}
		games = append(games, game)
	}
	c.Games = games
}
