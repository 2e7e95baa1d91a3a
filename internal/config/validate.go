package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAniList(); err != nil {
		return err
	}
	if err := c.validateMatcher(); err != nil {
		return err
	}
	if err := c.validateSync(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateAniList() error {
	if c.AniList.BaseURL == "" {
		return errors.New("anilist.base_url must be set")
	}
	return nil
}

func (c *Config) validateMatcher() error {
	if c.Matcher.ConfidenceThreshold < 0 || c.Matcher.ConfidenceThreshold > 100 {
		return errors.New("matcher.confidence_threshold must be between 0 and 100")
	}
	if c.Matcher.PreferEnglishTitles && c.Matcher.PreferRomajiTitles {
		return errors.New("matcher.prefer_english_titles and matcher.prefer_romaji_titles are mutually exclusive")
	}
	return nil
}

func (c *Config) validateSync() error {
	if c.Sync.IncrementalJumpThreshold < 2 {
		return errors.New("sync.incremental_jump_threshold must be at least 2")
	}
	if c.Sync.MaxAttempts < 1 {
		return errors.New("sync.max_attempts must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
