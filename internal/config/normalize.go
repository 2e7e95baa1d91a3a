package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeAniList()
	c.normalizeMatcher()
	c.normalizeSync()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeAniList() {
	c.AniList.BaseURL = strings.TrimRight(strings.TrimSpace(c.AniList.BaseURL), "/")
	if c.AniList.BaseURL == "" {
		c.AniList.BaseURL = defaultAniListBaseURL
	}
	c.AniList.Token = strings.TrimSpace(c.AniList.Token)
	if c.AniList.Token == "" {
		c.AniList.Token = strings.TrimSpace(os.Getenv("ANILIST_TOKEN"))
	}
	if c.AniList.RequestTimeout <= 0 {
		c.AniList.RequestTimeout = defaultAniListRequestTimeout
	}
}

func (c *Config) normalizeMatcher() {
	if c.Matcher.MaxMatches <= 0 {
		c.Matcher.MaxMatches = defaultMaxMatches
	}
	if c.Matcher.MinTitleLength <= 0 {
		c.Matcher.MinTitleLength = defaultMinTitleLength
	}
	if c.Matcher.CacheTTLMinutes <= 0 {
		c.Matcher.CacheTTLMinutes = defaultCacheTTLMinutes
	}
}

func (c *Config) normalizeSync() {
	if c.Sync.IncrementalJumpThreshold <= 0 {
		c.Sync.IncrementalJumpThreshold = defaultIncrementalJumpThreshold
	}
	if c.Sync.MaxAttempts <= 0 {
		c.Sync.MaxAttempts = defaultMaxAttempts
	}
	if c.Sync.RateLimitFallbackSeconds <= 0 {
		c.Sync.RateLimitFallbackSeconds = defaultRateLimitFallbackSeconds
	}
	if c.Sync.ServerErrorRetrySeconds <= 0 {
		c.Sync.ServerErrorRetrySeconds = defaultServerErrorRetrySeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
