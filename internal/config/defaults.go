package config

const (
	defaultStateDir                 = "~/.local/share/mangasync"
	defaultLogDir                   = "~/.local/share/mangasync/logs"
	defaultAniListBaseURL           = "https://graphql.anilist.co"
	defaultAniListRequestTimeout    = 30
	defaultConfidenceThreshold      = 72.0
	defaultMaxMatches               = 5
	defaultMinTitleLength           = 3
	defaultCacheTTLMinutes          = 10
	defaultIncrementalJumpThreshold = 10
	defaultMaxAttempts              = 3
	defaultRateLimitFallbackSeconds = 60
	defaultServerErrorRetrySeconds  = 3
	defaultLogFormat                = "console"
	defaultLogLevel                 = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		AniList: AniList{
			BaseURL:        defaultAniListBaseURL,
			RequestTimeout: defaultAniListRequestTimeout,
		},
		Matcher: Matcher{
			ConfidenceThreshold:  defaultConfidenceThreshold,
			MaxMatches:           defaultMaxMatches,
			MinTitleLength:       defaultMinTitleLength,
			UseAlternativeTitles: true,
			PreferRomajiTitles:   true,
			CacheTTLMinutes:      defaultCacheTTLMinutes,
		},
		Sync: Sync{
			NormalizeScores:          true,
			IncrementalJumpThreshold: defaultIncrementalJumpThreshold,
			MaxAttempts:              defaultMaxAttempts,
			RateLimitFallbackSeconds: defaultRateLimitFallbackSeconds,
			ServerErrorRetrySeconds:  defaultServerErrorRetrySeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
