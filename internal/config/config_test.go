package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Matcher.ConfidenceThreshold != defaultConfidenceThreshold {
		t.Errorf("confidence threshold = %v, want %v", cfg.Matcher.ConfidenceThreshold, defaultConfidenceThreshold)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Error("expected exists=false for missing file")
	}
	if resolved != path {
		t.Errorf("resolved = %q, want %q", resolved, path)
	}
	if cfg.AniList.BaseURL != defaultAniListBaseURL {
		t.Errorf("base_url = %q, want default", cfg.AniList.BaseURL)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		"[matcher]",
		"confidence_threshold = 80.0",
		"prefer_english_titles = true",
		"prefer_romaji_titles = false",
		"",
		"[sync]",
		"incremental_jump_threshold = 5",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected exists=true")
	}
	if cfg.Matcher.ConfidenceThreshold != 80.0 {
		t.Errorf("confidence_threshold = %v, want 80", cfg.Matcher.ConfidenceThreshold)
	}
	if !cfg.Matcher.PreferEnglishTitles {
		t.Error("expected prefer_english_titles=true")
	}
	if cfg.Sync.IncrementalJumpThreshold != 5 {
		t.Errorf("incremental_jump_threshold = %d, want 5", cfg.Sync.IncrementalJumpThreshold)
	}
	// Unset sections keep defaults.
	if cfg.Sync.MaxAttempts != defaultMaxAttempts {
		t.Errorf("max_attempts = %d, want default", cfg.Sync.MaxAttempts)
	}
}

func TestLoadRejectsConflictingPreferences(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "[matcher]\nprefer_english_titles = true\nprefer_romaji_titles = true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected validation error for conflicting title preferences")
	}
}

func TestTokenEnvFallback(t *testing.T) {
	t.Setenv("ANILIST_TOKEN", "env-token")
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.AniList.Token != "env-token" {
		t.Errorf("token = %q, want env fallback", cfg.AniList.Token)
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := WriteSample(path); err != nil {
		t.Fatalf("WriteSample: %v", err)
	}
	if err := WriteSample(path); err == nil {
		t.Fatal("expected error when overwriting existing config")
	}
}
