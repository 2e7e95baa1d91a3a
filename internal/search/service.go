package search

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"mangasync/internal/anilist"
	"mangasync/internal/logging"
	"mangasync/internal/textnorm"
)

// Searcher is the subset of catalog client functionality the service
// needs.
type Searcher interface {
	SearchManga(ctx context.Context, title string, page int, token string) ([]anilist.Media, error)
}

// Options adjust a single search call.
type Options struct {
	Page int
	// BypassCache forces a live fetch and refreshes the cached entry.
	BypassCache bool
}

type cacheEntry struct {
	results []anilist.Media
	expires time.Time
}

// Service caches search results under normalized title keys so the
// same work spelled differently collides onto one entry. Safe for
// concurrent use.
type Service struct {
	client      Searcher
	token       string
	cacheTTL    time.Duration
	minInterval time.Duration
	logger      *slog.Logger

	mu         sync.Mutex
	cache      map[string]cacheEntry
	gens       map[string]uint64
	epoch      uint64
	lastLookup time.Time
}

// NewService wraps the client with a cache holding entries for ttl.
func NewService(client Searcher, ttl time.Duration, token string, logger *slog.Logger) *Service {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Service{
		client:      client,
		token:       token,
		cacheTTL:    ttl,
		minInterval: 250 * time.Millisecond,
		logger:      logging.NewComponentLogger(logger, "search"),
		cache:       make(map[string]cacheEntry),
		gens:        make(map[string]uint64),
		lastLookup:  time.Unix(0, 0),
	}
}

// SearchByTitle returns catalog candidates for the title, from cache
// when a fresh entry exists. Concurrent calls are paced so back-to-back
// live lookups keep a minimum spacing.
func (s *Service) SearchByTitle(ctx context.Context, title string, opts Options) ([]anilist.Media, error) {
	if s == nil || s.client == nil {
		return nil, errors.New("search client unavailable")
	}
	if strings.TrimSpace(title) == "" {
		return nil, errors.New("search title must not be empty")
	}
	page := opts.Page
	if page <= 0 {
		page = 1
	}
	key := cacheKey(title, page)
	now := time.Now()

	s.mu.Lock()
	if !opts.BypassCache {
		if entry, ok := s.cache[key]; ok && now.Before(entry.expires) {
			results := entry.results
			s.mu.Unlock()
			s.logger.Debug("search cache hit", logging.String("key", key))
			return results, nil
		}
	}
	// Snapshot the key's generation so a clear issued while the fetch is
	// in flight wins over the stale results. The entry is materialized so
	// targeted invalidation can see the in-flight key.
	gen := s.gens[key]
	s.gens[key] = gen
	epoch := s.epoch

	wait := s.minInterval - now.Sub(s.lastLookup)
	if wait > 0 {
		s.mu.Unlock()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
		s.mu.Lock()
	}
	s.lastLookup = time.Now()
	s.mu.Unlock()

	results, err := s.client.SearchManga(ctx, title, page, s.token)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.gens[key] == gen && s.epoch == epoch {
		s.cache[key] = cacheEntry{results: results, expires: time.Now().Add(s.cacheTTL)}
	}
	s.mu.Unlock()
	return results, nil
}

// ClearCache drops every cached entry.
func (s *Service) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]cacheEntry)
	s.epoch++
}

// ClearCacheForTitles invalidates the cached entries for the given
// titles across all pages.
func (s *Service) ClearCacheForTitles(titles []string) {
	keys := make(map[string]struct{}, len(titles))
	for _, title := range titles {
		keys[textnorm.CacheKey(title)] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Every fetched key has a generation entry, including populates still
	// in flight with nothing cached yet.
	for key := range s.gens {
		if _, ok := keys[titleFromKey(key)]; ok {
			s.gens[key]++
			delete(s.cache, key)
		}
	}
}

func cacheKey(title string, page int) string {
	return textnorm.CacheKey(title) + "|" + strconv.Itoa(page)
}

func titleFromKey(key string) string {
	if idx := strings.LastIndexByte(key, '|'); idx >= 0 {
		return key[:idx]
	}
	return key
}
