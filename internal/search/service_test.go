package search

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"mangasync/internal/anilist"
)

type fakeSearcher struct {
	calls   atomic.Int32
	results []anilist.Media
	block   chan struct{}
}

func (f *fakeSearcher) SearchManga(ctx context.Context, title string, page int, token string) ([]anilist.Media, error) {
	f.calls.Add(1)
	if f.block != nil {
		<-f.block
	}
	return f.results, nil
}

func newTestService(client Searcher) *Service {
	svc := NewService(client, time.Minute, "", nil)
	svc.minInterval = 0
	return svc
}

func TestSearchByTitleCachesResults(t *testing.T) {
	fake := &fakeSearcher{results: []anilist.Media{{ID: 30013}}}
	svc := newTestService(fake)

	for _, title := range []string{"One Piece", " one piece ", "ONE PIECE"} {
		results, err := svc.SearchByTitle(context.Background(), title, Options{})
		if err != nil {
			t.Fatalf("SearchByTitle(%q): %v", title, err)
		}
		if len(results) != 1 || results[0].ID != 30013 {
			t.Fatalf("unexpected results: %+v", results)
		}
	}
	if got := fake.calls.Load(); got != 1 {
		t.Errorf("client calls = %d, want 1 (normalized titles must share a cache entry)", got)
	}
}

func TestSearchByTitlePagesCachedSeparately(t *testing.T) {
	fake := &fakeSearcher{}
	svc := newTestService(fake)

	svc.SearchByTitle(context.Background(), "Berserk", Options{Page: 1})
	svc.SearchByTitle(context.Background(), "Berserk", Options{Page: 2})
	if got := fake.calls.Load(); got != 2 {
		t.Errorf("client calls = %d, want 2 for distinct pages", got)
	}
}

func TestSearchByTitleBypassRefreshes(t *testing.T) {
	fake := &fakeSearcher{}
	svc := newTestService(fake)

	svc.SearchByTitle(context.Background(), "Berserk", Options{})
	svc.SearchByTitle(context.Background(), "Berserk", Options{BypassCache: true})
	if got := fake.calls.Load(); got != 2 {
		t.Errorf("client calls = %d, want 2 with bypass", got)
	}
	// The bypass refreshed the entry, so a plain lookup hits the cache.
	svc.SearchByTitle(context.Background(), "Berserk", Options{})
	if got := fake.calls.Load(); got != 2 {
		t.Errorf("client calls = %d, want 2 after refresh", got)
	}
}

func TestClearCacheForTitles(t *testing.T) {
	fake := &fakeSearcher{}
	svc := newTestService(fake)

	svc.SearchByTitle(context.Background(), "One Piece", Options{})
	svc.SearchByTitle(context.Background(), "Berserk", Options{})
	svc.ClearCacheForTitles([]string{"one piece"})

	svc.SearchByTitle(context.Background(), "One Piece", Options{})
	if got := fake.calls.Load(); got != 3 {
		t.Errorf("client calls = %d, want 3 after targeted invalidation", got)
	}
	svc.SearchByTitle(context.Background(), "Berserk", Options{})
	if got := fake.calls.Load(); got != 3 {
		t.Errorf("client calls = %d, untouched title must stay cached", got)
	}
}

func TestClearCache(t *testing.T) {
	fake := &fakeSearcher{}
	svc := newTestService(fake)

	svc.SearchByTitle(context.Background(), "One Piece", Options{})
	svc.ClearCache()
	svc.SearchByTitle(context.Background(), "One Piece", Options{})
	if got := fake.calls.Load(); got != 2 {
		t.Errorf("client calls = %d, want 2 after full clear", got)
	}
}

func TestClearDuringPopulateWins(t *testing.T) {
	fake := &fakeSearcher{block: make(chan struct{})}
	svc := newTestService(fake)

	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.SearchByTitle(context.Background(), "One Piece", Options{})
	}()

	// Wait for the fetch to be in flight, then invalidate the key.
	for fake.calls.Load() == 0 {
		time.Sleep(time.Millisecond)
	}
	svc.ClearCacheForTitles([]string{"One Piece"})
	close(fake.block)
	<-done

	// The stale populate must not have been cached.
	fake.block = nil
	svc.SearchByTitle(context.Background(), "One Piece", Options{})
	if got := fake.calls.Load(); got != 2 {
		t.Errorf("client calls = %d, want 2 (cleared key must not resurrect stale data)", got)
	}
}
