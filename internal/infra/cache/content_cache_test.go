package cache

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HelaLetsGo/wheelstreet-api/internal/entity"
)

// fetcherStub is a thread-safe fake backend. Background revalidations hit it
// concurrently, so every access is guarded.
type fetcherStub struct {
	mu      sync.Mutex
	current map[string]*entity.ContentSection
	err     error
	calls   int
}

func newFetcherStub() *fetcherStub {
	return &fetcherStub{current: map[string]*entity.ContentSection{}}
}

func (f *fetcherStub) FindActiveByType(_ context.Context, sectionType string) (*entity.ContentSection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.current[sectionType]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return s, nil
}

func (f *fetcherStub) set(sectionType string, s *entity.ContentSection) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current[sectionType] = s
}

func (f *fetcherStub) setError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fetcherStub) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func heroSection(title string) *entity.ContentSection {
	s := entity.NewContentSection(entity.SectionHero, title)
	s.ID = "section-hero"
	return s
}

func TestMissFetchesSynchronously(t *testing.T) {
	fetcher := newFetcherStub()
	fetcher.set(entity.SectionHero, heroSection("Drive better"))
	c := NewContentCache(fetcher, nil)

	got, err := c.Get(context.Background(), entity.SectionHero)

	require.NoError(t, err)
	assert.Equal(t, "Drive better", got.Title)
	assert.Equal(t, 1, fetcher.callCount())
}

func TestHitServesCachedValueImmediately(t *testing.T) {
	fetcher := newFetcherStub()
	fetcher.set(entity.SectionHero, heroSection("Drive better"))
	c := NewContentCache(fetcher, nil)

	_, err := c.Get(context.Background(), entity.SectionHero)
	require.NoError(t, err)

	// The backend moves on, but the hit still serves the cached value.
	fetcher.set(entity.SectionHero, heroSection("New copy"))
	got, err := c.Get(context.Background(), entity.SectionHero)

	require.NoError(t, err)
	assert.Equal(t, "Drive better", got.Title)

	// The background revalidation eventually swaps the value in.
	assert.Eventually(t, func() bool {
		got, err := c.Get(context.Background(), entity.SectionHero)
		return err == nil && got != nil && got.Title == "New copy"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestMissingSectionIsCachedNotError(t *testing.T) {
	fetcher := newFetcherStub()
	c := NewContentCache(fetcher, nil)

	got, err := c.Get(context.Background(), "nonexistent")

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestInvalidateForcesRefetch(t *testing.T) {
	fetcher := newFetcherStub()
	fetcher.set(entity.SectionAbout, heroSection("Old"))
	c := NewContentCache(fetcher, nil)

	_, err := c.Get(context.Background(), entity.SectionAbout)
	require.NoError(t, err)

	fetcher.set(entity.SectionAbout, heroSection("Edited"))
	c.Invalidate(context.Background(), entity.SectionAbout)

	got, err := c.Get(context.Background(), entity.SectionAbout)
	require.NoError(t, err)
	assert.Equal(t, "Edited", got.Title)
}

func TestHitSurvivesBackendOutage(t *testing.T) {
	fetcher := newFetcherStub()
	fetcher.set(entity.SectionHero, heroSection("Last good"))
	c := NewContentCache(fetcher, nil)

	_, err := c.Get(context.Background(), entity.SectionHero)
	require.NoError(t, err)

	fetcher.setError(entity.ErrBackendUnavailable)

	// Revalidation fails, the last good value keeps being served.
	for i := 0; i < 3; i++ {
		got, err := c.Get(context.Background(), entity.SectionHero)
		require.NoError(t, err)
		assert.Equal(t, "Last good", got.Title)
	}
}

func TestMissPropagatesBackendError(t *testing.T) {
	fetcher := newFetcherStub()
	fetcher.setError(entity.ErrBackendUnavailable)
	c := NewContentCache(fetcher, nil)

	_, err := c.Get(context.Background(), entity.SectionHero)
	assert.ErrorIs(t, err, entity.ErrBackendUnavailable)

	// The failed miss must not poison the key: once the backend recovers the
	// next read fetches fresh content.
	fetcher.setError(nil)
	fetcher.set(entity.SectionHero, heroSection("Recovered"))
	got, err := c.Get(context.Background(), entity.SectionHero)
	require.NoError(t, err)
	assert.Equal(t, "Recovered", got.Title)
}

func TestColdStartServesPersistedTier(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	data, err := json.Marshal(persistedEntry{Section: heroSection("From Redis")})
	require.NoError(t, err)
	require.NoError(t, mr.Set("content:hero", string(data)))

	fetcher := newFetcherStub()
	fetcher.set(entity.SectionHero, heroSection("From Postgres"))
	c := NewContentCache(fetcher, rdb)

	got, err := c.Get(context.Background(), entity.SectionHero)

	require.NoError(t, err)
	assert.Equal(t, "From Redis", got.Title)
}

// A persisted-tier write for a generation that was invalidated mid-flight
// must not leave the pre-edit value in Redis, where a cold start would serve
// it.
func TestLatePersistedWriteForStaleGenerationDropped(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	fetcher := newFetcherStub()
	fetcher.set(entity.SectionHero, heroSection("Old"))
	c := NewContentCache(fetcher, rdb)

	_, err := c.Get(context.Background(), entity.SectionHero)
	require.NoError(t, err)

	c.Invalidate(context.Background(), entity.SectionHero)
	require.False(t, mr.Exists("content:hero"))

	// Simulates a refresh that passed its generation check just before the
	// invalidation and only now reaches the persisted tier.
	c.persistIfCurrent(context.Background(), entity.SectionHero, 0, heroSection("Old"))

	assert.False(t, mr.Exists("content:hero"))
}

func TestInvalidateDropsPersistedTier(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	fetcher := newFetcherStub()
	fetcher.set(entity.SectionHero, heroSection("Old"))
	c := NewContentCache(fetcher, rdb)

	_, err := c.Get(context.Background(), entity.SectionHero)
	require.NoError(t, err)

	c.Invalidate(context.Background(), entity.SectionHero)
	assert.False(t, mr.Exists("content:hero"))

	fetcher.set(entity.SectionHero, heroSection("Edited"))
	got, err := c.Get(context.Background(), entity.SectionHero)
	require.NoError(t, err)
	assert.Equal(t, "Edited", got.Title)
}
