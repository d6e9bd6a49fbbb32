package branding

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/mbourmaud/cabinet/internal/logger"
)

// DefaultCacheTTL bounds how long fetched colors are served without refetching.
const DefaultCacheTTL = 5 * time.Minute

// Fetcher reads the persisted branding colors. Empty fields mean "not set".
type Fetcher interface {
	FetchColors(ctx context.Context) (Colors, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context) (Colors, error)

func (f FetcherFunc) FetchColors(ctx context.Context) (Colors, error) {
	return f(ctx)
}

// Store supplies the current colors with a time-boxed cache.
//
// A Store is meant to be created once per process and shared by every
// Service that applies branding.
type Store struct {
	fetcher  Fetcher
	ttl      time.Duration
	defaults Colors
	now      func() time.Time
	log      *logger.Logger
	group    singleflight.Group

	mu        sync.Mutex
	cached    *Colors
	fetchedAt time.Time
	// generation is bumped by Clear so fetches started before an
	// invalidation never repopulate the cache.
	generation uint64
}

// NewStore creates a store reading from fetcher.
func NewStore(fetcher Fetcher, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Default()
	}
	return &Store{
		fetcher:  fetcher,
		ttl:      DefaultCacheTTL,
		defaults: DefaultColors,
		now:      time.Now,
		log:      log.WithField("component", "branding.store"),
	}
}

// SetTTL overrides the cache duration. Non-positive values are ignored.
func (s *Store) SetTTL(ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ttl = ttl
}

// SetDefaults replaces the fallback colors used when a fetch fails or a
// field is missing.
func (s *Store) SetDefaults(c Colors) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaults = c
	return nil
}

// Defaults returns the fallback colors.
func (s *Store) Defaults() Colors {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.defaults
}

// TTL returns the cache duration.
func (s *Store) TTL() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ttl
}

// Colors returns the cached colors while fresh, otherwise fetches them.
// A failed fetch logs a warning and yields the defaults without caching,
// so the next call retries.
func (s *Store) Colors(ctx context.Context) Colors {
	s.mu.Lock()
	if s.cached != nil && s.now().Sub(s.fetchedAt) < s.ttl {
		c := *s.cached
		s.mu.Unlock()
		MetricCacheHits.Inc()
		return c
	}
	gen := s.generation
	s.mu.Unlock()

	v, _, _ := s.group.Do(strconv.FormatUint(gen, 10), func() (interface{}, error) {
		return s.fetch(ctx, gen), nil
	})
	return v.(Colors)
}

func (s *Store) fetch(ctx context.Context, gen uint64) Colors {
	defaults := s.Defaults()
	remote, err := s.fetcher.FetchColors(ctx)
	if err != nil {
		MetricFetchTotal.WithLabelValues("error").Inc()
		s.log.Warn("branding fetch failed, using defaults: %v", err)
		return defaults
	}
	MetricFetchTotal.WithLabelValues("ok").Inc()

	c := remote.FillFrom(defaults)
	s.mu.Lock()
	if s.generation == gen {
		s.cached = &c
		s.fetchedAt = s.now()
	}
	s.mu.Unlock()
	s.log.Debug("branding colors fetched: primary=%s text=%s", c.Primary, c.Text)
	return c
}

// Clear drops the cached colors. The next Colors call fetches regardless of age.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = nil
	s.fetchedAt = time.Time{}
	s.generation++
	MetricCacheClears.Inc()
}

// Cached returns the cache entry, if any.
func (s *Store) Cached() (Colors, time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached == nil {
		return Colors{}, time.Time{}, false
	}
	return *s.cached, s.fetchedAt, true
}

// Update overwrites one color in the cache without refetching. An empty cache
// is populated through Colors first; if that fetch fails the defaults seed the
// cache so the edit is not lost. A Clear racing with Update leaves the cache
// seeded from the colors Update started from.
func (s *Store) Update(ctx context.Context, key ColorKey, value string) (Colors, error) {
	var checked Colors
	if err := checked.Set(key, value); err != nil {
		return Colors{}, err
	}

	s.mu.Lock()
	var base Colors
	empty := s.cached == nil
	if !empty {
		base = *s.cached
	}
	s.mu.Unlock()

	if empty {
		base = s.Colors(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached == nil {
		c := base
		s.cached = &c
		s.fetchedAt = s.now()
	}
	// Set cannot fail here: key and value were validated above.
	_ = s.cached.Set(key, value)
	MetricColorUpdates.WithLabelValues(string(key)).Inc()
	return *s.cached, nil
}
