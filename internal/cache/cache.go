package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// Config controls a single Store instance.
// Zero fields fall back to the package defaults below.
type Config struct {
	MaxSize       int           // maximum number of entries before LRU eviction
	DefaultTTL    time.Duration // TTL applied by Set when no explicit TTL is given
	SweepInterval time.Duration // how often the background sweeper runs; <= 0 disables it
}

// Package defaults used when a namespace is created without explicit configuration.
const (
	DefaultMaxSize       = 1000
	DefaultTTL           = 5 * time.Minute
	DefaultSweepInterval = 60 * time.Second
)

func (cfg Config) withDefaults() Config {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultMaxSize
	}
	if cfg.DefaultTTL == 0 {
		cfg.DefaultTTL = DefaultTTL
	}
	if cfg.SweepInterval == 0 {
		cfg.SweepInterval = DefaultSweepInterval
	}
	return cfg
}

// entry is one cached value. It lives inside an LRU list element;
// the key is kept here because eviction starts from list nodes.
type entry struct {
	key         string
	value       any
	expiresAt   time.Time
	lastAccess  time.Time
	accessCount int64
}

// expired is the single expiry predicate shared by Get, Set and Sweep.
// An entry is gone the instant now reaches expiresAt, so a zero or
// negative TTL produces an entry that misses on its very next access.
func (e *entry) expired(now time.Time) bool {
	return !e.expiresAt.After(now)
}

// Store is a concurrency-safe in-memory key-value cache with TTL and LRU
// eviction. A map gives O(1) key lookup and a doubly-linked list maintains
// recency ordering (front = most recently touched, back = least).
//
// One mutex guards the entries and the four counters together: an eviction,
// an expiry and its counter update are never observed half-applied.
type Store struct {
	mu sync.Mutex

	maxSize    int
	defaultTTL time.Duration

	items map[string]*list.Element
	lru   *list.List

	hits      int64
	misses    int64
	evictions int64
	sets      int64

	// Sweeper goroutine ownership. Destroy cancels and waits.
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	destroyed bool
}

// now is a small indirection to allow test stubbing.
var now = time.Now

// NewStore constructs a Store and starts its background sweeper (if enabled).
func NewStore(cfg Config) *Store {
	cfg = cfg.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())

	s := &Store{
		maxSize:    cfg.MaxSize,
		defaultTTL: cfg.DefaultTTL,
		items:      make(map[string]*list.Element),
		lru:        list.New(),
		ctx:        ctx,
		cancel:     cancel,
	}

	if cfg.SweepInterval > 0 {
		s.wg.Add(1)
		go s.sweepLoop(cfg.SweepInterval)
	}

	return s
}

// Get returns the cached value for key. A nil value is a valid cached value;
// the boolean distinguishes it from a miss. Expired entries are removed
// lazily here and counted as misses.
func (s *Store) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.items[key]
	if !ok {
		s.misses++
		return nil, false
	}

	e := el.Value.(*entry)
	if e.expired(now()) {
		s.removeLocked(el)
		s.misses++
		return nil, false
	}

	e.lastAccess = now()
	e.accessCount++
	s.lru.MoveToFront(el)
	s.hits++
	return e.value, true
}

// Set stores value under key with the Store's default TTL.
func (s *Store) Set(key string, value any) {
	s.SetWithTTL(key, value, s.defaultTTL)
}

// SetWithTTL stores value under key with an explicit TTL. A TTL of zero or
// less produces an immediately expired entry. When the Store is full and key
// is new, exactly one least-recently-touched entry is evicted first;
// eviction never consults TTL, only recency.
func (s *Store) SetWithTTL(key string, value any, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := now()
	if el, ok := s.items[key]; ok {
		// Refresh in place: new value, new expiry, recency and access count reset.
		e := el.Value.(*entry)
		e.value = value
		e.expiresAt = ts.Add(ttl)
		e.lastAccess = ts
		e.accessCount = 0
		s.lru.MoveToFront(el)
		s.sets++
		return
	}

	if s.lru.Len() >= s.maxSize {
		if back := s.lru.Back(); back != nil {
			s.removeLocked(back)
			s.evictions++
		}
	}

	e := &entry{
		key:        key,
		value:      value,
		expiresAt:  ts.Add(ttl),
		lastAccess: ts,
	}
	s.items[key] = s.lru.PushFront(e)
	s.sets++
}

// Delete removes key if present. Not counted in stats.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.items[key]; ok {
		s.removeLocked(el)
	}
}

// Clear removes all entries and resets the four counters.
// The Store remains usable afterward.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

// Len returns the number of entries physically present, including expired
// entries the sweeper has not visited yet.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Len()
}

// Sweep removes every expired entry and returns the count removed.
// Sweep-driven removal is distinct from access-driven miss accounting:
// it never touches the hit/miss counters.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := now()
	removed := 0
	for _, el := range s.items {
		if el.Value.(*entry).expired(ts) {
			s.removeLocked(el)
			removed++
		}
	}
	return removed
}

// Destroy stops the background sweeper and clears all entries.
// It is safe to call more than once.
func (s *Store) Destroy() {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return
	}
	s.destroyed = true
	cancel := s.cancel
	s.mu.Unlock()

	// Cancel outside the lock so teardown doesn't block in-flight operations.
	cancel()
	s.wg.Wait()

	s.mu.Lock()
	s.clearLocked()
	s.mu.Unlock()
}

func (s *Store) removeLocked(el *list.Element) {
	e := el.Value.(*entry)
	delete(s.items, e.key)
	s.lru.Remove(el)
}

func (s *Store) clearLocked() {
	s.items = make(map[string]*list.Element)
	s.lru.Init()
	s.hits = 0
	s.misses = 0
	s.evictions = 0
	s.sets = 0
}
