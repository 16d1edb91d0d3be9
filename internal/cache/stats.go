package cache

import (
	"encoding/json"
	"math"
	"sort"
)

// Stats is a snapshot of a Store's cumulative counters.
// Counters reset only on Clear, never on expiry or eviction.
type Stats struct {
	Size      int     `json:"size"`
	MaxSize   int     `json:"maxSize"`
	HitRate   float64 `json:"hitRate"` // percentage, rounded to two decimals
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	Evictions int64   `json:"evictions"`
	Sets      int64   `json:"sets"`
}

// EntryStats describes one live entry in the detailed-stats projection.
type EntryStats struct {
	Key          string `json:"key"`
	Size         int    `json:"size"`            // approximate serialized size in bytes
	TTLRemaining int64  `json:"ttlRemainingMs"`  // milliseconds until expiry
	AccessCount  int64  `json:"accessCount"`
}

// DetailedStats extends Stats with a bounded snapshot of the most-accessed
// entries. Diagnostic only; not part of the cache's correctness contract.
type DetailedStats struct {
	Stats
	TopEntries []EntryStats `json:"topEntries"`
}

const maxTopEntries = 10

// Stats returns the current counter snapshot.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statsLocked()
}

func (s *Store) statsLocked() Stats {
	var hitRate float64
	if total := s.hits + s.misses; total > 0 {
		hitRate = math.Round(float64(s.hits)/float64(total)*100*100) / 100
	}
	return Stats{
		Size:      s.lru.Len(),
		MaxSize:   s.maxSize,
		HitRate:   hitRate,
		Hits:      s.hits,
		Misses:    s.misses,
		Evictions: s.evictions,
		Sets:      s.sets,
	}
}

// DetailedStats returns Stats plus the 10 most-accessed live entries,
// sorted by access count descending.
func (s *Store) DetailedStats() DetailedStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := now()
	top := make([]EntryStats, 0, s.lru.Len())
	for _, el := range s.items {
		e := el.Value.(*entry)
		if e.expired(ts) {
			continue
		}
		top = append(top, EntryStats{
			Key:          e.key,
			Size:         estimateSize(e.value),
			TTLRemaining: e.expiresAt.Sub(ts).Milliseconds(),
			AccessCount:  e.accessCount,
		})
	}

	sort.Slice(top, func(i, j int) bool {
		return top[i].AccessCount > top[j].AccessCount
	})
	if len(top) > maxTopEntries {
		top = top[:maxTopEntries]
	}

	return DetailedStats{Stats: s.statsLocked(), TopEntries: top}
}

// estimateSize approximates the serialized size of a cached value.
// Values that cannot be serialized degrade to a fixed estimate rather
// than failing the stats call.
func estimateSize(value any) int {
	switch v := value.(type) {
	case nil:
		return 0
	case string:
		return len(v)
	case []byte:
		return len(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return 64
		}
		return len(b)
	}
}
