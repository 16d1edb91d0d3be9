package cache

import (
	"errors"
	"strings"
)

// ErrInvalidPattern is returned by Invalidate for a pattern with more than
// two wildcard characters. The Store is left unmodified in that case.
var ErrInvalidPattern = errors.New("invalidation pattern has too many wildcards (max 2)")

// Invalidate removes every key matching pattern and returns the number of
// keys removed. Matching is literal except for the '*' wildcard:
//
//	"exact"      removes at most the one identical key
//	"pre*"       keys starting with "pre"
//	"*suf"       keys ending with "suf"
//	"pre*suf"    keys starting with "pre" and ending with "suf"
//	"a*mid*b"    additionally requiring "mid" somewhere in the key
//
// At most two wildcards are allowed. No other pattern syntax is interpreted,
// which keeps matching linear in key length with no backtracking.
func (s *Store) Invalidate(pattern string) (int, error) {
	segments := strings.Split(pattern, "*")
	if len(segments) > 3 {
		return 0, ErrInvalidPattern
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(segments) == 1 {
		if el, ok := s.items[pattern]; ok {
			s.removeLocked(el)
			return 1, nil
		}
		return 0, nil
	}

	removed := 0
	for key, el := range s.items {
		if matchSegments(key, segments) {
			s.removeLocked(el)
			removed++
		}
	}
	return removed, nil
}

// matchSegments reports whether key matches a pattern already split on '*'.
// segments has length 2 (prefix, suffix) or 3 (prefix, middle, suffix).
func matchSegments(key string, segments []string) bool {
	if !strings.HasPrefix(key, segments[0]) {
		return false
	}
	if !strings.HasSuffix(key, segments[len(segments)-1]) {
		return false
	}
	if len(segments) == 3 && !strings.Contains(key, segments[1]) {
		return false
	}
	return true
}
