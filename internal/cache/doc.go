// Package cache implements the in-process cache substrate used by the API:
// namespaced LRU stores with per-entry TTL, lazy expiry on access plus a
// periodic background sweep, bounded wildcard invalidation, deterministic
// key generation and per-namespace hit/miss statistics.
//
// Each namespace is an independent Store with its own lock, counters and
// sweeper; the Manager owns them all and is passed explicitly to whoever
// needs caching.
package cache
