package handlers

import (
	"errors"
	"net/http"

	"content-api/internal/cache"

	"github.com/gin-gonic/gin"
)

// InvalidateRequest represents the payload for pattern invalidation
type InvalidateRequest struct {
	Pattern string `json:"pattern" binding:"required"`
}

// CacheStats handles GET /api/cache/stats
// Returns per-namespace counters plus an aggregate across all namespaces.
func CacheStats(mgr *cache.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		perNamespace := make(map[string]cache.Stats)
		var totalHits, totalMisses, totalEvictions, totalSets int64
		totalSize := 0

		for _, ns := range mgr.Namespaces() {
			st := mgr.GetCache(ns).Stats()
			perNamespace[ns] = st
			totalHits += st.Hits
			totalMisses += st.Misses
			totalEvictions += st.Evictions
			totalSets += st.Sets
			totalSize += st.Size
		}

		c.JSON(http.StatusOK, gin.H{
			"namespaces": perNamespace,
			"aggregate": gin.H{
				"size":      totalSize,
				"hits":      totalHits,
				"misses":    totalMisses,
				"evictions": totalEvictions,
				"sets":      totalSets,
			},
		})
	}
}

// CacheNamespaceStats handles GET /api/cache/stats/:namespace
// Returns detailed stats for one namespace, including the most-accessed entries.
func CacheNamespaceStats(mgr *cache.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		namespace := c.Param("namespace")
		store, ok := mgr.Lookup(namespace)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown cache namespace"})
			return
		}
		c.JSON(http.StatusOK, store.DetailedStats())
	}
}

// CacheInvalidate handles POST /api/cache/:namespace/invalidate
// Removes keys matching the given pattern and returns the count removed.
func CacheInvalidate(mgr *cache.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		namespace := c.Param("namespace")
		store, ok := mgr.Lookup(namespace)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown cache namespace"})
			return
		}

		var req InvalidateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "pattern is required"})
			return
		}

		removed, err := store.Invalidate(req.Pattern)
		if err != nil {
			if errors.Is(err, cache.ErrInvalidPattern) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to invalidate"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"namespace": namespace,
			"pattern":   req.Pattern,
			"removed":   removed,
		})
	}
}

// CacheClear handles DELETE /api/cache/:namespace
// Empties the namespace and resets its counters.
func CacheClear(mgr *cache.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		namespace := c.Param("namespace")
		store, ok := mgr.Lookup(namespace)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown cache namespace"})
			return
		}

		store.Clear()
		c.JSON(http.StatusOK, gin.H{
			"message":   "Cache cleared",
			"namespace": namespace,
		})
	}
}
