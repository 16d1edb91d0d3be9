package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"content-api/internal/auth"
	"content-api/internal/cache"
	"content-api/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newCacheRouter(t *testing.T) (*gin.Engine, *cache.Manager, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mgr := cache.NewManager(cache.Config{SweepInterval: -1})
	t.Cleanup(mgr.Shutdown)

	r := gin.New()
	r.Use(middleware.JWTAuthMiddleware())
	r.GET("/api/cache/stats", CacheStats(mgr))
	r.GET("/api/cache/stats/:namespace", CacheNamespaceStats(mgr))
	r.POST("/api/cache/:namespace/invalidate", CacheInvalidate(mgr))
	r.DELETE("/api/cache/:namespace", CacheClear(mgr))

	token, err := auth.GenerateToken("u-1", "alice")
	require.NoError(t, err)
	return r, mgr, token
}

func TestCacheStats_Aggregate(t *testing.T) {
	r, mgr, token := newCacheRouter(t)

	articles := mgr.GetCache("articles")
	articles.Set("articles:default", "payload")
	_, _ = articles.Get("articles:default")
	_, _ = articles.Get("articles:missing")
	mgr.GetCache("users").Set("users:default", "payload")

	req := httptest.NewRequest(http.MethodGet, "/api/cache/stats", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Namespaces map[string]cache.Stats `json:"namespaces"`
		Aggregate  struct {
			Size int   `json:"size"`
			Hits int64 `json:"hits"`
			Sets int64 `json:"sets"`
		} `json:"aggregate"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Namespaces, 2)
	require.Equal(t, 2, resp.Aggregate.Size)
	require.Equal(t, int64(1), resp.Aggregate.Hits)
	require.Equal(t, int64(2), resp.Aggregate.Sets)
	require.Equal(t, 50.0, resp.Namespaces["articles"].HitRate)
}

func TestCacheNamespaceStats_Detailed(t *testing.T) {
	r, mgr, token := newCacheRouter(t)

	store := mgr.GetCache("articles")
	store.Set("articles:hot", "x")
	_, _ = store.Get("articles:hot")

	req := httptest.NewRequest(http.MethodGet, "/api/cache/stats/articles", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp cache.DetailedStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.TopEntries, 1)
	require.Equal(t, "articles:hot", resp.TopEntries[0].Key)

	// Unknown namespace is a 404, not an implicit creation
	req = httptest.NewRequest(http.MethodGet, "/api/cache/stats/ghost", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCacheInvalidate_PatternAndValidation(t *testing.T) {
	r, mgr, token := newCacheRouter(t)

	store := mgr.GetCache("articles")
	store.Set("articles:page=1", 1)
	store.Set("articles:page=2", 2)
	store.Set("other", 3)

	body, _ := json.Marshal(map[string]string{"pattern": "articles:*"})
	req := httptest.NewRequest(http.MethodPost, "/api/cache/articles/invalidate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Removed int `json:"removed"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Removed)

	// Too many wildcards is a validation error and removes nothing
	body, _ = json.Marshal(map[string]string{"pattern": "a*b*c*"})
	req = httptest.NewRequest(http.MethodPost, "/api/cache/articles/invalidate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, 1, store.Len())
}

func TestCacheClear_ResetsNamespace(t *testing.T) {
	r, mgr, token := newCacheRouter(t)

	store := mgr.GetCache("articles")
	store.Set("articles:default", "payload")

	req := httptest.NewRequest(http.MethodDelete, "/api/cache/articles", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 0, store.Len())
	require.Equal(t, int64(0), store.Stats().Sets)
}
