package middleware

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"content-api/internal/cache"

	"github.com/gin-gonic/gin"
)

// cachedResponse is the payload stored for a cached endpoint: enough to
// replay the response without re-running the handler.
type cachedResponse struct {
	Status      int
	ContentType string
	Body        []byte
}

// bodyCapture tees the response body so a successful response can be cached
// after the handler has written it.
type bodyCapture struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCapture) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// CachePage caches GET responses under the given namespace. The cache key is
// derived from the request path and query parameters, so logically identical
// requests collide on the same entry. On a hit the handler is skipped and the
// cached status, content type and body are replayed with "X-Cache: HIT".
// On a miss the handler runs and its response is stored with ttl, but only
// when it indicates success (2xx). A ttl <= 0 uses the namespace default.
func CachePage(mgr *cache.Manager, namespace string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		store := mgr.GetCache(namespace)
		key := cache.GenerateKey(namespace, requestParams(c))

		if v, ok := store.Get(key); ok {
			if resp, ok := v.(*cachedResponse); ok {
				c.Header("X-Cache", "HIT")
				c.Data(resp.Status, resp.ContentType, resp.Body)
				c.Abort()
				return
			}
		}

		c.Header("X-Cache", "MISS")
		capture := &bodyCapture{ResponseWriter: c.Writer}
		c.Writer = capture
		c.Next()

		status := capture.Status()
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			return
		}
		resp := &cachedResponse{
			Status:      status,
			ContentType: capture.Header().Get("Content-Type"),
			Body:        capture.buf.Bytes(),
		}
		if ttl > 0 {
			store.SetWithTTL(key, resp, ttl)
		} else {
			store.Set(key, resp)
		}
	}
}

// InvalidateAfter invalidates whole namespaces after a successful mutating
// request. It runs the handler first and, only when the response indicates
// success, removes every key of each namespace with a "<ns>:*" pattern.
func InvalidateAfter(mgr *cache.Manager, namespaces ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			return
		}
		for _, ns := range namespaces {
			// The pattern carries at most one wildcard; the validation
			// error path is unreachable here.
			_, _ = mgr.GetCache(ns).Invalidate(ns + ":*")
		}
	}
}

// requestParams flattens the request path and query string into the
// parameter bag fed to the key codec.
func requestParams(c *gin.Context) map[string]any {
	params := map[string]any{"path": c.Request.URL.Path}
	for name, values := range c.Request.URL.Query() {
		params[name] = strings.Join(values, ",")
	}
	return params
}
