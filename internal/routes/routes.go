package routes

import (
	"time"

	"content-api/internal/cache"
	"content-api/internal/handlers"
	"content-api/internal/middleware"
	"content-api/internal/realtime"

	"github.com/gin-gonic/gin"
)

// Per-namespace cache tuning. Article listings change often and are cheap to
// recompute; the user list is small and rarely written.
const (
	articlesCacheTTL = 2 * time.Minute
	usersCacheTTL    = 10 * time.Minute
)

// SetupRoutes wires all endpoints. The cache manager and the realtime hub are
// constructed by the caller and passed by reference; nothing here reaches for
// shared module state.
func SetupRoutes(mgr *cache.Manager, hub *realtime.Hub) *gin.Engine {
	// Create a new GIN Router
	ginRouter := gin.Default()

	// Register the cache namespaces up front so the stats endpoints see them
	// even before the first cached request.
	mgr.Configure("articles", cache.Config{MaxSize: 500, DefaultTTL: articlesCacheTTL})
	mgr.Configure("users", cache.Config{MaxSize: 100, DefaultTTL: usersCacheTTL})

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204) // This depends on the implementation of the frontend
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Content API is running",
		})
	})

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		// Login registers unknown users, so a success must drop the cached user list
		api.POST("/login", middleware.InvalidateAfter(mgr, "users"), handlers.Login)

		// Public read endpoints, served from cache when possible
		api.GET("/articles", middleware.CachePage(mgr, "articles", articlesCacheTTL), handlers.ListArticles)
		api.GET("/articles/:id", middleware.CachePage(mgr, "articles", articlesCacheTTL), handlers.GetArticleByID)
	}

	// Protected routes (authentication required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.JWTAuthMiddleware())
	{
		// Article write endpoints; successful writes invalidate the namespace
		protectedRoutes.POST("/articles", middleware.InvalidateAfter(mgr, "articles"), handlers.CreateArticle(hub))
		protectedRoutes.PUT("/articles/:id", middleware.InvalidateAfter(mgr, "articles"), handlers.UpdateArticle(hub))
		protectedRoutes.DELETE("/articles/:id", middleware.InvalidateAfter(mgr, "articles"), handlers.DeleteArticle(hub))

		// Users endpoint
		protectedRoutes.GET("/users", middleware.CachePage(mgr, "users", usersCacheTTL), handlers.GetAllUsers)

		// Cache observability and administration
		protectedRoutes.GET("/cache/stats", handlers.CacheStats(mgr))
		protectedRoutes.GET("/cache/stats/:namespace", handlers.CacheNamespaceStats(mgr))
		protectedRoutes.POST("/cache/:namespace/invalidate", handlers.CacheInvalidate(mgr))
		protectedRoutes.DELETE("/cache/:namespace", handlers.CacheClear(mgr))

		// Realtime content events
		protectedRoutes.GET("/ws", handlers.WebSocketHandler(hub))
	}

	return ginRouter
}
