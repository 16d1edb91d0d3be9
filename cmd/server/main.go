package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"content-api/internal/cache"
	"content-api/internal/database"
	"content-api/internal/realtime"
	"content-api/internal/routes"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	// Init database
	database.InitDB()

	// The cache manager owns every namespace; it is created here and passed
	// down, and destroyed on shutdown so no sweeper goroutine outlives us.
	cacheManager := cache.NewManager(cache.Config{})
	hub := realtime.NewHub()

	// Setup the routes (public and protected routes)
	ginRoutes := routes.SetupRoutes(cacheManager, hub)

	port := ":" + getEnv("PORT", "8008")
	log.Printf("Server starting on port %s", port)
	log.Println("API endpoints:")
	log.Println("  POST   /api/login")
	log.Println("  GET    /api/articles")
	log.Println("  GET    /api/articles/:id")
	log.Println("  POST   /api/articles")
	log.Println("  PUT    /api/articles/:id")
	log.Println("  DELETE /api/articles/:id")
	log.Println("  GET    /api/users")
	log.Println("  GET    /api/cache/stats")
	log.Println("  GET    /health")

	srv := &http.Server{
		Addr:    port,
		Handler: ginRoutes,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server: ", err)
		}
	}()

	// Wait for SIGINT/SIGTERM, then drain requests and tear down the caches
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Println("Server shutdown error:", err)
	}

	cacheManager.Shutdown()
	log.Println("Shutdown complete")
}
