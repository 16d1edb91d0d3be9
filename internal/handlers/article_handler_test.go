package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"content-api/internal/auth"
	"content-api/internal/database"
	"content-api/internal/middleware"
	"content-api/internal/models"
	"content-api/internal/realtime"
	"content-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestCreateArticle_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db

	// Seed the author so the response enrichment finds it
	author := models.User{ID: "u-1", Username: "alice", Password: "x"}
	require.NoError(t, db.Create(&author).Error)

	hub := realtime.NewHub()
	r := gin.New()
	r.Use(middleware.JWTAuthMiddleware())
	r.POST("/api/articles", CreateArticle(hub))

	token, err := auth.GenerateToken("u-1", "alice")
	require.NoError(t, err)

	payload := map[string]any{
		"title":  "Caching In Practice",
		"body":   "Body text",
		"tags":   []string{"go", "caching"},
		"status": "published",
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/articles", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Article
	_ = json.Unmarshal(w.Body.Bytes(), &created)
	require.Equal(t, "caching-in-practice", created.Slug)
	require.Equal(t, "go,caching", created.Tags)
	require.Equal(t, "alice", created.Author.Name)
}

func TestCreateArticle_InvalidStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db

	hub := realtime.NewHub()
	r := gin.New()
	r.Use(middleware.JWTAuthMiddleware())
	r.POST("/api/articles", CreateArticle(hub))

	token, _ := auth.GenerateToken("u-1", "alice")
	body, _ := json.Marshal(map[string]any{
		"title":  "Bad",
		"body":   "Body",
		"status": "nonsense",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/articles", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListArticles_Pagination(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db

	for _, a := range []models.Article{
		{ID: "a-1", Title: "One", Slug: "one", Status: models.StatusPublished, Tags: "go"},
		{ID: "a-2", Title: "Two", Slug: "two", Status: models.StatusPublished, Tags: "go,web"},
		{ID: "a-3", Title: "Three", Slug: "three", Status: models.StatusDraft, Tags: "web"},
	} {
		require.NoError(t, db.Create(&a).Error)
	}

	r := gin.New()
	r.GET("/api/articles", ListArticles)

	req := httptest.NewRequest(http.MethodGet, "/api/articles?page=1&limit=2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count int   `json:"count"`
		Total int64 `json:"total"`
		Limit int   `json:"limit"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Count)
	require.Equal(t, int64(3), resp.Total)

	// Tag filter narrows the result set
	req = httptest.NewRequest(http.MethodGet, "/api/articles?tag=web", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, int64(2), resp.Total)
}

func TestGetArticleByID_BySlug(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db

	require.NoError(t, db.Create(&models.Article{
		ID: "a-1", Title: "Hello", Slug: "hello", Status: models.StatusPublished,
	}).Error)

	r := gin.New()
	r.GET("/api/articles/:id", GetArticleByID)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/articles/hello", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/articles/missing", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteArticle_OwnershipEnforced(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db

	require.NoError(t, db.Create(&models.Article{
		ID: "a-1", Title: "Owned", Slug: "owned", AuthorID: "u-1", Status: models.StatusPublished,
	}).Error)

	hub := realtime.NewHub()
	r := gin.New()
	r.Use(middleware.JWTAuthMiddleware())
	r.DELETE("/api/articles/:id", DeleteArticle(hub))

	// A different user cannot delete it
	token, _ := auth.GenerateToken("u-2", "bob")
	req := httptest.NewRequest(http.MethodDelete, "/api/articles/a-1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)

	// The owner can
	token, _ = auth.GenerateToken("u-1", "alice")
	req = httptest.NewRequest(http.MethodDelete, "/api/articles/a-1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}
