package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"content-api/internal/database"
	"content-api/internal/models"
	"content-api/internal/realtime"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateArticleRequest represents the request payload for creating an article
type CreateArticleRequest struct {
	Title  string               `json:"title" binding:"required"`
	Body   string               `json:"body" binding:"required"`
	Tags   []string             `json:"tags"`
	Status models.ArticleStatus `json:"status"`
}

// UpdateArticleRequest represents the request payload for updating an article
type UpdateArticleRequest struct {
	Title  *string               `json:"title"`
	Body   *string               `json:"body"`
	Tags   *[]string             `json:"tags"`
	Status *models.ArticleStatus `json:"status"`
}

// slugify builds a URL-safe slug from a title: lowercase, non-alphanumerics
// collapsed to single hyphens.
func slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// enrichAuthor fills the response-only Author field from the users table.
func enrichAuthor(article *models.Article) {
	if article.AuthorID == "" {
		return
	}
	var u models.User
	if err := database.GetDB().Where("id = ?", article.AuthorID).First(&u).Error; err == nil {
		article.Author = models.Author{ID: u.ID, Name: u.Username}
	}
}

/*
*
ListArticles handles GET /api/articles
Returns published articles for all users; authenticated requests also see drafts.
Query params: page (default 1), limit (default 10), sort (asc|desc on created_at,
default desc), tag to filter by tag.
*/
func ListArticles(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "10")
	sortParam := strings.ToLower(c.DefaultQuery("sort", "desc"))
	tagFilter := c.Query("tag")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	offset := (page - 1) * limit

	order := "created_at desc"
	if sortParam == "asc" {
		order = "created_at asc"
	}

	db := database.GetDB()
	query := db.Model(&models.Article{})
	if tagFilter != "" {
		query = query.Where("tags LIKE ?", "%"+tagFilter+"%")
	}

	// Total count (without pagination)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to count articles",
		})
		return
	}

	// Fetch paginated articles with sorting
	var articles []models.Article
	result := query.Session(&gorm.Session{}).Order(order).Limit(limit).Offset(offset).Find(&articles)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch articles",
		})
		return
	}

	// Enrich author field for response
	var users []models.User
	if err := db.Find(&users).Error; err == nil {
		userByID := make(map[string]models.User, len(users))
		for _, u := range users {
			userByID[u.ID] = u
		}
		for i := range articles {
			if u, ok := userByID[articles[i].AuthorID]; ok {
				articles[i].Author = models.Author{ID: u.ID, Name: u.Username}
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": articles,
		"count":    len(articles), // number of items in this page
		"total":    total,         // total articles (all pages) for current filter
		"page":     page,
		"limit":    limit,
		"sort":     sortParam,
	})
}

// GetArticleByID handles GET /api/articles/:id
// Returns a single article by ID or slug
func GetArticleByID(c *gin.Context) {
	articleID := c.Param("id")
	if articleID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Article ID is required"})
		return
	}

	var article models.Article
	result := database.GetDB().Where("id = ? OR slug = ?", articleID, articleID).First(&article)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch article"})
		}
		return
	}

	enrichAuthor(&article)
	c.JSON(http.StatusOK, article)
}

// CreateArticle handles POST /api/articles
// Creates a new article owned by the authenticated user
func CreateArticle(hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "User ID not found in token",
			})
			return
		}

		var req CreateArticleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
			return
		}

		status := req.Status
		if status == "" {
			status = models.StatusDraft
		}
		switch status {
		case models.StatusDraft, models.StatusPublished, models.StatusArchived:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}

		// Generate article ID (simple format: article-{timestamp})
		articleID := fmt.Sprintf("article-%d", time.Now().UnixNano())

		article := models.Article{
			ID:       articleID,
			Title:    req.Title,
			Slug:     slugify(req.Title),
			Body:     req.Body,
			Tags:     strings.Join(req.Tags, ","),
			Status:   status,
			AuthorID: userID,
		}

		result := database.GetDB().Create(&article)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to create article",
			})
			return
		}

		enrichAuthor(&article)
		hub.BroadcastEvent("article_created", article.ID, userID)

		c.JSON(http.StatusCreated, article)
	}
}

// UpdateArticle handles PUT /api/articles/:id
// Updates an article owned by the authenticated user
func UpdateArticle(hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "User ID not found in token",
			})
			return
		}

		articleID := c.Param("id")
		if articleID == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Article ID is required",
			})
			return
		}

		// Check if article exists and belongs to user
		var existing models.Article
		result := database.GetDB().Where("id = ? AND author_id = ?", articleID, userID).First(&existing)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{
					"error": "Article not found",
				})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Failed to fetch article",
				})
			}
			return
		}

		var req UpdateArticleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
			return
		}

		// Update fields if provided
		if req.Title != nil {
			existing.Title = *req.Title
			existing.Slug = slugify(*req.Title)
		}
		if req.Body != nil {
			existing.Body = *req.Body
		}
		if req.Tags != nil {
			existing.Tags = strings.Join(*req.Tags, ",")
		}
		if req.Status != nil {
			switch *req.Status {
			case models.StatusDraft, models.StatusPublished, models.StatusArchived:
				existing.Status = *req.Status
			default:
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
				return
			}
		}

		result = database.GetDB().Save(&existing)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to update article",
			})
			return
		}

		enrichAuthor(&existing)
		hub.BroadcastEvent("article_updated", existing.ID, userID)

		c.JSON(http.StatusOK, existing)
	}
}

// DeleteArticle handles DELETE /api/articles/:id
// Deletes an article owned by the authenticated user
func DeleteArticle(hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "User ID not found in token",
			})
			return
		}

		articleID := c.Param("id")
		if articleID == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Article ID is required",
			})
			return
		}

		var article models.Article
		result := database.GetDB().Where("id = ? AND author_id = ?", articleID, userID).First(&article)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{
					"error": "Article not found",
				})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Failed to fetch article",
				})
			}
			return
		}

		result = database.GetDB().Delete(&article)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to delete article",
			})
			return
		}

		hub.BroadcastEvent("article_deleted", articleID, userID)

		c.JSON(http.StatusOK, gin.H{
			"message": "Article deleted successfully",
			"id":      articleID,
		})
	}
}
