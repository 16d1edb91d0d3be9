package models

import (
	"gorm.io/gorm"
)

// ArticleStatus represents the publication state of an article
type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "draft"
	StatusPublished ArticleStatus = "published"
	StatusArchived  ArticleStatus = "archived"
)

// Author represents the article author shown in responses
type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Article represents a piece of content in the system
type Article struct {
	ID       string        `json:"id" gorm:"primaryKey"`
	Title    string        `json:"title" gorm:"not null"`
	Slug     string        `json:"slug" gorm:"uniqueIndex;not null"`
	Body     string        `json:"body"`
	Tags     string        `json:"tags" gorm:"index"` // comma-separated
	Status   ArticleStatus `json:"status" gorm:"not null;default:'draft'"`
	AuthorID string        `json:"-" gorm:"column:author_id;index"`
	Author   Author        `json:"author" gorm:"-"`
	Views    int64         `json:"views" gorm:"default:0"`
	gorm.Model
}

// TableName specifies the table name for Article Model
func (Article) TableName() string {
	return "articles"
}
