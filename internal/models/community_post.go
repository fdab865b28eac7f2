package models

import (
	"time"

	"gorm.io/gorm"
)

// PostCategory classifies a community post.
type PostCategory string

const (
	CategorySuccessStory  PostCategory = "success_story"
	CategoryAdvice        PostCategory = "advice"
	CategoryQuestion      PostCategory = "question"
	CategoryResourceShare PostCategory = "resource_share"
	CategoryMotivation    PostCategory = "motivation"
	CategoryGeneral       PostCategory = "general"
)

// Valid reports whether c is a known post category.
func (c PostCategory) Valid() bool {
	switch c {
	case CategorySuccessStory, CategoryAdvice, CategoryQuestion,
		CategoryResourceShare, CategoryMotivation, CategoryGeneral:
		return true
	}
	return false
}

// PostTags enumerates the topics a community post can be tagged with.
var PostTags = []string{
	"anxiety", "depression", "stress", "academics", "relationships",
	"career", "health", "motivation", "tips", "other",
}

const (
	// PostTitleMaxLen bounds the post title.
	PostTitleMaxLen = 200
	// PostContentMaxLen bounds the post body.
	PostContentMaxLen = 2000
	// CommentMaxLen bounds a comment body.
	CommentMaxLen = 500
)

// CommunityPost is an entry on the community wall.
//
// Likes is a plain counter bumped by an atomic increment: there is no
// per-user like record, so repeated likes from the same user keep
// counting. This mirrors the booking client's observed behavior.
type CommunityPost struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	AuthorID    uint           `gorm:"not null;index" json:"author_id"`
	Author      User           `gorm:"foreignKey:AuthorID" json:"-"`
	InstituteID *uint          `gorm:"index" json:"institute_id,omitempty"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Content     string         `gorm:"type:text;not null" json:"content"`
	Category    PostCategory   `gorm:"not null;index" json:"category"`
	Tags        []string       `gorm:"serializer:json" json:"tags"`
	IsAnonymous bool           `gorm:"default:true" json:"is_anonymous"`
	IsApproved  bool           `gorm:"default:false;index" json:"is_approved"`
	ApprovedBy  *uint          `json:"approved_by,omitempty"`
	ApprovedAt  *time.Time     `json:"approved_at,omitempty"`
	Likes       int            `gorm:"default:0" json:"likes"`
	Views       int            `gorm:"default:0" json:"views"`
	IsPinned    bool           `gorm:"default:false" json:"is_pinned"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int            `gorm:"->" json:"comments_count"`
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// Validate enforces the post invariants before any write.
func (p *CommunityPost) Validate() error {
	if p.Title == "" {
		return NewValidationError("Title is required")
	}
	if len(p.Title) > PostTitleMaxLen {
		return NewValidationError("Title too long (max 200 characters)")
	}
	if p.Content == "" {
		return NewValidationError("Content is required")
	}
	if len(p.Content) > PostContentMaxLen {
		return NewValidationError("Content too long (max 2000 characters)")
	}
	if !p.Category.Valid() {
		return NewValidationError("Invalid category")
	}
	for _, t := range p.Tags {
		if !inSet(t, PostTags) {
			return NewValidationError("Invalid tag: " + t)
		}
	}
	return nil
}

// PostComment is a comment attached to a community post.
type PostComment struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	PostID      uint           `gorm:"not null;index" json:"post_id"`
	AuthorID    uint           `gorm:"not null;index" json:"author_id"`
	Author      User           `gorm:"foreignKey:AuthorID" json:"-"`
	Content     string         `gorm:"size:500;not null" json:"content"`
	IsAnonymous bool           `gorm:"default:true" json:"is_anonymous"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// Validate enforces the comment invariants before any write.
func (c *PostComment) Validate() error {
	if c.Content == "" {
		return NewValidationError("Content is required")
	}
	if len(c.Content) > CommentMaxLen {
		return NewValidationError("Content too long (max 500 characters)")
	}
	return nil
}
