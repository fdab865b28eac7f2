package models

import (
	"time"

	"gorm.io/gorm"
)

// ResourceType classifies the format of a wellness resource.
type ResourceType string

const (
	ResourceVideo      ResourceType = "video"
	ResourceArticle    ResourceType = "article"
	ResourceBook       ResourceType = "book"
	ResourceExercise   ResourceType = "exercise"
	ResourceMeditation ResourceType = "meditation"
	ResourcePodcast    ResourceType = "podcast"
	ResourceWorksheet  ResourceType = "worksheet"
	ResourceOther      ResourceType = "other"
)

// Valid reports whether t is a known resource type.
func (t ResourceType) Valid() bool {
	switch t {
	case ResourceVideo, ResourceArticle, ResourceBook, ResourceExercise,
		ResourceMeditation, ResourcePodcast, ResourceWorksheet, ResourceOther:
		return true
	}
	return false
}

// ResourceCategory classifies the topic of a wellness resource.
type ResourceCategory string

const (
	ResourceCatAnxiety       ResourceCategory = "anxiety"
	ResourceCatDepression    ResourceCategory = "depression"
	ResourceCatStress        ResourceCategory = "stress"
	ResourceCatMindfulness   ResourceCategory = "mindfulness"
	ResourceCatRelationships ResourceCategory = "relationships"
	ResourceCatAcademics     ResourceCategory = "academics"
	ResourceCatCareer        ResourceCategory = "career"
	ResourceCatWellness      ResourceCategory = "general_wellness"
)

// Valid reports whether c is a known resource category.
func (c ResourceCategory) Valid() bool {
	switch c {
	case ResourceCatAnxiety, ResourceCatDepression, ResourceCatStress,
		ResourceCatMindfulness, ResourceCatRelationships,
		ResourceCatAcademics, ResourceCatCareer, ResourceCatWellness:
		return true
	}
	return false
}

// Rating aggregates user ratings into an average and a count. New ratings
// are folded in by the repository with a single SQL update.
type Rating struct {
	Average float64 `gorm:"default:0" json:"average"`
	Count   int     `gorm:"default:0" json:"count"`
}

// Resource is an item in the wellness resource library.
type Resource struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	Title       string           `gorm:"size:200;not null" json:"title"`
	Description string           `gorm:"size:1000;not null" json:"description"`
	Type        ResourceType     `gorm:"not null;index" json:"type"`
	Category    ResourceCategory `gorm:"not null;index" json:"category"`
	URL         string           `gorm:"not null" json:"url"`
	Thumbnail   string           `json:"thumbnail,omitempty"`
	Duration    int              `json:"duration,omitempty"`
	Author      string           `json:"author"`
	Source      string           `json:"source"`
	IsFree      bool             `gorm:"default:true" json:"is_free"`
	Rating      Rating           `gorm:"embedded;embeddedPrefix:rating_" json:"rating"`
	Views       int              `gorm:"default:0" json:"views"`
	IsActive    bool             `gorm:"default:true;index" json:"is_active"`
	IsFeatured  bool             `gorm:"default:false" json:"is_featured"`
	InstituteID *uint            `gorm:"index" json:"institute_id,omitempty"`
	CreatedByID *uint            `json:"created_by,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`
}

// Validate enforces the resource invariants before any write.
func (r *Resource) Validate() error {
	if r.Title == "" {
		return NewValidationError("Title is required")
	}
	if r.Description == "" {
		return NewValidationError("Description is required")
	}
	if !r.Type.Valid() {
		return NewValidationError("Invalid resource type")
	}
	if !r.Category.Valid() {
		return NewValidationError("Invalid resource category")
	}
	if r.URL == "" {
		return NewValidationError("URL is required")
	}
	return nil
}
