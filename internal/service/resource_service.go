package service

import (
	"context"
	"errors"

	"mindbridge/internal/cache"
	"mindbridge/internal/models"
	"mindbridge/internal/repository"

	"gorm.io/gorm"
)

type ResourceService struct {
	resourceRepo repository.ResourceRepository
}

type CreateResourceInput struct {
	Title       string
	Description string
	Type        string
	Category    string
	URL         string
	Thumbnail   string
	Duration    int
	Author      string
	Source      string
	IsFree      bool
	IsFeatured  bool
	InstituteID *uint
	CreatedByID *uint
}

type ListResourcesInput struct {
	Type     string
	Category string
	Limit    int
	Offset   int
}

func NewResourceService(resourceRepo repository.ResourceRepository) *ResourceService {
	return &ResourceService{resourceRepo: resourceRepo}
}

func (s *ResourceService) CreateResource(ctx context.Context, in CreateResourceInput) (*models.Resource, error) {
	res := &models.Resource{
		Title:       in.Title,
		Description: in.Description,
		Type:        models.ResourceType(in.Type),
		Category:    models.ResourceCategory(in.Category),
		URL:         in.URL,
		Thumbnail:   in.Thumbnail,
		Duration:    in.Duration,
		Author:      in.Author,
		Source:      in.Source,
		IsFree:      in.IsFree,
		IsFeatured:  in.IsFeatured,
		IsActive:    true,
		InstituteID: in.InstituteID,
		CreatedByID: in.CreatedByID,
	}
	if err := res.Validate(); err != nil {
		return nil, err
	}
	if err := s.resourceRepo.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// ListResources returns active resources, featured first then newest.
// The unfiltered default-sized first page is served through the cache.
func (s *ResourceService) ListResources(ctx context.Context, in ListResourcesInput) ([]*models.Resource, error) {
	if in.Type != "" && !models.ResourceType(in.Type).Valid() {
		return nil, models.NewValidationError("Invalid resource type")
	}
	if in.Category != "" && !models.ResourceCategory(in.Category).Valid() {
		return nil, models.NewValidationError("Invalid resource category")
	}

	var resources []*models.Resource
	if in.Type == "" && in.Category == "" && in.Offset == 0 && in.Limit == cachedPageSize {
		err := cache.CacheAside(ctx, cache.ResourceListKey, &resources, cache.ResourceListTTL, func() error {
			var fetchErr error
			resources, fetchErr = s.resourceRepo.List(ctx, "", "", in.Limit, in.Offset)
			return fetchErr
		})
		return resources, err
	}

	return s.resourceRepo.List(ctx, models.ResourceType(in.Type), models.ResourceCategory(in.Category), in.Limit, in.Offset)
}

func (s *ResourceService) GetResource(ctx context.Context, id uint) (*models.Resource, error) {
	res, err := s.resourceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Resource not found")
		}
		return nil, err
	}
	_ = s.resourceRepo.IncrementViews(ctx, id)
	return res, nil
}

// RateResource folds a 1..5 rating into the resource's aggregate. The fold
// happens in the database so concurrent ratings are never dropped.
func (s *ResourceService) RateResource(ctx context.Context, id uint, value int) (*models.Resource, error) {
	if value < 1 || value > 5 {
		return nil, models.NewValidationError("Rating must be between 1 and 5")
	}
	if err := s.resourceRepo.Rate(ctx, id, value); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Resource not found")
		}
		return nil, err
	}
	return s.resourceRepo.GetByID(ctx, id)
}

func (s *ResourceService) ListFeatured(ctx context.Context, limit int) ([]*models.Resource, error) {
	return s.resourceRepo.ListFeatured(ctx, limit)
}
