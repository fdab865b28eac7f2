package repository

import (
	"context"

	"mindbridge/internal/cache"
	"mindbridge/internal/models"

	"gorm.io/gorm"
)

// ResourceRepository defines the interface for resource library data operations
type ResourceRepository interface {
	Create(ctx context.Context, res *models.Resource) error
	GetByID(ctx context.Context, id uint) (*models.Resource, error)
	List(ctx context.Context, typ models.ResourceType, category models.ResourceCategory, limit, offset int) ([]*models.Resource, error)
	ListFeatured(ctx context.Context, limit int) ([]*models.Resource, error)
	Rate(ctx context.Context, id uint, value int) error
	IncrementViews(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

// resourceRepository implements ResourceRepository
type resourceRepository struct {
	db *gorm.DB
}

// NewResourceRepository creates a new resource repository
func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

func (r *resourceRepository) Create(ctx context.Context, res *models.Resource) error {
	err := r.db.WithContext(ctx).Create(res).Error
	if err == nil {
		cache.InvalidateResourceList(ctx)
	}
	return err
}

func (r *resourceRepository) GetByID(ctx context.Context, id uint) (*models.Resource, error) {
	var res models.Resource
	if err := r.db.WithContext(ctx).First(&res, id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *resourceRepository) List(ctx context.Context, typ models.ResourceType, category models.ResourceCategory, limit, offset int) ([]*models.Resource, error) {
	var resources []*models.Resource
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if typ != "" {
		q = q.Where("type = ?", typ)
	}
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Order("is_featured DESC, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&resources).Error
	return resources, err
}

func (r *resourceRepository) ListFeatured(ctx context.Context, limit int) ([]*models.Resource, error) {
	var resources []*models.Resource
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND is_featured = ?", true, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&resources).Error
	return resources, err
}

// Rate folds a new rating into the stored average and count in one update,
// so concurrent ratings never overwrite each other. SET expressions read the
// pre-update column values, hence the shared (count + 1) denominator.
func (r *resourceRepository) Rate(ctx context.Context, id uint, value int) error {
	res := r.db.WithContext(ctx).
		Model(&models.Resource{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"rating_average": gorm.Expr("(rating_average * rating_count + ?) / (rating_count + 1)", value),
			"rating_count":   gorm.Expr("rating_count + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidateResourceList(ctx)
	return nil
}

func (r *resourceRepository) IncrementViews(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Resource{}).
		Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).Error
}

func (r *resourceRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Resource{}, id).Error; err != nil {
		return err
	}
	cache.InvalidateResourceList(ctx)
	return nil
}
