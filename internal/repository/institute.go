package repository

import (
	"context"

	"mindbridge/internal/models"

	"gorm.io/gorm"
)

// InstituteRepository defines the interface for institute data operations
type InstituteRepository interface {
	Create(ctx context.Context, inst *models.Institute) error
	GetByID(ctx context.Context, id uint) (*models.Institute, error)
	GetByCode(ctx context.Context, code string) (*models.Institute, error)
	Update(ctx context.Context, inst *models.Institute) error
	UpdateSettings(ctx context.Context, id uint, settings models.InstituteSettings) error
}

// instituteRepository implements InstituteRepository
type instituteRepository struct {
	db *gorm.DB
}

// NewInstituteRepository creates a new institute repository
func NewInstituteRepository(db *gorm.DB) InstituteRepository {
	return &instituteRepository{db: db}
}

func (r *instituteRepository) Create(ctx context.Context, inst *models.Institute) error {
	return r.db.WithContext(ctx).Create(inst).Error
}

func (r *instituteRepository) GetByID(ctx context.Context, id uint) (*models.Institute, error) {
	var inst models.Institute
	if err := r.db.WithContext(ctx).First(&inst, id).Error; err != nil {
		return nil, err
	}
	return &inst, nil
}

func (r *instituteRepository) GetByCode(ctx context.Context, code string) (*models.Institute, error) {
	var inst models.Institute
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&inst).Error; err != nil {
		return nil, err
	}
	return &inst, nil
}

func (r *instituteRepository) Update(ctx context.Context, inst *models.Institute) error {
	return r.db.WithContext(ctx).Save(inst).Error
}

func (r *instituteRepository) UpdateSettings(ctx context.Context, id uint, settings models.InstituteSettings) error {
	res := r.db.WithContext(ctx).
		Model(&models.Institute{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"settings_allow_anonymous":       settings.AllowAnonymous,
			"settings_require_verification":  settings.RequireVerification,
			"settings_max_counselors":        settings.MaxCounselors,
			"settings_enable_community_wall": settings.EnableCommunityWall,
			"settings_enable_analytics":      settings.EnableAnalytics,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
