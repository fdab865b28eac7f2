package repository

import (
	"context"
	"time"

	"mindbridge/internal/cache"
	"mindbridge/internal/models"

	"gorm.io/gorm"
)

// MoodRepository defines the interface for mood entry data operations
type MoodRepository interface {
	Create(ctx context.Context, entry *models.MoodEntry) error
	GetByID(ctx context.Context, id uint) (*models.MoodEntry, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.MoodEntry, error)
	ListByUserSince(ctx context.Context, userID uint, since time.Time) ([]*models.MoodEntry, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
}

// moodRepository implements MoodRepository
type moodRepository struct {
	db *gorm.DB
}

// NewMoodRepository creates a new mood repository
func NewMoodRepository(db *gorm.DB) MoodRepository {
	return &moodRepository{db: db}
}

func (r *moodRepository) Create(ctx context.Context, entry *models.MoodEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return err
	}
	cache.InvalidateAnalytics(ctx, entry.UserID)
	return nil
}

func (r *moodRepository) GetByID(ctx context.Context, id uint) (*models.MoodEntry, error) {
	var entry models.MoodEntry
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *moodRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.MoodEntry, error) {
	var entries []*models.MoodEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	return entries, err
}

// ListByUserSince returns all entries for the user created at or after since,
// oldest first, for analytics aggregation.
func (r *moodRepository) ListByUserSince(ctx context.Context, userID uint, since time.Time) ([]*models.MoodEntry, error) {
	var entries []*models.MoodEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}

func (r *moodRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.MoodEntry{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
