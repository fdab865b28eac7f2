package repository

import (
	"context"

	"mindbridge/internal/cache"
	"mindbridge/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for community post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.CommunityPost) error
	GetByID(ctx context.Context, id uint) (*models.CommunityPost, error)
	List(ctx context.Context, category models.PostCategory, limit, offset int) ([]*models.CommunityPost, error)
	Like(ctx context.Context, id uint) (*models.CommunityPost, error)
	IncrementViews(ctx context.Context, id uint) error
	Approve(ctx context.Context, id, approverID uint) error
	Delete(ctx context.Context, id uint) error
	CreateComment(ctx context.Context, comment *models.PostComment) error
	ListComments(ctx context.Context, postID uint, limit, offset int) ([]*models.PostComment, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func allCategories() []string {
	return []string{
		string(models.CategorySuccessStory), string(models.CategoryAdvice),
		string(models.CategoryQuestion), string(models.CategoryResourceShare),
		string(models.CategoryMotivation), string(models.CategoryGeneral),
	}
}

func (r *postRepository) Create(ctx context.Context, post *models.CommunityPost) error {
	err := r.db.WithContext(ctx).Create(post).Error
	if err == nil {
		cache.InvalidatePostLists(ctx, allCategories())
	}
	return err
}

// applyCommentCount adds a subquery so comment counts ride along in one query.
func (r *postRepository) applyCommentCount(db *gorm.DB) *gorm.DB {
	return db.Select("community_posts.*, " +
		"(SELECT COUNT(*) FROM post_comments WHERE post_comments.post_id = community_posts.id AND post_comments.deleted_at IS NULL) as comments_count")
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.CommunityPost, error) {
	var post models.CommunityPost
	err := r.applyCommentCount(r.db.WithContext(ctx)).
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, category models.PostCategory, limit, offset int) ([]*models.CommunityPost, error) {
	var posts []*models.CommunityPost
	q := r.applyCommentCount(r.db.WithContext(ctx))
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

// Like bumps the counter atomically in the database so concurrent likes
// never lose an increment, then returns the updated row.
func (r *postRepository) Like(ctx context.Context, id uint) (*models.CommunityPost, error) {
	res := r.db.WithContext(ctx).
		Model(&models.CommunityPost{}).
		Where("id = ?", id).
		Update("likes", gorm.Expr("likes + 1"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	cache.InvalidatePostLists(ctx, allCategories())
	return r.GetByID(ctx, id)
}

func (r *postRepository) IncrementViews(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.CommunityPost{}).
		Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).Error
}

func (r *postRepository) Approve(ctx context.Context, id, approverID uint) error {
	res := r.db.WithContext(ctx).
		Model(&models.CommunityPost{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_approved": true,
			"approved_by": approverID,
			"approved_at": gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidatePostLists(ctx, allCategories())
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.CommunityPost{}, id).Error; err != nil {
		return err
	}
	cache.InvalidatePostLists(ctx, allCategories())
	return nil
}

func (r *postRepository) CreateComment(ctx context.Context, comment *models.PostComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *postRepository) ListComments(ctx context.Context, postID uint, limit, offset int) ([]*models.PostComment, error) {
	var comments []*models.PostComment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	return comments, err
}
