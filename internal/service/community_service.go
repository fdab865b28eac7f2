package service

import (
	"context"
	"errors"

	"mindbridge/internal/cache"
	"mindbridge/internal/models"
	"mindbridge/internal/observability"
	"mindbridge/internal/repository"

	"gorm.io/gorm"
)

// cachedPageSize is the handlers' default page size; only that list variant
// is cached, so a smaller custom page never masquerades as the full page.
const cachedPageSize = 20

type CommunityService struct {
	postRepo      repository.PostRepository
	userRepo      repository.UserRepository
	instituteRepo repository.InstituteRepository
}

type CreatePostInput struct {
	AuthorID    uint
	InstituteID *uint
	Title       string
	Content     string
	Category    string
	Tags        []string
	IsAnonymous bool
}

type ListPostsInput struct {
	CallerID uint
	Category string
	Limit    int
	Offset   int
}

type CreateCommentInput struct {
	PostID      uint
	AuthorID    uint
	Content     string
	IsAnonymous bool
}

func NewCommunityService(postRepo repository.PostRepository, userRepo repository.UserRepository, instituteRepo repository.InstituteRepository) *CommunityService {
	return &CommunityService{postRepo: postRepo, userRepo: userRepo, instituteRepo: instituteRepo}
}

// checkWallEnabled denies community access for users whose institute turned
// the wall off. Users without an institute always pass, and a dangling
// institute reference does not lock the user out.
func (s *CommunityService) checkWallEnabled(ctx context.Context, userID uint) error {
	if s.userRepo == nil || s.instituteRepo == nil || userID == 0 {
		return nil
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.InstituteID == nil {
		return nil
	}
	inst, err := s.instituteRepo.GetByID(ctx, *user.InstituteID)
	if err != nil {
		return nil
	}
	if !inst.Settings.EnableCommunityWall {
		return models.NewUnauthorizedError("The community wall is disabled for your institute")
	}
	return nil
}

func (s *CommunityService) CreatePost(ctx context.Context, in CreatePostInput) (*models.CommunityPost, error) {
	if err := s.checkWallEnabled(ctx, in.AuthorID); err != nil {
		return nil, err
	}

	post := &models.CommunityPost{
		AuthorID:    in.AuthorID,
		InstituteID: in.InstituteID,
		Title:       in.Title,
		Content:     in.Content,
		Category:    models.PostCategory(in.Category),
		Tags:        in.Tags,
		IsAnonymous: in.IsAnonymous,
	}
	if err := post.Validate(); err != nil {
		return nil, err
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	observability.PostsCreatedTotal.WithLabelValues(in.Category).Inc()
	return post, nil
}

// ListPosts returns posts newest first, optionally filtered to one category.
// The default-sized first page is served through the cache.
func (s *CommunityService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.CommunityPost, error) {
	if in.Category != "" && !models.PostCategory(in.Category).Valid() {
		return nil, models.NewValidationError("Invalid category")
	}
	if err := s.checkWallEnabled(ctx, in.CallerID); err != nil {
		return nil, err
	}

	var posts []*models.CommunityPost
	if in.Offset == 0 && in.Limit == cachedPageSize {
		key := cache.PostListKey(in.Category)
		err := cache.CacheAside(ctx, key, &posts, cache.PostListTTL, func() error {
			var fetchErr error
			posts, fetchErr = s.postRepo.List(ctx, models.PostCategory(in.Category), in.Limit, in.Offset)
			return fetchErr
		})
		return posts, err
	}

	return s.postRepo.List(ctx, models.PostCategory(in.Category), in.Limit, in.Offset)
}

func (s *CommunityService) GetPost(ctx context.Context, id uint) (*models.CommunityPost, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post not found")
		}
		return nil, err
	}
	// View bumps are best-effort; a read never fails on accounting.
	_ = s.postRepo.IncrementViews(ctx, id)
	return post, nil
}

// LikePost bumps the like counter and returns the fresh post. Likes only
// ever move up: there is no per-user record and no unlike.
func (s *CommunityService) LikePost(ctx context.Context, id uint) (*models.CommunityPost, error) {
	post, err := s.postRepo.Like(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post not found")
		}
		return nil, err
	}
	observability.PostLikesTotal.Inc()
	return post, nil
}

func (s *CommunityService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.PostComment, error) {
	if err := s.checkWallEnabled(ctx, in.AuthorID); err != nil {
		return nil, err
	}

	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post not found")
		}
		return nil, err
	}

	comment := &models.PostComment{
		PostID:      in.PostID,
		AuthorID:    in.AuthorID,
		Content:     in.Content,
		IsAnonymous: in.IsAnonymous,
	}
	if err := comment.Validate(); err != nil {
		return nil, err
	}
	if err := s.postRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommunityService) ListComments(ctx context.Context, postID uint, limit, offset int) ([]*models.PostComment, error) {
	return s.postRepo.ListComments(ctx, postID, limit, offset)
}

// ApprovePost marks the post as moderator-approved.
func (s *CommunityService) ApprovePost(ctx context.Context, postID, approverID uint) (*models.CommunityPost, error) {
	if err := s.postRepo.Approve(ctx, postID, approverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post not found")
		}
		return nil, err
	}
	return s.postRepo.GetByID(ctx, postID)
}

// DeletePost removes a post. Authors can delete their own; counselors can
// delete any.
func (s *CommunityService) DeletePost(ctx context.Context, postID, callerID uint, callerIsCounselor bool) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Post not found")
		}
		return err
	}
	if post.AuthorID != callerID && !callerIsCounselor {
		return models.NewUnauthorizedError("You can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, postID)
}
