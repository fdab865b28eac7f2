package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"mindbridge/internal/cache"
	"mindbridge/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn         func(context.Context, *models.CommunityPost) error
	getByIDFn        func(context.Context, uint) (*models.CommunityPost, error)
	listFn           func(context.Context, models.PostCategory, int, int) ([]*models.CommunityPost, error)
	likeFn           func(context.Context, uint) (*models.CommunityPost, error)
	incrementViewsFn func(context.Context, uint) error
	approveFn        func(context.Context, uint, uint) error
	deleteFn         func(context.Context, uint) error
	createCommentFn  func(context.Context, *models.PostComment) error
	listCommentsFn   func(context.Context, uint, int, int) ([]*models.PostComment, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.CommunityPost) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.CommunityPost, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, category models.PostCategory, limit, offset int) ([]*models.CommunityPost, error) {
	return s.listFn(ctx, category, limit, offset)
}
func (s *postRepoStub) Like(ctx context.Context, id uint) (*models.CommunityPost, error) {
	return s.likeFn(ctx, id)
}
func (s *postRepoStub) IncrementViews(ctx context.Context, id uint) error {
	return s.incrementViewsFn(ctx, id)
}
func (s *postRepoStub) Approve(ctx context.Context, id, approverID uint) error {
	return s.approveFn(ctx, id, approverID)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) CreateComment(ctx context.Context, comment *models.PostComment) error {
	return s.createCommentFn(ctx, comment)
}
func (s *postRepoStub) ListComments(ctx context.Context, postID uint, limit, offset int) ([]*models.PostComment, error) {
	return s.listCommentsFn(ctx, postID, limit, offset)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(_ context.Context, _ *models.CommunityPost) error { return nil },
		getByIDFn: func(_ context.Context, _ uint) (*models.CommunityPost, error) { return &models.CommunityPost{}, nil },
		listFn: func(_ context.Context, _ models.PostCategory, _, _ int) ([]*models.CommunityPost, error) {
			return nil, nil
		},
		likeFn:           func(_ context.Context, _ uint) (*models.CommunityPost, error) { return &models.CommunityPost{}, nil },
		incrementViewsFn: func(_ context.Context, _ uint) error { return nil },
		approveFn:        func(_ context.Context, _, _ uint) error { return nil },
		deleteFn:         func(_ context.Context, _ uint) error { return nil },
		createCommentFn:  func(_ context.Context, _ *models.PostComment) error { return nil },
		listCommentsFn:   func(_ context.Context, _ uint, _, _ int) ([]*models.PostComment, error) { return nil, nil },
	}
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

// assertUnauthorizedError asserts that err is an AppError with code UNAUTHORIZED.
func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}

// assertNotFoundError asserts that err is an AppError with code NOT_FOUND.
func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestCommunityService_CreatePost_Validation(t *testing.T) {
	t.Parallel()

	svc := NewCommunityService(noopPostRepo(), nil, nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreatePostInput
	}{
		{
			name:  "empty title",
			input: CreatePostInput{AuthorID: 1, Content: "some content", Category: "general"},
		},
		{
			name:  "title too long",
			input: CreatePostInput{AuthorID: 1, Title: strings.Repeat("a", 201), Content: "c", Category: "general"},
		},
		{
			name:  "empty content",
			input: CreatePostInput{AuthorID: 1, Title: "Hi", Category: "general"},
		},
		{
			name:  "content too long",
			input: CreatePostInput{AuthorID: 1, Title: "Hi", Content: strings.Repeat("a", 2001), Category: "general"},
		},
		{
			name:  "invalid category",
			input: CreatePostInput{AuthorID: 1, Title: "Hi", Content: "c", Category: "rant"},
		},
		{
			name:  "invalid tag",
			input: CreatePostInput{AuthorID: 1, Title: "Hi", Content: "c", Category: "general", Tags: []string{"nonsense"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePost(ctx, tt.input)
			assertValidationError(t, err)
		})
	}
}

func TestCommunityService_CreatePost(t *testing.T) {
	t.Parallel()

	repo := noopPostRepo()
	var created *models.CommunityPost
	repo.createFn = func(_ context.Context, post *models.CommunityPost) error {
		post.ID = 42
		created = post
		return nil
	}
	svc := NewCommunityService(repo, nil, nil)

	post, err := svc.CreatePost(context.Background(), CreatePostInput{
		AuthorID:    1,
		Title:       "Finally slept 8 hours",
		Content:     "Turned my phone off at 10pm and it worked",
		Category:    "success_story",
		Tags:        []string{"health", "tips"},
		IsAnonymous: true,
	})
	require.NoError(t, err)
	assert.Equal(t, uint(42), post.ID)
	assert.Equal(t, created, post)
	assert.Equal(t, models.CategorySuccessStory, post.Category)
	assert.True(t, post.IsAnonymous)
}

func TestCommunityService_ListPosts_InvalidCategory(t *testing.T) {
	t.Parallel()

	svc := NewCommunityService(noopPostRepo(), nil, nil)
	_, err := svc.ListPosts(context.Background(), ListPostsInput{Category: "bogus", Limit: 20})
	assertValidationError(t, err)
}

func TestCommunityService_LikePost(t *testing.T) {
	t.Parallel()

	t.Run("returns post with bumped counter", func(t *testing.T) {
		repo := noopPostRepo()
		likes := 3
		repo.likeFn = func(_ context.Context, id uint) (*models.CommunityPost, error) {
			likes++
			return &models.CommunityPost{ID: id, Likes: likes}, nil
		}
		svc := NewCommunityService(repo, nil, nil)

		post, err := svc.LikePost(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, 4, post.Likes)

		// Liking again keeps counting. There is no per-user guard.
		post, err = svc.LikePost(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, 5, post.Likes)
	})

	t.Run("missing post", func(t *testing.T) {
		repo := noopPostRepo()
		repo.likeFn = func(_ context.Context, _ uint) (*models.CommunityPost, error) {
			return nil, gorm.ErrRecordNotFound
		}
		svc := NewCommunityService(repo, nil, nil)

		_, err := svc.LikePost(context.Background(), 99)
		assertNotFoundError(t, err)
	})
}

func TestCommunityService_CreateComment(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty content", func(t *testing.T) {
		svc := NewCommunityService(noopPostRepo(), nil, nil)
		_, err := svc.CreateComment(context.Background(), CreateCommentInput{PostID: 1, AuthorID: 2})
		assertValidationError(t, err)
	})

	t.Run("missing post", func(t *testing.T) {
		repo := noopPostRepo()
		repo.getByIDFn = func(_ context.Context, _ uint) (*models.CommunityPost, error) {
			return nil, gorm.ErrRecordNotFound
		}
		svc := NewCommunityService(repo, nil, nil)
		_, err := svc.CreateComment(context.Background(), CreateCommentInput{PostID: 1, AuthorID: 2, Content: "hang in there"})
		assertNotFoundError(t, err)
	})
}

func TestCommunityService_DeletePost(t *testing.T) {
	t.Parallel()

	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.CommunityPost, error) {
		return &models.CommunityPost{ID: id, AuthorID: 1}, nil
	}
	svc := NewCommunityService(repo, nil, nil)
	ctx := context.Background()

	t.Run("author can delete", func(t *testing.T) {
		assert.NoError(t, svc.DeletePost(ctx, 10, 1, false))
	})

	t.Run("stranger cannot delete", func(t *testing.T) {
		assertUnauthorizedError(t, svc.DeletePost(ctx, 10, 2, false))
	})

	t.Run("counselor can delete any", func(t *testing.T) {
		assert.NoError(t, svc.DeletePost(ctx, 10, 2, true))
	})
}

func TestCommunityService_WallDisabledByInstitute(t *testing.T) {
	instituteID := uint(3)
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, InstituteID: &instituteID}, nil
	}
	institutes := noopInstituteRepo()
	institutes.getByIDFn = func(_ context.Context, id uint) (*models.Institute, error) {
		return &models.Institute{ID: id, Settings: models.InstituteSettings{EnableCommunityWall: false}}, nil
	}
	svc := NewCommunityService(noopPostRepo(), users, institutes)
	ctx := context.Background()

	t.Run("posting is denied", func(t *testing.T) {
		_, err := svc.CreatePost(ctx, CreatePostInput{AuthorID: 1, Title: "Hi", Content: "c", Category: "general"})
		assertUnauthorizedError(t, err)
	})

	t.Run("listing is denied", func(t *testing.T) {
		_, err := svc.ListPosts(ctx, ListPostsInput{CallerID: 1, Limit: 20})
		assertUnauthorizedError(t, err)
	})

	t.Run("commenting is denied", func(t *testing.T) {
		_, err := svc.CreateComment(ctx, CreateCommentInput{PostID: 1, AuthorID: 1, Content: "hang in there"})
		assertUnauthorizedError(t, err)
	})

	t.Run("user without an institute passes", func(t *testing.T) {
		users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id}, nil
		}
		_, err := svc.ListPosts(ctx, ListPostsInput{CallerID: 1, Limit: 5})
		assert.NoError(t, err)
	})
}

func TestCommunityService_ListPosts_CacheOnlyDefaultPage(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	all := make([]*models.CommunityPost, 5)
	for i := range all {
		all[i] = &models.CommunityPost{ID: uint(i + 1), Title: "Post", Content: "c", Category: models.CategoryGeneral}
	}
	repo := noopPostRepo()
	fetches := 0
	repo.listFn = func(_ context.Context, _ models.PostCategory, limit, _ int) ([]*models.CommunityPost, error) {
		fetches++
		if limit < len(all) {
			return all[:limit], nil
		}
		return all, nil
	}
	svc := NewCommunityService(repo, nil, nil)
	ctx := context.Background()

	// A custom page size bypasses the cache entirely.
	posts, err := svc.ListPosts(ctx, ListPostsInput{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Equal(t, 1, fetches)

	// The default page is not truncated by the smaller read before it.
	posts, err = svc.ListPosts(ctx, ListPostsInput{Limit: 20})
	require.NoError(t, err)
	assert.Len(t, posts, 5)
	assert.Equal(t, 2, fetches)

	// Repeat default reads are served from the cache.
	posts, err = svc.ListPosts(ctx, ListPostsInput{Limit: 20})
	require.NoError(t, err)
	assert.Len(t, posts, 5)
	assert.Equal(t, 2, fetches)
}
