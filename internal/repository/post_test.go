package repository

import (
	"context"
	"regexp"
	"testing"

	"mindbridge/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.CommunityPost{AuthorID: 1, Title: "Small win today", Content: "Made it to all my classes", Category: models.CategorySuccessStory}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "community_posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, post)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Like(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("increments counter in the database", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "community_posts" SET "likes"=likes + 1`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		mock.ExpectQuery(`SELECT community_posts\.\*`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "likes"}).AddRow(1, "Small win today", 6))

		post, err := repo.Like(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, 6, post.Likes)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing post", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "community_posts" SET "likes"=likes + 1`)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		_, err := repo.Like(ctx, 99)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_List(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("newest first", func(t *testing.T) {
		mock.ExpectQuery(`SELECT community_posts\.\*.+ORDER BY created_at DESC`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).
				AddRow(2, "Second").
				AddRow(1, "First"))

		posts, err := repo.List(ctx, "", 20, 0)
		assert.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, uint(2), posts[0].ID)
	})

	t.Run("category filter", func(t *testing.T) {
		mock.ExpectQuery(`SELECT community_posts\.\*.+WHERE category = \$1`).
			WithArgs(string(models.CategoryAdvice), 20).
			WillReturnRows(sqlmock.NewRows([]string{"id", "category"}).AddRow(3, "advice"))

		posts, err := repo.List(ctx, models.CategoryAdvice, 20, 0)
		assert.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, models.CategoryAdvice, posts[0].Category)
	})
}
