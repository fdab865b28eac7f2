package repository

import (
	"context"
	"regexp"
	"testing"

	"mindbridge/internal/cache"
	"mindbridge/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoodRepository_CreateInvalidatesAnalytics(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMoodRepository(db)
	ctx := context.Background()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	require.NoError(t, mr.Set("analytics:7:7d", "stale"))
	require.NoError(t, mr.Set("analytics:7:30d", "stale"))
	require.NoError(t, mr.Set("analytics:7:90d", "stale"))
	require.NoError(t, mr.Set("analytics:4:7d", "other-user"))

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "mood_entries"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err = repo.Create(ctx, &models.MoodEntry{UserID: 7, Mood: models.MoodCalm, Intensity: 5})
	require.NoError(t, err)

	// The writer's cached analytics are gone; nobody else's are touched.
	assert.False(t, mr.Exists("analytics:7:7d"))
	assert.False(t, mr.Exists("analytics:7:30d"))
	assert.False(t, mr.Exists("analytics:7:90d"))
	assert.True(t, mr.Exists("analytics:4:7d"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
