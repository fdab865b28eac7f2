package seed

import (
	"testing"

	"mindbridge/internal/database"
	"mindbridge/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(database.Models()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

func TestLoadResourceCatalog(t *testing.T) {
	resources, err := LoadResourceCatalog()
	require.NoError(t, err)
	require.NotEmpty(t, resources)

	featured := 0
	for _, r := range resources {
		assert.NoError(t, r.Validate())
		assert.True(t, r.IsActive)
		if r.IsFeatured {
			featured++
		}
	}
	assert.Greater(t, featured, 0)
}

func TestSeedResourceCatalogIdempotent(t *testing.T) {
	db := setupSeedTestDB(t)

	created, err := SeedResourceCatalog(db)
	require.NoError(t, err)
	assert.Greater(t, created, 0)

	// Running again creates nothing new.
	again, err := SeedResourceCatalog(db)
	require.NoError(t, err)
	assert.Zero(t, again)

	var count int64
	require.NoError(t, db.Model(&models.Resource{}).Count(&count).Error)
	assert.Equal(t, int64(created), count)
}

func TestSeedPopulatesAllTables(t *testing.T) {
	db := setupSeedTestDB(t)

	opts := Options{
		NumStudents:    4,
		NumCounselors:  1,
		MoodsPerUser:   3,
		NumPosts:       5,
		CommentsPerMax: 2,
		MaxDays:        30,
		SkipBcrypt:     true,
	}
	require.NoError(t, Seed(db, opts))

	var users, moods, posts, resources int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.MoodEntry{}).Count(&moods).Error)
	require.NoError(t, db.Model(&models.CommunityPost{}).Count(&posts).Error)
	require.NoError(t, db.Model(&models.Resource{}).Count(&resources).Error)

	assert.Equal(t, int64(5), users)
	assert.Equal(t, int64(12), moods)
	assert.Equal(t, int64(5), posts)
	assert.Greater(t, resources, int64(0))

	var inst models.Institute
	require.NoError(t, db.Where("code = ?", "RVU").First(&inst).Error)
	assert.True(t, inst.Settings.EnableAnalytics)

	// Seeding again with ShouldClean resets the demo data.
	opts.ShouldClean = true
	require.NoError(t, Seed(db, opts))
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Equal(t, int64(5), users)
}
