package server

import (
	"net/http"
	"testing"
	"time"

	"mindbridge/internal/models"
	"mindbridge/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMoodTestApp(s *Server, currentUser *uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", *currentUser)
		return c.Next()
	})
	app.Post("/moods", s.SubmitMood)
	app.Get("/moods", s.GetMoods)
	app.Get("/moods/analytics", s.GetMoodAnalytics)
	return app
}

func TestSubmitMood(t *testing.T) {
	s := newTestServer(t)
	student := createTestUser(t, s, "student@example.com", models.UserTypeStudent)
	currentUser := student.ID
	app := newMoodTestApp(s, &currentUser)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/moods", map[string]any{
		"mood":       "anxious",
		"intensity":  7,
		"notes":      "Exam tomorrow.",
		"tags":       []string{"academics"},
		"activities": []string{"studying"},
		"location":   "library",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var entry models.MoodEntry
	decodeBody(t, resp, &entry)
	assert.Equal(t, models.MoodAnxious, entry.Mood)
	assert.Equal(t, 7, entry.Intensity)
	assert.Equal(t, student.ID, entry.UserID)

	// Submitting a mood earns points.
	var reloaded models.User
	require.NoError(t, s.db.First(&reloaded, student.ID).Error)
	assert.Greater(t, reloaded.Profile.Points, 0)
}

func TestSubmitMoodValidation(t *testing.T) {
	s := newTestServer(t)
	student := createTestUser(t, s, "student@example.com", models.UserTypeStudent)
	currentUser := student.ID
	app := newMoodTestApp(s, &currentUser)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"unknown mood", map[string]any{"mood": "giddy", "intensity": 5}},
		{"intensity too low", map[string]any{"mood": "happy", "intensity": 0}},
		{"intensity too high", map[string]any{"mood": "happy", "intensity": 11}},
		{"unknown tag", map[string]any{"mood": "happy", "intensity": 5, "tags": []string{"homework"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(t, http.MethodPost, "/moods", tt.body))
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			_ = resp.Body.Close()
		})
	}
}

func TestGetMoodsNewestFirst(t *testing.T) {
	s := newTestServer(t)
	student := createTestUser(t, s, "student@example.com", models.UserTypeStudent)
	currentUser := student.ID
	app := newMoodTestApp(s, &currentUser)

	base := time.Now().Add(-48 * time.Hour)
	for i, mood := range []models.Mood{models.MoodSad, models.MoodNeutral, models.MoodHappy} {
		entry := &models.MoodEntry{
			UserID:    student.ID,
			Mood:      mood,
			Intensity: 5,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, s.db.Create(entry).Error)
	}

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/moods", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var entries []models.MoodEntry
	decodeBody(t, resp, &entries)
	require.Len(t, entries, 3)
	assert.Equal(t, models.MoodHappy, entries[0].Mood)
	assert.Equal(t, models.MoodSad, entries[2].Mood)
}

func TestGetMoodAnalytics(t *testing.T) {
	s := newTestServer(t)
	student := createTestUser(t, s, "student@example.com", models.UserTypeStudent)
	currentUser := student.ID
	app := newMoodTestApp(s, &currentUser)

	now := time.Now()
	for _, e := range []struct {
		mood      models.Mood
		intensity int
		age       time.Duration
	}{
		{models.MoodHappy, 8, 24 * time.Hour},
		{models.MoodHappy, 6, 48 * time.Hour},
		{models.MoodStressed, 4, 72 * time.Hour},
	} {
		entry := &models.MoodEntry{
			UserID:    student.ID,
			Mood:      e.mood,
			Intensity: e.intensity,
			CreatedAt: now.Add(-e.age),
		}
		require.NoError(t, s.db.Create(entry).Error)
	}

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/moods/analytics?period=7d", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var analytics service.MoodAnalytics
	decodeBody(t, resp, &analytics)
	assert.Equal(t, "7d", analytics.Period)
	assert.Equal(t, 3, analytics.TotalEntries)
	assert.Equal(t, "happy", analytics.MostFrequentMood)
	assert.InDelta(t, 6.0, analytics.AverageIntensity, 0.01)

	// Unknown periods are rejected.
	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/moods/analytics?period=1y", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestGetMoodAnalyticsDisabledByInstitute(t *testing.T) {
	s := newTestServer(t)

	inst := &models.Institute{
		Name:  "Riverside University",
		Code:  "RVU",
		Email: "admin@riverside.edu",
		Settings: models.InstituteSettings{
			AllowAnonymous:  true,
			EnableAnalytics: false,
		},
	}
	require.NoError(t, s.db.Create(inst).Error)

	email := "student@riverside.edu"
	student := &models.User{
		Email:       &email,
		Password:    "hashed",
		UserType:    models.UserTypeStudent,
		InstituteID: &inst.ID,
		IsActive:    true,
	}
	require.NoError(t, s.db.Create(student).Error)

	currentUser := student.ID
	app := newMoodTestApp(s, &currentUser)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/moods/analytics?period=30d", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()
}
