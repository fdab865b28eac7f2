package server

import (
	"net/http"
	"testing"

	"mindbridge/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassword = "Sup3rSecret!Pass"

func newAuthTestApp(t *testing.T, s *Server) *fiber.App {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	app := fiber.New()
	s.SetupRoutes(app)
	return app
}

func signupUser(t *testing.T, app *fiber.App, email string) (string, models.User) {
	t.Helper()
	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/signup", map[string]any{
		"name":     "Alex Rivera",
		"email":    email,
		"password": testPassword,
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body.Token)
	return body.Token, body.User
}

func TestSignupLoginAndProfile(t *testing.T) {
	s := newTestServer(t)
	app := newAuthTestApp(t, s)

	token, user := signupUser(t, app, "alex@example.com")
	assert.Equal(t, models.UserTypeStudent, user.UserType)

	// Duplicate signup is rejected.
	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/signup", map[string]any{
		"name":     "Alex Rivera",
		"email":    "alex@example.com",
		"password": testPassword,
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	_ = resp.Body.Close()

	// Login with the right password works.
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "alex@example.com",
		"password": testPassword,
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// Wrong password does not.
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "alex@example.com",
		"password": "WrongPassword1!x",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()

	// The token opens protected routes.
	req := jsonRequest(t, http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me models.User
	decodeBody(t, resp, &me)
	assert.Equal(t, user.ID, me.ID)
	assert.Equal(t, "Alex Rivera", me.Profile.Name)

	// No token, no access.
	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/users/me", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestSignupValidation(t *testing.T) {
	s := newTestServer(t)
	app := newAuthTestApp(t, s)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing fields", map[string]any{"email": "x@example.com"}},
		{"weak password", map[string]any{"name": "Alex", "email": "x@example.com", "password": "short"}},
		{"bad email", map[string]any{"name": "Alex", "email": "not-an-email", "password": testPassword}},
		{"anonymous type via signup", map[string]any{"name": "Alex", "email": "x@example.com", "password": testPassword, "user_type": "anonymous"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/signup", tt.body))
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			_ = resp.Body.Close()
		})
	}
}

func TestAnonymousSession(t *testing.T) {
	s := newTestServer(t)
	app := newAuthTestApp(t, s)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/anonymous", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body.Token)
	assert.True(t, body.User.IsAnonymous)
	require.NotNil(t, body.User.AnonymousID)
	assert.Contains(t, *body.User.AnonymousID, "anon-")
	assert.Nil(t, body.User.Email)

	// Anonymous users can track moods.
	req := jsonRequest(t, http.MethodPost, "/api/moods/", map[string]any{
		"mood":      "calm",
		"intensity": 6,
	})
	req.Header.Set("Authorization", "Bearer "+body.Token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestAnonymousSessionDisabledByInstitute(t *testing.T) {
	s := newTestServer(t)
	app := newAuthTestApp(t, s)

	inst := &models.Institute{
		Name:  "Riverside University",
		Code:  "RVU",
		Email: "admin@riverside.edu",
		Settings: models.InstituteSettings{
			AllowAnonymous: false,
		},
	}
	require.NoError(t, s.db.Create(inst).Error)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/anonymous", map[string]any{
		"institute_id": inst.ID,
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestCounselorOnlyRoutes(t *testing.T) {
	s := newTestServer(t)
	app := newAuthTestApp(t, s)

	studentToken, _ := signupUser(t, app, "student@example.com")

	// Students cannot publish resources.
	req := jsonRequest(t, http.MethodPost, "/api/resources/", map[string]any{
		"title":       "Guided Breathing",
		"description": "A short grounding exercise.",
		"type":        "meditation",
		"category":    "anxiety",
		"url":         "https://cdn.mindbridge.app/resources/guided-breathing.mp3",
	})
	req.Header.Set("Authorization", "Bearer "+studentToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()

	// Counselors can.
	counselor := createTestUser(t, s, "counselor@example.com", models.UserTypeCounselor)
	counselorToken, err := s.generateToken(counselor.ID, string(counselor.UserType))
	require.NoError(t, err)

	req = jsonRequest(t, http.MethodPost, "/api/resources/", map[string]any{
		"title":       "Guided Breathing",
		"description": "A short grounding exercise.",
		"type":        "meditation",
		"category":    "anxiety",
		"url":         "https://cdn.mindbridge.app/resources/guided-breathing.mp3",
	})
	req.Header.Set("Authorization", "Bearer "+counselorToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()
}
