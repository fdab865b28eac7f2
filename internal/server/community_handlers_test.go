package server

import (
	"net/http"
	"testing"

	"mindbridge/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommunityTestApp(s *Server, currentUser *uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", *currentUser)
		return c.Next()
	})
	app.Get("/posts", s.GetPosts)
	app.Post("/posts", s.CreatePost)
	app.Post("/posts/:id/like", s.LikePost)
	app.Get("/posts/:id/comments", s.GetComments)
	app.Post("/posts/:id/comments", s.CreateComment)
	app.Post("/posts/:id/approve", s.ApprovePost)
	app.Get("/posts/:id", s.GetPost)
	app.Delete("/posts/:id", s.DeletePost)
	return app
}

func TestCreateAndLikePost(t *testing.T) {
	s := newTestServer(t)
	student := createTestUser(t, s, "student@example.com", models.UserTypeStudent)
	currentUser := student.ID
	app := newCommunityTestApp(s, &currentUser)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/posts", map[string]any{
		"title":    "Finals week survival tips",
		"content":  "Sharing what helped me get through last semester.",
		"category": "advice",
		"tags":     []string{"exam", "study"},
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var post models.CommunityPost
	decodeBody(t, resp, &post)
	assert.Equal(t, 0, post.Likes)

	// Likes only ever go up, even when the same user likes repeatedly.
	for want := 1; want <= 3; want++ {
		resp, err = app.Test(jsonRequest(t, http.MethodPost, "/posts/1/like", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		decodeBody(t, resp, &post)
		assert.Equal(t, want, post.Likes)
	}

	// Liking a missing post is a 404.
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/posts/999/like", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestListPostsCategoryFilter(t *testing.T) {
	s := newTestServer(t)
	student := createTestUser(t, s, "student@example.com", models.UserTypeStudent)
	currentUser := student.ID
	app := newCommunityTestApp(s, &currentUser)

	for _, p := range []map[string]any{
		{"title": "Made it through a tough month", "content": "It does get better.", "category": "success_story"},
		{"title": "How do you handle deadlines?", "content": "Looking for strategies.", "category": "question"},
		{"title": "Small wins matter", "content": "Celebrate them.", "category": "success_story"},
	} {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/posts", p))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		_ = resp.Body.Close()
	}

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/posts?category=success_story", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var posts []models.CommunityPost
	decodeBody(t, resp, &posts)
	require.Len(t, posts, 2)
	for _, p := range posts {
		assert.Equal(t, models.CategorySuccessStory, p.Category)
	}

	// Unknown categories are rejected rather than silently returning everything.
	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/posts?category=rant", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestPostCommentsFlow(t *testing.T) {
	s := newTestServer(t)
	student := createTestUser(t, s, "student@example.com", models.UserTypeStudent)
	currentUser := student.ID
	app := newCommunityTestApp(s, &currentUser)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/posts", map[string]any{
		"title":    "Anyone else anxious about placements?",
		"content":  "The pressure is getting to me.",
		"category": "question",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/posts/1/comments", map[string]any{
		"content": "You are not alone, happy to talk.",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var comment models.PostComment
	decodeBody(t, resp, &comment)
	assert.Equal(t, uint(1), comment.PostID)

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/posts/1/comments", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var comments []models.PostComment
	decodeBody(t, resp, &comments)
	require.Len(t, comments, 1)

	// Commenting on a missing post is a 404.
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/posts/999/comments", map[string]any{
		"content": "hello",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestDeletePostPermissions(t *testing.T) {
	s := newTestServer(t)
	author := createTestUser(t, s, "author@example.com", models.UserTypeStudent)
	stranger := createTestUser(t, s, "stranger@example.com", models.UserTypeStudent)
	counselor := createTestUser(t, s, "counselor@example.com", models.UserTypeCounselor)
	currentUser := author.ID
	app := newCommunityTestApp(s, &currentUser)

	createPost := func() {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/posts", map[string]any{
			"title":    "A post to moderate",
			"content":  "Content under review.",
			"category": "general",
		}))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		_ = resp.Body.Close()
	}

	createPost()

	// A stranger cannot delete someone else's post.
	currentUser = stranger.ID
	resp, err := app.Test(jsonRequest(t, http.MethodDelete, "/posts/1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()

	// The author can.
	currentUser = author.ID
	resp, err = app.Test(jsonRequest(t, http.MethodDelete, "/posts/1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// A counselor can moderate any post.
	createPost()
	currentUser = counselor.ID
	resp, err = app.Test(jsonRequest(t, http.MethodDelete, "/posts/2", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestCommunityWallDisabledByInstitute(t *testing.T) {
	s := newTestServer(t)

	inst := &models.Institute{
		Name:  "Riverside University",
		Code:  "RVU",
		Email: "admin@riverside.edu",
		Settings: models.InstituteSettings{
			AllowAnonymous:      true,
			EnableCommunityWall: false,
			EnableAnalytics:     true,
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
	app := newCommunityTestApp(s, &currentUser)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/posts", map[string]any{
		"title":    "Hello",
		"content":  "Anyone else stressed about finals?",
		"category": "question",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/posts", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()

	// A student outside any institute is unaffected.
	outsider := createTestUser(t, s, "outsider@example.com", models.UserTypeStudent)
	currentUser = outsider.ID

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/posts", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
}
