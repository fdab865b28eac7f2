package server

import (
	"mindbridge/internal/models"
	"mindbridge/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts
// @Summary List community posts
// @Description Return community wall posts, newest first, optionally filtered by category
// @Tags community
// @Produce json
// @Security BearerAuth
// @Param category query string false "Post category filter"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset"
// @Success 200 {array} models.CommunityPost
// @Failure 400 {object} object{error=string}
// @Router /posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	posts, err := s.communityService.ListPosts(c.UserContext(), service.ListPostsInput{
		CallerID: s.userID(c),
		Category: c.Query("category"),
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(posts)
}

// CreatePost handles POST /api/posts
// @Summary Create a community post
// @Description Publish a post on the community wall
// @Tags community
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{title=string,content=string,category=string,tags=[]string,is_anonymous=boolean} true "Post"
// @Success 201 {object} models.CommunityPost
// @Failure 400 {object} object{error=string}
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Title       string   `json:"title"`
		Content     string   `json:"content"`
		Category    string   `json:"category"`
		Tags        []string `json:"tags"`
		IsAnonymous bool     `json:"is_anonymous"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	post, err := s.communityService.CreatePost(c.UserContext(), service.CreatePostInput{
		AuthorID:    user.ID,
		InstituteID: user.InstituteID,
		Title:       req.Title,
		Content:     req.Content,
		Category:    req.Category,
		Tags:        req.Tags,
		IsAnonymous: req.IsAnonymous || user.IsAnonymous,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost handles GET /api/posts/:id
// @Summary Get a post
// @Description Return a single post and record the view
// @Tags community
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} models.CommunityPost
// @Failure 404 {object} object{error=string}
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.communityService.GetPost(c.UserContext(), postID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(post)
}

// LikePost handles POST /api/posts/:id/like
// @Summary Like a post
// @Description Increment the post's like counter
// @Tags community
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} models.CommunityPost
// @Failure 404 {object} object{error=string}
// @Router /posts/{id}/like [post]
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.communityService.LikePost(c.UserContext(), postID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(post)
}

// GetComments handles GET /api/posts/:id/comments
// @Summary List comments
// @Description Return a post's comments in chronological order
// @Tags community
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset"
// @Success 200 {array} models.PostComment
// @Router /posts/{id}/comments [get]
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	page := parsePagination(c, 50)

	comments, err := s.communityService.ListComments(c.UserContext(), postID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(comments)
}

// CreateComment handles POST /api/posts/:id/comments
// @Summary Comment on a post
// @Description Add a comment to an existing post
// @Tags community
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body object{content=string,is_anonymous=boolean} true "Comment"
// @Success 201 {object} models.PostComment
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /posts/{id}/comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content     string `json:"content"`
		IsAnonymous bool   `json:"is_anonymous"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.communityService.CreateComment(c.UserContext(), service.CreateCommentInput{
		PostID:      postID,
		AuthorID:    s.userID(c),
		Content:     req.Content,
		IsAnonymous: req.IsAnonymous,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// ApprovePost handles POST /api/posts/:id/approve
// @Summary Approve a post
// @Description Mark a post as reviewed by a counselor
// @Tags community
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} models.CommunityPost
// @Failure 404 {object} object{error=string}
// @Router /posts/{id}/approve [post]
func (s *Server) ApprovePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.communityService.ApprovePost(c.UserContext(), postID, s.userID(c))
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
// @Summary Delete a post
// @Description Remove a post; allowed for its author or a counselor
// @Tags community
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	isCounselor, err := s.isCounselorByUserID(c.UserContext(), s.userID(c))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if err := s.communityService.DeletePost(c.UserContext(), postID, s.userID(c), isCounselor); err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Post deleted"})
}
