package server

import (
	"mindbridge/internal/models"
	"mindbridge/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetResources handles GET /api/resources
// @Summary List resources
// @Description Return active wellness resources, optionally filtered by type and category
// @Tags resources
// @Produce json
// @Param type query string false "Resource type filter"
// @Param category query string false "Resource category filter"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset"
// @Success 200 {array} models.Resource
// @Failure 400 {object} object{error=string}
// @Router /resources [get]
func (s *Server) GetResources(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	resources, err := s.resourceService.ListResources(c.UserContext(), service.ListResourcesInput{
		Type:     c.Query("type"),
		Category: c.Query("category"),
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(resources)
}

// GetFeaturedResources handles GET /api/resources/featured
// @Summary Featured resources
// @Description Return the curated featured resources
// @Tags resources
// @Produce json
// @Param limit query int false "Page size" default(10)
// @Success 200 {array} models.Resource
// @Router /resources/featured [get]
func (s *Server) GetFeaturedResources(c *fiber.Ctx) error {
	page := parsePagination(c, 10)

	resources, err := s.resourceService.ListFeatured(c.UserContext(), page.Limit)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(resources)
}

// GetResource handles GET /api/resources/:id
// @Summary Get a resource
// @Description Return a single resource and record the view
// @Tags resources
// @Produce json
// @Param id path int true "Resource ID"
// @Success 200 {object} models.Resource
// @Failure 404 {object} object{error=string}
// @Router /resources/{id} [get]
func (s *Server) GetResource(c *fiber.Ctx) error {
	resourceID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	resource, err := s.resourceService.GetResource(c.UserContext(), resourceID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(resource)
}

// CreateResource handles POST /api/resources
// @Summary Create a resource
// @Description Publish a new wellness resource (counselor only)
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{title=string,description=string,type=string,category=string,url=string,thumbnail=string,duration=integer,author=string,source=string,is_free=boolean,is_featured=boolean} true "Resource"
// @Success 201 {object} models.Resource
// @Failure 400 {object} object{error=string}
// @Router /resources [post]
func (s *Server) CreateResource(c *fiber.Ctx) error {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Type        string `json:"type"`
		Category    string `json:"category"`
		URL         string `json:"url"`
		Thumbnail   string `json:"thumbnail"`
		Duration    int    `json:"duration"`
		Author      string `json:"author"`
		Source      string `json:"source"`
		IsFree      bool   `json:"is_free"`
		IsFeatured  bool   `json:"is_featured"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	resource, err := s.resourceService.CreateResource(c.UserContext(), service.CreateResourceInput{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Category:    req.Category,
		URL:         req.URL,
		Thumbnail:   req.Thumbnail,
		Duration:    req.Duration,
		Author:      req.Author,
		Source:      req.Source,
		IsFree:      req.IsFree,
		IsFeatured:  req.IsFeatured,
		InstituteID: user.InstituteID,
		CreatedByID: &user.ID,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(resource)
}

// RateResource handles POST /api/resources/:id/rate
// @Summary Rate a resource
// @Description Fold a 1-5 rating into the resource's running average
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Param request body object{rating=integer} true "Rating value"
// @Success 200 {object} models.Resource
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /resources/{id}/rate [post]
func (s *Server) RateResource(c *fiber.Ctx) error {
	resourceID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Rating int `json:"rating"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	resource, err := s.resourceService.RateResource(c.UserContext(), resourceID, req.Rating)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(resource)
}
