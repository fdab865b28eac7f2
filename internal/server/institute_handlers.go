package server

import (
	"strings"

	"mindbridge/internal/models"
	"mindbridge/internal/service"

	"github.com/gofiber/fiber/v2"
)

// RegisterInstitute handles POST /api/institutes
// @Summary Register an institute
// @Description Create an institute with default feature settings
// @Tags institutes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{name=string,code=string,email=string,branches=[]models.OrgUnit,years=[]models.OrgUnit} true "Institute"
// @Success 201 {object} models.Institute
// @Failure 400 {object} object{error=string}
// @Router /institutes [post]
func (s *Server) RegisterInstitute(c *fiber.Ctx) error {
	var req struct {
		Name     string           `json:"name"`
		Code     string           `json:"code"`
		Email    string           `json:"email"`
		Branches []models.OrgUnit `json:"branches"`
		Years    []models.OrgUnit `json:"years"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	inst, err := s.instituteService.RegisterInstitute(c.UserContext(), service.RegisterInstituteInput{
		Name:     req.Name,
		Code:     req.Code,
		Email:    req.Email,
		Branches: req.Branches,
		Years:    req.Years,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(inst)
}

// GetInstitute handles GET /api/institutes/:id
// @Summary Get an institute
// @Tags institutes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Institute ID"
// @Success 200 {object} models.Institute
// @Failure 404 {object} object{error=string}
// @Router /institutes/{id} [get]
func (s *Server) GetInstitute(c *fiber.Ctx) error {
	instID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	inst, err := s.instituteService.GetInstitute(c.UserContext(), instID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(inst)
}

// GetInstituteByCode handles GET /api/institutes/code/:code
// @Summary Look up an institute by code
// @Description Used during signup to attach a user to their institute
// @Tags institutes
// @Produce json
// @Param code path string true "Institute code"
// @Success 200 {object} models.Institute
// @Failure 404 {object} object{error=string}
// @Router /institutes/code/{code} [get]
func (s *Server) GetInstituteByCode(c *fiber.Ctx) error {
	code := strings.TrimSpace(c.Params("code"))
	if code == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Institute code is required"))
	}

	inst, err := s.instituteService.GetInstituteByCode(c.UserContext(), code)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(inst)
}

// UpdateInstituteSettings handles PUT /api/institutes/:id/settings
// @Summary Update institute settings
// @Description Replace the institute's feature toggles
// @Tags institutes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Institute ID"
// @Param request body models.InstituteSettings true "Settings"
// @Success 200 {object} models.Institute
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /institutes/{id}/settings [put]
func (s *Server) UpdateInstituteSettings(c *fiber.Ctx) error {
	instID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var settings models.InstituteSettings
	if err := c.BodyParser(&settings); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	inst, err := s.instituteService.UpdateSettings(c.UserContext(), instID, settings)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(inst)
}
