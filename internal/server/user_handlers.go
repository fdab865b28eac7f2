package server

import (
	"mindbridge/internal/models"
	"mindbridge/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
// @Summary Get my profile
// @Description Return the authenticated user's account and profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 404 {object} object{error=string}
// @Router /users/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetUserByID(c.UserContext(), s.userID(c))
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
// @Summary Update my profile
// @Description Merge non-empty profile fields into the authenticated user's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{name=string,avatar=string,phone=string,branch=string,year=string,roll_number=string} true "Profile fields"
// @Success 200 {object} models.User
// @Failure 400 {object} object{error=string}
// @Router /users/me [put]
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		Name       string `json:"name"`
		Avatar     string `json:"avatar"`
		Phone      string `json:"phone"`
		Branch     string `json:"branch"`
		Year       string `json:"year"`
		RollNumber string `json:"roll_number"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:     s.userID(c),
		Name:       req.Name,
		Avatar:     req.Avatar,
		Phone:      req.Phone,
		Branch:     req.Branch,
		Year:       req.Year,
		RollNumber: req.RollNumber,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(user)
}
