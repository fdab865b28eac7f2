package server

import (
	"mindbridge/internal/models"
	"mindbridge/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SubmitMood handles POST /api/moods
// @Summary Submit a mood entry
// @Description Record the authenticated user's current mood with optional context
// @Tags moods
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{mood=string,intensity=integer,notes=string,tags=[]string,activities=[]string,location=string,weather=string} true "Mood entry"
// @Success 201 {object} models.MoodEntry
// @Failure 400 {object} object{error=string}
// @Router /moods [post]
func (s *Server) SubmitMood(c *fiber.Ctx) error {
	var req struct {
		Mood       string   `json:"mood"`
		Intensity  int      `json:"intensity"`
		Notes      string   `json:"notes"`
		Tags       []string `json:"tags"`
		Activities []string `json:"activities"`
		Location   string   `json:"location"`
		Weather    string   `json:"weather"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	entry, err := s.moodService.SubmitMood(c.UserContext(), service.SubmitMoodInput{
		UserID:      user.ID,
		Mood:        req.Mood,
		Intensity:   req.Intensity,
		Notes:       req.Notes,
		Tags:        req.Tags,
		Activities:  req.Activities,
		Location:    req.Location,
		Weather:     req.Weather,
		IsAnonymous: user.IsAnonymous,
		InstituteID: user.InstituteID,
		Branch:      user.Profile.Branch,
		Year:        user.Profile.Year,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}

// GetMoods handles GET /api/moods
// @Summary List mood entries
// @Description Return the authenticated user's mood history, newest first
// @Tags moods
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size" default(30)
// @Param offset query int false "Offset"
// @Success 200 {array} models.MoodEntry
// @Router /moods [get]
func (s *Server) GetMoods(c *fiber.Ctx) error {
	page := parsePagination(c, 30)

	entries, err := s.moodService.ListMoods(c.UserContext(), service.ListMoodsInput{
		UserID: s.userID(c),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(entries)
}

// GetMoodAnalytics handles GET /api/moods/analytics
// @Summary Mood analytics
// @Description Aggregate mood statistics over a 7d, 30d, or 90d window
// @Tags moods
// @Produce json
// @Security BearerAuth
// @Param period query string false "Analytics period" Enums(7d,30d,90d) default(30d)
// @Success 200 {object} service.MoodAnalytics
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Router /moods/analytics [get]
func (s *Server) GetMoodAnalytics(c *fiber.Ctx) error {
	period := c.Query("period", "30d")

	analytics, err := s.analyticsService.GetMoodAnalytics(c.UserContext(), s.userID(c), period)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(analytics)
}
