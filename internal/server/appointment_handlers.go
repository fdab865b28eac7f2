package server

import (
	"time"

	"mindbridge/internal/models"
	"mindbridge/internal/service"

	"github.com/gofiber/fiber/v2"
)

// BookAppointment handles POST /api/appointments
// @Summary Book an appointment
// @Description Schedule a counseling session; online sessions get a meeting link
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{counselor=string,counselor_id=integer,date=string,time=string,duration=integer,type=string,student_notes=string} true "Booking request"
// @Success 201 {object} models.Appointment
// @Failure 400 {object} object{error=string}
// @Router /appointments [post]
func (s *Server) BookAppointment(c *fiber.Ctx) error {
	var req struct {
		Counselor    string `json:"counselor"`
		CounselorID  *uint  `json:"counselor_id"`
		Date         string `json:"date"`
		Time         string `json:"time"`
		Duration     int    `json:"duration"`
		Type         string `json:"type"`
		StudentNotes string `json:"student_notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Date must be in YYYY-MM-DD format"))
	}

	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	appt, err := s.appointmentService.BookAppointment(c.UserContext(), service.BookAppointmentInput{
		StudentID:     user.ID,
		CounselorName: req.Counselor,
		CounselorID:   req.CounselorID,
		InstituteID:   user.InstituteID,
		Date:          date,
		Time:          req.Time,
		Duration:      req.Duration,
		Type:          req.Type,
		Notes:         req.StudentNotes,
		IsAnonymous:   user.IsAnonymous,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(appt)
}

// GetAppointments handles GET /api/appointments
// @Summary List my appointments
// @Description Return the authenticated student's appointments in chronological order
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset"
// @Success 200 {array} models.Appointment
// @Router /appointments [get]
func (s *Server) GetAppointments(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	appts, err := s.appointmentService.ListAppointments(c.UserContext(), service.ListAppointmentsInput{
		StudentID: s.userID(c),
		Limit:     page.Limit,
		Offset:    page.Offset,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(appts)
}

// CancelAppointment handles DELETE /api/appointments/:id
// @Summary Cancel an appointment
// @Description Remove one of the authenticated student's appointments
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appointment ID"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Router /appointments/{id} [delete]
func (s *Server) CancelAppointment(c *fiber.Ctx) error {
	apptID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.appointmentService.CancelAppointment(c.UserContext(), s.userID(c), apptID); err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Appointment cancelled"})
}

// ConfirmAppointment handles POST /api/appointments/:id/confirm
// @Summary Confirm an appointment
// @Description Move a scheduled appointment to Confirmed (counselor only)
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appointment ID"
// @Success 200 {object} models.Appointment
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /appointments/{id}/confirm [post]
func (s *Server) ConfirmAppointment(c *fiber.Ctx) error {
	apptID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	appt, err := s.appointmentService.ConfirmAppointment(c.UserContext(), apptID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(appt)
}

// UpdateAppointmentStatus handles PUT /api/appointments/:id/status
// @Summary Update appointment status
// @Description Advance an appointment along its lifecycle (counselor only)
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appointment ID"
// @Param request body object{status=string} true "Target status"
// @Success 200 {object} models.Appointment
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /appointments/{id}/status [put]
func (s *Server) UpdateAppointmentStatus(c *fiber.Ctx) error {
	apptID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	appt, err := s.appointmentService.UpdateStatus(c.UserContext(), apptID, models.AppointmentStatus(req.Status))
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(appt)
}

// GetCounselorAppointments handles GET /api/counselor/appointments
// @Summary List counselor appointments
// @Description Return appointments assigned to the authenticated counselor
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset"
// @Success 200 {array} models.Appointment
// @Router /counselor/appointments [get]
func (s *Server) GetCounselorAppointments(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	appts, err := s.appointmentService.ListCounselorAppointments(c.UserContext(), s.userID(c), page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(appts)
}
