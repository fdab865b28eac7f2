package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mindbridge/internal/models"
	"mindbridge/internal/observability"
	"mindbridge/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentService struct {
	apptRepo repository.AppointmentRepository
	userRepo repository.UserRepository
}

type BookAppointmentInput struct {
	StudentID     uint
	CounselorName string
	CounselorID   *uint
	InstituteID   *uint
	Date          time.Time
	Time          string
	Duration      int
	Type          string
	Notes         string
	IsAnonymous   bool
}

type ListAppointmentsInput struct {
	StudentID uint
	Limit     int
	Offset    int
}

func NewAppointmentService(apptRepo repository.AppointmentRepository, userRepo repository.UserRepository) *AppointmentService {
	return &AppointmentService{apptRepo: apptRepo, userRepo: userRepo}
}

// BookAppointment creates a new appointment in the Scheduled state.
// The location is derived from the session type, never taken from the client.
func (s *AppointmentService) BookAppointment(ctx context.Context, in BookAppointmentInput) (*models.Appointment, error) {
	if strings.TrimSpace(in.CounselorName) == "" {
		return nil, models.NewValidationError("Counselor is required")
	}
	if in.Date.IsZero() {
		return nil, models.NewValidationError("Date is required")
	}
	if strings.TrimSpace(in.Time) == "" {
		return nil, models.NewValidationError("Time is required")
	}
	typ := models.AppointmentType(in.Type)
	if !typ.Valid() {
		return nil, models.NewValidationError("Type must be online or offline")
	}
	if len(in.Notes) > models.StudentNotesMaxLen {
		return nil, models.NewValidationError("Notes too long (max 500 characters)")
	}

	duration := in.Duration
	if duration <= 0 {
		duration = models.DefaultAppointmentDuration
	}

	appt := &models.Appointment{
		StudentID:     in.StudentID,
		CounselorName: strings.TrimSpace(in.CounselorName),
		CounselorID:   in.CounselorID,
		InstituteID:   in.InstituteID,
		Date:          in.Date,
		Time:          in.Time,
		Duration:      duration,
		Type:          typ,
		Status:        models.StatusScheduled,
		StudentNotes:  in.Notes,
		IsAnonymous:   in.IsAnonymous,
	}

	if typ == models.AppointmentOnline {
		appt.Location = models.OnlineSessionLocation
		appt.MeetingLink = fmt.Sprintf("https://meet.mindbridge.app/%s", uuid.NewString())
	} else {
		appt.Location = models.DefaultOfflineLocation
	}

	if err := s.apptRepo.Create(ctx, appt); err != nil {
		return nil, err
	}
	observability.AppointmentsTotal.WithLabelValues("booked", string(typ)).Inc()
	return appt, nil
}

// ListAppointments returns the student's appointments ordered by date, soonest first.
func (s *AppointmentService) ListAppointments(ctx context.Context, in ListAppointmentsInput) ([]*models.Appointment, error) {
	return s.apptRepo.ListByStudent(ctx, in.StudentID, in.Limit, in.Offset)
}

// CancelAppointment removes the appointment if it belongs to the caller.
// An appointment that does not exist and one owned by someone else are
// indistinguishable to the caller: both are not found.
func (s *AppointmentService) CancelAppointment(ctx context.Context, studentID, apptID uint) error {
	rows, err := s.apptRepo.DeleteOwned(ctx, apptID, studentID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.NewNotFoundError("Appointment not found")
	}
	observability.AppointmentsTotal.WithLabelValues("cancelled", "").Inc()
	return nil
}

// UpdateStatus advances the appointment through its lifecycle. Only forward
// transitions are allowed; cancellation is permitted from any non-terminal state.
func (s *AppointmentService) UpdateStatus(ctx context.Context, apptID uint, next models.AppointmentStatus) (*models.Appointment, error) {
	if !next.Valid() {
		return nil, models.NewValidationError("Invalid status")
	}

	appt, err := s.apptRepo.GetByID(ctx, apptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Appointment not found")
		}
		return nil, err
	}

	if !appt.Status.CanTransition(next) {
		return nil, models.NewValidationError(
			fmt.Sprintf("Cannot change status from %s to %s", appt.Status, next))
	}

	// The update is conditional on the status we just read, so a concurrent
	// writer cannot sneak the appointment past the transition rules.
	rows, err := s.apptRepo.UpdateStatusFrom(ctx, apptID, appt.Status, next)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, models.NewValidationError("Appointment status changed, retry the update")
	}
	appt.Status = next
	observability.AppointmentsTotal.WithLabelValues("status_"+strings.ToLower(string(next)), string(appt.Type)).Inc()
	return appt, nil
}

// ConfirmAppointment is the counselor-side acknowledgment of a booking.
func (s *AppointmentService) ConfirmAppointment(ctx context.Context, apptID uint) (*models.Appointment, error) {
	return s.UpdateStatus(ctx, apptID, models.StatusConfirmed)
}

// ListCounselorAppointments returns appointments assigned to the counselor.
func (s *AppointmentService) ListCounselorAppointments(ctx context.Context, counselorID uint, limit, offset int) ([]*models.Appointment, error) {
	return s.apptRepo.ListByCounselor(ctx, counselorID, limit, offset)
}
