package repository

import (
	"context"

	"mindbridge/internal/models"

	"gorm.io/gorm"
)

// AppointmentRepository defines the interface for appointment data operations
type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id uint) (*models.Appointment, error)
	ListByStudent(ctx context.Context, studentID uint, limit, offset int) ([]*models.Appointment, error)
	ListByCounselor(ctx context.Context, counselorID uint, limit, offset int) ([]*models.Appointment, error)
	UpdateStatusFrom(ctx context.Context, id uint, from, to models.AppointmentStatus) (int64, error)
	Update(ctx context.Context, appt *models.Appointment) error
	DeleteOwned(ctx context.Context, id, studentID uint) (int64, error)
}

// appointmentRepository implements AppointmentRepository
type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new appointment repository
func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appt *models.Appointment) error {
	return r.db.WithContext(ctx).Create(appt).Error
}

func (r *appointmentRepository) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	var appt models.Appointment
	if err := r.db.WithContext(ctx).First(&appt, id).Error; err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *appointmentRepository) ListByStudent(ctx context.Context, studentID uint, limit, offset int) ([]*models.Appointment, error) {
	var appts []*models.Appointment
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("date ASC, time ASC").
		Limit(limit).
		Offset(offset).
		Find(&appts).Error
	return appts, err
}

func (r *appointmentRepository) ListByCounselor(ctx context.Context, counselorID uint, limit, offset int) ([]*models.Appointment, error) {
	var appts []*models.Appointment
	err := r.db.WithContext(ctx).
		Where("counselor_id = ?", counselorID).
		Order("date ASC, time ASC").
		Limit(limit).
		Offset(offset).
		Find(&appts).Error
	return appts, err
}

// UpdateStatusFrom moves the appointment from one status to another in a
// single conditional update. Zero rows means the status changed underneath
// the caller, so a concurrent writer cannot skip past the transition rules.
func (r *appointmentRepository) UpdateStatusFrom(ctx context.Context, id uint, from, to models.AppointmentStatus) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

func (r *appointmentRepository) Update(ctx context.Context, appt *models.Appointment) error {
	return r.db.WithContext(ctx).Save(appt).Error
}

// DeleteOwned removes the appointment only when it belongs to studentID.
// Returns the number of rows deleted so callers can distinguish "gone"
// from "not yours" without a prior read.
func (r *appointmentRepository) DeleteOwned(ctx context.Context, id, studentID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND student_id = ?", id, studentID).
		Delete(&models.Appointment{})
	return res.RowsAffected, res.Error
}
