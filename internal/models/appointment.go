package models

import (
	"time"

	"gorm.io/gorm"
)

// AppointmentType distinguishes online from in-person sessions.
type AppointmentType string

const (
	AppointmentOnline  AppointmentType = "online"
	AppointmentOffline AppointmentType = "offline"
)

// Valid reports whether t is a known appointment type.
func (t AppointmentType) Valid() bool {
	return t == AppointmentOnline || t == AppointmentOffline
}

// AppointmentStatus is the lifecycle state of an appointment.
// The literal values match what the booking client displays, which is why
// the casing is mixed.
type AppointmentStatus string

const (
	StatusScheduled  AppointmentStatus = "Scheduled"
	StatusConfirmed  AppointmentStatus = "Confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "Cancelled"
	StatusNoShow     AppointmentStatus = "no_show"
)

// Valid reports whether s is a known appointment status.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Terminal reports whether s admits no further transitions.
func (s AppointmentStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// statusTransitions encodes the one-directional forward progression.
// Cancellation is handled separately: allowed from any non-terminal state.
var statusTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusScheduled:  {StatusConfirmed, StatusNoShow},
	StatusConfirmed:  {StatusInProgress, StatusCompleted, StatusNoShow},
	StatusInProgress: {StatusCompleted},
}

// CanTransition reports whether moving from s to next is allowed.
func (s AppointmentStatus) CanTransition(next AppointmentStatus) bool {
	if next == StatusCancelled {
		return !s.Terminal()
	}
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

const (
	// DefaultAppointmentDuration is the session length in minutes when none is given.
	DefaultAppointmentDuration = 60
	// OnlineSessionLocation is the derived location for online appointments.
	OnlineSessionLocation = "Online Session"
	// DefaultOfflineLocation is the institution-provided location for in-person sessions.
	DefaultOfflineLocation = "Counseling Center"
	// StudentNotesMaxLen bounds the student's free-text notes.
	StudentNotesMaxLen = 500
)

// Appointment is a counseling session booked by a student.
type Appointment struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	StudentID     uint              `gorm:"not null;index:idx_appt_student_date" json:"student_id"`
	Student       User              `gorm:"foreignKey:StudentID" json:"-"`
	CounselorName string            `gorm:"not null" json:"counselor"`
	CounselorID   *uint             `gorm:"index" json:"counselor_id,omitempty"`
	InstituteID   *uint             `gorm:"index" json:"institute_id,omitempty"`
	Date          time.Time         `gorm:"not null;index:idx_appt_student_date" json:"date"`
	Time          string            `gorm:"not null" json:"time"`
	Duration      int               `gorm:"default:60" json:"duration"`
	Type          AppointmentType   `gorm:"not null" json:"type"`
	Status        AppointmentStatus `gorm:"default:Scheduled;index" json:"status"`
	Location      string            `json:"location"`
	MeetingLink   string            `json:"meeting_link,omitempty"`
	StudentNotes  string            `gorm:"size:500" json:"student_notes,omitempty"`
	IsAnonymous   bool              `gorm:"default:false" json:"is_anonymous"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	DeletedAt     gorm.DeletedAt    `gorm:"index" json:"-"`
}
