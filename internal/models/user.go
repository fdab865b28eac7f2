// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// UserType identifies the kind of account.
type UserType string

const (
	UserTypeStudent   UserType = "student"
	UserTypeCounselor UserType = "counselor"
	UserTypeInstitute UserType = "institute"
	UserTypeAnonymous UserType = "anonymous"
)

// Valid reports whether t is a known user type.
func (t UserType) Valid() bool {
	switch t {
	case UserTypeStudent, UserTypeCounselor, UserTypeInstitute, UserTypeAnonymous:
		return true
	}
	return false
}

// Profile holds the user-editable profile fields, embedded into User.
type Profile struct {
	Name       string `json:"name"`
	Avatar     string `json:"avatar"`
	Phone      string `json:"phone"`
	Branch     string `json:"branch"`
	Year       string `json:"year"`
	RollNumber string `json:"roll_number"`
	Points     int    `gorm:"default:0" json:"points"`
}

// User represents an account in the MindBridge application.
// Email and password are empty for anonymous users; AnonymousID is set
// if and only if the user is anonymous.
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Email       *string        `gorm:"uniqueIndex" json:"email,omitempty"`
	Password    string         `json:"-"`
	UserType    UserType       `gorm:"not null;index" json:"user_type"`
	IsAnonymous bool           `gorm:"default:false" json:"is_anonymous"`
	AnonymousID *string        `gorm:"uniqueIndex" json:"anonymous_id,omitempty"`
	Profile     Profile        `gorm:"embedded;embeddedPrefix:profile_" json:"profile"`
	InstituteID *uint          `gorm:"index" json:"institute_id,omitempty"`
	Institute   *Institute     `gorm:"foreignKey:InstituteID" json:"institute,omitempty"`
	IsVerified  bool           `gorm:"default:false" json:"is_verified"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	LastLogin   *time.Time     `json:"last_login,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// Validate checks the account invariants: email is required unless the
// user is anonymous, and an anonymous id is required iff anonymous.
func (u *User) Validate() error {
	if !u.UserType.Valid() {
		return NewValidationError("Invalid user type")
	}
	if u.UserType == UserTypeAnonymous {
		if u.AnonymousID == nil || *u.AnonymousID == "" {
			return NewValidationError("Anonymous users require an anonymous ID")
		}
		return nil
	}
	if u.Email == nil || *u.Email == "" {
		return NewValidationError("Email is required")
	}
	if u.AnonymousID != nil {
		return NewValidationError("Only anonymous users may carry an anonymous ID")
	}
	return nil
}
