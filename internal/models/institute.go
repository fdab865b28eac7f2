package models

import (
	"time"

	"gorm.io/gorm"
)

// SubscriptionPlan is the institute's billing tier.
type SubscriptionPlan string

const (
	SubscriptionFree    SubscriptionPlan = "free"
	SubscriptionBasic   SubscriptionPlan = "basic"
	SubscriptionPremium SubscriptionPlan = "premium"
)

// Valid reports whether p is a known subscription plan.
func (p SubscriptionPlan) Valid() bool {
	switch p {
	case SubscriptionFree, SubscriptionBasic, SubscriptionPremium:
		return true
	}
	return false
}

// InstituteSettings controls which features the institute exposes to its users.
type InstituteSettings struct {
	AllowAnonymous      bool `gorm:"default:true" json:"allow_anonymous"`
	RequireVerification bool `gorm:"default:false" json:"require_verification"`
	MaxCounselors       int  `gorm:"default:10" json:"max_counselors"`
	EnableCommunityWall bool `gorm:"default:true" json:"enable_community_wall"`
	EnableAnalytics     bool `gorm:"default:true" json:"enable_analytics"`
}

// OrgUnit is a named branch or academic year within an institute.
type OrgUnit struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
}

// Institute represents a registered educational institute.
type Institute struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	Name      string            `gorm:"not null" json:"name"`
	Code      string            `gorm:"uniqueIndex;not null" json:"code"`
	Email     string            `gorm:"unique;not null" json:"email"`
	Settings  InstituteSettings `gorm:"embedded;embeddedPrefix:settings_" json:"settings"`
	Branches  []OrgUnit         `gorm:"serializer:json" json:"branches"`
	Years     []OrgUnit         `gorm:"serializer:json" json:"years"`
	Plan      SubscriptionPlan  `gorm:"default:free" json:"plan"`
	IsActive  bool              `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	DeletedAt gorm.DeletedAt    `gorm:"index" json:"-"`
}
