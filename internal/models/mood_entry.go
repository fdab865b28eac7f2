package models

import (
	"time"

	"gorm.io/gorm"
)

// Mood is the primary emotion recorded in a mood entry.
type Mood string

const (
	MoodVeryHappy Mood = "very_happy"
	MoodHappy     Mood = "happy"
	MoodNeutral   Mood = "neutral"
	MoodSad       Mood = "sad"
	MoodVerySad   Mood = "very_sad"
	MoodAnxious   Mood = "anxious"
	MoodStressed  Mood = "stressed"
	MoodAngry     Mood = "angry"
	MoodExcited   Mood = "excited"
	MoodCalm      Mood = "calm"
)

// Valid reports whether m is a known mood.
func (m Mood) Valid() bool {
	switch m {
	case MoodVeryHappy, MoodHappy, MoodNeutral, MoodSad, MoodVerySad,
		MoodAnxious, MoodStressed, MoodAngry, MoodExcited, MoodCalm:
		return true
	}
	return false
}

// MoodTags enumerates the life areas a mood entry can be tagged with.
var MoodTags = []string{
	"academics", "relationships", "family", "health", "work",
	"social", "financial", "future", "other",
}

// MoodActivities enumerates the activities a mood entry can reference.
var MoodActivities = []string{
	"studying", "exercise", "socializing", "sleeping", "eating",
	"entertainment", "work", "travel", "other",
}

// MoodLocations enumerates where a mood entry was recorded.
var MoodLocations = []string{"home", "college", "library", "cafe", "outdoor", "other"}

// MoodWeathers enumerates the weather conditions a mood entry can note.
var MoodWeathers = []string{"sunny", "cloudy", "rainy", "stormy", "snowy", "other"}

const (
	// MoodNotesMaxLen bounds the free-text notes field.
	MoodNotesMaxLen = 500
	// IntensityMin and IntensityMax bound the intensity scale.
	IntensityMin = 1
	IntensityMax = 10
)

// MoodEntry is a single self-reported mood observation.
// Entries are append-only: created once, never updated.
type MoodEntry struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null;index:idx_mood_user_created" json:"user_id"`
	User        User           `gorm:"foreignKey:UserID" json:"-"`
	Mood        Mood           `gorm:"not null" json:"mood"`
	Intensity   int            `gorm:"not null" json:"intensity"`
	Notes       string         `gorm:"size:500" json:"notes"`
	Tags        []string       `gorm:"serializer:json" json:"tags"`
	Activities  []string       `gorm:"serializer:json" json:"activities"`
	Location    string         `json:"location,omitempty"`
	Weather     string         `json:"weather,omitempty"`
	IsAnonymous bool           `gorm:"default:false" json:"is_anonymous"`
	InstituteID *uint          `gorm:"index" json:"institute_id,omitempty"`
	Branch      string         `json:"branch,omitempty"`
	Year        string         `json:"year,omitempty"`
	CreatedAt   time.Time      `gorm:"index:idx_mood_user_created" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// inSet reports whether v is one of the allowed values.
func inSet(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// Validate enforces the mood entry invariants before any write.
func (e *MoodEntry) Validate() error {
	if e.Mood == "" {
		return NewValidationError("Mood is required")
	}
	if !e.Mood.Valid() {
		return NewValidationError("Invalid mood")
	}
	if e.Intensity < IntensityMin || e.Intensity > IntensityMax {
		return NewValidationError("Intensity must be between 1 and 10")
	}
	if len(e.Notes) > MoodNotesMaxLen {
		return NewValidationError("Notes too long (max 500 characters)")
	}
	for _, t := range e.Tags {
		if !inSet(t, MoodTags) {
			return NewValidationError("Invalid tag: " + t)
		}
	}
	for _, a := range e.Activities {
		if !inSet(a, MoodActivities) {
			return NewValidationError("Invalid activity: " + a)
		}
	}
	if e.Location != "" && !inSet(e.Location, MoodLocations) {
		return NewValidationError("Invalid location: " + e.Location)
	}
	if e.Weather != "" && !inSet(e.Weather, MoodWeathers) {
		return NewValidationError("Invalid weather: " + e.Weather)
	}
	return nil
}

// ToggleInSet flips membership of value in set, preserving insertion order
// for the remaining elements. Toggling the same value twice returns the
// set to its original contents and order.
func ToggleInSet(set []string, value string) []string {
	for i, v := range set {
		if v == value {
			return append(set[:i:i], set[i+1:]...)
		}
	}
	return append(set, value)
}
