// Package service contains the application's business logic.
package service

import (
	"context"
	"time"

	"mindbridge/internal/models"
	"mindbridge/internal/observability"
	"mindbridge/internal/repository"
)

// moodEntryPoints is awarded for each recorded mood entry.
const moodEntryPoints = 5

type MoodService struct {
	moodRepo repository.MoodRepository
	userRepo repository.UserRepository
}

type SubmitMoodInput struct {
	UserID      uint
	Mood        string
	Intensity   int
	Notes       string
	Tags        []string
	Activities  []string
	Location    string
	Weather     string
	IsAnonymous bool
	InstituteID *uint
	Branch      string
	Year        string
}

type ListMoodsInput struct {
	UserID uint
	Limit  int
	Offset int
}

func NewMoodService(moodRepo repository.MoodRepository, userRepo repository.UserRepository) *MoodService {
	return &MoodService{moodRepo: moodRepo, userRepo: userRepo}
}

// SubmitMood validates and records a mood entry. Validation happens here
// regardless of what the client pre-checked.
func (s *MoodService) SubmitMood(ctx context.Context, in SubmitMoodInput) (*models.MoodEntry, error) {
	entry := &models.MoodEntry{
		UserID:      in.UserID,
		Mood:        models.Mood(in.Mood),
		Intensity:   in.Intensity,
		Notes:       in.Notes,
		Tags:        in.Tags,
		Activities:  in.Activities,
		Location:    in.Location,
		Weather:     in.Weather,
		IsAnonymous: in.IsAnonymous,
		InstituteID: in.InstituteID,
		Branch:      in.Branch,
		Year:        in.Year,
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if err := s.moodRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	observability.MoodEntriesTotal.WithLabelValues(in.Mood).Inc()

	// Best-effort points award; the entry is already committed.
	if s.userRepo != nil {
		_ = s.userRepo.AddPoints(ctx, in.UserID, moodEntryPoints)
	}

	return entry, nil
}

func (s *MoodService) ListMoods(ctx context.Context, in ListMoodsInput) ([]*models.MoodEntry, error) {
	return s.moodRepo.ListByUser(ctx, in.UserID, in.Limit, in.Offset)
}

// ListMoodsSince returns the user's entries from since onward, oldest first.
func (s *MoodService) ListMoodsSince(ctx context.Context, userID uint, since time.Time) ([]*models.MoodEntry, error) {
	return s.moodRepo.ListByUserSince(ctx, userID, since)
}
