package service

import (
	"context"
	"time"

	"mindbridge/internal/cache"
	"mindbridge/internal/models"
	"mindbridge/internal/repository"
)

// periodDays maps a period token to its lookback in days.
var periodDays = map[string]int{
	"7d":  7,
	"30d": 30,
	"90d": 90,
}

// DailyMood is one point on the mood trend line.
type DailyMood struct {
	Date             string  `json:"date"`
	AverageIntensity float64 `json:"average_intensity"`
	Count            int     `json:"count"`
}

// MoodAnalytics is the aggregate view of a user's mood history for a period.
type MoodAnalytics struct {
	Period           string         `json:"period"`
	TotalEntries     int            `json:"total_entries"`
	AverageIntensity float64        `json:"average_intensity"`
	MoodDistribution map[string]int `json:"mood_distribution"`
	MostFrequentMood string         `json:"most_frequent_mood,omitempty"`
	Trend            []DailyMood    `json:"trend"`
}

type AnalyticsService struct {
	moodRepo      repository.MoodRepository
	userRepo      repository.UserRepository
	instituteRepo repository.InstituteRepository
}

func NewAnalyticsService(moodRepo repository.MoodRepository, userRepo repository.UserRepository, instituteRepo repository.InstituteRepository) *AnalyticsService {
	return &AnalyticsService{moodRepo: moodRepo, userRepo: userRepo, instituteRepo: instituteRepo}
}

// GetMoodAnalytics aggregates the user's mood entries over the requested
// period. Users attached to an institute that disabled analytics get an
// authorization error.
func (s *AnalyticsService) GetMoodAnalytics(ctx context.Context, userID uint, period string) (*MoodAnalytics, error) {
	days, ok := periodDays[period]
	if !ok {
		return nil, models.NewValidationError("Period must be one of 7d, 30d, 90d")
	}

	if err := s.checkAnalyticsEnabled(ctx, userID); err != nil {
		return nil, err
	}

	var result MoodAnalytics
	key := cache.AnalyticsKey(userID, period)
	err := cache.CacheAside(ctx, key, &result, cache.AnalyticsTTL, func() error {
		since := time.Now().AddDate(0, 0, -days)
		entries, err := s.moodRepo.ListByUserSince(ctx, userID, since)
		if err != nil {
			return err
		}
		result = aggregate(period, entries)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *AnalyticsService) checkAnalyticsEnabled(ctx context.Context, userID uint) error {
	if s.userRepo == nil || s.instituteRepo == nil {
		return nil
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.InstituteID == nil {
		return nil
	}
	inst, err := s.instituteRepo.GetByID(ctx, *user.InstituteID)
	if err != nil {
		// A dangling institute reference should not lock a user out of
		// their own data.
		return nil
	}
	if !inst.Settings.EnableAnalytics {
		return models.NewUnauthorizedError("Analytics is disabled for your institute")
	}
	return nil
}

func aggregate(period string, entries []*models.MoodEntry) MoodAnalytics {
	result := MoodAnalytics{
		Period:           period,
		TotalEntries:     len(entries),
		MoodDistribution: make(map[string]int),
		Trend:            []DailyMood{},
	}
	if len(entries) == 0 {
		return result
	}

	var intensitySum int
	type dayAgg struct {
		sum   int
		count int
	}
	days := make(map[string]*dayAgg)
	var dayOrder []string

	for _, e := range entries {
		intensitySum += e.Intensity
		result.MoodDistribution[string(e.Mood)]++

		day := e.CreatedAt.Format("2006-01-02")
		agg, ok := days[day]
		if !ok {
			agg = &dayAgg{}
			days[day] = agg
			dayOrder = append(dayOrder, day)
		}
		agg.sum += e.Intensity
		agg.count++
	}

	result.AverageIntensity = round1(float64(intensitySum) / float64(len(entries)))

	best := ""
	bestCount := 0
	for mood, count := range result.MoodDistribution {
		if count > bestCount || (count == bestCount && mood < best) {
			best = mood
			bestCount = count
		}
	}
	result.MostFrequentMood = best

	for _, day := range dayOrder {
		agg := days[day]
		result.Trend = append(result.Trend, DailyMood{
			Date:             day,
			AverageIntensity: round1(float64(agg.sum) / float64(agg.count)),
			Count:            agg.count,
		})
	}
	return result
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
