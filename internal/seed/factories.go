// Package seed provides helpers to create demo and test data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"mindbridge/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// pastTime picks a random moment within the last maxDays days so seeded data
// spreads realistically across analytics windows.
func (f *Factory) pastTime(maxDays int) time.Time {
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)
}

// CreateStudent constructs and persists a sample student user.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateStudent(overrides ...func(*models.User)) (*models.User, error) {
	email := gofakeit.Email()
	user := &models.User{
		Email:    &email,
		UserType: models.UserTypeStudent,
		IsActive: true,
		Profile: models.Profile{
			Name:   gofakeit.Name(),
			Avatar: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
			Branch: gofakeit.RandomString([]string{"Computer Science", "Mechanical", "Biology", "Economics", "Design"}),
			Year:   gofakeit.RandomString([]string{"1st Year", "2nd Year", "3rd Year", "4th Year"}),
		},
	}

	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashed)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateCounselor constructs and persists a counselor account.
func (f *Factory) CreateCounselor(overrides ...func(*models.User)) (*models.User, error) {
	return f.CreateStudent(append([]func(*models.User){func(u *models.User) {
		u.UserType = models.UserTypeCounselor
		u.Profile.Name = "Dr. " + gofakeit.Name()
	}}, overrides...)...)
}

// CreateMoodEntry persists a random mood entry for the user, timestamped
// somewhere within the last MaxDays days.
func (f *Factory) CreateMoodEntry(user *models.User, overrides ...func(*models.MoodEntry)) (*models.MoodEntry, error) {
	moods := []models.Mood{
		models.MoodVeryHappy, models.MoodHappy, models.MoodNeutral,
		models.MoodSad, models.MoodVerySad, models.MoodAnxious,
		models.MoodStressed, models.MoodAngry, models.MoodExcited, models.MoodCalm,
	}

	entry := &models.MoodEntry{
		UserID:      user.ID,
		Mood:        moods[f.rng.Intn(len(moods))],
		Intensity:   f.rng.Intn(models.IntensityMax) + 1,
		Notes:       gofakeit.Sentence(8),
		Tags:        []string{models.MoodTags[f.rng.Intn(len(models.MoodTags))]},
		Activities:  []string{models.MoodActivities[f.rng.Intn(len(models.MoodActivities))]},
		Location:    models.MoodLocations[f.rng.Intn(len(models.MoodLocations))],
		IsAnonymous: user.IsAnonymous,
		InstituteID: user.InstituteID,
		Branch:      user.Profile.Branch,
		Year:        user.Profile.Year,
		CreatedAt:   f.pastTime(f.opts.MaxDays),
	}

	for _, override := range overrides {
		override(entry)
	}

	if err := f.db.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// CreatePost persists a random community post by the user.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.CommunityPost)) (*models.CommunityPost, error) {
	categories := []models.PostCategory{
		models.CategorySuccessStory, models.CategoryAdvice, models.CategoryQuestion,
		models.CategoryResourceShare, models.CategoryMotivation, models.CategoryGeneral,
	}

	post := &models.CommunityPost{
		AuthorID:    user.ID,
		InstituteID: user.InstituteID,
		Title:       gofakeit.Sentence(6),
		Content:     gofakeit.Paragraph(1, 3, 8, "\n"),
		Category:    categories[f.rng.Intn(len(categories))],
		Tags:        []string{models.PostTags[f.rng.Intn(len(models.PostTags))]},
		Likes:       f.rng.Intn(40),
		Views:       f.rng.Intn(300),
		IsAnonymous: f.rng.Intn(4) == 0,
		CreatedAt:   f.pastTime(f.opts.MaxDays),
	}

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a random comment on the post.
func (f *Factory) CreateComment(post *models.CommunityPost, author *models.User) (*models.PostComment, error) {
	comment := &models.PostComment{
		PostID:      post.ID,
		AuthorID:    author.ID,
		Content:     gofakeit.Sentence(10),
		IsAnonymous: f.rng.Intn(3) == 0,
		CreatedAt:   f.pastTime(f.opts.MaxDays),
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateAppointment persists a random upcoming appointment for the student.
func (f *Factory) CreateAppointment(student *models.User, counselor *models.User) (*models.Appointment, error) {
	apptType := models.AppointmentOnline
	location := models.OnlineSessionLocation
	meetingLink := fmt.Sprintf("https://meet.mindbridge.app/%s", gofakeit.UUID())
	if f.rng.Intn(2) == 0 {
		apptType = models.AppointmentOffline
		location = models.DefaultOfflineLocation
		meetingLink = ""
	}

	times := []string{"9:00 AM", "10:00 AM", "11:30 AM", "2:00 PM", "3:30 PM", "4:00 PM"}
	appt := &models.Appointment{
		StudentID:     student.ID,
		CounselorName: counselor.Profile.Name,
		CounselorID:   &counselor.ID,
		InstituteID:   student.InstituteID,
		Date:          time.Now().AddDate(0, 0, f.rng.Intn(21)+1),
		Time:          times[f.rng.Intn(len(times))],
		Duration:      models.DefaultAppointmentDuration,
		Type:          apptType,
		Status:        models.StatusScheduled,
		Location:      location,
		MeetingLink:   meetingLink,
	}
	if err := f.db.Create(appt).Error; err != nil {
		return nil, err
	}
	return appt, nil
}
