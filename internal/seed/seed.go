package seed

import (
	"fmt"
	"log"
	"strings"

	"mindbridge/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumStudents    int
	NumCounselors  int
	MoodsPerUser   int
	NumPosts       int
	CommentsPerMax int
	// MaxDays bounds how far back generated timestamps spread.
	MaxDays     int
	ShouldClean bool
	SkipBcrypt  bool
}

// DefaultOptions returns a sensible demo dataset size.
func DefaultOptions() Options {
	return Options{
		NumStudents:    25,
		NumCounselors:  3,
		MoodsPerUser:   20,
		NumPosts:       40,
		CommentsPerMax: 5,
		MaxDays:        90,
	}
}

// Seed populates the database with demo data.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d students and %d posts...", opts.NumStudents, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	f := NewFactory(db, opts)

	institute, err := createDemoInstitute(db)
	if err != nil {
		return fmt.Errorf("failed to create institute: %w", err)
	}

	counselors := make([]*models.User, 0, opts.NumCounselors)
	for i := 0; i < opts.NumCounselors; i++ {
		counselor, err := f.CreateCounselor(func(u *models.User) {
			u.InstituteID = &institute.ID
		})
		if err != nil {
			return fmt.Errorf("failed to create counselor: %w", err)
		}
		counselors = append(counselors, counselor)
	}
	log.Printf("✓ %d counselors created", len(counselors))

	students := make([]*models.User, 0, opts.NumStudents)
	for i := 0; i < opts.NumStudents; i++ {
		student, err := f.CreateStudent(func(u *models.User) {
			u.InstituteID = &institute.ID
		})
		if err != nil {
			return fmt.Errorf("failed to create student: %w", err)
		}
		students = append(students, student)
	}
	log.Printf("✓ %d students created", len(students))

	moods := 0
	for _, student := range students {
		for i := 0; i < opts.MoodsPerUser; i++ {
			if _, err := f.CreateMoodEntry(student); err != nil {
				return fmt.Errorf("failed to create mood entry: %w", err)
			}
			moods++
		}
	}
	log.Printf("✓ %d mood entries created", moods)

	posts := make([]*models.CommunityPost, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := students[f.rng.Intn(len(students))]
		post, err := f.CreatePost(author)
		if err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}
		posts = append(posts, post)
	}
	log.Printf("✓ %d posts created", len(posts))

	comments := 0
	for _, post := range posts {
		n := f.rng.Intn(opts.CommentsPerMax + 1)
		for i := 0; i < n; i++ {
			author := students[f.rng.Intn(len(students))]
			if _, err := f.CreateComment(post, author); err != nil {
				return fmt.Errorf("failed to create comment: %w", err)
			}
			comments++
		}
	}
	log.Printf("✓ %d comments created", comments)

	appointments := 0
	for _, student := range students {
		if f.rng.Intn(2) == 0 {
			continue
		}
		counselor := counselors[f.rng.Intn(len(counselors))]
		if _, err := f.CreateAppointment(student, counselor); err != nil {
			return fmt.Errorf("failed to create appointment: %w", err)
		}
		appointments++
	}
	log.Printf("✓ %d appointments created", appointments)

	if _, err := SeedResourceCatalog(db); err != nil {
		return fmt.Errorf("failed to seed resource catalog: %w", err)
	}

	log.Println("🌱 Seeding complete")
	return nil
}

func createDemoInstitute(db *gorm.DB) (*models.Institute, error) {
	inst := &models.Institute{
		Name:  "Riverside University",
		Code:  "RVU",
		Email: "wellness@riverside.edu",
		Settings: models.InstituteSettings{
			AllowAnonymous:      true,
			EnableCommunityWall: true,
			EnableAnalytics:     true,
			MaxCounselors:       10,
		},
		Branches: []models.OrgUnit{
			{Name: "Computer Science"}, {Name: "Mechanical"}, {Name: "Biology"},
		},
		Years: []models.OrgUnit{
			{Name: "1st Year"}, {Name: "2nd Year"}, {Name: "3rd Year"}, {Name: "4th Year"},
		},
		Plan:     "free",
		IsActive: true,
	}

	err := db.Where("code = ?", inst.Code).FirstOrCreate(inst).Error
	return inst, err
}

// clearData removes seeded rows. Order matters because of foreign keys.
func clearData(db *gorm.DB) error {
	tables := []string{
		"post_comments", "community_posts", "appointments",
		"mood_entries", "resources", "users", "institutes",
	}
	var failed []string
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			failed = append(failed, table)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("could not clear tables: %s", strings.Join(failed, ", "))
	}
	return nil
}
