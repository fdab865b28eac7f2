// Command main runs the database seeder for MindBridge.
package main

import (
	"flag"
	"log"

	"mindbridge/internal/config"
	"mindbridge/internal/database"
	"mindbridge/internal/seed"
)

func main() {
	numStudents := flag.Int("students", 25, "Number of students to create")
	numCounselors := flag.Int("counselors", 3, "Number of counselors to create")
	moodsPerUser := flag.Int("moods", 20, "Mood entries per student")
	numPosts := flag.Int("posts", 40, "Number of community posts to create")
	maxDays := flag.Int("days", 90, "How far back generated timestamps spread")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	skipBcrypt := flag.Bool("fast", false, "Skip bcrypt hashing for faster seeding (dev only)")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d students, %d counselors, %d posts, clean=%v\n",
		*numStudents, *numCounselors, *numPosts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	opts := seed.Options{
		NumStudents:    *numStudents,
		NumCounselors:  *numCounselors,
		MoodsPerUser:   *moodsPerUser,
		NumPosts:       *numPosts,
		CommentsPerMax: 5,
		MaxDays:        *maxDays,
		ShouldClean:    *shouldClean,
		SkipBcrypt:     *skipBcrypt,
	}
	if err := seed.Seed(db, opts); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with demo data.")
	log.Println("📧 All seeded users have the password: password123")
}
