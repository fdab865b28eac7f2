// Command migrate applies the database schema for MindBridge.
package main

import (
	"flag"
	"log"

	"mindbridge/internal/config"
	"mindbridge/internal/database"
	"mindbridge/internal/seed"
)

func main() {
	withCatalog := flag.Bool("catalog", true, "Seed the starter resource catalog after migrating")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Schema migration complete")

	if *withCatalog {
		created, err := seed.SeedResourceCatalog(db)
		if err != nil {
			log.Fatalf("Resource catalog seeding failed: %v", err)
		}
		log.Printf("Resource catalog ready (%d new entries)", created)
	}
}
