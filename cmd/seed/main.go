// Command main runs the database seeder for HackSwipe.
package main

import (
	"context"
	"flag"
	"log"

	"hackswipe/internal/config"
	"hackswipe/internal/database"
	"hackswipe/internal/middleware"
	"hackswipe/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of random users to create")
	numPosts := flag.Int("posts", 100, "Number of random posts to create")
	numSwipes := flag.Int("swipes", 300, "Number of random right swipes to record")
	shouldClean := flag.Bool("clean", false, "Delete all rows before seeding")
	demo := flag.Bool("demo", true, "Load the demo accounts (password dummy123)")
	dryRun := flag.Bool("dry-run", false, "Build data without writing it")
	skipBcrypt := flag.Bool("skip-bcrypt", false, "Store the plain default password (load testing only)")
	maxDays := flag.Int("max-days", 90, "Spread creation times over this many past days")
	randSeed := flag.Int64("seed", 0, "Random seed, 0 uses the clock")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	middleware.SetupLogger(log.Writer(), cfg.Env)

	if cfg.IsProduction() && *shouldClean {
		log.Fatal("Refusing to clean a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	res, err := seed.Seed(context.Background(), db, seed.Options{
		NumUsers:    *numUsers,
		NumPosts:    *numPosts,
		NumSwipes:   *numSwipes,
		ShouldClean: *shouldClean,
		Demo:        *demo,
		DryRun:      *dryRun,
		SkipBcrypt:  *skipBcrypt,
		MaxDays:     *maxDays,
		RandSeed:    *randSeed,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d users, %d posts, %d swipes, %d matches", res.Users, res.Posts, res.Swipes, res.Matches)
	if res.Demo != nil {
		log.Printf("Demo accounts: %d created, %d already present (password dummy123)",
			res.Demo.UsersCreated, res.Demo.UsersSkipped)
	}
	if !*skipBcrypt {
		log.Printf("Random users have the password: %s", seed.DefaultPassword)
	}
}
