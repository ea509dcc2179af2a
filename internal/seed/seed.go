package seed

import (
	"context"
	"fmt"
	"slices"

	"hackswipe/internal/database"
	"hackswipe/internal/middleware"
	"hackswipe/internal/models"
	"hackswipe/internal/repository"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	NumSwipes   int
	ShouldClean bool
	// Demo loads the embedded demo accounts before generating random data.
	Demo       bool
	DryRun     bool
	SkipBcrypt bool
	MaxDays    int
	RandSeed   int64
}

// Result summarizes a seeding run.
type Result struct {
	Demo    *DemoResult
	Users   int
	Posts   int
	Swipes  int
	Matches int
}

// Seed populates the database with demo and random data.
func Seed(ctx context.Context, db *gorm.DB, opts Options) (*Result, error) {
	log := middleware.Logger
	log.InfoContext(ctx, "starting database seeding",
		"users", opts.NumUsers, "posts", opts.NumPosts, "swipes", opts.NumSwipes, "dry_run", opts.DryRun)

	if opts.ShouldClean && !opts.DryRun {
		if err := clearData(ctx, db); err != nil {
			log.WarnContext(ctx, "could not clear existing data, continuing", "error", err)
		}
	}

	res := &Result{}
	if opts.Demo && !opts.DryRun {
		demo, err := LoadDemo(ctx, db)
		if err != nil {
			return nil, fmt.Errorf("failed to load demo data: %w", err)
		}
		res.Demo = demo
	}

	f := NewFactory(db.WithContext(ctx), opts)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		u, err := f.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, u)
	}
	res.Users = len(users)

	posts, err := createPosts(f, users, opts.NumPosts)
	if err != nil {
		return nil, fmt.Errorf("failed to create posts: %w", err)
	}
	res.Posts = len(posts)

	if !opts.DryRun {
		swipes, matches, err := createSwipes(ctx, f, db, users, posts, opts.NumSwipes)
		if err != nil {
			return nil, fmt.Errorf("failed to create swipes: %w", err)
		}
		res.Swipes, res.Matches = swipes, matches
	}

	log.InfoContext(ctx, "database seeding completed",
		"users", res.Users, "posts", res.Posts, "swipes", res.Swipes, "matches", res.Matches)
	return res, nil
}

// clearData removes every row, children first.
func clearData(ctx context.Context, db *gorm.DB) error {
	middleware.Logger.InfoContext(ctx, "clearing existing data")
	all := database.PersistentModels()
	slices.Reverse(all)
	tx := db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, m := range all {
		if err := tx.Delete(m).Error; err != nil {
			return err
		}
	}
	return nil
}

func createPosts(f *Factory, users []*models.User, count int) ([]*models.Post, error) {
	if len(users) == 0 || count <= 0 {
		return nil, nil
	}
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		leader := users[f.faker.Number(0, len(users)-1)]
		postType := models.PostTypeProject
		if i%2 == 0 {
			postType = models.PostTypeHackathon
		}
		posts = append(posts, f.BuildPost(leader, postType))
	}
	if err := f.CreatePostsBatch(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// createSwipes records random right swipes through the swipe repository so
// matches and inquiries follow the same rules as live traffic.
func createSwipes(ctx context.Context, f *Factory, db *gorm.DB, users []*models.User, posts []*models.Post, count int) (int, int, error) {
	if len(users) < 2 || count <= 0 {
		return 0, 0, nil
	}
	repo := repository.NewSwipeRepository(db)
	swipes, matches := 0, 0
	for attempt := 0; swipes < count && attempt < count*4; attempt++ {
		swiper := users[f.faker.Number(0, len(users)-1)]
		swipe := &models.Swipe{SwiperID: swiper.ID, Direction: models.DirectionRight}

		if len(posts) > 0 && f.faker.Bool() {
			post := posts[f.faker.Number(0, len(posts)-1)]
			if post.LeaderID == swiper.ID {
				continue
			}
			swipe.TargetType = models.TargetType(post.Type)
			swipe.TargetID = post.ID
		} else {
			target := users[f.faker.Number(0, len(users)-1)]
			if target.ID == swiper.ID {
				continue
			}
			swipe.TargetType = models.TargetPerson
			swipe.TargetID = target.ID
		}

		exists, err := repo.Exists(ctx, swipe.SwiperID, swipe.TargetType, swipe.TargetID)
		if err != nil {
			return swipes, matches, err
		}
		if exists {
			continue
		}
		out, err := repo.Record(ctx, swipe)
		if err != nil {
			return swipes, matches, err
		}
		swipes++
		if out.MatchCreated {
			matches++
		}
	}
	return swipes, matches, nil
}
