// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"strings"
	"time"

	"hackswipe/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultPassword is the password of every randomly generated account.
const DefaultPassword = "password123"

var (
	skillPool = []string{
		"Go", "Python", "TypeScript", "React", "Vue.js", "Node.js", "PostgreSQL",
		"Redis", "Docker", "Kubernetes", "AWS", "Terraform", "PyTorch", "TensorFlow",
		"Solidity", "Rust", "Swift", "Kotlin", "Flutter", "Figma", "Unity", "GraphQL",
	}
	interestPool = []string{
		"AI/ML", "Climate Tech", "Healthcare", "FinTech", "EdTech", "Gaming", "Web3",
		"Open Source", "Developer Tools", "Social Impact", "Security", "AR/VR",
	}
	headlinePool = []string{
		"Full-Stack Engineer", "Backend Developer", "Product Designer", "Data Scientist",
		"Mobile Developer", "DevOps Engineer", "ML Engineer", "Frontend Developer",
	}
	timezonePool = []string{"PST", "MST", "CST", "EST", "GMT", "CET", "IST", "JST"}
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by Seed and tests.
type Factory struct {
	db    *gorm.DB
	opts  Options
	faker *gofakeit.Faker
	hash  string
	seq   int
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
// A zero Options.RandSeed seeds the generator from the clock.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	seed := opts.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Factory{db: db, opts: opts, faker: gofakeit.New(seed)}
}

func (f *Factory) passwordHash() string {
	if f.hash != "" {
		return f.hash
	}
	if f.opts.SkipBcrypt {
		f.hash = DefaultPassword
		return f.hash
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt only fails on oversized input or an invalid cost
		panic(err)
	}
	f.hash = string(hashed)
	return f.hash
}

func (f *Factory) pick(pool []string, lo, hi int) []string {
	n := f.faker.Number(lo, hi)
	out := make([]string, 0, n)
	seen := make(map[string]bool, n)
	for len(out) < n && len(seen) < len(pool) {
		s := f.faker.RandomString(pool)
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// createdAt spreads timestamps over the last MaxDays days.
func (f *Factory) createdAt() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	back := time.Duration(f.faker.Number(0, maxDays*24*60)) * time.Minute
	return time.Now().Add(-back)
}

// BuildUser constructs a random user without persisting it.
func (f *Factory) BuildUser(overrides ...func(*models.User)) *models.User {
	f.seq++
	first, last := f.faker.FirstName(), f.faker.LastName()
	local := strings.ToLower(fmt.Sprintf("%s.%s%d", first, last, f.seq))
	local = strings.NewReplacer(" ", "", "'", "").Replace(local)

	location := fmt.Sprintf("%s, %s", f.faker.City(), f.faker.StateAbr())
	headline := f.faker.RandomString(headlinePool)
	tz := f.faker.RandomString(timezonePool)

	user := &models.User{
		Email:        local + "@example.com",
		Name:         first + " " + last,
		PasswordHash: f.passwordHash(),
		ImageURL:     fmt.Sprintf("https://i.pravatar.cc/150?u=%s", local),
		RoleHeadline: &headline,
		Location:     &location,
		Timezone:     &tz,
		CreatedAt:    f.createdAt(),
	}
	for _, override := range overrides {
		override(user)
	}
	return user
}

// BuildProfile constructs a random profile for user without persisting it.
func (f *Factory) BuildProfile(user *models.User) *models.Profile {
	bio := f.faker.Paragraph(1, 2, 12, " ")
	looking := fmt.Sprintf("Looking for %s teammates for %s", strings.ToLower(f.faker.RandomString(headlinePool)), f.faker.AppName())
	started := f.faker.DateRange(time.Now().AddDate(-8, 0, 0), time.Now().AddDate(-1, 0, 0))

	p := &models.Profile{
		UserID:         user.ID,
		Bio:            &bio,
		LooksToConnect: &looking,
		Skills:         datatypes.JSONSlice[string](f.pick(skillPool, 3, 8)),
		Interests:      datatypes.JSONSlice[string](f.pick(interestPool, 2, 5)),
		Experience: datatypes.JSONSlice[models.ExperienceEntry]{{
			Title:       f.faker.JobTitle(),
			Org:         f.faker.Company(),
			StartDate:   started.Format(time.DateOnly),
			Description: f.faker.Sentence(10),
		}},
		Projects: datatypes.JSONSlice[models.ProjectEntry]{{
			Name:        f.faker.AppName(),
			Description: f.faker.Sentence(8),
			Tech:        f.pick(skillPool, 2, 4),
			RepoURL:     fmt.Sprintf("https://github.com/%s/%s", user.Username, strings.ToLower(f.faker.Word())),
		}},
	}
	if user.Username != "" {
		p.Socials = datatypes.JSONSlice[models.SocialLink]{{Type: "GITHUB", URL: "https://github.com/" + user.Username}}
	}
	p.ApplyDefaults()
	return p
}

// BuildPost constructs a random hackathon or project post led by leader.
func (f *Factory) BuildPost(leader *models.User, postType models.PostType, overrides ...func(*models.Post)) *models.Post {
	title := f.faker.AppName()
	if postType == models.PostTypeHackathon {
		title = fmt.Sprintf("%s %s Hackathon", f.faker.City(), f.faker.RandomString(interestPool))
	}
	location := "Remote"
	if f.faker.Bool() {
		location = fmt.Sprintf("%s, %s", f.faker.City(), f.faker.StateAbr())
	}
	website := f.faker.URL()
	notes := f.faker.Paragraph(1, 3, 10, " ")

	post := &models.Post{
		Type:         postType,
		LeaderID:     leader.ID,
		Title:        title,
		Location:     &location,
		WebsiteURL:   &website,
		SkillsNeeded: datatypes.JSONSlice[string](f.pick(skillPool, 2, 5)),
		Notes:        &notes,
		CreatedAt:    f.createdAt(),
	}
	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreateUser builds a user plus profile and persists both.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := f.BuildUser(overrides...)
	if f.opts.DryRun {
		user.ID = uuid.NewString()
		user.Username = models.UsernameFor(user.Email, user.ID)
		return user, nil
	}
	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Create(f.BuildProfile(user)).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePostsBatch persists multiple posts in a single DB call when possible.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	if f.opts.DryRun {
		for _, p := range posts {
			p.ID = uuid.NewString()
		}
		return nil
	}
	return f.db.CreateInBatches(posts, 100).Error
}
