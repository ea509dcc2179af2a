package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"hackswipe/internal/middleware"
	"hackswipe/internal/models"
	"hackswipe/internal/validation"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

//go:embed fixtures/demo.yaml
var demoYAML []byte

// DemoFixtures is the decoded fixtures/demo.yaml document.
type DemoFixtures struct {
	Password string       `yaml:"password"`
	Defaults demoDefaults `yaml:"defaults"`
	Users    []DemoUser   `yaml:"users"`
}

type demoDefaults struct {
	SocialType  string          `yaml:"socialType"`
	Preferences demoPreferences `yaml:"preferences"`
}

type demoPreferences struct {
	DesiredRoles     []string `yaml:"desiredRoles"`
	TechStack        []string `yaml:"techStack"`
	InterestTags     []string `yaml:"interestTags"`
	LocationRadiusKm int      `yaml:"locationRadiusKm"`
	RemoteOk         bool     `yaml:"remoteOk"`
	AvailabilityHrs  int      `yaml:"availabilityHrs"`
	SearchPeople     bool     `yaml:"searchPeople"`
	SearchProjects   bool     `yaml:"searchProjects"`
	SearchHackathons bool     `yaml:"searchHackathons"`
}

// DemoUser is one fixture account with its optional profile and posts.
type DemoUser struct {
	Email        string       `yaml:"email"`
	Name         string       `yaml:"name"`
	Username     string       `yaml:"username"`
	ImageURL     string       `yaml:"imageUrl"`
	RoleHeadline string       `yaml:"roleHeadline"`
	Location     string       `yaml:"location"`
	Timezone     string       `yaml:"timezone"`
	Profile      *demoProfile `yaml:"profile"`
	Posts        []demoPost   `yaml:"posts"`
}

type demoProfile struct {
	Bio            string           `yaml:"bio"`
	LooksToConnect string           `yaml:"looksToConnect"`
	Skills         []string         `yaml:"skills"`
	Interests      []string         `yaml:"interests"`
	Experience     []demoExperience `yaml:"experience"`
	Projects       []demoProject    `yaml:"projects"`
}

type demoExperience struct {
	Title       string `yaml:"title"`
	Org         string `yaml:"org"`
	StartDate   string `yaml:"startDate"`
	EndDate     string `yaml:"endDate"`
	Description string `yaml:"description"`
}

type demoProject struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Tech        []string `yaml:"tech"`
	RepoURL     string   `yaml:"repoUrl"`
	DemoURL     string   `yaml:"demoUrl"`
}

type demoPost struct {
	Type         models.PostType `yaml:"type"`
	Title        string          `yaml:"title"`
	Location     string          `yaml:"location"`
	WebsiteURL   string          `yaml:"websiteUrl"`
	SkillsNeeded []string        `yaml:"skillsNeeded"`
	Notes        string          `yaml:"notes"`
}

// DemoResult reports what LoadDemo inserted.
type DemoResult struct {
	UsersCreated int
	UsersSkipped int
	PostsCreated int
}

// LoadDemoFixtures decodes and validates the embedded demo fixtures.
func LoadDemoFixtures() (*DemoFixtures, error) {
	return parseDemoFixtures(demoYAML)
}

func parseDemoFixtures(raw []byte) (*DemoFixtures, error) {
	var fx DemoFixtures
	if err := yaml.Unmarshal(raw, &fx); err != nil {
		return nil, fmt.Errorf("decode demo fixtures: %w", err)
	}
	if fx.Password == "" {
		return nil, errors.New("demo fixtures: password is required")
	}
	seen := make(map[string]bool, len(fx.Users))
	for i, u := range fx.Users {
		email := strings.ToLower(strings.TrimSpace(u.Email))
		if email == "" || u.Name == "" {
			return nil, fmt.Errorf("demo fixtures: user %d needs email and name", i)
		}
		if err := validation.ValidateEmail(email); err != nil {
			return nil, fmt.Errorf("demo fixtures: user %d: %w", i, err)
		}
		if seen[email] {
			return nil, fmt.Errorf("demo fixtures: duplicate email %s", email)
		}
		seen[email] = true
		for _, p := range u.Posts {
			if !p.Type.Valid() || p.Title == "" {
				return nil, fmt.Errorf("demo fixtures: invalid post %q for %s", p.Title, email)
			}
			if p.WebsiteURL != "" {
				if err := validation.ValidateURL("websiteUrl", p.WebsiteURL); err != nil {
					return nil, fmt.Errorf("demo fixtures: post %q: %w", p.Title, err)
				}
			}
		}
	}
	return &fx, nil
}

// LoadDemo inserts the demo accounts, their profiles and posts. Accounts
// whose email already exists are left untouched, so repeated calls are safe.
func LoadDemo(ctx context.Context, db *gorm.DB) (*DemoResult, error) {
	fx, err := LoadDemoFixtures()
	if err != nil {
		return nil, err
	}
	return loadDemo(ctx, db, fx, bcrypt.DefaultCost)
}

func loadDemo(ctx context.Context, db *gorm.DB, fx *DemoFixtures, cost int) (*DemoResult, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(fx.Password), cost)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}

	res := &DemoResult{}
	for _, du := range fx.Users {
		email := strings.ToLower(strings.TrimSpace(du.Email))

		var existing int64
		if err := db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
			return nil, fmt.Errorf("lookup %s: %w", email, err)
		}
		if existing > 0 {
			res.UsersSkipped++
			continue
		}

		posts := 0
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			user := du.user(email, string(hash))
			if err := tx.Create(user).Error; err != nil {
				return err
			}
			if du.Profile != nil {
				if err := tx.Create(du.Profile.profile(user, fx.Defaults)).Error; err != nil {
					return err
				}
			}
			for _, dp := range du.Posts {
				if err := tx.Create(dp.post(user.ID)).Error; err != nil {
					return err
				}
				posts++
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("create demo user %s: %w", email, err)
		}
		res.UsersCreated++
		res.PostsCreated += posts
	}

	middleware.Logger.InfoContext(ctx, "demo data loaded",
		"users_created", res.UsersCreated,
		"users_skipped", res.UsersSkipped,
		"posts_created", res.PostsCreated,
	)
	return res, nil
}

func (du DemoUser) user(email, passwordHash string) *models.User {
	return &models.User{
		Email:        email,
		Name:         du.Name,
		Username:     du.Username,
		PasswordHash: passwordHash,
		ImageURL:     du.ImageURL,
		RoleHeadline: optional(du.RoleHeadline),
		Location:     optional(du.Location),
		Timezone:     optional(du.Timezone),
	}
}

func (dp *demoProfile) profile(user *models.User, defaults demoDefaults) *models.Profile {
	p := &models.Profile{
		UserID:         user.ID,
		Bio:            optional(dp.Bio),
		LooksToConnect: optional(dp.LooksToConnect),
		Skills:         datatypes.JSONSlice[string](dp.Skills),
		Interests:      datatypes.JSONSlice[string](dp.Interests),
		Awards:         datatypes.JSONSlice[models.AwardEntry]{},
	}
	for _, e := range dp.Experience {
		p.Experience = append(p.Experience, models.ExperienceEntry{
			Title:       e.Title,
			Org:         e.Org,
			StartDate:   e.StartDate,
			EndDate:     optional(e.EndDate),
			Description: e.Description,
		})
	}
	for _, pr := range dp.Projects {
		p.Projects = append(p.Projects, models.ProjectEntry{
			Name:        pr.Name,
			Description: pr.Description,
			Tech:        pr.Tech,
			RepoURL:     pr.RepoURL,
			DemoURL:     pr.DemoURL,
		})
	}
	if defaults.SocialType != "" && user.Username != "" {
		p.Socials = datatypes.JSONSlice[models.SocialLink]{{
			Type: defaults.SocialType,
			URL:  "https://github.com/" + user.Username,
		}}
	}
	p.Preferences = datatypes.NewJSONType(models.Preferences(defaults.Preferences))
	p.ApplyDefaults()
	return p
}

func (dp demoPost) post(leaderID string) *models.Post {
	return &models.Post{
		Type:         dp.Type,
		LeaderID:     leaderID,
		Title:        dp.Title,
		Location:     optional(dp.Location),
		WebsiteURL:   optional(dp.WebsiteURL),
		SkillsNeeded: datatypes.JSONSlice[string](dp.SkillsNeeded),
		Notes:        optional(dp.Notes),
		Status:       models.PostStatusOpen,
		Visibility:   models.PostVisibilityPublic,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
