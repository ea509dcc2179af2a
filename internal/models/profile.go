package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ExperienceEntry is one item of a profile's work history.
type ExperienceEntry struct {
	Title       string  `json:"title"`
	Org         string  `json:"org"`
	StartDate   string  `json:"startDate"`
	EndDate     *string `json:"endDate"`
	Description string  `json:"description"`
}

// ProjectEntry is a showcased project on a profile.
type ProjectEntry struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tech        []string `json:"tech"`
	RepoURL     string   `json:"repoUrl"`
	DemoURL     string   `json:"demoUrl"`
}

// AwardEntry is a hackathon result or other recognition.
type AwardEntry struct {
	Title  string `json:"title"`
	Issuer string `json:"issuer"`
	Year   string `json:"year"`
}

// SocialLink points at an external profile, e.g. {type: GITHUB, url: ...}.
type SocialLink struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Preferences drive what a user wants to see while exploring.
type Preferences struct {
	DesiredRoles     []string `json:"desiredRoles"`
	TechStack        []string `json:"techStack"`
	InterestTags     []string `json:"interestTags"`
	LocationRadiusKm int      `json:"locationRadiusKm"`
	RemoteOk         bool     `json:"remoteOk"`
	AvailabilityHrs  int      `json:"availabilityHrs"`
	SearchPeople     bool     `json:"searchPeople"`
	SearchProjects   bool     `json:"searchProjects"`
	SearchHackathons bool     `json:"searchHackathons"`
}

// DefaultPreferences returns the preferences applied when a profile omits them.
func DefaultPreferences() Preferences {
	return Preferences{
		DesiredRoles:     []string{},
		TechStack:        []string{},
		InterestTags:     []string{},
		LocationRadiusKm: 50,
		RemoteOk:         true,
		AvailabilityHrs:  20,
		SearchPeople:     true,
		SearchProjects:   true,
		SearchHackathons: true,
	}
}

// Profile holds the extended, user-editable details of a User. One per user.
type Profile struct {
	ID             string                               `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID         string                               `gorm:"type:varchar(36);uniqueIndex;not null" json:"userId"`
	Bio            *string                              `gorm:"type:text" json:"bio"`
	LooksToConnect *string                              `gorm:"type:text" json:"looksToConnect"`
	Skills         datatypes.JSONSlice[string]          `json:"skills"`
	Interests      datatypes.JSONSlice[string]          `json:"interests"`
	Experience     datatypes.JSONSlice[ExperienceEntry] `json:"experience"`
	Projects       datatypes.JSONSlice[ProjectEntry]    `json:"projects"`
	Awards         datatypes.JSONSlice[AwardEntry]      `json:"awards"`
	Socials        datatypes.JSONSlice[SocialLink]      `json:"socials"`
	Preferences    datatypes.JSONType[Preferences]      `json:"preferences"`
	CreatedAt      time.Time                            `json:"createdAt"`
	UpdatedAt      time.Time                            `json:"updatedAt"`
}

// TableName specifies the table name for GORM
func (Profile) TableName() string {
	return "profiles"
}

func (p *Profile) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ApplyDefaults replaces nil collections with empty ones so the JSON shape is stable.
func (p *Profile) ApplyDefaults() {
	if p.Skills == nil {
		p.Skills = datatypes.JSONSlice[string]{}
	}
	if p.Interests == nil {
		p.Interests = datatypes.JSONSlice[string]{}
	}
	if p.Experience == nil {
		p.Experience = datatypes.JSONSlice[ExperienceEntry]{}
	}
	if p.Projects == nil {
		p.Projects = datatypes.JSONSlice[ProjectEntry]{}
	}
	if p.Awards == nil {
		p.Awards = datatypes.JSONSlice[AwardEntry]{}
	}
	if p.Socials == nil {
		p.Socials = datatypes.JSONSlice[SocialLink]{}
	}
	prefs := p.Preferences.Data()
	if prefs.DesiredRoles == nil && prefs.TechStack == nil && prefs.InterestTags == nil &&
		prefs.LocationRadiusKm == 0 && prefs.AvailabilityHrs == 0 {
		p.Preferences = datatypes.NewJSONType(DefaultPreferences())
	}
}
