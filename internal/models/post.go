package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PostType distinguishes hackathon listings from project listings.
type PostType string

const (
	PostTypeHackathon PostType = "HACKATHON"
	PostTypeProject   PostType = "PROJECT"
)

// Valid reports whether t is a known post type.
func (t PostType) Valid() bool {
	return t == PostTypeHackathon || t == PostTypeProject
}

const (
	PostStatusOpen       = "OPEN"
	PostVisibilityPublic = "PUBLIC"
)

// Post is a hackathon or project listing owned by its leader.
type Post struct {
	ID           string                      `gorm:"type:varchar(36);primaryKey" json:"id"`
	Type         PostType                    `gorm:"type:varchar(20);not null;index:idx_posts_type" json:"type"`
	LeaderID     string                      `gorm:"type:varchar(36);not null;index" json:"leaderId"`
	Title        string                      `gorm:"not null" json:"title"`
	Location     *string                     `json:"location"`
	WebsiteURL   *string                     `json:"websiteUrl"`
	SkillsNeeded datatypes.JSONSlice[string] `json:"skillsNeeded"`
	Notes        *string                     `gorm:"type:text" json:"notes"`
	Status       string                      `gorm:"type:varchar(20);not null;default:'OPEN'" json:"status"`
	Visibility   string                      `gorm:"type:varchar(20);not null;default:'PUBLIC'" json:"visibility"`
	CreatedAt    time.Time                   `json:"createdAt"`
	UpdatedAt    time.Time                   `json:"updatedAt"`
}

// TableName specifies the table name for GORM
func (Post) TableName() string {
	return "posts"
}

func (p *Post) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = PostStatusOpen
	}
	if p.Visibility == "" {
		p.Visibility = PostVisibilityPublic
	}
	if p.SkillsNeeded == nil {
		p.SkillsNeeded = datatypes.JSONSlice[string]{}
	}
	return nil
}

// PostWithLeader is a post projected with its leader for exploration.
type PostWithLeader struct {
	Post
	Leader *UserWithProfile `json:"leader"`
}

// PostWithCounts is a post projected with inquiry totals for its leader.
type PostWithCounts struct {
	Post
	InquiryCount  int64 `json:"inquiryCount"`
	AcceptedCount int64 `json:"acceptedCount"`
}
