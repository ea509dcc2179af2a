// Package models contains data structures for the application's domain models.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultUserImageURL is assigned to users that register without an avatar.
const DefaultUserImageURL = "https://images.unsplash.com/photo-1623479322729-28b25c16b011?crop=entropy&cs=srgb&fm=jpg&ixid=M3w3NTY2Nzh8MHwxfHNlYXJjaHwzfHxkZXZlbG9wZXJzfGVufDB8fHx8MTc1OTYwODk3Nnww&ixlib=rb-4.1.0&q=85"

// User represents a registered HackSwipe account.
type User struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Name         string    `gorm:"not null" json:"name"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	ImageURL     string    `json:"imageUrl"`
	RoleHeadline *string   `json:"roleHeadline"`
	Location     *string   `json:"location"`
	Timezone     *string   `json:"timezone"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns the id and derives the username when unset.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Username == "" {
		u.Username = UsernameFor(u.Email, u.ID)
	}
	if u.ImageURL == "" {
		u.ImageURL = DefaultUserImageURL
	}
	return nil
}

// UsernameFor builds the public handle from the email local part and the id prefix.
func UsernameFor(email, id string) string {
	local, _, _ := strings.Cut(email, "@")
	prefix := id
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	return local + "_" + prefix
}

// UserWithProfile is the user projection returned by explore, match and inquiry listings.
type UserWithProfile struct {
	User
	Profile *Profile `json:"profile"`
}
