package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TargetType names what a swipe points at.
type TargetType string

const (
	TargetPerson    TargetType = "PERSON"
	TargetHackathon TargetType = "HACKATHON"
	TargetProject   TargetType = "PROJECT"
)

// Valid reports whether t is a known swipe target.
func (t TargetType) Valid() bool {
	switch t {
	case TargetPerson, TargetHackathon, TargetProject:
		return true
	}
	return false
}

// PostType returns the post type a non-person target refers to.
func (t TargetType) PostType() PostType {
	return PostType(t)
}

// Direction is LEFT (pass) or RIGHT (interested).
type Direction string

const (
	DirectionLeft  Direction = "LEFT"
	DirectionRight Direction = "RIGHT"
)

// Valid reports whether d is a known swipe direction.
func (d Direction) Valid() bool {
	return d == DirectionLeft || d == DirectionRight
}

// Swipe records one user's decision on a person or post. One per (swiper, type, target).
type Swipe struct {
	ID         string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	SwiperID   string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_swipes_unique" json:"swiperId"`
	TargetType TargetType `gorm:"type:varchar(20);not null;uniqueIndex:idx_swipes_unique" json:"targetType"`
	TargetID   string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_swipes_unique;index" json:"targetId"`
	Direction  Direction  `gorm:"type:varchar(10);not null" json:"direction"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// TableName specifies the table name for GORM
func (Swipe) TableName() string {
	return "swipes"
}

func (s *Swipe) BeforeCreate(_ *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
