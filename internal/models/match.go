package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MatchContext says whether a match came from people discovery or a post.
type MatchContext string

const (
	MatchContextPeople MatchContext = "PEOPLE"
	MatchContextPost   MatchContext = "POST"
)

// Match is a mutual connection between two users.
// UserLowID, UserHighID and ScopeID back the unordered-pair unique index.
type Match struct {
	ID         string       `gorm:"type:varchar(36);primaryKey" json:"id"`
	AID        string       `gorm:"column:a_id;type:varchar(36);not null;index" json:"aId"`
	BID        string       `gorm:"column:b_id;type:varchar(36);not null;index" json:"bId"`
	Context    MatchContext `gorm:"type:varchar(20);not null;uniqueIndex:idx_matches_pair" json:"context"`
	PostID     *string      `gorm:"type:varchar(36)" json:"postId"`
	UserLowID  string       `gorm:"type:varchar(36);not null;uniqueIndex:idx_matches_pair" json:"-"`
	UserHighID string       `gorm:"type:varchar(36);not null;uniqueIndex:idx_matches_pair" json:"-"`
	ScopeID    string       `gorm:"type:varchar(36);not null;default:'';uniqueIndex:idx_matches_pair" json:"-"`
	CreatedAt  time.Time    `json:"createdAt"`
}

// TableName specifies the table name for GORM
func (Match) TableName() string {
	return "matches"
}

// NewMatch builds a match with its pair key populated.
func NewMatch(aID, bID string, ctx MatchContext, postID *string) *Match {
	m := &Match{AID: aID, BID: bID, Context: ctx, PostID: postID}
	m.fillKey()
	return m
}

func (m *Match) fillKey() {
	m.UserLowID, m.UserHighID = m.AID, m.BID
	if m.UserHighID < m.UserLowID {
		m.UserLowID, m.UserHighID = m.UserHighID, m.UserLowID
	}
	m.ScopeID = ""
	if m.PostID != nil {
		m.ScopeID = *m.PostID
	}
}

func (m *Match) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.fillKey()
	return nil
}

// OtherUserID returns the participant that is not userID.
func (m *Match) OtherUserID(userID string) string {
	if m.AID == userID {
		return m.BID
	}
	return m.AID
}

// MatchWithUser is a match projected with the counterpart's public details.
type MatchWithUser struct {
	Match
	OtherUser *UserWithProfile `json:"otherUser"`
}

// SwipeMatch is the match returned from a swipe that created it.
type SwipeMatch struct {
	Match
	IsNew bool `json:"isNew"`
}
