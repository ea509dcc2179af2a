package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InquiryStatus tracks a leader's decision on a join request.
type InquiryStatus string

const (
	InquiryStatusPending  InquiryStatus = "PENDING"
	InquiryStatusAccepted InquiryStatus = "ACCEPTED"
	InquiryStatusDeclined InquiryStatus = "DECLINED"
)

// Inquiry is created by a right swipe on a post and awaits the leader's decision.
type Inquiry struct {
	ID        string        `gorm:"type:varchar(36);primaryKey" json:"id"`
	PostID    string        `gorm:"type:varchar(36);not null;uniqueIndex:idx_inquiries_post_user" json:"postId"`
	UserID    string        `gorm:"type:varchar(36);not null;uniqueIndex:idx_inquiries_post_user;index" json:"userId"`
	Message   *string       `gorm:"type:text" json:"message"`
	Status    InquiryStatus `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// TableName specifies the table name for GORM
func (Inquiry) TableName() string {
	return "inquiries"
}

func (i *Inquiry) BeforeCreate(_ *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Status == "" {
		i.Status = InquiryStatusPending
	}
	return nil
}

// InquiryWithDetails is shown to a post leader reviewing requests.
type InquiryWithDetails struct {
	Inquiry
	User *UserWithProfile `json:"user"`
	Post *Post            `json:"post"`
}
