package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationType categorises a derived notification.
type NotificationType string

const (
	NotificationMatch   NotificationType = "MATCH"
	NotificationInquiry NotificationType = "INQUIRY"
	NotificationMessage NotificationType = "MESSAGE"
)

// Notification is computed from recent activity; it has no table of its own.
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"createdAt"`
	Read      bool             `json:"read"`

	UserID         string `json:"userId,omitempty"`
	UserName       string `json:"userName,omitempty"`
	PostID         string `json:"postId,omitempty"`
	PostTitle      string `json:"postTitle,omitempty"`
	ConversationID string `json:"conversationId,omitempty"`
}

// NotificationRead marks a derived notification id as read by a user.
type NotificationRead struct {
	ID             string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID         string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_notification_reads_unique" json:"userId"`
	NotificationID string    `gorm:"type:varchar(80);not null;uniqueIndex:idx_notification_reads_unique" json:"notificationId"`
	ReadAt         time.Time `json:"readAt"`
}

// TableName specifies the table name for GORM
func (NotificationRead) TableName() string {
	return "notification_reads"
}

func (n *NotificationRead) BeforeCreate(_ *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.ReadAt.IsZero() {
		n.ReadAt = time.Now()
	}
	return nil
}

// OverviewStats summarises a user's activity for the dashboard.
type OverviewStats struct {
	TotalPosts      int64 `json:"totalPosts"`
	TotalMatches    int64 `json:"totalMatches"`
	TotalSwipes     int64 `json:"totalSwipes"`
	OngoingProjects int64 `json:"ongoingProjects"`
}
