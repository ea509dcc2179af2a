package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ParticipantRole is the role a user holds in a conversation.
type ParticipantRole string

const (
	ParticipantOwner  ParticipantRole = "OWNER"
	ParticipantMember ParticipantRole = "MEMBER"
)

// Conversation is a direct or group message thread.
type Conversation struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	IsGroup   bool      `gorm:"not null;default:false" json:"isGroup"`
	Name      *string   `json:"name"`
	PostID    *string   `gorm:"type:varchar(36);index" json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for GORM
func (Conversation) TableName() string {
	return "conversations"
}

func (c *Conversation) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// ConversationParticipant links a user into a conversation.
type ConversationParticipant struct {
	ID             string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	ConversationID string          `gorm:"type:varchar(36);not null;uniqueIndex:idx_participants_unique" json:"conversationId"`
	UserID         string          `gorm:"type:varchar(36);not null;uniqueIndex:idx_participants_unique;index" json:"userId"`
	Role           ParticipantRole `gorm:"type:varchar(20);not null;default:'MEMBER'" json:"role"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// TableName specifies the table name for GORM
func (ConversationParticipant) TableName() string {
	return "conversation_participants"
}

func (p *ConversationParticipant) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Message is an append-only chat entry.
type Message struct {
	ID             string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	ConversationID string    `gorm:"type:varchar(36);not null;index:idx_messages_conversation_created" json:"conversationId"`
	SenderID       string    `gorm:"type:varchar(36);not null;index" json:"senderId"`
	Content        string    `gorm:"type:text;not null;default:''" json:"content"`
	AttachmentURL  *string   `json:"attachmentUrl"`
	CreatedAt      time.Time `gorm:"index:idx_messages_conversation_created" json:"createdAt"`
}

// TableName specifies the table name for GORM
func (Message) TableName() string {
	return "messages"
}

func (m *Message) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// MessageWithSender is a message with its author's public details.
type MessageWithSender struct {
	Message
	Sender *User `json:"sender"`
}

// ConversationSummary is a conversation in the caller's inbox.
type ConversationSummary struct {
	Conversation
	LatestMessage *Message `json:"latestMessage"`
	Participants  []User   `json:"participants"`
}
