package repository

import (
	"context"
	"errors"
	"time"

	"hackswipe/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChatRepository defines the interface for chat data operations
type ChatRepository interface {
	// CreateConversation stores conv with ownerID as OWNER and memberIDs as MEMBER.
	CreateConversation(ctx context.Context, conv *models.Conversation, ownerID string, memberIDs []string) error
	ListConversationsForUser(ctx context.Context, userID string) ([]models.Conversation, error)
	// LatestMessages returns the newest message per conversation id.
	LatestMessages(ctx context.Context, conversationIDs []string) (map[string]*models.Message, error)
	// ParticipantUserIDs returns participant user ids per conversation id.
	ParticipantUserIDs(ctx context.Context, conversationIDs []string) (map[string][]string, error)
	IsParticipant(ctx context.Context, conversationID, userID string) (bool, error)
	ListMessages(ctx context.Context, conversationID string) ([]models.Message, error)
	CreateMessage(ctx context.Context, msg *models.Message) error
	// RecentIncoming returns, for up to conversationLimit of the user's
	// conversations, the newest message from someone else since the cutoff.
	RecentIncoming(ctx context.Context, userID string, since time.Time, conversationLimit int) ([]models.Message, error)
}

// chatRepository implements ChatRepository
type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) CreateConversation(ctx context.Context, conv *models.Conversation, ownerID string, memberIDs []string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(conv).Error; err != nil {
			return err
		}
		participants := []models.ConversationParticipant{{ConversationID: conv.ID, UserID: ownerID, Role: models.ParticipantOwner}}
		for _, id := range memberIDs {
			participants = append(participants, models.ConversationParticipant{
				ConversationID: conv.ID,
				UserID:         id,
				Role:           models.ParticipantMember,
			})
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&participants).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *chatRepository) ListConversationsForUser(ctx context.Context, userID string) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := r.db.WithContext(ctx).
		Joins("JOIN conversation_participants cp ON cp.conversation_id = conversations.id").
		Where("cp.user_id = ?", userID).
		Order("conversations.created_at DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return conversations, nil
}

func (r *chatRepository) LatestMessages(ctx context.Context, conversationIDs []string) (map[string]*models.Message, error) {
	conversationIDs = uniqueStrings(conversationIDs)
	out := make(map[string]*models.Message, len(conversationIDs))
	if len(conversationIDs) == 0 {
		return out, nil
	}

	db := r.db.WithContext(ctx)
	latest := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.Message{}).
		Select("conversation_id, MAX(created_at) AS max_created").
		Where("conversation_id IN ?", conversationIDs).
		Group("conversation_id")

	var messages []models.Message
	err := db.
		Joins("JOIN (?) AS latest ON latest.conversation_id = messages.conversation_id AND latest.max_created = messages.created_at", latest).
		Order("messages.id").
		Find(&messages).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	for i := range messages {
		if _, ok := out[messages[i].ConversationID]; !ok {
			out[messages[i].ConversationID] = &messages[i]
		}
	}
	return out, nil
}

func (r *chatRepository) ParticipantUserIDs(ctx context.Context, conversationIDs []string) (map[string][]string, error) {
	conversationIDs = uniqueStrings(conversationIDs)
	out := make(map[string][]string, len(conversationIDs))
	if len(conversationIDs) == 0 {
		return out, nil
	}
	var participants []models.ConversationParticipant
	err := r.db.WithContext(ctx).
		Where("conversation_id IN ?", conversationIDs).
		Order("created_at ASC").
		Find(&participants).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, p := range participants {
		out[p.ConversationID] = append(out[p.ConversationID], p.UserID)
	}
	return out, nil
}

func (r *chatRepository) IsParticipant(ctx context.Context, conversationID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ConversationParticipant{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *chatRepository) ListMessages(ctx context.Context, conversationID string) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

func (r *chatRepository) CreateMessage(ctx context.Context, msg *models.Message) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *chatRepository) RecentIncoming(ctx context.Context, userID string, since time.Time, conversationLimit int) ([]models.Message, error) {
	db := r.db.WithContext(ctx)

	var participations []models.ConversationParticipant
	if err := db.Where("user_id = ?", userID).Order("created_at DESC").Limit(conversationLimit).Find(&participations).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	messages := make([]models.Message, 0, len(participations))
	for _, p := range participations {
		var msg models.Message
		err := db.
			Where("conversation_id = ? AND sender_id <> ? AND created_at >= ?", p.ConversationID, userID, since).
			Order("created_at DESC").
			First(&msg).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}
