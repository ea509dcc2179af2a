package service

import (
	"context"
	"strings"

	"hackswipe/internal/models"
	"hackswipe/internal/observability"
	"hackswipe/internal/repository"
	"hackswipe/internal/validation"
)

const maxMessageLen = 5000

// ChatService provides conversation and message business logic.
type ChatService struct {
	chatRepo repository.ChatRepository
	userRepo repository.UserRepository
}

// CreateConversationInput is the input for creating a conversation.
type CreateConversationInput struct {
	UserID         string
	ParticipantIDs []string
	IsGroup        bool
	Name           *string
	PostID         *string
}

// SendMessageInput is the input for sending a message.
type SendMessageInput struct {
	UserID         string
	ConversationID string
	Content        string
	AttachmentURL  *string
}

// SentMessage is a stored message and the users that should be notified.
type SentMessage struct {
	Message    *models.MessageWithSender
	Recipients []string
}

func NewChatService(chatRepo repository.ChatRepository, userRepo repository.UserRepository) *ChatService {
	return &ChatService{chatRepo: chatRepo, userRepo: userRepo}
}

// ListConversations returns the caller's inbox. Participants exclude the caller.
func (s *ChatService) ListConversations(ctx context.Context, userID string) ([]models.ConversationSummary, error) {
	conversations, err := s.chatRepo.ListConversationsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(conversations))
	for _, c := range conversations {
		ids = append(ids, c.ID)
	}

	latest, err := s.chatRepo.LatestMessages(ctx, ids)
	if err != nil {
		return nil, err
	}
	participants, err := s.chatRepo.ParticipantUserIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	var userIDs []string
	for _, members := range participants {
		userIDs = append(userIDs, members...)
	}
	users, err := s.userRepo.GetWithProfiles(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	out := make([]models.ConversationSummary, 0, len(conversations))
	for _, c := range conversations {
		others := []models.User{}
		for _, id := range participants[c.ID] {
			if u, ok := users[id]; ok && id != userID {
				others = append(others, u.User)
			}
		}
		out = append(out, models.ConversationSummary{
			Conversation:  c,
			LatestMessage: latest[c.ID],
			Participants:  others,
		})
	}
	return out, nil
}

// CreateConversation makes the caller OWNER and every other listed user MEMBER.
func (s *ChatService) CreateConversation(ctx context.Context, in CreateConversationInput) (*models.Conversation, error) {
	members := make([]string, 0, len(in.ParticipantIDs))
	seen := map[string]bool{in.UserID: true}
	for _, id := range in.ParticipantIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		members = append(members, id)
	}

	found, err := s.userRepo.GetWithProfiles(ctx, members)
	if err != nil {
		return nil, err
	}
	if len(found) != len(members) {
		return nil, models.NewValidationError("Unknown participant")
	}

	conv := &models.Conversation{IsGroup: in.IsGroup, Name: in.Name, PostID: in.PostID}
	if err := s.chatRepo.CreateConversation(ctx, conv, in.UserID, members); err != nil {
		return nil, err
	}
	return conv, nil
}

// ListMessages returns the conversation history, oldest first, to participants only.
func (s *ChatService) ListMessages(ctx context.Context, userID, conversationID string) ([]models.MessageWithSender, error) {
	if err := s.requireParticipant(ctx, conversationID, userID); err != nil {
		return nil, err
	}
	messages, err := s.chatRepo.ListMessages(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	senderIDs := make([]string, 0, len(messages))
	for _, m := range messages {
		senderIDs = append(senderIDs, m.SenderID)
	}
	senders, err := s.userRepo.GetWithProfiles(ctx, senderIDs)
	if err != nil {
		return nil, err
	}

	out := make([]models.MessageWithSender, 0, len(messages))
	for _, m := range messages {
		item := models.MessageWithSender{Message: m}
		if u, ok := senders[m.SenderID]; ok {
			item.Sender = &u.User
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *ChatService) SendMessage(ctx context.Context, in SendMessageInput) (*SentMessage, error) {
	if err := s.requireParticipant(ctx, in.ConversationID, in.UserID); err != nil {
		return nil, err
	}

	content := strings.TrimSpace(in.Content)
	hasAttachment := in.AttachmentURL != nil && strings.TrimSpace(*in.AttachmentURL) != ""
	if content == "" && !hasAttachment {
		return nil, models.NewValidationError("Message content is required")
	}
	if len(content) > maxMessageLen {
		return nil, models.NewValidationError("Message too long (max 5000 characters)")
	}
	if !hasAttachment {
		in.AttachmentURL = nil
	} else if err := validation.ValidateURL("attachmentUrl", *in.AttachmentURL); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	sender, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	msg := &models.Message{
		ConversationID: in.ConversationID,
		SenderID:       in.UserID,
		Content:        content,
		AttachmentURL:  in.AttachmentURL,
	}
	if err := s.chatRepo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	observability.MessagesSent.Inc()

	participants, err := s.chatRepo.ParticipantUserIDs(ctx, []string{in.ConversationID})
	if err != nil {
		return nil, err
	}
	recipients := make([]string, 0, len(participants[in.ConversationID]))
	for _, id := range participants[in.ConversationID] {
		if id != in.UserID {
			recipients = append(recipients, id)
		}
	}

	return &SentMessage{
		Message:    &models.MessageWithSender{Message: *msg, Sender: sender},
		Recipients: recipients,
	}, nil
}

func (s *ChatService) requireParticipant(ctx context.Context, conversationID, userID string) error {
	ok, err := s.chatRepo.IsParticipant(ctx, conversationID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewUnauthorizedError("Unauthorized")
	}
	return nil
}
