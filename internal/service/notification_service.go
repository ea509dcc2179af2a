package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"hackswipe/internal/models"
	"hackswipe/internal/repository"
)

const (
	notificationLimit         = 5
	recentMatchLimit          = 3
	recentInquiryLimit        = 2
	recentConversationLimit   = 2
	recentMessageWindow       = 24 * time.Hour
	notificationIDSeparator   = ":"
	notificationMatchPrefix   = "match"
	notificationInquiryPrefix = "inquiry"
	notificationMsgPrefix     = "message"
)

// NotificationService derives the caller's notifications from recent
// activity and tracks which of them were read.
type NotificationService struct {
	matchRepo        repository.MatchRepository
	inquiryRepo      repository.InquiryRepository
	chatRepo         repository.ChatRepository
	userRepo         repository.UserRepository
	postRepo         repository.PostRepository
	notificationRepo repository.NotificationRepository
	now              func() time.Time
}

func NewNotificationService(
	matchRepo repository.MatchRepository,
	inquiryRepo repository.InquiryRepository,
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	notificationRepo repository.NotificationRepository,
) *NotificationService {
	return &NotificationService{
		matchRepo:        matchRepo,
		inquiryRepo:      inquiryRepo,
		chatRepo:         chatRepo,
		userRepo:         userRepo,
		postRepo:         postRepo,
		notificationRepo: notificationRepo,
		now:              time.Now,
	}
}

// NotificationID builds the stable id of a derived notification.
func NotificationID(kind, sourceID string) string {
	return kind + notificationIDSeparator + sourceID
}

// List returns at most five notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID string) ([]models.Notification, error) {
	notifications, err := s.derive(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(notifications))
	for _, n := range notifications {
		ids = append(ids, n.ID)
	}
	read, err := s.notificationRepo.ReadSet(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	for i := range notifications {
		notifications[i].Read = read[notifications[i].ID]
	}
	return notifications, nil
}

// MarkRead records one notification id as read.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	kind, sourceID, ok := strings.Cut(notificationID, notificationIDSeparator)
	if !ok || sourceID == "" {
		return models.NewValidationError("Invalid notification id")
	}
	switch kind {
	case notificationMatchPrefix, notificationInquiryPrefix, notificationMsgPrefix:
	default:
		return models.NewValidationError("Invalid notification id")
	}
	return s.notificationRepo.MarkRead(ctx, userID, []string{notificationID})
}

// MarkAllRead marks the currently derived notifications as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	notifications, err := s.derive(ctx, userID)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(notifications))
	for _, n := range notifications {
		ids = append(ids, n.ID)
	}
	return s.notificationRepo.MarkRead(ctx, userID, ids)
}

func (s *NotificationService) derive(ctx context.Context, userID string) ([]models.Notification, error) {
	matches, err := s.matchRepo.Recent(ctx, userID, recentMatchLimit)
	if err != nil {
		return nil, err
	}
	inquiries, err := s.inquiryRepo.RecentPendingForLeader(ctx, userID, recentInquiryLimit)
	if err != nil {
		return nil, err
	}
	messages, err := s.chatRepo.RecentIncoming(ctx, userID, s.now().Add(-recentMessageWindow), recentConversationLimit)
	if err != nil {
		return nil, err
	}

	var userIDs, postIDs []string
	for i := range matches {
		userIDs = append(userIDs, matches[i].OtherUserID(userID))
	}
	for _, inq := range inquiries {
		userIDs = append(userIDs, inq.UserID)
		postIDs = append(postIDs, inq.PostID)
	}
	for _, m := range messages {
		userIDs = append(userIDs, m.SenderID)
	}
	users, err := s.userRepo.GetWithProfiles(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.GetByIDs(ctx, postIDs)
	if err != nil {
		return nil, err
	}

	var out []models.Notification
	for _, m := range matches {
		other, ok := users[m.OtherUserID(userID)]
		if !ok {
			continue
		}
		out = append(out, models.Notification{
			ID:        NotificationID(notificationMatchPrefix, m.ID),
			Type:      models.NotificationMatch,
			Message:   fmt.Sprintf("You matched with %s!", other.Name),
			CreatedAt: m.CreatedAt,
			UserID:    other.ID,
			UserName:  other.Name,
		})
	}
	for _, inq := range inquiries {
		applicant, okUser := users[inq.UserID]
		post, okPost := posts[inq.PostID]
		if !okUser || !okPost {
			continue
		}
		out = append(out, models.Notification{
			ID:   NotificationID(notificationInquiryPrefix, inq.ID),
			Type: models.NotificationInquiry,
			Message: fmt.Sprintf("%s is interested in your %s: %s",
				applicant.Name, strings.ToLower(string(post.Type)), post.Title),
			CreatedAt: inq.CreatedAt,
			UserID:    applicant.ID,
			UserName:  applicant.Name,
			PostID:    post.ID,
			PostTitle: post.Title,
		})
	}
	for _, m := range messages {
		sender, ok := users[m.SenderID]
		if !ok {
			continue
		}
		out = append(out, models.Notification{
			ID:             NotificationID(notificationMsgPrefix, m.ID),
			Type:           models.NotificationMessage,
			Message:        fmt.Sprintf("New message from %s", sender.Name),
			CreatedAt:      m.CreatedAt,
			UserID:         sender.ID,
			UserName:       sender.Name,
			ConversationID: m.ConversationID,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > notificationLimit {
		out = out[:notificationLimit]
	}
	if out == nil {
		out = []models.Notification{}
	}
	return out, nil
}
