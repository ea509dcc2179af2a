package server

import (
	"context"
	"log/slog"

	"hackswipe/internal/models"
	"hackswipe/internal/notifications"
	"hackswipe/internal/observability"
	"hackswipe/internal/service"

	"github.com/gofiber/fiber/v2"
)

// publishUserEvent delivers an event to every socket of userID. With Redis the
// event goes through pub/sub and the hub wiring delivers it locally, so the hub
// is only written directly when Redis is absent or the publish failed.
func (s *Server) publishUserEvent(ctx context.Context, userID, eventType string, payload any) {
	if userID == "" {
		return
	}
	message, err := notifications.Encode(eventType, payload)
	if err != nil {
		observability.LogAsyncOperationError(ctx, "encode_event", err, slog.String("event_type", eventType))
		return
	}
	if s.notifier.Enabled() {
		err := s.notifier.PublishUser(context.WithoutCancel(ctx), userID, message)
		if err == nil {
			return
		}
		observability.LogAsyncOperationError(ctx, "publish_event", err,
			slog.String("event_type", eventType),
			slog.String("user_id", userID),
		)
	}
	s.hub.Broadcast(userID, message)
}

// publishMatch tells both sides of a match about it.
func (s *Server) publishMatch(ctx context.Context, match *models.Match) {
	if match == nil {
		return
	}
	for _, uid := range []string{match.AID, match.BID} {
		s.publishUserEvent(ctx, uid, notifications.EventMatchCreated, fiber.Map{"match": match})
	}
}

func (s *Server) publishSwipeEvents(ctx context.Context, res *service.SwipeResult) {
	if res.Match != nil && res.Match.IsNew {
		s.publishMatch(ctx, &res.Match.Match)
	}
	if res.Inquiry != nil {
		s.publishUserEvent(ctx, res.PostLeaderID, notifications.EventInquiryReceived, fiber.Map{"inquiry": res.Inquiry})
	}
}

func (s *Server) publishDecisionEvents(ctx context.Context, d *service.Decision) {
	s.publishUserEvent(ctx, d.Inquiry.UserID, notifications.EventInquiryDecided, fiber.Map{
		"inquiry": d.Inquiry,
		"post":    d.Post,
	})
	if d.MatchCreated {
		s.publishMatch(ctx, d.Match)
	}
}

func (s *Server) publishMessageEvents(ctx context.Context, sent *service.SentMessage) {
	for _, uid := range sent.Recipients {
		s.publishUserEvent(ctx, uid, notifications.EventMessageReceived, fiber.Map{"message": sent.Message})
	}
}
